package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/twlint/internal/occurrence"
)

func occ(class string, offset int) occurrence.ClassOccurrence {
	return occurrence.ClassOccurrence{
		ClassName: class,
		Position:  occurrence.Position{Offset: offset, Length: len(class), Line: 1, Column: offset + 1},
		ScopeID:   "attr:0-100",
	}
}

func inBranch(o occurrence.ClassOccurrence, b occurrence.Branch) occurrence.ClassOccurrence {
	o.Branch = b
	return o
}

func inScope(o occurrence.ClassOccurrence, scope string) occurrence.ClassOccurrence {
	o.ScopeID = scope
	return o
}

func asVariant(o occurrence.ClassOccurrence, b occurrence.Branch) occurrence.ClassOccurrence {
	o.Branch = b
	o.IsVariantClass = true
	return o
}

func kinds(findings []Finding, kind Kind) []Finding {
	var out []Finding
	for _, f := range findings {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

func offsets(findings []Finding) []int {
	out := make([]int, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Position.Offset)
	}
	return out
}

var (
	tern     = occurrence.Ternary("40-80", true)
	ternElse = occurrence.Ternary("40-80", false)
)

func TestDuplicates(t *testing.T) {
	tests := []struct {
		name            string
		occs            []occurrence.ClassOccurrence
		wantDuplicates  []int
		wantExtractable []int
	}{
		{
			name:           "both root",
			occs:           []occurrence.ClassOccurrence{occ("flex", 10), occ("flex", 20)},
			wantDuplicates: []int{10, 20},
		},
		{
			name:           "root and branch",
			occs:           []occurrence.ClassOccurrence{occ("flex", 10), inBranch(occ("flex", 50), tern)},
			wantDuplicates: []int{10, 50},
		},
		{
			name:            "both arms of one ternary",
			occs:            []occurrence.ClassOccurrence{inBranch(occ("flex", 50), tern), inBranch(occ("flex", 70), ternElse)},
			wantExtractable: []int{50, 70},
		},
		{
			name: "twice in one arm",
			occs: []occurrence.ClassOccurrence{
				inBranch(occ("flex", 50), tern),
				inBranch(occ("flex", 55), tern),
			},
			wantDuplicates: []int{50, 55},
		},
		{
			name: "single arm single copy",
			occs: []occurrence.ClassOccurrence{inBranch(occ("flex", 50), tern), occ("block", 10)},
		},
		{
			name: "different scopes",
			occs: []occurrence.ClassOccurrence{occ("flex", 10), inScope(occ("flex", 120), "attr:110-150")},
		},
		{
			name: "different variant options",
			occs: []occurrence.ClassOccurrence{
				asVariant(occ("px-2", 50), occurrence.Variant("40-90", "sm")),
				asVariant(occ("px-2", 70), occurrence.Variant("40-90", "lg")),
			},
		},
		{
			name: "same variant option",
			occs: []occurrence.ClassOccurrence{
				asVariant(occ("px-2", 50), occurrence.Variant("40-90", "sm")),
				asVariant(occ("px-2", 54), occurrence.Variant("40-90", "sm")),
			},
			wantDuplicates: []int{50, 54},
		},
		{
			name: "options of different variants",
			occs: []occurrence.ClassOccurrence{
				asVariant(occ("flex", 50), occurrence.Variant("40-60", "sm")),
				asVariant(occ("flex", 80), occurrence.Variant("70-90", "row")),
			},
			wantDuplicates: []int{50, 80},
		},
		{
			name: "compound entry and variant option",
			occs: []occurrence.ClassOccurrence{
				asVariant(occ("px-2", 50), occurrence.Variant("40-60", "sm")),
				asVariant(occ("px-2", 120), occurrence.Compound("100-150", 0)),
			},
			wantDuplicates: []int{50, 120},
		},
		{
			name: "both arms plus a second copy in one arm",
			occs: []occurrence.ClassOccurrence{
				inBranch(occ("flex", 50), tern),
				inBranch(occ("flex", 55), tern),
				inBranch(occ("flex", 70), ternElse),
			},
			wantExtractable: []int{50, 55, 70},
		},
		{
			name: "separate ternaries",
			occs: []occurrence.ClassOccurrence{
				inBranch(occ("flex", 50), tern),
				inBranch(occ("flex", 90), occurrence.Ternary("85-99", true)),
			},
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Duplicates(tt.occs)
			assert.ElementsMatch(t, tt.wantDuplicates, offsets(kinds(findings, KindDuplicate)))
			assert.ElementsMatch(t, tt.wantExtractable, offsets(kinds(findings, KindExtractable)))
		})
	}
}

func TestConflicts(t *testing.T) {
	tests := []struct {
		name string
		occs []occurrence.ClassOccurrence
		want []int
	}{
		{
			name: "ternary arms never conflict",
			occs: []occurrence.ClassOccurrence{
				inBranch(occ("text-left", 50), tern),
				inBranch(occ("text-center", 70), ternElse),
			},
		},
		{
			name: "root against branch",
			occs: []occurrence.ClassOccurrence{
				occ("text-left", 10),
				inBranch(occ("text-center", 50), occurrence.Ternary("45-60", true)),
			},
			want: []int{10, 50},
		},
		{
			name: "root against root",
			occs: []occurrence.ClassOccurrence{occ("p-4", 10), occ("p-2", 20), occ("m-2", 30)},
			want: []int{10, 20},
		},
		{
			name: "different variant chains",
			occs: []occurrence.ClassOccurrence{occ("sm:text-left", 10), occ("md:text-center", 30)},
		},
		{
			name: "same variant chain",
			occs: []occurrence.ClassOccurrence{occ("hover:flex", 10), occ("hover:hidden", 30)},
			want: []int{10, 30},
		},
		{
			name: "base and variant never compared",
			occs: []occurrence.ClassOccurrence{
				occ("items-center", 10),
				asVariant(occ("items-start", 50), occurrence.Variant("40-90", "start")),
			},
		},
		{
			name: "exact duplicates are not conflicts",
			occs: []occurrence.ClassOccurrence{occ("flex", 10), occ("flex", 20)},
		},
		{
			name: "important and negative modifiers",
			occs: []occurrence.ClassOccurrence{occ("!mt-2", 10), occ("-mt-4", 20)},
			want: []int{10, 20},
		},
		{
			name: "arbitrary values",
			occs: []occurrence.ClassOccurrence{occ("w-[calc(100%-2rem)]", 10), occ("w-full", 40)},
			want: []int{10, 40},
		},
		{
			name: "unknown utilities ignored",
			occs: []occurrence.ClassOccurrence{occ("btn", 10), occ("btn-primary", 20)},
		},
		{
			name: "options of different variants",
			occs: []occurrence.ClassOccurrence{
				asVariant(occ("text-sm", 50), occurrence.Variant("35-58", "sm")),
				asVariant(occ("text-lg", 70), occurrence.Variant("60-89", "loud")),
			},
			want: []int{50, 70},
		},
		{
			name: "options of one variant",
			occs: []occurrence.ClassOccurrence{
				asVariant(occ("text-sm", 50), occurrence.Variant("35-58", "sm")),
				asVariant(occ("text-lg", 55), occurrence.Variant("35-58", "lg")),
			},
		},
		{
			name: "compound entry against variant option",
			occs: []occurrence.ClassOccurrence{
				asVariant(occ("flex", 50), occurrence.Variant("40-60", "row")),
				asVariant(occ("hidden", 120), occurrence.Compound("100-150", 1)),
			},
			want: []int{50, 120},
		},
		{
			name: "ternary arm against variant option",
			occs: []occurrence.ClassOccurrence{
				asVariant(occ("flex", 50), tern),
				asVariant(occ("grid", 90), occurrence.Variant("85-99", "grid")),
			},
			want: []int{50, 90},
		},
		{
			name: "same branch conflicts",
			occs: []occurrence.ClassOccurrence{
				inBranch(occ("block", 50), tern),
				inBranch(occ("flex", 56), tern),
			},
			want: []int{50, 56},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			findings := Conflicts(tt.occs)
			assert.ElementsMatch(t, tt.want, offsets(findings))
		})
	}
}

func TestConflictDetails(t *testing.T) {
	o := occ("text-left", 10)
	o.Provenance = &occurrence.VariableProvenance{VariableName: "align", UsageLine: 7}
	findings := Conflicts([]occurrence.ClassOccurrence{
		o,
		inBranch(occ("text-center", 50), tern),
		inBranch(occ("text-right", 70), ternElse),
	})
	require.Len(t, findings, 3)

	first := findings[0]
	assert.Equal(t, KindConflict, first.Kind)
	assert.Equal(t, "text-align", first.Property)
	assert.Equal(t, []string{"text-center", "text-right"}, first.ConflictsWith)
	assert.Equal(t, "Class 'text-left' conflicts with 'text-center', 'text-right' (both set text-align) (via variable 'align' used on line 7)", first.Message)

	assert.Equal(t, []string{"text-left"}, findings[1].ConflictsWith)
	assert.Equal(t, []string{"text-left"}, findings[2].ConflictsWith)
}

func TestSplitVariants(t *testing.T) {
	tests := []struct {
		in, chain, utility string
	}{
		{in: "p-4", chain: "", utility: "p-4"},
		{in: "sm:hover:p-4", chain: "sm:hover:", utility: "p-4"},
		{in: "[&:hover]:p-4", chain: "[&:hover]:", utility: "p-4"},
		{in: "bg-[url(a:b)]", chain: "", utility: "bg-[url(a:b)]"},
		{in: "md:!p-4", chain: "md:", utility: "!p-4"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			chain, utility := SplitVariants(tt.in)
			assert.Equal(t, tt.chain, chain)
			assert.Equal(t, tt.utility, utility)
		})
	}
}

func TestPropertyOf(t *testing.T) {
	tests := []struct {
		utility string
		want    string
		ok      bool
	}{
		{utility: "gap-x-2", want: "column-gap", ok: true},
		{utility: "gap-2", want: "gap", ok: true},
		{utility: "inset-x-0", want: "inset-inline", ok: true},
		{utility: "min-w-0", want: "min-width", ok: true},
		{utility: "text-start", want: "text-align", ok: true},
		{utility: "text-lg", want: "font-size", ok: true},
		{utility: "justify-items-center", want: "justify-items", ok: true},
		{utility: "hidden", want: "display", ok: true},
		{utility: "text-red-500", ok: false},
		{utility: "rounded-lg", ok: false},
		{utility: "p-", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.utility, func(t *testing.T) {
			got, ok := PropertyOf(tt.utility)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

type fakeValidator map[string]bool

func (f fakeValidator) ValidateBatch(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, name := range names {
		out[name] = f[name]
	}
	return out
}

func TestInvalid(t *testing.T) {
	direct := occ("bogus", 10)
	viaVariable := direct
	viaVariable.ScopeID = "attr:200-240"
	viaVariable.Provenance = &occurrence.VariableProvenance{VariableName: "cls", UsageLine: 9}

	findings := Invalid([]occurrence.ClassOccurrence{direct, viaVariable, occ("flex", 20)}, fakeValidator{"flex": true})
	require.Len(t, findings, 1)
	assert.Equal(t, KindInvalid, findings[0].Kind)
	assert.Equal(t, "bogus", findings[0].ClassName)

	assert.Empty(t, Invalid(nil, fakeValidator{}))
}

func TestAnalyzeOrdering(t *testing.T) {
	findings := Analyze([]occurrence.ClassOccurrence{
		occ("p-4", 30), occ("flex", 10), occ("flex", 20), occ("p-2", 40),
	})
	assert.Equal(t, []int{10, 20, 30, 40}, offsets(findings))
	assert.Equal(t, KindDuplicate, findings[0].Kind)
	assert.Equal(t, KindConflict, findings[2].Kind)
}

func TestAnalyzeReportsSharedSpanOnce(t *testing.T) {
	inCall := []occurrence.ClassOccurrence{
		inScope(occ("flex", 17), "call:13-31"),
		inScope(occ("flex", 25), "call:13-31"),
	}
	var inAttr []occurrence.ClassOccurrence
	for _, o := range inCall {
		inAttr = append(inAttr, inScope(o, "attr:50-66").WithProvenance("base", 2))
	}

	findings := Analyze(append(inCall, inAttr...))
	require.Len(t, findings, 2)
	assert.Equal(t, []int{17, 25}, offsets(findings))
	for _, f := range findings {
		assert.Equal(t, KindDuplicate, f.Kind)
		require.NotNil(t, f.Provenance)
		assert.Equal(t, "base", f.Provenance.VariableName)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindInvalid, KindDuplicate, KindConflict, KindExtractable} {
		got, ok := ParseKind(k.String())
		require.True(t, ok)
		assert.Equal(t, k, got)
	}
	_, ok := ParseKind("nope")
	assert.False(t, ok)
}
