package occurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Token
	}{
		{name: "empty", in: "", want: nil},
		{name: "only whitespace", in: "  \t ", want: nil},
		{name: "single", in: "flex", want: []Token{{Text: "flex", Offset: 0}}},
		{
			name: "runs of whitespace",
			in:   "  flex   p-4\tmt-2 ",
			want: []Token{{Text: "flex", Offset: 2}, {Text: "p-4", Offset: 9}, {Text: "mt-2", Offset: 13}},
		},
		{
			name: "raw escapes",
			in:   `flex\np-4\tmt-2`,
			want: []Token{{Text: "flex", Offset: 0}, {Text: "p-4", Offset: 6}, {Text: "mt-2", Offset: 11}},
		},
		{
			name: "arbitrary values keep their brackets",
			in:   "w-[calc(100%-2rem)] hover:bg-red-500",
			want: []Token{{Text: "w-[calc(100%-2rem)]", Offset: 0}, {Text: "hover:bg-red-500", Offset: 20}},
		},
		{
			name: "backslash not followed by an escape letter",
			in:   `a\:b c`,
			want: []Token{{Text: `a\:b`, Offset: 0}, {Text: "c", Offset: 5}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Split(tt.in))
		})
	}
}

func TestBranch(t *testing.T) {
	tests := []struct {
		name   string
		branch Branch
		str    string
		root   bool
	}{
		{name: "root", branch: Root, str: "root", root: true},
		{name: "ternary true", branch: Ternary("10-40", true), str: "ternary:true:10-40"},
		{name: "ternary false", branch: Ternary("10-40", false), str: "ternary:false:10-40"},
		{name: "variant option", branch: Variant("50-90", "primary"), str: "variant:primary:50-90"},
		{name: "compound entry", branch: Compound("100-200", 2), str: "compound:2:100-200"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.str, tt.branch.String())
			assert.Equal(t, tt.root, tt.branch.IsRoot())
		})
	}
}

func TestBranchGroup(t *testing.T) {
	assert.Empty(t, Root.Group())
	assert.Equal(t, Ternary("10-40", true).Group(), Ternary("10-40", false).Group())
	assert.NotEqual(t, Ternary("10-40", true).Group(), Ternary("50-90", true).Group())
	assert.NotEqual(t, Ternary("10-40", true).Group(), Variant("10-40", "true").Group())
	assert.True(t, Ternary("10-40", true) == Ternary("10-40", true))
}

func TestWithProvenance(t *testing.T) {
	occ := ClassOccurrence{ClassName: "flex", Position: Position{Offset: 4, Length: 4}}

	tagged := occ.WithProvenance("layout", 7)
	require.NotNil(t, tagged.Provenance)
	assert.Equal(t, "layout", tagged.Provenance.VariableName)
	assert.Equal(t, 7, tagged.Provenance.UsageLine)
	assert.Nil(t, occ.Provenance)
	assert.Equal(t, 8, tagged.Position.End())
}
