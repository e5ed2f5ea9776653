package analysis

import (
	"fmt"
	"strings"

	"github.com/yacobolo/twlint/internal/occurrence"
)

type conflictEntry struct {
	occ      occurrence.ClassOccurrence
	key      string // variant chain + property
	utility  string
	property string
}

// Conflicts finds utilities in one scope that set the same CSS property
// under the same variant chain. Base and variant classes are analyzed
// separately. Pairs that can never apply together (see applyTogether) are
// skipped.
func Conflicts(occs []occurrence.ClassOccurrence) []Finding {
	var findings []Finding
	for _, scope := range groupByScope(occs) {
		var base, variant []occurrence.ClassOccurrence
		for _, occ := range scope {
			if occ.IsVariantClass {
				variant = append(variant, occ)
			} else {
				base = append(base, occ)
			}
		}
		findings = append(findings, conflictsIn(base)...)
		findings = append(findings, conflictsIn(variant)...)
	}
	return findings
}

func conflictsIn(partition []occurrence.ClassOccurrence) []Finding {
	entries := make([]conflictEntry, 0, len(partition))
	for _, occ := range partition {
		chain, utility := SplitVariants(occ.ClassName)
		utility = BaseUtility(utility)
		property, ok := PropertyOf(utility)
		if !ok {
			continue
		}
		entries = append(entries, conflictEntry{
			occ:      occ,
			key:      chain + "|" + property,
			utility:  utility,
			property: property,
		})
	}

	var findings []Finding
	for i, e := range entries {
		var others []string
		seen := map[string]bool{e.utility: true}
		for j, other := range entries {
			if i == j || other.key != e.key || seen[other.utility] {
				continue
			}
			if !applyTogether(e.occ.Branch, other.occ.Branch) {
				continue
			}
			seen[other.utility] = true
			others = append(others, other.utility)
		}
		if len(others) == 0 {
			continue
		}

		quoted := make([]string, len(others))
		for k, name := range others {
			quoted[k] = "'" + name + "'"
		}
		f := newFinding(KindConflict, e.occ, fmt.Sprintf("Class '%s' conflicts with %s (both set %s)",
			e.occ.ClassName, strings.Join(quoted, ", "), e.property))
		f.ConflictsWith = others
		f.Property = e.property
		findings = append(findings, f)
	}
	return findings
}

// applyTogether reports whether two occurrences can be active at once.
// Root applies with everything. Ternary arms apply only with their own arm.
// Options of one variant exclude each other, while options of different
// variants and compoundVariants entries apply alongside everything that is
// not a ternary arm.
func applyTogether(a, b occurrence.Branch) bool {
	switch {
	case a.IsRoot() || b.IsRoot() || a == b:
		return true
	case a.Kind == occurrence.BranchTernary && b.Kind == occurrence.BranchTernary:
		return false
	case a.Kind == occurrence.BranchVariant && b.Kind == occurrence.BranchVariant:
		return a.Node != b.Node
	default:
		return true
	}
}
