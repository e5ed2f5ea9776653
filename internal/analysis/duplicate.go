package analysis

import (
	"fmt"

	"github.com/yacobolo/twlint/internal/occurrence"
)

// Duplicates finds classes repeated within one scope. A class present at
// root makes every other copy redundant. A class in both arms of one
// ternary is reported as extractable instead. Copies that can never apply
// together, such as separate arms or options of one variant, are never
// duplicates of each other.
func Duplicates(occs []occurrence.ClassOccurrence) []Finding {
	var findings []Finding
	for _, scope := range groupByScope(occs) {
		for _, group := range groupByClass(scope) {
			if len(group) < 2 {
				continue
			}
			findings = append(findings, duplicateGroup(group)...)
		}
	}
	return findings
}

func groupByClass(occs []occurrence.ClassOccurrence) [][]occurrence.ClassOccurrence {
	index := make(map[string]int)
	var groups [][]occurrence.ClassOccurrence
	for _, occ := range occs {
		i, ok := index[occ.ClassName]
		if !ok {
			i = len(groups)
			index[occ.ClassName] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], occ)
	}
	return groups
}

func duplicateGroup(group []occurrence.ClassOccurrence) []Finding {
	for _, occ := range group {
		if occ.Branch.IsRoot() {
			return flagAll(group)
		}
	}

	// Branch-only: ternaries holding the class in both arms become hints.
	constructs := make(map[string][]occurrence.ClassOccurrence)
	for _, occ := range group {
		if occ.Branch.Kind == occurrence.BranchTernary {
			key := occ.Branch.Group()
			constructs[key] = append(constructs[key], occ)
		}
	}
	bothArms := make(map[string]bool)
	for key, members := range constructs {
		if isTernaryBothArms(members) {
			bothArms[key] = true
		}
	}

	duplicate := make([]bool, len(group))
	for i := range group {
		for j := i + 1; j < len(group); j++ {
			a, b := group[i].Branch, group[j].Branch
			if a == b && bothArms[a.Group()] {
				continue
			}
			if applyTogether(a, b) {
				duplicate[i], duplicate[j] = true, true
			}
		}
	}

	var findings []Finding
	for i, occ := range group {
		switch {
		case duplicate[i]:
			findings = append(findings, newFinding(KindDuplicate, occ,
				fmt.Sprintf("Duplicate class '%s'", occ.ClassName)))
		case bothArms[occ.Branch.Group()]:
			findings = append(findings, newFinding(KindExtractable, occ,
				fmt.Sprintf("Class '%s' is applied in both branches of the conditional and can be moved outside it", occ.ClassName)))
		}
	}
	return findings
}

func flagAll(group []occurrence.ClassOccurrence) []Finding {
	findings := make([]Finding, 0, len(group))
	for _, occ := range group {
		findings = append(findings, newFinding(KindDuplicate, occ,
			fmt.Sprintf("Duplicate class '%s'", occ.ClassName)))
	}
	return findings
}

func isTernaryBothArms(members []occurrence.ClassOccurrence) bool {
	if len(members) == 0 || members[0].Branch.Kind != occurrence.BranchTernary {
		return false
	}
	var whenTrue, whenFalse bool
	for _, occ := range members {
		switch occ.Branch.Arm {
		case "true":
			whenTrue = true
		case "false":
			whenFalse = true
		}
	}
	return whenTrue && whenFalse
}
