package analysis

import (
	"fmt"

	"github.com/yacobolo/twlint/internal/occurrence"
)

// Validator decides which class names exist. Implementations treat their
// own failures as "invalid".
type Validator interface {
	ValidateBatch(names []string) map[string]bool
}

type spanKey struct {
	offset, length int
	class          string
}

// Invalid reports occurrences the validator does not recognize. An
// occurrence reached both directly and through a variable is reported once.
func Invalid(occs []occurrence.ClassOccurrence, v Validator) []Finding {
	if len(occs) == 0 {
		return nil
	}

	seenName := make(map[string]bool)
	names := make([]string, 0, len(occs))
	for _, occ := range occs {
		if !seenName[occ.ClassName] {
			seenName[occ.ClassName] = true
			names = append(names, occ.ClassName)
		}
	}
	valid := v.ValidateBatch(names)

	var findings []Finding
	reported := make(map[spanKey]bool)
	for _, occ := range occs {
		if valid[occ.ClassName] {
			continue
		}
		key := spanKey{occ.Position.Offset, occ.Position.Length, occ.ClassName}
		if reported[key] {
			continue
		}
		reported[key] = true
		findings = append(findings, newFinding(KindInvalid, occ,
			fmt.Sprintf("Unknown utility class '%s'", occ.ClassName)))
	}
	return findings
}
