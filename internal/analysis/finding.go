// Package analysis turns class occurrences into findings: duplicates,
// CSS-property conflicts, extractable hints and unknown classes.
package analysis

import (
	"fmt"
	"sort"

	"github.com/yacobolo/twlint/internal/occurrence"
)

// Kind classifies a finding.
type Kind int

const (
	KindInvalid Kind = iota
	KindDuplicate
	KindConflict
	KindExtractable
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindDuplicate:
		return "duplicate"
	case KindConflict:
		return "conflict"
	case KindExtractable:
		return "extractable"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind parses the String form of a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range []Kind{KindInvalid, KindDuplicate, KindConflict, KindExtractable} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// Finding is one diagnostic about one occurrence.
type Finding struct {
	Kind      Kind
	ClassName string
	Position  occurrence.Position
	ScopeID   string
	Message   string

	// ConflictsWith lists the other utilities setting Property.
	ConflictsWith []string
	Property      string

	Provenance *occurrence.VariableProvenance
}

func newFinding(kind Kind, occ occurrence.ClassOccurrence, message string) Finding {
	if occ.Provenance != nil {
		message += fmt.Sprintf(" (via variable '%s' used on line %d)", occ.Provenance.VariableName, occ.Provenance.UsageLine)
	}
	return Finding{
		Kind:       kind,
		ClassName:  occ.ClassName,
		Position:   occ.Position,
		ScopeID:    occ.ScopeID,
		Message:    message,
		Provenance: occ.Provenance,
	}
}

// Sort orders findings by offset, then kind, then class name.
func Sort(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Position.Offset != b.Position.Offset {
			return a.Position.Offset < b.Position.Offset
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.ClassName < b.ClassName
	})
}

// Analyze runs the duplicate and conflict detectors over the occurrences
// of one file and returns their findings in source order. A span analyzed
// in several scopes, such as a helper call in a variable initializer that
// is also used in a class attribute, is reported once per kind.
func Analyze(occs []occurrence.ClassOccurrence) []Finding {
	findings := Duplicates(occs)
	findings = append(findings, Conflicts(occs)...)
	findings = dedupeSpans(findings)
	Sort(findings)
	return findings
}

type findingKey struct {
	kind Kind
	span spanKey
}

// dedupeSpans keeps one finding per kind and span, preferring the one
// reached through a variable.
func dedupeSpans(findings []Finding) []Finding {
	index := make(map[findingKey]int, len(findings))
	out := findings[:0]
	for _, f := range findings {
		key := findingKey{f.Kind, spanKey{f.Position.Offset, f.Position.Length, f.ClassName}}
		if i, ok := index[key]; ok {
			if out[i].Provenance == nil && f.Provenance != nil {
				out[i] = f
			}
			continue
		}
		index[key] = len(out)
		out = append(out, f)
	}
	return out
}

// groupByScope partitions occurrences by scope, keeping first-seen order.
func groupByScope(occs []occurrence.ClassOccurrence) [][]occurrence.ClassOccurrence {
	index := make(map[string]int)
	var groups [][]occurrence.ClassOccurrence
	for _, occ := range occs {
		i, ok := index[occ.ScopeID]
		if !ok {
			i = len(groups)
			index[occ.ScopeID] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], occ)
	}
	return groups
}
