package oracle

import "strings"

type patternKind int

const (
	matchExact patternKind = iota
	matchPrefix
	matchSuffix
	matchContains
)

type pattern struct {
	kind patternKind
	text string
}

// Allowlist accepts extra class names: exact names, "foo-*" prefixes,
// "*-foo" suffixes and "*-foo-*" substrings. A lone "*" only matches the
// literal name "*".
type Allowlist struct {
	exact    map[string]bool
	patterns []pattern
}

// NewAllowlist compiles patterns. Blank entries are ignored.
func NewAllowlist(patterns []string) *Allowlist {
	a := &Allowlist{exact: make(map[string]bool)}
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		leading := strings.HasPrefix(p, "*")
		trailing := strings.HasSuffix(p, "*")
		switch {
		case p == "*" || p == "**" || (!leading && !trailing):
			a.exact[p] = true
		case leading && trailing:
			a.patterns = append(a.patterns, pattern{kind: matchContains, text: p[1 : len(p)-1]})
		case trailing:
			a.patterns = append(a.patterns, pattern{kind: matchPrefix, text: p[:len(p)-1]})
		default:
			a.patterns = append(a.patterns, pattern{kind: matchSuffix, text: p[1:]})
		}
	}
	return a
}

// Len returns the number of compiled patterns.
func (a *Allowlist) Len() int {
	return len(a.exact) + len(a.patterns)
}

// IsValid implements Oracle.
func (a *Allowlist) IsValid(name string) bool {
	if a.exact[name] {
		return true
	}
	for _, p := range a.patterns {
		switch p.kind {
		case matchPrefix:
			if strings.HasPrefix(name, p.text) {
				return true
			}
		case matchSuffix:
			if strings.HasSuffix(name, p.text) {
				return true
			}
		case matchContains:
			if strings.Contains(name, p.text) {
				return true
			}
		}
	}
	return false
}

// ValidateBatch implements Oracle.
func (a *Allowlist) ValidateBatch(names []string) map[string]bool {
	return validateEach(a, names)
}
