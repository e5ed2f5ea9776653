// Package oracle answers whether a class name exists. Names come from
// compiled stylesheets and a user allow-list.
package oracle

// Oracle decides whether class names exist. Implementations never fail:
// anything they cannot decide is invalid.
type Oracle interface {
	IsValid(name string) bool
	ValidateBatch(names []string) map[string]bool
}

// Any accepts a name when at least one of its oracles does.
type Any []Oracle

// IsValid implements Oracle.
func (a Any) IsValid(name string) bool {
	for _, o := range a {
		if o != nil && o.IsValid(name) {
			return true
		}
	}
	return false
}

// ValidateBatch implements Oracle.
func (a Any) ValidateBatch(names []string) map[string]bool {
	return validateEach(a, names)
}

func validateEach(o Oracle, names []string) map[string]bool {
	result := make(map[string]bool, len(names))
	for _, name := range names {
		result[name] = o.IsValid(name)
	}
	return result
}
