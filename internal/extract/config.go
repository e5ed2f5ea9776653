// Package extract harvests class-name occurrences from a parsed file: the
// expression and variable resolvers, the variant-DSL extractors, the
// per-dialect attribute extractors and the orchestrator that drives them.
package extract

import (
	"strings"
)

// FunctionRef names a function by identifier, optionally pinned to the
// module it must be imported from.
type FunctionRef struct {
	Name string
	From string // empty matches any local binding with Name
}

// ParseFunctionRef parses "name" or "name@module". Scoped modules keep
// their leading "@", e.g. "cn@@/lib/utils".
func ParseFunctionRef(s string) FunctionRef {
	s = strings.TrimSpace(s)
	if idx := strings.Index(s, "@"); idx > 0 {
		return FunctionRef{Name: s[:idx], From: s[idx+1:]}
	}
	return FunctionRef{Name: s}
}

// String renders the ref the way ParseFunctionRef reads it.
func (r FunctionRef) String() string {
	if r.From == "" {
		return r.Name
	}
	return r.Name + "@" + r.From
}

// Default recognition sets.
var (
	DefaultAttributes = []string{"className", "class"}

	DefaultUtilityFunctions = []FunctionRef{
		{Name: "clsx"},
		{Name: "classnames"},
		{Name: "classNames"},
		{Name: "cn"},
		{Name: "cx"},
		{Name: "twMerge"},
		{Name: "twJoin"},
	}

	DefaultCVAFunctions = []FunctionRef{{Name: "cva"}}
	DefaultTVFunctions  = []FunctionRef{{Name: "tv"}}

	// DefaultVueWrappers are reactive helpers whose first argument carries
	// the bound value.
	DefaultVueWrappers = []string{"computed", "ref", "shallowRef", "reactive", "readonly", "toRef", "unref"}
)

// DefaultVueNamespace is the synthetic identifier lowered templates use to
// reach script bindings.
const DefaultVueNamespace = "__VLS_ctx"

// Config controls which syntax is treated as class-bearing.
type Config struct {
	// Attributes are class-bearing JSX attribute names, in addition to the defaults.
	Attributes []string
	// UtilityFunctions replaces the default utility function set when non-empty.
	UtilityFunctions []FunctionRef

	// DisableCVA and DisableTV turn off the variant-DSL extractors, so the
	// zero Config extracts both.
	DisableCVA   bool
	CVAFunctions []FunctionRef
	DisableTV    bool
	TVFunctions  []FunctionRef

	VueNamespace string
	VueWrappers  []string
}

// DefaultConfig returns the configuration used when nothing is customized.
func DefaultConfig() Config {
	return Config{
		UtilityFunctions: DefaultUtilityFunctions,
		CVAFunctions:     DefaultCVAFunctions,
		TVFunctions:      DefaultTVFunctions,
		VueNamespace:     DefaultVueNamespace,
		VueWrappers:      DefaultVueWrappers,
	}
}

// AttributeNames returns the default attribute names plus the configured
// ones, deduplicated, in first-seen order.
func (c Config) AttributeNames() []string {
	seen := make(map[string]bool)
	names := make([]string, 0, len(DefaultAttributes)+len(c.Attributes))
	for _, list := range [][]string{DefaultAttributes, c.Attributes} {
		for _, name := range list {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// withDefaults fills empty lists with their defaults.
func (c Config) withDefaults() Config {
	if len(c.UtilityFunctions) == 0 {
		c.UtilityFunctions = DefaultUtilityFunctions
	}
	if len(c.CVAFunctions) == 0 {
		c.CVAFunctions = DefaultCVAFunctions
	}
	if len(c.TVFunctions) == 0 {
		c.TVFunctions = DefaultTVFunctions
	}
	if c.VueNamespace == "" {
		c.VueNamespace = DefaultVueNamespace
	}
	if len(c.VueWrappers) == 0 {
		c.VueWrappers = DefaultVueWrappers
	}
	return c
}
