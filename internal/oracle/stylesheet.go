package oracle

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"

	"github.com/yacobolo/twlint/internal/analysis"
)

// DefaultVariants are the variant names accepted in front of a known
// utility when the compiled stylesheet only contains the bare utility.
var DefaultVariants = []string{
	"sm", "md", "lg", "xl", "2xl", "max-sm", "max-md", "max-lg", "max-xl", "max-2xl",
	"dark", "print", "portrait", "landscape", "motion-safe", "motion-reduce", "contrast-more", "contrast-less", "rtl", "ltr",
	"hover", "focus", "focus-visible", "focus-within", "active", "visited", "target", "disabled", "enabled",
	"checked", "indeterminate", "default", "required", "valid", "invalid", "in-range", "out-of-range",
	"placeholder-shown", "autofill", "read-only", "open", "empty",
	"first", "last", "only", "odd", "even", "first-of-type", "last-of-type", "only-of-type",
	"before", "after", "placeholder", "file", "marker", "selection", "first-line", "first-letter", "backdrop",
	"group-hover", "group-focus", "group-focus-within", "group-focus-visible", "group-active", "group-disabled",
	"peer-hover", "peer-focus", "peer-focus-visible", "peer-checked", "peer-disabled", "peer-invalid", "peer-placeholder-shown",
	"aria-checked", "aria-disabled", "aria-expanded", "aria-hidden", "aria-pressed", "aria-readonly", "aria-required", "aria-selected",
	"*",
}

// Stylesheet is the set of class names defined by compiled CSS.
type Stylesheet struct {
	classes  map[string]bool
	variants map[string]bool
}

// NewStylesheet returns an empty stylesheet that accepts DefaultVariants
// plus extraVariants.
func NewStylesheet(extraVariants ...string) *Stylesheet {
	s := &Stylesheet{
		classes:  make(map[string]bool),
		variants: make(map[string]bool),
	}
	for _, list := range [][]string{DefaultVariants, extraVariants} {
		for _, v := range list {
			s.variants[v] = true
		}
	}
	return s
}

// LoadStylesheets parses every CSS file matching patterns.
func LoadStylesheets(patterns []string, extraVariants ...string) (*Stylesheet, error) {
	s := NewStylesheet(extraVariants...)
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid stylesheet pattern %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			if err := s.AddFile(match); err != nil {
				return nil, err
			}
		}
	}
	slog.Debug("loaded stylesheets", "files", len(seen), "classes", len(s.classes))
	return s, nil
}

// AddFile parses one CSS file into the set.
func (s *Stylesheet) AddFile(path string) error {
	// #nosec G304 - path comes from trusted configuration
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read stylesheet: %w", err)
	}
	s.Add(ParseClassNames(string(content))...)
	return nil
}

// Add records class names.
func (s *Stylesheet) Add(names ...string) {
	for _, name := range names {
		s.classes[name] = true
	}
}

// Len returns the number of distinct class names.
func (s *Stylesheet) Len() int {
	return len(s.classes)
}

// IsValid implements Oracle. A name is valid when the stylesheet defines
// it, or when it is a chain of known variants in front of a defined
// utility, optionally marked important.
func (s *Stylesheet) IsValid(name string) bool {
	if s.classes[name] {
		return true
	}
	chain, utility := analysis.SplitVariants(name)
	if !s.defined(utility) {
		return false
	}
	for _, variant := range strings.Split(strings.TrimSuffix(chain, ":"), ":") {
		if variant != "" && !s.knownVariant(variant) {
			return false
		}
	}
	return true
}

func (s *Stylesheet) defined(utility string) bool {
	if s.classes[utility] {
		return true
	}
	trimmed := strings.TrimSuffix(strings.TrimPrefix(utility, "!"), "!")
	return trimmed != utility && s.classes[trimmed]
}

// knownVariant accepts listed variants, arbitrary variants like [&>*] and
// parameterized ones like data-[open] or group-hover/item.
func (s *Stylesheet) knownVariant(v string) bool {
	if s.variants[v] {
		return true
	}
	if strings.HasPrefix(v, "[") && strings.HasSuffix(v, "]") {
		return true
	}
	if base, _, ok := strings.Cut(v, "/"); ok && s.variants[base] {
		return true
	}
	for _, prefix := range []string{"data-", "aria-", "supports-", "group-", "peer-", "has-", "not-", "min-", "max-"} {
		if strings.HasPrefix(v, prefix) && strings.Contains(v, "[") {
			return true
		}
	}
	return false
}

// ValidateBatch implements Oracle.
func (s *Stylesheet) ValidateBatch(names []string) map[string]bool {
	return validateEach(s, names)
}

// ParseClassNames returns the class names used in the selectors of CSS
// content, with escapes decoded.
func ParseClassNames(content string) []string {
	lexer := css.NewLexer(parse.NewInputString(content))

	seen := make(map[string]bool)
	var names []string
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal
			break
		}
		if tt != css.DelimToken || len(text) == 0 || text[0] != '.' {
			continue
		}
		tt, text = lexer.Next()
		if tt != css.IdentToken {
			continue
		}
		name := decodeEscapes(string(text))
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// decodeEscapes resolves CSS escapes: "\:" is ":" and "\31 0" is "10".
func decodeEscapes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(s) && j < i+7 && isHex(s[j]) {
			j++
		}
		if j == i+1 {
			// Literal escape of the next character.
			_, size := utf8.DecodeRuneInString(s[i+1:])
			b.WriteString(s[i+1 : i+1+size])
			i += size
			continue
		}
		code, err := strconv.ParseUint(s[i+1:j], 16, 32)
		if err != nil || code == 0 || code > utf8.MaxRune {
			b.WriteRune(utf8.RuneError)
		} else {
			b.WriteRune(rune(code))
		}
		if j < len(s) && (s[j] == ' ' || s[j] == '\t' || s[j] == '\n') {
			j++
		}
		i = j - 1
	}
	return b.String()
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}
