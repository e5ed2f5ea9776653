package extract

import (
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yacobolo/twlint/internal/occurrence"
	"github.com/yacobolo/twlint/internal/syntax"
)

// Dialect selects the attribute extractor for a file.
type Dialect int

const (
	// DialectJSX covers .tsx/.jsx/.ts/.js sources.
	DialectJSX Dialect = iota
	// DialectVue covers lowered Vue single-file components.
	DialectVue
	// DialectSvelte covers .svelte files.
	DialectSvelte
)

func (d Dialect) String() string {
	switch d {
	case DialectVue:
		return "vue"
	case DialectSvelte:
		return "svelte"
	default:
		return "jsx"
	}
}

// DialectFor picks the dialect from the file extension.
func DialectFor(path string) Dialect {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vue":
		return DialectVue
	case ".svelte":
		return DialectSvelte
	default:
		return DialectJSX
	}
}

// SupportedExtensions lists the extensions ExtractAll understands.
var SupportedExtensions = []string{".tsx", ".jsx", ".ts", ".js", ".mts", ".cts", ".mjs", ".cjs", ".vue", ".svelte"}

// framework extracts from the class-bearing constructs of one dialect.
type framework interface {
	CanHandle(n *sitter.Node) bool
	Extract(n *sitter.Node) []occurrence.ClassOccurrence
	// ClassContext reports whether n is a construct whose classes Extract
	// already harvests, so nested utility calls are not reported twice.
	ClassContext(n *sitter.Node) bool
}

// ExtractAll returns every class occurrence in f in document order.
func ExtractAll(f *syntax.File, cfg Config, cache *syntax.ImportCache) []occurrence.ClassOccurrence {
	return NewSession(f, cfg, cache).ExtractAll()
}

// ExtractAll walks the session's file once.
func (s *Session) ExtractAll() []occurrence.ClassOccurrence {
	fw := s.framework(DialectFor(s.file.Path))

	var occs []occurrence.ClassOccurrence
	syntax.Walk(s.file.Root, func(n *sitter.Node) bool {
		if skipSubtree(n) {
			return false
		}
		if fw.CanHandle(n) {
			occs = append(occs, fw.Extract(n)...)
		}
		if n.Type() == syntax.NodeCall {
			occs = append(occs, s.extractVariantCall(n)...)
			occs = append(occs, s.extractInstanceCall(n)...)
			if s.isUtilityCall(n) && !s.insideClassContext(n, fw) {
				occs = append(occs, s.Resolve(n, "call:"+syntax.NodeID(n), occurrence.Root)...)
			}
		}
		return true
	})
	return occs
}

func (s *Session) framework(d Dialect) framework {
	switch d {
	case DialectVue:
		return newVueExtractor(s)
	case DialectSvelte:
		return svelteExtractor{}
	default:
		return jsxExtractor{s: s}
	}
}

// insideClassContext reports whether a utility call is already reached
// through an enclosing class-bearing construct.
func (s *Session) insideClassContext(n *sitter.Node, fw framework) bool {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if fw.ClassContext(p) {
			return true
		}
		if p.Type() != syntax.NodeCall {
			continue
		}
		if s.isUtilityCall(p) || s.variantDSL(p) != dslNone {
			return true
		}
		if callee := syntax.Unwrap(p.ChildByFieldName("function")); callee != nil &&
			callee.Type() == syntax.NodeIdentifier && s.isFactory(callee) {
			return true
		}
	}
	return false
}

// skipSubtree prunes subtrees that cannot contain class-bearing syntax.
func skipSubtree(n *sitter.Node) bool {
	switch n.Type() {
	case syntax.NodeString, syntax.NodeComment, syntax.NodeNumber, "regex",
		syntax.NodeImportStatement, syntax.NodeTypeAlias, syntax.NodeTypeAnnotation,
		"interface_declaration", "type_arguments", "type_parameters":
		return true
	}
	return false
}
