package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yacobolo/twlint/internal/occurrence"
	"github.com/yacobolo/twlint/internal/syntax"
)

// Session holds the state of one file-analysis call. Its caches never
// outlive the call, so an edited declaration is always re-read.
type Session struct {
	file       *syntax.File
	cfg        Config
	symbols    *syntax.Resolver
	imports    syntax.ImportMap
	attributes map[string]bool

	// factories caches, per declaration, whether its initializer is a
	// variant-DSL call.
	factories map[string]bool
	// resolving holds the declarations on the current resolution path.
	resolving map[string]bool

	// member resolves member expressions for dialects that reach script
	// bindings through a namespace object.
	member func(n *sitter.Node, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence
}

// NewSession prepares a session over f. A nil cache computes imports
// directly.
func NewSession(f *syntax.File, cfg Config, cache *syntax.ImportCache) *Session {
	cfg = cfg.withDefaults()

	var imports syntax.ImportMap
	if cache != nil {
		imports = cache.Imports(f)
	} else {
		imports = syntax.CollectImports(f)
	}

	attributes := make(map[string]bool)
	for _, name := range cfg.AttributeNames() {
		attributes[name] = true
	}

	return &Session{
		file:       f,
		cfg:        cfg,
		symbols:    syntax.NewResolver(f),
		imports:    imports,
		attributes: attributes,
		factories:  make(map[string]bool),
		resolving:  make(map[string]bool),
	}
}

// position converts a byte span into an occurrence position.
func (s *Session) position(offset, length int) occurrence.Position {
	line, column := s.file.Lines.Position(offset)
	return occurrence.Position{Offset: offset, Length: length, Line: line, Column: column}
}

// literal splits text, which starts at byte offset base, into occurrences.
func (s *Session) literal(text string, base int, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	tokens := occurrence.Split(text)
	if len(tokens) == 0 {
		return nil
	}
	occs := make([]occurrence.ClassOccurrence, 0, len(tokens))
	for _, tok := range tokens {
		occs = append(occs, occurrence.ClassOccurrence{
			ClassName: tok.Text,
			Position:  s.position(base+tok.Offset, len(tok.Text)),
			ScopeID:   scope,
			Branch:    branch,
		})
	}
	return occs
}

// matchesFunction reports whether call targets one of refs.
func (s *Session) matchesFunction(call *sitter.Node, refs []FunctionRef) bool {
	name, object := s.file.CalleeName(call)
	if name == "" {
		return false
	}
	for _, ref := range refs {
		if s.matchesRef(name, object, ref) {
			return true
		}
	}
	return false
}

func (s *Session) matchesRef(name, object string, ref FunctionRef) bool {
	if object != "" {
		// Only namespace imports qualify member calls: ns.cn(...).
		imp, ok := s.imports[object]
		if !ok || !imp.Namespace || name != ref.Name {
			return false
		}
		return ref.From == "" || imp.Module == ref.From
	}

	if ref.From == "" {
		return name == ref.Name
	}
	imp, ok := s.imports[name]
	if !ok || imp.Module != ref.From {
		return false
	}
	return imp.Imported == ref.Name || imp.Imported == "default"
}

// isUtilityCall reports whether n calls a configured utility function.
func (s *Session) isUtilityCall(n *sitter.Node) bool {
	return n != nil && n.Type() == syntax.NodeCall && s.matchesFunction(n, s.cfg.UtilityFunctions)
}

// markVariant flags occurrences as coming from a variant option.
func markVariant(occs []occurrence.ClassOccurrence) []occurrence.ClassOccurrence {
	for i := range occs {
		occs[i].IsVariantClass = true
	}
	return occs
}
