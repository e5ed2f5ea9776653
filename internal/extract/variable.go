package extract

import (
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yacobolo/twlint/internal/occurrence"
	"github.com/yacobolo/twlint/internal/syntax"
)

// ResolveIdentifier follows an identifier to its in-file declarations and
// resolves their initializers. Occurrences keep the declaration's source
// position and gain provenance naming the identifier. Imports, parameters
// without defaults and cyclic references yield nothing.
func (s *Session) ResolveIdentifier(ident *sitter.Node, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	name := s.file.Text(ident)
	usageLine := int(ident.StartPoint().Row) + 1

	var occs []occurrence.ClassOccurrence
	for _, decl := range s.symbols.Declarations(ident) {
		if decl.Init == nil || decl.Kind == syntax.DeclImport {
			continue
		}
		found := s.guarded(decl, func() []occurrence.ClassOccurrence {
			return s.Resolve(decl.Init, scope, branch)
		})
		for _, occ := range found {
			occs = append(occs, occ.WithProvenance(name, usageLine))
		}
	}
	return occs
}

// guarded runs resolve unless decl is already being resolved further up
// the current path.
func (s *Session) guarded(decl syntax.Declaration, resolve func() []occurrence.ClassOccurrence) []occurrence.ClassOccurrence {
	key := syntax.NodeID(decl.Node)
	if s.resolving[key] {
		slog.Debug("cyclic reference, skipping", "file", s.file.Path, "name", decl.Name)
		return nil
	}
	s.resolving[key] = true
	defer delete(s.resolving, key)
	return resolve()
}
