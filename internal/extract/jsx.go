package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yacobolo/twlint/internal/occurrence"
	"github.com/yacobolo/twlint/internal/syntax"
)

// jsxExtractor handles class-bearing attributes on JSX elements.
type jsxExtractor struct {
	s *Session
}

func (x jsxExtractor) CanHandle(n *sitter.Node) bool {
	switch n.Type() {
	case syntax.NodeJSXOpeningElement, syntax.NodeJSXSelfClosingElement:
		return true
	}
	return false
}

func (x jsxExtractor) Extract(n *sitter.Node) []occurrence.ClassOccurrence {
	var occs []occurrence.ClassOccurrence
	for _, attr := range syntax.NamedChildren(n) {
		if !x.ClassContext(attr) {
			continue
		}
		occs = append(occs, x.attribute(attr)...)
	}
	return occs
}

// ClassContext reports whether n is a class-bearing attribute.
func (x jsxExtractor) ClassContext(n *sitter.Node) bool {
	if n.Type() != syntax.NodeJSXAttribute || n.NamedChildCount() == 0 {
		return false
	}
	name := n.NamedChild(0)
	if name.Type() != syntax.NodePropertyIdentifier {
		return false
	}
	return x.s.attributes[x.s.file.Text(name)]
}

func (x jsxExtractor) attribute(attr *sitter.Node) []occurrence.ClassOccurrence {
	if attr.NamedChildCount() < 2 {
		return nil
	}
	scope := "attr:" + syntax.NodeID(attr)
	value := attr.NamedChild(1)

	switch value.Type() {
	case syntax.NodeString:
		return x.s.Resolve(value, scope, occurrence.Root)
	case syntax.NodeJSXExpression:
		inner := syntax.FirstExpression(value)
		if inner == nil || inner.Type() == syntax.NodeSpread {
			return nil
		}
		return x.s.Resolve(inner, scope, occurrence.Root)
	}
	return nil
}
