package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yacobolo/twlint/internal/occurrence"
	"github.com/yacobolo/twlint/internal/syntax"
)

// Resolve returns the class occurrences a class-bearing expression
// contributes. Unknown shapes contribute nothing.
func (s *Session) Resolve(expr *sitter.Node, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	if expr == nil {
		return nil
	}

	switch expr.Type() {
	case syntax.NodeString:
		text, base, ok := s.file.StringBody(expr)
		if !ok {
			return nil
		}
		return s.literal(text, base, scope, branch)

	case syntax.NodeTemplateString:
		return s.template(expr, scope, branch)

	case syntax.NodeTernary:
		id := syntax.NodeID(expr)
		occs := s.Resolve(expr.ChildByFieldName("consequence"), scope, occurrence.Ternary(id, true))
		return append(occs, s.Resolve(expr.ChildByFieldName("alternative"), scope, occurrence.Ternary(id, false))...)

	case syntax.NodeBinary:
		op := expr.ChildByFieldName("operator")
		if op == nil {
			return nil
		}
		switch op.Type() {
		case "&&", "||", "??":
			return s.Resolve(expr.ChildByFieldName("right"), scope, branch)
		}
		return nil

	case syntax.NodeCall:
		if !s.isUtilityCall(expr) {
			return nil
		}
		var occs []occurrence.ClassOccurrence
		for _, arg := range syntax.Arguments(expr) {
			occs = append(occs, s.Resolve(arg, scope, branch)...)
		}
		return occs

	case syntax.NodeArray:
		var occs []occurrence.ClassOccurrence
		for _, el := range syntax.NamedChildren(expr) {
			occs = append(occs, s.Resolve(el, scope, branch)...)
		}
		return occs

	case syntax.NodeObject:
		return s.objectClasses(expr, scope, branch)

	case syntax.NodeParenthesized, syntax.NodeAs, syntax.NodeSatisfies,
		syntax.NodeNonNull, syntax.NodeTypeAssertion:
		return s.Resolve(syntax.Unwrap(expr), scope, branch)

	case syntax.NodeSpread:
		return s.Resolve(syntax.FirstExpression(expr), scope, branch)

	case syntax.NodeIdentifier:
		return s.ResolveIdentifier(expr, scope, branch)

	case syntax.NodeMember:
		if s.member != nil {
			return s.member(expr, scope, branch)
		}
	}
	return nil
}

// objectClasses handles { "a b": cond, c: cond, ...rest }. Keys are class
// text; values are followed only when they are class-bearing themselves.
func (s *Session) objectClasses(obj *sitter.Node, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	var occs []occurrence.ClassOccurrence
	for _, child := range syntax.NamedChildren(obj) {
		switch child.Type() {
		case syntax.NodePair:
			occs = append(occs, s.keyClasses(child.ChildByFieldName("key"), scope, branch)...)
			value := child.ChildByFieldName("value")
			if value != nil && value.Type() != syntax.NodeIdentifier {
				occs = append(occs, s.Resolve(value, scope, branch)...)
			}
		case syntax.NodeShorthandProperty:
			occs = append(occs, s.literal(s.file.Text(child), int(child.StartByte()), scope, branch)...)
		case syntax.NodeSpread:
			occs = append(occs, s.Resolve(syntax.FirstExpression(child), scope, branch)...)
		}
	}
	return occs
}

// keyClasses splits a static object key into occurrences.
func (s *Session) keyClasses(key *sitter.Node, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	if key == nil {
		return nil
	}
	switch key.Type() {
	case syntax.NodeString:
		text, base, ok := s.file.StringBody(key)
		if !ok {
			return nil
		}
		return s.literal(text, base, scope, branch)
	case syntax.NodePropertyIdentifier, syntax.NodeIdentifier:
		return s.literal(s.file.Text(key), int(key.StartByte()), scope, branch)
	}
	return nil
}

// template handles `a ${x} b`: static fragments are split, interpolations
// are resolved, and tokens glued to an interpolation are dropped because
// their full text is only known at runtime.
func (s *Session) template(tpl *sitter.Node, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	start, end := int(tpl.StartByte())+1, int(tpl.EndByte())-1
	if end < start {
		return nil
	}

	var occs []occurrence.ClassOccurrence
	cursor := start
	for _, child := range syntax.NamedChildren(tpl) {
		if child.Type() != syntax.NodeTemplateSubst {
			continue
		}
		occs = append(occs, s.fragment(cursor, int(child.StartByte()), cursor != start, true, scope, branch)...)
		occs = append(occs, s.Resolve(syntax.FirstExpression(child), scope, branch)...)
		cursor = int(child.EndByte())
	}
	return append(occs, s.fragment(cursor, end, cursor != start, false, scope, branch)...)
}

// fragment splits source[from:to]. gluedBefore and gluedAfter say whether
// an interpolation touches the fragment on that side.
func (s *Session) fragment(from, to int, gluedBefore, gluedAfter bool, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	if to <= from {
		return nil
	}
	text := string(s.file.Source[from:to])
	var occs []occurrence.ClassOccurrence
	for _, tok := range occurrence.Split(text) {
		if gluedBefore && tok.Offset == 0 {
			continue
		}
		if gluedAfter && tok.Offset+len(tok.Text) == len(text) {
			continue
		}
		occs = append(occs, occurrence.ClassOccurrence{
			ClassName: tok.Text,
			Position:  s.position(from+tok.Offset, len(tok.Text)),
			ScopeID:   scope,
			Branch:    branch,
		})
	}
	return occs
}
