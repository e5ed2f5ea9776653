package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yacobolo/twlint/internal/occurrence"
	"github.com/yacobolo/twlint/internal/syntax"
)

// vueExtractor handles lowered Vue templates, where an element's props are
// passed as an object literal and the class binding appears as
// `...{ class: <value> }`. Script bindings are reached through the
// namespace object, e.g. __VLS_ctx.buttonClass.
type vueExtractor struct {
	s *Session
}

func newVueExtractor(s *Session) vueExtractor {
	x := vueExtractor{s: s}
	s.member = x.reference
	return x
}

func (x vueExtractor) CanHandle(n *sitter.Node) bool {
	return x.ClassContext(n)
}

// ClassContext reports whether n is a call whose props carry a class binding.
func (x vueExtractor) ClassContext(n *sitter.Node) bool {
	if n.Type() != syntax.NodeCall {
		return false
	}
	for _, arg := range syntax.Arguments(n) {
		if len(x.classValues(arg)) > 0 {
			return true
		}
	}
	return false
}

func (x vueExtractor) Extract(n *sitter.Node) []occurrence.ClassOccurrence {
	var occs []occurrence.ClassOccurrence
	for _, arg := range syntax.Arguments(n) {
		values := x.classValues(arg)
		if len(values) == 0 {
			continue
		}
		// Static and bound class on one element share the props object scope.
		scope := "vue:" + syntax.NodeID(syntax.Unwrap(arg))
		for _, value := range values {
			occs = append(occs, x.classValue(value, scope)...)
		}
	}
	return occs
}

// classValues returns the class values spread into a props object.
func (x vueExtractor) classValues(arg *sitter.Node) []*sitter.Node {
	props := syntax.Unwrap(arg)
	if props == nil || props.Type() != syntax.NodeObject {
		return nil
	}
	var values []*sitter.Node
	for _, child := range syntax.NamedChildren(props) {
		if child.Type() != syntax.NodeSpread {
			continue
		}
		inner := syntax.Unwrap(syntax.FirstExpression(child))
		if _, value := x.s.file.Property(inner, "class"); value != nil {
			values = append(values, value)
		}
	}
	return values
}

// classValue handles the value forms of a class binding. Object keys are
// classes regardless of their condition; values are never followed.
func (x vueExtractor) classValue(value *sitter.Node, scope string) []occurrence.ClassOccurrence {
	inner := syntax.Unwrap(value)
	if inner == nil {
		return nil
	}
	switch inner.Type() {
	case syntax.NodeObject:
		return x.objectKeys(inner, scope)
	case syntax.NodeArray:
		var occs []occurrence.ClassOccurrence
		for _, el := range syntax.NamedChildren(inner) {
			occs = append(occs, x.classValue(el, scope)...)
		}
		return occs
	}
	return x.s.Resolve(inner, scope, occurrence.Root)
}

func (x vueExtractor) objectKeys(obj *sitter.Node, scope string) []occurrence.ClassOccurrence {
	var occs []occurrence.ClassOccurrence
	for _, child := range syntax.NamedChildren(obj) {
		switch child.Type() {
		case syntax.NodePair:
			occs = append(occs, x.s.keyClasses(child.ChildByFieldName("key"), scope, occurrence.Root)...)
		case syntax.NodeShorthandProperty:
			occs = append(occs, x.s.literal(x.s.file.Text(child), int(child.StartByte()), scope, occurrence.Root)...)
		}
	}
	return occs
}

// reference resolves __VLS_ctx.name. Classes come from the script binding
// but are reported at the template reference, which is what the user edits.
func (x vueExtractor) reference(member *sitter.Node, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	obj := member.ChildByFieldName("object")
	prop := member.ChildByFieldName("property")
	if obj == nil || prop == nil || obj.Type() != syntax.NodeIdentifier {
		return nil
	}
	if x.s.file.Text(obj) != x.s.cfg.VueNamespace {
		return nil
	}

	name := x.s.file.Text(prop)
	found := x.binding(name, member, scope, branch)
	pos := x.s.position(int(prop.StartByte()), len(name))
	for i := range found {
		found[i].Position = pos
		found[i].Provenance = &occurrence.VariableProvenance{VariableName: name, UsageLine: pos.Line}
	}
	return found
}

// binding resolves a script binding named name visible from from. When no
// value is found the namespace object's declared type is consulted.
func (x vueExtractor) binding(name string, from *sitter.Node, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	var occs []occurrence.ClassOccurrence
	for _, decl := range x.s.symbols.Lookup(name, from) {
		occs = append(occs, x.s.guarded(decl, func() []occurrence.ClassOccurrence {
			return x.declaration(decl, scope, branch)
		})...)
	}
	if len(occs) == 0 {
		occs = x.namespaceMember(name, from, scope, branch)
	}
	return occs
}

func (x vueExtractor) declaration(decl syntax.Declaration, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	switch decl.Kind {
	case syntax.DeclFunction:
		return x.returns(decl.Node.ChildByFieldName("body"), scope, branch)
	case syntax.DeclVariable, syntax.DeclParameter:
		var occs []occurrence.ClassOccurrence
		if decl.Init != nil {
			occs = x.value(decl.Init, scope, branch)
		}
		if len(occs) == 0 && decl.Type != nil {
			occs = x.typeClasses(decl.Type, scope, branch)
		}
		return occs
	}
	return nil
}

// value unwraps reactive wrappers and functions around a bound value.
func (x vueExtractor) value(init *sitter.Node, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	inner := syntax.Unwrap(init)
	if inner == nil {
		return nil
	}
	switch inner.Type() {
	case syntax.NodeCall:
		if x.isWrapper(inner) {
			args := syntax.Arguments(inner)
			if len(args) == 0 {
				return nil
			}
			return x.value(args[0], scope, branch)
		}
	case syntax.NodeArrowFunction, syntax.NodeFunctionExpression, syntax.NodeFunction:
		body := inner.ChildByFieldName("body")
		if body != nil && body.Type() == syntax.NodeStatementBlock {
			return x.returns(body, scope, branch)
		}
		return x.s.Resolve(body, scope, branch)
	}
	return x.s.Resolve(init, scope, branch)
}

func (x vueExtractor) isWrapper(call *sitter.Node) bool {
	name, object := x.s.file.CalleeName(call)
	if object != "" {
		return false
	}
	for _, wrapper := range x.s.cfg.VueWrappers {
		if name == wrapper {
			return true
		}
	}
	return false
}

// returns resolves every return statement of a function body, skipping
// nested functions.
func (x vueExtractor) returns(body *sitter.Node, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	if body == nil {
		return nil
	}
	var occs []occurrence.ClassOccurrence
	syntax.Walk(body, func(n *sitter.Node) bool {
		switch n.Type() {
		case syntax.NodeReturn:
			occs = append(occs, x.s.Resolve(syntax.FirstExpression(n), scope, branch)...)
			return false
		case syntax.NodeArrowFunction, syntax.NodeFunctionExpression, syntax.NodeFunction,
			syntax.NodeFunctionDeclaration, "method_definition":
			return false
		}
		return true
	})
	return occs
}

// typeClasses reads classes out of a declared type: string literal types,
// unions of them, typeof queries and aliases.
func (x vueExtractor) typeClasses(t *sitter.Node, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	t = unwrapType(t)
	if t == nil {
		return nil
	}
	switch t.Type() {
	case syntax.NodeLiteralType:
		return x.s.Resolve(syntax.FirstExpression(t), scope, branch)
	case syntax.NodeUnionType:
		var occs []occurrence.ClassOccurrence
		for _, member := range syntax.NamedChildren(t) {
			occs = append(occs, x.typeClasses(member, scope, branch)...)
		}
		return occs
	case syntax.NodeTypeQuery:
		target := syntax.FirstExpression(t)
		if target == nil {
			return nil
		}
		switch target.Type() {
		case syntax.NodeIdentifier:
			return x.binding(x.s.file.Text(target), target, scope, branch)
		case syntax.NodeMember:
			return x.reference(target, scope, branch)
		}
	case syntax.NodeTypeIdentifier:
		var occs []occurrence.ClassOccurrence
		for _, alias := range x.s.symbols.LookupType(x.s.file.Text(t), t) {
			occs = append(occs, x.s.guarded(alias, func() []occurrence.ClassOccurrence {
				return x.typeClasses(alias.Type, scope, branch)
			})...)
		}
		return occs
	}
	return nil
}

// namespaceMember looks name up among the property signatures of the
// namespace object's declared type.
func (x vueExtractor) namespaceMember(name string, from *sitter.Node, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	var occs []occurrence.ClassOccurrence
	for _, ns := range x.s.symbols.Lookup(x.s.cfg.VueNamespace, from) {
		t := ns.Type
		if t == nil && ns.Init != nil {
			t = assertedType(ns.Init)
		}
		if t == nil {
			continue
		}
		occs = append(occs, x.s.guarded(ns, func() []occurrence.ClassOccurrence {
			return x.propertyType(t, name, scope, branch)
		})...)
	}
	return occs
}

func (x vueExtractor) propertyType(t *sitter.Node, name, scope string, branch occurrence.Branch) []occurrence.ClassOccurrence {
	t = unwrapType(t)
	if t == nil {
		return nil
	}
	switch t.Type() {
	case syntax.NodeTypeIdentifier:
		var occs []occurrence.ClassOccurrence
		for _, alias := range x.s.symbols.LookupType(x.s.file.Text(t), t) {
			occs = append(occs, x.propertyType(alias.Type, name, scope, branch)...)
		}
		return occs
	case "intersection_type":
		var occs []occurrence.ClassOccurrence
		for _, part := range syntax.NamedChildren(t) {
			occs = append(occs, x.propertyType(part, name, scope, branch)...)
		}
		return occs
	case syntax.NodeObjectType:
		for _, sig := range syntax.NamedChildren(t) {
			if sig.Type() != syntax.NodePropertySignature {
				continue
			}
			key, ok := x.s.file.PropertyKey(sig.ChildByFieldName("name"))
			if ok && key == name {
				return x.typeClasses(syntax.AnnotationType(sig.ChildByFieldName("type")), scope, branch)
			}
		}
	}
	return nil
}

func unwrapType(t *sitter.Node) *sitter.Node {
	for t != nil && t.Type() == syntax.NodeParenthesizedType {
		t = syntax.FirstExpression(t)
	}
	return t
}

// assertedType returns T from `expr as T` or `expr satisfies T`.
func assertedType(n *sitter.Node) *sitter.Node {
	switch n.Type() {
	case syntax.NodeAs, syntax.NodeSatisfies:
		count := int(n.NamedChildCount())
		if count < 2 {
			return nil
		}
		return n.NamedChild(count - 1)
	}
	return nil
}
