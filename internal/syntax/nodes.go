package syntax

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// Tree-sitter node types of the TypeScript/TSX grammars used by the
// extractors. Traversal is done by hand rather than with queries so every
// shape can fail closed individually.
const (
	NodeProgram        = "program"
	NodeComment        = "comment"
	NodeStatementBlock = "statement_block"

	NodeIdentifier          = "identifier"
	NodePropertyIdentifier  = "property_identifier"
	NodeShorthandProperty   = "shorthand_property_identifier"
	NodeShorthandPattern    = "shorthand_property_identifier_pattern"
	NodeString              = "string"
	NodeTemplateString      = "template_string"
	NodeTemplateSubst       = "template_substitution"
	NodeNumber              = "number"
	NodeNull                = "null"
	NodeUndefined           = "undefined"
	NodeTrue                = "true"
	NodeFalse               = "false"
	NodeTernary             = "ternary_expression"
	NodeBinary              = "binary_expression"
	NodeCall                = "call_expression"
	NodeArguments           = "arguments"
	NodeArray               = "array"
	NodeObject              = "object"
	NodePair                = "pair"
	NodeSpread              = "spread_element"
	NodeComputedProperty    = "computed_property_name"
	NodeParenthesized       = "parenthesized_expression"
	NodeAs                  = "as_expression"
	NodeSatisfies           = "satisfies_expression"
	NodeNonNull             = "non_null_expression"
	NodeTypeAssertion       = "type_assertion"
	NodeMember              = "member_expression"
	NodeArrowFunction       = "arrow_function"
	NodeFunctionExpression  = "function_expression"
	NodeFunction            = "function"
	NodeFunctionDeclaration = "function_declaration"
	NodeReturn              = "return_statement"

	NodeLexicalDeclaration  = "lexical_declaration"
	NodeVariableDeclaration = "variable_declaration"
	NodeVariableDeclarator  = "variable_declarator"
	NodeExportStatement     = "export_statement"
	NodeAmbientDeclaration  = "ambient_declaration"
	NodeFormalParameters    = "formal_parameters"
	NodeRequiredParameter   = "required_parameter"
	NodeOptionalParameter   = "optional_parameter"
	NodeObjectPattern       = "object_pattern"
	NodeObjectAssignPattern = "object_assignment_pattern"
	NodePairPattern         = "pair_pattern"
	NodeAssignmentPattern   = "assignment_pattern"

	NodeImportStatement = "import_statement"
	NodeImportClause    = "import_clause"
	NodeNamedImports    = "named_imports"
	NodeImportSpecifier = "import_specifier"
	NodeNamespaceImport = "namespace_import"

	NodeTypeAlias         = "type_alias_declaration"
	NodeTypeAnnotation    = "type_annotation"
	NodeLiteralType       = "literal_type"
	NodeUnionType         = "union_type"
	NodeTypeQuery         = "type_query"
	NodeTypeIdentifier    = "type_identifier"
	NodeObjectType        = "object_type"
	NodePropertySignature = "property_signature"
	NodeParenthesizedType = "parenthesized_type"

	NodeJSXOpeningElement     = "jsx_opening_element"
	NodeJSXSelfClosingElement = "jsx_self_closing_element"
	NodeJSXAttribute          = "jsx_attribute"
	NodeJSXExpression         = "jsx_expression"
	NodeJSXNamespaceName      = "jsx_namespace_name"
)

// NodeID returns an identity for n that is stable for one file snapshot.
func NodeID(n *sitter.Node) string {
	return fmt.Sprintf("%d-%d", n.StartByte(), n.EndByte())
}

// Unwrap strips parentheses, `as`/`satisfies` assertions, non-null
// assertions and angle-bracket assertions around an expression.
func Unwrap(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case NodeParenthesized, NodeAs, NodeSatisfies, NodeNonNull:
			n = firstNamedNonComment(n)
		case NodeTypeAssertion:
			// <T>expr: the expression is the last named child.
			count := int(n.NamedChildCount())
			if count == 0 {
				return nil
			}
			n = n.NamedChild(count - 1)
		default:
			return n
		}
	}
	return nil
}

// firstNamedNonComment returns the first named child that is not a comment.
func firstNamedNonComment(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != NodeComment {
			return child
		}
	}
	return nil
}

// FirstExpression returns the first named, non-comment child of n.
func FirstExpression(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	return firstNamedNonComment(n)
}

// NamedChildren returns the named, non-comment children of n.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	children := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != NodeComment {
			children = append(children, child)
		}
	}
	return children
}

// ChildOfType returns the first named child of n with the given type.
func ChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	if n == nil {
		return nil
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// StringBody returns the text between the quotes of a string literal node
// and the byte offset where that text starts.
func (f *File) StringBody(n *sitter.Node) (string, int, bool) {
	if n == nil || n.Type() != NodeString {
		return "", 0, false
	}
	start, end := int(n.StartByte()), int(n.EndByte())
	if end-start < 2 {
		return "", 0, false
	}
	return string(f.Source[start+1 : end-1]), start + 1, true
}

// PropertyKey returns the static name of an object key node: identifiers,
// string literals and numbers. Computed keys are not static.
func (f *File) PropertyKey(key *sitter.Node) (string, bool) {
	if key == nil {
		return "", false
	}
	switch key.Type() {
	case NodePropertyIdentifier, NodeIdentifier, NodeNumber, NodeShorthandProperty:
		return f.Text(key), true
	case NodeString:
		body, _, ok := f.StringBody(key)
		return body, ok
	}
	return "", false
}

// Property finds the value of the pair named name in an object literal.
func (f *File) Property(object *sitter.Node, name string) (*sitter.Node, *sitter.Node) {
	if object == nil || object.Type() != NodeObject {
		return nil, nil
	}
	for _, child := range NamedChildren(object) {
		if child.Type() != NodePair {
			continue
		}
		key := child.ChildByFieldName("key")
		if k, ok := f.PropertyKey(key); ok && k == name {
			return child, child.ChildByFieldName("value")
		}
	}
	return nil, nil
}

// CalleeName returns the identifier a call targets, either a bare
// identifier or the property of a member expression, plus the member's
// object name when present.
func (f *File) CalleeName(call *sitter.Node) (name, object string) {
	if call == nil || call.Type() != NodeCall {
		return "", ""
	}
	callee := Unwrap(call.ChildByFieldName("function"))
	if callee == nil {
		return "", ""
	}
	switch callee.Type() {
	case NodeIdentifier:
		return f.Text(callee), ""
	case NodeMember:
		obj := callee.ChildByFieldName("object")
		prop := callee.ChildByFieldName("property")
		if prop == nil {
			return "", ""
		}
		objName := ""
		if obj != nil && obj.Type() == NodeIdentifier {
			objName = f.Text(obj)
		}
		return f.Text(prop), objName
	}
	return "", ""
}

// Arguments returns the argument expressions of a call. A tagged template
// call yields the template itself as its single argument.
func Arguments(call *sitter.Node) []*sitter.Node {
	if call == nil {
		return nil
	}
	args := call.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	if args.Type() == NodeTemplateString {
		return []*sitter.Node{args}
	}
	return NamedChildren(args)
}

// Walk visits n and its descendants in document order. Returning false
// from visit skips the node's children.
func Walk(n *sitter.Node, visit func(*sitter.Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		Walk(n.NamedChild(i), visit)
	}
}
