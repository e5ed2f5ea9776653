package syntax

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// DeclKind classifies what introduced a binding.
type DeclKind int

const (
	// DeclVariable is a const/let/var declarator or a destructured binding.
	DeclVariable DeclKind = iota
	// DeclParameter is a function parameter.
	DeclParameter
	// DeclFunction is a function declaration.
	DeclFunction
	// DeclImport is an import binding; its value lives in another file.
	DeclImport
	// DeclTypeAlias is a `type X = ...` declaration.
	DeclTypeAlias
)

// Declaration is one binding found for a name.
type Declaration struct {
	Kind  DeclKind
	Name  string
	Ident *sitter.Node // the binding's name node
	Node  *sitter.Node // declarator, parameter, function or type alias node
	Init  *sitter.Node // initializer or default value, nil when absent
	Type  *sitter.Node // declared type (inside the annotation), nil when absent
}

// Resolver answers identifier → declaration questions with lexical scoping
// inside one file. Bindings from other files are reported as imports and
// never followed.
type Resolver struct {
	file *File
}

// NewResolver returns a resolver over f.
func NewResolver(f *File) *Resolver {
	return &Resolver{file: f}
}

// Declarations resolves the identifier node ident.
func (r *Resolver) Declarations(ident *sitter.Node) []Declaration {
	if ident == nil {
		return nil
	}
	return r.Lookup(r.file.Text(ident), ident)
}

// Lookup finds the value bindings of name visible from the node from. The
// innermost scope that binds name wins.
func (r *Resolver) Lookup(name string, from *sitter.Node) []Declaration {
	return r.lookup(name, from, false)
}

// LookupType finds the type alias named name visible from the node from.
func (r *Resolver) LookupType(name string, from *sitter.Node) []Declaration {
	return r.lookup(name, from, true)
}

func (r *Resolver) lookup(name string, from *sitter.Node, types bool) []Declaration {
	if name == "" || from == nil {
		return nil
	}
	for scope := from; scope != nil; scope = scope.Parent() {
		decls := r.scopeDeclarations(scope, name, types)
		if len(decls) > 0 {
			return decls
		}
	}
	return nil
}

// scopeDeclarations collects the bindings of name introduced directly by
// the scope node.
func (r *Resolver) scopeDeclarations(scope *sitter.Node, name string, types bool) []Declaration {
	var decls []Declaration

	switch scope.Type() {
	case NodeProgram, NodeStatementBlock, "switch_case", "switch_default", "class_body":
		for _, stmt := range NamedChildren(scope) {
			decls = append(decls, r.statementDeclarations(stmt, name, types)...)
		}
	case NodeFunctionDeclaration, NodeFunctionExpression, NodeFunction, NodeArrowFunction,
		"method_definition", "generator_function", "generator_function_declaration":
		if types {
			return nil
		}
		if single := scope.ChildByFieldName("parameter"); single != nil && r.file.Text(single) == name {
			decls = append(decls, Declaration{Kind: DeclParameter, Name: name, Ident: single, Node: single})
		}
		if params := scope.ChildByFieldName("parameters"); params != nil {
			for _, param := range NamedChildren(params) {
				decls = append(decls, r.parameterDeclarations(param, name)...)
			}
		}
	case "for_statement", "for_in_statement":
		if types {
			return nil
		}
		if init := scope.ChildByFieldName("initializer"); init != nil {
			decls = append(decls, r.statementDeclarations(init, name, false)...)
		}
		if left := scope.ChildByFieldName("left"); left != nil && left.Type() == NodeIdentifier && r.file.Text(left) == name {
			decls = append(decls, Declaration{Kind: DeclVariable, Name: name, Ident: left, Node: scope})
		}
	case "catch_clause":
		if types {
			return nil
		}
		if param := scope.ChildByFieldName("parameter"); param != nil && param.Type() == NodeIdentifier && r.file.Text(param) == name {
			decls = append(decls, Declaration{Kind: DeclParameter, Name: name, Ident: param, Node: param})
		}
	}

	return decls
}

// statementDeclarations returns bindings of name made by one statement.
func (r *Resolver) statementDeclarations(stmt *sitter.Node, name string, types bool) []Declaration {
	switch stmt.Type() {
	case NodeExportStatement:
		if decl := stmt.ChildByFieldName("declaration"); decl != nil {
			return r.statementDeclarations(decl, name, types)
		}
	case NodeAmbientDeclaration:
		var decls []Declaration
		for _, inner := range NamedChildren(stmt) {
			decls = append(decls, r.statementDeclarations(inner, name, types)...)
		}
		return decls
	case NodeTypeAlias:
		if types {
			if id := stmt.ChildByFieldName("name"); id != nil && r.file.Text(id) == name {
				return []Declaration{{Kind: DeclTypeAlias, Name: name, Ident: id, Node: stmt, Type: stmt.ChildByFieldName("value")}}
			}
		}
	}

	if types {
		return nil
	}

	switch stmt.Type() {
	case NodeLexicalDeclaration, NodeVariableDeclaration:
		var decls []Declaration
		for _, declarator := range NamedChildren(stmt) {
			if declarator.Type() == NodeVariableDeclarator {
				decls = append(decls, r.declaratorDeclarations(declarator, name)...)
			}
		}
		return decls
	case NodeFunctionDeclaration, "generator_function_declaration":
		if id := stmt.ChildByFieldName("name"); id != nil && r.file.Text(id) == name {
			return []Declaration{{Kind: DeclFunction, Name: name, Ident: id, Node: stmt}}
		}
	case NodeImportStatement:
		return r.importDeclarations(stmt, name)
	}
	return nil
}

// declaratorDeclarations handles `name = init` and destructuring patterns.
func (r *Resolver) declaratorDeclarations(declarator *sitter.Node, name string) []Declaration {
	target := declarator.ChildByFieldName("name")
	if target == nil {
		return nil
	}
	if target.Type() == NodeIdentifier {
		if r.file.Text(target) != name {
			return nil
		}
		return []Declaration{{
			Kind:  DeclVariable,
			Name:  name,
			Ident: target,
			Node:  declarator,
			Init:  declarator.ChildByFieldName("value"),
			Type:  AnnotationType(declarator.ChildByFieldName("type")),
		}}
	}
	return r.patternDeclarations(target, name, DeclVariable)
}

// parameterDeclarations handles plain, defaulted and destructured parameters.
func (r *Resolver) parameterDeclarations(param *sitter.Node, name string) []Declaration {
	switch param.Type() {
	case NodeRequiredParameter, NodeOptionalParameter:
		pattern := param.ChildByFieldName("pattern")
		if pattern == nil {
			return nil
		}
		if pattern.Type() == NodeIdentifier {
			if r.file.Text(pattern) != name {
				return nil
			}
			return []Declaration{{
				Kind:  DeclParameter,
				Name:  name,
				Ident: pattern,
				Node:  param,
				Init:  param.ChildByFieldName("value"),
				Type:  AnnotationType(param.ChildByFieldName("type")),
			}}
		}
		return r.patternDeclarations(pattern, name, DeclParameter)
	case NodeIdentifier:
		if r.file.Text(param) == name {
			return []Declaration{{Kind: DeclParameter, Name: name, Ident: param, Node: param}}
		}
	case NodeAssignmentPattern:
		left := param.ChildByFieldName("left")
		if left != nil && left.Type() == NodeIdentifier && r.file.Text(left) == name {
			return []Declaration{{Kind: DeclParameter, Name: name, Ident: left, Node: param, Init: param.ChildByFieldName("right")}}
		}
	}
	return nil
}

// patternDeclarations walks object/array destructuring patterns.
func (r *Resolver) patternDeclarations(pattern *sitter.Node, name string, kind DeclKind) []Declaration {
	var decls []Declaration
	for _, child := range NamedChildren(pattern) {
		switch child.Type() {
		case NodeShorthandPattern, NodeIdentifier:
			if r.file.Text(child) == name {
				decls = append(decls, Declaration{Kind: kind, Name: name, Ident: child, Node: child})
			}
		case NodeObjectAssignPattern, NodeAssignmentPattern:
			left := child.ChildByFieldName("left")
			if left == nil {
				continue
			}
			switch left.Type() {
			case NodeShorthandPattern, NodeIdentifier:
				if r.file.Text(left) == name {
					decls = append(decls, Declaration{Kind: kind, Name: name, Ident: left, Node: child, Init: child.ChildByFieldName("right")})
				}
			default:
				decls = append(decls, r.patternDeclarations(left, name, kind)...)
			}
		case NodePairPattern:
			if value := child.ChildByFieldName("value"); value != nil {
				if value.Type() == NodeIdentifier {
					if r.file.Text(value) == name {
						decls = append(decls, Declaration{Kind: kind, Name: name, Ident: value, Node: child})
					}
					continue
				}
				decls = append(decls, r.patternDeclarations(wrapPattern(value), name, kind)...)
			}
		case NodeObjectPattern, "array_pattern":
			decls = append(decls, r.patternDeclarations(child, name, kind)...)
		}
	}
	return decls
}

// wrapPattern lets patternDeclarations treat a lone assignment pattern the
// same way it treats one nested inside a destructuring list.
func wrapPattern(n *sitter.Node) *sitter.Node {
	if n.Type() == NodeAssignmentPattern && n.Parent() != nil {
		return n.Parent()
	}
	return n
}

// importDeclarations reports import bindings named name.
func (r *Resolver) importDeclarations(stmt *sitter.Node, name string) []Declaration {
	clause := ChildOfType(stmt, NodeImportClause)
	if clause == nil {
		return nil
	}
	var decls []Declaration
	for _, part := range NamedChildren(clause) {
		switch part.Type() {
		case NodeIdentifier:
			if r.file.Text(part) == name {
				decls = append(decls, Declaration{Kind: DeclImport, Name: name, Ident: part, Node: stmt})
			}
		case NodeNamespaceImport:
			if id := ChildOfType(part, NodeIdentifier); id != nil && r.file.Text(id) == name {
				decls = append(decls, Declaration{Kind: DeclImport, Name: name, Ident: id, Node: stmt})
			}
		case NodeNamedImports:
			for _, spec := range NamedChildren(part) {
				local := spec.ChildByFieldName("alias")
				if local == nil {
					local = spec.ChildByFieldName("name")
				}
				if local != nil && r.file.Text(local) == name {
					decls = append(decls, Declaration{Kind: DeclImport, Name: name, Ident: local, Node: stmt})
				}
			}
		}
	}
	return decls
}

// AnnotationType unwraps a type_annotation node to the type it carries.
func AnnotationType(n *sitter.Node) *sitter.Node {
	if n == nil {
		return nil
	}
	if n.Type() == NodeTypeAnnotation {
		return FirstExpression(n)
	}
	return n
}
