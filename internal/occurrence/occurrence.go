// Package occurrence defines the record produced for every class-name token
// harvested from source, plus the branch tags used to reason about
// mutually exclusive code paths.
package occurrence

import (
	"fmt"
	"unicode"
)

// Position is the exact source span of one class token.
type Position struct {
	Offset int // byte offset from the start of the file
	Length int // byte length of the token
	Line   int // 1-based
	Column int // 1-based byte column
}

// End returns the offset just past the token.
func (p Position) End() int {
	return p.Offset + p.Length
}

// BranchKind identifies what kind of construct produced a branch tag.
type BranchKind int

const (
	// BranchRoot is the zero value: the token is always applied.
	BranchRoot BranchKind = iota
	// BranchTernary marks one arm of a conditional expression.
	BranchTernary
	// BranchVariant marks one option of a variant in a variant config.
	BranchVariant
	// BranchCompound marks one entry of a compoundVariants list.
	BranchCompound
)

// Branch tags an occurrence with the arm of the conditional construct it
// was found in. Occurrences in different arms of the same Node never apply
// together at runtime.
type Branch struct {
	Kind BranchKind
	Node string // identity of the conditional node
	Arm  string // "true"/"false" for ternaries, option name or index otherwise
}

// Root is the branch of unconditional occurrences.
var Root = Branch{}

// Ternary returns the tag for one arm of the conditional identified by node.
func Ternary(node string, whenTrue bool) Branch {
	arm := "false"
	if whenTrue {
		arm = "true"
	}
	return Branch{Kind: BranchTernary, Node: node, Arm: arm}
}

// Variant returns the tag for one option of the variant identified by node.
func Variant(node, option string) Branch {
	return Branch{Kind: BranchVariant, Node: node, Arm: option}
}

// Compound returns the tag for the index-th entry of a compoundVariants list.
func Compound(node string, index int) Branch {
	return Branch{Kind: BranchCompound, Node: node, Arm: fmt.Sprintf("%d", index)}
}

// IsRoot reports whether b is the unconditional branch.
func (b Branch) IsRoot() bool {
	return b.Kind == BranchRoot
}

// String renders the tag, e.g. "root" or "ternary:true:120-164".
func (b Branch) String() string {
	switch b.Kind {
	case BranchTernary:
		return "ternary:" + b.Arm + ":" + b.Node
	case BranchVariant:
		return "variant:" + b.Arm + ":" + b.Node
	case BranchCompound:
		return "compound:" + b.Arm + ":" + b.Node
	default:
		return "root"
	}
}

// Group returns the identity shared by all arms of the same construct.
func (b Branch) Group() string {
	if b.IsRoot() {
		return ""
	}
	return fmt.Sprintf("%d:%s", b.Kind, b.Node)
}

// VariableProvenance records that an occurrence was reached by resolving
// an identifier. UsageLine is the line of the reference, not the declaration.
type VariableProvenance struct {
	VariableName string
	UsageLine    int
}

// ClassOccurrence is one class-name token observed in source.
type ClassOccurrence struct {
	ClassName      string
	Position       Position
	ScopeID        string
	Branch         Branch
	IsVariantClass bool
	Provenance     *VariableProvenance
}

// WithProvenance returns a copy of o tagged as reached through variable name.
func (o ClassOccurrence) WithProvenance(name string, usageLine int) ClassOccurrence {
	o.Provenance = &VariableProvenance{VariableName: name, UsageLine: usageLine}
	return o
}

// Token is one whitespace-delimited run inside a literal.
type Token struct {
	Text   string
	Offset int // relative to the start of the literal text
}

// Split breaks literal text into class tokens at runs of whitespace. The
// two-character escapes \n, \t and \r count as whitespace because string
// literals are read raw from source.
func Split(text string) []Token {
	var tokens []Token
	start := -1
	flush := func(end int) {
		if start >= 0 && end > start {
			tokens = append(tokens, Token{Text: text[start:end], Offset: start})
		}
		start = -1
	}

	for i := 0; i < len(text); {
		c := text[i]
		if c == '\\' && i+1 < len(text) && (text[i+1] == 'n' || text[i+1] == 't' || text[i+1] == 'r') {
			flush(i)
			i += 2
			continue
		}
		if c < 0x80 && unicode.IsSpace(rune(c)) {
			flush(i)
			i++
			continue
		}
		if start < 0 {
			start = i
		}
		i++
	}
	flush(len(text))

	return tokens
}
