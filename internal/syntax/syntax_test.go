package syntax

import (
	"context"
	"strings"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, path, src string) *File {
	t.Helper()
	f, err := Parse(context.Background(), path, []byte(src))
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

// findIdentifier returns the nth (0-based) identifier node with the given text.
func findIdentifier(f *File, name string, nth int) *sitter.Node {
	var found *sitter.Node
	seen := 0
	Walk(f.Root, func(n *sitter.Node) bool {
		if found != nil {
			return false
		}
		if n.Type() == NodeIdentifier && f.Text(n) == name {
			if seen == nth {
				found = n
				return false
			}
			seen++
		}
		return true
	})
	return found
}

func TestParse(t *testing.T) {
	f := mustParse(t, "a.tsx", `const A = () => <div className="p-4" />`)
	assert.Equal(t, NodeProgram, f.Root.Type())
	assert.Len(t, f.Hash, 64)

	g := mustParse(t, "a.tsx", `const A = () => <div className="p-4" />`)
	assert.Equal(t, f.Hash, g.Hash)
}

func TestParseErrors(t *testing.T) {
	t.Run("invalid utf8", func(t *testing.T) {
		_, err := Parse(context.Background(), "a.ts", []byte{0xff, 0xfe})
		require.ErrorIs(t, err, ErrInvalidContent)
	})

	t.Run("too large", func(t *testing.T) {
		_, err := Parse(context.Background(), "a.ts", make([]byte, DefaultMaxFileSize+1))
		require.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := Parse(ctx, "a.ts", []byte("const a = 1"))
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestParseTypeScriptGrammar(t *testing.T) {
	// Angle-bracket assertions only parse without JSX.
	f := mustParse(t, "a.ts", `const a = <string>"p-4"`)
	assert.False(t, f.Root.HasError())
}

func TestLines(t *testing.T) {
	l := NewLines([]byte("ab\r\ncd\n\nef"))
	assert.Equal(t, 4, l.Count())

	tests := []struct {
		offset    int
		line, col int
	}{
		{offset: 0, line: 1, col: 1},
		{offset: 1, line: 1, col: 2},
		{offset: 4, line: 2, col: 1},
		{offset: 7, line: 3, col: 1},
		{offset: 9, line: 4, col: 2},
	}
	for _, tt := range tests {
		line, col := l.Position(tt.offset)
		assert.Equal(t, tt.line, line, "offset %d", tt.offset)
		assert.Equal(t, tt.col, col, "offset %d", tt.offset)
	}

	assert.Equal(t, "ab", l.Line(1))
	assert.Equal(t, "cd", l.Line(2))
	assert.Equal(t, "", l.Line(3))
	assert.Equal(t, "ef", l.Line(4))
	assert.Equal(t, "", l.Line(5))
}

func TestStringBodyAndProperty(t *testing.T) {
	src := `const o = { "p-4": true, base: 'm-2', [k]: 1 }`
	f := mustParse(t, "a.ts", src)

	var obj *sitter.Node
	Walk(f.Root, func(n *sitter.Node) bool {
		if n.Type() == NodeObject {
			obj = n
			return false
		}
		return true
	})
	require.NotNil(t, obj)

	_, value := f.Property(obj, "base")
	require.NotNil(t, value)
	text, offset, ok := f.StringBody(value)
	require.True(t, ok)
	assert.Equal(t, "m-2", text)
	assert.Equal(t, strings.Index(src, "m-2"), offset)

	pair, _ := f.Property(obj, "p-4")
	assert.NotNil(t, pair)

	pair, _ = f.Property(obj, "k")
	assert.Nil(t, pair)
}

func TestUnwrap(t *testing.T) {
	f := mustParse(t, "a.ts", `const a = (("p-4" as string)!) satisfies string`)
	decls := NewResolver(f).Lookup("a", f.Root)
	require.Len(t, decls, 1)

	inner := Unwrap(decls[0].Init)
	require.NotNil(t, inner)
	assert.Equal(t, NodeString, inner.Type())
}

func TestCalleeNameAndArguments(t *testing.T) {
	f := mustParse(t, "a.ts", "utils.cn(\"a\", b)\ncn`p-4`")

	var calls []*sitter.Node
	Walk(f.Root, func(n *sitter.Node) bool {
		if n.Type() == NodeCall {
			calls = append(calls, n)
		}
		return true
	})
	require.Len(t, calls, 2)

	name, object := f.CalleeName(calls[0])
	assert.Equal(t, "cn", name)
	assert.Equal(t, "utils", object)
	assert.Len(t, Arguments(calls[0]), 2)

	name, object = f.CalleeName(calls[1])
	assert.Equal(t, "cn", name)
	assert.Empty(t, object)
	args := Arguments(calls[1])
	require.Len(t, args, 1)
	assert.Equal(t, NodeTemplateString, args[0].Type())
}

func TestResolverLookup(t *testing.T) {
	src := `const a = "outer"
let { b, c: d = "dflt" } = props
use(b, d)
function f(p = "param", q) {
  const a = "inner"
  return a + p + q
}
export const e = "exported"
type T = "x" | "y"
import { g as h } from "mod"
for (const i of list) { use(i) }
`
	f := mustParse(t, "a.ts", src)
	r := NewResolver(f)

	tests := []struct {
		name     string
		ident    string
		nth      int
		wantKind DeclKind
		wantInit string
		wantNone bool
	}{
		{name: "shadowed inner", ident: "a", nth: 2, wantKind: DeclVariable, wantInit: `"inner"`},
		{name: "destructured shorthand", ident: "b", nth: 0, wantKind: DeclVariable},
		{name: "destructured default", ident: "d", nth: 1, wantKind: DeclVariable, wantInit: `"dflt"`},
		{name: "parameter default", ident: "p", nth: 1, wantKind: DeclParameter, wantInit: `"param"`},
		{name: "parameter", ident: "q", nth: 1, wantKind: DeclParameter},
		{name: "exported", ident: "e", nth: 0, wantKind: DeclVariable, wantInit: `"exported"`},
		{name: "import alias", ident: "h", nth: 0, wantKind: DeclImport},
		{name: "function", ident: "f", nth: 0, wantKind: DeclFunction},
		{name: "for binding", ident: "i", nth: 1, wantKind: DeclVariable},
		{name: "unbound", ident: "props", nth: 0, wantNone: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ident := findIdentifier(f, tt.ident, tt.nth)
			require.NotNil(t, ident)
			decls := r.Declarations(ident)
			if tt.wantNone {
				assert.Empty(t, decls)
				return
			}
			require.NotEmpty(t, decls)
			assert.Equal(t, tt.wantKind, decls[0].Kind)
			if tt.wantInit != "" {
				assert.Equal(t, tt.wantInit, f.Text(decls[0].Init))
			}
		})
	}

	aliases := r.LookupType("T", f.Root)
	require.Len(t, aliases, 1)
	assert.Equal(t, NodeUnionType, aliases[0].Type.Type())
}

func TestImports(t *testing.T) {
	src := `import React from "react"
import * as u from "@/lib/utils"
import { cva, type VariantProps } from "class-variance-authority"
import { clsx as cx } from "clsx"
`
	f := mustParse(t, "a.ts", src)
	imports := CollectImports(f)

	assert.Equal(t, Import{Local: "React", Imported: "default", Module: "react"}, imports["React"])
	assert.Equal(t, Import{Local: "u", Imported: "*", Module: "@/lib/utils", Namespace: true}, imports["u"])
	assert.Equal(t, "class-variance-authority", imports["cva"].Module)
	assert.Equal(t, Import{Local: "cx", Imported: "clsx", Module: "clsx"}, imports["cx"])
	_, ok := imports["clsx"]
	assert.False(t, ok)
}

func TestImportCache(t *testing.T) {
	cache := NewImportCache()

	v1 := mustParse(t, "a.ts", `import { cn } from "one"`)
	assert.Equal(t, "one", cache.Imports(v1)["cn"].Module)

	v2 := mustParse(t, "a.ts", `import { cn } from "two"`)
	assert.Equal(t, "two", cache.Imports(v2)["cn"].Module, "edited file must not be served stale")

	assert.Equal(t, 1, cache.Len())
	cache.Invalidate("a.ts")
	assert.Equal(t, 0, cache.Len())
	assert.Equal(t, "two", cache.Imports(v2)["cn"].Module)
}
