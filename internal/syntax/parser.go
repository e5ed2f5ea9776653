// Package syntax parses script sources with tree-sitter and provides the
// tree plus the symbol-resolution capability the extractors rely on.
package syntax

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// DefaultMaxFileSize is the largest source the parser accepts.
const DefaultMaxFileSize = 10 * 1024 * 1024

// WarnFileSize triggers a warning log for unusually large sources.
const WarnFileSize = 1024 * 1024

var (
	// ErrFileTooLarge is returned when a source exceeds the size limit.
	ErrFileTooLarge = errors.New("file too large")
	// ErrInvalidContent is returned when a source is not valid UTF-8.
	ErrInvalidContent = errors.New("invalid content")
)

// File is one parsed source snapshot. It is immutable once returned.
type File struct {
	Path   string
	Source []byte
	Hash   string // sha256 of Source, identifies this version of the file
	Lines  *Lines
	Root   *sitter.Node

	tree *sitter.Tree
}

// Close releases the tree-sitter tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Text returns the source text spanned by n.
func (f *File) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(f.Source)
}

// usesTypeScriptGrammar reports whether path should be parsed without JSX
// support, which keeps angle-bracket type assertions available.
func usesTypeScriptGrammar(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts":
		return true
	}
	return false
}

// Parse parses source with the grammar matching path's extension.
// Sources that only partially parse still produce a tree; syntax errors are
// logged at debug level because extraction skips what it cannot read.
func Parse(ctx context.Context, path string, source []byte) (*File, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse canceled before start: %w", err)
	}

	if len(source) > DefaultMaxFileSize {
		return nil, fmt.Errorf("%w: size %d exceeds limit %d", ErrFileTooLarge, len(source), DefaultMaxFileSize)
	}

	if len(source) > WarnFileSize {
		slog.Warn("parsing large file",
			slog.String("file", path),
			slog.Int("size_bytes", len(source)))
	}

	if !utf8.Valid(source) {
		return nil, fmt.Errorf("%w: content is not valid UTF-8", ErrInvalidContent)
	}

	hash := sha256.Sum256(source)

	parser := sitter.NewParser()
	if usesTypeScriptGrammar(path) {
		parser.SetLanguage(typescript.GetLanguage())
	} else {
		parser.SetLanguage(tsx.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}

	root := tree.RootNode()
	if root == nil {
		tree.Close()
		return nil, fmt.Errorf("tree-sitter returned nil root node for %s", path)
	}

	if root.HasError() {
		slog.Debug("source contains syntax errors", slog.String("file", path))
	}

	return &File{
		Path:   path,
		Source: source,
		Hash:   hex.EncodeToString(hash[:]),
		Lines:  NewLines(source),
		Root:   root,
		tree:   tree,
	}, nil
}
