package syntax

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// Import describes one local binding created by an import statement.
type Import struct {
	Local     string // name bound in this file
	Imported  string // exported name; "default" or "*" for default/namespace imports
	Module    string // module specifier, e.g. "clsx"
	Namespace bool
}

// ImportMap maps local binding names to their import.
type ImportMap map[string]Import

// ImportCache memoizes import maps per file version. The key includes the
// content hash, so an edited file is re-read instead of served stale.
type ImportCache struct {
	mu      sync.Mutex
	entries map[string]importEntry
}

type importEntry struct {
	hash    string
	imports ImportMap
}

// NewImportCache returns an empty cache.
func NewImportCache() *ImportCache {
	return &ImportCache{entries: make(map[string]importEntry)}
}

// Imports returns the import map of f, computing it on first use for this
// version of the file.
func (c *ImportCache) Imports(f *File) ImportMap {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[f.Path]; ok && entry.hash == f.Hash {
		return entry.imports
	}
	imports := CollectImports(f)
	c.entries[f.Path] = importEntry{hash: f.Hash, imports: imports}
	return imports
}

// Invalidate drops the cached entry for path.
func (c *ImportCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Len returns the number of cached files.
func (c *ImportCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CollectImports reads the top-level import statements of f.
func CollectImports(f *File) ImportMap {
	imports := make(ImportMap)
	for _, stmt := range NamedChildren(f.Root) {
		if stmt.Type() != NodeImportStatement {
			continue
		}
		module, _, ok := f.StringBody(stmt.ChildByFieldName("source"))
		if !ok {
			continue
		}
		clause := ChildOfType(stmt, NodeImportClause)
		if clause == nil {
			continue
		}
		collectClause(f, clause, module, imports)
	}
	return imports
}

func collectClause(f *File, clause *sitter.Node, module string, imports ImportMap) {
	for _, part := range NamedChildren(clause) {
		switch part.Type() {
		case NodeIdentifier:
			local := f.Text(part)
			imports[local] = Import{Local: local, Imported: "default", Module: module}
		case NodeNamespaceImport:
			if id := ChildOfType(part, NodeIdentifier); id != nil {
				local := f.Text(id)
				imports[local] = Import{Local: local, Imported: "*", Module: module, Namespace: true}
			}
		case NodeNamedImports:
			for _, spec := range NamedChildren(part) {
				if spec.Type() != NodeImportSpecifier {
					continue
				}
				name := spec.ChildByFieldName("name")
				if name == nil {
					continue
				}
				imported := f.Text(name)
				if name.Type() == NodeString {
					imported, _, _ = f.StringBody(name)
				}
				local := imported
				if alias := spec.ChildByFieldName("alias"); alias != nil {
					local = f.Text(alias)
				}
				imports[local] = Import{Local: local, Imported: imported, Module: module}
			}
		}
	}
}
