package extract

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/yacobolo/twlint/internal/occurrence"
)

// svelteExtractor is registered for .svelte files so they are routed
// somewhere explicit; Svelte markup has no lowered form yet and nothing is
// extracted from it.
type svelteExtractor struct{}

func (svelteExtractor) CanHandle(*sitter.Node) bool { return false }

func (svelteExtractor) Extract(*sitter.Node) []occurrence.ClassOccurrence { return nil }

func (svelteExtractor) ClassContext(*sitter.Node) bool { return false }
