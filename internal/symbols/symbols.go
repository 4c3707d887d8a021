// Package symbols extracts declared names from source files using
// tree-sitter grammars, one per language. Extraction never fails loudly:
// unsupported languages and parse failures both yield an empty, non-nil
// slice, matching the "extractor never raises" rule.
package symbols

import (
	"context"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/elixir"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	ts "github.com/smacker/go-tree-sitter/typescript/typescript"
)

type walker func(root *sitter.Node, source []byte) []string

var (
	grammarsOnce sync.Once
	grammars     map[string]*sitter.Language
	walkers      = map[string]walker{
		"rust":       walkRust,
		"python":     walkPython,
		"go":         walkGo,
		"javascript": func(root *sitter.Node, src []byte) []string { return walkJSTS(root, src, false) },
		"typescript": func(root *sitter.Node, src []byte) []string { return walkJSTS(root, src, true) },
		"elixir":     walkElixir,
	}
)

func initGrammars() {
	grammarsOnce.Do(func() {
		grammars = map[string]*sitter.Language{
			"rust":       rust.GetLanguage(),
			"python":     python.GetLanguage(),
			"go":         golang.GetLanguage(),
			"javascript": javascript.GetLanguage(),
			"typescript": ts.GetLanguage(),
			"elixir":     elixir.GetLanguage(),
		}
	})
}

// Extract parses source with the grammar for lang and returns the ordered,
// deduplicated list of declared symbol names (first occurrence wins).
// Unsupported languages, empty source, and parse failures all return an
// empty slice.
func Extract(lang string, source []byte) []string {
	if len(source) == 0 {
		return []string{}
	}
	w, ok := walkers[lang]
	if !ok {
		return []string{}
	}
	initGrammars()
	grammar, ok := grammars[lang]
	if !ok {
		return []string{}
	}

	parser := sitter.NewParser()
	parser.SetLanguage(grammar)
	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil || tree == nil {
		return []string{}
	}
	defer tree.Close()

	names := w(tree.RootNode(), source)
	return dedup(names)
}

func dedup(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

// walk visits every node in the tree in depth-first, source order.
func walk(node *sitter.Node, visit func(*sitter.Node)) {
	if node == nil {
		return
	}
	visit(node)
	count := int(node.ChildCount())
	for i := 0; i < count; i++ {
		walk(node.Child(i), visit)
	}
}

func fieldText(node *sitter.Node, field string, source []byte) (string, bool) {
	if node == nil {
		return "", false
	}
	child := node.ChildByFieldName(field)
	if child == nil {
		return "", false
	}
	text := strings.TrimSpace(child.Content(source))
	if text == "" {
		return "", false
	}
	return text, true
}
