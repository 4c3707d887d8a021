// Package lang maps source file extensions to the canonical language tags
// used throughout the index (document field "lang", tree-sitter grammar
// selection).
package lang

import (
	"path/filepath"
	"strings"
)

// extToLanguage is the canonical, exact mapping named in the specification.
// Unknown extensions detect to ("", false): the file is still indexed for
// content, it simply carries no symbols and an empty lang field.
var extToLanguage = map[string]string{
	".rs":  "rust",
	".py":  "python",
	".pyi": "python",
	".go":  "go",
	".js":  "javascript",
	".jsx": "javascript",
	".mjs": "javascript",
	".cjs": "javascript",
	".ts":  "typescript",
	".tsx": "typescript",
	".mts": "typescript",
	".cts": "typescript",
	".ex":  "elixir",
	".exs": "elixir",
}

// ForPath returns the canonical language tag for path's extension, and
// whether the extension was recognized.
func ForPath(path string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	l, ok := extToLanguage[ext]
	return l, ok
}
