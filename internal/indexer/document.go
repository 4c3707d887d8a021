package indexer

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jward/nanosearch/internal/index"
	"github.com/jward/nanosearch/internal/lang"
	"github.com/jward/nanosearch/internal/symbols"
)

// IsIndexable reports whether the file at root/relPath currently exists,
// is within maxFileSize, and passes the binary/UTF-8 gates — the check the
// incremental updater applies to every candidate added/modified path
// (spec §4.6 "Filtering").
func IsIndexable(root, relPath string, maxFileSize int64) bool {
	full := filepath.Join(root, filepath.FromSlash(relPath))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return false
	}
	if info.Size() > maxFileSize {
		return false
	}
	raw, err := os.ReadFile(full)
	if err != nil {
		return false
	}
	if isBinary(raw) {
		return false
	}
	return utf8.Valid(raw)
}

// ShouldSkipPath reports whether relPath falls under the tool's own state
// directories and must never be walked or treated as a change (spec §4.6
// "Filtering": drop .ns/ and .git/, bare or prefixed).
func ShouldSkipPath(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	for _, prefix := range []string{".ns/", ".git/"} {
		if strings.HasPrefix(relPath, prefix) {
			return true
		}
	}
	return relPath == ".ns" || relPath == ".git"
}

// BuildDocument reads root/relPath from disk and builds the index document
// for it, extracting symbols via the language-appropriate tree-sitter
// walker. Used by both the full writer and the incremental updater so a
// modified/added file is always rebuilt the same way.
func BuildDocument(root, relPath string) (index.Document, error) {
	full := filepath.Join(root, filepath.FromSlash(relPath))
	raw, err := os.ReadFile(full)
	if err != nil {
		return index.Document{}, err
	}

	langTag, _ := lang.ForPath(relPath)
	var symbolNames []string
	if langTag != "" {
		symbolNames = symbols.Extract(langTag, raw)
	}

	return index.Document{
		Path:       filepath.ToSlash(relPath),
		Content:    string(raw),
		Symbols:    strings.Join(symbolNames, " "),
		SymbolsRaw: strings.Join(symbolNames, "|"),
		Lang:       langTag,
	}, nil
}
