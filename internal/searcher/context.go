// Package searcher implements the Context Extractor, Query Engine, and
// Formatter (spec §4.7–§4.9): turning a raw query plus the committed index
// into ranked, budget-shaped results.
package searcher

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jward/nanosearch/internal/index"
)

// ContextLine is a single line from a matched file, 1-based.
type ContextLine struct {
	LineNumber int
	Text       string
}

// Context is the result of extracting context lines for one file: the
// lines themselves, capped at maxLines, plus how many were dropped by that
// cap.
type Context struct {
	Lines          []ContextLine
	TruncatedCount int
}

// ExtractContext finds every line under root/relPath containing one of
// query's tokens (case-insensitive), expands each hit by ±window lines,
// merges overlapping ranges, and returns the result sorted by line number,
// capped at maxLines (spec §4.7). maxLines <= 0 means unlimited. A missing
// or unreadable file yields an empty Context, not an error — the caller
// treats a stale index entry as "no context available" rather than a hard
// failure.
func ExtractContext(root, relPath, queryText string, window, maxLines int) Context {
	raw, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(relPath)))
	if err != nil {
		return Context{}
	}

	lines := strings.Split(string(raw), "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	total := len(lines)
	if total == 0 {
		return Context{}
	}

	terms := index.Tokenize(queryText)
	if len(terms) == 0 {
		return Context{}
	}

	matchIdx := make(map[int]struct{})
	for i, line := range lines {
		lower := strings.ToLower(line)
		for _, term := range terms {
			if strings.Contains(lower, term) {
				matchIdx[i] = struct{}{}
				break
			}
		}
	}
	if len(matchIdx) == 0 {
		return Context{}
	}

	include := make(map[int]struct{})
	for idx := range matchIdx {
		start := idx - window
		if start < 0 {
			start = 0
		}
		end := idx + window
		if end > total-1 {
			end = total - 1
		}
		for i := start; i <= end; i++ {
			include[i] = struct{}{}
		}
	}

	ordered := make([]int, 0, len(include))
	for i := range include {
		ordered = append(ordered, i)
	}
	sort.Ints(ordered)

	result := make([]ContextLine, 0, len(ordered))
	for _, i := range ordered {
		result = append(result, ContextLine{LineNumber: i + 1, Text: lines[i]})
	}

	if maxLines > 0 && len(result) > maxLines {
		truncated := len(result) - maxLines
		return Context{Lines: result[:maxLines], TruncatedCount: truncated}
	}
	return Context{Lines: result}
}
