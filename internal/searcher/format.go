package searcher

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jward/nanosearch/internal/index"
)

// DisplayResult is one ranked result with its extracted context, ready for
// rendering in either output mode (spec §4.9).
type DisplayResult struct {
	Rank           int
	Result         SearchResult
	ContextLines   []ContextLine
	TruncatedCount int
}

// formatSingleText renders one result the way the default text mode shows
// it: a header line, then context lines grouped with a "..." separator
// across any gap in line numbers, then a blank line.
//
//	[1] path/to/file.go  (score: 12.4, lang: go)
//	      42: matching line content
//	      43:     next line
func formatSingleText(d DisplayResult) string {
	var b strings.Builder

	lang := d.Result.Lang
	if lang == "" {
		lang = "unknown"
	}
	fmt.Fprintf(&b, " [%d] %s  (score: %.1f, lang: %s)\n", d.Rank, d.Result.Path, d.Result.Score, lang)

	var prev int
	havePrev := false
	for _, line := range d.ContextLines {
		if havePrev && line.LineNumber > prev+1 {
			b.WriteString("          ...\n")
		}
		fmt.Fprintf(&b, "     %4d: %s\n", line.LineNumber, line.Text)
		prev = line.LineNumber
		havePrev = true
	}
	if d.TruncatedCount > 0 {
		fmt.Fprintf(&b, "          ... (%d more matching lines truncated)\n", d.TruncatedCount)
	}

	b.WriteByte('\n')
	return b.String()
}

// formatSingleJSONValue builds the JSON object for one result (spec §4.9's
// machine-readable mode): `{rank, path, score, lang, matched_symbols,
// lines:[{num,text}], ranking_factors:{bm25_content, bm25_symbols,
// symbol_boost:"3x", matched_fields}, truncated_lines?}`. matchedSymbols is
// the case-insensitive intersection of the result's raw symbol names with
// the tokenized query.
func formatSingleJSONValue(d DisplayResult, queryText string) map[string]interface{} {
	lines := make([]map[string]interface{}, 0, len(d.ContextLines))
	for _, l := range d.ContextLines {
		lines = append(lines, map[string]interface{}{
			"num":  l.LineNumber,
			"text": l.Text,
		})
	}

	value := map[string]interface{}{
		"rank":            d.Rank,
		"path":            d.Result.Path,
		"score":           d.Result.Score,
		"lang":            jsonOrNull(d.Result.Lang),
		"matched_symbols": matchedSymbols(d.Result.SymbolsRaw, queryText),
		"lines":           lines,
		"ranking_factors": map[string]interface{}{
			"bm25_content":   d.Result.ScoreContent,
			"bm25_symbols":   d.Result.ScoreSymbols,
			"symbol_boost":   "3x",
			"matched_fields": d.Result.MatchedFields,
		},
	}
	if d.TruncatedCount > 0 {
		value["truncated_lines"] = d.TruncatedCount
	}
	return value
}

// matchedSymbols returns the entries of symbolsRaw whose lowercased form
// matches one of queryText's tokens, preserving symbolsRaw's original case
// and order (spec.md §4.9).
func matchedSymbols(symbolsRaw []string, queryText string) []string {
	terms := make(map[string]struct{})
	for _, t := range index.Tokenize(queryText) {
		terms[t] = struct{}{}
	}

	matched := make([]string, 0)
	for _, sym := range symbolsRaw {
		if _, ok := terms[strings.ToLower(sym)]; ok {
			matched = append(matched, sym)
		}
	}
	return matched
}

func jsonOrNull(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// summaryLine renders the trailing "N results (searched M files in Tms)"
// line that terminates default text mode.
func summaryLine(stats SearchStats) string {
	resultWord := "results"
	if stats.TotalResults == 1 {
		resultWord = "result"
	}
	fileWord := "files"
	if stats.FilesSearched == 1 {
		fileWord = "file"
	}
	return fmt.Sprintf("%d %s (searched %d %s in %dms)\n", stats.TotalResults, resultWord, stats.FilesSearched, fileWord, stats.ElapsedMs)
}

func marshalCompact(v interface{}) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(raw)
}
