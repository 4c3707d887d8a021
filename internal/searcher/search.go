package searcher

import (
	"encoding/json"
	"fmt"

	"github.com/jward/nanosearch/internal/index"
)

// OutputMode selects how Search renders its results.
type OutputMode int

const (
	ModeText OutputMode = iota
	ModeFilesOnly
	ModeJSON
)

// SearchOutput is the result of running the full pipeline: formatted text
// ready to print, plus the stats and budget metadata behind it (spec §4.9).
type SearchOutput struct {
	Formatted       string
	Stats           SearchStats
	BudgetExhausted bool
	ResultsOmitted  int
}

// Search runs query → context extraction → formatting against root's index
// (spec §4.7–§4.9). The index must already be open; root is still needed
// to read file contents for context extraction.
func Search(engine *index.Engine, root, queryText string, mode OutputMode, opts SearchOptions, filesSearched int) (SearchOutput, error) {
	results, stats, err := ExecuteSearch(engine, queryText, opts, filesSearched)
	if err != nil {
		return SearchOutput{}, err
	}

	switch mode {
	case ModeFilesOnly:
		formatted, exhausted, omitted := buildFilesOnlyWithBudget(results, opts.Budget)
		return SearchOutput{Formatted: formatted, Stats: stats, BudgetExhausted: exhausted, ResultsOmitted: omitted}, nil
	case ModeJSON:
		formatted, exhausted, omitted := buildJSONWithBudget(root, results, queryText, opts, stats)
		return SearchOutput{Formatted: formatted, Stats: stats, BudgetExhausted: exhausted, ResultsOmitted: omitted}, nil
	default:
		formatted, exhausted, omitted := buildTextWithBudget(root, results, queryText, opts, stats)
		return SearchOutput{Formatted: formatted, Stats: stats, BudgetExhausted: exhausted, ResultsOmitted: omitted}, nil
	}
}

// budgetChars converts a token budget into a character budget (spec §4.9's
// ~4 chars/token heuristic). 0 means unlimited.
func budgetChars(tokenBudget int) int {
	if tokenBudget <= 0 {
		return 0
	}
	return tokenBudget * 4
}

func buildFilesOnlyWithBudget(results []SearchResult, tokenBudget int) (string, bool, int) {
	budgetCap := budgetChars(tokenBudget)
	var out string
	emitted := 0

	for _, r := range results {
		line := r.Path + "\n"
		if budgetCap > 0 && len(out)+len(line) > budgetCap && out != "" {
			omitted := len(results) - emitted
			out += fmt.Sprintf("... (%d more results, budget exceeded)\n", omitted)
			return out, true, omitted
		}
		out += line
		emitted++
	}
	return out, false, 0
}

func buildTextWithBudget(root string, results []SearchResult, queryText string, opts SearchOptions, stats SearchStats) (string, bool, int) {
	budgetCap := budgetChars(opts.Budget)
	var out string
	total := len(results)
	emitted := 0

	for i, r := range results {
		ctx := ExtractContext(root, r.Path, queryText, opts.ContextWindow, opts.MaxContextLines)
		display := DisplayResult{Rank: i + 1, Result: r, ContextLines: ctx.Lines, TruncatedCount: ctx.TruncatedCount}
		chunk := formatSingleText(display)

		if budgetCap > 0 && len(out)+len(chunk) > budgetCap && out != "" {
			omitted := total - emitted
			out += fmt.Sprintf("... (%d more results, budget exceeded)\n", omitted)
			return out, true, omitted
		}
		out += chunk
		emitted++
	}
	out += summaryLine(stats)
	return out, false, 0
}

func buildJSONWithBudget(root string, results []SearchResult, queryText string, opts SearchOptions, stats SearchStats) (string, bool, int) {
	budgetCap := budgetChars(opts.Budget)
	total := len(results)

	const envelopeEstimate = 200
	runningChars := envelopeEstimate

	values := make([]map[string]interface{}, 0, len(results))
	emitted := 0
	exhausted := false
	omitted := 0

	for i, r := range results {
		ctx := ExtractContext(root, r.Path, queryText, opts.ContextWindow, opts.MaxContextLines)
		display := DisplayResult{Rank: i + 1, Result: r, ContextLines: ctx.Lines, TruncatedCount: ctx.TruncatedCount}
		value := formatSingleJSONValue(display, queryText)
		valueStr := marshalCompact(value)

		if budgetCap > 0 && runningChars+len(valueStr) > budgetCap && len(values) > 0 {
			omitted = total - emitted
			exhausted = true
			break
		}
		runningChars += len(valueStr)
		values = append(values, value)
		emitted++
	}

	statsObj := map[string]interface{}{
		"total_results":  stats.TotalResults,
		"files_searched": stats.FilesSearched,
		"elapsed_ms":     stats.ElapsedMs,
	}
	if exhausted {
		statsObj["budget_exceeded"] = true
		statsObj["results_omitted"] = omitted
	}

	envelope := map[string]interface{}{
		"query":   queryText,
		"results": values,
		"stats":   statsObj,
	}

	raw, err := json.MarshalIndent(envelope, "", "  ")
	if err != nil {
		return "{}", exhausted, omitted
	}
	return string(raw), exhausted, omitted
}
