package searcher

import (
	"encoding/json"
	"strings"
	"testing"
)

func fakeResult(path string) SearchResult {
	return SearchResult{
		Path:          path,
		Score:         5.0,
		Lang:          "go",
		ScoreContent:  5.0,
		MatchedFields: []string{"content"},
	}
}

func TestBuildFilesOnlyWithBudget_Truncates(t *testing.T) {
	var results []SearchResult
	for i := 0; i < 10; i++ {
		results = append(results, fakeResult("src/file_very_long_name_for_budget.go"))
	}

	out, exhausted, omitted := buildFilesOnlyWithBudget(results, 10)
	if !exhausted {
		t.Fatal("expected budget to be exhausted")
	}
	if omitted == 0 {
		t.Fatal("expected omitted > 0")
	}
	if !strings.Contains(out, "budget exceeded") {
		t.Error("expected budget exceeded message")
	}
}

func TestBuildFilesOnlyWithBudget_Unlimited(t *testing.T) {
	var results []SearchResult
	for i := 0; i < 5; i++ {
		results = append(results, fakeResult("a.go"))
	}
	out, exhausted, omitted := buildFilesOnlyWithBudget(results, 0)
	if exhausted || omitted != 0 {
		t.Fatal("expected no truncation with zero budget")
	}
	if len(strings.Split(strings.TrimRight(out, "\n"), "\n")) != 5 {
		t.Fatalf("expected 5 lines, got %q", out)
	}
}

func TestBuildJSONWithBudget_NoBudgetHasNoBudgetFields(t *testing.T) {
	results := []SearchResult{fakeResult("a.go")}
	stats := SearchStats{TotalResults: 1, FilesSearched: 10, ElapsedMs: 1}

	out, exhausted, _ := buildJSONWithBudget(t.TempDir(), results, "foo", SearchOptions{}, stats)
	if exhausted {
		t.Fatal("expected not exhausted with zero budget")
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	statsObj := parsed["stats"].(map[string]interface{})
	if _, ok := statsObj["budget_exceeded"]; ok {
		t.Error("should not have budget_exceeded field")
	}
}

func TestBuildJSONWithBudget_ShowsBudgetExceeded(t *testing.T) {
	var results []SearchResult
	for i := 0; i < 5; i++ {
		results = append(results, fakeResult("src/some/deeply/nested/file_path.go"))
	}
	stats := SearchStats{TotalResults: 5, FilesSearched: 10, ElapsedMs: 1}

	out, exhausted, omitted := buildJSONWithBudget(t.TempDir(), results, "foo", SearchOptions{Budget: 10}, stats)
	if !exhausted {
		t.Fatal("expected budget exhausted")
	}
	if omitted == 0 {
		t.Fatal("expected omitted > 0")
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	statsObj := parsed["stats"].(map[string]interface{})
	if statsObj["budget_exceeded"] != true {
		t.Error("expected budget_exceeded true")
	}
}

func TestFormatSingleText_IncludesHeaderAndContext(t *testing.T) {
	d := DisplayResult{
		Rank:   1,
		Result: SearchResult{Path: "src/main.go", Score: 8.5, Lang: "go"},
		ContextLines: []ContextLine{
			{LineNumber: 10, Text: "func main() {"},
			{LineNumber: 11, Text: "}"},
		},
	}
	out := formatSingleText(d)
	if !strings.Contains(out, "[1] src/main.go") {
		t.Error("missing rank/path header")
	}
	if !strings.Contains(out, "score: 8.5") {
		t.Error("missing score")
	}
	if !strings.Contains(out, "10: func main()") {
		t.Error("missing context line")
	}
}

func TestFormatSingleText_SeparatorOnGap(t *testing.T) {
	d := DisplayResult{
		Rank:   1,
		Result: SearchResult{Path: "src/lib.go", Score: 5.0, Lang: "go"},
		ContextLines: []ContextLine{
			{LineNumber: 3, Text: "import foo"},
			{LineNumber: 10, Text: "func foo() {}"},
		},
	}
	out := formatSingleText(d)
	if !strings.Contains(out, "...") {
		t.Error("expected separator for non-contiguous lines")
	}
}

func TestFormatSingleText_UnknownLang(t *testing.T) {
	d := DisplayResult{Rank: 1, Result: SearchResult{Path: "README.md", Score: 2.0}}
	out := formatSingleText(d)
	if !strings.Contains(out, "lang: unknown") {
		t.Error("expected unknown lang")
	}
}

func TestFormatSingleJSONValue_MatchesSpecShape(t *testing.T) {
	d := DisplayResult{
		Rank: 1,
		Result: SearchResult{
			Path:          "src/event_store.go",
			Score:         12.4,
			Lang:          "go",
			SymbolsRaw:    []string{"EventStore", "Append"},
			ScoreContent:  8.0,
			ScoreSymbols:  4.4,
			MatchedFields: []string{"content", "symbols"},
		},
		ContextLines:   []ContextLine{{LineNumber: 10, Text: "type EventStore struct {"}},
		TruncatedCount: 2,
	}

	value := formatSingleJSONValue(d, "EventStore")

	matched, ok := value["matched_symbols"].([]string)
	if !ok || len(matched) != 1 || matched[0] != "EventStore" {
		t.Fatalf("expected matched_symbols [EventStore], got %v", value["matched_symbols"])
	}

	lines, ok := value["lines"].([]map[string]interface{})
	if !ok || len(lines) != 1 || lines[0]["num"] != 10 {
		t.Fatalf("expected lines[0].num == 10, got %v", value["lines"])
	}

	rf, ok := value["ranking_factors"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected ranking_factors object, got %v", value["ranking_factors"])
	}
	if rf["bm25_content"] != 8.0 || rf["bm25_symbols"] != 4.4 {
		t.Errorf("unexpected bm25 fields: %v", rf)
	}
	if rf["symbol_boost"] != "3x" {
		t.Errorf("expected symbol_boost 3x, got %v", rf["symbol_boost"])
	}

	if value["truncated_lines"] != 2 {
		t.Errorf("expected truncated_lines 2, got %v", value["truncated_lines"])
	}
	if _, present := value["symbols_raw"]; present {
		t.Error("symbols_raw should not appear in the JSON shape")
	}
	if _, present := value["context_lines"]; present {
		t.Error("context_lines should not appear in the JSON shape")
	}
}

func TestMatchedSymbols_CaseInsensitiveIntersection(t *testing.T) {
	got := matchedSymbols([]string{"EventStore", "Helper", "append"}, "eventstore append")
	if len(got) != 2 || got[0] != "EventStore" || got[1] != "append" {
		t.Fatalf("unexpected matched symbols: %v", got)
	}
}
