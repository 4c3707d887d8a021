package searcher

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"github.com/jward/nanosearch/internal/index"
)

// MaxResultsCeiling caps max_results regardless of what a caller requests,
// bounding the file I/O the context extractor does per search (spec §4.8).
const MaxResultsCeiling = 100

// SearchResult is one ranked hit, with enough detail for both the text and
// JSON formatters (spec §4.8/§4.9): combined BM25 score plus its
// content/symbols decomposition and which fields actually matched.
type SearchResult struct {
	Path          string
	Score         float64
	Lang          string
	SymbolsRaw    []string
	ScoreContent  float64
	ScoreSymbols  float64
	MatchedFields []string
}

// SearchStats summarizes one search execution.
type SearchStats struct {
	TotalResults  int
	FilesSearched int
	ElapsedMs     int64
}

// SearchOptions maps 1:1 to the CLI flags that shape a query (spec §4.8).
type SearchOptions struct {
	MaxResults      int
	ContextWindow   int
	MaxContextLines int
	FileType        string
	FileGlob        string
	SymOnly         bool
	Fuzzy           bool
	Budget          int // token budget; 0 means unlimited
}

// DefaultSearchOptions mirrors the original's CLI defaults.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		MaxResults:    10,
		ContextWindow: 1,
	}
}

// ExecuteSearch runs query against engine and returns ranked results plus
// stats. filesSearched should be the index's meta.json file_count.
func ExecuteSearch(engine *index.Engine, queryText string, opts SearchOptions, filesSearched int) ([]SearchResult, SearchStats, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 || maxResults > MaxResultsCeiling {
		maxResults = MaxResultsCeiling
	}

	base := buildBaseQuery(queryText, opts)
	q := wrapLangFilter(base, opts.FileType)

	start := time.Now()
	result, err := engine.Search(q, maxResults)
	if err != nil {
		return nil, SearchStats{}, &QueryError{Query: queryText, Err: err}
	}
	elapsed := time.Since(start)

	contentScores := scoreByPath(engine, contentOnlyQuery(queryText, opts), opts.FileType)
	symbolsScores := scoreByPath(engine, symbolsOnlyQuery(queryText, opts), opts.FileType)

	results := make([]SearchResult, 0, len(result.Hits))
	for _, hit := range result.Hits {
		fields := index.DecodeHitFields(hit.Fields)
		var symbolsRaw []string
		if fields.SymbolsRaw != "" {
			symbolsRaw = strings.Split(fields.SymbolsRaw, "|")
		}

		scoreContent := contentScores[fields.Path]
		scoreSymbols := symbolsScores[fields.Path]
		var matched []string
		if scoreContent > 0 {
			matched = append(matched, "content")
		}
		if scoreSymbols > 0 {
			matched = append(matched, "symbols")
		}

		results = append(results, SearchResult{
			Path:          fields.Path,
			Score:         hit.Score,
			Lang:          fields.Lang,
			SymbolsRaw:    symbolsRaw,
			ScoreContent:  scoreContent,
			ScoreSymbols:  scoreSymbols,
			MatchedFields: matched,
		})
	}

	if opts.FileGlob != "" {
		if _, err := filepath.Match(opts.FileGlob, ""); err != nil {
			return nil, SearchStats{}, &GlobError{Pattern: opts.FileGlob, Err: err}
		}
		filtered := results[:0]
		for _, r := range results {
			if ok, _ := filepath.Match(opts.FileGlob, r.Path); ok {
				filtered = append(filtered, r)
			}
		}
		results = filtered
	}

	stats := SearchStats{
		TotalResults:  len(results),
		FilesSearched: filesSearched,
		ElapsedMs:     elapsed.Milliseconds(),
	}
	return results, stats, nil
}

// buildBaseQuery dispatches on fuzzy/sym-only/default mode (spec §4.8).
func buildBaseQuery(queryText string, opts SearchOptions) bleveQuery.Query {
	if opts.Fuzzy {
		return buildFuzzyQuery(queryText, opts.SymOnly)
	}
	if opts.SymOnly {
		return symbolsMatchQuery(queryText)
	}
	return defaultMatchQuery(queryText)
}

// defaultMatchQuery searches content and symbols, boosting symbols 3x so a
// declared name outranks an incidental mention (spec §4.4/§4.8).
func defaultMatchQuery(queryText string) bleveQuery.Query {
	content := bleve.NewMatchQuery(queryText)
	content.SetField(index.ContentField)

	symbols := bleve.NewMatchQuery(queryText)
	symbols.SetField(index.SymbolsField)
	symbols.SetBoost(3.0)

	return bleve.NewDisjunctionQuery(content, symbols)
}

func symbolsMatchQuery(queryText string) bleveQuery.Query {
	q := bleve.NewMatchQuery(queryText)
	q.SetField(index.SymbolsField)
	return q
}

func contentOnlyQuery(queryText string, opts SearchOptions) bleveQuery.Query {
	if opts.Fuzzy {
		return fuzzyFieldQuery(strings.Fields(queryText), index.ContentField, 1.0)
	}
	q := bleve.NewMatchQuery(queryText)
	q.SetField(index.ContentField)
	return q
}

func symbolsOnlyQuery(queryText string, opts SearchOptions) bleveQuery.Query {
	if opts.Fuzzy {
		return fuzzyFieldQuery(strings.Fields(queryText), index.SymbolsField, 1.0)
	}
	return symbolsMatchQuery(queryText)
}

// buildFuzzyQuery tokenizes queryText on whitespace and issues one
// edit-distance-1 fuzzy clause per token per field, OR'd together so any
// term matching any field contributes (spec §4.8's "fuzzy" mode).
func buildFuzzyQuery(queryText string, symOnly bool) bleveQuery.Query {
	terms := strings.Fields(queryText)
	if symOnly {
		return fuzzyFieldQuery(terms, index.SymbolsField, 1.0)
	}

	var disjuncts []bleveQuery.Query
	if q := fuzzyFieldQuery(terms, index.ContentField, 1.0); q != nil {
		disjuncts = append(disjuncts, q)
	}
	if q := fuzzyFieldQuery(terms, index.SymbolsField, 3.0); q != nil {
		disjuncts = append(disjuncts, q)
	}
	if len(disjuncts) == 0 {
		return bleve.NewMatchNoneQuery()
	}
	return bleve.NewDisjunctionQuery(disjuncts...)
}

// fuzzyFieldQuery builds one edit-distance-1 clause per term against field,
// OR'd together, with boost applied to every clause. Returns nil if terms
// is empty.
func fuzzyFieldQuery(terms []string, field string, boost float64) bleveQuery.Query {
	var disjuncts []bleveQuery.Query
	for _, term := range terms {
		q := bleve.NewFuzzyQuery(strings.ToLower(term))
		q.SetField(field)
		q.SetFuzziness(1)
		q.SetBoost(boost)
		disjuncts = append(disjuncts, q)
	}
	if len(disjuncts) == 0 {
		return nil
	}
	if len(disjuncts) == 1 {
		return disjuncts[0]
	}
	return bleve.NewDisjunctionQuery(disjuncts...)
}

func wrapLangFilter(base bleveQuery.Query, fileType string) bleveQuery.Query {
	if fileType == "" {
		return base
	}
	langQ := bleve.NewTermQuery(fileType)
	langQ.SetField(index.LangField)
	return bleve.NewConjunctionQuery(base, langQ)
}

// scoreByPath runs q (already scoped to one field) and returns a path→score
// map, used to decompose the combined hit score into its content/symbols
// contributions.
func scoreByPath(engine *index.Engine, q bleveQuery.Query, fileType string) map[string]float64 {
	scores := make(map[string]float64)
	scoped := wrapLangFilter(q, fileType)
	result, err := engine.Search(scoped, MaxResultsCeiling)
	if err != nil {
		return scores
	}
	for _, hit := range result.Hits {
		fields := index.DecodeHitFields(hit.Fields)
		scores[fields.Path] = hit.Score
	}
	return scores
}
