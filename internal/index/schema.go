// Package index wraps an inverted-index library (bleve) behind the narrow
// port named in the specification: open, writer, add, delete-by-path,
// commit, reader, search, num_docs, register_analyzer. Nothing above this
// package touches bleve types directly except the query construction helpers
// in internal/searcher, which build bleve query.Query values against the
// field names exported here.
package index

import (
	"unicode"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/regexp"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/whitespace"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Field names, fixed by the document schema (spec §3).
const (
	ContentField    = "content"
	SymbolsField    = "symbols"
	SymbolsRawField = "symbols_raw"
	PathField       = "path"
	LangField       = "lang"
)

// ContentAnalyzer tokenizes on runs of letters/digits/underscore and
// lowercases them — the "default splitter" the spec calls for on `content`.
// Underscore is kept as a word character so the content analyzer and the
// context extractor's tokenizer stay in lockstep (spec §9; Open Question 1).
const ContentAnalyzer = "ns_content"

// SymbolAnalyzer is the custom analyzer spec §4.4 names explicitly:
// whitespace tokenizer + lowercase filter, registered at every index open.
const SymbolAnalyzer = "symbol"

const wordTokenizer = "ns_word"

// wordBoundaryPattern matches a run of letters, digits, or underscore —
// the exact boundary rule spec §4.7 step 2 describes for query tokenization,
// mirrored here as the content field's index-time analyzer.
const wordBoundaryPattern = `[\p{L}\p{N}_]+`

// BuildMapping constructs the document mapping + custom analyzers used by a
// freshly created index. Only Create calls it: bleve persists this mapping,
// custom analyzers included, alongside the index, and Open reloads the
// analyzers from that stored mapping rather than rebuilding it here.
func BuildMapping() (*mapping.IndexMapping, error) {
	im := bleve.NewIndexMapping()

	if err := im.AddCustomTokenizer(wordTokenizer, map[string]interface{}{
		"type":   regexp.Name,
		"regexp": wordBoundaryPattern,
	}); err != nil {
		return nil, err
	}
	if err := im.AddCustomAnalyzer(ContentAnalyzer, map[string]interface{}{
		"type":          "custom",
		"tokenizer":     wordTokenizer,
		"token_filters": []string{lowercase.Name},
	}); err != nil {
		return nil, err
	}
	if err := im.AddCustomAnalyzer(SymbolAnalyzer, map[string]interface{}{
		"type":          "custom",
		"tokenizer":     whitespace.Name,
		"token_filters": []string{lowercase.Name},
	}); err != nil {
		return nil, err
	}

	doc := bleve.NewDocumentMapping()

	content := bleve.NewTextFieldMapping()
	content.Analyzer = ContentAnalyzer
	content.Store = false
	content.IncludeTermVectors = true
	doc.AddFieldMappingsAt(ContentField, content)

	symbols := bleve.NewTextFieldMapping()
	symbols.Analyzer = SymbolAnalyzer
	symbols.Store = false
	symbols.IncludeTermVectors = true
	doc.AddFieldMappingsAt(SymbolsField, symbols)

	symbolsRaw := bleve.NewTextFieldMapping()
	symbolsRaw.Analyzer = "keyword"
	symbolsRaw.Store = true
	symbolsRaw.Index = false
	doc.AddFieldMappingsAt(SymbolsRawField, symbolsRaw)

	path := bleve.NewTextFieldMapping()
	path.Analyzer = "keyword"
	path.Store = true
	doc.AddFieldMappingsAt(PathField, path)

	lang := bleve.NewTextFieldMapping()
	lang.Analyzer = "keyword"
	lang.Store = true
	doc.AddFieldMappingsAt(LangField, lang)

	im.DefaultMapping = doc
	im.DefaultAnalyzer = ContentAnalyzer
	return im, nil
}

// Tokenize splits text on the same word-boundary rule the content analyzer
// uses: runs of letters, digits, or underscore, lowercased, empties dropped.
// The context extractor (internal/searcher) calls this directly so query
// tokenization never drifts from the index-time analyzer.
func Tokenize(text string) []string {
	var tokens []string
	var current []rune
	flush := func() {
		if len(current) > 0 {
			tokens = append(tokens, string(current))
			current = current[:0]
		}
	}
	for _, r := range text {
		if isWordRune(r) {
			current = append(current, unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
