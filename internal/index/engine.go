package index

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// ErrLocked is returned by Open/Create when the index directory is already
// held open by another writer session (spec §4.4's "index locked" error).
var ErrLocked = errors.New("index: directory is locked by another process")

// Document mirrors the schema in spec §3. Symbols is space-joined declared
// names; SymbolsRaw is the same names pipe-joined, case preserved.
type Document struct {
	Path       string `json:"path"`
	Content    string `json:"content"`
	Symbols    string `json:"symbols"`
	SymbolsRaw string `json:"symbols_raw"`
	Lang       string `json:"lang"`
}

// Engine is a thin wrapper over a bleve index: the "reader" side of the
// port. Writer sessions are obtained via NewWriter.
type Engine struct {
	idx bleve.Index
}

// Create builds a fresh index at dir with the schema mapping and custom
// analyzers registered.
func Create(dir string) (*Engine, error) {
	m, err := BuildMapping()
	if err != nil {
		return nil, fmt.Errorf("index: build mapping: %w", err)
	}
	idx, err := bleve.New(dir, m)
	if err != nil {
		if isLockErr(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("index: create: %w", err)
	}
	return &Engine{idx: idx}, nil
}

// Open opens an existing index at dir for reading or incremental writes.
func Open(dir string) (*Engine, error) {
	idx, err := bleve.Open(dir)
	if err != nil {
		if isLockErr(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("index: open: %w", err)
	}
	return &Engine{idx: idx}, nil
}

func isLockErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "lock") || strings.Contains(msg, "already open")
}

// Close releases the underlying index handle.
func (e *Engine) Close() error {
	if e == nil || e.idx == nil {
		return nil
	}
	return e.idx.Close()
}

// NumDocs returns the number of documents in the committed index.
func (e *Engine) NumDocs() (uint64, error) {
	return e.idx.DocCount()
}

// AllPaths enumerates every document's path by scanning the committed
// segments (used by the incremental updater's mtime fallback, spec §4.6).
// Document IDs are the document's path, so this is a plain match-all scan
// over IDs rather than a stored-field read.
func (e *Engine) AllPaths() ([]string, error) {
	count, err := e.idx.DocCount()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), int(count), 0, false)
	req.Fields = nil
	result, err := e.idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("index: enumerate paths: %w", err)
	}
	paths := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		paths = append(paths, hit.ID)
	}
	return paths, nil
}

// Writer accumulates add/delete mutations for one commit. One writer per
// commit, matching spec §4.4's "commits are serialized" rule — callers must
// not hold two writers open concurrently against the same Engine.
type Writer struct {
	engine *Engine
	batch  *bleve.Batch
}

// NewWriter starts a new batched write session.
func (e *Engine) NewWriter() *Writer {
	return &Writer{engine: e, batch: e.idx.NewBatch()}
}

// Add indexes doc, keyed by its path.
func (w *Writer) Add(doc Document) error {
	if err := w.batch.Index(doc.Path, doc); err != nil {
		return fmt.Errorf("index: add %s: %w", doc.Path, err)
	}
	return nil
}

// DeleteByPath removes the document with the given path, if present.
func (w *Writer) DeleteByPath(path string) error {
	w.batch.Delete(path)
	return nil
}

// Commit publishes all accumulated mutations atomically.
func (w *Writer) Commit() error {
	if err := w.engine.idx.Batch(w.batch); err != nil {
		return fmt.Errorf("index: commit: %w", err)
	}
	w.batch = w.engine.idx.NewBatch()
	return nil
}

// HitFields are the stored fields decoded from a search hit.
type HitFields struct {
	Path       string
	Lang       string
	SymbolsRaw string
}

// Search executes q against the committed index, returning up to size hits
// with score and stored fields populated.
func (e *Engine) Search(q query.Query, size int) (*bleve.SearchResult, error) {
	req := bleve.NewSearchRequestOptions(q, size, 0, false)
	req.Fields = []string{PathField, LangField, SymbolsRawField}
	return e.idx.Search(req)
}

// DecodeHitFields extracts the stored field values from a search hit.
func DecodeHitFields(fields map[string]interface{}) HitFields {
	return HitFields{
		Path:       stringField(fields, PathField),
		Lang:       stringField(fields, LangField),
		SymbolsRaw: stringField(fields, SymbolsRawField),
	}
}

func stringField(fields map[string]interface{}, name string) string {
	v, ok := fields[name]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}
