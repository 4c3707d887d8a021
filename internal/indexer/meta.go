package indexer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// SchemaVersion is bumped whenever the document/analyzer schema in
// internal/index changes incompatibly. A stored meta.json with a different
// value signals a rebuild is required (spec §4.4/§6).
const SchemaVersion = 1

// ErrNoIndex is returned when an operation requires an existing .ns/ index
// but none is present (spec §7).
var ErrNoIndex = errors.New("indexer: no index found; run `ns index` first")

// ErrSchemaMismatch is returned when a stored index's schema_version does
// not match the version this build understands (spec §4.4/§6/§7).
var ErrSchemaMismatch = errors.New("indexer: index schema mismatch; run `ns index` to rebuild")

// ErrCorruptMeta is returned when meta.json exists but cannot be parsed —
// distinct from ErrNoIndex, which means no meta.json was found at all
// (spec §7).
var ErrCorruptMeta = errors.New("indexer: corrupt index metadata; run `ns index` to rebuild")

// IndexMeta is the contents of .ns/meta.json (spec §6).
type IndexMeta struct {
	SchemaVersion  int     `json:"schema_version"`
	IndexedAt      string  `json:"indexed_at"`
	GitCommit      *string `json:"git_commit,omitempty"`
	FileCount      int     `json:"file_count"`
	IndexSizeBytes int64   `json:"index_size_bytes"`
}

func nowISO8601() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05Z")
}

// ReadMeta loads meta.json from dir.
func ReadMeta(dir string) (IndexMeta, error) {
	raw, err := os.ReadFile(filepath.Join(dir, "meta.json"))
	if err != nil {
		return IndexMeta{}, err
	}
	var m IndexMeta
	if err := json.Unmarshal(raw, &m); err != nil {
		return IndexMeta{}, fmt.Errorf("%w: %s", ErrCorruptMeta, err)
	}
	return m, nil
}

// WriteMeta serializes m to dir/meta.json, writing to a temp file in the
// same directory and renaming over the target so readers never observe a
// partially written file.
func WriteMeta(dir string, m IndexMeta) error {
	raw, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("indexer: marshal meta: %w", err)
	}
	target := filepath.Join(dir, "meta.json")
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("indexer: write meta temp file: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("indexer: rename meta file: %w", err)
	}
	return nil
}
