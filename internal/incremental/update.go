package incremental

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jward/nanosearch/internal/index"
	"github.com/jward/nanosearch/internal/indexer"
)

// Stats summarizes one incremental run.
type Stats struct {
	Added     int
	Modified  int
	Deleted   int
	ElapsedMs int64
}

// Run opens root's existing index, detects what changed since it was last
// built, and applies the minimal set of deletes/adds to bring it current
// (spec §4.6). If nothing changed, the index is left untouched and a
// zeroed Stats is returned without opening a writer.
func Run(root string, maxFileSize int64) (Stats, error) {
	if maxFileSize <= 0 {
		maxFileSize = indexer.DefaultMaxFileSize
	}

	nsDir := filepath.Join(root, ".ns")
	meta, err := indexer.ReadMeta(nsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return Stats{}, indexer.ErrNoIndex
		}
		if errors.Is(err, indexer.ErrCorruptMeta) {
			return Stats{}, err
		}
		return Stats{}, fmt.Errorf("incremental: reading meta: %w", err)
	}
	if meta.SchemaVersion != indexer.SchemaVersion {
		return Stats{}, indexer.ErrSchemaMismatch
	}

	engine, err := index.Open(filepath.Join(nsDir, "index"))
	if err != nil {
		return Stats{}, fmt.Errorf("incremental: open index: %w", err)
	}
	defer engine.Close()

	indexedPathsList, err := engine.AllPaths()
	if err != nil {
		return Stats{}, fmt.Errorf("incremental: enumerate paths: %w", err)
	}
	indexedPaths := make(map[string]struct{}, len(indexedPathsList))
	for _, p := range indexedPathsList {
		indexedPaths[p] = struct{}{}
	}

	changes := detectChanges(root, meta.GitCommit, meta.IndexedAt, indexedPaths, maxFileSize)
	if changes.Total() == 0 {
		return Stats{}, nil
	}

	start := time.Now()

	w := engine.NewWriter()
	for _, path := range changes.Deleted {
		if err := w.DeleteByPath(path); err != nil {
			return Stats{}, err
		}
	}
	for _, path := range changes.Modified {
		if err := w.DeleteByPath(path); err != nil {
			return Stats{}, err
		}
		doc, err := indexer.BuildDocument(root, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", path, err)
			continue
		}
		if err := w.Add(doc); err != nil {
			return Stats{}, err
		}
	}
	for _, path := range changes.Added {
		doc, err := indexer.BuildDocument(root, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", path, err)
			continue
		}
		if err := w.Add(doc); err != nil {
			return Stats{}, err
		}
	}
	if err := w.Commit(); err != nil {
		return Stats{}, fmt.Errorf("incremental: commit: %w", err)
	}

	elapsed := time.Since(start)

	fileCount, err := engine.NumDocs()
	if err != nil {
		return Stats{}, fmt.Errorf("incremental: count docs: %w", err)
	}
	indexSize := indexer.DirSize(filepath.Join(nsDir, "index"))
	newMeta := indexer.IndexMeta{
		SchemaVersion:  indexer.SchemaVersion,
		IndexedAt:      time.Now().UTC().Format(isoLayout),
		GitCommit:      indexer.GitCommit(root),
		FileCount:      int(fileCount),
		IndexSizeBytes: indexSize,
	}
	if err := indexer.WriteMeta(nsDir, newMeta); err != nil {
		return Stats{}, err
	}

	return Stats{
		Added:     len(changes.Added),
		Modified:  len(changes.Modified),
		Deleted:   len(changes.Deleted),
		ElapsedMs: elapsed.Milliseconds(),
	}, nil
}
