package indexer

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/jward/nanosearch/internal/index"
)

// DefaultMaxFileSize is the size cap applied when a caller does not override
// it (spec §4.1).
const DefaultMaxFileSize = 10 * 1024 * 1024

// BuildIndex performs a full rebuild of root's index: it discards any
// existing .ns/index/, walks root for indexable files, adds one document per
// file (extracting symbols for every file, matching spec §4.5's "every
// indexed file carries extracted symbols" rather than the lighter-weight
// empty-symbols full build some tantivy-era implementations took as a
// shortcut), commits, and writes .ns/meta.json. Returns the number of files
// indexed.
//
// If the walk yields zero indexable files, no meta.json is written and
// (0, nil) is returned — an empty repository has no index to describe.
func BuildIndex(root string, maxFileSize int64) (int, error) {
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}

	files, err := Walk(root, maxFileSize)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, nil
	}

	nsDir := filepath.Join(root, ".ns")
	indexDir := filepath.Join(nsDir, "index")
	if err := os.RemoveAll(indexDir); err != nil {
		return 0, fmt.Errorf("indexer: clear existing index: %w", err)
	}
	if err := os.MkdirAll(indexDir, 0o755); err != nil {
		return 0, fmt.Errorf("indexer: create index dir: %w", err)
	}

	engine, err := index.Create(indexDir)
	if err != nil {
		return 0, fmt.Errorf("indexer: create index: %w", err)
	}
	defer engine.Close()

	start := time.Now()

	w := engine.NewWriter()
	for _, f := range files {
		doc, err := BuildDocument(root, f.RelPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: skipping %s: %v\n", f.RelPath, err)
			continue
		}
		if err := w.Add(doc); err != nil {
			return 0, err
		}
	}
	if err := w.Commit(); err != nil {
		return 0, fmt.Errorf("indexer: commit: %w", err)
	}

	elapsed := time.Since(start)
	fileCount := len(files)

	indexSize := DirSize(indexDir)
	commit := GitCommit(root)

	meta := IndexMeta{
		SchemaVersion:  SchemaVersion,
		IndexedAt:      nowISO8601(),
		GitCommit:      commit,
		FileCount:      fileCount,
		IndexSizeBytes: indexSize,
	}
	if err := WriteMeta(nsDir, meta); err != nil {
		return 0, err
	}

	fmt.Fprintf(os.Stderr, "Indexed %d files in %dms\n", fileCount, elapsed.Milliseconds())
	checkGitignoreWarning(root)

	return fileCount, nil
}

// OpenIndex opens root's existing index, verifying the stored schema_version
// against the version this build understands (spec §4.4/§6's mismatch
// error).
func OpenIndex(root string) (*index.Engine, error) {
	nsDir := filepath.Join(root, ".ns")
	meta, err := ReadMeta(nsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoIndex
		}
		if errors.Is(err, ErrCorruptMeta) {
			return nil, err
		}
		return nil, fmt.Errorf("indexer: reading meta: %w", err)
	}
	if meta.SchemaVersion != SchemaVersion {
		return nil, ErrSchemaMismatch
	}
	return index.Open(filepath.Join(nsDir, "index"))
}

// DirSize recursively sums file sizes under path. Unreadable directories
// contribute 0 rather than failing the caller.
func DirSize(path string) int64 {
	entries, err := os.ReadDir(path)
	if err != nil {
		return 0
	}
	var size int64
	for _, entry := range entries {
		full := filepath.Join(path, entry.Name())
		if entry.IsDir() {
			size += DirSize(full)
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		size += info.Size()
	}
	return size
}

// GitCommit returns the current HEAD commit hash for the repository at
// root, or nil if git is unavailable or root isn't a git repository.
func GitCommit(root string) *string {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil
	}
	commit := strings.TrimSpace(string(out))
	if commit == "" {
		return nil
	}
	return &commit
}

func checkGitignoreWarning(root string) {
	raw, err := os.ReadFile(filepath.Join(root, ".gitignore"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "warning: .ns/ is not in .gitignore. Add it to avoid committing the index.")
		return
	}
	for _, line := range strings.Split(string(raw), "\n") {
		switch strings.TrimSpace(line) {
		case ".ns/", ".ns", "/.ns/", "/.ns":
			return
		}
	}
	fmt.Fprintln(os.Stderr, "warning: .ns/ is not in .gitignore. Add it to avoid committing the index.")
}
