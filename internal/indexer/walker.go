// Package indexer implements the Walker and full Index Writer (spec §4.1,
// §4.5): repository traversal down to indexable files, and the pipeline
// that turns those files into a fresh on-disk index plus meta.json.
package indexer

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/jward/nanosearch/internal/lang"
)

// WalkedFile is a file that passed every indexability gate, ready to be
// turned into a document.
type WalkedFile struct {
	RelPath string // forward-slash separated, relative to root
	Content string
	Lang    string // "" if the extension is unrecognized
}

const binarySniffLen = 512

// Walk enumerates indexable files under root: honoring .gitignore (cascading
// across nested .gitignore files), hard-skipping .git and .ns directories,
// rejecting files over maxFileSize, and gating on a binary/UTF-8 check.
// Per-file I/O failures are swallowed with a stderr warning (spec §7);
// Walk itself only fails if root cannot be walked at all.
func Walk(root string, maxFileSize int64) ([]WalkedFile, error) {
	matcher := compileIgnoreMatcher(root)

	var files []WalkedFile
	walkErr := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			fmt.Fprintf(os.Stderr, "warning: walk error at %s: %v\n", path, err)
			return nil
		}
		if path == root {
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot compute relative path for %s: %v\n", path, relErr)
			return nil
		}
		relSlash := filepath.ToSlash(relPath)

		if d.IsDir() {
			name := d.Name()
			if name == ".git" || name == ".ns" {
				return filepath.SkipDir
			}
			if matcher != nil && matcher.MatchesPath(relSlash) {
				return filepath.SkipDir
			}
			return nil
		}

		if matcher != nil && matcher.MatchesPath(relSlash) {
			return nil
		}

		info, statErr := d.Info()
		if statErr != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot stat %s: %v\n", path, statErr)
			return nil
		}
		if info.Size() > maxFileSize {
			return nil
		}

		raw, readErr := os.ReadFile(path)
		if readErr != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot read %s: %v\n", path, readErr)
			return nil
		}

		if isBinary(raw) {
			return nil
		}
		if !utf8.Valid(raw) {
			fmt.Fprintf(os.Stderr, "warning: skipping non-UTF-8 file: %s\n", path)
			return nil
		}

		langTag, _ := lang.ForPath(relSlash)
		files = append(files, WalkedFile{
			RelPath: relSlash,
			Content: string(raw),
			Lang:    langTag,
		})
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("indexer: walk %s: %w", root, walkErr)
	}
	return files, nil
}

func isBinary(raw []byte) bool {
	n := len(raw)
	if n > binarySniffLen {
		n = binarySniffLen
	}
	for _, b := range raw[:n] {
		if b == 0 {
			return true
		}
	}
	return false
}

// compileIgnoreMatcher builds a cascading gitignore matcher from the root
// .gitignore plus every nested .gitignore file, mirroring standard git
// semantics closely enough for indexing purposes. Returns nil if no
// .gitignore files are present (nothing to match against).
func compileIgnoreMatcher(root string) gitignore.IgnoreParser {
	var patterns []string
	patterns = append(patterns, readGitignoreLines(filepath.Join(root, ".gitignore"))...)

	rootGitignore := filepath.Join(root, ".gitignore")
	_ = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil || d.IsDir() || d.Name() != ".gitignore" || path == rootGitignore {
			return nil
		}
		patterns = append(patterns, readGitignoreLines(path)...)
		return nil
	})

	if len(patterns) == 0 {
		return nil
	}
	return gitignore.CompileIgnoreLines(patterns...)
}

func readGitignoreLines(path string) []string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}
