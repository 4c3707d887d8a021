package incremental

import (
	"os"
	"path/filepath"
	"time"

	"github.com/jward/nanosearch/internal/indexer"
)

const isoLayout = "2006-01-02T15:04:05Z"

// detectChanges picks the cheapest detection strategy that applies: a
// git-commit-to-git-commit diff (plus any uncommitted changes layered on
// top) when the stored commit is known and git is available, or a plain
// mtime-based rewalk otherwise (spec §4.6's three-tier strategy).
func detectChanges(root string, oldCommit *string, indexedAt string, indexedPaths map[string]struct{}, maxFileSize int64) ChangeSet {
	if oldCommit != nil {
		if current := indexer.GitCommit(root); current != nil {
			var changes ChangeSet
			if *oldCommit == *current {
				changes = detectUncommitted(root, indexedPaths, indexedAt)
			} else {
				changes = gitDiffNameStatus(root, *oldCommit, *current)
				merge(&changes, detectUncommitted(root, indexedPaths, indexedAt))
			}
			filter(root, &changes, maxFileSize)
			return changes
		}
	}
	return detectMtime(root, indexedPaths, indexedAt, maxFileSize)
}

// detectUncommitted diffs the working tree against HEAD and folds in
// untracked files, classifying an untracked file already present in the
// index as modified only if its mtime is newer than indexedAt — otherwise
// it's left alone so a repeated incremental run doesn't re-add it forever.
func detectUncommitted(root string, indexedPaths map[string]struct{}, indexedAt string) ChangeSet {
	changes := gitDiffNameStatus(root, "HEAD")

	addedSet := make(map[string]struct{}, len(changes.Added))
	for _, p := range changes.Added {
		addedSet[p] = struct{}{}
	}

	indexedTime, parseErr := time.Parse(isoLayout, indexedAt)
	for _, path := range gitUntrackedFiles(root) {
		if path == "" {
			continue
		}
		if _, ok := addedSet[path]; ok {
			continue
		}
		if _, inIndex := indexedPaths[path]; inIndex {
			if parseErr == nil {
				if info, err := os.Stat(filepath.Join(root, path)); err == nil {
					if info.ModTime().After(indexedTime) {
						changes.Modified = append(changes.Modified, path)
					}
				}
			}
			continue
		}
		changes.Added = append(changes.Added, path)
		addedSet[path] = struct{}{}
	}
	return changes
}

// detectMtime rewalks the whole repository and compares against the
// indexed path set and stored timestamp — used when no git commit is on
// record (first incremental run after a non-git build, or git missing).
func detectMtime(root string, indexedPaths map[string]struct{}, indexedAt string, maxFileSize int64) ChangeSet {
	files, err := indexer.Walk(root, maxFileSize)
	if err != nil {
		return ChangeSet{}
	}

	indexedTime, parseErr := time.Parse(isoLayout, indexedAt)

	currentPaths := make(map[string]struct{}, len(files))
	var changes ChangeSet
	for _, f := range files {
		currentPaths[f.RelPath] = struct{}{}
		if _, ok := indexedPaths[f.RelPath]; !ok {
			changes.Added = append(changes.Added, f.RelPath)
			continue
		}
		if parseErr != nil {
			continue
		}
		info, err := os.Stat(filepath.Join(root, f.RelPath))
		if err != nil {
			continue
		}
		if info.ModTime().After(indexedTime) {
			changes.Modified = append(changes.Modified, f.RelPath)
		}
	}

	for path := range indexedPaths {
		if _, ok := currentPaths[path]; !ok {
			changes.Deleted = append(changes.Deleted, path)
		}
	}
	return changes
}
