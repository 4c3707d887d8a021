// Package incremental implements the Incremental Updater (spec §4.6):
// detecting what changed since the last index build and applying the
// minimal set of document add/delete operations to bring the index
// up to date.
package incremental

import "github.com/jward/nanosearch/internal/indexer"

// ChangeSet lists the relative paths added, modified, and deleted since the
// last index build. A path appears in at most one list.
type ChangeSet struct {
	Added    []string
	Modified []string
	Deleted  []string
}

// Total is the number of changed paths across all three lists.
func (c ChangeSet) Total() int {
	return len(c.Added) + len(c.Modified) + len(c.Deleted)
}

// merge folds other into base, skipping any path already present in base
// under any of the three lists (git-committed changes take precedence over
// the uncommitted working-tree diff that's merged on top of them).
func merge(base *ChangeSet, other ChangeSet) {
	existing := make(map[string]struct{}, base.Total())
	for _, p := range base.Added {
		existing[p] = struct{}{}
	}
	for _, p := range base.Modified {
		existing[p] = struct{}{}
	}
	for _, p := range base.Deleted {
		existing[p] = struct{}{}
	}

	for _, p := range other.Added {
		if _, ok := existing[p]; !ok {
			base.Added = append(base.Added, p)
		}
	}
	for _, p := range other.Modified {
		if _, ok := existing[p]; !ok {
			base.Modified = append(base.Modified, p)
		}
	}
	for _, p := range other.Deleted {
		if _, ok := existing[p]; !ok {
			base.Deleted = append(base.Deleted, p)
		}
	}
}

// filter drops paths that must never be indexed, and drops added/modified
// paths that no longer pass the indexability gates (size, binary, UTF-8).
// Deleted paths are only filtered against the skip list, since the file
// itself may no longer exist to re-check.
func filter(root string, changes *ChangeSet, maxFileSize int64) {
	changes.Added = keepIndexable(root, changes.Added, maxFileSize)
	changes.Modified = keepIndexable(root, changes.Modified, maxFileSize)

	deleted := changes.Deleted[:0]
	for _, p := range changes.Deleted {
		if !indexer.ShouldSkipPath(p) {
			deleted = append(deleted, p)
		}
	}
	changes.Deleted = deleted
}

func keepIndexable(root string, paths []string, maxFileSize int64) []string {
	kept := paths[:0]
	for _, p := range paths {
		if indexer.ShouldSkipPath(p) {
			continue
		}
		if indexer.IsIndexable(root, p, maxFileSize) {
			kept = append(kept, p)
		}
	}
	return kept
}
