package main

import (
	"errors"
	"fmt"

	"github.com/jward/nanosearch/internal/incremental"
	"github.com/jward/nanosearch/internal/indexer"
)

// buildOrUpdateIndex runs a full rebuild when forced, when no index exists
// yet, or when the stored schema is out of date; otherwise it runs the
// incremental updater (spec §4.5/§4.6).
func buildOrUpdateIndex(root string, force bool) error {
	if !force {
		if _, err := indexer.ReadMeta(nsDir(root)); err == nil {
			stats, err := incremental.Run(root, indexer.DefaultMaxFileSize)
			if err == nil {
				fmt.Printf("Updated index: %d added, %d modified, %d deleted (%dms)\n",
					stats.Added, stats.Modified, stats.Deleted, stats.ElapsedMs)
				return nil
			}
			recoverable := errors.Is(err, indexer.ErrSchemaMismatch) ||
				errors.Is(err, indexer.ErrNoIndex) ||
				errors.Is(err, indexer.ErrCorruptMeta)
			if !recoverable {
				return err
			}
			// fall through to a full rebuild
		}
	}

	count, err := indexer.BuildIndex(root, indexer.DefaultMaxFileSize)
	if err != nil {
		return err
	}
	fmt.Printf("Indexed %d files\n", count)
	return nil
}
