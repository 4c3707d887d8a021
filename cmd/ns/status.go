package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jward/nanosearch/internal/indexer"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current index status",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}

	meta, err := indexer.ReadMeta(nsDir(root))
	if err != nil {
		if errors.Is(err, indexer.ErrCorruptMeta) {
			return fmt.Errorf("corrupt index metadata; run `ns index` to rebuild")
		}
		return fmt.Errorf("no index found; run `ns index` to create one")
	}

	fmt.Println("ns index status")
	fmt.Printf("  schema version : %d\n", meta.SchemaVersion)
	fmt.Printf("  files indexed  : %d\n", meta.FileCount)
	fmt.Printf("  index size     : %s\n", formatBytes(meta.IndexSizeBytes))
	fmt.Printf("  indexed at     : %s\n", meta.IndexedAt)
	if meta.GitCommit != nil {
		commit := *meta.GitCommit
		if len(commit) > 12 {
			commit = commit[:12]
		}
		fmt.Printf("  git commit     : %s\n", commit)
	}

	stats := readStats(root)
	if stats.TotalSearches > 0 {
		fmt.Printf("  searches run   : %d (%s tokens emitted)\n",
			stats.TotalSearches, formatTokenCount(stats.TotalEstimatedTokens))
	}

	return nil
}

func formatBytes(n int64) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024.0)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024.0*1024.0))
	}
}
