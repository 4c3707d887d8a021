package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// usageStats is the shape of .ns/stats.json: lightweight usage bookkeeping,
// not part of the core search/index packages (spec.md §1 names usage-stats
// bookkeeping as an external collaborator).
type usageStats struct {
	TotalSearches        uint64 `json:"total_searches"`
	LastSearchAt         string `json:"last_search_at,omitempty"`
	TotalOutputChars     uint64 `json:"total_output_chars"`
	TotalEstimatedTokens uint64 `json:"total_estimated_tokens"`
}

func readStats(root string) usageStats {
	raw, err := os.ReadFile(filepath.Join(root, ".ns", "stats.json"))
	if err != nil {
		return usageStats{}
	}
	var s usageStats
	if json.Unmarshal(raw, &s) != nil {
		return usageStats{}
	}
	return s
}

// recordSearch updates .ns/stats.json after a search. It never returns an
// error to the caller — a missing .ns/ directory (no index yet) silently
// skips the write.
func recordSearch(root string, outputChars int) {
	nsDir := filepath.Join(root, ".ns")
	if _, err := os.Stat(nsDir); err != nil {
		return
	}

	stats := readStats(root)
	stats.TotalSearches++
	stats.LastSearchAt = time.Now().UTC().Format("2006-01-02T15:04:05Z")
	stats.TotalOutputChars += uint64(outputChars)
	stats.TotalEstimatedTokens += uint64(outputChars) / 4

	raw, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(filepath.Join(nsDir, "stats.json"), raw, 0o644)
}

func formatTokenCount(tokens uint64) string {
	switch {
	case tokens >= 1_000_000:
		return fmt.Sprintf("~%.1fM", float64(tokens)/1_000_000.0)
	case tokens >= 1_000:
		return fmt.Sprintf("~%.1fk", float64(tokens)/1_000.0)
	default:
		return fmt.Sprintf("%d", tokens)
	}
}
