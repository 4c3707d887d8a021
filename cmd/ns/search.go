package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jward/nanosearch/internal/indexer"
	"github.com/jward/nanosearch/internal/searcher"
)

var (
	flagFileType        string
	flagGlob            string
	flagFilesOnly       bool
	flagMaxResults      int
	flagContextWindow   int
	flagJSON            bool
	flagSymOnly         bool
	flagFuzzy           bool
	flagMaxContextLines int
	flagBudget          int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the repository index",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	registerSearchFlags(searchCmd)
}

// registerSearchFlags wires the flag surface spec.md §6 documents onto cmd,
// shared between the `search` subcommand and the bare `ns <query>` form on
// the root command.
func registerSearchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&flagFileType, "type", "t", "", "restrict results to this language")
	cmd.Flags().StringVarP(&flagGlob, "glob", "g", "", "restrict results to paths matching this glob")
	cmd.Flags().BoolVarP(&flagFilesOnly, "files", "l", false, "print matching file paths only")
	cmd.Flags().IntVarP(&flagMaxResults, "max-count", "m", 10, "maximum number of results")
	cmd.Flags().IntVarP(&flagContextWindow, "context", "C", 1, "lines of context around each match")
	cmd.Flags().BoolVar(&flagJSON, "json", false, "emit machine-readable JSON")
	cmd.Flags().BoolVar(&flagSymOnly, "sym", false, "search symbol names only")
	cmd.Flags().BoolVar(&flagFuzzy, "fuzzy", false, "use fuzzy (edit-distance 1) matching")
	cmd.Flags().IntVar(&flagMaxContextLines, "max-context-lines", 0, "cap context lines per result (0 = unlimited)")
	cmd.Flags().IntVar(&flagBudget, "budget", 0, "approximate output token budget (0 = unlimited)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	queryText := strings.Join(args, " ")

	engine, err := indexer.OpenIndex(root)
	if err != nil {
		if errors.Is(err, indexer.ErrNoIndex) {
			return fmt.Errorf("no index found; run `ns index` first")
		}
		if errors.Is(err, indexer.ErrSchemaMismatch) {
			return fmt.Errorf("index schema mismatch; run `ns index` to rebuild")
		}
		if errors.Is(err, indexer.ErrCorruptMeta) {
			return fmt.Errorf("corrupt index metadata; run `ns index` to rebuild")
		}
		return err
	}
	defer engine.Close()

	meta, err := indexer.ReadMeta(nsDir(root))
	if err != nil {
		return err
	}

	opts := searcher.SearchOptions{
		MaxResults:      flagMaxResults,
		ContextWindow:   flagContextWindow,
		MaxContextLines: flagMaxContextLines,
		FileType:        flagFileType,
		FileGlob:        flagGlob,
		SymOnly:         flagSymOnly,
		Fuzzy:           flagFuzzy,
		Budget:          flagBudget,
	}

	mode := searcher.ModeText
	switch {
	case flagFilesOnly:
		mode = searcher.ModeFilesOnly
	case flagJSON:
		mode = searcher.ModeJSON
	}

	output, err := searcher.Search(engine, root, queryText, mode, opts, meta.FileCount)
	if err != nil {
		var qerr *searcher.QueryError
		var gerr *searcher.GlobError
		if errors.As(err, &qerr) || errors.As(err, &gerr) {
			return err
		}
		return fmt.Errorf("search: %w", err)
	}

	fmt.Print(output.Formatted)
	recordSearch(root, len(output.Formatted))
	if output.Stats.TotalResults == 0 {
		os.Exit(1)
	}
	return nil
}
