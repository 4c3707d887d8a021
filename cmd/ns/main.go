package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "ns",
	Short:         "Ranked, symbol-aware code search for source repositories",
	Long:          "ns indexes a repository's source files for BM25 full-text and symbol search, and keeps the index current as the tree changes.",
	SilenceErrors: true,
	SilenceUsage:  true,
	Args:          cobra.ArbitraryArgs,
	// A bare `ns <query>` is shorthand for `ns search <query>`.
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return cmd.Help()
		}
		return runSearch(cmd, args)
	},
}

func init() {
	registerSearchFlags(rootCmd)

	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(hooksCmd)
}

// repoRoot resolves the directory ns operates against: the current working
// directory, canonicalized.
func repoRoot() (string, error) {
	abs, err := filepath.Abs(".")
	if err != nil {
		return "", fmt.Errorf("resolving current directory: %w", err)
	}
	return abs, nil
}

func nsDir(root string) string {
	return filepath.Join(root, ".ns")
}

var flagForce bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build or rebuild the repository index",
	Args:  cobra.NoArgs,
	RunE:  runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&flagForce, "force", false, "rebuild from scratch even if an index already exists")
}

func runIndex(cmd *cobra.Command, args []string) error {
	root, err := repoRoot()
	if err != nil {
		return err
	}
	return buildOrUpdateIndex(root, flagForce)
}
