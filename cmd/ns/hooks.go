package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// hooksCmd is an acknowledged stub: install/remove are named in spec.md's
// CLI surface but neither the original implementation nor this one wires up
// actual git-hook file management yet.
var hooksCmd = &cobra.Command{
	Use:   "hooks",
	Short: "Manage git hooks that keep the index current (not yet implemented)",
}

var hooksInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Print a notice; no post-commit hook is installed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(os.Stderr, "hooks install: not yet implemented")
		return nil
	},
}

var hooksRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Print a notice; no post-commit hook is removed",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(os.Stderr, "hooks remove: not yet implemented")
		return nil
	},
}

func init() {
	hooksCmd.AddCommand(hooksInstallCmd)
	hooksCmd.AddCommand(hooksRemoveCmd)
}
