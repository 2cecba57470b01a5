package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mbeaumont/dircomp/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "dircomp <left> <right>",
		Short: "Recursive directory tree comparison tool",
		Long: `dircomp recursively compares two directory trees and reports files
present only on one side, files whose contents differ (with per-line
differences), and identical files. Differences are a normal result:
the exit code is zero unless a root path is invalid or unreadable.`,
		Args:          cobra.ExactArgs(2),
		RunE:          cli.RunCompare,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add global and comparison flags
	cli.AddGlobalFlags(rootCmd)
	cli.AddCompareFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(cli.NewConfigCommand())
	rootCmd.AddCommand(cli.NewVersionCommand())

	return rootCmd.Execute()
}
