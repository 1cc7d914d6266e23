// Package main provides the entry point for the lingua CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codefang-tech/lingua/cmd/lingua/commands"
	"github.com/codefang-tech/lingua/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "lingua",
		Short: "lingua detects programming languages and aggregates repository language statistics",
		Long: `lingua identifies the programming language of source files and rolls
per-file detections up into repository-wide byte statistics.

Commands:
  stats   Aggregate language statistics for a directory or git snapshot
  detect  Detect the language of a single file`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("config", "", "path to a lingua config file")

	rootCmd.AddCommand(commands.NewStatsCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "lingua %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
