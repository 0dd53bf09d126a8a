// Package main provides the entry point for the measures CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/langlichong/sonarqube/cmd/measures/commands"
	"github.com/langlichong/sonarqube/pkg/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "measures",
		Short: "Measures - replay and inspect recorded measure passes",
		Long: `Measures loads recorded measure passes and replays them through an
in-memory measure repository.

Commands:
  replay    Replay a recorded pass and render the resulting measures
  validate  Check a pass document against the schema`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewReplayCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "measures %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
