package commands

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/langlichong/sonarqube/internal/replay"
)

// ValidateCommand holds the flags for the validate command.
type ValidateCommand struct {
	quiet bool
}

// NewValidateCommand creates and configures the validate command.
func NewValidateCommand() *cobra.Command {
	cmd := &ValidateCommand{}

	cobraCmd := &cobra.Command{
		Use:   "validate <pass.yaml>",
		Short: "Check a pass document against the schema",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().BoolVarP(&cmd.quiet, "quiet", "q", false, "Suppress output on success")

	return cobraCmd
}

// Run executes the validate command.
func (c *ValidateCommand) Run(cmd *cobra.Command, args []string) error {
	data, readErr := os.ReadFile(args[0])
	if readErr != nil {
		return fmt.Errorf("read pass document: %w", readErr)
	}

	validateErr := replay.ValidateDocument(data)
	if validateErr != nil {
		return validateErr
	}

	if !c.quiet {
		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "pass document is valid (%s)\n", args[0])
	}

	return nil
}
