package commands

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/langlichong/sonarqube/internal/config"
	"github.com/langlichong/sonarqube/internal/replay"
)

// ReplayCommand holds the flags for the replay command.
type ReplayCommand struct {
	configPath string
	format     string
	addedOnly  bool
	noColor    bool
}

// NewReplayCommand creates and configures the replay command.
func NewReplayCommand() *cobra.Command {
	cmd := &ReplayCommand{}

	cobraCmd := &cobra.Command{
		Use:   "replay <pass.yaml>",
		Short: "Replay a recorded measure pass",
		Long:  "Replay a recorded measure pass through an in-memory repository and render the resulting measures",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.Run,
	}

	cobraCmd.Flags().StringVar(&cmd.configPath, "config", "", "Config file (default: .measures.yaml in CWD or $HOME)")
	cobraCmd.Flags().StringVarP(&cmd.format, "format", "f", "", "Output format: table or json (default from config)")
	cobraCmd.Flags().BoolVar(&cmd.addedOnly, "added-only", false, "Show only measures that changed after their initial snapshot")
	cobraCmd.Flags().BoolVar(&cmd.noColor, "no-color", false, "Disable colored output")

	return cobraCmd
}

// Run executes the replay command.
func (c *ReplayCommand) Run(cmd *cobra.Command, args []string) error {
	cfg, cfgErr := config.LoadConfig(c.configPath)
	if cfgErr != nil {
		return cfgErr
	}

	// Flags override config only when set explicitly.
	if cmd.Flags().Changed("format") {
		cfg.Output.Format = c.format
	}

	if cmd.Flags().Changed("added-only") {
		cfg.Output.AddedOnly = c.addedOnly
	}

	if cmd.Flags().Changed("no-color") {
		cfg.Output.NoColor = c.noColor
	}

	validateErr := cfg.Validate()
	if validateErr != nil {
		return validateErr
	}

	data, readErr := os.ReadFile(args[0])
	if readErr != nil {
		return fmt.Errorf("read pass document: %w", readErr)
	}

	schemaErr := replay.ValidateDocument(data)
	if schemaErr != nil {
		return schemaErr
	}

	pass, loadErr := replay.Load(bytes.NewReader(data))
	if loadErr != nil {
		return loadErr
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))

	session, replayErr := pass.Replay(logger)
	if replayErr != nil {
		return replayErr
	}

	rows, rowsErr := collectRows(session, cfg.Output.AddedOnly)
	if rowsErr != nil {
		return rowsErr
	}

	if cfg.Output.Format == config.FormatJSON {
		return renderJSON(rows, cmd.OutOrStdout())
	}

	renderTable(rows, cfg.Output.NoColor, cmd.OutOrStdout())

	return nil
}
