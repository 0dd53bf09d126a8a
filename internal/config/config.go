// Package config loads CLI configuration from file, environment, and
// defaults.
package config

import (
	"fmt"
	"log/slog"
	"slices"
)

// Output format names.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// logLevels are the accepted log.level values.
var logLevels = []string{"debug", "info", "warn", "error"}

// Config is the full CLI configuration.
type Config struct {
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

// OutputConfig controls how replayed measures are rendered.
type OutputConfig struct {
	// Format selects the renderer: table or json.
	Format string `mapstructure:"format"`

	// NoColor disables ANSI colors in table output.
	NoColor bool `mapstructure:"no_color"`

	// AddedOnly restricts output to the added-measures diff view.
	AddedOnly bool `mapstructure:"added_only"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Output.Format != FormatTable && c.Output.Format != FormatJSON {
		return fmt.Errorf("output.format must be %q or %q, got %q", FormatTable, FormatJSON, c.Output.Format)
	}

	if !slices.Contains(logLevels, c.Log.Level) {
		return fmt.Errorf("log.level must be one of %v, got %q", logLevels, c.Log.Level)
	}

	return nil
}

// SlogLevel maps the configured level name to a slog level.
func (c LogConfig) SlogLevel() slog.Level {
	switch c.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
