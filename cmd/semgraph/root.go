package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/c360/semgraph/config"
)

// RootOptions holds global flags shared by all commands, plus the loaded
// engine configuration.
type RootOptions struct {
	Facts      string
	Format     string // "text" | "json"
	LogLevel   string
	LogFormat  string
	ConfigPath string

	Config *config.Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the semgraph root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "semgraph",
		Short: "Embedded graph pattern query engine",
		Long: `semgraph loads subject-predicate-object facts from a YAML or JSON
document into an in-memory triple store and runs operations against it:
store statistics, index consistency validation, and JSON-encoded
operation tree queries.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}

			cfg := config.Default()
			if opts.ConfigPath != "" {
				loaded, err := config.Load(opts.ConfigPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			opts.Config = cfg

			// Explicit flags win over the config file.
			if !cmd.Flags().Changed("log-level") {
				opts.LogLevel = cfg.Logging.Level
			}
			if !cmd.Flags().Changed("log-format") {
				opts.LogFormat = cfg.Logging.Format
			}
			slog.SetDefault(setupLogger(opts.LogLevel, opts.LogFormat))
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.Facts, "facts", "f", "", "path to the facts document (YAML or JSON)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "info", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "text", "log format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to the engine configuration file (YAML)")

	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
