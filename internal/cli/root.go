// Package cli implements the orderly command line tool.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dshills/orderly/internal/config"
	"github.com/dshills/orderly/internal/config/loader"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	LogLevel  string
	LogFormat string // "text" | "json"
	Format    string // "text" | "json" | "yaml"
	Numeric   bool

	// FS is the file system datasets are read from. Nil reads from the OS.
	FS loader.FileSystem

	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json", "yaml"}

// NewRootCommand creates the root command for the orderly CLI.
func NewRootCommand() *cobra.Command {
	return newRootCommand(&RootOptions{})
}

func newRootCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "orderly",
		Short: "Inspect ordered datasets",
		Long: `Load key/value datasets (TOML, YAML or JSON) into a weight-balanced
ordered map and inspect them: dump the tree, run order-statistic queries,
check structural invariants, or watch a file and print the change events
each edit produces.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return opts.setupLogger(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error); defaults to ORDERLY_LOG_LEVEL or info")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", "text", "log format (text|json)")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|yaml)")
	cmd.PersistentFlags().BoolVar(&opts.Numeric, "numeric", false, "order keys numerically, overriding the dataset setting")

	cmd.AddCommand(NewDumpCommand(opts))
	cmd.AddCommand(NewQueryCommand(opts))
	cmd.AddCommand(NewCheckCommand(opts))
	cmd.AddCommand(NewWatchCommand(opts))

	return cmd
}

// setupLogger configures a slog logger writing to the command's stderr.
func (o *RootOptions) setupLogger(cmd *cobra.Command) error {
	level := config.Settings{LogLevel: o.LogLevel}
	if o.LogLevel == "" {
		level.LogLevel = os.Getenv(config.EnvPrefix + "LOG_LEVEL")
	}
	lvl, err := level.Level()
	if err != nil {
		return err
	}

	hopts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch o.LogFormat {
	case "text":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), hopts)
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), hopts)
	default:
		return fmt.Errorf("unknown log format: %q", o.LogFormat)
	}
	o.Logger = slog.New(handler)
	return nil
}
