package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/quorumlabs/rollcall/internal/config"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// commandContext carries the lazily loaded configuration shared by all
// subcommands.
type commandContext struct {
	configPath string
	cfg        *config.Config
}

// ensureConfig loads and validates the configuration once. A missing file is
// only an error when the operator asked for one explicitly; otherwise the
// built-in defaults apply.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	if c.configPath == "" {
		c.cfg = config.Default()
	} else {
		cfg, err := config.Load(c.configPath)
		if err != nil {
			return nil, err
		}
		c.cfg = cfg
	}

	logger := newLogger(c.cfg.SlogLevel())
	slog.SetDefault(logger)
	return c.cfg, nil
}

// newLogger builds the process-wide text logger on stderr so stdout stays
// clean for exported data.
func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newRootCommand() *cobra.Command {
	ctx := &commandContext{}

	rootCmd := &cobra.Command{
		Use:           "rollcall",
		Short:         "Speaker-entity extraction for legislative transcripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&ctx.configPath, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(newExtractCommand(ctx))
	rootCmd.AddCommand(newDirectoryCommand(ctx))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the rollcall version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), "rollcall "+version)
			return err
		},
	}
}
