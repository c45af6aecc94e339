// Package cli wires the denobench command tree.
package cli

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/denobench/internal/config"
	"github.com/ekisa-team/denobench/internal/env"
	"github.com/ekisa-team/denobench/internal/logger"
)

var (
	flagConfigPath string
	flagSchemaPath string
	flagLogFile    string
	flagVerbose    bool
)

// NewRootCommand builds the denobench command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "denobench",
		Short: "Video denoising benchmark driver",
		Long: "denobench sequences the eval_codes image generation and evaluation\n" +
			"modules over the configured dataset variants, one process at a time.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if flagVerbose {
				level = slog.LevelDebug
			}

			slog.SetDefault(
				logger.New(env.FromEnv(),
					logger.WithLogToFile(true),
					logger.WithLogFile(flagLogFile),
					logger.WithLevel(level),
				),
			)
		},
	}

	root.PersistentFlags().StringVar(&flagConfigPath, "config",
		filepath.Join(config.DefaultConfigPath(), "suite.yaml"), "Path to suite file")
	root.PersistentFlags().StringVar(&flagSchemaPath, "schema",
		filepath.Join(config.DefaultConfigPath(), "denobench.v1.schema.json"), "Path to schema file")
	root.PersistentFlags().StringVar(&flagLogFile, "log-file",
		filepath.Join("logs", "denobench.log"), "Path to rotated log file")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newRunCommand(),
		newValidateCommand(),
		newFetchCommand(),
		newWatchCommand(),
	)

	return root
}
