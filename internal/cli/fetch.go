package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/denobench/internal/config"
	"github.com/ekisa-team/denobench/internal/config/source"
	"github.com/ekisa-team/denobench/internal/envvar"
	"github.com/ekisa-team/denobench/internal/xfs"
)

func newFetchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Download the pretrained weights referenced by the suite file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadAndValidate(flagConfigPath, flagSchemaPath)
			if err != nil {
				return err
			}

			weightsSource, err := cfg.Weights.GetSource()
			if err != nil {
				return errors.New("suite file has no weights source to fetch")
			}

			downloader, err := source.GetDownloader(weightsSource.Type())
			if err != nil {
				return err
			}

			weightsPath := resolveWeightsPath(cfg)
			if err := source.EnsureWeightsDirectory(weightsPath); err != nil {
				return err
			}

			path, cached, err := downloader.Download(cmd.Context(), &cfg.Weights, weightsPath)
			if err != nil {
				return fmt.Errorf("failed to download weights: %w", err)
			}

			if cached {
				fmt.Fprintf(cmd.OutOrStdout(), "weights up to date at %s\n", path)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "weights downloaded to %s\n", path)
			}
			return nil
		},
	}
}

// resolveWeightsPath returns the weights directory.
// Precedence:
// 1. DENOBENCH_WEIGHTS_PATH environment variable.
// 2. Dir field in the suite file's weights section.
// 3. Default weights path.
func resolveWeightsPath(cfg *config.Config) string {
	if p := os.Getenv(envvar.DenobenchWeightsPath); p != "" {
		return xfs.ExpandTilde(p)
	}
	if cfg.Weights.Dir != "" {
		return cfg.Weights.Dir
	}
	return xfs.ExpandTilde(config.DefaultWeightsPath())
}
