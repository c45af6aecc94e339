package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/denobench/internal/config"
	"github.com/ekisa-team/denobench/internal/xfs"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the suite file and its referenced files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadAndValidate(flagConfigPath, flagSchemaPath)
			if err != nil {
				return err
			}

			// The external modules own the config schema; only check that
			// the file exists and holds well-formed JSON.
			if !xfs.FileExists(cfg.ConfigFile) {
				return fmt.Errorf("config_file %s is not a regular file", cfg.ConfigFile)
			}

			data, err := os.ReadFile(cfg.ConfigFile)
			if err != nil {
				return fmt.Errorf("config_file %s: %w", cfg.ConfigFile, err)
			}

			var raw any
			if err := json.Unmarshal(data, &raw); err != nil {
				return fmt.Errorf("config_file %s is not valid JSON: %w", cfg.ConfigFile, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d noise levels, %d datasets, mode %s)\n",
				flagConfigPath, len(cfg.NoiseLevels), len(cfg.Datasets), cfg.Mode())
			return nil
		},
	}
}
