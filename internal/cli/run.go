package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/denobench/internal/config"
	"github.com/ekisa-team/denobench/internal/dataset"
	"github.com/ekisa-team/denobench/internal/pipeline"
)

func newRunCommand() *cobra.Command {
	var (
		flagGPU         int
		flagNoiseLevels string
		flagDryRun      bool
		flagKeepGoing   bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark suite",
		Long: "Load the suite file, then for each configured dataset run image\n" +
			"generation followed by evaluation, strictly in order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadAndValidate(flagConfigPath, flagSchemaPath)
			if err != nil {
				return err
			}

			if err := applyOverrides(cmd, cfg, flagGPU, flagNoiseLevels); err != nil {
				return err
			}

			steps, err := pipeline.Plan(cfg, dataset.DefaultRegistry())
			if err != nil {
				return err
			}

			slog.Info("Suite loaded",
				"config", flagConfigPath,
				"gpu", cfg.GPU,
				"mode", cfg.Mode(),
				"noise_levels", cfg.NoiseLevels,
				"steps", len(steps),
			)

			driver := pipeline.NewDriver(pipeline.ExecCommandRunner{},
				pipeline.WithDryRun(flagDryRun),
				pipeline.WithKeepGoing(flagKeepGoing),
			)

			report, err := driver.Run(cmd.Context(), steps)
			printSummary(report)
			return err
		},
	}

	cmd.Flags().IntVar(&flagGPU, "gpu", 0, "Override the GPU device id from the suite file")
	cmd.Flags().StringVar(&flagNoiseLevels, "noise-levels", "", "Override noise levels, space-separated (e.g. \"10 20 30 40\")")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Log command lines without executing them")
	cmd.Flags().BoolVar(&flagKeepGoing, "keep-going", false, "Continue with remaining variants after a failure")

	return cmd
}

// applyOverrides folds explicitly set run flags into the loaded suite config.
func applyOverrides(cmd *cobra.Command, cfg *config.Config, gpu int, noiseLevels string) error {
	if cmd.Flags().Changed("gpu") {
		cfg.GPU = gpu
	}

	if cmd.Flags().Changed("noise-levels") {
		levels, err := parseNoiseLevels(noiseLevels)
		if err != nil {
			return err
		}
		cfg.NoiseLevels = levels
	}

	return cfg.Validate()
}

func parseNoiseLevels(raw string) ([]int, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, fmt.Errorf("no noise levels in %q", raw)
	}

	levels := make([]int, 0, len(fields))
	for _, f := range fields {
		level, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("invalid noise level %q: %w", f, err)
		}
		levels = append(levels, level)
	}

	return levels, nil
}

func printSummary(report *pipeline.RunReport) {
	for _, res := range report.Results {
		switch {
		case res.Skipped:
			slog.Warn("Step skipped", "step", res.Step.ID())
		case res.Err != nil:
			slog.Error("Step failed", "step", res.Step.ID(), "duration", res.Duration)
		default:
			slog.Info("Step ok", "step", res.Step.ID(), "duration", res.Duration)
		}
	}
}
