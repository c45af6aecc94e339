package cli

import (
	"log/slog"
	"sync"

	"github.com/spf13/cobra"

	"github.com/ekisa-team/denobench/internal/config"
	"github.com/ekisa-team/denobench/internal/dataset"
	"github.com/ekisa-team/denobench/internal/pipeline"
)

func newWatchCommand() *cobra.Command {
	var flagKeepGoing bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the suite, then re-run it whenever the suite file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			driver := pipeline.NewDriver(pipeline.ExecCommandRunner{},
				pipeline.WithKeepGoing(flagKeepGoing),
			)

			// Runs never overlap: a reload arriving mid-run waits for the
			// current run to finish.
			var mu sync.Mutex
			runSuite := func(cfg *config.Config) {
				mu.Lock()
				defer mu.Unlock()

				steps, err := pipeline.Plan(cfg, dataset.DefaultRegistry())
				if err != nil {
					slog.Error("Failed to plan suite", "error", err)
					return
				}

				if _, err := driver.Run(ctx, steps); err != nil {
					slog.Error("Suite run failed", "error", err)
					return
				}

				slog.Info("Suite run finished, watching for changes", "config", flagConfigPath)
			}

			watcher, err := config.NewWatcher(flagConfigPath, flagSchemaPath, func(cfg *config.Config, err error) {
				if err != nil {
					slog.Error("Failed to reload suite file", "error", err)
					return
				}
				runSuite(cfg)
			})
			if err != nil {
				return err
			}

			runSuite(watcher.Snapshot())

			<-ctx.Done()
			slog.Info("Shutting down")
			return nil
		},
	}

	cmd.Flags().BoolVar(&flagKeepGoing, "keep-going", false, "Continue with remaining variants after a failure")

	return cmd
}
