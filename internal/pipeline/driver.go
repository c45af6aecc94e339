package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ekisa-team/denobench/internal/config"
	"github.com/ekisa-team/denobench/internal/dataset"
)

// Driver sequences a benchmark plan: for every variant, generation runs to
// completion before its evaluation, and steps never overlap.
type Driver struct {
	runner    CommandRunner
	keepGoing bool
	dryRun    bool
}

// Option configures the driver.
type Option func(*Driver)

// WithKeepGoing makes the driver continue with the remaining variants after
// a failure instead of stopping at the first one. A variant whose generation
// failed still has its evaluation skipped.
func WithKeepGoing(enabled bool) Option {
	return func(d *Driver) {
		d.keepGoing = enabled
	}
}

// WithDryRun logs the command lines without executing anything.
func WithDryRun(enabled bool) Option {
	return func(d *Driver) {
		d.dryRun = enabled
	}
}

// NewDriver creates a driver using the given runner.
func NewDriver(runner CommandRunner, opts ...Option) *Driver {
	d := &Driver{runner: runner}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Plan resolves the suite config into the ordered step list: for each
// configured dataset, a generation step followed by its evaluation step.
func Plan(cfg *config.Config, registry *dataset.Registry) ([]Step, error) {
	mode := dataset.NonBlind
	if cfg.Blind {
		mode = dataset.Blind
	}

	steps := make([]Step, 0, 2*len(cfg.Datasets))
	for _, ds := range cfg.Datasets {
		id := dataset.Variant{Name: dataset.Name(ds), Mode: mode}.ID()
		v, ok := registry.Get(id)
		if !ok {
			return nil, fmt.Errorf("plan: %q: %w", id, dataset.ErrNotFound)
		}

		steps = append(steps, GenerationStep(cfg, v), EvaluationStep(cfg, v))
	}

	return steps, nil
}

// StepResult records the outcome of one step.
type StepResult struct {
	Step     Step
	Err      error
	Skipped  bool
	Duration time.Duration
}

// RunReport collects the outcomes of a run.
type RunReport struct {
	Results []StepResult
}

// Failed reports whether any step failed.
func (r *RunReport) Failed() bool {
	for _, res := range r.Results {
		if res.Err != nil {
			return true
		}
	}
	return false
}

// FirstError returns the first step failure, or nil.
func (r *RunReport) FirstError() error {
	for _, res := range r.Results {
		if res.Err != nil {
			return res.Err
		}
	}
	return nil
}

// Run executes the steps strictly in order. The returned report always
// covers every step; the error is the first step failure unless keep-going
// swallowed none.
func (d *Driver) Run(ctx context.Context, steps []Step) (*RunReport, error) {
	report := &RunReport{Results: make([]StepResult, 0, len(steps))}
	failed := make(map[string]bool)

	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if step.Kind == StepEvaluate && failed[step.Variant.ID()] {
			slog.Warn("Skipping evaluation, generation failed", "step", step.ID())
			report.Results = append(report.Results, StepResult{Step: step, Skipped: true})
			continue
		}

		if d.dryRun {
			slog.Info("Dry run", "step", step.ID(), "command", step.Command.String())
			report.Results = append(report.Results, StepResult{Step: step})
			continue
		}

		slog.Info("Running step", "step", step.ID(), "command", step.Command.String())

		runCtx := ctx
		var cancel context.CancelFunc
		if step.Timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, step.Timeout)
		}

		start := time.Now()
		_, stderr, err := d.runner.Run(runCtx, step.Command)
		elapsed := time.Since(start)

		if cancel != nil {
			cancel()
		}

		if err != nil {
			err = fmt.Errorf("step %s failed: %w", step.ID(), err)
			report.Results = append(report.Results, StepResult{Step: step, Err: err, Duration: elapsed})
			failed[step.Variant.ID()] = true

			slog.Error("Step failed", "step", step.ID(), "duration", elapsed, "error", err, "stderr", tail(stderr, 20))

			if !d.keepGoing {
				return report, err
			}
			continue
		}

		report.Results = append(report.Results, StepResult{Step: step, Duration: elapsed})
		slog.Info("Step finished", "step", step.ID(), "duration", elapsed)
	}

	return report, report.FirstError()
}

// tail returns the last n lines of child output for failure logs.
func tail(out []byte, n int) string {
	lines := strings.Split(strings.TrimRight(string(out), "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
