package pipeline

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/ekisa-team/denobench/internal/config"
	"github.com/ekisa-team/denobench/internal/dataset"
	"github.com/ekisa-team/denobench/internal/envvar"
	"github.com/ekisa-team/denobench/internal/mapsafe"
)

// StepKind distinguishes the two phases of a benchmark run.
type StepKind string

const (
	// StepGenerate renders denoised images for a variant.
	StepGenerate StepKind = "generate"

	// StepEvaluate scores the images the generation step produced.
	StepEvaluate StepKind = "evaluate"
)

// Flag spellings of the external eval_codes modules. Centralized so a
// deployment against a diverging eval_codes checkout only has one place
// to fix.
const (
	flagNoiseLevels = "--noise_levels"
	flagConfigFile  = "--config_file"
	flagNoImages    = "--no_images"
)

// Step is one resolved child-process invocation in a benchmark plan.
type Step struct {
	Kind    StepKind
	Variant dataset.Variant
	Command Command
	Timeout time.Duration
}

// ID returns a stable identifier, e.g. "generate/davis-blind".
func (s Step) ID() string {
	return fmt.Sprintf("%s/%s", s.Kind, s.Variant.ID())
}

// GenerationStep builds the image-generation invocation for a variant.
func GenerationStep(cfg *config.Config, v dataset.Variant) Step {
	args := []string{"-m", v.GenerationModule()}
	args = appendCommonArgs(args, cfg)

	if cfg.SkipImages {
		args = append(args, flagNoImages)
	}

	args = append(args, extraArgs(cfg.Parameters[string(StepGenerate)])...)

	return Step{
		Kind:    StepGenerate,
		Variant: v,
		Command: Command{
			Name: cfg.Python,
			Args: args,
			Dir:  cfg.WorkDir,
			Env:  deviceEnv(cfg),
		},
		Timeout: stepTimeout(cfg, StepGenerate),
	}
}

// EvaluationStep builds the evaluation invocation for a variant.
func EvaluationStep(cfg *config.Config, v dataset.Variant) Step {
	args := []string{"-m", v.EvaluationModule()}
	args = appendCommonArgs(args, cfg)
	args = append(args, v.EvaluationSelector()...)
	args = append(args, extraArgs(cfg.Parameters[string(StepEvaluate)])...)

	return Step{
		Kind:    StepEvaluate,
		Variant: v,
		Command: Command{
			Name: cfg.Python,
			Args: args,
			Dir:  cfg.WorkDir,
			Env:  deviceEnv(cfg),
		},
		Timeout: stepTimeout(cfg, StepEvaluate),
	}
}

// appendCommonArgs appends the arguments both phases share: the noise levels
// as repeated values and the external JSON config path, passed through
// verbatim from the suite config.
func appendCommonArgs(args []string, cfg *config.Config) []string {
	args = append(args, flagNoiseLevels)
	for _, level := range cfg.NoiseLevels {
		args = append(args, strconv.Itoa(level))
	}
	return append(args, flagConfigFile, cfg.ConfigFile)
}

// extraArgs converts a parameters map into deterministic trailing flags.
// Booleans become bare flags when true and are omitted when false. The
// reserved "timeout" key never reaches the command line.
func extraArgs(params map[string]any) []string {
	if len(params) == 0 {
		return nil
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		if k == "timeout" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var args []string
	for _, k := range keys {
		switch v := params[k].(type) {
		case bool:
			if v {
				args = append(args, "--"+k)
			}
		default:
			args = append(args, "--"+k, mapsafe.Format(v))
		}
	}
	return args
}

// stepTimeout resolves the per-step timeout: a "timeout" entry in the step's
// parameters wins over the suite-wide step_timeout.
func stepTimeout(cfg *config.Config, kind StepKind) time.Duration {
	if raw := mapsafe.Get(cfg.Parameters[string(kind)], "timeout", ""); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil {
			return d
		}
		slog.Warn("Ignoring invalid step timeout", "step", kind, "timeout", raw)
	}
	return cfg.StepTimeout.Std()
}

func deviceEnv(cfg *config.Config) map[string]string {
	return map[string]string{
		envvar.CUDAVisibleDevices: strconv.Itoa(cfg.GPU),
	}
}
