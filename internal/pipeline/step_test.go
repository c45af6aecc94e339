package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ekisa-team/denobench/internal/config"
	"github.com/ekisa-team/denobench/internal/dataset"
)

func TestGenerationStep_SkipImages(t *testing.T) {
	cfg := blindSuite()
	v := dataset.Variant{Name: dataset.Davis, Mode: dataset.Blind}

	step := GenerationStep(cfg, v)
	assert.NotContains(t, step.Command.Args, "--no_images")

	cfg.SkipImages = true
	step = GenerationStep(cfg, v)
	assert.Contains(t, step.Command.Args, "--no_images")
}

func TestStep_ExtraParameters(t *testing.T) {
	cfg := blindSuite()
	cfg.Parameters = map[string]map[string]any{
		"generate": {
			"batch_size": 4,
			"amp":        true,
			"cache":      false,
			"timeout":    "90m",
		},
	}

	step := GenerationStep(cfg, dataset.Variant{Name: dataset.Davis, Mode: dataset.Blind})
	line := commandLine(step.Command)

	// Sorted, typed trailing flags; false booleans and the reserved
	// timeout key stay off the command line.
	assert.Contains(t, line, "--amp --batch_size 4")
	assert.NotContains(t, line, "--cache")
	assert.NotContains(t, line, "--timeout")

	assert.Equal(t, 90*time.Minute, step.Timeout)
}

func TestStep_TimeoutFallsBackToSuite(t *testing.T) {
	cfg := blindSuite()
	cfg.StepTimeout = config.Duration(2 * time.Hour)

	step := EvaluationStep(cfg, dataset.Variant{Name: dataset.Set8, Mode: dataset.Blind})
	assert.Equal(t, 2*time.Hour, step.Timeout)
}

func TestStep_WorkDirAndInterpreter(t *testing.T) {
	cfg := blindSuite()
	cfg.Python = "python3"
	cfg.WorkDir = "/srv/ptfn"

	step := GenerationStep(cfg, dataset.Variant{Name: dataset.Set8, Mode: dataset.NonBlind})
	assert.Equal(t, "python3", step.Command.Name)
	assert.Equal(t, "/srv/ptfn", step.Command.Dir)
}
