package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/denobench/internal/config"
	"github.com/ekisa-team/denobench/internal/dataset"
)

// --- Mock types ---

type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, cmd Command) (stdout, stderr []byte, err error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).([]byte), args.Get(1).([]byte), args.Error(2)
}

func blindSuite() *config.Config {
	cfg := &config.Config{
		Version:     "1",
		GPU:         7,
		ConfigFile:  "experiments/ptfn_blind/config_ptfn.json",
		NoiseLevels: []int{10, 20, 30, 40},
		Blind:       true,
		Datasets:    []config.Dataset{config.DatasetDavis, config.DatasetSet8},
	}
	cfg.Normalize()
	return cfg
}

func commandLine(cmd Command) string {
	return strings.Join(append([]string{cmd.Name}, cmd.Args...), " ")
}

// --- Tests ---

func TestPlan_BlindSuite(t *testing.T) {
	steps, err := Plan(blindSuite(), dataset.DefaultRegistry())
	require.NoError(t, err)
	require.Len(t, steps, 4)

	assert.Equal(t, "generate/davis-blind", steps[0].ID())
	assert.Equal(t, "evaluate/davis-blind", steps[1].ID())
	assert.Equal(t, "generate/set8-blind", steps[2].ID())
	assert.Equal(t, "evaluate/set8-blind", steps[3].ID())
}

func TestPlan_UnknownDataset(t *testing.T) {
	cfg := blindSuite()
	cfg.Datasets = []config.Dataset{"davis"}

	// An empty registry has no davis-blind variant.
	_, err := Plan(cfg, dataset.NewRegistry())
	assert.ErrorIs(t, err, dataset.ErrNotFound)
}

func TestDriver_OrderingAndPassthrough(t *testing.T) {
	cfg := blindSuite()
	steps, err := Plan(cfg, dataset.DefaultRegistry())
	require.NoError(t, err)

	runner := new(MockRunner)
	runner.On("Run", mock.Anything, mock.Anything).Return([]byte{}, []byte{}, nil).Times(4)

	report, err := NewDriver(runner).Run(context.Background(), steps)
	require.NoError(t, err)
	assert.False(t, report.Failed())
	require.Len(t, runner.Calls, 4)

	var lines []string
	for _, call := range runner.Calls {
		cmd := call.Arguments.Get(1).(Command)
		line := commandLine(cmd)
		lines = append(lines, line)

		// Noise levels and config path pass through unmodified to every step.
		assert.Contains(t, line, "--noise_levels 10 20 30 40")
		assert.Contains(t, line, "--config_file experiments/ptfn_blind/config_ptfn.json")

		// The accelerator selection is scoped to the child process.
		assert.Equal(t, "7", cmd.Env["CUDA_VISIBLE_DEVICES"])
	}

	assert.Contains(t, lines[0], "-m eval_codes.generate_images_davis_blind")
	assert.Contains(t, lines[1], "-m eval_codes.evaluation")
	assert.NotContains(t, lines[1], "--set8")
	assert.Contains(t, lines[2], "-m eval_codes.generate_images_set8_blind")
	assert.Contains(t, lines[3], "-m eval_codes.evaluation")
	assert.Contains(t, lines[3], "--set8")

	runner.AssertExpectations(t)
}

func TestDriver_NonBlindModules(t *testing.T) {
	cfg := blindSuite()
	cfg.Blind = false

	steps, err := Plan(cfg, dataset.DefaultRegistry())
	require.NoError(t, err)

	assert.Contains(t, commandLine(steps[0].Command), "-m eval_codes.generate_images_davis ")
	assert.Contains(t, commandLine(steps[2].Command), "-m eval_codes.generate_images_set8 ")
}

func TestDriver_FailFast(t *testing.T) {
	cfg := blindSuite()
	steps, err := Plan(cfg, dataset.DefaultRegistry())
	require.NoError(t, err)

	runner := new(MockRunner)
	runner.On("Run", mock.Anything, mock.Anything).
		Return([]byte{}, []byte("CUDA out of memory"), errors.New("exit status 1")).Once()

	report, err := NewDriver(runner).Run(context.Background(), steps)
	require.Error(t, err)
	assert.True(t, report.Failed())

	// The davis generation failed, nothing after it ran.
	require.Len(t, report.Results, 1)
	assert.Equal(t, "generate/davis-blind", report.Results[0].Step.ID())

	runner.AssertNumberOfCalls(t, "Run", 1)
}

func TestDriver_KeepGoingSkipsDependentEvaluation(t *testing.T) {
	cfg := blindSuite()
	steps, err := Plan(cfg, dataset.DefaultRegistry())
	require.NoError(t, err)

	isDavisGenerate := mock.MatchedBy(func(cmd Command) bool {
		return strings.Contains(commandLine(cmd), "generate_images_davis_blind")
	})

	runner := new(MockRunner)
	runner.On("Run", mock.Anything, isDavisGenerate).
		Return([]byte{}, []byte{}, errors.New("exit status 1")).Once()
	runner.On("Run", mock.Anything, mock.Anything).Return([]byte{}, []byte{}, nil)

	report, err := NewDriver(runner, WithKeepGoing(true)).Run(context.Background(), steps)
	require.Error(t, err)
	require.Len(t, report.Results, 4)

	assert.Error(t, report.Results[0].Err)

	// The davis evaluation is skipped because its generation failed.
	assert.True(t, report.Results[1].Skipped)

	// The set8 variant still ran to completion.
	assert.NoError(t, report.Results[2].Err)
	assert.NoError(t, report.Results[3].Err)

	runner.AssertNumberOfCalls(t, "Run", 3)
}

func TestDriver_DryRun(t *testing.T) {
	cfg := blindSuite()
	steps, err := Plan(cfg, dataset.DefaultRegistry())
	require.NoError(t, err)

	runner := new(MockRunner)

	report, err := NewDriver(runner, WithDryRun(true)).Run(context.Background(), steps)
	require.NoError(t, err)
	assert.Len(t, report.Results, 4)
	assert.False(t, report.Failed())

	runner.AssertNumberOfCalls(t, "Run", 0)
}

func TestDriver_CanceledContext(t *testing.T) {
	cfg := blindSuite()
	steps, err := Plan(cfg, dataset.DefaultRegistry())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runner := new(MockRunner)

	report, err := NewDriver(runner).Run(ctx, steps)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Results)
}
