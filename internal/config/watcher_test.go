package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ekisa-team/denobench/internal/envvar"
)

const suiteWithGPU = `
version: "1"
gpu: %d
config_file: cfg.json
noise_levels: [10, 20]
`

func startWatcher(t *testing.T, path string) (*Watcher, chan *Config, chan error) {
	t.Helper()

	reloaded := make(chan *Config, 4)
	failed := make(chan error, 4)

	watcher, err := NewWatcher(path, schemaPath, func(cfg *Config, err error) {
		if err != nil {
			failed <- err
			return
		}
		reloaded <- cfg
	})
	require.NoError(t, err)

	// Give the watch goroutine time to register the directory watch.
	time.Sleep(200 * time.Millisecond)

	return watcher, reloaded, failed
}

func rewriteSuite(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func waitReload(t *testing.T, reloaded chan *Config) *Config {
	t.Helper()

	select {
	case cfg := <-reloaded:
		return cfg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for suite reload")
		return nil
	}
}

func TestWatcher_ReloadsOnRewrite(t *testing.T) {
	t.Setenv(envvar.DenobenchPython, "")

	path := filepath.Join(t.TempDir(), "suite.yaml")
	rewriteSuite(t, path, suiteYAML(1))

	watcher, reloaded, _ := startWatcher(t, path)
	assert.Equal(t, 1, watcher.Snapshot().GPU)

	rewriteSuite(t, path, suiteYAML(2))

	cfg := waitReload(t, reloaded)
	assert.Equal(t, 2, cfg.GPU)
	assert.Equal(t, 2, watcher.Snapshot().GPU)
	assert.GreaterOrEqual(t, watcher.ReloadCount(), uint32(1))
}

func TestWatcher_UncleanPath(t *testing.T) {
	t.Setenv(envvar.DenobenchPython, "")

	dir := t.TempDir()
	unclean := dir + string(os.PathSeparator) + "." + string(os.PathSeparator) + "suite.yaml"
	rewriteSuite(t, unclean, suiteYAML(1))

	watcher, reloaded, _ := startWatcher(t, unclean)

	rewriteSuite(t, unclean, suiteYAML(3))

	cfg := waitReload(t, reloaded)
	assert.Equal(t, 3, cfg.GPU)
	assert.Equal(t, 3, watcher.Snapshot().GPU)
}

func TestWatcher_BadRewriteKeepsSnapshot(t *testing.T) {
	t.Setenv(envvar.DenobenchPython, "")

	path := filepath.Join(t.TempDir(), "suite.yaml")
	rewriteSuite(t, path, suiteYAML(1))

	watcher, _, failed := startWatcher(t, path)

	rewriteSuite(t, path, "version: [unclosed")

	select {
	case err := <-failed:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload failure")
	}

	// The last good config survives a bad rewrite.
	assert.Equal(t, 1, watcher.Snapshot().GPU)
}

func TestWatcher_InitialLoadMustSucceed(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope.yaml"), schemaPath, func(*Config, error) {})
	assert.ErrorContains(t, err, "failed to load initial suite config")
}

func suiteYAML(gpu int) string {
	return fmt.Sprintf(suiteWithGPU, gpu)
}
