package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatchEngineRebuilds(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "names.ast.json"), goodModule)

	cfg := testConfig(t)
	cfg.Pipeline.DebounceMs = 50
	runner := NewRunner(cfg, zap.NewNop().Sugar())

	engine, err := NewWatchEngine(runner, root, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.NoError(t, engine.Start())
	defer engine.Stop()

	// The initial build runs before the loop starts.
	data, err := os.ReadFile(cfg.Output.Path)
	require.NoError(t, err)
	require.Contains(t, string(data), "goog.color.names")

	// A new module appearing under root triggers a debounced rebuild.
	second := strings.Replace(goodModule, "goog.color", "goog.other", -1)
	writeFile(t, filepath.Join(root, "other.ast.json"), second)

	require.Eventually(t, func() bool {
		out, err := os.ReadFile(cfg.Output.Path)
		return err == nil && strings.Contains(string(out), "goog.other.names")
	}, 5*time.Second, 50*time.Millisecond, "rebuild never picked up the new module")
}

func TestWatchEngineStops(t *testing.T) {
	root := t.TempDir()
	runner := NewRunner(testConfig(t), zap.NewNop().Sugar())

	engine, err := NewWatchEngine(runner, root, zap.NewNop().Sugar())
	require.NoError(t, err)
	require.NoError(t, engine.Start())

	done := make(chan struct{})
	go func() {
		engine.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not return")
	}
}
