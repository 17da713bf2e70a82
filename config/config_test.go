package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"goog", "proto2", "osapi", "svgpan"}, cfg.Translate.Roots)
	assert.Contains(t, cfg.Translate.Deny, "goog.Promise.prototype.then")
	assert.Contains(t, cfg.Pipeline.Exclude, "_test.")
	assert.Equal(t, 4, cfg.Pipeline.Workers)
	assert.Equal(t, 250, cfg.Pipeline.DebounceMs)
	assert.Equal(t, "index.d.ts", cfg.Output.Path)
}

func TestLoadCaches(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	first, err := Load()
	require.NoError(t, err)
	second, err := Load()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "typebridge.toml")
	content := `
[translate]
roots = ["goog", "acme"]

[pipeline]
workers = 8

[output]
path = "build/closure.d.ts"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"goog", "acme"}, cfg.Translate.Roots)
	assert.Equal(t, 8, cfg.Pipeline.Workers)
	assert.Equal(t, "build/closure.d.ts", cfg.Output.Path)
	// Untouched sections keep their defaults.
	assert.Equal(t, 250, cfg.Pipeline.DebounceMs)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
