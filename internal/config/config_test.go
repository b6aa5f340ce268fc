package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsComplete(t *testing.T) {
	cfg := Default()

	assert.Greater(t, cfg.World.Width, 0)
	assert.Greater(t, cfg.World.Height, 0)
	assert.Greater(t, cfg.Roads.MaxPasses, 0)
	assert.NotEmpty(t, cfg.Output.MapPNG)
	assert.NotEmpty(t, cfg.Output.Database)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
world:
  width: 64
  height: 48
  seed: 1234
roads:
  max_passes: 5
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.World.Width)
	assert.Equal(t, 48, cfg.World.Height)
	assert.Equal(t, int64(1234), cfg.World.Seed)
	assert.Equal(t, 5, cfg.Roads.MaxPasses)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Omitted sections keep their defaults.
	assert.Equal(t, Default().Output.MapPNG, cfg.Output.MapPNG)
	assert.Equal(t, Default().Settlements.Cities, cfg.Settlements.Cities)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadEmptyPathUsesDefaults(t *testing.T) {
	t.Setenv("ROADGEN_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().World.Width, cfg.World.Width)
}
