package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/raw/trade", cfg.Data.TradeDir)
	assert.Equal(t, "data/raw/usgs", cfg.Data.USGSDir)
	assert.Empty(t, cfg.Data.CatalogPath)
	assert.Equal(t, "data", cfg.Prepare.OutputDir)
	assert.Equal(t, int64(42), cfg.Prepare.Seed)
	assert.InDelta(t, 0.85, cfg.Prepare.TrainRatio, 0.001)
	assert.InDelta(t, 0.10, cfg.Prepare.ValidRatio, 0.001)
	assert.InDelta(t, 0.05, cfg.Prepare.TestRatio, 0.001)
	assert.Equal(t, "results", cfg.Evaluate.OutputDir)
	assert.Equal(t, 8, cfg.Evaluate.Concurrency)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
data:
  trade_dir: /srv/trade
prepare:
  seed: 7
  train_ratio: 0.8
  valid_ratio: 0.1
  test_ratio: 0.1
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/trade", cfg.Data.TradeDir)
	assert.Equal(t, int64(7), cfg.Prepare.Seed)
	assert.InDelta(t, 0.8, cfg.Prepare.TrainRatio, 0.001)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	// Defaults still apply for unset values
	assert.Equal(t, "data/raw/usgs", cfg.Data.USGSDir)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("CMM_LOG_LEVEL", "warn")
	t.Setenv("CMM_EVALUATE_CONCURRENCY", "2")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 2, cfg.Evaluate.Concurrency)
}

func TestInitLogger(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NotNil(t, zap.L())

	require.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))

	err := InitLogger(LogConfig{Level: "not-a-level", Format: "json"})
	require.Error(t, err)
}
