package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
allocation:
  grid_minutes: 5
  alpha_min: 15
  beta_max: 30
timing:
  grid_minutes: 5
  alpha_min: 15
history:
  backend: jsonl
  path: edits.log
  limit: 20
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.Allocation.AlphaMin)
	assert.Equal(t, 30, cfg.Allocation.BetaMax)
	assert.Equal(t, "jsonl", cfg.History.Backend)
	assert.Equal(t, 20, cfg.History.Limit)
	// untouched sections get their defaults
	assert.Equal(t, 3.0, cfg.Allocation.SpecialistMultiplier)
	assert.Equal(t, 25, cfg.Timing.MinBeforeAfter)
	assert.Equal(t, "2112", cfg.Metrics.PrometheusPort)
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{"history": {"backend": "memory"}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.History.Backend)
	assert.Equal(t, 5, cfg.Allocation.GridMinutes)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("RS_ALLOCATION__BETA_MAX", "25")
	path := writeConfig(t, "config.yaml", "history:\n  backend: memory\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Allocation.BetaMax)
}

func TestLoadRejectsGridMismatch(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
allocation:
  grid_minutes: 5
timing:
  grid_minutes: 10
  alpha_min: 10
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "share one grid")
}

func TestLoadRejectsUnknownFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", "")
	_, err := Load(path)
	require.Error(t, err)
}

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
}
