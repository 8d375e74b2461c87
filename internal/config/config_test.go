package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadResolvesRollingPreset(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tada.yaml")
	err := os.WriteFile(path, []byte(`
default_par: true
par_threshold: 4
rolling_presets:
  - name: ts_mean_20d
    window: 20
    min_periods: 5
    stable: true
`), 0o644)
	require.NoError(t, err)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.DefaultPar)
	require.Equal(t, 4, cfg.ParThreshold)

	preset, err := cfg.Preset("ts_mean_20d")
	require.NoError(t, err)
	require.Equal(t, 20, preset.ToOptions().Window)
	require.Equal(t, 5, preset.ToOptions().MinPeriods)
	require.True(t, preset.ToOptions().Stable)

	_, err = cfg.Preset("missing")
	require.Error(t, err)
}
