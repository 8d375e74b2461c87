// Package config loads named rolling-window presets and default engine
// thresholds from a YAML manifest, the way funxy.yaml declares Go
// dependency bindings (sourced from the funvibe-funxy example's
// internal/ext.Config) — a flat struct of `yaml:"..."`-tagged fields
// decoded with gopkg.in/yaml.v3, not a bespoke parser.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	tadaerr "tada/internal/errors"
	"tada/internal/rolling"
)

// RollingPreset names a window/min_periods/stable combination so
// callers can declare "ts_mean_20d" once in config rather than
// threading the same three literals through every call site.
type RollingPreset struct {
	Name       string `yaml:"name"`
	Window     int    `yaml:"window"`
	MinPeriods int    `yaml:"min_periods"`
	Stable     bool   `yaml:"stable"`
}

// ToOptions converts a preset to the rolling package's Options struct.
func (p RollingPreset) ToOptions() rolling.Options {
	return rolling.Options{Window: p.Window, MinPeriods: p.MinPeriods, Stable: p.Stable}
}

// EngineConfig is the top-level manifest: named rolling presets plus
// the default parallel-fan-out threshold and hint (spec §5 "par stays
// a hint").
type EngineConfig struct {
	DefaultPar     bool            `yaml:"default_par"`
	ParThreshold   int             `yaml:"par_threshold"`
	RollingPresets []RollingPreset `yaml:"rolling_presets"`
}

// Load reads and parses an EngineConfig from a YAML file.
func Load(path string) (*EngineConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, tadaerr.Wrap(tadaerr.CastFailure, "config.Load", err, "reading config file")
	}
	var cfg EngineConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, tadaerr.Wrap(tadaerr.CastFailure, "config.Load", err, "parsing config YAML")
	}
	return &cfg, nil
}

// Preset looks up a named rolling preset, failing with OutOfBounds (spec
// §7 reserves KeyMismatch for join/groupby key-length disagreement, not
// a missing name) if none matches.
func (c *EngineConfig) Preset(name string) (RollingPreset, error) {
	for _, p := range c.RollingPresets {
		if p.Name == name {
			return p, nil
		}
	}
	return RollingPreset{}, tadaerr.Newf(tadaerr.OutOfBounds, "config.Preset", "no rolling preset named %q", name)
}
