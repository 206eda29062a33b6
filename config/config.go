// Package config loads and validates the service configuration from a
// JSON or YAML file, with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/JackCapstaff/rehearsal-schedule/core/allocation"
	"github.com/JackCapstaff/rehearsal-schedule/core/metrics"
	"github.com/JackCapstaff/rehearsal-schedule/core/timing"
)

type Config struct {
	Allocation allocation.Config `json:"allocation"`
	Timing     timing.Config     `json:"timing"`
	Metrics    metrics.Config    `json:"metrics"`
	History    HistoryConfig     `json:"history"`
}

// Default returns a configuration with every section at its defaults.
func Default() *Config {
	var cfg Config
	cfg.Allocation.SetDefaults()
	cfg.Timing.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.History.SetDefaults()
	return &cfg
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides, e.g. RS_ALLOCATION__BETA_MAX=30.
	if err := k.Load(env.Provider("RS_", "__", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "rs_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Allocation.SetDefaults()
	cfg.Timing.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.History.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every section and the cross-section invariants.
func (c Config) Validate() error {
	if err := c.Allocation.Validate(); err != nil {
		return fmt.Errorf("allocation: %w", err)
	}
	if err := c.Timing.Validate(); err != nil {
		return fmt.Errorf("timing: %w", err)
	}
	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.History.Validate(); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if c.Allocation.GridMinutes != c.Timing.GridMinutes {
		return fmt.Errorf("allocation and timing must share one grid, got %d and %d",
			c.Allocation.GridMinutes, c.Timing.GridMinutes)
	}
	if c.Timing.AlphaMin != c.Allocation.AlphaMin {
		return fmt.Errorf("allocation and timing must share alpha_min, got %d and %d",
			c.Allocation.AlphaMin, c.Timing.AlphaMin)
	}
	return nil
}
