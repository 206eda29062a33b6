package metrics

import "fmt"

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled" yaml:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port" yaml:"prometheus_port"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = "2112"
	}
}

// Validate checks mandatory fields.
func (c Config) Validate() error {
	if c.PrometheusEnabled && c.PrometheusPort == "" {
		return fmt.Errorf("prometheus_port is required when prometheus is enabled")
	}
	return nil
}
