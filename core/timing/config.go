package timing

import "fmt"

// Config defines the timing-stage tunables. MicroItemMinutes and
// MinBeforeAfter are the break placement guardrails: a break should not
// isolate a tiny item, and both halves of the session should keep a
// reasonable amount of work.
type Config struct {
	GridMinutes      int `json:"grid_minutes" yaml:"grid_minutes"`
	AlphaMin         int `json:"alpha_min" yaml:"alpha_min"`
	MicroItemMinutes int `json:"micro_item_minutes" yaml:"micro_item_minutes"`
	MinBeforeAfter   int `json:"min_before_after" yaml:"min_before_after"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.GridMinutes == 0 {
		c.GridMinutes = 5
	}
	if c.AlphaMin == 0 {
		c.AlphaMin = 10
	}
	if c.MicroItemMinutes == 0 {
		c.MicroItemMinutes = 4
	}
	if c.MinBeforeAfter == 0 {
		c.MinBeforeAfter = 25
	}
}

// Validate checks the guardrails are coherent.
func (c Config) Validate() error {
	if c.GridMinutes < 1 {
		return fmt.Errorf("grid_minutes must be positive")
	}
	if c.AlphaMin < c.GridMinutes {
		return fmt.Errorf("alpha_min must be at least one grid unit")
	}
	if c.MicroItemMinutes < 0 || c.MinBeforeAfter < 0 {
		return fmt.Errorf("break guardrails must not be negative")
	}
	return nil
}
