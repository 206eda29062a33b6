package allocation

import "fmt"

// Config defines the allocation tunables loaded from configuration.
// AlphaMin and BetaMax bound the minutes a work may receive in a single
// rehearsal appearance.
type Config struct {
	GridMinutes          int     `json:"grid_minutes" yaml:"grid_minutes"`
	AlphaMin             int     `json:"alpha_min" yaml:"alpha_min"`
	BetaMax              int     `json:"beta_max" yaml:"beta_max"`
	SpreadShare          float64 `json:"spread_share" yaml:"spread_share"`
	SpreadWeight         float64 `json:"spread_weight" yaml:"spread_weight"`
	SpecialistMultiplier float64 `json:"specialist_multiplier" yaml:"specialist_multiplier"`
	SoloistMultiplier    float64 `json:"soloist_multiplier" yaml:"soloist_multiplier"`
	RecencyBonus         float64 `json:"recency_bonus" yaml:"recency_bonus"`
	StackingWeight       float64 `json:"stacking_weight" yaml:"stacking_weight"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.GridMinutes == 0 {
		c.GridMinutes = 5
	}
	if c.AlphaMin == 0 {
		c.AlphaMin = 10
	}
	if c.BetaMax == 0 {
		c.BetaMax = 45
	}
	if c.SpreadShare == 0 {
		c.SpreadShare = 0.5
	}
	if c.SpreadWeight == 0 {
		c.SpreadWeight = 1.0
	}
	if c.SpecialistMultiplier == 0 {
		c.SpecialistMultiplier = 3.0
	}
	if c.SoloistMultiplier == 0 {
		c.SoloistMultiplier = 6.0
	}
	if c.RecencyBonus == 0 {
		c.RecencyBonus = 0.6
	}
	if c.StackingWeight == 0 {
		c.StackingWeight = 0.5
	}
}

// Validate checks the band and grid are coherent.
func (c Config) Validate() error {
	if c.GridMinutes < 1 {
		return fmt.Errorf("grid_minutes must be positive")
	}
	if c.AlphaMin < c.GridMinutes {
		return fmt.Errorf("alpha_min must be at least one grid unit")
	}
	if c.BetaMax < c.AlphaMin {
		return fmt.Errorf("beta_max must not be below alpha_min")
	}
	if c.SpreadShare <= 0 || c.SpreadShare > 1 {
		return fmt.Errorf("spread_share must be in (0,1]")
	}
	return nil
}
