package config

import "fmt"

// HistoryConfig defines settings for edit history storage.
type HistoryConfig struct {
	// Backend selects the store type: "jsonl" or "memory".
	Backend string `json:"backend"`
	// Path is the file location of the JSONL store.
	Path string `json:"path"`
	// Limit bounds the retained entries per rehearsal.
	Limit int `json:"limit"`
}

// SetDefaults applies sane defaults.
func (c *HistoryConfig) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "memory"
	}
	if c.Backend == "jsonl" && c.Path == "" {
		c.Path = "edits.log"
	}
	if c.Limit <= 0 {
		c.Limit = 50
	}
}

// Validate checks mandatory fields.
func (c HistoryConfig) Validate() error {
	if c.Backend != "jsonl" && c.Backend != "memory" {
		return fmt.Errorf("unknown backend %s", c.Backend)
	}
	if c.Backend == "jsonl" && c.Path == "" {
		return fmt.Errorf("path is required for the jsonl backend")
	}
	return nil
}
