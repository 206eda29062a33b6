package model

import (
	"fmt"
	"strings"
)

// Work represents one programmed piece (or a single movement of a larger
// work) as delivered by the import collaborator. Orchestration carries the
// canonicalised per-instrument demand columns: a value > 0 means the
// instrument is required, larger values are player counts where known.
type Work struct {
	Title           string             `json:"title"`
	RequiredMinutes int                `json:"required_minutes"`
	ParentKey       string             `json:"parent_key,omitempty"`
	Orchestration   map[string]float64 `json:"orchestration,omitempty"`
}

// Validate checks that the row is usable. A work failing validation is
// skipped with a diagnostic, it never aborts the pipeline.
func (w Work) Validate() error {
	if strings.TrimSpace(w.Title) == "" {
		return fmt.Errorf("work title is required")
	}
	if w.RequiredMinutes < 0 {
		return fmt.Errorf("work %q: required minutes must not be negative", w.Title)
	}
	return nil
}

// Demand returns the orchestration cell for the given column, zero when the
// column is absent.
func (w Work) Demand(column string) float64 {
	if w.Orchestration == nil {
		return 0
	}
	return w.Orchestration[column]
}

// Signature is the orchestration-demand vector used for transition costs
// between consecutive schedule items. PercProfile grades percussion setups:
// 0 none, 1 light (<=2 players), 2 heavy.
type Signature struct {
	Percs       bool `json:"percs"`
	Piano       bool `json:"piano"`
	Harp        bool `json:"harp"`
	Winds       bool `json:"winds"`
	Brass       bool `json:"brass"`
	Strings     bool `json:"strings"`
	PercProfile int  `json:"perc_profile"`
}

// Merge folds another signature into s, OR-ing presence flags and keeping
// the heavier percussion profile. Used when movements join a bundle.
func (s Signature) Merge(o Signature) Signature {
	out := Signature{
		Percs:   s.Percs || o.Percs,
		Piano:   s.Piano || o.Piano,
		Harp:    s.Harp || o.Harp,
		Winds:   s.Winds || o.Winds,
		Brass:   s.Brass || o.Brass,
		Strings: s.Strings || o.Strings,
	}
	out.PercProfile = s.PercProfile
	if o.PercProfile > out.PercProfile {
		out.PercProfile = o.PercProfile
	}
	return out
}

// SectionDemand lists the specialist sections a work needs a rehearsal to
// support before it can be allocated time there.
type SectionDemand struct {
	Percs   bool
	Piano   bool
	Harp    bool
	Brass   bool
	Soloist bool
}

// Any reports whether the work needs at least one specialist section.
func (d SectionDemand) Any() bool {
	return d.Percs || d.Piano || d.Harp || d.Brass || d.Soloist
}

// Count returns how many specialist sections are needed.
func (d SectionDemand) Count() int {
	n := 0
	for _, b := range []bool{d.Percs, d.Piano, d.Harp, d.Brass, d.Soloist} {
		if b {
			n++
		}
	}
	return n
}
