package model

import (
	"fmt"
	"time"
)

// Specialist section tags a rehearsal can advertise. SectionFull marks a
// rehearsal open to every section.
const (
	SectionPercs   = "Percs"
	SectionPiano   = "Piano"
	SectionHarp    = "Harp"
	SectionBrass   = "Brass"
	SectionSoloist = "Soloist"
	SectionFull    = "Full"
)

// Rehearsal is one session row from the canonical Rehearsals table.
// Start/End are minutes since midnight, already normalised upstream.
type Rehearsal struct {
	Number       int             `json:"number"`
	Date         time.Time       `json:"date"`
	StartMinutes int             `json:"start_minutes"`
	EndMinutes   int             `json:"end_minutes"`
	BreakMinutes int             `json:"break_minutes"`
	Sections     map[string]bool `json:"sections,omitempty"`
}

// Validate checks that the row is usable.
func (r Rehearsal) Validate() error {
	if r.Number <= 0 {
		return fmt.Errorf("rehearsal number must be positive")
	}
	if r.StartMinutes < 0 || r.StartMinutes >= 24*60 {
		return fmt.Errorf("rehearsal %d: start minutes out of range", r.Number)
	}
	if r.EndMinutes < 0 || r.EndMinutes >= 24*60 {
		return fmt.Errorf("rehearsal %d: end minutes out of range", r.Number)
	}
	if r.BreakMinutes < 0 {
		return fmt.Errorf("rehearsal %d: break minutes must not be negative", r.Number)
	}
	if r.BreakMinutes >= r.TotalMinutes() {
		return fmt.Errorf("rehearsal %d: break exceeds session length", r.Number)
	}
	return nil
}

// TotalMinutes is the gross session length. Sessions crossing midnight wrap.
func (r Rehearsal) TotalMinutes() int {
	d := r.EndMinutes - r.StartMinutes
	if d < 0 {
		d += 24 * 60
	}
	return d
}

// WorkMinutes is the playable time once the break is taken out.
func (r Rehearsal) WorkMinutes() int {
	d := r.TotalMinutes() - r.BreakMinutes
	if d < 0 {
		return 0
	}
	return d
}

// Supports reports whether the rehearsal advertises the given specialist
// section. A SectionFull rehearsal supports everything.
func (r Rehearsal) Supports(section string) bool {
	if r.Sections == nil {
		return false
	}
	if r.Sections[SectionFull] {
		return true
	}
	return r.Sections[section]
}

// SupportsDemand reports whether every section the demand names is
// available. Works with no specialist needs are always compatible.
func (r Rehearsal) SupportsDemand(d SectionDemand) bool {
	if d.Percs && !r.Supports(SectionPercs) {
		return false
	}
	if d.Piano && !r.Supports(SectionPiano) {
		return false
	}
	if d.Harp && !r.Supports(SectionHarp) {
		return false
	}
	if d.Brass && !r.Supports(SectionBrass) {
		return false
	}
	if d.Soloist && !r.Supports(SectionSoloist) {
		return false
	}
	return true
}
