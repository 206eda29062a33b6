package model

// AllocationCell holds the minutes one work receives in one rehearsal.
// Cells are wholly replaced on every pipeline run.
type AllocationCell struct {
	WorkTitle string `json:"work_title"`
	Rehearsal int    `json:"rehearsal"`
	Minutes   int    `json:"minutes"`
}

// BundleMember is one work inside a bundle, with its movement ordering if
// the title (or parent-key hint) revealed one. MovementOrder zero means
// unknown; members without an ordinal sort after those with one.
type BundleMember struct {
	Title         string `json:"title"`
	MovementLabel string `json:"movement_label,omitempty"`
	MovementOrder int    `json:"movement_order,omitempty"`
}

// Bundle groups movements sharing a parent work so downstream stages treat
// them as one schedulable unit.
type Bundle struct {
	ID              string         `json:"id"`
	Key             string         `json:"key"`
	Members         []BundleMember `json:"members"`
	PlayerLoad      float64        `json:"player_load"`
	RequiredMinutes int            `json:"required_minutes"`
	Signature       Signature      `json:"signature"`
	Demand          SectionDemand  `json:"-"`
}

// ScheduleSlot fixes a bundle's position within one rehearsal's running
// order. Order is zero-based.
type ScheduleSlot struct {
	Rehearsal int    `json:"rehearsal"`
	Order     int    `json:"order"`
	BundleID  string `json:"bundle_id"`
}

// TimedItem is one concrete entry of a rehearsal timetable: a bundle's
// rehearsal segment or the break. Start is minutes since midnight.
type TimedItem struct {
	ID              string `json:"id"`
	Rehearsal       int    `json:"rehearsal"`
	Order           int    `json:"order"`
	Title           string `json:"title"`
	StartMinutes    int    `json:"start_minutes"`
	DurationMinutes int    `json:"duration_minutes"`
	IsBreak         bool   `json:"is_break"`
}

// End returns the item's exclusive end minute.
func (t TimedItem) End() int { return t.StartMinutes + t.DurationMinutes }

// CloneItems deep-copies a timed item list. Edit operations work on a copy
// so a rejected edit leaves the pre-image untouched.
func CloneItems(items []TimedItem) []TimedItem {
	out := make([]TimedItem, len(items))
	copy(out, items)
	return out
}
