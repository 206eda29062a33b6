package timing

import (
	"testing"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
	"github.com/JackCapstaff/rehearsal-schedule/core/timegrid"
)

func testConfig() Config {
	cfg := Config{}
	cfg.SetDefaults()
	return cfg
}

func bundleFor(id, key string, load float64) model.Bundle {
	return model.Bundle{
		ID:         id,
		Key:        key,
		Members:    []model.BundleMember{{Title: key}},
		PlayerLoad: load,
	}
}

func TestAssignTimesFillsSession(t *testing.T) {
	a := New(testConfig())
	r := model.Rehearsal{Number: 1, StartMinutes: 540, EndMinutes: 630, BreakMinutes: 10}
	bundles := []model.Bundle{
		bundleFor("ba", "A", 8),
		bundleFor("bb", "B", 4),
	}
	cells := []model.AllocationCell{
		{WorkTitle: "A", Rehearsal: 1, Minutes: 30},
		{WorkTitle: "B", Rehearsal: 1, Minutes: 20},
	}
	slots := []model.ScheduleSlot{
		{Rehearsal: 1, Order: 0, BundleID: "ba"},
		{Rehearsal: 1, Order: 1, BundleID: "bb"},
	}

	items, diags := a.AssignTimes(slots, cells, bundles, []model.Rehearsal{r})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want A, break and B", len(items))
	}
	// under-filled sessions stretch proportionally: 30/20 becomes 50/30
	if items[0].Title != "A" || items[0].DurationMinutes != 50 {
		t.Fatalf("first item %+v, want A for 50 minutes", items[0])
	}
	if !items[1].IsBreak || items[1].DurationMinutes != 10 {
		t.Fatalf("second item %+v, want the 10 minute break", items[1])
	}
	if items[2].Title != "B" || items[2].DurationMinutes != 30 {
		t.Fatalf("third item %+v, want B for 30 minutes", items[2])
	}
	if items[0].StartMinutes != 540 {
		t.Fatalf("schedule starts at %d, want 540", items[0].StartMinutes)
	}
	if got := items[2].End(); got != 630 {
		t.Fatalf("schedule ends at %d, want 630", got)
	}
	if v := timegrid.New(5).Validate(items, r); len(v) != 0 {
		t.Fatalf("assigned schedule is structurally invalid: %v", v)
	}
}

func TestAssignTimesShrinksToFit(t *testing.T) {
	a := New(testConfig())
	r := model.Rehearsal{Number: 1, StartMinutes: 540, EndMinutes: 580}
	bundles := []model.Bundle{
		bundleFor("ba", "A", 8),
		bundleFor("bb", "B", 2),
	}
	cells := []model.AllocationCell{
		{WorkTitle: "A", Rehearsal: 1, Minutes: 30},
		{WorkTitle: "B", Rehearsal: 1, Minutes: 30},
	}
	slots := []model.ScheduleSlot{
		{Rehearsal: 1, Order: 0, BundleID: "ba"},
		{Rehearsal: 1, Order: 1, BundleID: "bb"},
	}
	items, diags := a.AssignTimes(slots, cells, bundles, []model.Rehearsal{r})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	// the lighter bundle gives up its minutes first
	if items[0].Title != "A" || items[0].DurationMinutes != 30 {
		t.Fatalf("first item %+v, want A untouched at 30", items[0])
	}
	if items[1].Title != "B" || items[1].DurationMinutes != 10 {
		t.Fatalf("second item %+v, want B shrunk to 10", items[1])
	}
}

func TestAssignTimesReportsOverflow(t *testing.T) {
	a := New(testConfig())
	r := model.Rehearsal{Number: 1, StartMinutes: 540, EndMinutes: 555}
	bundles := []model.Bundle{
		bundleFor("ba", "A", 8),
		bundleFor("bb", "B", 2),
	}
	cells := []model.AllocationCell{
		{WorkTitle: "A", Rehearsal: 1, Minutes: 10},
		{WorkTitle: "B", Rehearsal: 1, Minutes: 10},
	}
	slots := []model.ScheduleSlot{
		{Rehearsal: 1, Order: 0, BundleID: "ba"},
		{Rehearsal: 1, Order: 1, BundleID: "bb"},
	}
	_, diags := a.AssignTimes(slots, cells, bundles, []model.Rehearsal{r})
	if len(diags) != 1 || diags[0].Kind != model.DiagCapacityOverflow {
		t.Fatalf("want one capacity overflow, got %v", diags)
	}
	if diags[0].Rehearsal != 1 {
		t.Fatalf("overflow names rehearsal %d", diags[0].Rehearsal)
	}
}

func TestAssignTimesSingleItemBreakLast(t *testing.T) {
	a := New(testConfig())
	r := model.Rehearsal{Number: 1, StartMinutes: 540, EndMinutes: 600, BreakMinutes: 10}
	bundles := []model.Bundle{bundleFor("ba", "A", 8)}
	cells := []model.AllocationCell{{WorkTitle: "A", Rehearsal: 1, Minutes: 40}}
	slots := []model.ScheduleSlot{{Rehearsal: 1, Order: 0, BundleID: "ba"}}

	items, diags := a.AssignTimes(slots, cells, bundles, []model.Rehearsal{r})
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want work plus trailing break", len(items))
	}
	last := items[len(items)-1]
	if !last.IsBreak || last.End() != 600 {
		t.Fatalf("last item %+v, want the break closing the session", last)
	}
}

func TestBreakBoundaryGuardrails(t *testing.T) {
	a := New(testConfig())

	// balanced split, tie resolved toward the longer first half
	if got := a.breakBoundary([]int{30, 30, 30}); got != 60 {
		t.Fatalf("boundary = %d, want 60", got)
	}
	// a boundary 20 minutes in violates MinBeforeAfter, the later one wins
	if got := a.breakBoundary([]int{20, 40}); got != 20 {
		t.Fatalf("single interior boundary must be used, got %d", got)
	}
	if got := a.breakBoundary([]int{20, 30, 40}); got != 50 {
		t.Fatalf("boundary = %d, want 50", got)
	}
	if got := a.breakBoundary([]int{40}); got != 0 {
		t.Fatalf("single item has no interior boundary, got %d", got)
	}
}
