// Package timing turns each rehearsal's bundle ordering into concrete
// timed items: a cursor walk from the session start, one item per bundle,
// with the configured break placed at an interior boundary under the
// micro-item and before/after guardrails.
package timing

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
	"github.com/JackCapstaff/rehearsal-schedule/core/timegrid"
)

// BreakTitle labels the break item in every timetable.
const BreakTitle = "Break"

// Assigner is the timing stage.
type Assigner struct {
	cfg  Config
	grid timegrid.Grid
}

// New returns an assigner for the given configuration.
func New(cfg Config) *Assigner {
	cfg.SetDefaults()
	return &Assigner{cfg: cfg, grid: timegrid.New(cfg.GridMinutes)}
}

// segment is one bundle's share of a rehearsal, mutable while fitting.
type segment struct {
	bundle  model.Bundle
	minutes int
}

// AssignTimes builds the timed item set for every rehearsal. On success a
// rehearsal's items sum exactly to its total minutes; a rehearsal that
// cannot fit even after shrinking reports a capacity overflow and keeps a
// best-effort packing.
func (a *Assigner) AssignTimes(slots []model.ScheduleSlot, cells []model.AllocationCell, bundles []model.Bundle, rehearsals []model.Rehearsal) ([]model.TimedItem, []model.Diagnostic) {
	var items []model.TimedItem
	var diags []model.Diagnostic

	bundleByID := make(map[string]model.Bundle, len(bundles))
	titleToBundle := make(map[string]string)
	for _, b := range bundles {
		bundleByID[b.ID] = b
		for _, m := range b.Members {
			titleToBundle[m.Title] = b.ID
		}
	}

	// minutes per (rehearsal, bundle)
	minutes := make(map[int]map[string]int)
	for _, c := range cells {
		id, ok := titleToBundle[c.WorkTitle]
		if !ok {
			continue
		}
		if minutes[c.Rehearsal] == nil {
			minutes[c.Rehearsal] = make(map[string]int)
		}
		minutes[c.Rehearsal][id] += c.Minutes
	}

	slotsByReh := make(map[int][]model.ScheduleSlot)
	for _, s := range slots {
		slotsByReh[s.Rehearsal] = append(slotsByReh[s.Rehearsal], s)
	}

	ordered := make([]model.Rehearsal, len(rehearsals))
	copy(ordered, rehearsals)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	for _, r := range ordered {
		rs := slotsByReh[r.Number]
		if len(rs) == 0 {
			continue
		}
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Order < rs[j].Order })

		segs := make([]*segment, 0, len(rs))
		for _, s := range rs {
			m := a.grid.Snap(minutes[r.Number][s.BundleID])
			if m <= 0 {
				continue
			}
			segs = append(segs, &segment{bundle: bundleByID[s.BundleID], minutes: m})
		}
		if len(segs) == 0 {
			continue
		}

		rehItems, d := a.assignRehearsal(r, segs)
		items = append(items, rehItems...)
		diags = append(diags, d...)
	}
	return items, diags
}

// assignRehearsal fits one rehearsal: stretch or shrink to the work
// target, choose the break boundary, then walk the cursor.
func (a *Assigner) assignRehearsal(r model.Rehearsal, segs []*segment) ([]model.TimedItem, []model.Diagnostic) {
	var diags []model.Diagnostic
	breakMins := a.grid.Snap(r.BreakMinutes)
	target := a.grid.Snap(r.TotalMinutes()) - breakMins

	sum := 0
	for _, s := range segs {
		sum += s.minutes
	}
	switch {
	case sum < target:
		a.stretch(segs, target-sum)
	case sum > target:
		if overflow := a.shrink(segs, sum-target); overflow > 0 {
			diags = append(diags, model.Diagnostic{
				Kind:      model.DiagCapacityOverflow,
				Rehearsal: r.Number,
				Message:   fmt.Sprintf("%d minutes do not fit even at the per-appearance minimum", overflow),
			})
		}
	}

	durations := make([]int, len(segs))
	for i, s := range segs {
		durations[i] = s.minutes
	}
	breakOffset := 0
	if breakMins > 0 && len(segs) >= 2 {
		breakOffset = a.breakBoundary(durations)
	}

	items := make([]model.TimedItem, 0, len(segs)+1)
	cursor := r.StartMinutes
	elapsed := 0
	for _, s := range segs {
		if breakMins > 0 && breakOffset > 0 && elapsed == breakOffset {
			items = append(items, model.TimedItem{
				ID:              uuid.NewString(),
				Rehearsal:       r.Number,
				Title:           BreakTitle,
				StartMinutes:    cursor,
				DurationMinutes: breakMins,
				IsBreak:         true,
			})
			cursor += breakMins
		}
		items = append(items, model.TimedItem{
			ID:              uuid.NewString(),
			Rehearsal:       r.Number,
			Title:           s.bundle.Key,
			StartMinutes:    cursor,
			DurationMinutes: s.minutes,
		})
		cursor += s.minutes
		elapsed += s.minutes
	}
	// A break that found no interior boundary (single item) goes last.
	if breakMins > 0 && (breakOffset == 0 || len(segs) < 2) {
		items = append(items, model.TimedItem{
			ID:              uuid.NewString(),
			Rehearsal:       r.Number,
			Title:           BreakTitle,
			StartMinutes:    cursor,
			DurationMinutes: breakMins,
			IsBreak:         true,
		})
	}
	for i := range items {
		items[i].Order = i
	}
	return items, diags
}

// stretch distributes extra grid tokens across segments proportionally to
// their current minutes using the largest-remainder method, so the
// timetable fills the session exactly.
func (a *Assigner) stretch(segs []*segment, extra int) {
	g := a.grid.Minutes()
	tokens := extra / g
	if tokens <= 0 {
		return
	}
	total := 0
	for _, s := range segs {
		total += s.minutes
	}
	if total <= 0 {
		return
	}

	type share struct {
		idx  int
		frac float64
	}
	base := 0
	shares := make([]share, len(segs))
	for i, s := range segs {
		raw := float64(tokens) * float64(s.minutes) / float64(total)
		whole := int(raw)
		s.minutes += whole * g
		base += whole
		shares[i] = share{idx: i, frac: raw - float64(whole)}
	}
	sort.SliceStable(shares, func(i, j int) bool {
		if shares[i].frac != shares[j].frac {
			return shares[i].frac > shares[j].frac
		}
		return shares[i].idx < shares[j].idx
	})
	for k := 0; k < tokens-base; k++ {
		segs[shares[k%len(shares)].idx].minutes += g
	}
}

// shrink trims grid tokens from the lowest-load trailing segments, never
// below AlphaMin. It returns the minutes that still do not fit.
func (a *Assigner) shrink(segs []*segment, over int) int {
	g := a.grid.Minutes()
	// lowest player load first, later position breaks ties
	order := make([]int, len(segs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		a1, b1 := segs[order[i]], segs[order[j]]
		if a1.bundle.PlayerLoad != b1.bundle.PlayerLoad {
			return a1.bundle.PlayerLoad < b1.bundle.PlayerLoad
		}
		return order[i] > order[j]
	})
	for _, idx := range order {
		for over > 0 && segs[idx].minutes-g >= a.cfg.AlphaMin {
			segs[idx].minutes -= g
			over -= g
		}
		if over <= 0 {
			break
		}
	}
	if over < 0 {
		over = 0
	}
	return over
}
