// Package edit applies interactive mutations to one rehearsal's timed
// items. Every operation is all-or-nothing: it works on a copy, compacts,
// validates, and hands back either the new list or the untouched pre-image
// with the violated invariants.
package edit

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
	"github.com/JackCapstaff/rehearsal-schedule/core/timegrid"
)

// Edge selects which end of an item a resize drags.
type Edge string

const (
	// EdgeStart resizes against the items before this one.
	EdgeStart Edge = "start"
	// EdgeEnd resizes against the items after this one.
	EdgeEnd Edge = "end"
)

// Result carries the outcome of one edit operation. A rejected edit
// returns the pre-image unchanged together with the violated invariants.
type Result struct {
	Items      []model.TimedItem
	Violations []timegrid.Violation
}

// Rejected reports whether the operation was refused.
func (r Result) Rejected() bool { return len(r.Violations) > 0 }

// Engine holds the grid the schedule is quantized on. Operations are
// stateless with respect to the engine; all document state travels in the
// item lists.
type Engine struct {
	grid timegrid.Grid
}

// New returns an edit engine on the given grid.
func New(grid timegrid.Grid) *Engine {
	return &Engine{grid: grid}
}

func reject(pre []model.TimedItem, v ...timegrid.Violation) Result {
	return Result{Items: pre, Violations: v}
}

func (e *Engine) accept(pre, next []model.TimedItem, r model.Rehearsal) Result {
	next = timegrid.Compact(next, r.StartMinutes)
	if v := e.grid.Validate(next, r); len(v) > 0 {
		return reject(pre, v...)
	}
	return Result{Items: next}
}

func indexOf(items []model.TimedItem, id string) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func sortedCopy(items []model.TimedItem) []model.TimedItem {
	out := model.CloneItems(items)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartMinutes < out[j].StartMinutes })
	return out
}

// Move removes the item, reinserts it at the existing boundary nearest to
// targetMinutes and compacts the list.
func (e *Engine) Move(items []model.TimedItem, r model.Rehearsal, itemID string, targetMinutes int) Result {
	work := sortedCopy(items)
	idx := indexOf(work, itemID)
	if idx < 0 {
		return reject(items, timegrid.Violation(fmt.Sprintf("item %s not found", itemID)))
	}
	moved := work[idx]
	rest := append(work[:idx:idx], work[idx+1:]...)
	insert := nearestBoundary(rest, r.StartMinutes, targetMinutes)

	next := make([]model.TimedItem, 0, len(work))
	next = append(next, rest[:insert]...)
	next = append(next, moved)
	next = append(next, rest[insert:]...)
	return e.accept(items, next, r)
}

// nearestBoundary returns the insertion index whose boundary minute is
// closest to target. Boundaries are the starts of the remaining items plus
// the final end; earlier boundaries win ties.
func nearestBoundary(items []model.TimedItem, startMinutes, target int) int {
	if len(items) == 0 {
		return 0
	}
	best, bestDist := 0, -1
	cursor := startMinutes
	for i := 0; i <= len(items); i++ {
		d := abs(cursor - target)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
		if i < len(items) {
			cursor += items[i].DurationMinutes
		}
	}
	return best
}

// Resize sets the item to newDuration. Growing shrinks the neighbours on
// the resize edge, spilling to the next neighbour when one cannot absorb
// the whole delta, each clamped to one grid unit. Shrinking gives the
// freed minutes to the adjacent item on the resize edge, falling back to
// the opposite side at a list boundary.
func (e *Engine) Resize(items []model.TimedItem, r model.Rehearsal, itemID string, newDuration int, edge Edge) Result {
	if !e.grid.Aligned(newDuration) {
		return reject(items, timegrid.Violation(fmt.Sprintf("duration %d is not aligned to the %d-minute grid", newDuration, e.grid.Minutes())))
	}
	if newDuration < e.grid.Minutes() {
		return reject(items, timegrid.Violation(fmt.Sprintf("duration %d is below the minimum of %d minutes", newDuration, e.grid.Minutes())))
	}
	work := sortedCopy(items)
	idx := indexOf(work, itemID)
	if idx < 0 {
		return reject(items, timegrid.Violation(fmt.Sprintf("item %s not found", itemID)))
	}
	delta := newDuration - work[idx].DurationMinutes
	if delta == 0 {
		return Result{Items: timegrid.Compact(work, r.StartMinutes)}
	}

	if delta > 0 {
		taken := e.shrinkNeighbours(work, idx, edge, delta)
		if taken < delta {
			side := "following"
			if edge == EdgeStart {
				side = "preceding"
			}
			return reject(items, timegrid.Violation(fmt.Sprintf("cannot shrink enough %s items to grow %q by %d minutes", side, work[idx].Title, delta)))
		}
	} else {
		e.expandNeighbour(work, idx, edge, -delta)
	}
	work[idx].DurationMinutes = newDuration
	return e.accept(items, work, r)
}

// shrinkNeighbours walks away from idx on the given edge taking up to
// delta minutes, leaving every neighbour at least one grid unit. It
// returns the minutes actually collected.
func (e *Engine) shrinkNeighbours(items []model.TimedItem, idx int, edge Edge, delta int) int {
	step := 1
	if edge == EdgeStart {
		step = -1
	}
	taken := 0
	for j := idx + step; j >= 0 && j < len(items) && taken < delta; j += step {
		spare := items[j].DurationMinutes - e.grid.Minutes()
		if spare <= 0 {
			continue
		}
		take := delta - taken
		if take > spare {
			take = spare
		}
		items[j].DurationMinutes -= take
		taken += take
	}
	return taken
}

// expandNeighbour gives freed minutes to the adjacent item on the resize
// edge, switching sides when the item sits at that boundary of the list.
func (e *Engine) expandNeighbour(items []model.TimedItem, idx int, edge Edge, freed int) {
	j := idx + 1
	if edge == EdgeStart {
		j = idx - 1
	}
	if j < 0 || j >= len(items) {
		j = idx - 1
		if edge == EdgeStart {
			j = idx + 1
		}
	}
	if j >= 0 && j < len(items) {
		items[j].DurationMinutes += freed
	}
}

// Add inserts a new item with the given duration at the boundary nearest
// to targetMinutes, carving the needed minutes out of the immediate
// neighbours (nearest first, spilling outward, grid-unit clamp).
func (e *Engine) Add(items []model.TimedItem, r model.Rehearsal, title string, duration, targetMinutes int) Result {
	if !e.grid.Aligned(duration) || duration < e.grid.Minutes() {
		return reject(items, timegrid.Violation(fmt.Sprintf("duration %d is not a valid grid duration", duration)))
	}
	work := sortedCopy(items)
	insert := nearestBoundary(work, r.StartMinutes, targetMinutes)

	next := make([]model.TimedItem, 0, len(work)+1)
	next = append(next, work[:insert]...)
	next = append(next, model.TimedItem{
		ID:              uuid.NewString(),
		Rehearsal:       r.Number,
		Title:           title,
		DurationMinutes: duration,
	})
	next = append(next, work[insert:]...)

	idx := insert
	taken := e.shrinkNeighbours(next, idx, EdgeEnd, duration)
	if taken < duration {
		taken += e.shrinkNeighbours(next, idx, EdgeStart, duration-taken)
	}
	if taken < duration {
		return reject(items, timegrid.Violation(fmt.Sprintf("no room to add %q: %d minutes missing", title, duration-taken)))
	}
	return e.accept(items, next, r)
}

// Delete removes the item and grows its following neighbour (or the
// preceding one for the last item) by the freed duration.
func (e *Engine) Delete(items []model.TimedItem, r model.Rehearsal, itemID string) Result {
	work := sortedCopy(items)
	idx := indexOf(work, itemID)
	if idx < 0 {
		return reject(items, timegrid.Violation(fmt.Sprintf("item %s not found", itemID)))
	}
	if len(work) == 1 {
		return reject(items, timegrid.Violation("cannot delete the only item"))
	}
	freed := work[idx].DurationMinutes
	next := append(work[:idx:idx], work[idx+1:]...)
	if idx < len(next) {
		next[idx].DurationMinutes += freed
	} else {
		next[idx-1].DurationMinutes += freed
	}
	return e.accept(items, next, r)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
