package timegrid

import (
	"fmt"
	"sort"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
)

// Violation names one broken schedule invariant. Edit rejections carry the
// full list so callers can show what went wrong.
type Violation string

func (v Violation) String() string { return string(v) }

// Validate checks the structural invariants of one rehearsal's timetable:
// grid alignment of every start and duration, minimum duration of one grid
// unit, contiguity of consecutive items, and exact start/end bounds. It
// returns the violated invariants, empty when the schedule is valid.
func (g Grid) Validate(items []model.TimedItem, r model.Rehearsal) []Violation {
	var out []Violation
	if len(items) == 0 {
		return []Violation{"schedule is empty"}
	}

	sorted := model.CloneItems(items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartMinutes < sorted[j].StartMinutes
	})

	for _, it := range sorted {
		if !g.Aligned(it.StartMinutes) {
			out = append(out, Violation(fmt.Sprintf("%q start %s is not aligned to the %d-minute grid", it.Title, Clock(it.StartMinutes), g.g)))
		}
		if !g.Aligned(it.DurationMinutes) {
			out = append(out, Violation(fmt.Sprintf("%q duration %d is not aligned to the %d-minute grid", it.Title, it.DurationMinutes, g.g)))
		}
		if it.DurationMinutes < g.g {
			out = append(out, Violation(fmt.Sprintf("%q duration %d is below the minimum of %d minutes", it.Title, it.DurationMinutes, g.g)))
		}
	}

	if first := sorted[0]; first.StartMinutes != r.StartMinutes {
		out = append(out, Violation(fmt.Sprintf("first item starts at %s, rehearsal starts at %s", Clock(first.StartMinutes), Clock(r.StartMinutes))))
	}
	for i := 0; i < len(sorted)-1; i++ {
		if sorted[i].End() != sorted[i+1].StartMinutes {
			out = append(out, Violation(fmt.Sprintf("gap or overlap between %q and %q at %s", sorted[i].Title, sorted[i+1].Title, Clock(sorted[i].End()))))
		}
	}
	end := r.StartMinutes + r.TotalMinutes()
	if last := sorted[len(sorted)-1]; last.End() != end {
		out = append(out, Violation(fmt.Sprintf("last item ends at %s, rehearsal ends at %s", Clock(last.End()), Clock(end))))
	}
	return out
}
