// Package timegrid provides the minute-grid arithmetic and the structural
// validation shared by every scheduling stage. All starts and durations in
// a valid schedule are multiples of the grid unit G.
package timegrid

import (
	"fmt"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
)

// DefaultG is the default quantization unit in minutes.
const DefaultG = 5

// Grid is the quantization unit for all times and durations.
type Grid struct {
	g int
}

// New returns a grid with the given unit. Units below one minute are
// clamped to one.
func New(g int) Grid {
	if g < 1 {
		g = 1
	}
	return Grid{g: g}
}

// Minutes returns the grid unit in minutes.
func (g Grid) Minutes() int { return g.g }

// Snap rounds m down to the nearest grid multiple.
func (g Grid) Snap(m int) int {
	if m <= 0 {
		return 0
	}
	return m - m%g.g
}

// SnapUp rounds m up to the nearest grid multiple.
func (g Grid) SnapUp(m int) int {
	if m <= 0 {
		return 0
	}
	if rem := m % g.g; rem != 0 {
		return m + g.g - rem
	}
	return m
}

// Aligned reports whether m sits on the grid.
func (g Grid) Aligned(m int) bool { return m%g.g == 0 }

// Tokens converts minutes to whole grid tokens, rounding down.
func (g Grid) Tokens(m int) int {
	if m <= 0 {
		return 0
	}
	return m / g.g
}

// Clock formats minutes-since-midnight as HH:MM.
func Clock(m int) string {
	m %= 24 * 60
	if m < 0 {
		m += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Compact recomputes every item's start sequentially from the rehearsal
// start time, removing gaps and overlaps while preserving order and
// durations. Compacting an already-contiguous list returns an equal list.
func Compact(items []model.TimedItem, startMinutes int) []model.TimedItem {
	out := model.CloneItems(items)
	cursor := startMinutes
	for i := range out {
		out[i].StartMinutes = cursor
		out[i].Order = i
		cursor += out[i].DurationMinutes
	}
	return out
}
