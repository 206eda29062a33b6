// Package allocation distributes each work's required rehearsal minutes
// across the available sessions. Placement is a greedy token walk: one
// grid unit at a time onto the best-scoring compatible rehearsal, bounded
// by the per-appearance band and the session's remaining capacity.
package allocation

import (
	"fmt"
	"math"
	"sort"

	"github.com/JackCapstaff/rehearsal-schedule/core/loadest"
	"github.com/JackCapstaff/rehearsal-schedule/core/model"
	"github.com/JackCapstaff/rehearsal-schedule/core/timegrid"
)

// Engine is the allocation stage. It is pure: repeated calls with the
// same inputs produce the same cells.
type Engine struct {
	cfg  Config
	grid timegrid.Grid
}

// New returns an engine for the given configuration.
func New(cfg Config) *Engine {
	cfg.SetDefaults()
	return &Engine{cfg: cfg, grid: timegrid.New(cfg.GridMinutes)}
}

// workState tracks one work through the token walk.
type workState struct {
	work      model.Work
	demand    model.SectionDemand
	remaining int         // minutes still to place
	placed    map[int]int // rehearsal number -> minutes
	banned    map[int]bool
	lastPos   int // position of the last rehearsal that took a token, -1 before any
}

// rehState tracks a session's remaining snapped capacity.
type rehState struct {
	reh      model.Rehearsal
	pos      int // index in Number order
	capacity int // minutes left, snapped to the grid
}

// Allocate fills the (work, rehearsal) matrix. Works that cannot reach
// their required minutes are reported as deficits; the call never fails.
func (e *Engine) Allocate(works []model.Work, rehearsals []model.Rehearsal) ([]model.AllocationCell, []model.Diagnostic) {
	var diags []model.Diagnostic
	if len(works) == 0 || len(rehearsals) == 0 {
		return nil, diags
	}

	est := loadest.NewEstimator(works)

	sessions := make([]*rehState, 0, len(rehearsals))
	for _, r := range rehearsals {
		sessions = append(sessions, &rehState{reh: r, capacity: e.grid.Snap(r.WorkMinutes())})
	}
	sort.SliceStable(sessions, func(i, j int) bool { return sessions[i].reh.Number < sessions[j].reh.Number })
	for i, s := range sessions {
		s.pos = i
	}
	byNumber := make(map[int]*rehState, len(sessions))
	for _, s := range sessions {
		byNumber[s.reh.Number] = s
	}

	states := make([]*workState, 0, len(works))
	for _, w := range works {
		states = append(states, &workState{
			work:      w,
			demand:    est.SectionDemand(w),
			remaining: e.grid.SnapUp(w.RequiredMinutes),
			placed:    make(map[int]int),
			banned:    make(map[int]bool),
			lastPos:   -1,
		})
	}
	// Specialist-hungry works first: they have the fewest compatible
	// sessions, so they claim capacity before flexible works soak it up.
	sort.SliceStable(states, func(i, j int) bool {
		ci, cj := states[i].demand.Count(), states[j].demand.Count()
		if ci != cj {
			return ci > cj
		}
		if states[i].remaining != states[j].remaining {
			return states[i].remaining > states[j].remaining
		}
		return states[i].work.Title < states[j].work.Title
	})

	for _, ws := range states {
		e.placeWork(ws, sessions)
		e.sweepSubAlpha(ws, byNumber, sessions)
		if ws.remaining > 0 {
			diags = append(diags, model.Diagnostic{
				Kind:      model.DiagDeficit,
				WorkTitle: ws.work.Title,
				Message:   fmt.Sprintf("%d of %d required minutes could not be placed", ws.remaining, e.grid.SnapUp(ws.work.RequiredMinutes)),
			})
		}
	}

	var cells []model.AllocationCell
	for _, s := range sessions {
		for _, ws := range states {
			if m := ws.placed[s.reh.Number]; m > 0 {
				cells = append(cells, model.AllocationCell{
					WorkTitle: ws.work.Title,
					Rehearsal: s.reh.Number,
					Minutes:   m,
				})
			}
		}
	}
	sort.SliceStable(cells, func(i, j int) bool {
		if cells[i].Rehearsal != cells[j].Rehearsal {
			return cells[i].Rehearsal < cells[j].Rehearsal
		}
		return cells[i].WorkTitle < cells[j].WorkTitle
	})
	return cells, diags
}

// placeWork runs the token walk for one work until the requirement is met
// or no compatible capacity remains.
func (e *Engine) placeWork(ws *workState, sessions []*rehState) {
	g := e.grid.Minutes()
	for ws.remaining >= g {
		best := e.bestCandidate(ws, sessions)
		if best == nil {
			return
		}
		ws.placed[best.reh.Number] += g
		best.capacity -= g
		ws.remaining -= g
		ws.lastPos = best.pos
	}
}

// bestCandidate scores every compatible session with spare capacity and
// room under the per-appearance cap, returning nil when none qualifies.
func (e *Engine) bestCandidate(ws *workState, sessions []*rehState) *rehState {
	var best *rehState
	bestScore := math.Inf(-1)
	for _, s := range sessions {
		if s.capacity < e.grid.Minutes() || ws.banned[s.reh.Number] {
			continue
		}
		if !s.reh.SupportsDemand(ws.demand) {
			continue
		}
		here := ws.placed[s.reh.Number]
		if here+e.grid.Minutes() > e.cfg.BetaMax {
			continue
		}
		score := e.score(ws, s, here)
		if score > bestScore {
			best, bestScore = s, score
		}
	}
	return best
}

// score combines the session's remaining pull (capacity times specialist
// multipliers), a recency bonus for spacing appearances apart, a stacking
// penalty, the configured spread penalty and a band penalty for opening an
// appearance that cannot reach AlphaMin.
func (e *Engine) score(ws *workState, s *rehState, here int) float64 {
	mult := 1.0
	if ws.demand.Percs && s.reh.Supports(model.SectionPercs) {
		mult *= e.cfg.SpecialistMultiplier
	}
	if ws.demand.Piano && s.reh.Supports(model.SectionPiano) {
		mult *= e.cfg.SpecialistMultiplier
	}
	if ws.demand.Harp && s.reh.Supports(model.SectionHarp) {
		mult *= e.cfg.SpecialistMultiplier
	}
	if ws.demand.Brass && s.reh.Supports(model.SectionBrass) {
		mult *= e.cfg.SpecialistMultiplier
	}
	if ws.demand.Soloist && s.reh.Supports(model.SectionSoloist) {
		mult *= e.cfg.SoloistMultiplier
	}
	base := float64(s.capacity) * mult
	score := base

	if ws.lastPos >= 0 {
		score += e.cfg.RecencyBonus * math.Abs(float64(s.pos-ws.lastPos))
	}

	maxTokens := e.grid.Tokens(e.cfg.BetaMax)
	if maxTokens > 0 {
		score -= e.cfg.StackingWeight * float64(e.grid.Tokens(here)) / float64(maxTokens)
	}

	required := e.grid.SnapUp(ws.work.RequiredMinutes)
	if required > 0 {
		shareAfter := float64(here+e.grid.Minutes()) / float64(required)
		if excess := shareAfter - e.cfg.SpreadShare; excess > 0 {
			score -= e.cfg.SpreadWeight * excess * base
		}
	}

	// An appearance that cannot grow to AlphaMin will be swept away again.
	reachable := here + ws.remaining
	if s.capacity+here < e.cfg.AlphaMin || reachable < e.cfg.AlphaMin {
		score -= 0.75 * base
	}
	return score
}

// sweepSubAlpha discards appearances shorter than AlphaMin, folding the
// minutes back into the work's remaining need and retrying elsewhere.
func (e *Engine) sweepSubAlpha(ws *workState, byNumber map[int]*rehState, sessions []*rehState) {
	for pass := 0; pass < len(sessions)+1; pass++ {
		moved := false
		for num, m := range ws.placed {
			if m > 0 && m < e.cfg.AlphaMin {
				delete(ws.placed, num)
				byNumber[num].capacity += m
				ws.remaining += m
				ws.banned[num] = true
				moved = true
			}
		}
		if !moved {
			return
		}
		e.placeWork(ws, sessions)
	}
}
