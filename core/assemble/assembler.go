// Package assemble orders each rehearsal's bundles. The heuristic is a
// greedy nearest-neighbour chain: start with the heaviest bundle while
// players are fresh, then keep appending the cheapest transition. It is
// deliberately not an exact solver.
package assemble

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
)

// increasePenaltyWeight punishes chains that climb back up in player load
// after coming down; keeping load non-increasing dominates transition
// smoothness.
const increasePenaltyWeight = 100.0

// transitionWeights order: Percs, Piano, Harp, Winds, Brass, Strings.
var transitionWeights = []float64{3, 2, 2, 1, 1, 1}

// percProfilePenalty applies when both sides use percussion but with
// different setup profiles.
const percProfilePenalty = 2.0

// TransitionCost is the weighted distance between two orchestration
// signatures: the stage-reset cost of playing b directly after a.
func TransitionCost(a, b model.Signature) float64 {
	diff := []float64{
		boolDiff(a.Percs, b.Percs),
		boolDiff(a.Piano, b.Piano),
		boolDiff(a.Harp, b.Harp),
		boolDiff(a.Winds, b.Winds),
		boolDiff(a.Brass, b.Brass),
		boolDiff(a.Strings, b.Strings),
	}
	cost := floats.Dot(transitionWeights, diff)
	if a.Percs && b.Percs && a.PercProfile != b.PercProfile {
		cost += percProfilePenalty
	}
	return cost
}

func boolDiff(a, b bool) float64 {
	if a != b {
		return 1
	}
	return 0
}

// entry is one bundle appearing in one rehearsal.
type entry struct {
	bundle  model.Bundle
	minutes int
}

// Assemble produces the per-rehearsal running order for every bundle with
// allocated minutes. The result is deterministic for identical inputs.
func Assemble(cells []model.AllocationCell, bundles []model.Bundle, rehearsals []model.Rehearsal) []model.ScheduleSlot {
	bundleByTitle := make(map[string]*model.Bundle)
	for i := range bundles {
		for _, m := range bundles[i].Members {
			bundleByTitle[m.Title] = &bundles[i]
		}
	}

	// minutes per (rehearsal, bundle)
	perReh := make(map[int]map[string]int)
	for _, c := range cells {
		b, ok := bundleByTitle[c.WorkTitle]
		if !ok {
			continue
		}
		if perReh[c.Rehearsal] == nil {
			perReh[c.Rehearsal] = make(map[string]int)
		}
		perReh[c.Rehearsal][b.ID] += c.Minutes
	}

	bundleByID := make(map[string]model.Bundle, len(bundles))
	for _, b := range bundles {
		bundleByID[b.ID] = b
	}

	numbers := make([]int, 0, len(rehearsals))
	for _, r := range rehearsals {
		numbers = append(numbers, r.Number)
	}
	sort.Ints(numbers)

	var slots []model.ScheduleSlot
	for _, num := range numbers {
		mins := perReh[num]
		if len(mins) == 0 {
			continue
		}
		entries := make([]entry, 0, len(mins))
		for id, m := range mins {
			if m > 0 {
				entries = append(entries, entry{bundle: bundleByID[id], minutes: m})
			}
		}
		// stable base order before the greedy chain
		sort.SliceStable(entries, func(i, j int) bool { return entries[i].bundle.Key < entries[j].bundle.Key })

		ordered := orderEntries(entries)
		for i, en := range ordered {
			slots = append(slots, model.ScheduleSlot{Rehearsal: num, Order: i, BundleID: en.bundle.ID})
		}
	}
	return slots
}

// orderEntries runs the greedy chain then a bounded adjacent-swap
// improvement pass over total transition cost.
func orderEntries(entries []entry) []entry {
	if len(entries) == 0 {
		return entries
	}
	remaining := make([]entry, len(entries))
	copy(remaining, entries)

	seed := 0
	for i, en := range remaining {
		if better(en, remaining[seed]) {
			seed = i
		}
	}
	ordered := []entry{remaining[seed]}
	remaining = append(remaining[:seed], remaining[seed+1:]...)

	for len(remaining) > 0 {
		last := ordered[len(ordered)-1]
		bestJ := 0
		for j := 1; j < len(remaining); j++ {
			if lowerKey(last, remaining[j], remaining[bestJ]) {
				bestJ = j
			}
		}
		ordered = append(ordered, remaining[bestJ])
		remaining = append(remaining[:bestJ], remaining[bestJ+1:]...)
	}

	improveAdjacent(ordered)
	return ordered
}

// better reports whether a beats b as the chain seed: higher player load,
// then more minutes, then key for stability.
func better(a, b entry) bool {
	if a.bundle.PlayerLoad != b.bundle.PlayerLoad {
		return a.bundle.PlayerLoad > b.bundle.PlayerLoad
	}
	if a.minutes != b.minutes {
		return a.minutes > b.minutes
	}
	return a.bundle.Key < b.bundle.Key
}

// lowerKey reports whether candidate a is a better successor to last than
// candidate b: smaller load increase, then cheaper transition, then higher
// load, then more minutes.
func lowerKey(last, a, b entry) bool {
	incA := max0(a.bundle.PlayerLoad-last.bundle.PlayerLoad) * increasePenaltyWeight
	incB := max0(b.bundle.PlayerLoad-last.bundle.PlayerLoad) * increasePenaltyWeight
	if incA != incB {
		return incA < incB
	}
	costA := TransitionCost(last.bundle.Signature, a.bundle.Signature)
	costB := TransitionCost(last.bundle.Signature, b.bundle.Signature)
	if costA != costB {
		return costA < costB
	}
	if a.bundle.PlayerLoad != b.bundle.PlayerLoad {
		return a.bundle.PlayerLoad > b.bundle.PlayerLoad
	}
	if a.minutes != b.minutes {
		return a.minutes > b.minutes
	}
	return a.bundle.Key < b.bundle.Key
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func totalCost(seq []entry) float64 {
	var c float64
	for i := 0; i < len(seq)-1; i++ {
		c += TransitionCost(seq[i].bundle.Signature, seq[i+1].bundle.Signature)
	}
	return c
}

// improveAdjacent swaps neighbouring pairs while doing so lowers the total
// transition cost. The pass is bounded by the sequence length.
func improveAdjacent(seq []entry) {
	if len(seq) < 3 {
		return
	}
	for pass := 0; pass < len(seq); pass++ {
		improved := false
		for k := 0; k < len(seq)-1; k++ {
			cur := totalCost(seq)
			seq[k], seq[k+1] = seq[k+1], seq[k]
			if totalCost(seq) < cur-1e-9 {
				improved = true
			} else {
				seq[k], seq[k+1] = seq[k+1], seq[k]
			}
		}
		if !improved {
			return
		}
	}
}
