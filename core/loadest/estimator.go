package loadest

import (
	"gonum.org/v1/gonum/floats"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
)

// Relative section weights for the player-load estimate. These are not
// literal headcounts: percussion carries setup cost, strings count per
// desk when numbers are given.
var familyWeights = map[string]float64{
	FamilyWind:   1.0,
	FamilyBrass:  1.5,
	FamilyPerc:   2.0,
	FamilyPiano:  1.0,
	FamilyHarp:   1.2,
	FamilyString: 0.6,
}

// stringsBaseline is charged when strings are flagged present without
// usable desk counts. Values of one are presence flags, not counts.
const stringsBaseline = 4.0

// lightPercThreshold splits the percussion profile into light and heavy.
const lightPercThreshold = 2

// Estimator derives player load, orchestration signatures and specialist
// section demands from a works table.
type Estimator struct {
	resolver *Resolver
}

// NewEstimator builds an estimator whose column resolution is fixed over
// the given works.
func NewEstimator(works []model.Work) *Estimator {
	orchs := make([]map[string]float64, len(works))
	for i, w := range works {
		orchs[i] = w.Orchestration
	}
	return &Estimator{resolver: NewResolver(CollectColumns(orchs))}
}

func (e *Estimator) familySum(w model.Work, family string) float64 {
	cols := e.resolver.Columns(family)
	if len(cols) == 0 {
		return 0
	}
	counts := make([]float64, len(cols))
	for i, c := range cols {
		if v := w.Demand(c); v > 0 {
			counts[i] = v
		}
	}
	return floats.Sum(counts)
}

func (e *Estimator) familyMax(w model.Work, family string) float64 {
	var max float64
	for _, c := range e.resolver.Columns(family) {
		if v := w.Demand(c); v > max {
			max = v
		}
	}
	return max
}

func (e *Estimator) familyPresent(w model.Work, family string) bool {
	for _, c := range e.resolver.Columns(family) {
		if w.Demand(c) > 0 {
			return true
		}
	}
	return false
}

// PlayerLoad is the weighted performer-demand estimate for one work.
func (e *Estimator) PlayerLoad(w model.Work) float64 {
	sums := []float64{
		familyWeights[FamilyWind] * e.familySum(w, FamilyWind),
		familyWeights[FamilyBrass] * e.familySum(w, FamilyBrass),
		familyWeights[FamilyPerc] * e.familySum(w, FamilyPerc),
		familyWeights[FamilyPiano] * e.familySum(w, FamilyPiano),
		familyWeights[FamilyHarp] * e.familySum(w, FamilyHarp),
	}
	load := floats.Sum(sums)
	if s := e.familySum(w, FamilyString); s > 0 {
		if e.familyMax(w, FamilyString) > 1 {
			load += familyWeights[FamilyString] * s
		} else {
			load += stringsBaseline
		}
	}
	return load
}

// Signature returns the work's orchestration-demand vector.
func (e *Estimator) Signature(w model.Work) model.Signature {
	sig := model.Signature{
		Percs:   e.familyPresent(w, FamilyPerc),
		Piano:   e.familyPresent(w, FamilyPiano),
		Harp:    e.familyPresent(w, FamilyHarp),
		Winds:   e.familyPresent(w, FamilyWind),
		Brass:   e.familyPresent(w, FamilyBrass),
		Strings: e.familyPresent(w, FamilyString),
	}
	if sig.Percs {
		if int(e.familySum(w, FamilyPerc)) <= lightPercThreshold {
			sig.PercProfile = 1
		} else {
			sig.PercProfile = 2
		}
	}
	return sig
}

// SectionDemand returns the specialist sections the work needs a
// rehearsal to support.
func (e *Estimator) SectionDemand(w model.Work) model.SectionDemand {
	return model.SectionDemand{
		Percs:   e.familyPresent(w, FamilyPerc),
		Piano:   e.familyPresent(w, FamilyPiano),
		Harp:    e.familyPresent(w, FamilyHarp),
		Brass:   e.familyPresent(w, FamilyBrass),
		Soloist: e.familyPresent(w, FamilySolo),
	}
}
