package loadest

import (
	"math"
	"testing"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
)

func almost(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestResolverAliases(t *testing.T) {
	works := []model.Work{
		{Title: "W", Orchestration: map[string]float64{
			"double_bass": 2,
			"CorAnglais":  1,
			" harp ":      1,
		}},
	}
	est := NewEstimator(works)
	if !est.familyPresent(works[0], FamilyString) {
		t.Fatalf("double_bass not resolved to the string family")
	}
	if !est.familyPresent(works[0], FamilyWind) {
		t.Fatalf("CorAnglais not resolved to the wind family")
	}
	if !est.familyPresent(works[0], FamilyHarp) {
		t.Fatalf("padded harp column not resolved")
	}
}

func TestResolverCollidingSpellings(t *testing.T) {
	works := []model.Work{
		{Title: "W", Orchestration: map[string]float64{
			"Double Bass": 4,
			"Contrabass":  3,
			"Cello":       6,
		}},
	}
	want := 0.6 * 13
	// both double-bass spellings count, nothing is dropped
	if got := NewEstimator(works).PlayerLoad(works[0]); !almost(got, want) {
		t.Fatalf("PlayerLoad = %v, want %v", got, want)
	}
	// the estimate is stable across rebuilds despite map iteration order
	for i := 0; i < 50; i++ {
		if got := NewEstimator(works).PlayerLoad(works[0]); !almost(got, want) {
			t.Fatalf("run %d: PlayerLoad = %v, want %v", i, got, want)
		}
	}
}

func TestPlayerLoadWeights(t *testing.T) {
	works := []model.Work{
		{Title: "W", Orchestration: map[string]float64{
			"Flute":      2, // wind, weight 1.0
			"Horn":       2, // brass, weight 1.5
			"Percussion": 3, // weight 2.0
			"Piano":      1, // weight 1.0
			"Harp":       1, // weight 1.2
		}},
	}
	est := NewEstimator(works)
	want := 2.0 + 3.0 + 6.0 + 1.0 + 1.2
	if got := est.PlayerLoad(works[0]); !almost(got, want) {
		t.Fatalf("PlayerLoad = %v, want %v", got, want)
	}
}

func TestPlayerLoadStrings(t *testing.T) {
	counted := model.Work{Title: "C", Orchestration: map[string]float64{
		"Violin 1": 8, "Cello": 6,
	}}
	flagged := model.Work{Title: "F", Orchestration: map[string]float64{
		"Violin 1": 1, "Cello": 1,
	}}
	est := NewEstimator([]model.Work{counted, flagged})
	if got := est.PlayerLoad(counted); !almost(got, 0.6*14) {
		t.Fatalf("desk counts: PlayerLoad = %v, want %v", got, 0.6*14)
	}
	// bare presence flags fall back to the section baseline
	if got := est.PlayerLoad(flagged); !almost(got, stringsBaseline) {
		t.Fatalf("presence flags: PlayerLoad = %v, want %v", got, stringsBaseline)
	}
}

func TestSignaturePercProfile(t *testing.T) {
	light := model.Work{Title: "L", Orchestration: map[string]float64{"Percussion": 2}}
	heavy := model.Work{Title: "H", Orchestration: map[string]float64{"Percussion": 2, "Timpani": 1}}
	est := NewEstimator([]model.Work{light, heavy})
	if got := est.Signature(light).PercProfile; got != 1 {
		t.Fatalf("light percussion profile = %d, want 1", got)
	}
	if got := est.Signature(heavy).PercProfile; got != 2 {
		t.Fatalf("heavy percussion profile = %d, want 2", got)
	}
	if est.Signature(light).Piano {
		t.Fatalf("piano flagged without demand")
	}
}

func TestSectionDemand(t *testing.T) {
	w := model.Work{Title: "W", Orchestration: map[string]float64{
		"Horn": 1, "Soloist": 1,
	}}
	est := NewEstimator([]model.Work{w})
	d := est.SectionDemand(w)
	if !d.Brass || !d.Soloist {
		t.Fatalf("demand = %+v, want brass and soloist", d)
	}
	if d.Percs || d.Piano || d.Harp {
		t.Fatalf("demand = %+v, spurious sections", d)
	}
	if d.Count() != 2 {
		t.Fatalf("Count = %d, want 2", d.Count())
	}
}
