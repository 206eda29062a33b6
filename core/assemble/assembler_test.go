package assemble

import (
	"reflect"
	"testing"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
)

func TestTransitionCost(t *testing.T) {
	winds := model.Signature{Winds: true}
	brass := model.Signature{Brass: true}
	if got := TransitionCost(winds, brass); got != 2 {
		t.Fatalf("winds->brass cost = %v, want 2", got)
	}
	if got := TransitionCost(winds, winds); got != 0 {
		t.Fatalf("identical signatures cost = %v, want 0", got)
	}
	heavy := model.Signature{Percs: true, PercProfile: 2}
	light := model.Signature{Percs: true, PercProfile: 1}
	if got := TransitionCost(heavy, light); got != percProfilePenalty {
		t.Fatalf("perc setup change cost = %v, want %v", got, percProfilePenalty)
	}
}

func makeBundle(id, key string, load float64, sig model.Signature) model.Bundle {
	return model.Bundle{
		ID:         id,
		Key:        key,
		Members:    []model.BundleMember{{Title: key}},
		PlayerLoad: load,
		Signature:  sig,
	}
}

func TestAssembleLoadNonIncreasing(t *testing.T) {
	sig := model.Signature{Winds: true, Strings: true}
	bundles := []model.Bundle{
		makeBundle("b1", "Light", 2, sig),
		makeBundle("b2", "Heavy", 10, sig),
		makeBundle("b3", "Middle", 6, sig),
	}
	cells := []model.AllocationCell{
		{WorkTitle: "Light", Rehearsal: 1, Minutes: 20},
		{WorkTitle: "Heavy", Rehearsal: 1, Minutes: 30},
		{WorkTitle: "Middle", Rehearsal: 1, Minutes: 25},
	}
	rehearsals := []model.Rehearsal{{Number: 1, StartMinutes: 540, EndMinutes: 660}}

	slots := Assemble(cells, bundles, rehearsals)
	if len(slots) != 3 {
		t.Fatalf("got %d slots, want 3", len(slots))
	}
	wantOrder := []string{"b2", "b3", "b1"} // heaviest first, then descending
	for i, s := range slots {
		if s.Order != i {
			t.Fatalf("slot %d has order %d", i, s.Order)
		}
		if s.BundleID != wantOrder[i] {
			t.Fatalf("position %d holds %s, want %s", i, s.BundleID, wantOrder[i])
		}
	}
}

func TestAssembleGroupsSimilarSetups(t *testing.T) {
	// equal loads: ordering is decided by transition cost alone
	percSig := model.Signature{Percs: true, Strings: true, PercProfile: 2}
	plainSig := model.Signature{Strings: true}
	bundles := []model.Bundle{
		makeBundle("p1", "Perc One", 5, percSig),
		makeBundle("q1", "Quiet", 5, plainSig),
		makeBundle("p2", "Perc Two", 5, percSig),
	}
	cells := []model.AllocationCell{
		{WorkTitle: "Perc One", Rehearsal: 1, Minutes: 20},
		{WorkTitle: "Quiet", Rehearsal: 1, Minutes: 20},
		{WorkTitle: "Perc Two", Rehearsal: 1, Minutes: 20},
	}
	rehearsals := []model.Rehearsal{{Number: 1, StartMinutes: 540, EndMinutes: 660}}

	slots := Assemble(cells, bundles, rehearsals)
	positions := make(map[string]int)
	for _, s := range slots {
		positions[s.BundleID] = s.Order
	}
	dist := positions["p1"] - positions["p2"]
	if dist != 1 && dist != -1 {
		t.Fatalf("percussion bundles not adjacent: %v", positions)
	}
}

func TestAssembleDeterministic(t *testing.T) {
	sig := model.Signature{Winds: true}
	bundles := []model.Bundle{
		makeBundle("b1", "A", 4, sig),
		makeBundle("b2", "B", 4, sig),
		makeBundle("b3", "C", 4, sig),
	}
	cells := []model.AllocationCell{
		{WorkTitle: "A", Rehearsal: 1, Minutes: 20},
		{WorkTitle: "B", Rehearsal: 1, Minutes: 20},
		{WorkTitle: "C", Rehearsal: 2, Minutes: 20},
	}
	rehearsals := []model.Rehearsal{
		{Number: 1, StartMinutes: 540, EndMinutes: 630},
		{Number: 2, StartMinutes: 540, EndMinutes: 630},
	}
	first := Assemble(cells, bundles, rehearsals)
	second := Assemble(cells, bundles, rehearsals)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("assembly is not deterministic:\n%v\n%v", first, second)
	}
}

func TestAssembleSkipsEmptyRehearsals(t *testing.T) {
	bundles := []model.Bundle{makeBundle("b1", "A", 4, model.Signature{})}
	cells := []model.AllocationCell{{WorkTitle: "A", Rehearsal: 2, Minutes: 20}}
	rehearsals := []model.Rehearsal{
		{Number: 1, StartMinutes: 540, EndMinutes: 630},
		{Number: 2, StartMinutes: 540, EndMinutes: 630},
	}
	slots := Assemble(cells, bundles, rehearsals)
	if len(slots) != 1 || slots[0].Rehearsal != 2 {
		t.Fatalf("slots = %v, want a single slot in rehearsal 2", slots)
	}
}
