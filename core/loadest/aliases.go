// Package loadest estimates per-work player load from orchestration
// columns and groups movements into bundles for the downstream ordering
// and timing stages.
package loadest

import (
	"sort"
	"strings"
)

// Instrument family constants index the weight table.
const (
	FamilyWind   = "WIND"
	FamilyBrass  = "BRASS"
	FamilyString = "STRING"
	FamilyPerc   = "PERC"
	FamilyPiano  = "PIANO"
	FamilyHarp   = "HARP"
	FamilySolo   = "SOLOIST"
)

// Canonical orchestration column names per family. Incoming tables may
// spell these with different case, spacing or underscores; Resolver maps
// them back before weighting.
var (
	windColumns    = []string{"Flute", "Oboe", "Clarinet", "Bassoon", "Piccolo", "Cor Anglais", "Saxophone"}
	brassColumns   = []string{"Horn", "Trumpet", "Trombone", "Tuba"}
	stringColumns  = []string{"Violin 1", "Violin 2", "Viola", "Cello", "Bass", "Double Bass"}
	percColumns    = []string{"Percussion", "Timpani"}
	pianoColumns   = []string{"Piano", "Celeste", "Celesta", "Keyboard"}
	harpColumns    = []string{"Harp"}
	soloistColumns = []string{"Soloist", "Solo Voice", "Solo Instrument"}
)

// Known spelling variants mapped onto canonical names.
var knownAliases = map[string]string{
	"coranglais":   "Cor Anglais",
	"doublebass":   "Double Bass",
	"contrabass":   "Double Bass",
	"bass(double)": "Double Bass",
	"celesta":      "Celesta",
	"celeste":      "Celeste",
}

// normKey collapses case, spaces and underscores so "Double_Bass",
// "double bass" and "DOUBLEBASS" all meet at one key.
func normKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "_", "")
}

// Resolver maps the orchestration column names actually present in a
// works table onto canonical family groups. Build it once at ingestion;
// per-row lookups are then plain map hits.
type Resolver struct {
	families map[string][]string
}

// NewResolver inspects the column names appearing across the given
// orchestration maps and resolves each family's canonical columns to the
// spellings the table really uses. Several incoming spellings may
// canonicalize to the same column (a table carrying both "Double Bass"
// and "Contrabass"); all of them resolve into the family so no demand is
// dropped. Columns are sorted first to keep the output stable.
func NewResolver(columns []string) *Resolver {
	sorted := append([]string(nil), columns...)
	sort.Strings(sorted)
	lookup := make(map[string][]string, len(sorted))
	for _, c := range sorted {
		key := normKey(c)
		if alias, ok := knownAliases[key]; ok {
			key = normKey(alias)
		}
		lookup[key] = append(lookup[key], c)
	}
	resolve := func(canon []string) []string {
		var out []string
		for _, want := range canon {
			out = append(out, lookup[normKey(want)]...)
		}
		return out
	}
	return &Resolver{families: map[string][]string{
		FamilyWind:   resolve(windColumns),
		FamilyBrass:  resolve(brassColumns),
		FamilyString: resolve(stringColumns),
		FamilyPerc:   resolve(percColumns),
		FamilyPiano:  resolve(pianoColumns),
		FamilyHarp:   resolve(harpColumns),
		FamilySolo:   resolve(soloistColumns),
	}}
}

// Columns returns the resolved column spellings for a family.
func (r *Resolver) Columns(family string) []string { return r.families[family] }

// CollectColumns gathers every distinct orchestration column name present
// in the works' demand maps, in no particular order.
func CollectColumns(orchestrations []map[string]float64) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, m := range orchestrations {
		for c := range m {
			if _, ok := seen[c]; !ok {
				seen[c] = struct{}{}
				out = append(out, c)
			}
		}
	}
	return out
}
