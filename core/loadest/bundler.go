package loadest

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/JackCapstaff/rehearsal-schedule/core/model"
)

var romanOrdinals = map[string]int{
	"I": 1, "II": 2, "III": 3, "IV": 4, "V": 5,
	"VI": 6, "VII": 7, "VIII": 8, "IX": 9, "X": 10,
	"XI": 11, "XII": 12, "XIII": 13, "XIV": 14, "XV": 15,
}

var (
	titleSplitRe = regexp.MustCompile(`\s*[:\-–]\s*`)
	romanMoveRe  = regexp.MustCompile(`(?i)^(I{1,3}|IV|V|VI{0,3}|IX|X)\b[.\-–:]?\s*(.*)$`)
	numberMoveRe = regexp.MustCompile(`^(\d{1,2})\b[.\-–:]?\s*(.*)$`)
)

// ParseGroupAndMovement derives (parentTitle, movementLabel, movementOrder)
// from a work title. A non-empty hint wins over title splitting; otherwise
// the title is split on its first ":", "-" or "–" separator and the tail is
// checked for a Roman or integer movement ordinal. Order zero means the
// tail carried no recognisable ordinal.
func ParseGroupAndMovement(title, hint string) (string, string, int) {
	s := strings.TrimSpace(title)
	var group, tail string
	if hint != "" {
		group = strings.TrimSpace(hint)
		if strings.HasPrefix(strings.ToLower(s), strings.ToLower(group)) {
			tail = strings.TrimSpace(s[len(group):])
			tail = strings.TrimLeft(tail, ":-– .")
			tail = strings.TrimSpace(tail)
		}
	} else {
		parts := titleSplitRe.Split(s, 2)
		group = strings.TrimSpace(parts[0])
		if len(parts) > 1 {
			tail = strings.TrimSpace(parts[1])
		}
	}

	if tail == "" {
		if group == "" {
			return s, "", 0
		}
		return group, "", 0
	}
	if m := romanMoveRe.FindStringSubmatch(tail); m != nil {
		return group, tail, romanOrdinals[strings.ToUpper(m[1])]
	}
	if m := numberMoveRe.FindStringSubmatch(tail); m != nil {
		n, _ := strconv.Atoi(m[1])
		return group, tail, n
	}
	return group, tail, 0
}

// EstimateAndBundle scores every work and merges works sharing a parent
// key into bundles. Bundle player load and required minutes are summed
// over members; signatures are OR-merged. Members carrying movement
// ordinals come first, in ordinal order, then the rest by title.
func EstimateAndBundle(works []model.Work) []model.Bundle {
	est := NewEstimator(works)

	type entry struct {
		work  model.Work
		label string
		order int
	}
	grouped := make(map[string][]entry)
	var keys []string
	for _, w := range works {
		group, label, order := ParseGroupAndMovement(w.Title, w.ParentKey)
		if group == "" {
			group = w.Title
		}
		if _, ok := grouped[group]; !ok {
			keys = append(keys, group)
		}
		grouped[group] = append(grouped[group], entry{work: w, label: label, order: order})
	}

	bundles := make([]model.Bundle, 0, len(keys))
	for _, key := range keys {
		entries := grouped[key]
		sort.SliceStable(entries, func(i, j int) bool {
			oi, oj := entries[i].order, entries[j].order
			if (oi > 0) != (oj > 0) {
				return oi > 0
			}
			if oi != oj {
				return oi < oj
			}
			return entries[i].work.Title < entries[j].work.Title
		})

		b := model.Bundle{ID: uuid.NewString(), Key: key}
		for _, en := range entries {
			b.Members = append(b.Members, model.BundleMember{
				Title:         en.work.Title,
				MovementLabel: en.label,
				MovementOrder: en.order,
			})
			b.PlayerLoad += est.PlayerLoad(en.work)
			b.RequiredMinutes += en.work.RequiredMinutes
			b.Signature = b.Signature.Merge(est.Signature(en.work))
			d := est.SectionDemand(en.work)
			b.Demand = model.SectionDemand{
				Percs:   b.Demand.Percs || d.Percs,
				Piano:   b.Demand.Piano || d.Piano,
				Harp:    b.Demand.Harp || d.Harp,
				Brass:   b.Demand.Brass || d.Brass,
				Soloist: b.Demand.Soloist || d.Soloist,
			}
		}
		bundles = append(bundles, b)
	}
	return bundles
}
