package timing

// breakBoundary picks the interior boundary (as a work-minute offset from
// the session start) where the break goes. Boundaries violating the
// guardrails are skipped; when none survives, the boundary minimizing the
// total violation wins. Ties prefer the longer first half so the break
// does not drift early.
func (a *Assigner) breakBoundary(durations []int) int {
	if len(durations) < 2 {
		return 0
	}
	boundaries := make([]int, len(durations)+1)
	for i, d := range durations {
		boundaries[i+1] = boundaries[i] + d
	}
	total := boundaries[len(boundaries)-1]
	ideal := float64(total) / 2

	type candidate struct {
		offset    int
		violation int
		balance   int // |2*offset - total|
		lateHalf  int // 0 when the first half is the longer one
	}
	best := candidate{violation: -1}
	for i := 1; i < len(boundaries)-1; i++ {
		b := boundaries[i]
		c := candidate{offset: b, balance: abs(2*b - total)}
		if float64(b) < ideal {
			c.lateHalf = 1
		}
		if durations[i-1] < a.cfg.MicroItemMinutes {
			c.violation += a.cfg.MicroItemMinutes - durations[i-1]
		}
		if durations[i] < a.cfg.MicroItemMinutes {
			c.violation += a.cfg.MicroItemMinutes - durations[i]
		}
		if b < a.cfg.MinBeforeAfter {
			c.violation += a.cfg.MinBeforeAfter - b
		}
		if total-b < a.cfg.MinBeforeAfter {
			c.violation += a.cfg.MinBeforeAfter - (total - b)
		}
		if best.violation < 0 || less(c.violation, c.balance, c.lateHalf, -c.offset,
			best.violation, best.balance, best.lateHalf, -best.offset) {
			best = c
		}
	}
	return best.offset
}

func less(a1, a2, a3, a4, b1, b2, b3, b4 int) bool {
	if a1 != b1 {
		return a1 < b1
	}
	if a2 != b2 {
		return a2 < b2
	}
	if a3 != b3 {
		return a3 < b3
	}
	return a4 < b4
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
