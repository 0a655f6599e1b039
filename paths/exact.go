package paths

import "math"

// planExact finds the order (and directions, if cfg.Reverse) with the
// least travel, using the Held-Karp dynamic program over subsets of
// drawn paths. The pen doesn't return to where it started.
//
// cost[mask][s] is the least travel that draws exactly the paths in
// mask, finishing with state s, where a state is a path and a
// direction. Time is O(2^n n^2) and memory O(2^n n), so callers limit
// n to MaxExactLimit.
func planExact(ends []Ends, cfg *SortConfig) []Step {
	n := len(ends)
	dirs := 1
	if cfg.Reverse {
		dirs = 2
	}
	states := n * dirs
	full := 1 << uint(n)
	cost := make([]float64, full*states)
	from := make([]int32, full*states)
	for i := range cost {
		cost[i] = math.Inf(1)
		from[i] = -1
	}

	step := func(s int) Step {
		return Step{Index: s / dirs, Reversed: s%dirs == 1}
	}

	for s := 0; s < states; s++ {
		st := step(s)
		c := 0.0
		if cfg.Origin != nil {
			c = vec2dist(*cfg.Origin, ends[st.Index].entry(st.Reversed))
		}
		cost[(1<<uint(st.Index))*states+s] = c
	}

	for mask := 1; mask < full; mask++ {
		for s := 0; s < states; s++ {
			st := step(s)
			if mask&(1<<uint(st.Index)) == 0 {
				continue
			}
			c := cost[mask*states+s]
			if math.IsInf(c, 1) || math.IsNaN(c) {
				continue
			}
			out := ends[st.Index].exit(st.Reversed)
			for t := 0; t < states; t++ {
				nt := step(t)
				if mask&(1<<uint(nt.Index)) != 0 {
					continue
				}
				next := mask | 1<<uint(nt.Index)
				nc := c + vec2dist(out, ends[nt.Index].entry(nt.Reversed))
				if nc < cost[next*states+t] {
					cost[next*states+t] = nc
					from[next*states+t] = int32(s)
				}
			}
		}
	}

	mask := full - 1
	best := -1
	for s := 0; s < states; s++ {
		c := cost[mask*states+s]
		if best < 0 || c < cost[mask*states+best] {
			best = s
		}
	}
	if math.IsInf(cost[mask*states+best], 1) || math.IsNaN(cost[mask*states+best]) {
		// Only unusable (NaN) ends; nothing to optimize.
		return Identity(n)
	}

	steps := make([]Step, n)
	s := best
	for k := n - 1; k >= 0; k-- {
		st := step(s)
		steps[k] = st
		prev := from[mask*states+s]
		mask &^= 1 << uint(st.Index)
		s = int(prev)
	}
	return steps
}
