package paths

import (
	"fmt"
	"math"
)

// Strategy selects how Plan orders paths.
type Strategy int

const (
	// Auto uses Exact for small inputs, Spatial for large ones and
	// Greedy in between.
	Auto Strategy = iota
	// Greedy repeatedly draws the closest remaining path next.
	Greedy
	// Exact searches all orderings for the least travel. It's only
	// used up to the exact limit; larger inputs fall back to Greedy.
	Exact
	// Spatial makes the same choices as Greedy, but finds the closest
	// path using a quadtree of path ends.
	Spatial
	// Keep leaves the paths in their original order.
	Keep
)

var strategyNames = map[Strategy]string{
	Auto:    "auto",
	Greedy:  "greedy",
	Exact:   "exact",
	Spatial: "spatial",
	Keep:    "keep",
}

func (s Strategy) String() string {
	if n, ok := strategyNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown path order %q (want auto, greedy, exact, spatial or keep)", name)
}

const (
	// DefaultExactLimit is the largest number of paths Auto solves exactly.
	DefaultExactLimit = 9
	// MaxExactLimit caps the exact solver, whose cost grows as 2^n.
	MaxExactLimit = 16
	// DefaultSpatialMin is the smallest number of paths Auto orders
	// using the quadtree.
	DefaultSpatialMin = 256
)

type SortConfig struct {
	Split    bool // ok to split continuous paths
	Reverse  bool // ok to draw paths in the reverse direction
	Strategy Strategy

	ExactLimit int   // 0 means DefaultExactLimit, negative disables Exact
	SpatialMin int   // 0 means DefaultSpatialMin
	Origin     *Vec2 // if set, where the pen starts
}

func (cfg *SortConfig) exactLimit() int {
	l := cfg.ExactLimit
	switch {
	case l == 0:
		l = DefaultExactLimit
	case l < 0:
		l = 0
	case l > MaxExactLimit:
		l = MaxExactLimit
	}
	return l
}

func (cfg *SortConfig) strategy(n int) Strategy {
	switch cfg.Strategy {
	case Exact:
		if n > cfg.exactLimit() {
			return Greedy
		}
	case Auto:
		spatialMin := cfg.SpatialMin
		if spatialMin <= 0 {
			spatialMin = DefaultSpatialMin
		}
		if n <= cfg.exactLimit() {
			return Exact
		}
		if n >= spatialMin {
			return Spatial
		}
		return Greedy
	}
	return cfg.Strategy
}

// Ends describes where drawing a path begins and finishes.
type Ends struct {
	Start, End Vec2
}

// entry is where the pen lands to draw the path.
func (e Ends) entry(reversed bool) Vec2 {
	if reversed {
		return e.End
	}
	return e.Start
}

// exit is where the pen is after drawing the path.
func (e Ends) exit(reversed bool) Vec2 {
	if reversed {
		return e.Start
	}
	return e.End
}

// A Step places one path: Index is its position in the input and
// Reversed says whether it's drawn from End to Start.
type Step struct {
	Index    int
	Reversed bool
}

// Identity returns the plan that draws n paths in input order.
func Identity(n int) []Step {
	steps := make([]Step, n)
	for i := range steps {
		steps[i].Index = i
	}
	return steps
}

// Travel computes the pen-up distance of a plan: from the origin (if
// given) to the first path, and between each path and the next.
func Travel(ends []Ends, steps []Step, origin *Vec2) float64 {
	d := 0.0
	for i, s := range steps {
		in := ends[s.Index].entry(s.Reversed)
		if i > 0 {
			p := steps[i-1]
			d += vec2dist(ends[p.Index].exit(p.Reversed), in)
		} else if origin != nil {
			d += vec2dist(*origin, in)
		}
	}
	return d
}

// Plan orders paths to reduce the distance travelled between them.
// The result contains every index exactly once. It never travels
// further than drawing the paths in input order.
func Plan(ends []Ends, cfg *SortConfig) []Step {
	if cfg == nil {
		cfg = &SortConfig{}
	}
	n := len(ends)
	id := Identity(n)
	if n == 0 {
		return id
	}
	var steps []Step
	switch cfg.strategy(n) {
	case Greedy:
		steps = planGreedy(ends, cfg)
	case Exact:
		steps = planExact(ends, cfg)
	case Spatial:
		steps = planSpatial(ends, cfg)
	default:
		return id
	}
	if Travel(ends, steps, cfg.Origin) > Travel(ends, id, cfg.Origin) {
		return id
	}
	return steps
}

// closer reports whether a candidate at distance d for step s beats
// the best so far. Ties go to the lowest index, and then to the
// unreversed direction. A NaN distance loses to any other.
func closer(d float64, s Step, bestD float64, best Step) bool {
	if best.Index < 0 || d < bestD {
		return true
	}
	if math.IsNaN(d) != math.IsNaN(bestD) {
		return math.IsNaN(bestD)
	}
	if d > bestD {
		return false
	}
	if s.Index != best.Index {
		return s.Index < best.Index
	}
	return !s.Reversed && best.Reversed
}

func planGreedy(ends []Ends, cfg *SortConfig) []Step {
	n := len(ends)
	placed := make([]bool, n)
	steps := make([]Step, 0, n)
	var pos Vec2
	if cfg.Origin != nil {
		pos = *cfg.Origin
	} else {
		steps = append(steps, Step{Index: 0})
		placed[0] = true
		pos = ends[0].End
	}
	for len(steps) < n {
		best := Step{Index: -1}
		bestD := math.Inf(1)
		for i, e := range ends {
			if placed[i] {
				continue
			}
			s := Step{Index: i}
			if d := vec2dist(pos, e.Start); closer(d, s, bestD, best) {
				best, bestD = s, d
			}
			if !cfg.Reverse {
				continue
			}
			s.Reversed = true
			if d := vec2dist(pos, e.End); closer(d, s, bestD, best) {
				best, bestD = s, d
			}
		}
		placed[best.Index] = true
		steps = append(steps, best)
		pos = ends[best.Index].exit(best.Reversed)
	}
	return steps
}

// A verticle is a vertex (the "start" vertex of the path),
// with a link to the other "end" of the path.
// This might be an adjacent vertex on the path, or it might
// summarize the whole path from start to end.
type verticle struct {
	path       int // which path it's from
	start, end int // start and end index of segment
}

func (v verticle) reversed() verticle {
	v.start, v.end = v.end, v.start
	return v
}

// Sort reorders (and, if cfg allows, reverses and splits) the paths
// to reduce pen-up travel.
func (ps *Paths) Sort(cfg *SortConfig) {
	if cfg == nil {
		cfg = &SortConfig{}
	}
	var vs []verticle
	for i, p := range ps.P {
		if p.Empty() {
			continue
		}
		if cfg.Split {
			for j := 0; j < len(p.V)-1; j++ {
				vs = append(vs, verticle{i, j, j + 1})
			}
		} else {
			vs = append(vs, verticle{i, 0, len(p.V) - 1})
		}
	}
	ends := make([]Ends, len(vs))
	for i, v := range vs {
		ends[i] = Ends{Start: ps.P[v.path].V[v.start], End: ps.P[v.path].V[v.end]}
	}

	np := &Paths{Bounds: ps.Bounds}
	for _, s := range Plan(ends, cfg) {
		v := vs[s.Index]
		if s.Reversed {
			v = v.reversed()
		}
		d := 1
		if v.end < v.start {
			d = -1
		}
		for i := v.start; i != v.end; i += d {
			np.move(ps.P[v.path].V[i])
			np.line(ps.P[v.path].V[i+d])
		}
	}
	*ps = *np
}
