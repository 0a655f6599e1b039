package curve

import (
	"errors"
	"fmt"

	"github.com/paulhankin/svgplot/diag"
	"github.com/paulhankin/svgplot/paths"
)

// ErrBadTolerance is returned when the approximation tolerance is not
// a positive number.
var ErrBadTolerance = errors.New("tolerance must be positive")

const (
	DefaultMinDepth = 2
	DefaultMaxDepth = 16
)

// An Approximator flattens curves into chains of straight lines.
type Approximator struct {
	// Tolerance is the largest allowed distance between a sampled point
	// on the curve and the line that replaces it.
	Tolerance float64

	// Intervals shallower than MinDepth are also checked at their
	// quarter points, so that curves which happen to cross their chord
	// at the midpoint (an S-bend) are not mistaken for straight lines.
	// 0 means DefaultMinDepth.
	MinDepth int

	// MaxDepth bounds the subdivision. An interval at this depth is
	// drawn as its chord whatever its deviation. 0 means DefaultMaxDepth.
	MaxDepth int

	// Diag receives warnings about curves that flatten to nothing.
	Diag *diag.Log
}

// Approximate flattens c into a chain of lines whose sampled deviation
// from c is at most tol.
func Approximate(c Curve, tol float64) (paths.Path, error) {
	a := Approximator{Tolerance: tol}
	return a.Approximate(c)
}

func (a *Approximator) depths() (int, int) {
	lo, hi := a.MinDepth, a.MaxDepth
	if lo <= 0 {
		lo = DefaultMinDepth
	}
	if hi <= 0 {
		hi = DefaultMaxDepth
	}
	if lo > hi {
		lo = hi
	}
	return lo, hi
}

// Approximate flattens c. The first vertex is c.Eval(0) and the last
// is c.Eval(1). A curve whose samples all coincide gives an empty path.
func (a *Approximator) Approximate(c Curve) (paths.Path, error) {
	if !(a.Tolerance > 0) {
		return paths.Path{}, fmt.Errorf("curve: %w (got %g)", ErrBadTolerance, a.Tolerance)
	}
	var v []paths.Vec2
	if sp, ok := c.(Subpath); ok {
		for _, piece := range sp {
			pv := a.flatten(piece)
			if len(v) > 0 {
				pv = pv[1:]
			}
			v = append(v, pv...)
		}
	} else {
		v = a.flatten(c)
	}
	if degenerate(v) {
		a.Diag.Warnf(diag.EmptyChain, "curve from %v to %v has no length", Start(c), End(c))
		return paths.Path{}, nil
	}
	return paths.Path{V: v}, nil
}

func (a *Approximator) flatten(c Curve) []paths.Vec2 {
	p0 := c.Eval(0)
	v := []paths.Vec2{p0}
	a.walk(c, func(t0, t1 float64, p1 paths.Vec2) {
		v = append(v, p1)
	})
	return v
}

// walk calls emit for each chord of the flattened curve, in order.
// The chord covers parameters [t0, t1] and ends at p1.
func (a *Approximator) walk(c Curve, emit func(t0, t1 float64, p1 paths.Vec2)) {
	minDepth, maxDepth := a.depths()
	var rec func(t0, t1 float64, p0, p1 paths.Vec2, depth int)
	rec = func(t0, t1 float64, p0, p1 paths.Vec2, depth int) {
		tm := (t0 + t1) / 2
		pm := c.Eval(tm)
		if depth < maxDepth && !a.flat(c, t0, t1, p0, pm, p1, depth < minDepth) {
			rec(t0, tm, p0, pm, depth+1)
			rec(tm, t1, pm, p1, depth+1)
			return
		}
		emit(t0, t1, p1)
	}
	rec(0, 1, c.Eval(0), c.Eval(1), 0)
}

// flat reports whether the interval [t0, t1] can be drawn as the line
// from p0 to p1. pm is the curve at the interval's midpoint.
func (a *Approximator) flat(c Curve, t0, t1 float64, p0, pm, p1 paths.Vec2, quarters bool) bool {
	if paths.SegmentDist(pm, p0, p1) > a.Tolerance {
		return false
	}
	if quarters {
		for _, f := range [2]float64{0.25, 0.75} {
			q := c.Eval(t0 + f*(t1-t0))
			if paths.SegmentDist(q, p0, p1) > a.Tolerance {
				return false
			}
		}
	}
	// A NaN deviation compares false above, so noisy curves end here.
	return true
}

func degenerate(v []paths.Vec2) bool {
	if len(v) < 2 {
		return true
	}
	for _, p := range v[1:] {
		if p != v[0] {
			return false
		}
	}
	return true
}
