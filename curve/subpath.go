package curve

import (
	"math"

	"github.com/paulhankin/svgplot/paths"
)

// A Subpath is a run of curves, each starting where the previous one
// ends, that is drawn without lifting the pen. As a Curve, each piece
// gets an equal share of the parameter range.
type Subpath []Curve

var _ Curve = Subpath{}

// Eval evaluates the subpath at t.
func (p Subpath) Eval(t float64) paths.Vec2 {
	if len(p) == 0 {
		return paths.Vec2{math.NaN(), math.NaN()}
	}
	n := float64(len(p))
	i := int(math.Floor(t * n))
	if i < 0 {
		i = 0
	}
	if i >= len(p) {
		i = len(p) - 1
	}
	return p[i].Eval(t*n - float64(i))
}

// Reverse returns the subpath traced backwards.
func (p Subpath) Reverse() Subpath {
	r := make(Subpath, len(p))
	for i, c := range p {
		r[len(p)-1-i] = Reverse(c)
	}
	return r
}

// Transform maps every piece through xf.
func (p Subpath) Transform(xf *paths.Xform) Subpath {
	return Subpath(TransformAll(p, xf))
}
