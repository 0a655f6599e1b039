package curve

import (
	"math"

	"github.com/paulhankin/svgplot/paths"
)

// EndpointArc converts an SVG-style arc (the A path command) from p0 to
// p1 into a center-parametrized arc. Radii that are too small to reach
// p1 are scaled up, and a zero radius gives a straight line, as in
// https://www.w3.org/TR/SVG11/implnote.html#ArcImplementationNotes
func EndpointArc(p0 paths.Vec2, radii paths.Vec2, xRotation float64, largeArc, sweep bool, p1 paths.Vec2) Segment {
	if p0 == p1 {
		// The arc is omitted entirely.
		return Line(p0, p1)
	}
	rx, ry := math.Abs(radii[0]), math.Abs(radii[1])
	if rx == 0 || ry == 0 {
		return Line(p0, p1)
	}
	sin, cos := math.Sincos(xRotation)

	// Step 1: move to a frame centered on the chord's midpoint and
	// aligned with the ellipse's axes.
	hx := (p0[0] - p1[0]) / 2
	hy := (p0[1] - p1[1]) / 2
	x1 := cos*hx + sin*hy
	y1 := -sin*hx + cos*hy

	// Make sure the radii are big enough.
	if l := x1*x1/(rx*rx) + y1*y1/(ry*ry); l > 1 {
		s := math.Sqrt(l)
		rx *= s
		ry *= s
	}

	// Step 2: the center in that frame.
	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	k := 0.0
	if num > 0 && den > 0 {
		k = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		k = -k
	}
	cx1 := k * rx * y1 / ry
	cy1 := -k * ry * x1 / rx

	// Step 3: back to the drawing's frame.
	center := paths.Vec2{
		cos*cx1 - sin*cy1 + (p0[0]+p1[0])/2,
		sin*cx1 + cos*cy1 + (p0[1]+p1[1])/2,
	}

	// Step 4: the angles.
	start := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	end := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx)
	delta := end - start
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}
	return Arc(center, paths.Vec2{rx, ry}, xRotation, start, delta)
}
