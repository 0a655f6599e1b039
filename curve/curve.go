// Package curve describes the parametric curves a plotter can draw,
// and flattens them into chains of straight lines.
package curve

import (
	"fmt"
	"math"

	"github.com/paulhankin/svgplot/paths"
)

// A Curve is a 2d curve parametrized by t in [0, 1]. Eval(0) is the
// start of the curve and Eval(1) is the end.
type Curve interface {
	Eval(t float64) paths.Vec2
}

// Kind says which variant of Segment is in use.
type Kind int

const (
	// A straight line from P0 to P1.
	LineKind Kind = iota + 1
	// A quadratic Bézier with control points P0, P1, P2.
	QuadKind
	// A cubic Bézier with control points P0, P1, P2, P3.
	CubicKind
	// An elliptical arc; see the Arc fields.
	ArcKind
)

func (k Kind) String() string {
	switch k {
	case LineKind:
		return "line"
	case QuadKind:
		return "quad"
	case CubicKind:
		return "cubic"
	case ArcKind:
		return "arc"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Segment is a tagged union of the curves found in drawings. Only the
// fields used by Kind are meaningful.
type Segment struct {
	Kind Kind

	P0, P1, P2, P3 paths.Vec2

	// The arc is the part of the ellipse with the given center and radii,
	// rotated by XRotation, from StartAngle through SweepAngle (radians).
	// A negative sweep goes clockwise in a y-up frame.
	Center     paths.Vec2
	Radii      paths.Vec2
	XRotation  float64
	StartAngle float64
	SweepAngle float64
}

var _ Curve = Segment{}

// Line returns the straight line from a to b.
func Line(a, b paths.Vec2) Segment {
	return Segment{Kind: LineKind, P0: a, P1: b}
}

// Quad returns the quadratic Bézier with control points a, b, c.
func Quad(a, b, c paths.Vec2) Segment {
	return Segment{Kind: QuadKind, P0: a, P1: b, P2: c}
}

// Cubic returns the cubic Bézier with control points a, b, c, d.
func Cubic(a, b, c, d paths.Vec2) Segment {
	return Segment{Kind: CubicKind, P0: a, P1: b, P2: c, P3: d}
}

// Arc returns an elliptical arc.
func Arc(center, radii paths.Vec2, xRotation, startAngle, sweepAngle float64) Segment {
	return Segment{
		Kind:       ArcKind,
		Center:     center,
		Radii:      radii,
		XRotation:  xRotation,
		StartAngle: startAngle,
		SweepAngle: sweepAngle,
	}
}

// Circle returns the full circle as an arc starting and finishing at
// the point furthest along x.
func Circle(center paths.Vec2, r float64) Segment {
	return Arc(center, paths.Vec2{r, r}, 0, 0, 2*math.Pi)
}

// Eval evaluates the curve at parameter t.
func (s Segment) Eval(t float64) paths.Vec2 {
	switch s.Kind {
	case LineKind:
		return s.P0.Lerp(s.P1, t)
	case QuadKind:
		mt := 1 - t
		return s.P0.Scale(mt * mt).
			Add(s.P1.Scale(2 * mt * t)).
			Add(s.P2.Scale(t * t))
	case CubicKind:
		mt := 1 - t
		return s.P0.Scale(mt * mt * mt).
			Add(s.P1.Scale(3 * mt * mt * t)).
			Add(s.P2.Scale(3 * mt * t * t)).
			Add(s.P3.Scale(t * t * t))
	case ArcKind:
		return s.Center.Add(sampleEllipse(s.Radii, s.XRotation, s.StartAngle+t*s.SweepAngle))
	}
	return paths.Vec2{math.NaN(), math.NaN()}
}

func sampleEllipse(radii paths.Vec2, xRotation, angle float64) paths.Vec2 {
	sin, cos := math.Sincos(angle)
	u := radii[0] * cos
	v := radii[1] * sin
	rs, rc := math.Sincos(xRotation)
	return paths.Vec2{u*rc - v*rs, u*rs + v*rc}
}

// Reverse returns the same segment traced from end to start.
func (s Segment) Reverse() Segment {
	switch s.Kind {
	case LineKind:
		s.P0, s.P1 = s.P1, s.P0
	case QuadKind:
		s.P0, s.P2 = s.P2, s.P0
	case CubicKind:
		s.P0, s.P1, s.P2, s.P3 = s.P3, s.P2, s.P1, s.P0
	case ArcKind:
		s.StartAngle += s.SweepAngle
		s.SweepAngle = -s.SweepAngle
	}
	return s
}

// Transform maps the segment through xf. Béziers (and lines) map
// exactly by moving their control points; arcs are wrapped, since
// a transformed arc need not be an arc of the same form.
func (s Segment) Transform(xf *paths.Xform) Curve {
	switch s.Kind {
	case LineKind, QuadKind, CubicKind:
		s.P0, s.P1, s.P2, s.P3 = xf.Apply(s.P0), xf.Apply(s.P1), xf.Apply(s.P2), xf.Apply(s.P3)
		return s
	}
	return mapped{c: s, xf: xf}
}

type reversed struct {
	c Curve
}

func (r reversed) Eval(t float64) paths.Vec2 { return r.c.Eval(1 - t) }

type mapped struct {
	c  Curve
	xf *paths.Xform
}

func (m mapped) Eval(t float64) paths.Vec2 { return m.xf.Apply(m.c.Eval(t)) }

// Reverse returns a curve that traces c from end to start.
func Reverse(c Curve) Curve {
	switch c := c.(type) {
	case Segment:
		return c.Reverse()
	case Subpath:
		return c.Reverse()
	case reversed:
		return c.c
	case mapped:
		return mapped{c: Reverse(c.c), xf: c.xf}
	}
	return reversed{c: c}
}

// Transform returns c mapped through xf.
func Transform(c Curve, xf *paths.Xform) Curve {
	if xf == nil || xf.IsIdentity() {
		return c
	}
	switch c := c.(type) {
	case Segment:
		return c.Transform(xf)
	case Subpath:
		return c.Transform(xf)
	case mapped:
		return mapped{c: c.c, xf: xf.Compose(c.xf)}
	}
	return mapped{c: c, xf: xf}
}

// TransformAll maps every curve through xf.
func TransformAll(cs []Curve, xf *paths.Xform) []Curve {
	r := make([]Curve, len(cs))
	for i, c := range cs {
		r[i] = Transform(c, xf)
	}
	return r
}

// Start returns the point where c begins.
func Start(c Curve) paths.Vec2 { return c.Eval(0) }

// End returns the point where c finishes.
func End(c Curve) paths.Vec2 { return c.Eval(1) }
