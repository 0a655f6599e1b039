// Package paths provides tools for manipulating 2d paths consisting
// of line segments, and for ordering them so that a pen plotter
// spends as little time as possible travelling with the pen up.
package paths

import "math"

// Vec2 is a 2-dimensional vector.
type Vec2 [2]float64

// Add returns v+w.
func (v Vec2) Add(w Vec2) Vec2 {
	return Vec2{v[0] + w[0], v[1] + w[1]}
}

// Sub returns v-w.
func (v Vec2) Sub(w Vec2) Vec2 {
	return Vec2{v[0] - w[0], v[1] - w[1]}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v[0] * s, v[1] * s}
}

// Lerp returns the point a fraction s of the way from v to w.
func (v Vec2) Lerp(w Vec2, s float64) Vec2 {
	return Vec2{v[0]*(1-s) + w[0]*s, v[1]*(1-s) + w[1]*s}
}

// Dist returns the euclidean distance between v and w.
func (v Vec2) Dist(w Vec2) float64 {
	return vec2dist(v, w)
}

// IsNaN reports whether either coordinate is NaN.
func (v Vec2) IsNaN() bool {
	return math.IsNaN(v[0]) || math.IsNaN(v[1])
}

func vec2dist(v0, v1 Vec2) float64 {
	dx := v0[0] - v1[0]
	dy := v0[1] - v1[1]
	return math.Sqrt(dx*dx + dy*dy)
}

// SegmentDist returns the distance from v to the closest point on the
// line segment from s to e. If s and e coincide, it's the distance to
// that point.
func SegmentDist(v, s, e Vec2) float64 {
	d := e.Sub(s)
	l2 := d[0]*d[0] + d[1]*d[1]
	if l2 == 0 {
		return vec2dist(v, s)
	}
	t := ((v[0]-s[0])*d[0] + (v[1]-s[1])*d[1]) / l2
	t = math.Max(0, math.Min(1, t))
	return vec2dist(v, s.Add(d.Scale(t)))
}

// A Segment is a single straight line, from Start to End.
// Start and End may be equal.
type Segment struct {
	Start, End Vec2
}

// A Path is a contiguous series of line segments, from the
// first point in the V slice to the last. A path with fewer than
// two points has no segments.
type Path struct {
	V []Vec2
}

// Empty reports whether the path has no segments.
func (p Path) Empty() bool {
	return len(p.V) < 2
}

// Start returns the first point of the path.
func (p Path) Start() Vec2 {
	return p.V[0]
}

// End returns the last point of the path.
func (p Path) End() Vec2 {
	return p.V[len(p.V)-1]
}

// Segments returns the segments of the path in drawing order.
// The end of each segment is the start of the next.
func (p Path) Segments() []Segment {
	if p.Empty() {
		return nil
	}
	segs := make([]Segment, 0, len(p.V)-1)
	for i := 1; i < len(p.V); i++ {
		segs = append(segs, Segment{Start: p.V[i-1], End: p.V[i]})
	}
	return segs
}

// Reversed returns a copy of the path drawn from end to start.
func (p Path) Reversed() Path {
	v := make([]Vec2, len(p.V))
	for i, x := range p.V {
		v[len(p.V)-1-i] = x
	}
	return Path{V: v}
}

// Length returns the total length of the path's segments.
func (p Path) Length() float64 {
	l := 0.0
	for i := 1; i < len(p.V); i++ {
		l += vec2dist(p.V[i-1], p.V[i])
	}
	return l
}

// Bounds describes an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec2
}

// Width returns the extent of the bounds in x.
func (b Bounds) Width() float64 { return b.Max[0] - b.Min[0] }

// Height returns the extent of the bounds in y.
func (b Bounds) Height() float64 { return b.Max[1] - b.Min[1] }

// Paths is a set of paths, along with a view bounds.
type Paths struct {
	Bounds Bounds
	P      []Path
}

// TightenBounds adjusts the bounds to exactly contain the paths.
// If there are no paths, the bounds are set to zero.
func (ps *Paths) TightenBounds() {
	inf := math.Inf(1)
	min := Vec2{inf, inf}
	max := Vec2{-inf, -inf}
	i := 0
	for _, p := range ps.P {
		for _, v := range p.V {
			i++
			min[0] = math.Min(min[0], v[0])
			min[1] = math.Min(min[1], v[1])
			max[0] = math.Max(max[0], v[0])
			max[1] = math.Max(max[1], v[1])
		}
	}
	if i == 0 {
		ps.Bounds = Bounds{}
		return
	}
	ps.Bounds = Bounds{
		Min: min,
		Max: max,
	}
}

// Translate moves all the paths by the given amount.
func (ps *Paths) Translate(dx Vec2) {
	ps.Apply(XformTranslate(dx[0], dx[1]))
	ps.Bounds = Bounds{
		Min: ps.Bounds.Min.Add(dx),
		Max: ps.Bounds.Max.Add(dx),
	}
}

// Transform resizes all paths so that the rectangle forming the
// current bounds is the size of the new bounds. The bounds
// are also updated to the new bounds.
func (ps *Paths) Transform(nb Bounds) {
	ps.Apply(XformBounds(ps.Bounds, nb))
	ps.Bounds = nb
}

// Apply maps every point of every path through xf. The bounds
// are left alone.
func (ps *Paths) Apply(xf *Xform) {
	for _, p := range ps.P {
		for i, v := range p.V {
			p.V[i] = xf.Apply(v)
		}
	}
}

// Append adds p to the set, unless it's empty.
func (ps *Paths) Append(p Path) {
	if p.Empty() {
		return
	}
	ps.P = append(ps.P, p)
}

// move adds a new (initially empty) path starting at x,
// unless the last path already ends at x.
func (ps *Paths) move(x Vec2) {
	if len(ps.P) == 0 {
		ps.P = append(ps.P, Path{V: []Vec2{x}})
		return
	}
	p := &ps.P[len(ps.P)-1]
	if len(p.V) > 0 && p.V[len(p.V)-1] == x {
		return
	}
	ps.P = append(ps.P, Path{V: []Vec2{x}})
}

// line extends the last path with an edge that goes to x.
func (ps *Paths) line(x Vec2) {
	p := &ps.P[len(ps.P)-1]
	p.V = append(p.V, x)
}
