package paths

import "math"

// An Xform is a 2d affine transform, stored as a 3x3 matrix
// acting on homogeneous coordinates.
type Xform struct {
	M [3][3]float64
}

// XformIdentity is the transform that leaves points unchanged.
var XformIdentity = &Xform{
	M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
}

// XformMatrix returns the transform with the svg matrix(a b c d e f)
// coefficients.
func XformMatrix(a, b, c, d, e, f float64) *Xform {
	return &Xform{
		M: [3][3]float64{
			{a, c, e},
			{b, d, f},
			{0, 0, 1},
		},
	}
}

// XformTranslate returns a transform that moves points by x,y.
func XformTranslate(x, y float64) *Xform {
	return XformMatrix(1, 0, 0, 1, x, y)
}

// XformScale returns a transform that scales by x and y about the origin.
func XformScale(x, y float64) *Xform {
	return XformMatrix(x, 0, 0, y, 0, 0)
}

// XformRotate returns a transform that rotates by th radians about the origin.
func XformRotate(th float64) *Xform {
	s, c := math.Sincos(th)
	return XformMatrix(c, s, -s, c, 0, 0)
}

// XformSkew returns a transform that skews x by ax radians and y by ay radians.
func XformSkew(ax, ay float64) *Xform {
	return XformMatrix(1, math.Tan(ay), math.Tan(ax), 1, 0, 0)
}

// XformBounds returns the transform that maps the rectangle from
// onto the rectangle to. A degenerate axis of from is translated
// without scaling.
func XformBounds(from, to Bounds) *Xform {
	sx, sy := 1.0, 1.0
	if w := from.Width(); w != 0 {
		sx = to.Width() / w
	}
	if h := from.Height(); h != 0 {
		sy = to.Height() / h
	}
	return XformTranslate(to.Min[0], to.Min[1]).
		Compose(XformScale(sx, sy)).
		Compose(XformTranslate(-from.Min[0], -from.Min[1]))
}

// Compose returns the transform that applies xf2 and then xf.
func (xf *Xform) Compose(xf2 *Xform) *Xform {
	var a Xform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				a.M[i][k] += xf.M[i][j] * xf2.M[j][k]
			}
		}
	}
	return &a
}

// Apply maps v through the transform.
func (xf *Xform) Apply(v Vec2) Vec2 {
	x := [3]float64{v[0], v[1], 1.0}
	var r [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i] += xf.M[i][j] * x[j]
		}
	}
	return Vec2{r[0] / r[2], r[1] / r[2]}
}

// IsIdentity reports whether xf leaves all points unchanged.
func (xf *Xform) IsIdentity() bool {
	return xf.M == XformIdentity.M
}
