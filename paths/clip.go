package paths

type outcode uint

const (
	inside outcode = 0
	left   outcode = 1
	right  outcode = 2
	bottom outcode = 4
	top    outcode = 8
)

func computeOutcode(v Vec2, b Bounds) outcode {
	var c outcode
	if v[0] < b.Min[0] {
		c |= left
	} else if v[0] > b.Max[0] {
		c |= right
	}
	if v[1] < b.Min[1] {
		c |= bottom
	} else if v[1] > b.Max[1] {
		c |= top
	}
	return c
}

// crossing returns the point where the segment v0-v1 meets the edge
// of b named by code.
func crossing(v0, v1 Vec2, b Bounds, code outcode) Vec2 {
	dx, dy := v1[0]-v0[0], v1[1]-v0[1]
	switch {
	case code&top != 0:
		return Vec2{v0[0] + dx*(b.Max[1]-v0[1])/dy, b.Max[1]}
	case code&bottom != 0:
		return Vec2{v0[0] + dx*(b.Min[1]-v0[1])/dy, b.Min[1]}
	case code&right != 0:
		return Vec2{b.Max[0], v0[1] + dy*(b.Max[0]-v0[0])/dx}
	default:
		return Vec2{b.Min[0], v0[1] + dy*(b.Min[0]-v0[0])/dx}
	}
}

// clipSegment trims v0-v1 to b using Cohen-Sutherland, from
// https://en.wikipedia.org/wiki/Cohen%E2%80%93Sutherland_algorithm
// It reports false if nothing of the segment is inside.
func clipSegment(v0, v1 Vec2, b Bounds) (Vec2, Vec2, bool) {
	c0 := computeOutcode(v0, b)
	c1 := computeOutcode(v1, b)
	for {
		if c0|c1 == inside {
			return v0, v1, true
		}
		if c0&c1 != 0 {
			return v0, v1, false
		}
		if c0 > c1 {
			v0 = crossing(v0, v1, b, c0)
			c0 = computeOutcode(v0, b)
		} else {
			v1 = crossing(v0, v1, b, c1)
			c1 = computeOutcode(v1, b)
		}
	}
}

// clipPath returns the pieces of p inside b. A piece ends whenever
// the path leaves the bounds.
func clipPath(p Path, b Bounds) []Path {
	var parts []Path
	cont := false
	for i := 1; i < len(p.V); i++ {
		v0, v1, ok := clipSegment(p.V[i-1], p.V[i], b)
		if !ok {
			cont = false
			continue
		}
		if !cont || v0 != p.V[i-1] {
			parts = append(parts, Path{V: []Vec2{v0}})
		}
		last := &parts[len(parts)-1]
		last.V = append(last.V, v1)
		cont = v1 == p.V[i]
	}
	j := 0
	for _, part := range parts {
		if part.Empty() {
			continue
		}
		parts[j] = part
		j++
	}
	return parts[:j]
}

// Clip removes all line segments outside the given bounds.
// If a path crosses the bounds, it's broken into multiple paths.
// It returns how many paths were changed.
func (ps *Paths) Clip(b Bounds) int {
	var result []Path
	changed := 0
	for _, p := range ps.P {
		parts := clipPath(p, b)
		if len(parts) != 1 || len(parts[0].V) != len(p.V) || parts[0].Start() != p.Start() || parts[0].End() != p.End() {
			changed++
		}
		result = append(result, parts...)
	}
	ps.P = result
	return changed
}
