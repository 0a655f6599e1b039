package paths

// simplifyPath is Douglas-Peucker: keep the point furthest from the
// chord if it's further than tol, and recurse on both halves.
func simplifyPath(v []Vec2, tol float64) []Vec2 {
	if len(v) < 3 {
		return v
	}
	first, last := v[0], v[len(v)-1]
	worst := 0
	worstD := 0.0
	for i := 1; i < len(v)-1; i++ {
		if d := SegmentDist(v[i], first, last); d > worstD {
			worst = i
			worstD = d
		}
	}
	if worstD <= tol {
		return []Vec2{first, last}
	}
	lefts := simplifyPath(v[:worst+1], tol)
	rights := simplifyPath(v[worst:], tol)
	return append(append([]Vec2{}, lefts...), rights[1:]...)
}

// Simplify removes points from paths, with the guarantee that
// all removed points are within the given tolerance (distance)
// from the new path. It returns the number of points removed.
func (ps *Paths) Simplify(tol float64) int {
	removed := 0
	for i, p := range ps.P {
		ps.P[i].V = simplifyPath(p.V, tol)
		removed += len(p.V) - len(ps.P[i].V)
	}
	return removed
}
