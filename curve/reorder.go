package curve

import "github.com/paulhankin/svgplot/paths"

// EndsOf returns the start and end point of each curve.
func EndsOf(cs []Curve) []paths.Ends {
	ends := make([]paths.Ends, len(cs))
	for i, c := range cs {
		ends[i] = paths.Ends{Start: Start(c), End: End(c)}
	}
	return ends
}

// Apply returns the curves in the order given by steps, reversing the
// ones the plan says to draw backwards.
func Apply(cs []Curve, steps []paths.Step) []Curve {
	r := make([]Curve, 0, len(steps))
	for _, s := range steps {
		c := cs[s.Index]
		if s.Reversed {
			c = Reverse(c)
		}
		r = append(r, c)
	}
	return r
}

// Reorder returns the curves rearranged to reduce pen-up travel
// between them. No curve is dropped or changed, except that it may be
// reversed when cfg.Reverse is set.
func Reorder(cs []Curve, cfg *paths.SortConfig) []Curve {
	return Apply(cs, paths.Plan(EndsOf(cs), cfg))
}
