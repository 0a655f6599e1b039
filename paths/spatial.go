package paths

import (
	"math"

	"github.com/asim/quadtree"
	"github.com/jbeda/geom"
)

// An entrance is one way into a path: at its start, or (reversed)
// at its end.
type entrance struct {
	index    int
	reversed bool
}

// A vnode is one distinct location in the tree, shared by all the
// path ends that sit exactly there.
type vnode struct {
	pt  *quadtree.Point
	ins []entrance
}

// vindex finds the closest path entrance to a point, among paths
// that haven't been placed yet.
type vindex struct {
	ends   []Ends
	placed []bool
	tree   *quadtree.QuadTree
	nodes  map[Vec2]*vnode
	center Vec2
	minR   float64
	maxR   float64
	lost   bool // some ends couldn't be indexed
}

func toCoord(v Vec2) geom.Coord {
	return geom.Coord{X: v[0], Y: v[1]}
}

func indexEnds(ends []Ends, reverse bool) *vindex {
	vi := &vindex{
		ends:   ends,
		placed: make([]bool, len(ends)),
		nodes:  map[Vec2]*vnode{},
	}
	var bounds geom.Rect
	first := true
	grow := func(v Vec2) {
		if v.IsNaN() {
			return
		}
		if first {
			bounds = geom.Rect{Min: toCoord(v), Max: toCoord(v)}
			first = false
			return
		}
		bounds.ExpandToContainCoord(toCoord(v))
	}
	for _, e := range ends {
		grow(e.Start)
		grow(e.End)
	}

	// Add a small margin so nothing sits on the edge of the tree.
	halfW := bounds.Width()/2 + 1
	halfH := bounds.Height()/2 + 1
	vi.center = Vec2{bounds.Min.X + halfW - 1, bounds.Min.Y + halfH - 1}
	center := quadtree.NewPoint(vi.center[0], vi.center[1], nil)
	vi.tree = quadtree.New(quadtree.NewAABB(center, quadtree.NewPoint(halfW, halfH, nil)), 0, nil)
	vi.minR = math.Max(bounds.Width(), bounds.Height()) / 100
	if vi.minR <= 0 {
		vi.minR = 1
	}
	vi.maxR = 4 * (halfW + halfH)

	add := func(v Vec2, in entrance) {
		if n, ok := vi.nodes[v]; ok {
			n.ins = append(n.ins, in)
			return
		}
		n := &vnode{ins: []entrance{in}}
		n.pt = quadtree.NewPoint(v[0], v[1], n)
		if v.IsNaN() || !vi.tree.Insert(n.pt) {
			vi.lost = true
			return
		}
		vi.nodes[v] = n
	}
	for i, e := range ends {
		add(e.Start, entrance{index: i})
		if reverse {
			add(e.End, entrance{index: i, reversed: true})
		}
	}
	return vi
}

// place marks path i as drawn, and drops tree points that no longer
// lead anywhere.
func (vi *vindex) place(i int) {
	vi.placed[i] = true
	for _, v := range [2]Vec2{vi.ends[i].Start, vi.ends[i].End} {
		n, ok := vi.nodes[v]
		if !ok {
			continue
		}
		live := false
		for _, in := range n.ins {
			if !vi.placed[in.index] {
				live = true
				break
			}
		}
		if !live {
			vi.tree.Remove(n.pt)
			delete(vi.nodes, v)
		}
	}
}

// best returns the closest unplaced entrance within the square of
// half-width r around pos.
func (vi *vindex) best(pos Vec2, r float64) (Step, float64) {
	best := Step{Index: -1}
	bestD := math.Inf(1)
	area := quadtree.NewAABB(quadtree.NewPoint(pos[0], pos[1], nil), quadtree.NewPoint(r, r, nil))
	for _, pt := range vi.tree.Search(area) {
		n := pt.Data().(*vnode)
		for _, in := range n.ins {
			if vi.placed[in.index] {
				continue
			}
			s := Step{Index: in.index, Reversed: in.reversed}
			d := vec2dist(pos, vi.ends[in.index].entry(in.reversed))
			if closer(d, s, bestD, best) {
				best, bestD = s, d
			}
		}
	}
	return best, bestD
}

// nearest finds the entrance Greedy would pick from pos. The search
// square doubles until it holds a candidate at distance d; a second
// search at d then sees every entrance that's at least as close.
func (vi *vindex) nearest(pos Vec2) Step {
	limit := vi.maxR + vec2dist(pos, vi.center)
	for r := vi.minR; r <= 2*limit; r *= 2 {
		s, d := vi.best(pos, r)
		if s.Index < 0 {
			continue
		}
		if d > r {
			s, _ = vi.best(pos, d*(1+1e-9)+1e-12)
		}
		return s
	}
	// pos is far outside the tree, or only unindexed ends remain.
	for i, p := range vi.placed {
		if !p {
			return Step{Index: i}
		}
	}
	panic("no paths left")
}

func planSpatial(ends []Ends, cfg *SortConfig) []Step {
	n := len(ends)
	vi := indexEnds(ends, cfg.Reverse)
	if vi.lost {
		return planGreedy(ends, cfg)
	}
	steps := make([]Step, 0, n)
	var pos Vec2
	if cfg.Origin != nil {
		pos = *cfg.Origin
	} else {
		steps = append(steps, Step{Index: 0})
		vi.place(0)
		pos = ends[0].End
	}
	for len(steps) < n {
		s := vi.nearest(pos)
		vi.place(s.Index)
		steps = append(steps, s)
		pos = ends[s.Index].exit(s.Reversed)
	}
	return steps
}
