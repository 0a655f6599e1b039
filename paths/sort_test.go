package paths

import (
	"fmt"
	"math"
	"math/rand"
	"reflect"
	"sort"
	"testing"
)

// moved computes the move distance of a pen (excluding draw distance),
// starting from the origin.
func moved(ps *Paths) float64 {
	d := 0.0
	var last Vec2
	for _, p := range ps.P {
		d += vec2dist(last, p.V[0])
		last = p.V[len(p.V)-1]
	}
	return d
}

type testSortCase struct {
	desc        string
	paths       *Paths
	cfg         *SortConfig
	wantMaxMove float64
}

func randomLines(r *rand.Rand, n int) *Paths {
	ps := &Paths{Bounds: Bounds{Min: Vec2{-1000, -1000}, Max: Vec2{1000, 1000}}}
	for i := 0; i < n; i++ {
		randStart := Vec2{r.Float64()*2000 - 1000, r.Float64()*2000 - 1000}
		randEnd := Vec2{r.Float64()*2000 - 1000, r.Float64()*2000 - 1000}
		randLine := Path{V: []Vec2{randStart, randEnd}}
		ps.P = append(ps.P, randLine)
	}
	return ps
}

func testSortRandom(strategy Strategy) testSortCase {
	const N = 100
	return testSortCase{
		desc:        fmt.Sprintf("%d random lines, %v", N, strategy),
		paths:       randomLines(rand.New(rand.NewSource(1)), N),
		cfg:         &SortConfig{Strategy: strategy, Origin: &Vec2{}},
		wantMaxMove: 0.5,
	}
}

func TestSort(t *testing.T) {
	cases := []testSortCase{
		testSortRandom(Auto),
		testSortRandom(Greedy),
		testSortRandom(Spatial),
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			mvd0 := moved(tc.paths)
			N := len(tc.paths.P)
			tc.paths.Sort(tc.cfg)
			mvd1 := moved(tc.paths)
			if !(mvd1 < tc.wantMaxMove*mvd0) {
				t.Errorf("got move distance %f, want at most %f", mvd1, mvd0*tc.wantMaxMove)
			}
			if len(tc.paths.P) != N {
				// In theory, we could end up with less paths than we started with if the
				// end-point of one matches the start-point of another. It's not very likely
				// though.
				t.Errorf("started with %d paths, ended with %d paths", N, len(tc.paths.P))
			}
		})
	}
}

func TestSortSplit(t *testing.T) {
	ps := &Paths{P: []Path{
		{V: []Vec2{{0, 0}, {10, 0}, {10, 10}}},
		{V: []Vec2{{0, 1}, {0, 9}}},
	}}
	ps.Sort(&SortConfig{Split: true, Reverse: true, Origin: &Vec2{}})
	var segs int
	for _, p := range ps.P {
		segs += len(p.V) - 1
	}
	if segs != 3 {
		t.Errorf("got %d segments after split sort, want 3: %v", segs, ps.P)
	}
}

func ends(vs ...float64) []Ends {
	var r []Ends
	for i := 0; i+3 < len(vs); i += 4 {
		r = append(r, Ends{Start: Vec2{vs[i], vs[i+1]}, End: Vec2{vs[i+2], vs[i+3]}})
	}
	return r
}

func TestPlan(t *testing.T) {
	// A at x=0, B at x=10, C at x=1: C is closer to A's end than B is.
	abc := ends(0, 0, 0, 1, 10, 0, 10, 1, 1, 1, 1, 2)
	nan := math.NaN()
	nanFirst := ends(nan, nan, nan, nan, 10, 0, 11, 0, 1, 0, 2, 0)
	cases := []struct {
		desc string
		ends []Ends
		cfg  *SortConfig
		want []Step
	}{
		{
			desc: "greedy",
			ends: abc,
			cfg:  &SortConfig{Strategy: Greedy},
			want: []Step{{Index: 0}, {Index: 2}, {Index: 1}},
		},
		{
			desc: "spatial",
			ends: abc,
			cfg:  &SortConfig{Strategy: Spatial},
			want: []Step{{Index: 0}, {Index: 2}, {Index: 1}},
		},
		{
			desc: "exact",
			ends: abc,
			cfg:  &SortConfig{Strategy: Exact, Origin: &Vec2{}},
			want: []Step{{Index: 0}, {Index: 2}, {Index: 1}},
		},
		{
			desc: "keep",
			ends: abc,
			cfg:  &SortConfig{Strategy: Keep},
			want: Identity(3),
		},
		{
			desc: "greedy reversed from origin",
			ends: ends(5, 0, 0, 0, 10, 0, 20, 0),
			cfg:  &SortConfig{Strategy: Greedy, Reverse: true, Origin: &Vec2{}},
			want: []Step{{Index: 0, Reversed: true}, {Index: 1}},
		},
		{
			desc: "greedy skips unusable ends",
			ends: nanFirst,
			cfg:  &SortConfig{Strategy: Greedy, Reverse: true, Origin: &Vec2{}},
			want: []Step{{Index: 2}, {Index: 1}, {Index: 0}},
		},
		{
			desc: "spatial skips unusable ends",
			ends: nanFirst,
			cfg:  &SortConfig{Strategy: Spatial, Reverse: true, Origin: &Vec2{}},
			want: []Step{{Index: 2}, {Index: 1}, {Index: 0}},
		},
		{
			desc: "empty",
			cfg:  &SortConfig{},
			want: []Step{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			got := Plan(tc.ends, tc.cfg)
			if !reflect.DeepEqual(got, tc.want) {
				t.Errorf("Plan = %v, want %v", got, tc.want)
			}
		})
	}
}

func randomEnds(r *rand.Rand, n int) []Ends {
	es := make([]Ends, n)
	for i := range es {
		es[i] = Ends{
			Start: Vec2{r.Float64() * 100, r.Float64() * 100},
			End:   Vec2{r.Float64() * 100, r.Float64() * 100},
		}
	}
	return es
}

func isPermutation(steps []Step, n int) bool {
	if len(steps) != n {
		return false
	}
	idx := make([]int, n)
	for i, s := range steps {
		idx[i] = s.Index
	}
	sort.Ints(idx)
	for i, x := range idx {
		if x != i {
			return false
		}
	}
	return true
}

func TestPlanProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	origin := &Vec2{50, 50}
	for trial := 0; trial < 20; trial++ {
		n := 1 + r.Intn(8)
		es := randomEnds(r, n)
		for _, reverse := range []bool{false, true} {
			plan := func(s Strategy) []Step {
				return Plan(es, &SortConfig{Strategy: s, Reverse: reverse, Origin: origin})
			}
			greedy, exact, spatial := plan(Greedy), plan(Exact), plan(Spatial)
			for name, steps := range map[string][]Step{"greedy": greedy, "exact": exact, "spatial": spatial} {
				if !isPermutation(steps, n) {
					t.Errorf("n=%d reverse=%v: %s plan %v isn't a permutation", n, reverse, name, steps)
				}
				if !reverse {
					for _, s := range steps {
						if s.Reversed {
							t.Errorf("%s plan reverses a path when it's not allowed", name)
						}
					}
				}
				if Travel(es, steps, origin) > Travel(es, Identity(n), origin)+1e-9 {
					t.Errorf("%s plan travels further than input order", name)
				}
			}
			if !reflect.DeepEqual(greedy, spatial) {
				t.Errorf("n=%d reverse=%v: spatial plan %v differs from greedy %v", n, reverse, spatial, greedy)
			}
			if tg, te := Travel(es, greedy, origin), Travel(es, exact, origin); te > tg+1e-9 {
				t.Errorf("n=%d reverse=%v: exact travel %g is more than greedy %g", n, reverse, te, tg)
			}
		}
	}
}

func TestPlanSpatialLarge(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	es := randomEnds(r, 500)
	for _, reverse := range []bool{false, true} {
		cfg := &SortConfig{Reverse: reverse, Origin: &Vec2{}}
		cfg.Strategy = Greedy
		greedy := Plan(es, cfg)
		cfg.Strategy = Spatial
		spatial := Plan(es, cfg)
		if !reflect.DeepEqual(greedy, spatial) {
			t.Errorf("reverse=%v: spatial plan differs from greedy", reverse)
		}
	}
}

func TestTravel(t *testing.T) {
	es := ends(0, 0, 3, 4, 3, 4, 3, 0)
	steps := []Step{{Index: 1, Reversed: true}, {Index: 0}}
	// From origin (1,0) to (3,0), then (3,4) to (0,0).
	if got, want := Travel(es, steps, &Vec2{1, 0}), 2.0+5.0; got != want {
		t.Errorf("Travel = %g, want %g", got, want)
	}
	if got, want := Travel(es, steps, nil), 5.0; got != want {
		t.Errorf("Travel without origin = %g, want %g", got, want)
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []Strategy{Auto, Greedy, Exact, Spatial, Keep} {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStrategy(%q) = %v, %v; want %v", s.String(), got, err, s)
		}
	}
	if _, err := ParseStrategy("fastest"); err == nil {
		t.Errorf("ParseStrategy(fastest) succeeded, want an error")
	}
}
