package paths

import (
	"reflect"
	"testing"
)

func TestSimplify(t *testing.T) {
	p := func(args ...float64) Path {
		if len(args)%2 != 0 {
			t.Fatalf("p helper needs an even number of args, got %v", args)
		}
		path := Path{}
		for i := 0; i < len(args); i += 2 {
			path.V = append(path.V, Vec2{args[i], args[i+1]})
		}
		return path
	}

	cases := []struct {
		desc        string
		paths       []Path
		tol         float64
		want        []Path
		wantRemoved int
	}{
		{
			desc:        "bump within tolerance",
			paths:       []Path{p(-1, 0, 0, 0.25, 1.0, 0)},
			tol:         0.5,
			want:        []Path{p(-1, 0, 1, 0)},
			wantRemoved: 1,
		},
		{
			desc:  "bump beyond tolerance",
			paths: []Path{p(-1, 0, 0, 0.5, 1.0, 0)},
			tol:   0.2,
			want:  []Path{p(-1, 0, 0, 0.5, 1.0, 0)},
		},
		{
			desc:        "closed square with wobbly sides",
			paths:       []Path{p(-1, -1, 0, -1.1, 1, -1, 0.9, 0, 1, 1, 0, 1.1, -1, 1, -0.9, 0, -1, -1)},
			tol:         0.2,
			want:        []Path{p(-1, -1, 1, -1, 1, 1, -1, 1, -1, -1)},
			wantRemoved: 4,
		},
		{
			desc:        "flattened arc",
			paths:       []Path{p(0, 0, 1, 0.01, 2, 0.015, 3, 0.01, 4, 0), p(5, 5, 6, 6)},
			tol:         0.02,
			want:        []Path{p(0, 0, 4, 0), p(5, 5, 6, 6)},
			wantRemoved: 3,
		},
	}
	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			ps := &Paths{Bounds: Bounds{Min: Vec2{-1000, -1000}, Max: Vec2{1000, 1000}}}
			for _, path := range c.paths {
				ps.P = append(ps.P, Path{V: append([]Vec2{}, path.V...)})
			}
			removed := ps.Simplify(c.tol)
			if !reflect.DeepEqual(ps.P, c.want) {
				t.Errorf("Simplify(%v) = %v, want %v", c.tol, ps.P, c.want)
			}
			if removed != c.wantRemoved {
				t.Errorf("Simplify(%v) removed %d points, want %d", c.tol, removed, c.wantRemoved)
			}
		})
	}
}
