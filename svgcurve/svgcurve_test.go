package svgcurve

import (
	"bytes"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/JoshVarga/svgparser"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/paulhankin/svgplot/curve"
	"github.com/paulhankin/svgplot/diag"
	"github.com/paulhankin/svgplot/paths"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// A simple test svg that contains paths and groups that have
// transforms applied to them.
var testSVG = `
<svg width="2000" height="1000">
   <path d="M 123, 456 321, 654"/>
   <g transform="translate(200, 100) scale(2)" stroke="black" fill="none">
	   <path d="M100,50 300, 200"/>
	   <g transform="translate(50,50)">
		   <path d="M 50, 50 250, 50 150, 100"/>
	   </g>
   </g>
</svg>`

// flatten approximates the document's curves as paths.
func flatten(t *testing.T, doc *Document) *paths.Paths {
	t.Helper()
	ps := &paths.Paths{Bounds: doc.Bounds}
	for _, c := range doc.Curves {
		p, err := curve.Approximate(c, 0.01)
		if err != nil {
			t.Fatalf("failed to approximate %v: %v", c, err)
		}
		ps.Append(p)
	}
	return ps
}

func TestSVG(t *testing.T) {
	doc, err := FromSVG(strings.NewReader(testSVG))
	if err != nil {
		t.Fatalf("failed to parse svg: %v", err)
	}
	got := flatten(t, doc)
	want := &paths.Paths{
		Bounds: paths.Bounds{Max: paths.Vec2{2000, 1000}},
		P: []paths.Path{
			{V: []paths.Vec2{{123, 456}, {321, 654}}},
			{V: []paths.Vec2{{400, 200}, {800, 500}}},
			{V: []paths.Vec2{{400, 300}, {800, 300}, {600, 400}}},
		},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("svg parse. Got:\n%v\nWant:\n%v\n", got, want)
	}
}

// TestSVGRoundTrip parses paths out of an svg, writes them back
// to a new svg file, parses the paths out of that, and then checks
// that the paths (or bounds) don't change.
func TestSVGRoundTrip(t *testing.T) {
	doc, err := FromSVG(strings.NewReader(testSVG))
	if err != nil {
		t.Fatalf("failed to parse svg: %v", err)
	}
	got := flatten(t, doc)
	if len(got.P) == 0 {
		t.Fatalf("expected some paths")
	}
	var bb bytes.Buffer
	if err := got.SVG(&bb); err != nil {
		t.Fatalf("failed to write back svg: %v", err)
	}
	doc2, err := FromSVG(&bb)
	if err != nil {
		t.Fatalf("failed to re-parse svg: %v", err)
	}
	got2 := flatten(t, doc2)
	if !reflect.DeepEqual(got, got2) {
		t.Errorf("svg round-trip not identity. Started with:\n%v\nGot:\n%v", got, got2)
	}
}

// sample evaluates each curve at a few points.
func sample(cs []curve.Curve) [][]paths.Vec2 {
	var r [][]paths.Vec2
	for _, c := range cs {
		var vs []paths.Vec2
		for _, t := range []float64{0, 0.25, 0.5, 0.75, 1} {
			vs = append(vs, c.Eval(t))
		}
		r = append(r, vs)
	}
	return r
}

func TestShapes(t *testing.T) {
	cases := []struct {
		desc string
		elt  string
		want []curve.Curve
	}{
		{
			desc: "line",
			elt:  `<line x1="1" y1="2" x2="3" y2="4"/>`,
			want: []curve.Curve{curve.Line(paths.Vec2{1, 2}, paths.Vec2{3, 4})},
		},
		{
			desc: "polyline",
			elt:  `<polyline points="0,0 1,0 1,1"/>`,
			want: []curve.Curve{curve.Subpath{
				curve.Line(paths.Vec2{0, 0}, paths.Vec2{1, 0}),
				curve.Line(paths.Vec2{1, 0}, paths.Vec2{1, 1}),
			}},
		},
		{
			desc: "polygon",
			elt:  `<polygon points="0,0 1,0 1,1"/>`,
			want: []curve.Curve{curve.Subpath{
				curve.Line(paths.Vec2{0, 0}, paths.Vec2{1, 0}),
				curve.Line(paths.Vec2{1, 0}, paths.Vec2{1, 1}),
				curve.Line(paths.Vec2{1, 1}, paths.Vec2{0, 0}),
			}},
		},
		{
			desc: "rect",
			elt:  `<rect x="1" y="2" width="10" height="20"/>`,
			want: []curve.Curve{curve.Subpath{
				curve.Line(paths.Vec2{1, 2}, paths.Vec2{11, 2}),
				curve.Line(paths.Vec2{11, 2}, paths.Vec2{11, 22}),
				curve.Line(paths.Vec2{11, 22}, paths.Vec2{1, 22}),
				curve.Line(paths.Vec2{1, 22}, paths.Vec2{1, 2}),
			}},
		},
		{
			desc: "empty rect",
			elt:  `<rect width="0" height="20"/>`,
		},
		{
			desc: "circle",
			elt:  `<circle cx="5" cy="5" r="2"/>`,
			want: []curve.Curve{curve.Circle(paths.Vec2{5, 5}, 2)},
		},
		{
			desc: "ellipse",
			elt:  `<ellipse cx="5" cy="5" rx="2" ry="1"/>`,
			want: []curve.Curve{curve.Arc(paths.Vec2{5, 5}, paths.Vec2{2, 1}, 0, 0, 2*math.Pi)},
		},
		{
			desc: "transformed line",
			elt:  `<line x1="1" y1="0" x2="2" y2="0" transform="rotate(90)"/>`,
			want: []curve.Curve{curve.Line(paths.Vec2{0, 1}, paths.Vec2{0, 2})},
		},
		{
			desc: "hidden",
			elt:  `<line x1="1" y1="0" x2="2" y2="0" display="none"/>`,
		},
		{
			desc: "defs",
			elt:  `<defs><line x1="1" y1="0" x2="2" y2="0"/></defs>`,
		},
		{
			desc: "path with two subpaths",
			elt:  `<path d="M0 0 L1 0 M5 5 l1 0"/>`,
			want: []curve.Curve{
				curve.Line(paths.Vec2{0, 0}, paths.Vec2{1, 0}),
				curve.Line(paths.Vec2{5, 5}, paths.Vec2{6, 5}),
			},
		},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			src := `<svg viewBox="0 0 100 100">` + tc.elt + `</svg>`
			var log diag.Log
			doc, err := FromSVGOptions(strings.NewReader(src), &Options{Diag: &log})
			if err != nil {
				t.Fatalf("failed to parse %s: %v", src, err)
			}
			if diff := cmp.Diff(sample(tc.want), sample(doc.Curves), approx); diff != "" {
				t.Errorf("curves mismatch (-want +got):\n%s", diff)
			}
			if len(log.Warnings) != 0 {
				t.Errorf("got warnings %v", log.Warnings)
			}
		})
	}
}

func TestRoundedRect(t *testing.T) {
	doc, err := FromSVG(strings.NewReader(`<svg><rect x="0" y="0" width="10" height="4" rx="1"/></svg>`))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Curves) != 1 {
		t.Fatalf("got %d curves, want 1", len(doc.Curves))
	}
	p, err := curve.Approximate(doc.Curves[0], 0.01)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(p.Start(), p.End(), approx); diff != "" {
		t.Errorf("outline isn't closed (-start +end):\n%s", diff)
	}
	for _, v := range p.V {
		if v[0] < -1e-9 || v[0] > 10+1e-9 || v[1] < -1e-9 || v[1] > 4+1e-9 {
			t.Errorf("vertex %v is outside the rectangle", v)
		}
		// The corners are cut off.
		if math.Min(v[0], 10-v[0]) < 0.2 && math.Min(v[1], 4-v[1]) < 0.2 {
			t.Errorf("vertex %v is in a rounded-off corner", v)
		}
	}
	want := paths.Bounds{Max: paths.Vec2{10, 4}}
	if diff := cmp.Diff(want, doc.Bounds, approx); diff != "" {
		t.Errorf("bounds from curves mismatch (-want +got):\n%s", diff)
	}
}

func TestBounds(t *testing.T) {
	cases := []struct {
		desc string
		svg  string
		want paths.Bounds
	}{
		{
			desc: "viewBox",
			svg:  `<svg width="10cm" height="10cm" viewBox="-10 -10, 20 20"></svg>`,
			want: paths.Bounds{Min: paths.Vec2{-10, -10}, Max: paths.Vec2{10, 10}},
		},
		{
			desc: "size with units",
			svg:  `<svg width="100mm" height="50mm"></svg>`,
			want: paths.Bounds{Max: paths.Vec2{100, 50}},
		},
		{
			desc: "from curves",
			svg:  `<svg><line x1="1" y1="2" x2="3" y2="7"/></svg>`,
			want: paths.Bounds{Min: paths.Vec2{1, 2}, Max: paths.Vec2{3, 7}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.desc, func(t *testing.T) {
			doc, err := FromSVG(strings.NewReader(tc.svg))
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tc.want, doc.Bounds, approx); diff != "" {
				t.Errorf("bounds mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestUnknownElement(t *testing.T) {
	var log diag.Log
	src := `<svg width="10" height="10"><text x="1" y="1">hi</text><line x2="1"/></svg>`
	doc, err := FromSVGOptions(strings.NewReader(src), &Options{Diag: &log})
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Curves) != 1 {
		t.Errorf("got %d curves, want 1", len(doc.Curves))
	}
	if n := log.Count(diag.UnknownElement); n != 1 {
		t.Errorf("got %d unknown element warnings, want 1: %v", n, log.Warnings)
	}
}

func TestSVGErrors(t *testing.T) {
	for _, src := range []string{
		`<svg><path d="L1 1"/></svg>`,
		`<svg><line x1="one"/></svg>`,
		`<svg><g transform="spin(1)"/></svg>`,
		`<svg><polyline points="1 2 3"/></svg>`,
		`<svg viewBox="0 0 1"/>`,
		`<html/>`,
		`not xml`,
	} {
		if _, err := FromSVG(strings.NewReader(src)); err == nil {
			t.Errorf("FromSVG(%q) succeeded, want an error", src)
		}
	}
}

func TestPageGeometry(t *testing.T) {
	cases := []struct {
		svg  string
		want page
	}{
		{
			svg:  `<svg width="20mm" height="10mm" viewBox="0 0 200 100"></svg>`,
			want: page{width: "20mm", height: "10mm", viewBox: "0 0 200 100", box: []float64{0, 0, 200, 100}},
		},
		{
			svg:  `<svg width="5" height="6"></svg>`,
			want: page{width: "5", height: "6"},
		},
	}
	for _, tc := range cases {
		// An empty element: everything must come from the rustyoz parser.
		got := pageGeometry([]byte(tc.svg), &svgparser.Element{})
		if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(page{})); diff != "" {
			t.Errorf("pageGeometry(%s) mismatch (-want +got):\n%s", tc.svg, diff)
		}
	}
}
