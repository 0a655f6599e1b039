// Package svgcurve reads the curves out of an SVG file.
//
// This provides only limited SVG support: shapes and paths are
// drawn as strokes, and styles, text, clipping and the like are
// ignored.
package svgcurve

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"io/ioutil"
	"math"
	"strconv"
	"strings"

	"github.com/JoshVarga/svgparser"
	"github.com/rustyoz/svg"
	"golang.org/x/net/html/charset"

	"github.com/paulhankin/svgplot/curve"
	"github.com/paulhankin/svgplot/diag"
	"github.com/paulhankin/svgplot/paths"
)

// A Document is the drawable content of an SVG file.
type Document struct {
	// Bounds is the page, in user units: the viewBox if there is one,
	// otherwise 0,0 to width,height.
	Bounds paths.Bounds
	Curves []curve.Curve
}

// Options controls FromSVGOptions.
type Options struct {
	// Diag receives warnings about parts of the file that are ignored.
	Diag *diag.Log
}

// FromSVG parses an SVG file, extracting its curves in document order.
func FromSVG(r io.Reader) (*Document, error) {
	return FromSVGOptions(r, nil)
}

// FromSVGOptions is FromSVG with options.
func FromSVGOptions(r io.Reader, opts *Options) (*Document, error) {
	if opts == nil {
		opts = &Options{}
	}
	raw, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = charset.NewReaderLabel
	elt, err := svgparser.DecodeFirst(decoder)
	if err != nil {
		return nil, fmt.Errorf("svgcurve: %w", err)
	}
	if err := elt.Decode(decoder); err != nil && err != io.EOF {
		return nil, fmt.Errorf("svgcurve: %w", err)
	}
	if elt.Name != "svg" {
		return nil, fmt.Errorf("svgcurve: root element is <%s>, not <svg>", elt.Name)
	}
	p := &parser{diag: opts.Diag}
	if err := p.children(elt, paths.XformIdentity); err != nil {
		return nil, fmt.Errorf("svgcurve: %w", err)
	}
	doc := &Document{Curves: p.curves}
	doc.Bounds, err = parseBounds(raw, elt)
	if err != nil {
		return nil, fmt.Errorf("svgcurve: %w", err)
	}
	if doc.Bounds.Width() == 0 && doc.Bounds.Height() == 0 {
		doc.Bounds = CurveBounds(doc.Curves)
	}
	return doc, nil
}

// page is the size of the drawing as given on the document element.
type page struct {
	width, height string
	viewBox       string
	box           []float64 // viewBox numbers, if already parsed
}

// pageGeometry reads the page size with the rustyoz parser, which
// understands the svg element and its viewBox. If it can't cope with
// the rest of the file the attributes are read from the element tree
// instead.
func pageGeometry(raw []byte, elt *svgparser.Element) page {
	s, err := svg.ParseSvgFromReader(bytes.NewReader(raw), "", 1.0)
	if err != nil {
		return page{
			width:   elt.Attributes["width"],
			height:  elt.Attributes["height"],
			viewBox: elt.Attributes["viewBox"],
		}
	}
	pg := page{width: s.Width, height: s.Height, viewBox: s.ViewBox}
	if strings.TrimSpace(s.ViewBox) != "" {
		// Only plain space-separated lists; commas are left to parseNumberList.
		if vs, err := s.ViewBoxValues(); err == nil {
			pg.box = vs
		}
	}
	return pg
}

func parseBounds(raw []byte, elt *svgparser.Element) (paths.Bounds, error) {
	pg := pageGeometry(raw, elt)
	if fs := pg.box; fs != nil || strings.TrimSpace(pg.viewBox) != "" {
		if fs == nil {
			var err error
			if fs, err = parseNumberList(pg.viewBox); err != nil {
				return paths.Bounds{}, fmt.Errorf("bad viewBox %q: %w", pg.viewBox, err)
			}
		}
		if len(fs) != 4 {
			return paths.Bounds{}, fmt.Errorf("bad viewBox %q: want 4 numbers", pg.viewBox)
		}
		return paths.Bounds{
			Min: paths.Vec2{fs[0], fs[1]},
			Max: paths.Vec2{fs[0] + fs[2], fs[1] + fs[3]},
		}, nil
	}
	if pg.width == "" && pg.height == "" {
		return paths.Bounds{}, nil
	}
	width, err := parseLength(pg.width)
	if err != nil {
		return paths.Bounds{}, fmt.Errorf("bad width: %w", err)
	}
	height, err := parseLength(pg.height)
	if err != nil {
		return paths.Bounds{}, fmt.Errorf("bad height: %w", err)
	}
	return paths.Bounds{Max: paths.Vec2{width, height}}, nil
}

// CurveBounds returns a box that contains the curves, found by
// sampling them.
func CurveBounds(cs []curve.Curve) paths.Bounds {
	const samples = 16
	b := paths.Bounds{
		Min: paths.Vec2{math.Inf(1), math.Inf(1)},
		Max: paths.Vec2{math.Inf(-1), math.Inf(-1)},
	}
	for _, c := range cs {
		for i := 0; i <= samples; i++ {
			v := c.Eval(float64(i) / samples)
			if v.IsNaN() {
				continue
			}
			for j := 0; j < 2; j++ {
				b.Min[j] = math.Min(b.Min[j], v[j])
				b.Max[j] = math.Max(b.Max[j], v[j])
			}
		}
	}
	if b.Min[0] > b.Max[0] {
		return paths.Bounds{}
	}
	return b
}

// parseLength parses an svg length, ignoring any unit.
func parseLength(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	s = strings.TrimRight(s, "abcdefghijklmnopqrstuvwxyz%")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

func parseNumberList(s string) ([]float64, error) {
	p := &pathScanner{s: s}
	var r []float64
	for !p.done() {
		f, err := p.number()
		if err != nil {
			return nil, err
		}
		r = append(r, f)
	}
	return r, nil
}

// Elements that draw nothing and are skipped without a warning.
var ignored = map[string]bool{
	"defs":     true,
	"title":    true,
	"desc":     true,
	"metadata": true,
	"style":    true,
}

type parser struct {
	curves []curve.Curve
	diag   *diag.Log
}

// add appends the subpaths of a shape, mapped through xf.
func (p *parser) add(xf *paths.Xform, subpaths ...[]curve.Curve) {
	for _, sp := range subpaths {
		sp = curve.TransformAll(sp, xf)
		if len(sp) == 1 {
			p.curves = append(p.curves, sp[0])
		} else {
			p.curves = append(p.curves, curve.Subpath(sp))
		}
	}
}

func (p *parser) children(e *svgparser.Element, xf *paths.Xform) error {
	for _, c := range e.Children {
		if ignored[c.Name] || c.Attributes["display"] == "none" {
			continue
		}
		cxf := xf
		if t, ok := c.Attributes["transform"]; ok {
			exf, err := parseXform(t)
			if err != nil {
				return fmt.Errorf("<%s>: %w", c.Name, err)
			}
			cxf = xf.Compose(exf)
		}
		if err := p.element(c, cxf); err != nil {
			return fmt.Errorf("<%s>: %w", c.Name, err)
		}
	}
	return nil
}

func (p *parser) element(e *svgparser.Element, xf *paths.Xform) error {
	var ferr error
	attr := func(name string) float64 {
		if ferr != nil {
			return 0
		}
		f, err := parseLength(e.Attributes[name])
		if err != nil {
			ferr = fmt.Errorf("attribute %s: %w", name, err)
		}
		return f
	}
	switch e.Name {
	case "g", "svg", "a":
		return p.children(e, xf)
	case "path":
		sps, err := parsePathData(e.Attributes["d"])
		if err != nil {
			return err
		}
		p.add(xf, sps...)
	case "line":
		a := paths.Vec2{attr("x1"), attr("y1")}
		b := paths.Vec2{attr("x2"), attr("y2")}
		if ferr == nil {
			p.add(xf, []curve.Curve{curve.Line(a, b)})
		}
	case "polyline", "polygon":
		fs, err := parseNumberList(e.Attributes["points"])
		if err != nil {
			return err
		}
		if len(fs)%2 != 0 {
			return fmt.Errorf("odd number of coordinates in points")
		}
		var vs []paths.Vec2
		for i := 0; i < len(fs); i += 2 {
			vs = append(vs, paths.Vec2{fs[i], fs[i+1]})
		}
		if e.Name == "polygon" && len(vs) > 2 {
			vs = append(vs, vs[0])
		}
		var sp []curve.Curve
		for i := 1; i < len(vs); i++ {
			sp = append(sp, curve.Line(vs[i-1], vs[i]))
		}
		if len(sp) > 0 {
			p.add(xf, sp)
		}
	case "rect":
		x, y, w, h := attr("x"), attr("y"), attr("width"), attr("height")
		rx, ry := attr("rx"), attr("ry")
		if _, ok := e.Attributes["rx"]; !ok {
			rx = ry
		}
		if _, ok := e.Attributes["ry"]; !ok {
			ry = rx
		}
		if ferr == nil && w > 0 && h > 0 {
			p.add(xf, rect(x, y, w, h, rx, ry))
		}
	case "circle":
		c := paths.Vec2{attr("cx"), attr("cy")}
		r := attr("r")
		if ferr == nil && r > 0 {
			p.add(xf, []curve.Curve{curve.Circle(c, r)})
		}
	case "ellipse":
		c := paths.Vec2{attr("cx"), attr("cy")}
		r := paths.Vec2{attr("rx"), attr("ry")}
		if ferr == nil && r[0] > 0 && r[1] > 0 {
			p.add(xf, []curve.Curve{curve.Arc(c, r, 0, 0, 2*math.Pi)})
		}
	default:
		p.diag.Warnf(diag.UnknownElement, "unknown element <%s> ignored", e.Name)
	}
	return ferr
}

// rect returns the outline of a rectangle, with rounded corners if
// rx and ry are positive.
func rect(x, y, w, h, rx, ry float64) []curve.Curve {
	rx = math.Max(0, math.Min(rx, w/2))
	ry = math.Max(0, math.Min(ry, h/2))
	v := func(x, y float64) paths.Vec2 { return paths.Vec2{x, y} }
	if rx == 0 || ry == 0 {
		a, b, c, d := v(x, y), v(x+w, y), v(x+w, y+h), v(x, y+h)
		return []curve.Curve{curve.Line(a, b), curve.Line(b, c), curve.Line(c, d), curve.Line(d, a)}
	}
	r := v(rx, ry)
	corner := func(cx, cy, start float64) curve.Curve {
		return curve.Arc(v(cx, cy), r, 0, start, math.Pi/2)
	}
	return []curve.Curve{
		curve.Line(v(x+rx, y), v(x+w-rx, y)),
		corner(x+w-rx, y+ry, -math.Pi/2),
		curve.Line(v(x+w, y+ry), v(x+w, y+h-ry)),
		corner(x+w-rx, y+h-ry, 0),
		curve.Line(v(x+w-rx, y+h), v(x+rx, y+h)),
		corner(x+rx, y+h-ry, math.Pi/2),
		curve.Line(v(x, y+h-ry), v(x, y+ry)),
		corner(x+rx, y+ry, math.Pi),
	}
}
