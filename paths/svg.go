package paths

import (
	"bufio"
	"fmt"
	"io"
)

// SVGConfig controls how paths are drawn by WriteSVG.
type SVGConfig struct {
	StrokeWidth float64 // default 0.1
	Travel      bool    // draw pen-up moves between paths as dashed lines
}

var (
	svgh = `<svg height="%g" width="%g" viewBox="%g %g %g %g" version="1.1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`
)

// SVG writes an SVG file that contains black strokes along the paths.
func (ps *Paths) SVG(w io.Writer) error {
	return ps.WriteSVG(w, nil)
}

// WriteSVG writes an SVG preview of the paths, in drawing order.
func (ps *Paths) WriteSVG(w io.Writer, cfg *SVGConfig) error {
	if cfg == nil {
		cfg = &SVGConfig{}
	}
	sw := cfg.StrokeWidth
	if sw <= 0 {
		sw = 0.1
	}
	var werr error
	bi := bufio.NewWriter(w)
	wr := func(f string, args ...interface{}) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bi, f, args...)
	}
	b := ps.Bounds
	wr(svgh, b.Max[1], b.Max[0], b.Min[0], b.Min[1], b.Width(), b.Height())
	wr("\n")
	wr("<g fill=\"none\" stroke=\"black\" stroke-width=\"%g\">\n", sw)
	for _, p := range ps.P {
		if len(p.V) == 0 {
			continue
		}
		wr(`<path d="`)
		for i, v := range p.V {
			if i == 0 {
				wr("M %.2f, %.2f", v[0], v[1])
			} else {
				wr(" %.2f, %.2f", v[0], v[1])
			}
		}
		wr("\"/>\n")
	}
	wr("</g>\n")
	if cfg.Travel && len(ps.P) > 1 {
		wr("<g fill=\"none\" stroke=\"#c900ce\" stroke-width=\"%g\" stroke-dasharray=\"%g,%g\">\n", sw/2, sw*5, sw*5)
		for i := 1; i < len(ps.P); i++ {
			if ps.P[i-1].Empty() || ps.P[i].Empty() {
				continue
			}
			a, z := ps.P[i-1].End(), ps.P[i].Start()
			wr("<path d=\"M %.2f, %.2f %.2f, %.2f\"/>\n", a[0], a[1], z[0], z[1])
		}
		wr("</g>\n")
	}
	wr("</svg>\n")
	if werr == nil {
		werr = bi.Flush()
	}
	return werr
}
