// Package svgtogcode provides the functionality for the
// svgtogcode binary as a library.
package svgtogcode

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/paulhankin/svgplot/compiler"
	"github.com/paulhankin/svgplot/curve"
	"github.com/paulhankin/svgplot/diag"
	"github.com/paulhankin/svgplot/gcode"
	"github.com/paulhankin/svgplot/paths"
	"github.com/paulhankin/svgplot/svgcurve"
)

type Config struct {
	In  string
	Out string

	Delta     paths.Vec2
	Size      paths.Vec2
	PaperSize paths.Vec2
	Center    bool

	Dialect string
	// PenUp and PenDown override the dialect's pen heights (or angles).
	PenUp, PenDown *float64
	TravelRate     float64
	FeedRate       float64
	Dwell          int
	Unit           gcode.Unit
	Tolerance      float64
	Passes         int

	Order      paths.Strategy
	ExactLimit int
	Split      bool
	Reverse    bool

	Simplify float64

	// Logf, if set, is given each warning as it happens.
	Logf func(format string, args ...interface{})
}

func adjustSize(sz, ps, delta paths.Vec2, center bool, b paths.Bounds) (paths.Bounds, error) {
	ow := b.Width()
	oh := b.Height()
	if ow <= 0 || oh <= 0 {
		return paths.Bounds{}, fmt.Errorf("image has no size (%g,%g)", ow, oh)
	}
	if sz[0] == 0 && sz[1] == 0 {
		sz[0] = ow
		sz[1] = oh
	} else if sz[1] == 0 {
		sz[1] = sz[0] * oh / ow
	} else if sz[0] == 0 {
		sz[0] = sz[1] * ow / oh
	}

	if !(math.Abs(sz[0]/sz[1]-ow/oh) < 1e-3) {
		return paths.Bounds{}, fmt.Errorf("target image size %g,%g not compatible with image size %g,%g", sz[0], sz[1], ow, oh)
	}

	if ps[0] != 0 || ps[1] != 0 {
		if ps[0] == 0 || ps[1] == 0 {
			return paths.Bounds{}, fmt.Errorf("paper size %g,%g doesn't make sense", ps[0], ps[1])
		}

		if sz[0] > ps[0] || sz[1] > ps[1] {
			return paths.Bounds{}, fmt.Errorf("paper size %g,%g is smaller than image %g,%g", ps[0], ps[1], sz[0], sz[1])
		}
	}

	if center {
		if ps[0] == 0 {
			return paths.Bounds{}, fmt.Errorf("must set -paper to use -center")
		}
		delta[0] += (ps[0] - sz[0]) / 2
		delta[1] += (ps[1] - sz[1]) / 2
	}

	return paths.Bounds{
		Min: paths.Vec2{delta[0], delta[1]},
		Max: paths.Vec2{sz[0] + delta[0], sz[1] + delta[1]},
	}, nil
}

func (cfg *Config) tolerance() float64 {
	if cfg.Tolerance > 0 {
		return cfg.Tolerance
	}
	return compiler.DefaultTolerance
}

func (cfg *Config) sortConfig(split bool) *paths.SortConfig {
	return &paths.SortConfig{
		Strategy:   cfg.Order,
		ExactLimit: cfg.ExactLimit,
		Split:      split,
		Reverse:    cfg.Reverse,
		Origin:     &paths.Vec2{},
	}
}

// Flatten reads the svg file and returns its curves as paths in the
// target coordinates, clipped, simplified and ordered for drawing.
func Flatten(cfg *Config, log *diag.Log) (*paths.Paths, error) {
	if cfg.In == "" {
		return nil, fmt.Errorf("input file must be specified")
	}

	doc, err := func() (*svgcurve.Document, error) {
		f, err := os.Open(cfg.In)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return svgcurve.FromSVGOptions(f, &svgcurve.Options{Diag: log})
	}()
	if err != nil {
		return nil, err
	}

	bounds, err := adjustSize(cfg.Size, cfg.PaperSize, cfg.Delta, cfg.Center, doc.Bounds)
	if err != nil {
		return nil, err
	}

	curves := curve.TransformAll(doc.Curves, paths.XformBounds(doc.Bounds, bounds))
	curves = curve.Reorder(curves, cfg.sortConfig(false))

	approx := curve.Approximator{Tolerance: cfg.tolerance(), Diag: log}
	ps := &paths.Paths{Bounds: bounds}
	for _, c := range curves {
		p, err := approx.Approximate(c)
		if err != nil {
			return nil, err
		}
		ps.Append(p)
	}

	clip := bounds
	if cfg.PaperSize[0] != 0 {
		clip = paths.Bounds{Max: cfg.PaperSize}
	}
	if n := ps.Clip(clip); n > 0 {
		log.Warnf(diag.Clipped, "%d paths cut at the edge of %v", n, clip)
	}
	if cfg.Simplify > 0 {
		ps.Simplify(cfg.Simplify)
	}
	if cfg.Split {
		ps.Sort(cfg.sortConfig(true))
	}
	return ps, nil
}

// Convert reads cfg.In and writes cfg.Out. If the output file has an
// .svg extension, it's a preview of what would be drawn (with the
// pen-up moves dashed); otherwise it's gcode.
func Convert(cfg *Config) error {
	log := &diag.Log{Logf: cfg.Logf}
	ps, err := Flatten(cfg, log)
	if err != nil {
		return err
	}

	if filepath.Ext(cfg.Out) == ".svg" {
		var buf bytes.Buffer
		if err := ps.WriteSVG(&buf, &paths.SVGConfig{Travel: true}); err != nil {
			return fmt.Errorf("failed to write svg file: %w", err)
		}
		return compiler.WriteFileAtomic(cfg.Out, buf.Bytes())
	}

	gcfg := &gcode.Config{
		PenUp:   cfg.PenUp,
		PenDown: cfg.PenDown,
		Diag:    log,
	}
	dialect := cfg.Dialect
	if dialect == "" {
		dialect = "gcode"
	}
	iface, err := gcode.New(dialect, gcfg)
	if err != nil {
		return err
	}

	c, err := compiler.New(iface, &compiler.Options{
		MovementSpeed: cfg.TravelRate,
		DrawingSpeed:  cfg.FeedRate,
		DwellTime:     cfg.Dwell,
		Unit:          cfg.Unit,
		Tolerance:     cfg.tolerance(),
		Diag:          log,
	})
	if err != nil {
		return err
	}
	if err := c.AppendPaths(ps); err != nil {
		return err
	}
	passes := cfg.Passes
	if passes == 0 {
		passes = 1
	}
	if err := c.CompileToFile(cfg.Out, passes); err != nil {
		return fmt.Errorf("failed to write gcode: %w", err)
	}
	return nil
}
