package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/paulhankin/svgplot/cmd/svgtogcode/svgtogcode"
	"github.com/paulhankin/svgplot/gcode"
	"github.com/paulhankin/svgplot/paths"
)

type flagSizeValue struct {
	X, Y float64
}

func (fs *flagSizeValue) String() string {
	return fmt.Sprintf("%.2f,%.2f", fs.X, fs.Y)
}

func parseSizePart(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (fs *flagSizeValue) Set(s string) error {
	var err error
	parts := strings.Split(s, ",")
	if len(parts) == 1 {
		fs.X, err = parseSizePart(parts[0])
		return err
	}
	if len(parts) > 2 {
		return fmt.Errorf("can't parse %q as size", s)
	}
	if fs.X, err = parseSizePart(parts[0]); err != nil {
		return err
	}
	if fs.Y, err = parseSizePart(parts[1]); err != nil {
		return err
	}
	return nil
}

func (fs *flagSizeValue) vec2() paths.Vec2 {
	return paths.Vec2{fs.X, fs.Y}
}

// flagOptFloat is a float flag that knows whether it was given.
type flagOptFloat struct {
	v   float64
	set bool
}

func (f *flagOptFloat) String() string {
	if !f.set {
		return "dialect default"
	}
	return strconv.FormatFloat(f.v, 'g', -1, 64)
}

func (f *flagOptFloat) Set(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return err
	}
	f.v, f.set = v, true
	return nil
}

func (f *flagOptFloat) ptr() *float64 {
	if !f.set {
		return nil
	}
	return &f.v
}

type flagUnitValue struct {
	u gcode.Unit
}

func (fu *flagUnitValue) String() string { return string(fu.u) }

func (fu *flagUnitValue) Set(s string) error {
	u, err := gcode.ParseUnit(s)
	fu.u = u
	return err
}

type flagStrategyValue struct {
	s paths.Strategy
}

func (fs *flagStrategyValue) String() string { return fs.s.String() }

func (fs *flagStrategyValue) Set(s string) error {
	st, err := paths.ParseStrategy(s)
	fs.s = st
	return err
}

// flags
var (
	flagIn  string
	flagOut string

	flagDelta     flagSizeValue
	flagSize      flagSizeValue
	flagPaperSize flagSizeValue
	flagCenter    bool

	flagDialect    string
	flagPenUp      flagOptFloat
	flagPenDown    flagOptFloat
	flagTravelRate float64
	flagFeedRate   float64
	flagDwell      int
	flagUnit       = flagUnitValue{gcode.Millimeters}
	flagTolerance  float64
	flagPasses     int

	flagOrder      flagStrategyValue
	flagExactLimit int
	flagReverse    bool
	flagSplit      bool
	flagSimplify   float64

	flagVerbose bool
)

func init() {
	flag.StringVar(&flagIn, "in", "", "svg input file")
	flag.StringVar(&flagOut, "out", "out.gcode", "gcode output file (or .svg for a preview)")
	flag.Var(&flagDelta, "offset", "displacement of 0,0 from pen origin")
	flag.Var(&flagSize, "size", "target size of image (mm)")
	flag.Var(&flagPaperSize, "paper", "target size of paper (mm)")
	flag.BoolVar(&flagCenter, "center", false, "if set, center image on paper")

	flag.StringVar(&flagDialect, "dialect", "gcode", "plotter type: "+strings.Join(gcode.Dialects(), " or "))
	flag.Var(&flagPenUp, "penup", "pen up height (gcode) or servo angle (servo)")
	flag.Var(&flagPenDown, "pendown", "pen down height (gcode) or servo angle (servo)")
	flag.Float64Var(&flagTravelRate, "travel", 3000, "feed rate when moving with the pen up (mm/min)")
	flag.Float64Var(&flagFeedRate, "feed", 800, "feed rate when drawing (mm/min)")
	flag.IntVar(&flagDwell, "dwell", 0, "pause after lowering the pen (ms)")
	flag.Var(&flagUnit, "unit", "units of the output: mm, in, or empty for none")
	flag.Float64Var(&flagTolerance, "tolerance", 0.01, "how far lines may stray from curves (also sets output precision)")
	flag.IntVar(&flagPasses, "passes", 1, "number of times to draw everything")

	flag.Var(&flagOrder, "order", "path ordering: auto, greedy, exact, spatial or keep")
	flag.IntVar(&flagExactLimit, "exact-limit", paths.DefaultExactLimit, "most paths to order exactly")
	flag.BoolVar(&flagReverse, "reverse", true, "allow paths to be drawn backwards")
	flag.BoolVar(&flagSplit, "split", false, "allow paths to be split into their segments")
	flag.Float64Var(&flagSimplify, "simplify", 0, "if positive, remove points that move a path less than this")

	flag.BoolVar(&flagVerbose, "v", false, "log warnings")
}

func main() {
	fail := func(s string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, s+"\n", args...)
		os.Exit(2)
	}

	flag.Parse()
	if flagIn == "" {
		fail("must specify -in <svg file>")
	}

	cfg := &svgtogcode.Config{
		In:         flagIn,
		Out:        flagOut,
		Delta:      flagDelta.vec2(),
		Size:       flagSize.vec2(),
		PaperSize:  flagPaperSize.vec2(),
		Center:     flagCenter,
		Dialect:    flagDialect,
		PenUp:      flagPenUp.ptr(),
		PenDown:    flagPenDown.ptr(),
		TravelRate: flagTravelRate,
		FeedRate:   flagFeedRate,
		Dwell:      flagDwell,
		Unit:       flagUnit.u,
		Tolerance:  flagTolerance,
		Passes:     flagPasses,
		Order:      flagOrder.s,
		ExactLimit: flagExactLimit,
		Split:      flagSplit,
		Reverse:    flagReverse,
		Simplify:   flagSimplify,
	}
	if flagVerbose {
		log.SetFlags(0)
		log.SetPrefix("svgtogcode: ")
		cfg.Logf = log.Printf
	}
	if err := svgtogcode.Convert(cfg); err != nil {
		fail("%v", err)
	}
}
