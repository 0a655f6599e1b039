// Package gcode turns motion requests into text commands for a pen
// plotter. Each dialect keeps track of where the machine is and which
// feed rate it last sent, so that it never repeats itself.
package gcode

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/paulhankin/svgplot/diag"
	"github.com/paulhankin/svgplot/paths"
)

var (
	// ErrUndefinedSpeed is returned by LinearMove when no speed has
	// been set.
	ErrUndefinedSpeed = errors.New("gcode: undefined movement speed, call SetMovementSpeed before moving")
	ErrUnknownUnit    = errors.New("gcode: unknown unit")
	ErrUnknownDialect = errors.New("gcode: unknown dialect")
)

// Interface is the set of commands a plotter understands. Every method
// returns one command, or "" if there's nothing to send.
type Interface interface {
	// SetMovementSpeed sets the speed of the following moves. It sends
	// nothing itself: the speed goes out with the next move that needs it.
	SetMovementSpeed(speed float64) string
	// SetTolerance sets the precision of the numbers in the following
	// commands from the geometric tolerance (see Precision). It sends
	// nothing.
	SetTolerance(tol float64)
	LinearMove(t Target) (string, error)
	PenUp() string
	PenDown() string
	SetAbsoluteCoordinates() string
	SetRelativeCoordinates() string
	SetUnit(u Unit) string
	HomeAxes() string
	Dwell(ms int) string
	SetOriginAtPosition() string

	// Position returns the last known x, y position of the machine.
	Position() (paths.Vec2, bool)

	State() State
	SetState(st State)
}

// Axis is a set of machine axes.
type Axis uint8

const (
	AxisX Axis = 1 << iota
	AxisY
	AxisZ

	AxisXY = AxisX | AxisY
)

// A Target is the destination of a move. Only the coordinates named
// in Axes are sent; the others stay where they are.
type Target struct {
	X, Y, Z float64
	Axes    Axis
}

func XY(x, y float64) Target     { return Target{X: x, Y: y, Axes: AxisXY} }
func X(x float64) Target         { return Target{X: x, Axes: AxisX} }
func Y(y float64) Target         { return Target{Y: y, Axes: AxisY} }
func Z(z float64) Target         { return Target{Z: z, Axes: AxisZ} }
func XYZ(x, y, z float64) Target { return Target{X: x, Y: y, Z: z, Axes: AxisXY | AxisZ} }

func (t Target) coord(i int) float64 {
	return [3]float64{t.X, t.Y, t.Z}[i]
}

// Unit is the length unit the machine works in.
type Unit string

const (
	NoUnit      Unit = ""
	Millimeters Unit = "mm"
	Inches      Unit = "in"
)

var unitCommands = map[Unit]string{
	NoUnit:      "",
	Millimeters: "G21;",
	Inches:      "G20;",
}

// ParseUnit returns the unit with the given name. The empty string
// means no unit.
func ParseUnit(s string) (Unit, error) {
	u := Unit(strings.TrimSpace(s))
	if _, ok := unitCommands[u]; !ok {
		return NoUnit, fmt.Errorf("%w %q (want mm or in)", ErrUnknownUnit, s)
	}
	return u, nil
}

// Pen is the state of the pen, as far as the dialect knows.
type Pen int

const (
	PenUnknown Pen = iota
	PenRaised
	PenLowered
)

// State is everything a dialect remembers between commands.
type State struct {
	// Pos is the absolute position the machine was last sent to, for
	// the axes in Known.
	Pos   [3]float64
	Known Axis

	// Out is Pos rounded to the output precision. Relative moves are
	// the differences between rounded positions, so rounding errors
	// don't add up. Axes never sent are at 0.
	Out [3]float64

	Speed    float64 // requested by SetMovementSpeed
	HasSpeed bool
	Sent     float64 // last feed rate written out
	HasSent  bool

	Relative bool
	Pen      Pen
}

// Config holds the settings shared by all dialects.
type Config struct {
	// PenUp and PenDown are the Z heights of the pen for the Gcode
	// dialect, and the servo angles (degrees) for the Servo dialect.
	// nil means the dialect's default.
	PenUp, PenDown *float64

	// Tolerance sets how many decimals coordinates are written with.
	Tolerance float64

	// Diag receives warnings about moves that go nowhere.
	Diag *diag.Log
}

const (
	DefaultTolerance = 0.01
	maxPrecision     = 10
)

// Float returns a pointer to v, for filling in Config.
func Float(v float64) *float64 {
	return &v
}

// pen returns the configured pen positions, or up and down if unset.
func (cfg *Config) pen(up, down float64) (float64, float64) {
	if cfg.PenUp != nil {
		up = *cfg.PenUp
	}
	if cfg.PenDown != nil {
		down = *cfg.PenDown
	}
	return up, down
}

// Precision is the number of decimal places that resolve distances of
// tol, clamped to [0, 10].
func Precision(tol float64) int {
	if !(tol > 0) {
		return maxPrecision
	}
	p := math.Ceil(-math.Log10(tol) - 1e-9)
	if p < 0 {
		return 0
	}
	if p > maxPrecision {
		return maxPrecision
	}
	return int(p)
}

var dialects = map[string]func(*Config) Interface{
	"gcode": func(cfg *Config) Interface { return NewGcode(cfg) },
	"servo": func(cfg *Config) Interface { return NewServo(cfg) },
}

// Dialects lists the names New accepts.
func Dialects() []string {
	var r []string
	for k := range dialects {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

// New returns the named dialect. A nil cfg uses that dialect's
// defaults.
func New(name string, cfg *Config) (Interface, error) {
	f, ok := dialects[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q (want one of %s)", ErrUnknownDialect, name, strings.Join(Dialects(), ", "))
	}
	return f(cfg), nil
}

// formatNumber writes v with prec decimals, never as "-0".
func formatNumber(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}

func formatSpeed(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
