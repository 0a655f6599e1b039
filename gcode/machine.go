package gcode

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulhankin/svgplot/diag"
	"github.com/paulhankin/svgplot/paths"
)

var axisNames = [3]string{"X", "Y", "Z"}

// machine is the state and the commands common to every dialect.
type machine struct {
	st   State
	prec int
	diag *diag.Log
}

func newMachine(cfg *Config) machine {
	m := machine{diag: cfg.Diag}
	m.SetTolerance(cfg.Tolerance)
	return m
}

// SetTolerance sets the output precision. Zero means DefaultTolerance.
func (m *machine) SetTolerance(tol float64) {
	if tol == 0 {
		tol = DefaultTolerance
	}
	m.prec = Precision(tol)
}

func (m *machine) round(v float64) float64 {
	s := math.Pow(10, float64(m.prec))
	return math.Round(v*s) / s
}

func (m *machine) SetMovementSpeed(speed float64) string {
	m.st.Speed = speed
	m.st.HasSpeed = true
	return ""
}

func (m *machine) LinearMove(t Target) (string, error) {
	if !m.st.HasSpeed {
		return "", ErrUndefinedSpeed
	}
	if t.Axes&(AxisXY|AxisZ) == 0 {
		m.diag.Warnf(diag.EmptyMove, "linear move without any axis")
		return "", nil
	}
	var b strings.Builder
	b.WriteString("G1")
	if !m.st.HasSent || m.st.Sent != m.st.Speed {
		m.st.Sent = m.st.Speed
		m.st.HasSent = true
		fmt.Fprintf(&b, " F%s", formatSpeed(m.st.Speed))
	}
	for i, name := range axisNames {
		if t.Axes&(1<<uint(i)) == 0 {
			continue
		}
		fmt.Fprintf(&b, " %s%s", name, m.moveAxis(i, t.coord(i)))
	}
	if t.Axes&AxisZ != 0 {
		m.st.Pen = PenUnknown
	}
	b.WriteString(";")
	return b.String(), nil
}

// moveAxis records a move of axis i to v, and returns the number to
// send for it in the current frame.
func (m *machine) moveAxis(i int, v float64) string {
	r := m.round(v)
	out := r
	if m.st.Relative {
		out = m.round(r - m.st.Out[i])
	}
	m.st.Pos[i] = v
	m.st.Known |= 1 << uint(i)
	m.st.Out[i] = r
	return formatNumber(out, m.prec)
}

// penZ moves the pen to height z with a rapid move. In the relative
// frame a pen already at z gets a zero move.
func (m *machine) penZ(z float64, p Pen) string {
	m.st.Pen = p
	return fmt.Sprintf("G0 Z%s;", m.moveAxis(2, z))
}

func (m *machine) SetAbsoluteCoordinates() string {
	m.st.Relative = false
	return "G90;"
}

func (m *machine) SetRelativeCoordinates() string {
	m.st.Relative = true
	return "G91;"
}

func (m *machine) SetUnit(u Unit) string {
	return unitCommands[u]
}

func (m *machine) zero() {
	m.st.Pos = [3]float64{}
	m.st.Out = [3]float64{}
	m.st.Known = AxisXY | AxisZ
}

// HomeAxes sends the machine to its origin.
func (m *machine) HomeAxes() string {
	m.zero()
	m.st.Pen = PenUnknown
	return "G28;"
}

func (m *machine) Dwell(ms int) string {
	return fmt.Sprintf("G4 P%d;", ms)
}

// SetOriginAtPosition makes the current position the origin.
func (m *machine) SetOriginAtPosition() string {
	m.zero()
	return "G92 X0 Y0 Z0;"
}

func (m *machine) Position() (paths.Vec2, bool) {
	return paths.Vec2{m.st.Pos[0], m.st.Pos[1]}, m.st.Known&AxisXY == AxisXY
}

func (m *machine) State() State     { return m.st }
func (m *machine) SetState(s State) { m.st = s }

// Gcode is a plotter that lifts its pen on the Z axis.
type Gcode struct {
	machine
	up, down float64
}

var _ Interface = (*Gcode)(nil)

// NewGcode returns a Z-lift dialect. Unless cfg says otherwise the pen
// is lifted to Z=5 and lowered to Z=0.
func NewGcode(cfg *Config) *Gcode {
	if cfg == nil {
		cfg = &Config{}
	}
	g := &Gcode{machine: newMachine(cfg)}
	g.up, g.down = cfg.pen(5, 0)
	return g
}

func (g *Gcode) PenUp() string   { return g.penZ(g.up, PenRaised) }
func (g *Gcode) PenDown() string { return g.penZ(g.down, PenLowered) }

// Servo is a plotter whose pen is raised and lowered by a hobby servo
// on channel 0.
type Servo struct {
	machine
	up, down float64
}

var _ Interface = (*Servo)(nil)

// NewServo returns a servo-lift dialect. Unless cfg says otherwise the
// servo turns to 90 degrees to lift the pen and 30 to lower it.
func NewServo(cfg *Config) *Servo {
	if cfg == nil {
		cfg = &Config{}
	}
	s := &Servo{machine: newMachine(cfg)}
	s.up, s.down = cfg.pen(90, 30)
	return s
}

func (s *Servo) pen(angle float64, p Pen) string {
	s.st.Pen = p
	return fmt.Sprintf("M280 P0 S%s;", formatSpeed(angle))
}

func (s *Servo) PenUp() string   { return s.pen(s.up, PenRaised) }
func (s *Servo) PenDown() string { return s.pen(s.down, PenLowered) }
