// Package compiler assembles the commands that draw a set of curves:
// a header, the body that draws each curve, and a footer.
package compiler

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulhankin/svgplot/curve"
	"github.com/paulhankin/svgplot/diag"
	"github.com/paulhankin/svgplot/gcode"
	"github.com/paulhankin/svgplot/paths"
)

var (
	ErrBadSpeed  = errors.New("compiler: speeds must be positive")
	ErrBadPasses = errors.New("compiler: passes must be at least 1")
)

// DefaultTolerance is the approximation tolerance used when Options
// doesn't give one.
const DefaultTolerance = 0.01

// Options configures a Compiler.
type Options struct {
	MovementSpeed float64 // pen up
	DrawingSpeed  float64 // pen down

	// DwellTime is how long (ms) to wait after lowering the pen. Zero
	// means no wait.
	DwellTime int
	Unit      gcode.Unit

	// Header and Footer replace the default pen up commands that
	// surround the program. Empty commands are dropped.
	Header []string
	Footer []string

	// Tolerance is how far the lines drawn may stray from the curves.
	// It also sets how many decimals the interface writes.
	Tolerance float64

	// Order, if set, reorders curves given to AppendCurves to reduce
	// pen-up travel.
	Order *paths.SortConfig

	Diag *diag.Log
}

// A Compiler turns curves into a program for one plotter.
type Compiler struct {
	iface  gcode.Interface
	opts   Options
	approx curve.Approximator

	header []string
	start  gcode.State // the interface's state after the header
	chains []paths.Path
}

// New returns a Compiler that sends commands to iface. The header
// (relative coordinates, movement speed, then the custom header or
// pen up) is generated straight away.
func New(iface gcode.Interface, opts *Options) (*Compiler, error) {
	if opts == nil {
		opts = &Options{}
	}
	c := &Compiler{iface: iface, opts: *opts}
	o := &c.opts
	if !(o.MovementSpeed > 0) || !(o.DrawingSpeed > 0) {
		return nil, fmt.Errorf("%w (movement %g, drawing %g)", ErrBadSpeed, o.MovementSpeed, o.DrawingSpeed)
	}
	if _, err := gcode.ParseUnit(string(o.Unit)); err != nil {
		return nil, err
	}
	if o.Tolerance == 0 {
		o.Tolerance = DefaultTolerance
	}
	if !(o.Tolerance > 0) {
		return nil, fmt.Errorf("compiler: %w (got %g)", curve.ErrBadTolerance, o.Tolerance)
	}
	if o.Diag == nil {
		o.Diag = &diag.Log{}
	}
	c.approx = curve.Approximator{Tolerance: o.Tolerance, Diag: o.Diag}
	iface.SetTolerance(o.Tolerance)

	c.header = []string{
		iface.SetRelativeCoordinates(),
		iface.SetMovementSpeed(o.MovementSpeed),
	}
	if o.Header != nil {
		c.header = append(c.header, o.Header...)
	} else {
		c.header = append(c.header, iface.PenUp())
	}
	c.start = iface.State()
	return c, nil
}

// Diag returns the log that warnings are recorded in.
func (c *Compiler) Diag() *diag.Log {
	return c.opts.Diag
}

// BodyLen returns the number of chains in the body.
func (c *Compiler) BodyLen() int {
	return len(c.chains)
}

// AppendChain adds a chain of lines to the body. An empty chain is
// skipped with a warning.
func (c *Compiler) AppendChain(p paths.Path) error {
	if p.Empty() {
		c.opts.Diag.Warnf(diag.EmptyChain, "empty line chain")
		return nil
	}
	c.chains = append(c.chains, p)
	return nil
}

// AppendCurves approximates each curve and adds it to the body,
// reordering them first if the options ask for it.
func (c *Compiler) AppendCurves(cs []curve.Curve) error {
	if c.opts.Order != nil {
		cs = curve.Reorder(cs, c.opts.Order)
	}
	for _, cv := range cs {
		p, err := c.approx.Approximate(cv)
		if err != nil {
			return err
		}
		// The approximator has already warned about empty chains.
		if !p.Empty() {
			c.chains = append(c.chains, p)
		}
	}
	return nil
}

// AppendPaths adds every path in ps to the body.
func (c *Compiler) AppendPaths(ps *paths.Paths) error {
	for _, p := range ps.P {
		if err := c.AppendChain(p); err != nil {
			return err
		}
	}
	return nil
}

// drawChain returns the commands that draw p: travel to its start
// with the pen up, then draw it with the pen down. A pen already known
// to be up isn't raised again.
func (c *Compiler) drawChain(p paths.Path) ([]string, error) {
	iface := c.iface
	start := p.Start()
	var code []string
	if iface.State().Pen != gcode.PenRaised {
		code = append(code, iface.PenUp())
	}
	code = append(code, iface.SetMovementSpeed(c.opts.MovementSpeed))
	mv, err := iface.LinearMove(gcode.XY(start[0], start[1]))
	if err != nil {
		return nil, err
	}
	code = append(code, mv, iface.PenDown())
	if c.opts.DwellTime > 0 {
		code = append(code, iface.Dwell(c.opts.DwellTime))
	}
	code = append(code, iface.SetMovementSpeed(c.opts.DrawingSpeed))
	for _, s := range p.Segments() {
		mv, err := iface.LinearMove(gcode.XY(s.End[0], s.End[1]))
		if err != nil {
			return nil, err
		}
		code = append(code, mv)
	}
	return code, nil
}

// Compile assembles the program with a single pass over the body.
// It panics if the interface fails a move, which the dialects in
// package gcode never do; use CompilePasses with other interfaces.
func (c *Compiler) Compile() string {
	s, err := c.CompilePasses(1)
	if err != nil {
		panic(err)
	}
	return s
}

// CompilePasses assembles the program, drawing the body the given
// number of times. The header, unit and footer appear once. Each pass
// starts from wherever the last one finished, so all of them trace the
// same lines. Compiling again gives the same result.
func (c *Compiler) CompilePasses(passes int) (string, error) {
	if passes < 1 {
		return "", fmt.Errorf("%w (got %d)", ErrBadPasses, passes)
	}
	if len(c.chains) == 0 {
		c.opts.Diag.Warnf(diag.EmptyBody, "compiling with an empty body (no lines or curves)")
	}
	c.iface.SetState(c.start)

	code := append([]string{}, c.header...)
	code = append(code, c.iface.SetUnit(c.opts.Unit))
	for i := 0; i < passes; i++ {
		for _, p := range c.chains {
			cc, err := c.drawChain(p)
			if err != nil {
				return "", err
			}
			code = append(code, cc...)
		}
	}
	if c.opts.Footer != nil {
		code = append(code, c.opts.Footer...)
	} else {
		code = append(code, c.iface.PenUp())
	}

	var b strings.Builder
	for _, cmd := range code {
		if cmd == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(cmd)
	}
	return b.String(), nil
}

// Write writes the compiled program to w, ending with a newline.
func (c *Compiler) Write(w io.Writer, passes int) error {
	s, err := c.CompilePasses(passes)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s+"\n")
	return err
}

// CompileToFile writes the compiled program to the named file. The
// program is assembled in full and written to a temporary file which
// then replaces name, so a failure never leaves a partial file.
func (c *Compiler) CompileToFile(name string, passes int) error {
	s, err := c.CompilePasses(passes)
	if err != nil {
		return err
	}
	return WriteFileAtomic(name, []byte(s+"\n"))
}

// WriteFileAtomic writes data to a temporary file next to name and
// renames it into place.
func WriteFileAtomic(name string, data []byte) (err error) {
	dir, base := filepath.Split(name)
	if dir == "" {
		dir = "."
	}
	f, err := ioutil.TempFile(dir, "."+base+".tmp*")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()
	if err := f.Chmod(0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(f.Name(), name); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
