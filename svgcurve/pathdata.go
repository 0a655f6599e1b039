package svgcurve

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/paulhankin/svgplot/curve"
	"github.com/paulhankin/svgplot/paths"
)

// pathScanner splits svg path data into commands and numbers.
type pathScanner struct {
	s   string
	pos int
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (p *pathScanner) skip() {
	for p.pos < len(p.s) && (isSpace(p.s[p.pos]) || p.s[p.pos] == ',') {
		p.pos++
	}
}

func (p *pathScanner) done() bool {
	p.skip()
	return p.pos >= len(p.s)
}

// command returns the next command letter, if there is one.
func (p *pathScanner) command() (byte, bool) {
	p.skip()
	if p.pos >= len(p.s) {
		return 0, false
	}
	c := p.s[p.pos]
	if strings.IndexByte("MmLlHhVvCcSsQqTtAaZz", c) < 0 {
		return 0, false
	}
	p.pos++
	return c, true
}

func (p *pathScanner) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("path data at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

// number scans a number. Numbers needn't be separated when it's
// unambiguous, as in "1-2" or "0.5.5".
func (p *pathScanner) number() (float64, error) {
	p.skip()
	s, start := p.s, p.pos
	i := start
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for ; i < len(s) && isDigit(s[i]); i++ {
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for ; i < len(s) && isDigit(s[i]); i++ {
			digits++
		}
	}
	if digits == 0 {
		return 0, p.errorf("expected a number")
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			for i = j; i < len(s) && isDigit(s[i]); i++ {
			}
		}
	}
	f, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0, p.errorf("%v", err)
	}
	p.pos = i
	return f, nil
}

// flag scans an arc flag, which is a single 0 or 1 that may be run
// together with what follows.
func (p *pathScanner) flag() (bool, error) {
	p.skip()
	if p.pos < len(p.s) {
		switch p.s[p.pos] {
		case '0':
			p.pos++
			return false, nil
		case '1':
			p.pos++
			return true, nil
		}
	}
	return false, p.errorf("expected an arc flag")
}

func (p *pathScanner) numbers(fs []float64) error {
	for i := range fs {
		f, err := p.number()
		if err != nil {
			return err
		}
		fs[i] = f
	}
	return nil
}

// pathBuilder collects the subpaths of a path.
type pathBuilder struct {
	subpaths [][]curve.Curve
	cur      []curve.Curve
	pos      paths.Vec2
	start    paths.Vec2
	started  bool
	ctrl     paths.Vec2 // last control point, for S and T
	lastCmd  byte
}

func (b *pathBuilder) flush() {
	if len(b.cur) > 0 {
		b.subpaths = append(b.subpaths, b.cur)
	}
	b.cur = nil
}

func (b *pathBuilder) moveTo(p paths.Vec2) {
	b.flush()
	b.pos, b.start = p, p
	b.started = true
}

func (b *pathBuilder) add(c curve.Segment, end paths.Vec2) {
	b.cur = append(b.cur, c)
	b.pos = end
}

// reflected returns the previous control point reflected about the
// current position, if the previous command was one of cmds.
func (b *pathBuilder) reflected(cmds string) paths.Vec2 {
	if b.lastCmd != 0 && strings.IndexByte(cmds, b.lastCmd) >= 0 {
		return b.pos.Scale(2).Sub(b.ctrl)
	}
	return b.pos
}

var argCounts = map[byte]int{
	'M': 2, 'L': 2, 'H': 1, 'V': 1, 'C': 6, 'S': 4, 'Q': 4, 'T': 2, 'A': 7, 'Z': 0,
}

// parsePathData returns the subpaths of svg path data. Each subpath is
// a run of curves, each starting where the last finished.
func parsePathData(d string) ([][]curve.Curve, error) {
	p := &pathScanner{s: d}
	b := &pathBuilder{}
	var cmd byte
	for !p.done() {
		if c, ok := p.command(); ok {
			cmd = c
		} else if cmd == 0 {
			return nil, p.errorf("expected a command")
		} else if cmd == 'Z' || cmd == 'z' {
			return nil, p.errorf("unexpected number after closepath")
		}
		rel := 'a' <= cmd && cmd <= 'z'
		ucmd := strings.ToUpper(string(cmd))[0]
		if ucmd != 'M' && !b.started {
			return nil, p.errorf("path data must start with a moveto")
		}
		var args [7]float64
		if ucmd == 'A' {
			if err := p.numbers(args[:3]); err != nil {
				return nil, err
			}
			large, err := p.flag()
			if err != nil {
				return nil, err
			}
			sweep, err := p.flag()
			if err != nil {
				return nil, err
			}
			if err := p.numbers(args[5:7]); err != nil {
				return nil, err
			}
			if large {
				args[3] = 1
			}
			if sweep {
				args[4] = 1
			}
		} else if err := p.numbers(args[:argCounts[ucmd]]); err != nil {
			return nil, err
		}

		// pt returns the point made of args i and i+1.
		pt := func(i int) paths.Vec2 {
			v := paths.Vec2{args[i], args[i+1]}
			if rel {
				v = v.Add(b.pos)
			}
			return v
		}
		switch ucmd {
		case 'M':
			b.moveTo(pt(0))
			// Further coordinate pairs are implicit linetos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L':
			e := pt(0)
			b.add(curve.Line(b.pos, e), e)
		case 'H':
			e := paths.Vec2{args[0], b.pos[1]}
			if rel {
				e[0] += b.pos[0]
			}
			b.add(curve.Line(b.pos, e), e)
		case 'V':
			e := paths.Vec2{b.pos[0], args[0]}
			if rel {
				e[1] += b.pos[1]
			}
			b.add(curve.Line(b.pos, e), e)
		case 'C':
			c1, c2, e := pt(0), pt(2), pt(4)
			b.add(curve.Cubic(b.pos, c1, c2, e), e)
			b.ctrl = c2
		case 'S':
			c1 := b.reflected("CcSs")
			c2, e := pt(0), pt(2)
			b.add(curve.Cubic(b.pos, c1, c2, e), e)
			b.ctrl = c2
		case 'Q':
			c, e := pt(0), pt(2)
			b.add(curve.Quad(b.pos, c, e), e)
			b.ctrl = c
		case 'T':
			c := b.reflected("QqTt")
			e := pt(0)
			b.add(curve.Quad(b.pos, c, e), e)
			b.ctrl = c
		case 'A':
			e := pt(5)
			a := curve.EndpointArc(b.pos, paths.Vec2{args[0], args[1]}, degrees(args[2]), args[3] != 0, args[4] != 0, e)
			b.add(a, e)
		case 'Z':
			if b.pos != b.start {
				b.add(curve.Line(b.pos, b.start), b.start)
			}
			b.flush()
			b.pos = b.start
		}
		b.lastCmd = ucmd
	}
	b.flush()
	return b.subpaths, nil
}
