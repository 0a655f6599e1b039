package svgcurve

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/paulhankin/svgplot/paths"
)

type xformScannerState int

const (
	xfsName xformScannerState = 1 + iota
	xfsBra
	xfsMaybeComma
	xfsArg
)

func parseFloats(a []string) ([]float64, error) {
	var r []float64
	for _, x := range a {
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, f)
	}
	return r, nil
}

func degrees(a float64) float64 {
	return a * math.Pi / 180
}

func parseSingleXform(name string, args []string) (*paths.Xform, error) {
	fa, err := parseFloats(args)
	if err != nil {
		return nil, err
	}
	nargs := func(ns ...int) error {
		for _, n := range ns {
			if len(fa) == n {
				return nil
			}
		}
		return fmt.Errorf("%s can't have %d parameters: got %s", name, len(fa), args)
	}
	switch name {
	case "translate":
		if err := nargs(1, 2); err != nil {
			return nil, err
		}
		if len(fa) == 1 {
			fa = append(fa, 0)
		}
		return paths.XformTranslate(fa[0], fa[1]), nil
	case "scale":
		if err := nargs(1, 2); err != nil {
			return nil, err
		}
		if len(fa) == 1 {
			fa = append(fa, fa[0])
		}
		return paths.XformScale(fa[0], fa[1]), nil
	case "rotate":
		if err := nargs(1, 3); err != nil {
			return nil, err
		}
		r := paths.XformRotate(degrees(fa[0]))
		if len(fa) == 3 {
			r = paths.XformTranslate(fa[1], fa[2]).Compose(r).Compose(paths.XformTranslate(-fa[1], -fa[2]))
		}
		return r, nil
	case "skewX":
		if err := nargs(1); err != nil {
			return nil, err
		}
		return paths.XformSkew(degrees(fa[0]), 0), nil
	case "skewY":
		if err := nargs(1); err != nil {
			return nil, err
		}
		return paths.XformSkew(0, degrees(fa[0])), nil
	case "matrix":
		if err := nargs(6); err != nil {
			return nil, err
		}
		return paths.XformMatrix(fa[0], fa[1], fa[2], fa[3], fa[4], fa[5]), nil
	default:
		return nil, fmt.Errorf("unknown transform function %q", name)
	}
}

// parseXform parses the value of a transform attribute.
func parseXform(x string) (*paths.Xform, error) {
	var s scanner.Scanner
	xf := paths.XformIdentity
	s.Init(strings.NewReader(x))
	s.Error = func(*scanner.Scanner, string) {}
	state := xfsName
	fname := ""
	sign := ""
	var args []string
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		switch state {
		case xfsName:
			if tok != scanner.Ident {
				return nil, fmt.Errorf("failed to parse transform: expected transform name, but got %q", s.TokenText())
			}
			fname = s.TokenText()
			state = xfsBra
		case xfsBra:
			if tok != '(' {
				return nil, fmt.Errorf("failed to parse transform: expected (, but got %q", s.TokenText())
			}
			state = xfsArg
		case xfsMaybeComma:
			if tok == ',' {
				state = xfsArg
				continue
			}
			fallthrough
		case xfsArg:
			if tok == ')' && sign == "" {
				newxform, err := parseSingleXform(fname, args)
				if err != nil {
					return nil, err
				}
				xf = xf.Compose(newxform)
				state = xfsName
				args = nil
			} else if (tok == '-' || tok == '+') && sign == "" {
				sign = s.TokenText()
			} else if tok == scanner.Float || tok == scanner.Int {
				args = append(args, sign+s.TokenText())
				sign = ""
				state = xfsMaybeComma
			} else {
				return nil, fmt.Errorf("unexpected token %q parsing transform %q", s.TokenText(), x)
			}
		}
	}
	if state != xfsName {
		return nil, fmt.Errorf("failed to parse transform: %q", x)
	}
	return xf, nil
}
