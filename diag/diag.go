// Package diag collects non-fatal problems found while converting
// drawings, so callers can inspect or log them.
package diag

import "fmt"

// Kind classifies a warning.
type Kind int

const (
	// EmptyChain means a curve flattened to nothing (it has no length).
	EmptyChain Kind = iota + 1
	// EmptyBody means a program was compiled with nothing to draw.
	EmptyBody
	// EmptyMove means a move named no axis.
	EmptyMove
	// UnknownElement means part of an input document was ignored.
	UnknownElement
	// Clipped means drawing was cut off at the paper edge.
	Clipped
)

var kindNames = map[Kind]string{
	EmptyChain:     "empty chain",
	EmptyBody:      "empty body",
	EmptyMove:      "empty move",
	UnknownElement: "unknown element",
	Clipped:        "clipped",
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// A Warning is a single non-fatal problem.
type Warning struct {
	Kind    Kind
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Kind, w.Message)
}

// Log accumulates warnings. A nil *Log discards them.
type Log struct {
	Warnings []Warning

	// Logf, if set, is also called with each warning as it's added.
	Logf func(format string, args ...interface{})
}

// Warnf records a warning.
func (l *Log) Warnf(kind Kind, format string, args ...interface{}) {
	if l == nil {
		return
	}
	w := Warning{Kind: kind, Message: fmt.Sprintf(format, args...)}
	l.Warnings = append(l.Warnings, w)
	if l.Logf != nil {
		l.Logf("warning: %s", w)
	}
}

// Count returns how many warnings of the given kind were recorded.
func (l *Log) Count(kind Kind) int {
	if l == nil {
		return 0
	}
	n := 0
	for _, w := range l.Warnings {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

// Reset forgets all recorded warnings.
func (l *Log) Reset() {
	if l == nil {
		return
	}
	l.Warnings = nil
}
