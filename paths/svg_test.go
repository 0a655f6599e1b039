package paths

import (
	"bytes"
	"strings"
	"testing"
)

func TestWriteSVG(t *testing.T) {
	ps := &Paths{
		Bounds: Bounds{Max: Vec2{20, 10}},
		P: []Path{
			{V: []Vec2{{1, 1}, {2, 2}}},
			{V: []Vec2{{5, 5}, {6, 5}, {6, 6}}},
		},
	}
	var b bytes.Buffer
	if err := ps.WriteSVG(&b, &SVGConfig{Travel: true}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	got := b.String()
	for _, want := range []string{
		`<svg height="10" width="20" viewBox="0 0 20 10"`,
		`<path d="M 1.00, 1.00 2.00, 2.00"/>`,
		`<path d="M 5.00, 5.00 6.00, 5.00 6.00, 6.00"/>`,
		`stroke-dasharray`,
		`<path d="M 2.00, 2.00 5.00, 5.00"/>`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("svg output doesn't contain %q:\n%s", want, got)
		}
	}

	b.Reset()
	if err := ps.SVG(&b); err != nil {
		t.Fatalf("SVG: %v", err)
	}
	if strings.Contains(b.String(), "stroke-dasharray") {
		t.Errorf("plain svg shows travel moves:\n%s", b.String())
	}
}
