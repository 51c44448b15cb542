package canvas

import (
	"math"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestSolidAndHue(t *testing.T) {
	tests := []struct {
		paint Paint
		want  string
	}{
		{Solid("#1DB954"), "#1db954"},
		{Solid("#333"), "#333333"},
		{Solid("not a color"), "#ffffff"},
		{Hue(0), "#ff0000"},
		{Hue(120), "#00ff00"},
		{Hue(240), "#0000ff"},
		{Hue(360), "#ff0000"},
		{Hue(-120), "#0000ff"},
	}
	for _, tt := range tests {
		if got := tt.paint.Hex(); got != tt.want {
			t.Fatalf("Hex() = %s, want %s", got, tt.want)
		}
	}
}

func TestPointFinite(t *testing.T) {
	if !(Point{1, 2}).Finite() {
		t.Fatal("finite point reported as not finite")
	}
	for _, p := range []Point{{math.NaN(), 0}, {0, math.Inf(1)}} {
		if p.Finite() {
			t.Fatalf("%v reported finite", p)
		}
	}
}

func newTestBraille(w, h int) *Braille {
	b := NewBraille(termenv.Ascii)
	b.Resize(w, h)
	return b
}

func TestBrailleResizeRoundsToCells(t *testing.T) {
	b := NewBraille(termenv.Ascii)
	if !b.Resize(9, 11) {
		t.Fatal("first resize should report a change")
	}
	if w, h := b.Size(); w != 8 || h != 8 {
		t.Fatalf("size = %dx%d, want 8x8", w, h)
	}
	if b.Resize(8, 8) {
		t.Fatal("same size should not report a change")
	}
}

func TestBrailleHorizontalLine(t *testing.T) {
	b := newTestBraille(4, 4)
	b.Draw(Line(Point{0, 0}, Point{3, 0}, Solid("#fff"), 1))

	// top row of both cells lit: bits 0 and 3
	if got := b.String(); got != "⠉⠉" {
		t.Fatalf("String() = %q", got)
	}
}

func TestBrailleClipsOffSurface(t *testing.T) {
	b := newTestBraille(4, 4)
	b.Draw(Line(Point{-100, 2}, Point{100, 2}, Solid("#fff"), 1))
	for x := range 4 {
		if !b.Dot(x, 2) {
			t.Fatalf("dot (%d,2) not lit", x)
		}
	}

	b.Clear()
	b.Draw(Line(Point{-10, -10}, Point{-1, -5}, Solid("#fff"), 1))
	if got := b.String(); strings.ContainsFunc(got, func(r rune) bool { return r != 0x2800 && r != '\n' }) {
		t.Fatalf("off-surface line drew %q", got)
	}
}

func TestBrailleSkipsNaN(t *testing.T) {
	b := newTestBraille(4, 4)
	b.Draw(Path{Points: []Point{{0, 0}, {math.NaN(), 1}, {3, 3}}})
	for y := range 4 {
		for x := range 4 {
			if b.Dot(x, y) {
				t.Fatalf("dot (%d,%d) lit through NaN segment", x, y)
			}
		}
	}
}

func TestBrailleClosedPath(t *testing.T) {
	b := newTestBraille(8, 8)
	b.Draw(Path{Points: []Point{{1, 1}, {6, 1}, {6, 6}}, Closed: true})
	// closing edge runs from (6,6) back to (1,1)
	if !b.Dot(3, 3) {
		t.Fatal("closing segment missing")
	}
}

func TestBrailleFillRect(t *testing.T) {
	b := newTestBraille(4, 8)
	b.Draw(Rect{X: 0, Y: 8, W: 2, H: -4, Fill: Solid("#fff")})
	for y := range 8 {
		lit := b.Dot(0, y)
		if want := y >= 4; lit != want {
			t.Fatalf("dot (0,%d) lit=%v, want %v", y, lit, want)
		}
	}
	if b.Dot(2, 6) {
		t.Fatal("rect overflowed its width")
	}

	b.Clear()
	b.Draw(Rect{X: 0, Y: 8, W: 2, H: 0})
	if b.Dot(0, 7) {
		t.Fatal("zero-height rect drew dots")
	}
}

func TestBrailleFillDisc(t *testing.T) {
	b := newTestBraille(20, 20)
	b.Draw(Disc{Center: Point{10, 10}, Radius: 3, Fill: Solid("#333")})
	if !b.Dot(10, 10) || !b.Dot(13, 10) {
		t.Fatal("disc missing dots")
	}
	if b.Dot(14, 10) || b.Dot(12, 13) {
		t.Fatal("disc drew outside its radius")
	}
}

func TestBrailleClearKeepsSize(t *testing.T) {
	b := newTestBraille(4, 4)
	b.Draw(Rect{X: 0, Y: 0, W: 4, H: 4})
	b.Clear()
	if got := b.String(); got != "⠀⠀" {
		t.Fatalf("String() after Clear = %q", got)
	}
}

func TestBrailleColorSequences(t *testing.T) {
	b := NewBraille(termenv.TrueColor)
	b.Resize(4, 4)
	b.Draw(Line(Point{0, 0}, Point{3, 0}, Solid("#ff0000"), 1))

	got := b.String()
	if strings.Count(got, "\x1b[38;2;255;0;0m") != 1 {
		t.Fatalf("expected one color sequence for a same-colored run, got %q", got)
	}
	if !strings.HasSuffix(got, "\x1b[0m") {
		t.Fatalf("row not reset: %q", got)
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Resize(10, 10)
	r.Draw(Rect{}, Disc{})
	r.Clear()
	r.Draw(Path{})

	if r.Resizes != 1 || r.Clears != 1 || r.Draws != 2 || len(r.Prims) != 1 {
		t.Fatalf("recorder = %+v", r)
	}
}
