// Package canvas defines draw primitives and the surfaces that take them.
package canvas

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Point is a position in surface pixels, origin top-left.
type Point struct {
	X, Y float64
}

// Finite reports whether both coordinates are real numbers.
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Paint is a solid color.
type Paint struct {
	c colorful.Color
}

// Solid parses a #rrggbb or #rgb color. Unparseable input paints white.
func Solid(hex string) Paint {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Paint{c: colorful.Color{R: 1, G: 1, B: 1}}
	}
	return Paint{c: c}
}

// Hue paints a fully saturated color at deg on the hue wheel, like
// hsl(deg, 100%, 50%).
func Hue(deg float64) Paint {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return Paint{c: colorful.Hsl(deg, 1, 0.5).Clamped()}
}

// Hex returns the paint as #rrggbb.
func (p Paint) Hex() string { return p.c.Hex() }

// Primitive is one drawing operation.
type Primitive interface {
	primitive()
}

// Path strokes straight segments between consecutive points. A closed
// path also joins the last point back to the first.
type Path struct {
	Points []Point
	Closed bool
	Stroke Paint
	Width  float64
}

// Rect fills an axis-aligned rectangle. Negative sizes extend left or up.
type Rect struct {
	X, Y, W, H float64
	Fill       Paint
}

// Disc fills a full circle.
type Disc struct {
	Center Point
	Radius float64
	Fill   Paint
}

func (Path) primitive() {}
func (Rect) primitive() {}
func (Disc) primitive() {}

// Line is a two-point path.
func Line(a, b Point, stroke Paint, width float64) Path {
	return Path{Points: []Point{a, b}, Stroke: stroke, Width: width}
}

// Host reports the pixel size currently allocated to a drawing target.
type Host interface {
	Size() (w, h int)
}

// Surface accepts draw primitives.
type Surface interface {
	Size() (w, h int)
	// Resize changes the surface size and reports whether it changed.
	Resize(w, h int) bool
	Clear()
	Draw(prims ...Primitive)
}
