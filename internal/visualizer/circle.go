package visualizer

import (
	"math"

	"github.com/olivier-w/climpviz/internal/canvas"
)

const (
	staticCirclePoints = 100
	liveCircleSegments = 64
)

// circle bends the signal around the center of the surface.
type circle struct{ pal Palette }

func (circle) Style() Style   { return Circle }
func (circle) Domain() Domain { return TimeDomain }

// Static samples 100 angles and pushes each point out from a base radius
// by the absolute amplitude there. The outline is closed.
func (v circle) Static(ch []float32, w, h float64) []canvas.Primitive {
	n := len(ch)
	if n == 0 {
		return nil
	}
	cx, cy := w/2, h/2
	radius := min(cx, cy) * 0.5
	step := 2 * math.Pi / staticCirclePoints

	pts := make([]canvas.Point, staticCirclePoints)
	for i := range staticCirclePoints {
		idx := i * n / staticCirclePoints
		r := radius + absf(ch[idx])*radius*2
		angle := float64(i) * step
		pts[i] = canvas.Point{X: cx + math.Cos(angle)*r, Y: cy + math.Sin(angle)*r}
	}
	return []canvas.Primitive{canvas.Path{Points: pts, Closed: true, Stroke: v.pal.Accent, Width: strokeWidth}}
}

// Live draws the inner disc and 64 radial spokes whose length follows the
// snapshot, each a step further round the hue wheel.
func (v circle) Live(snap []byte, w, h float64) []canvas.Primitive {
	cx, cy := w/2, h/2
	radius := min(cx, cy) * 0.7
	inner := radius * 0.3

	prims := make([]canvas.Primitive, 0, liveCircleSegments+1)
	prims = append(prims, canvas.Disc{Center: canvas.Point{X: cx, Y: cy}, Radius: inner, Fill: v.pal.Disc})

	n := len(snap)
	if n == 0 {
		return prims
	}
	step := 2 * math.Pi / liveCircleSegments
	for i := range liveCircleSegments {
		length := float64(snap[i*n/liveCircleSegments]) / 255 * radius * 0.7
		angle := float64(i) * step
		cos, sin := math.Cos(angle), math.Sin(angle)
		start := canvas.Point{X: cx + cos*inner, Y: cy + sin*inner}
		end := canvas.Point{X: cx + cos*(inner+length), Y: cy + sin*(inner+length)}
		hue := float64(i) / liveCircleSegments * 360
		prims = append(prims, canvas.Line(start, end, canvas.Hue(hue), strokeWidth))
	}
	return prims
}
