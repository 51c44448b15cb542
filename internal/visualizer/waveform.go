package visualizer

import (
	"math"

	"github.com/olivier-w/climpviz/internal/canvas"
)

// waveform traces the signal as a single line.
type waveform struct{ pal Palette }

func (waveform) Style() Style   { return Waveform }
func (waveform) Domain() Domain { return TimeDomain }

// Static picks one sample per pixel column, scaled to 90% of the half
// height around the midline.
func (v waveform) Static(ch []float32, w, h float64) []canvas.Primitive {
	n := len(ch)
	cols := int(w)
	if n == 0 || cols <= 0 {
		return nil
	}
	step := (n + cols - 1) / cols

	pts := make([]canvas.Point, 0, cols)
	for i := range cols {
		idx := i * step
		if idx >= n {
			break
		}
		value := float64(ch[idx]) * 0.9
		pts = append(pts, canvas.Point{X: float64(i), Y: (0.5 + value*0.5) * h})
	}
	return []canvas.Primitive{canvas.Path{Points: pts, Stroke: v.pal.Accent, Width: strokeWidth}}
}

// Live plots every snapshot byte across the width and finishes on the
// midline at the right edge.
func (v waveform) Live(snap []byte, w, h float64) []canvas.Primitive {
	n := len(snap)
	if n == 0 {
		return nil
	}
	slice := w / float64(n)

	pts := make([]canvas.Point, 0, n+1)
	x := 0.0
	for _, b := range snap {
		pts = append(pts, canvas.Point{X: x, Y: float64(b) / 128 * h / 2})
		x += slice
	}
	pts = append(pts, canvas.Point{X: w, Y: h / 2})
	return []canvas.Primitive{canvas.Path{Points: pts, Stroke: v.pal.Accent, Width: strokeWidth}}
}

func absf(v float32) float64 { return math.Abs(float64(v)) }
