package visualizer

import (
	"math"

	"github.com/olivier-w/climpviz/internal/canvas"
)

const (
	staticSpectrumBarWidth = 4
	staticSpectrumGap      = 1
)

// spectrum draws frequency content as bars along the bottom edge.
type spectrum struct{ pal Palette }

func (spectrum) Style() Style   { return FrequencySpectrum }
func (spectrum) Domain() Domain { return FrequencyDomain }

// Static has no spectral data to work from, so it approximates one with
// compressed block amplitudes. It does not run a transform.
func (v spectrum) Static(ch []float32, w, h float64) []canvas.Primitive {
	count := int(math.Floor(w / (staticSpectrumBarWidth + staticSpectrumGap)))
	n := len(ch)
	if count <= 0 {
		return nil
	}

	prims := make([]canvas.Primitive, 0, count)
	for i := range count {
		start := i * n / count
		end := (i + 1) * n / count

		var avg float64
		if end > start {
			var sum float64
			for _, s := range ch[start:end] {
				sum += absf(s)
			}
			avg = sum / float64(end-start)
		}
		height := math.Pow(avg, 0.8) * h * 4
		prims = append(prims, canvas.Rect{
			X:    float64(i * (staticSpectrumBarWidth + staticSpectrumGap)),
			Y:    h - height,
			W:    staticSpectrumBarWidth,
			H:    height,
			Fill: v.pal.Accent,
		})
	}
	return prims
}

// Live draws one bar per bin until the bars run off the right edge. Hue
// runs from green through cyan to blue-violet as frequency rises.
func (v spectrum) Live(snap []byte, w, h float64) []canvas.Primitive {
	n := len(snap)
	if n == 0 {
		return nil
	}
	barWidth := w / float64(n) * 2.5

	var prims []canvas.Primitive
	x := 0.0
	for i, b := range snap {
		if x >= w {
			break
		}
		height := float64(b) / 255 * h
		hue := float64(i)/float64(n)*180 + 120
		prims = append(prims, canvas.Rect{X: x, Y: h - height, W: barWidth, H: height, Fill: canvas.Hue(hue)})
		x += barWidth + 1
	}
	return prims
}
