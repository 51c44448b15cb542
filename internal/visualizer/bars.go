package visualizer

import (
	"math"

	"github.com/olivier-w/climpviz/internal/canvas"
)

const (
	staticBarWidth = 3
	staticBarGap   = 1
	liveBarCount   = 64
)

// bars draws amplitude as vertical bars.
type bars struct{ pal Palette }

func (bars) Style() Style   { return Bars }
func (bars) Domain() Domain { return TimeDomain }

// Static splits the channel into equal blocks and draws each block's mean
// absolute amplitude, tripled, up from the bottom edge.
func (v bars) Static(ch []float32, w, h float64) []canvas.Primitive {
	count := int(math.Floor(w / (staticBarWidth + staticBarGap)))
	if count <= 0 {
		return nil
	}
	block := len(ch) / count

	prims := make([]canvas.Primitive, 0, count)
	for i := range count {
		var avg float64
		if block > 0 {
			var sum float64
			for _, s := range ch[i*block : (i+1)*block] {
				sum += absf(s)
			}
			avg = sum / float64(block)
		}
		height := avg * h * 3
		prims = append(prims, canvas.Rect{
			X:    float64(i * (staticBarWidth + staticBarGap)),
			Y:    h - height,
			W:    staticBarWidth,
			H:    height,
			Fill: v.pal.Accent,
		})
	}
	return prims
}

// Live draws 64 bars centered on the midline, sized by each sample's
// distance from silence.
func (v bars) Live(snap []byte, w, h float64) []canvas.Primitive {
	n := len(snap)
	if n == 0 {
		return nil
	}
	barWidth := w/liveBarCount - 1

	prims := make([]canvas.Primitive, 0, liveBarCount)
	x := 0.0
	for i := range liveBarCount {
		value := float64(snap[i*n/liveBarCount])/128 - 1
		height := math.Abs(value) * h * 0.8
		prims = append(prims, canvas.Rect{
			X:    x,
			Y:    h/2 - height/2,
			W:    barWidth,
			H:    height,
			Fill: v.pal.Accent,
		})
		x += barWidth + 1
	}
	return prims
}
