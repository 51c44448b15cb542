// Package visualizer maps audio data to draw primitives in one of four
// styles, either from a whole decoded channel or from a live analysis
// snapshot.
package visualizer

import "github.com/olivier-w/climpviz/internal/canvas"

// Domain is the kind of analysis snapshot a strategy reads while live.
type Domain uint8

const (
	TimeDomain Domain = iota
	FrequencyDomain
)

func (d Domain) String() string {
	if d == FrequencyDomain {
		return "frequency"
	}
	return "time"
}

// Strategy renders one style. Implementations hold no state between calls.
type Strategy interface {
	Style() Style
	Domain() Domain

	// Static draws a preview of a whole channel of samples in [-1, 1].
	Static(ch []float32, w, h float64) []canvas.Primitive

	// Live draws one analysis snapshot of byte magnitudes.
	Live(snap []byte, w, h float64) []canvas.Primitive
}

// Palette holds the fixed colors strategies paint with. Hue-swept
// elements ignore it.
type Palette struct {
	Accent canvas.Paint
	Disc   canvas.Paint
}

// DefaultPalette returns green strokes on a dark disc.
func DefaultPalette() Palette {
	return Palette{
		Accent: canvas.Solid("#1DB954"),
		Disc:   canvas.Solid("#333333"),
	}
}

// For returns the strategy for s using the default palette.
func For(s Style) Strategy {
	return DefaultPalette().For(s)
}

// For returns the strategy for s painted with p. Unknown styles fall back
// to the waveform.
func (p Palette) For(s Style) Strategy {
	switch s {
	case Bars:
		return bars{p}
	case Circle:
		return circle{p}
	case FrequencySpectrum:
		return spectrum{p}
	default:
		return waveform{p}
	}
}

const strokeWidth = 2
