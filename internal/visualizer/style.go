package visualizer

import (
	"fmt"
	"strings"
)

// Style selects a visualization.
type Style uint8

const (
	Waveform Style = iota
	Bars
	Circle
	FrequencySpectrum
)

var styleNames = [...]string{
	Waveform:          "waveform",
	Bars:              "bars",
	Circle:            "circle",
	FrequencySpectrum: "frequency",
}

// Styles returns every style in selection order.
func Styles() []Style {
	return []Style{Waveform, Bars, Circle, FrequencySpectrum}
}

func (s Style) String() string {
	if int(s) < len(styleNames) {
		return styleNames[s]
	}
	return fmt.Sprintf("Style(%d)", uint8(s))
}

// Next cycles to the following style.
func (s Style) Next() Style {
	return (s + 1) % Style(len(styleNames))
}

// ParseStyle accepts a style name in any case. "spectrum" is an alias for
// the frequency spectrum.
func ParseStyle(name string) (Style, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "spectrum" {
		return FrequencySpectrum, nil
	}
	for i, s := range styleNames {
		if s == n {
			return Style(i), nil
		}
	}
	return Waveform, fmt.Errorf("unknown visualization style %q", name)
}
