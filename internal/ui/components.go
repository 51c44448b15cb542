package ui

import (
	"strings"

	"github.com/olivier-w/climpviz/internal/render"
	"github.com/olivier-w/climpviz/internal/visualizer"
)

// renderControls shows the three transport controls, dimming the ones the
// session cannot use right now.
func renderControls(c render.Controls) string {
	control := func(label string, enabled bool) string {
		if enabled {
			return enabledControlStyle.Render(label)
		}
		return disabledControlStyle.Render(label)
	}
	return strings.Join([]string{
		control("▶ play", c.CanPlay),
		control("❚❚ pause", c.CanPause),
		control("■ stop", c.CanStop),
	}, "  ")
}

// renderStyleTabs lists the styles with the active one highlighted.
func renderStyleTabs(active visualizer.Style) string {
	tabs := make([]string, 0, 4)
	for i, s := range visualizer.Styles() {
		label := string(rune('1'+i)) + " " + s.String()
		if s == active {
			tabs = append(tabs, activeTabStyle.Render(label))
		} else {
			tabs = append(tabs, helpStyle.Render(label))
		}
	}
	return strings.Join(tabs, "  ")
}

func progressRatio(elapsed, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return min(1, max(0, elapsed/total))
}
