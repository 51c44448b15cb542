package ui

import tea "github.com/charmbracelet/bubbletea"

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

// styleKey maps the number keys to a style index.
func styleKey(msg tea.KeyMsg) (int, bool) {
	switch msg.String() {
	case "1", "2", "3", "4":
		return int(msg.String()[0] - '1'), true
	}
	return 0, false
}

func helpText(hasTrack bool) string {
	s := "o open"
	if hasTrack {
		s += "  space play/pause  s stop"
	}
	s += "  v/1-4 style  l loop  q quit"
	return s
}
