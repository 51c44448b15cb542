package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/olivier-w/climpviz/internal/render"
)

// frameMsg asks the session to run frame request id.
type frameMsg struct{ id uint64 }

// playbackEndedMsg reports that the engine finished playback id.
type playbackEndedMsg struct{ id uint64 }

// trackLoadedMsg carries the outcome of decoding path.
type trackLoadedMsg struct {
	seq   int
	path  string
	track render.Track
	err   error
}

func frameCmd(id uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return frameMsg{id: id}
	})
}

func waitEndCmd(id uint64, done <-chan struct{}) tea.Cmd {
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		<-done
		return playbackEndedMsg{id: id}
	}
}

func loadCmd(seq int, path string) tea.Cmd {
	return func() tea.Msg {
		t, err := render.LoadTrack(path)
		return trackLoadedMsg{seq: seq, path: path, track: t, err: err}
	}
}
