package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/olivier-w/climpviz/internal/media"
)

// BrowserSelectedMsg reports the file picked in the browser.
type BrowserSelectedMsg struct {
	Path string
}

// BrowserCancelledMsg reports that the browser was closed without a pick.
type BrowserCancelledMsg struct{}

type fileItem struct {
	dir  string
	name string
	ext  string
}

func (i fileItem) Title() string       { return i.name }
func (i fileItem) Description() string { return i.ext }
func (i fileItem) FilterValue() string { return i.name }
func (i fileItem) Path() string        { return filepath.Join(i.dir, i.name+i.ext) }

type pathItem struct{}

func (i pathItem) Title() string       { return "Open path..." }
func (i pathItem) Description() string { return "type the path of an audio file" }
func (i pathItem) FilterValue() string { return "path" }

// BrowserModel lists the audio files in a directory.
type BrowserModel struct {
	list     list.Model
	input    textinput.Model
	pathMode bool
	err      error
}

// NewEmbeddedBrowser scans dir for supported audio files.
func NewEmbeddedBrowser(dir string) BrowserModel {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return BrowserModel{err: fmt.Errorf("cannot read directory: %w", err)}
	}

	items := []list.Item{pathItem{}}
	var files []fileItem
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if !media.IsSupportedExt(ext) {
			continue
		}
		files = append(files, fileItem{
			dir:  dir,
			name: strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			ext:  filepath.Ext(e.Name()),
		})
	}
	sort.Slice(files, func(a, b int) bool { return files[a].name < files[b].name })
	for _, f := range files {
		items = append(items, f)
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#1DB954", Dark: "#1DB954"})
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"}).
		BorderLeftForeground(lipgloss.AdaptiveColor{Light: "#1DB954", Dark: "#1DB954"})

	l := list.New(items, delegate, 80, 20)
	l.Title = "climpviz — " + media.SupportedExtsList()
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = headerStyle

	ti := textinput.New()
	ti.Placeholder = "~/music/track.flac"
	ti.CharLimit = 4096
	ti.Width = 60

	return BrowserModel{list: l, input: ti}
}

func (m BrowserModel) Update(msg tea.Msg) (BrowserModel, tea.Cmd) {
	if m.pathMode {
		return m.updatePathInput(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "enter":
			switch item := m.list.SelectedItem().(type) {
			case pathItem:
				m.pathMode = true
				m.input.Focus()
				return m, textinput.Blink
			case fileItem:
				return m, selectCmd(item.Path())
			}
		case "q", "esc", "ctrl+c":
			return m, func() tea.Msg { return BrowserCancelledMsg{} }
		}

	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width)
		m.list.SetHeight(msg.Height)
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m BrowserModel) updatePathInput(msg tea.Msg) (BrowserModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "enter":
			if path := expandHome(strings.TrimSpace(m.input.Value())); path != "" {
				return m, selectCmd(path)
			}
		case "esc":
			m.pathMode = false
			m.input.Reset()
			m.input.Blur()
			return m, nil
		case "ctrl+c":
			return m, func() tea.Msg { return BrowserCancelledMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m BrowserModel) View() string {
	if m.err != nil {
		return "  " + errorStyle.Render(m.err.Error()) + "\n"
	}
	if m.pathMode {
		s := "\n"
		s += "  " + headerStyle.Render("climpviz") + "\n"
		s += "\n"
		s += "  " + statusStyle.Render("Open path:") + "\n"
		s += "  " + m.input.View() + "\n"
		s += "\n"
		s += "  " + helpStyle.Render("enter confirm  esc back  ctrl+c cancel") + "\n"
		return s
	}
	return m.list.View()
}

func selectCmd(path string) tea.Cmd {
	return func() tea.Msg { return BrowserSelectedMsg{Path: path} }
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
