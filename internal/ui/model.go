package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/olivier-w/climpviz/internal/audio"
	"github.com/olivier-w/climpviz/internal/canvas"
	"github.com/olivier-w/climpviz/internal/media"
	"github.com/olivier-w/climpviz/internal/playback"
	"github.com/olivier-w/climpviz/internal/render"
	"github.com/olivier-w/climpviz/internal/visualizer"
)

// chromeLines is the number of view lines outside the visualizer pane.
const chromeLines = 14

// Options configures a Model.
type Options struct {
	Engine  playback.Engine
	Palette visualizer.Palette
	Style   visualizer.Style
	FPS     int
	Profile termenv.Profile
	Logger  *slog.Logger

	// Path is loaded at startup. When empty the browser opens instead.
	Path string
	// Dir is scanned by the browser.
	Dir string
}

// paneHost reports the pixel size of the visualizer pane.
type paneHost struct {
	cols, rows int
}

func (h *paneHost) Size() (int, int) { return h.cols * 2, h.rows * 4 }

func (h *paneHost) fit(width, height int) {
	h.cols = max(8, width-4)
	h.rows = max(2, height-chromeLines)
}

// Model is the Bubbletea model for the climpviz TUI.
type Model struct {
	session  *render.Session
	frames   *render.FrameQueue
	surface  *canvas.Braille
	host     *paneHost
	log      *slog.Logger
	interval time.Duration
	dir      string
	start    string

	scheduled uint64 // last frame id a tick was issued for

	browser  BrowserModel
	browsing bool

	loading     bool
	loadingName string
	loadSeq     int
	spinner     spinner.Model
	progress    progress.Model

	width    int
	height   int
	loop     bool
	errMsg   string
	quitting bool
}

// New creates a Model.
func New(opts Options) Model {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}
	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	host := &paneHost{}
	host.fit(80, 24)
	surface := canvas.NewBraille(opts.Profile)
	frames := render.NewFrameQueue()
	session := render.NewSession(render.Options{
		Engine:  opts.Engine,
		Surface: surface,
		Host:    host,
		Frames:  frames,
		Palette: opts.Palette,
		Style:   opts.Style,
		Logger:  log,
	})

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = activeTabStyle

	return Model{
		session:  session,
		frames:   frames,
		surface:  surface,
		host:     host,
		log:      log,
		interval: time.Second / time.Duration(fps),
		dir:      dir,
		start:    opts.Path,
		spinner:  sp,
		progress: progress.New(progress.WithSolidFill("#1DB954"), progress.WithoutPercentage()),
		width:    80,
		height:   24,
	}
}

// Session exposes the playback session.
func (m Model) Session() *render.Session { return m.session }

func (m Model) Init() tea.Cmd {
	if m.start != "" {
		return func() tea.Msg { return BrowserSelectedMsg{Path: m.start} }
	}
	return func() tea.Msg { return openBrowserMsg{} }
}

// openBrowserMsg opens the file browser.
type openBrowserMsg struct{}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := m.handleMsg(msg)
	return m, tea.Batch(cmd, m.scheduleFrame())
}

// scheduleFrame issues a tick for a newly requested frame.
func (m *Model) scheduleFrame() tea.Cmd {
	id, ok := m.frames.Pending()
	if !ok || id == m.scheduled {
		return nil
	}
	m.scheduled = id
	return frameCmd(id, m.interval)
}

func (m Model) handleMsg(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frames.Fire(msg.id)
		return m, nil

	case playbackEndedMsg:
		if !m.session.NaturalEnd(msg.id) {
			return m, nil
		}
		if m.loop {
			return m.play()
		}
		return m, tea.SetWindowTitle(windowTitle(m.session.Track().Meta.Title, m.session.State()))

	case trackLoadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.log.Warn("load failed", "path", msg.path, "error", msg.err)
			return m, nil
		}
		m.errMsg = ""
		m.session.Load(msg.track)
		return m, tea.SetWindowTitle(windowTitle(msg.track.Meta.Title, m.session.State()))

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case openBrowserMsg:
		m.browser = NewEmbeddedBrowser(m.dir)
		m.browsing = true
		m.browser, _ = m.browser.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		return m, nil

	case BrowserSelectedMsg:
		m.browsing = false
		return m.startLoad(msg.Path)

	case BrowserCancelledMsg:
		m.browsing = false
		if !m.session.Loaded() && !m.loading {
			return m.quit()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.host.fit(msg.Width, msg.Height)
		m.progress.Width = max(10, msg.Width-20)
		m.session.Redraw()
		if m.browsing {
			var cmd tea.Cmd
			m.browser, cmd = m.browser.Update(msg)
			return m, cmd
		}
		return m, nil

	case tea.KeyMsg:
		if m.browsing {
			var cmd tea.Cmd
			m.browser, cmd = m.browser.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)
	}

	if m.browsing {
		var cmd tea.Cmd
		m.browser, cmd = m.browser.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if isQuit(msg) {
		return m.quit()
	}
	if i, ok := styleKey(msg); ok {
		m.session.SetStyle(visualizer.Styles()[i])
		return m, nil
	}

	switch msg.String() {
	case " ", "p":
		if m.session.State() == playback.Playing {
			m.session.Pause()
			return m, tea.SetWindowTitle(windowTitle(m.session.Track().Meta.Title, m.session.State()))
		}
		return m.play()
	case "s":
		m.session.Stop()
		return m, tea.SetWindowTitle(windowTitle(m.session.Track().Meta.Title, m.session.State()))
	case "v":
		m.session.SetStyle(m.session.Style().Next())
	case "l":
		m.loop = !m.loop
	case "o":
		return m, func() tea.Msg { return openBrowserMsg{} }
	}
	return m, nil
}

func (m Model) play() (Model, tea.Cmd) {
	if err := m.session.Play(); err != nil {
		if !errors.Is(err, render.ErrNoBufferLoaded) {
			m.errMsg = err.Error()
			m.log.Error("play failed", "error", err)
		}
		return m, nil
	}
	id, done := m.session.PlaybackDone()
	return m, tea.Batch(
		waitEndCmd(id, done),
		tea.SetWindowTitle(windowTitle(m.session.Track().Meta.Title, m.session.State())),
	)
}

// startLoad stops playback and decodes path in the background. Paths that
// are not audio files are rejected without touching playback.
func (m Model) startLoad(path string) (Model, tea.Cmd) {
	if err := media.CheckKind(path); err != nil {
		m.errMsg = err.Error()
		m.log.Warn("rejected file", "path", path, "error", err)
		return m, nil
	}
	m.session.Prepare()
	m.loadSeq++
	m.loading = true
	m.loadingName = filepath.Base(path)
	m.errMsg = ""
	return m, tea.Batch(loadCmd(m.loadSeq, path), m.spinner.Tick)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.session.Stop()
	m.quitting = true
	return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.browsing {
		return m.browser.View()
	}

	var b strings.Builder
	line := func(s string) {
		b.WriteString("  ")
		b.WriteString(s)
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	line(headerStyle.Render("climpviz") + "  " + renderStyleTabs(m.session.Style()))
	b.WriteByte('\n')

	meta := m.session.Track().Meta
	switch {
	case m.loading:
		line(m.spinner.View() + " " + statusStyle.Render("Decoding "+m.loadingName+"..."))
	case m.session.Loaded():
		line(titleStyle.Render(meta.Title))
	default:
		line(helpStyle.Render("No track loaded"))
	}
	line(artistStyle.Render(subtitle(meta)))
	b.WriteByte('\n')

	pane := m.surface.String()
	if pane == "" {
		pane = strings.Repeat("\n", max(0, m.host.rows-1))
	}
	for _, row := range strings.Split(pane, "\n") {
		line(row)
	}
	b.WriteByte('\n')

	ratio := progressRatio(m.session.Elapsed(), m.session.Duration())
	line(fmt.Sprintf("%s %s %s",
		timeStyle.Render(m.session.ElapsedText()),
		m.progress.ViewAs(ratio),
		timeStyle.Render(m.session.DurationText())))
	b.WriteByte('\n')

	status := renderControls(m.session.Controls())
	if m.loop {
		status += "  " + statusStyle.Render("↻ loop")
	}
	line(status)

	switch {
	case m.errMsg != "":
		line(errorStyle.Render(m.errMsg))
	case m.session.Loaded():
		line(statusStyle.Render("Duration: " + m.session.DurationText()))
	default:
		line("")
	}
	b.WriteByte('\n')
	line(helpStyle.Render(helpText(m.session.Loaded())))
	return b.String()
}

func subtitle(meta audio.Metadata) string {
	switch {
	case meta.Artist != "" && meta.Album != "":
		return meta.Artist + " - " + meta.Album
	case meta.Artist != "":
		return meta.Artist
	default:
		return meta.Album
	}
}

func windowTitle(title string, state playback.State) string {
	if title == "" {
		return "climpviz"
	}
	switch state {
	case playback.Playing:
		return "▶ " + title + " — climpviz"
	case playback.Paused:
		return "⏸ " + title + " — climpviz"
	default:
		return title + " — climpviz"
	}
}
