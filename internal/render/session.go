// Package render owns a playback session: the loaded track, the playback
// clock and the frame loop that draws the active visualization.
package render

import (
	"log/slog"

	"github.com/olivier-w/climpviz/internal/canvas"
	"github.com/olivier-w/climpviz/internal/playback"
	"github.com/olivier-w/climpviz/internal/util"
	"github.com/olivier-w/climpviz/internal/visualizer"
)

// Options configures a Session.
type Options struct {
	Engine  playback.Engine
	Surface canvas.Surface
	Host    canvas.Host
	Frames  *FrameQueue
	Palette visualizer.Palette
	Style   visualizer.Style
	Logger  *slog.Logger
}

// Controls says which playback controls are usable.
type Controls struct {
	CanPlay  bool
	CanPause bool
	CanStop  bool
}

// Session ties a loaded track to the engine, clock and surface.
//
// While the clock is Playing, exactly one frame request is outstanding
// and each frame draws a live snapshot. Leaving Playing cancels that
// request before returning. While not Playing the surface shows the
// static preview of the whole track.
//
// A Session is not safe for concurrent use.
type Session struct {
	engine  playback.Engine
	surface canvas.Surface
	host    canvas.Host
	frames  *FrameQueue
	pal     visualizer.Palette
	log     *slog.Logger

	clock    *playback.Clock
	track    Track
	style    visualizer.Style
	strategy visualizer.Strategy

	loop *Frame
	snap []byte

	elapsedText  string
	durationText string

	playID uint64
	done   <-chan struct{}
}

// NewSession returns an Idle session with nothing loaded.
func NewSession(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	frames := opts.Frames
	if frames == nil {
		frames = NewFrameQueue()
	}
	pal := opts.Palette
	if pal == (visualizer.Palette{}) {
		pal = visualizer.DefaultPalette()
	}
	return &Session{
		engine:       opts.Engine,
		surface:      opts.Surface,
		host:         opts.Host,
		frames:       frames,
		pal:          pal,
		log:          log,
		clock:        playback.NewClock(opts.Engine),
		style:        opts.Style,
		strategy:     pal.For(opts.Style),
		elapsedText:  util.FormatTime(0),
		durationText: util.FormatTime(0),
	}
}

// Frames returns the queue the session schedules its frames on.
func (s *Session) Frames() *FrameQueue { return s.frames }

// Prepare readies the session for a new track by stopping playback. Call
// it before decoding so nothing draws against a track about to go away.
func (s *Session) Prepare() {
	if s.clock.State() == playback.Playing {
		s.Stop()
	}
}

// Load replaces the current track, resets the clock to Idle and draws the
// static preview. A Track without a buffer is ignored.
func (s *Session) Load(t Track) {
	if t.Buffer == nil {
		return
	}
	s.halt()
	s.track = t
	s.clock.Reset(t.Buffer.Duration())
	s.elapsedText = util.FormatTime(0)
	s.durationText = util.FormatTime(t.Buffer.Duration())
	s.log.Debug("track loaded",
		"title", t.Meta.Title,
		"duration", s.durationText,
		"channels", t.Buffer.NumChannels(),
		"sample_rate", t.Buffer.SampleRate())
	s.renderStatic()
}

// Play starts from the top, or resumes when paused. It returns
// ErrNoBufferLoaded when nothing is loaded and does nothing while already
// playing.
func (s *Session) Play() error {
	if s.track.Buffer == nil {
		return ErrNoBufferLoaded
	}

	switch s.clock.State() {
	case playback.Playing:
		return nil
	case playback.Paused:
		offset := s.clock.Offset()
		done, err := s.engine.Play(s.track.Buffer, offset)
		if err != nil {
			return err
		}
		s.clock.Resume()
		s.log.Debug("resume", "offset", offset)
		s.begin(done)
	default:
		done, err := s.engine.Play(s.track.Buffer, 0)
		if err != nil {
			return err
		}
		s.clock.Start()
		s.log.Debug("play")
		s.begin(done)
	}
	return nil
}

func (s *Session) begin(done <-chan struct{}) {
	s.playID++
	s.done = done
	s.loop = s.frames.RequestFrame(s.tick)
}

// Pause halts output and keeps the position. No-op unless playing.
func (s *Session) Pause() {
	if s.clock.State() != playback.Playing {
		return
	}
	s.loop.Cancel()
	s.loop = nil
	s.clock.Pause()
	s.engine.Stop()
	s.elapsedText = util.FormatTime(s.clock.Offset())
	s.log.Debug("pause", "offset", s.clock.Offset())
}

// Stop halts output, rewinds to 0 and draws the static preview. No-op
// unless playing or paused.
func (s *Session) Stop() {
	if !s.halt() {
		return
	}
	s.log.Debug("stop")
	s.renderStatic()
}

// NaturalEnd handles the engine running out of audio for the playback
// identified by id. Ends from earlier playbacks, or arriving after a pause
// or stop, are ignored. It reports whether the session stopped.
func (s *Session) NaturalEnd(id uint64) bool {
	if id != s.playID || s.clock.State() != playback.Playing {
		return false
	}
	s.log.Debug("natural end")
	s.Stop()
	return true
}

// halt cancels the frame loop, stops output and rewinds the clock.
func (s *Session) halt() bool {
	state := s.clock.State()
	if state != playback.Playing && state != playback.Paused {
		return false
	}
	s.loop.Cancel()
	s.loop = nil
	s.engine.Stop()
	s.clock.Stop()
	s.elapsedText = util.FormatTime(0)
	return true
}

// PlaybackDone returns the id of the current playback and a channel the
// engine closes when it ends.
func (s *Session) PlaybackDone() (uint64, <-chan struct{}) {
	return s.playID, s.done
}

// SetStyle switches the visualization. While playing, the next frame uses
// it; otherwise the static preview is redrawn at once.
func (s *Session) SetStyle(style visualizer.Style) {
	if style == s.style {
		return
	}
	s.style = style
	s.strategy = s.pal.For(style)
	s.log.Debug("style", "style", style.String())
	if s.clock.State() != playback.Playing {
		s.renderStatic()
	}
}

// Redraw refreshes the static preview after a layout change. While playing
// the next frame picks up the new size on its own.
func (s *Session) Redraw() {
	if s.clock.State() != playback.Playing {
		s.renderStatic()
	}
}

// tick draws one live frame and schedules the next.
func (s *Session) tick() {
	s.loop = nil
	if s.clock.State() != playback.Playing {
		return
	}

	s.resize()
	s.elapsedText = util.FormatTime(s.clock.Elapsed())

	st := s.strategy
	if n := s.engine.BinCount(); len(s.snap) != n {
		s.snap = make([]byte, n)
	}
	if st.Domain() == visualizer.FrequencyDomain {
		s.engine.Frequency(s.snap)
	} else {
		s.engine.TimeDomain(s.snap)
	}

	s.surface.Clear()
	w, h := s.surface.Size()
	s.surface.Draw(st.Live(s.snap, float64(w), float64(h))...)

	s.loop = s.frames.RequestFrame(s.tick)
}

func (s *Session) renderStatic() {
	if s.track.Buffer == nil {
		return
	}
	s.resize()
	s.surface.Clear()
	w, h := s.surface.Size()
	s.surface.Draw(s.strategy.Static(s.track.Buffer.Channel(0), float64(w), float64(h))...)
}

func (s *Session) resize() {
	if s.host == nil {
		return
	}
	w, h := s.host.Size()
	s.surface.Resize(w, h)
}

// State returns the playback state.
func (s *Session) State() playback.State { return s.clock.State() }

// Elapsed returns the playback position in seconds.
func (s *Session) Elapsed() float64 { return s.clock.Elapsed() }

// Duration returns the loaded track length in seconds.
func (s *Session) Duration() float64 { return s.clock.Duration() }

// ElapsedText is the position as m:ss, refreshed every frame and on each
// transition.
func (s *Session) ElapsedText() string { return s.elapsedText }

// DurationText is the track length as m:ss.
func (s *Session) DurationText() string { return s.durationText }

// Style returns the selected visualization.
func (s *Session) Style() visualizer.Style { return s.style }

// Track returns the loaded track.
func (s *Session) Track() Track { return s.track }

// Loaded reports whether a track is loaded.
func (s *Session) Loaded() bool { return s.track.Buffer != nil }

// Controls reports which controls apply in the current state.
func (s *Session) Controls() Controls {
	if s.track.Buffer == nil {
		return Controls{}
	}
	switch s.clock.State() {
	case playback.Playing:
		return Controls{CanPause: true, CanStop: true}
	case playback.Paused:
		return Controls{CanPlay: true, CanStop: true}
	default:
		return Controls{CanPlay: true}
	}
}
