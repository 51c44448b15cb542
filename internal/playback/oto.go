package playback

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/olivier-w/climpviz/internal/audio"
)

const monitorInterval = 50 * time.Millisecond

// minOutputFrames keeps the device buffer large enough to avoid underruns
// when the analysis window is small.
const minOutputFrames = 1024

// output is the part of an oto context the engine needs.
type output interface {
	NewPlayer(r io.Reader) outputPlayer
}

// outputPlayer is the part of an oto player the engine needs.
type outputPlayer interface {
	Play()
	Pause()
	IsPlaying() bool
	BufferedSize() int
	SetBufferSize(bytes int)
	Close() error
}

type otoOutput struct {
	ctx *oto.Context
}

func (o otoOutput) NewPlayer(r io.Reader) outputPlayer {
	return o.ctx.NewPlayer(r)
}

var (
	globalOtoCtx *oto.Context
	otoOnce      sync.Once
	otoInitErr   error
)

func initOto() (*oto.Context, error) {
	otoOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   outputSampleRate,
			ChannelCount: outputChannels,
			Format:       oto.FormatSignedInt16LE,
		}
		var ready chan struct{}
		globalOtoCtx, ready, otoInitErr = oto.NewContext(op)
		if otoInitErr == nil {
			<-ready
		}
	})
	return globalOtoCtx, otoInitErr
}

// OtoEngine is an Engine backed by the system audio device.
type OtoEngine struct {
	out      output
	analyser *Analyser
	log      *slog.Logger
	start    time.Time
	interval time.Duration

	mu     sync.Mutex
	player outputPlayer
	stream *pcmStream
	done   chan struct{}
	quit   chan struct{}
	wg     sync.WaitGroup
}

// NewOtoEngine opens the audio device. The analyser receives a mono mix of
// everything sent to the device. Failure to open the device is reported as
// ErrUnsupportedPlatform.
func NewOtoEngine(analyser *Analyser, log *slog.Logger) (*OtoEngine, error) {
	ctx, err := initOto()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedPlatform, err)
	}
	return newEngine(otoOutput{ctx: ctx}, analyser, log), nil
}

func newEngine(out output, analyser *Analyser, log *slog.Logger) *OtoEngine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &OtoEngine{
		out:      out,
		analyser: analyser,
		log:      log,
		start:    time.Now(),
		interval: monitorInterval,
	}
}

// Now returns seconds since the engine was created.
func (e *OtoEngine) Now() float64 {
	return time.Since(e.start).Seconds()
}

// Play starts buf at offset seconds. Anything already playing is stopped
// first and its done channel closed.
func (e *OtoEngine) Play(buf *audio.SampleBuffer, offset float64) (<-chan struct{}, error) {
	if buf == nil {
		return nil, fmt.Errorf("play: nil buffer")
	}
	e.Stop()

	e.mu.Lock()
	defer e.mu.Unlock()

	e.analyser.Reset()
	e.stream = newPCMStream(buf, offset, e.analyser.Write)
	e.player = e.out.NewPlayer(e.stream)
	// The analyser is fed when the device pulls samples, so the device
	// buffer bounds how far snapshots run ahead of what is heard.
	e.player.SetBufferSize(e.bufferBytes())
	e.done = make(chan struct{})
	e.quit = make(chan struct{})
	e.player.Play()

	e.log.Debug("engine play", "offset", offset, "duration", buf.Duration())

	e.wg.Add(1)
	go e.monitor(e.player, e.stream, e.done, e.quit)
	return e.done, nil
}

// bufferBytes is one analysis window of output, at least minOutputFrames.
func (e *OtoEngine) bufferBytes() int {
	return max(e.analyser.FFTSize(), minOutputFrames) * outputFrameSize
}

// monitor closes done once the stream is drained and the device has
// played everything buffered, or once quit is closed.
func (e *OtoEngine) monitor(p outputPlayer, s *pcmStream, done, quit chan struct{}) {
	defer e.wg.Done()
	defer close(done)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()
	for {
		select {
		case <-quit:
			return
		case <-ticker.C:
			if s.Exhausted() && (!p.IsPlaying() || p.BufferedSize() == 0) {
				e.log.Debug("engine reached end of buffer")
				return
			}
		}
	}
}

// Stop halts output and waits for the monitor to exit.
func (e *OtoEngine) Stop() {
	e.mu.Lock()
	p, quit := e.player, e.quit
	e.player, e.stream, e.quit = nil, nil, nil
	e.mu.Unlock()

	if p == nil {
		return
	}
	close(quit)
	e.wg.Wait()
	p.Pause()
	if err := p.Close(); err != nil {
		e.log.Warn("closing audio player", "error", err)
	}
}

// BinCount implements AnalysisSource.
func (e *OtoEngine) BinCount() int { return e.analyser.BinCount() }

// TimeDomain implements AnalysisSource.
func (e *OtoEngine) TimeDomain(dst []byte) { e.analyser.TimeDomain(dst) }

// Frequency implements AnalysisSource.
func (e *OtoEngine) Frequency(dst []byte) { e.analyser.Frequency(dst) }

var _ Engine = (*OtoEngine)(nil)
