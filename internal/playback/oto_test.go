package playback

import (
	"io"
	"sync"
	"testing"
	"time"

	"github.com/olivier-w/climpviz/internal/logger"
	"github.com/olivier-w/climpviz/internal/testutil"
)

type fakePlayer struct {
	mu      sync.Mutex
	r       io.Reader
	playing bool
	closed  bool

	bufferSize      int
	sizedBeforePlay bool
}

func (p *fakePlayer) Play() {
	p.mu.Lock()
	p.playing = true
	p.mu.Unlock()
}

func (p *fakePlayer) Pause() {
	p.mu.Lock()
	p.playing = false
	p.mu.Unlock()
}

func (p *fakePlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *fakePlayer) BufferedSize() int { return 0 }

func (p *fakePlayer) SetBufferSize(bytes int) {
	p.mu.Lock()
	p.bufferSize = bytes
	p.sizedBeforePlay = !p.playing
	p.mu.Unlock()
}

func (p *fakePlayer) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return nil
}

func (p *fakePlayer) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

type fakeOutput struct {
	players []*fakePlayer
}

func (o *fakeOutput) NewPlayer(r io.Reader) outputPlayer {
	p := &fakePlayer{r: r}
	o.players = append(o.players, p)
	return p
}

func newTestEngine(t *testing.T) (*OtoEngine, *fakeOutput) {
	t.Helper()
	cfg := DefaultAnalyserConfig()
	cfg.FFTSize = 64
	a, err := NewAnalyser(cfg)
	if err != nil {
		t.Fatalf("NewAnalyser: %v", err)
	}
	out := &fakeOutput{}
	e := newEngine(out, a, logger.NewTestLogger())
	e.interval = time.Millisecond
	return e, out
}

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("done channel was not closed")
	}
}

func TestOtoEngineNaturalEnd(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	e, out := newTestEngine(t)
	buf := mustBuffer(t, outputSampleRate, []float32{0.5, 0.5, 0.5, 0.5})

	done, err := e.Play(buf, 0)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	if _, err := io.Copy(io.Discard, out.players[0].r); err != nil {
		t.Fatalf("drain: %v", err)
	}
	waitClosed(t, done)

	td := make([]byte, 64)
	e.TimeDomain(td)
	if td[63] != 192 {
		t.Fatalf("analyser did not see output, last byte = %d", td[63])
	}
	e.Stop()
}

func TestOtoEngineStopClosesDone(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	e, out := newTestEngine(t)
	buf := mustBuffer(t, outputSampleRate, make([]float32, 4800))

	done, err := e.Play(buf, 0)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	e.Stop()
	waitClosed(t, done)

	p := out.players[0]
	if p.IsPlaying() || !p.isClosed() {
		t.Fatalf("player not halted: playing=%v closed=%v", p.IsPlaying(), p.isClosed())
	}

	// second Stop is a no-op
	e.Stop()
}

func TestOtoEnginePlayReplacesCurrent(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	e, out := newTestEngine(t)
	buf := mustBuffer(t, outputSampleRate, make([]float32, 4800))

	first, err := e.Play(buf, 0)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	second, err := e.Play(buf, 0.05)
	if err != nil {
		t.Fatalf("Play: %v", err)
	}
	waitClosed(t, first)
	if len(out.players) != 2 || !out.players[0].isClosed() {
		t.Fatalf("first player should be closed")
	}

	select {
	case <-second:
		t.Fatal("second playback ended early")
	default:
	}
	e.Stop()
	waitClosed(t, second)
}

func TestOtoEngineBoundsDeviceBuffer(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	e, out := newTestEngine(t)
	buf := mustBuffer(t, outputSampleRate, make([]float32, 4800))
	if _, err := e.Play(buf, 0); err != nil {
		t.Fatalf("Play: %v", err)
	}
	defer e.Stop()

	p := out.players[0]
	// FFT size 64 is below the floor, so the floor applies
	if want := minOutputFrames * outputFrameSize; p.bufferSize != want {
		t.Fatalf("buffer size = %d, want %d", p.bufferSize, want)
	}
	if !p.sizedBeforePlay {
		t.Fatal("buffer size must be set before Play")
	}
}

func TestOtoEngineBufferFollowsFFTSize(t *testing.T) {
	a, err := NewAnalyser(DefaultAnalyserConfig())
	if err != nil {
		t.Fatalf("NewAnalyser: %v", err)
	}
	e := newEngine(&fakeOutput{}, a, logger.NewTestLogger())
	if got, want := e.bufferBytes(), 2048*outputFrameSize; got != want {
		t.Fatalf("bufferBytes = %d, want %d", got, want)
	}
}

func TestOtoEnginePlayNilBuffer(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.Play(nil, 0); err == nil {
		t.Fatal("expected error for nil buffer")
	}
}

func TestOtoEngineClockAdvances(t *testing.T) {
	e, _ := newTestEngine(t)
	a := e.Now()
	time.Sleep(5 * time.Millisecond)
	if b := e.Now(); b <= a {
		t.Fatalf("Now did not advance: %v -> %v", a, b)
	}
}
