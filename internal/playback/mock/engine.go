// Package mock provides an in-memory playback.Engine with a manual clock.
package mock

import (
	"sync"

	"github.com/olivier-w/climpviz/internal/audio"
	"github.com/olivier-w/climpviz/internal/playback"
)

// PlayCall records one call to Play.
type PlayCall struct {
	Buffer *audio.SampleBuffer
	Offset float64
}

// Engine is a scripted playback.Engine. Its clock only moves through
// Advance, and playback ends only through Finish or Stop.
type Engine struct {
	mu sync.Mutex

	now  float64
	bins int
	time []byte
	freq []byte
	done chan struct{}

	PlayErr   error
	Plays     []PlayCall
	Stops     int
	TimeReads int
	FreqReads int
}

// New returns an engine reporting bins frequency bins.
func New(bins int) *Engine {
	return &Engine{bins: bins}
}

// Now implements playback.TimeSource.
func (e *Engine) Now() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.now
}

// Advance moves the clock forward by d seconds.
func (e *Engine) Advance(d float64) {
	e.mu.Lock()
	e.now += d
	e.mu.Unlock()
}

// SetTimeDomain scripts the bytes returned by TimeDomain.
func (e *Engine) SetTimeDomain(data []byte) {
	e.mu.Lock()
	e.time = append([]byte(nil), data...)
	e.mu.Unlock()
}

// SetFrequency scripts the bytes returned by Frequency.
func (e *Engine) SetFrequency(data []byte) {
	e.mu.Lock()
	e.freq = append([]byte(nil), data...)
	e.mu.Unlock()
}

// Play records the call and hands back a fresh done channel.
func (e *Engine) Play(buf *audio.SampleBuffer, offset float64) (<-chan struct{}, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.PlayErr != nil {
		return nil, e.PlayErr
	}
	e.closeDone()
	e.Plays = append(e.Plays, PlayCall{Buffer: buf, Offset: offset})
	e.done = make(chan struct{})
	return e.done, nil
}

// Stop closes the current done channel.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Stops++
	e.closeDone()
}

// Finish simulates the buffer running out.
func (e *Engine) Finish() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.closeDone()
}

// Playing reports whether a done channel is open.
func (e *Engine) Playing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.done != nil
}

func (e *Engine) closeDone() {
	if e.done != nil {
		close(e.done)
		e.done = nil
	}
}

// BinCount implements playback.AnalysisSource.
func (e *Engine) BinCount() int { return e.bins }

// TimeDomain implements playback.AnalysisSource. Unscripted entries read as
// silence.
func (e *Engine) TimeDomain(dst []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.TimeReads++
	fill(dst, e.time, 128)
}

// Frequency implements playback.AnalysisSource.
func (e *Engine) Frequency(dst []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.FreqReads++
	fill(dst, e.freq, 0)
}

func fill(dst, src []byte, pad byte) {
	n := copy(dst, src)
	for i := n; i < len(dst); i++ {
		dst[i] = pad
	}
}

var _ playback.Engine = (*Engine)(nil)
