package playback

import (
	"errors"

	"github.com/olivier-w/climpviz/internal/audio"
)

// ErrUnsupportedPlatform is returned when no audio output is available.
var ErrUnsupportedPlatform = errors.New("audio output not supported on this platform")

// AnalysisSource exposes the most recent window of output audio. Both
// snapshot methods fill dst with byte magnitudes the way a Web Audio
// AnalyserNode does: time-domain values are centered at 128, frequency
// values span 0-255.
type AnalysisSource interface {
	BinCount() int
	TimeDomain(dst []byte)
	Frequency(dst []byte)
}

// Engine plays a SampleBuffer and reports its own clock.
type Engine interface {
	TimeSource
	AnalysisSource

	// Play starts output of buf at offset seconds, replacing anything
	// already playing. The returned channel is closed when this playback
	// ends, whether it ran out or was stopped.
	Play(buf *audio.SampleBuffer, offset float64) (<-chan struct{}, error)

	// Stop halts output. It is a no-op when nothing is playing.
	Stop()
}
