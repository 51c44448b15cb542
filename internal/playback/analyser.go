package playback

import (
	"fmt"
	"math"
	"math/cmplx"
	"sync"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Analyser defaults, matching a Web Audio AnalyserNode.
const (
	DefaultFFTSize     = 2048
	DefaultSmoothing   = 0.8
	DefaultMinDecibels = -100.0
	DefaultMaxDecibels = -30.0
)

// AnalyserConfig configures an Analyser.
type AnalyserConfig struct {
	FFTSize     int     // window length in samples, a power of two
	Smoothing   float64 // time constant for frequency smoothing, 0-1
	MinDecibels float64 // maps to byte 0
	MaxDecibels float64 // maps to byte 255
}

// DefaultAnalyserConfig returns the AnalyserNode defaults.
func DefaultAnalyserConfig() AnalyserConfig {
	return AnalyserConfig{
		FFTSize:     DefaultFFTSize,
		Smoothing:   DefaultSmoothing,
		MinDecibels: DefaultMinDecibels,
		MaxDecibels: DefaultMaxDecibels,
	}
}

// Validate checks the window size and the decibel range.
func (c AnalyserConfig) Validate() error {
	if c.FFTSize < 32 || c.FFTSize > 32768 || c.FFTSize&(c.FFTSize-1) != 0 {
		return fmt.Errorf("fft size %d must be a power of two in [32, 32768]", c.FFTSize)
	}
	if c.Smoothing < 0 || c.Smoothing > 1 {
		return fmt.Errorf("smoothing %v must be in [0, 1]", c.Smoothing)
	}
	if c.MinDecibels >= c.MaxDecibels {
		return fmt.Errorf("min decibels %v must be below max decibels %v", c.MinDecibels, c.MaxDecibels)
	}
	return nil
}

// Analyser turns the most recent output samples into time-domain and
// frequency-domain byte snapshots.
type Analyser struct {
	cfg  AnalyserConfig
	ring *RingBuffer

	mu       sync.Mutex
	fft      *fourier.FFT
	window   []float64
	samples  []float32
	input    []float64
	coeffs   []complex128
	smoothed []float64
}

// NewAnalyser builds an Analyser; cfg must be valid.
func NewAnalyser(cfg AnalyserConfig) (*Analyser, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	n := cfg.FFTSize

	// Blackman window, alpha = 0.16
	window := make([]float64, n)
	for i := range window {
		x := float64(i) / float64(n)
		window[i] = 0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x)
	}

	return &Analyser{
		cfg:      cfg,
		ring:     NewRingBuffer(n),
		fft:      fourier.NewFFT(n),
		window:   window,
		samples:  make([]float32, n),
		input:    make([]float64, n),
		coeffs:   make([]complex128, n/2+1),
		smoothed: make([]float64, n/2),
	}, nil
}

// Write feeds mono output samples.
func (a *Analyser) Write(p []float32) { a.ring.Write(p) }

// Reset drops buffered audio and smoothing history.
func (a *Analyser) Reset() {
	a.ring.Clear()
	a.mu.Lock()
	clear(a.smoothed)
	a.mu.Unlock()
}

// FFTSize returns the analysis window length.
func (a *Analyser) FFTSize() int { return a.cfg.FFTSize }

// BinCount returns the number of frequency bins, half the window.
func (a *Analyser) BinCount() int { return a.cfg.FFTSize / 2 }

// TimeDomain writes the start of the current window into dst as bytes
// centered at 128.
func (a *Analyser) TimeDomain(dst []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ring.Latest(a.samples)
	n := min(len(dst), len(a.samples))
	for i := range n {
		dst[i] = toByte(128 * (1 + float64(a.samples[i])))
	}
	for i := n; i < len(dst); i++ {
		dst[i] = 128
	}
}

// Frequency writes smoothed magnitudes in decibels, scaled to bytes, for
// the first len(dst) bins.
func (a *Analyser) Frequency(dst []byte) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.ring.Latest(a.samples)
	for i, s := range a.samples {
		a.input[i] = float64(s) * a.window[i]
	}
	a.coeffs = a.fft.Coefficients(a.coeffs, a.input)

	n := float64(a.cfg.FFTSize)
	tau := a.cfg.Smoothing
	scale := 255 / (a.cfg.MaxDecibels - a.cfg.MinDecibels)
	for k := range a.smoothed {
		mag := cmplx.Abs(a.coeffs[k]) / n
		a.smoothed[k] = tau*a.smoothed[k] + (1-tau)*mag
		if k >= len(dst) {
			continue
		}
		db := math.Inf(-1)
		if a.smoothed[k] > 0 {
			db = 20 * math.Log10(a.smoothed[k])
		}
		dst[k] = toByte(scale * (db - a.cfg.MinDecibels))
	}
	for k := len(a.smoothed); k < len(dst); k++ {
		dst[k] = 0
	}
}

func toByte(v float64) byte {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return byte(v)
	}
}
