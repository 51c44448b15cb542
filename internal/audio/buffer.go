// Package audio holds decoded PCM and the decode service that produces it.
package audio

import (
	"errors"
	"fmt"
)

// SampleBuffer is decoded multi-channel audio. Samples are normalized to
// [-1, 1]. A buffer is immutable once built; callers must not modify the
// slices returned by Channel.
type SampleBuffer struct {
	channels   [][]float32
	sampleRate int
}

// NewSampleBuffer validates and wraps per-channel sample data.
func NewSampleBuffer(channels [][]float32, sampleRate int) (*SampleBuffer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", sampleRate)
	}
	if len(channels) == 0 {
		return nil, errors.New("no channels")
	}
	n := len(channels[0])
	for i, ch := range channels {
		if len(ch) != n {
			return nil, fmt.Errorf("channel %d has %d samples, want %d", i, len(ch), n)
		}
	}
	return &SampleBuffer{channels: channels, sampleRate: sampleRate}, nil
}

// Channel returns the samples of channel i.
func (b *SampleBuffer) Channel(i int) []float32 { return b.channels[i] }

// NumChannels returns the channel count.
func (b *SampleBuffer) NumChannels() int { return len(b.channels) }

// SampleRate returns samples per second per channel.
func (b *SampleBuffer) SampleRate() int { return b.sampleRate }

// Frames returns the number of samples in each channel.
func (b *SampleBuffer) Frames() int { return len(b.channels[0]) }

// Duration returns the length of the buffer in seconds.
func (b *SampleBuffer) Duration() float64 {
	return float64(b.Frames()) / float64(b.sampleRate)
}
