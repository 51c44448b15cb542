package playback

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/olivier-w/climpviz/internal/audio"
)

const (
	outputSampleRate     = 48000
	outputChannels       = 2
	outputBytesPerSample = 2
	outputFrameSize      = outputChannels * outputBytesPerSample
)

// pcmStream presents a SampleBuffer as a fixed 48 kHz stereo s16le stream.
// Mono sources are up-mixed; other rates are resampled by linear
// interpolation. Every frame handed out is also mixed down to mono and
// written to the tap.
type pcmStream struct {
	mu    sync.Mutex
	buf   *audio.SampleBuffer
	left  []float32
	right []float32
	tap   func([]float32)

	srcRate        int64
	totalSrcFrames int64
	totalOutFrames int64
	outFramePos    int64
	srcPosNum      int64 // source position in units of 1/outputSampleRate frames

	mono []float32
}

// newPCMStream positions a stream offset seconds into buf.
func newPCMStream(buf *audio.SampleBuffer, offset float64, tap func([]float32)) *pcmStream {
	left := buf.Channel(0)
	right := left
	if buf.NumChannels() > 1 {
		right = buf.Channel(1)
	}

	srcRate := int64(buf.SampleRate())
	totalSrc := int64(buf.Frames())
	totalOut := totalSrc * outputSampleRate / srcRate
	if totalSrc > 0 && totalOut == 0 {
		totalOut = 1
	}

	s := &pcmStream{
		buf:            buf,
		left:           left,
		right:          right,
		tap:            tap,
		srcRate:        srcRate,
		totalSrcFrames: totalSrc,
		totalOutFrames: totalOut,
	}
	s.seekSeconds(offset)
	return s
}

func (s *pcmStream) seekSeconds(offset float64) {
	if offset < 0 {
		offset = 0
	}
	outFrame := int64(offset * outputSampleRate)
	if outFrame > s.totalOutFrames {
		outFrame = s.totalOutFrames
	}
	s.outFramePos = outFrame
	s.srcPosNum = outFrame * s.srcRate
}

// Exhausted reports whether every frame has been read.
func (s *pcmStream) Exhausted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outFramePos >= s.totalOutFrames
}

func (s *pcmStream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outFramePos >= s.totalOutFrames {
		return 0, io.EOF
	}

	frames := len(p) / outputFrameSize
	if frames == 0 {
		return 0, nil
	}
	if remaining := s.totalOutFrames - s.outFramePos; int64(frames) > remaining {
		frames = int(remaining)
	}
	if cap(s.mono) < frames {
		s.mono = make([]float32, frames)
	}
	mono := s.mono[:frames]

	for i := range frames {
		srcFrame := s.srcPosNum / outputSampleRate
		frac := float32(s.srcPosNum%outputSampleRate) / outputSampleRate
		l := s.sampleAt(s.left, srcFrame, frac)
		r := s.sampleAt(s.right, srcFrame, frac)

		off := i * outputFrameSize
		binary.LittleEndian.PutUint16(p[off:], uint16(toInt16(l)))
		binary.LittleEndian.PutUint16(p[off+2:], uint16(toInt16(r)))
		mono[i] = (l + r) / 2

		s.outFramePos++
		s.srcPosNum += s.srcRate
	}

	if s.tap != nil {
		s.tap(mono)
	}
	return frames * outputFrameSize, nil
}

func (s *pcmStream) sampleAt(ch []float32, frame int64, frac float32) float32 {
	if frame >= s.totalSrcFrames {
		return ch[s.totalSrcFrames-1]
	}
	a := ch[frame]
	if frac == 0 || frame+1 >= s.totalSrcFrames {
		return a
	}
	return a + (ch[frame+1]-a)*frac
}

func toInt16(v float32) int16 {
	if v >= 1 {
		return 32767
	}
	if v <= -1 {
		return -32768
	}
	return int16(v * 32767)
}
