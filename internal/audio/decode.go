package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
	"github.com/olivier-w/climpviz/internal/media"
)

// Decode turns an encoded audio file into a SampleBuffer. The format is
// chosen from the extension of name. Non-audio names fail with
// media.ErrInvalidFileKind before any decoding is attempted; every other
// failure is a *DecodeError.
func Decode(name string, data []byte) (*SampleBuffer, error) {
	if err := media.CheckKind(name); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, decodeErr(name, "file is empty", nil)
	}

	var (
		buf *SampleBuffer
		err error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".mp3":
		buf, err = decodeMP3(data)
	case ".wav":
		buf, err = decodeWAV(data)
	case ".flac":
		buf, err = decodeFLAC(data)
	case ".ogg", ".oga":
		buf, err = decodeOGG(data)
	}
	if err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			de.Name = name
			return nil, de
		}
		return nil, decodeErr(name, "corrupt or unsupported data", err)
	}
	if buf.Frames() == 0 {
		return nil, decodeErr(name, "no audio frames", nil)
	}
	return buf, nil
}

// --- MP3 ---

func decodeMP3(data []byte) (*SampleBuffer, error) {
	startTrim, endTrim, _ := mp3GaplessTrim(data)

	dec, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	pcm, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}

	// go-mp3 always produces 16-bit stereo.
	const frameSize = 4
	frames := int64(len(pcm) / frameSize)
	if startTrim+endTrim < frames {
		pcm = pcm[startTrim*frameSize : (frames-endTrim)*frameSize]
		frames -= startTrim + endTrim
	}

	left := make([]float32, frames)
	right := make([]float32, frames)
	for i := range left {
		off := i * frameSize
		left[i] = float32(int16(binary.LittleEndian.Uint16(pcm[off:]))) / 32768
		right[i] = float32(int16(binary.LittleEndian.Uint16(pcm[off+2:]))) / 32768
	}
	return NewSampleBuffer([][]float32{left, right}, dec.SampleRate())
}

// --- WAV ---

func decodeWAV(data []byte) (*SampleBuffer, error) {
	dec := wav.NewDecoder(bytes.NewReader(data))
	if !dec.IsValidFile() {
		return nil, decodeErr("", "invalid WAV file", nil)
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("reading WAV PCM data: %w", err)
	}
	if pcm.Format == nil || pcm.Format.NumChannels < 1 {
		return nil, decodeErr("", "WAV file has no channels", nil)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = pcm.SourceBitDepth
	}
	if bitDepth < 8 || bitDepth > 32 {
		return nil, decodeErr("", fmt.Sprintf("unsupported WAV bit depth %d", bitDepth), nil)
	}
	return intBufferToSamples(pcm, bitDepth)
}

func intBufferToSamples(pcm *goaudio.IntBuffer, bitDepth int) (*SampleBuffer, error) {
	numChans := pcm.Format.NumChannels
	frames := len(pcm.Data) / numChans
	channels := make([][]float32, numChans)
	for ch := range channels {
		channels[ch] = make([]float32, frames)
	}

	scale := float32(int64(1) << (bitDepth - 1))
	for i := range frames {
		for ch := range numChans {
			v := pcm.Data[i*numChans+ch]
			if bitDepth == 8 {
				// 8-bit WAV is unsigned
				v -= 128
			}
			channels[ch][i] = clampSample(float32(v) / scale)
		}
	}
	return NewSampleBuffer(channels, pcm.Format.SampleRate)
}

// --- FLAC ---

func decodeFLAC(data []byte) (*SampleBuffer, error) {
	stream, err := flac.New(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding FLAC: %w", err)
	}
	defer stream.Close()

	info := stream.Info
	numChans := int(info.NChannels)
	if numChans < 1 {
		return nil, decodeErr("", "FLAC stream has no channels", nil)
	}
	if info.BitsPerSample == 0 || info.BitsPerSample > 32 {
		return nil, decodeErr("", fmt.Sprintf("unsupported FLAC bit depth %d", info.BitsPerSample), nil)
	}
	scale := float32(int64(1) << (info.BitsPerSample - 1))

	channels := make([][]float32, numChans)
	for ch := range channels {
		channels[ch] = make([]float32, 0, info.NSamples)
	}
	for {
		frame, err := stream.ParseNext()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decoding FLAC frame: %w", err)
		}
		for ch := range numChans {
			for _, s := range frame.Subframes[ch].Samples {
				channels[ch] = append(channels[ch], clampSample(float32(s)/scale))
			}
		}
	}
	return NewSampleBuffer(channels, int(info.SampleRate))
}

// --- OGG Vorbis ---

func decodeOGG(data []byte) (*SampleBuffer, error) {
	samples, format, err := oggvorbis.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding OGG: %w", err)
	}
	if format == nil || format.Channels < 1 {
		return nil, decodeErr("", "OGG stream has no channels", nil)
	}
	return NewSampleBuffer(deinterleave(samples, format.Channels), format.SampleRate)
}

func deinterleave(samples []float32, numChans int) [][]float32 {
	frames := len(samples) / numChans
	channels := make([][]float32, numChans)
	for ch := range channels {
		channels[ch] = make([]float32, frames)
	}
	for i := range frames {
		for ch := range numChans {
			channels[ch][i] = clampSample(samples[i*numChans+ch])
		}
	}
	return channels
}

func clampSample(s float32) float32 {
	if s > 1 {
		return 1
	}
	if s < -1 {
		return -1
	}
	return s
}
