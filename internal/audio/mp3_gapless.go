package audio

import (
	"encoding/binary"
	"errors"
)

// Samples the MP3 decoder itself adds ahead of the encoder delay.
const mp3DecoderDelaySamples = 529

var (
	errShortMP3Header = errors.New("short mp3 header")
	errMP3Sync        = errors.New("invalid mp3 sync")
	errMP3Layer       = errors.New("not layer iii")
	errMP3Version     = errors.New("reserved mpeg version")
)

// lameTrim is the encoder delay and padding stored in a LAME info tag,
// in samples per channel.
type lameTrim struct {
	delay   int
	padding int
}

// frames converts the tag values into frames to drop from the head and
// tail of go-mp3 output, which includes the decoder's own delay.
func (t lameTrim) frames() (head, tail int64) {
	head = int64(t.delay + mp3DecoderDelaySamples)
	tail = max(int64(t.padding-mp3DecoderDelaySamples), 0)
	return head, tail
}

// mp3GaplessTrim inspects the first audio frame of data for a Xing/Info
// tag with LAME delay and padding. ok is false when there is none.
func mp3GaplessTrim(data []byte) (head, tail int64, ok bool) {
	frame := data[id3v2Size(data):]
	sideInfo, err := layer3SideInfoSize(frame)
	if err != nil || len(frame) < 4+sideInfo {
		return 0, 0, false
	}
	trim, ok := parseInfoTag(frame[4+sideInfo:])
	if !ok {
		return 0, 0, false
	}
	head, tail = trim.frames()
	return head, tail, true
}

// id3v2Size is the byte length of a leading ID3v2 tag, or 0.
func id3v2Size(data []byte) int {
	if len(data) < 10 || string(data[:3]) != "ID3" {
		return 0
	}
	n := 10 + (int(data[6]&0x7f)<<21 | int(data[7]&0x7f)<<14 | int(data[8]&0x7f)<<7 | int(data[9]&0x7f))
	if data[5]&0x10 != 0 {
		n += 10 // footer
	}
	return min(n, len(data))
}

// layer3SideInfoSize validates an MPEG Layer III frame header and returns
// the bytes between the header and the frame payload (CRC plus side info).
func layer3SideInfoSize(frame []byte) (int, error) {
	if len(frame) < 4 {
		return 0, errShortMP3Header
	}
	h := binary.BigEndian.Uint32(frame)
	if h>>21 != 0x7ff {
		return 0, errMP3Sync
	}
	version := (h >> 19) & 0x3
	if (h>>17)&0x3 != 0x1 {
		return 0, errMP3Layer
	}
	if version == 0x1 {
		return 0, errMP3Version
	}

	mono := (h>>6)&0x3 == 0x3
	size := 17
	switch {
	case version == 0x3 && !mono:
		size = 32
	case version != 0x3 && mono:
		size = 9
	}
	if (h>>16)&0x1 == 0 {
		size += 2
	}
	return size, nil
}

// parseInfoTag reads the LAME delay/padding that follow a Xing or Info tag.
func parseInfoTag(b []byte) (lameTrim, bool) {
	if len(b) < 8 {
		return lameTrim{}, false
	}
	if tag := string(b[:4]); tag != "Xing" && tag != "Info" {
		return lameTrim{}, false
	}

	flags := binary.BigEndian.Uint32(b[4:8])
	off := 8
	for _, f := range []struct {
		bit  uint32
		size int
	}{{0x1, 4}, {0x2, 4}, {0x4, 100}, {0x8, 4}} { // frames, bytes, TOC, quality
		if flags&f.bit != 0 {
			off += f.size
		}
	}
	// the LAME extension stores 12 bits of delay then 12 bits of padding
	// at bytes 21..23
	if len(b) < off+24 {
		return lameTrim{}, false
	}
	dp := b[off+21 : off+24]
	t := lameTrim{
		delay:   int(dp[0])<<4 | int(dp[1]>>4),
		padding: int(dp[1]&0x0f)<<8 | int(dp[2]),
	}
	if t.delay == 0 && t.padding == 0 {
		return lameTrim{}, false
	}
	return t, true
}
