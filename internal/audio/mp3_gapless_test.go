package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// lameInfoFrame builds an MPEG-1 Layer III stereo frame header followed by
// an Info tag carrying the given encoder delay and padding.
func lameInfoFrame(delay, padding int) []byte {
	var b bytes.Buffer
	// sync, MPEG-1, layer III, no CRC, 128 kbps, 44.1 kHz, stereo
	_ = binary.Write(&b, binary.BigEndian, uint32(0xFFFB9000))
	b.Write(make([]byte, 32)) // side info
	b.WriteString("Info")
	_ = binary.Write(&b, binary.BigEndian, uint32(0)) // no optional fields
	lame := make([]byte, 24)
	lame[21] = byte(delay >> 4)
	lame[22] = byte(delay&0x0f)<<4 | byte(padding>>8)
	lame[23] = byte(padding)
	b.Write(lame)
	b.Write(make([]byte, 256))
	return b.Bytes()
}

func TestMP3GaplessTrim(t *testing.T) {
	head, tail, ok := mp3GaplessTrim(lameInfoFrame(576, 1600))
	if !ok {
		t.Fatal("expected an info tag")
	}
	if head != 576+mp3DecoderDelaySamples {
		t.Fatalf("head trim = %d, want %d", head, 576+mp3DecoderDelaySamples)
	}
	if tail != 1600-mp3DecoderDelaySamples {
		t.Fatalf("tail trim = %d, want %d", tail, 1600-mp3DecoderDelaySamples)
	}
}

func TestMP3GaplessTrimSkipsID3(t *testing.T) {
	id3 := []byte{'I', 'D', '3', 4, 0, 0, 0, 0, 0, 20}
	data := append(append(id3, make([]byte, 20)...), lameInfoFrame(100, 600)...)

	head, tail, ok := mp3GaplessTrim(data)
	if !ok {
		t.Fatal("expected an info tag after the ID3 header")
	}
	if head != 100+mp3DecoderDelaySamples || tail != 600-mp3DecoderDelaySamples {
		t.Fatalf("trim = (%d, %d), want (%d, %d)", head, tail, 100+mp3DecoderDelaySamples, 600-mp3DecoderDelaySamples)
	}
}

func TestMP3GaplessTrimPaddingBelowDecoderDelay(t *testing.T) {
	_, tail, ok := mp3GaplessTrim(lameInfoFrame(576, 100))
	if !ok || tail != 0 {
		t.Fatalf("tail = %d ok = %v, want 0 true", tail, ok)
	}
}

func TestMP3GaplessTrimAbsent(t *testing.T) {
	inputs := map[string][]byte{
		"garbage":       bytes.Repeat([]byte{0x55}, 64),
		"empty":         nil,
		"header only":   lameInfoFrame(576, 1600)[:6],
		"truncated id3": {'I', 'D', '3', 4, 0, 0, 0, 0, 1, 0},
	}
	for name, data := range inputs {
		if head, tail, ok := mp3GaplessTrim(data); ok || head != 0 || tail != 0 {
			t.Fatalf("%s: trim = (%d, %d, %v), want none", name, head, tail, ok)
		}
	}
}

func TestLayer3SideInfoSize(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   int
	}{
		{"mpeg1 stereo", []byte{0xFF, 0xFB, 0x90, 0x00}, 32},
		{"mpeg1 mono", []byte{0xFF, 0xFB, 0x90, 0xC0}, 17},
		{"mpeg2 mono", []byte{0xFF, 0xF3, 0x90, 0xC0}, 9},
		{"mpeg1 stereo crc", []byte{0xFF, 0xFA, 0x90, 0x00}, 34},
	}
	for _, tt := range tests {
		got, err := layer3SideInfoSize(tt.header)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tt.name, err)
		}
		if got != tt.want {
			t.Fatalf("%s: size = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestLayer3SideInfoSizeRejects(t *testing.T) {
	// layer II
	if _, err := layer3SideInfoSize([]byte{0xFF, 0xFD, 0x90, 0x00}); err != errMP3Layer {
		t.Fatalf("layer II err = %v, want %v", err, errMP3Layer)
	}
	if _, err := layer3SideInfoSize([]byte{0xFF}); err != errShortMP3Header {
		t.Fatalf("short err = %v, want %v", err, errShortMP3Header)
	}
	if _, err := layer3SideInfoSize([]byte{0x00, 0x00, 0x00, 0x00}); err != errMP3Sync {
		t.Fatalf("sync err = %v, want %v", err, errMP3Sync)
	}
}
