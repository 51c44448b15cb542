package playback

import (
	"slices"
	"testing"
)

func TestRingBufferLatestPadsFront(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Write([]float32{1, 2})

	dst := make([]float32, 4)
	rb.Latest(dst)
	if want := []float32{0, 0, 1, 2}; !slices.Equal(dst, want) {
		t.Fatalf("Latest = %v, want %v", dst, want)
	}
}

func TestRingBufferWraps(t *testing.T) {
	rb := NewRingBuffer(4)
	rb.Write([]float32{1, 2, 3})
	rb.Write([]float32{4, 5, 6})

	dst := make([]float32, 4)
	rb.Latest(dst)
	if want := []float32{3, 4, 5, 6}; !slices.Equal(dst, want) {
		t.Fatalf("Latest = %v, want %v", dst, want)
	}

	small := make([]float32, 2)
	rb.Latest(small)
	if want := []float32{5, 6}; !slices.Equal(small, want) {
		t.Fatalf("Latest(2) = %v, want %v", small, want)
	}
}

func TestRingBufferOversizedWrite(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Write([]float32{1, 2, 3, 4, 5})

	dst := make([]float32, 5)
	rb.Latest(dst)
	if want := []float32{0, 0, 3, 4, 5}; !slices.Equal(dst, want) {
		t.Fatalf("Latest = %v, want %v", dst, want)
	}
}

func TestRingBufferClear(t *testing.T) {
	rb := NewRingBuffer(2)
	rb.Write([]float32{1, 2})
	rb.Clear()

	dst := []float32{9, 9}
	rb.Latest(dst)
	if want := []float32{0, 0}; !slices.Equal(dst, want) {
		t.Fatalf("Latest after Clear = %v, want %v", dst, want)
	}
}
