package playback

import "sync"

// RingBuffer is a thread-safe circular buffer of mono samples.
type RingBuffer struct {
	buf  []float32
	size int
	w    int // write position
	len  int // current fill level
	mu   sync.Mutex
}

// NewRingBuffer creates a ring buffer holding up to size samples.
func NewRingBuffer(size int) *RingBuffer {
	return &RingBuffer{
		buf:  make([]float32, size),
		size: size,
	}
}

// Write appends samples, overwriting the oldest data when full.
func (rb *RingBuffer) Write(p []float32) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if len(p) > rb.size {
		p = p[len(p)-rb.size:]
	}
	for _, s := range p {
		rb.buf[rb.w] = s
		rb.w = (rb.w + 1) % rb.size
	}
	rb.len += len(p)
	if rb.len > rb.size {
		rb.len = rb.size
	}
}

// Latest copies the most recent len(dst) samples into dst in chronological
// order. When fewer samples have been written, the front of dst is zeroed.
func (rb *RingBuffer) Latest(dst []float32) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	n := len(dst)
	if n > rb.size {
		clear(dst[:n-rb.size])
		dst = dst[n-rb.size:]
		n = rb.size
	}
	have := min(n, rb.len)
	clear(dst[:n-have])
	start := (rb.w - have + rb.size) % rb.size
	for i := range have {
		dst[n-have+i] = rb.buf[(start+i)%rb.size]
	}
}

// Clear resets the buffer.
func (rb *RingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.w = 0
	rb.len = 0
}
