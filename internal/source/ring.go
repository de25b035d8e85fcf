package source

import "sync"

// SampleRing is a thread-safe circular buffer of int16 PCM samples. Playback
// and capture callbacks write from their own goroutines; the tick loop reads
// the most recent window.
type SampleRing struct {
	buf  []int16
	size int
	w    int // write position
	len  int // current fill level
	mu   sync.Mutex
}

// NewSampleRing creates a ring holding up to size samples.
func NewSampleRing(size int) *SampleRing {
	return &SampleRing{
		buf:  make([]int16, size),
		size: size,
	}
}

// Write appends samples, overwriting the oldest data when full.
func (r *SampleRing) Write(p []int16) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range p {
		r.buf[r.w] = s
		r.w = (r.w + 1) % r.size
	}
	r.len += len(p)
	if r.len > r.size {
		r.len = r.size
	}
}

// Latest returns up to n of the most recent samples, oldest first.
func (r *SampleRing) Latest(n int) []int16 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n > r.len {
		n = r.len
	}
	if n == 0 {
		return nil
	}

	out := make([]int16, n)
	start := (r.w - n + r.size) % r.size
	for i := 0; i < n; i++ {
		out[i] = r.buf[(start+i)%r.size]
	}
	return out
}

// Clear resets the ring.
func (r *SampleRing) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.w = 0
	r.len = 0
}
