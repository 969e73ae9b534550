package capture

import "sync"

// Tap is a drop-oldest ring of interleaved PCM samples. The playback
// goroutine writes, the analyzer reads the most recent window; neither side
// ever blocks.
type Tap struct {
	mu   sync.Mutex
	buf  []int16
	w    int
	fill int
}

// NewTap creates a tap holding the most recent capacity samples.
func NewTap(capacity int) *Tap {
	if capacity < 1 {
		capacity = 1
	}
	return &Tap{buf: make([]int16, capacity)}
}

// Write appends samples, overwriting the oldest data when full.
func (t *Tap) Write(samples []int16) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, s := range samples {
		t.buf[t.w] = s
		t.w = (t.w + 1) % len(t.buf)
	}
	t.fill += len(samples)
	if t.fill > len(t.buf) {
		t.fill = len(t.buf)
	}
}

// Latest copies the most recent len(dst) samples into the tail of dst,
// leaving the front zero when the tap holds fewer.
func (t *Tap) Latest(dst []int16) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(dst)
	if n > t.fill {
		for i := range dst[:n-t.fill] {
			dst[i] = 0
		}
		dst = dst[n-t.fill:]
		n = t.fill
	}
	if n == 0 {
		return
	}
	start := (t.w - n + len(t.buf)) % len(t.buf)
	for i := range dst {
		dst[i] = t.buf[(start+i)%len(t.buf)]
	}
}

// Clear resets the tap.
func (t *Tap) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.w = 0
	t.fill = 0
}
