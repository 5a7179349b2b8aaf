package arm

import "gonum.org/v1/gonum/spatial/r2"

const DefaultMaxTrail = 80

// Trail is a fixed-capacity FIFO of end-effector positions. Once full, each
// Push evicts the oldest point.
type Trail struct {
	buf   []r2.Vec
	start int
	n     int
}

func NewTrail(capacity int) *Trail {
	if capacity < 1 {
		capacity = DefaultMaxTrail
	}
	return &Trail{buf: make([]r2.Vec, capacity)}
}

func (t *Trail) Push(p r2.Vec) {
	if t.n < len(t.buf) {
		t.buf[(t.start+t.n)%len(t.buf)] = p
		t.n++
		return
	}
	t.buf[t.start] = p
	t.start = (t.start + 1) % len(t.buf)
}

// Points returns the trail oldest first. The slice is a copy.
func (t *Trail) Points() []r2.Vec {
	out := make([]r2.Vec, t.n)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

// Last returns the most recent point.
func (t *Trail) Last() (r2.Vec, bool) {
	if t.n == 0 {
		return r2.Vec{}, false
	}
	return t.buf[(t.start+t.n-1)%len(t.buf)], true
}

func (t *Trail) Len() int { return t.n }
func (t *Trail) Cap() int { return len(t.buf) }

func (t *Trail) Clear() {
	t.start, t.n = 0, 0
}
