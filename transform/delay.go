package transform

import "math"

// Delay is a time delay implemented with a FIFO buffer: y(t) = x(t -
// delay_sec). If delay_sec <= 0 it is a passthrough. The required sample
// count is recomputed from the current dt on every call (spec's documented
// open question: varying dt across ticks makes the effective delay drift;
// callers must hold dt constant per tick).
type Delay struct {
	DelaySec float64
	buffer   []float64
}

// NewDelay constructs a delay transform for delaySec seconds.
func NewDelay(delaySec float64) *Delay {
	return &Delay{DelaySec: delaySec}
}

func (t *Delay) Apply(input, dt float64) float64 {
	if t.DelaySec <= 0 {
		return input
	}

	n := int(math.Round(t.DelaySec / dt))
	if n < 1 {
		n = 1
	}

	t.buffer = append(t.buffer, input)

	if len(t.buffer) > n {
		out := t.buffer[0]
		t.buffer = t.buffer[1:]
		return out
	}
	return t.buffer[0]
}

func (t *Delay) Reset() {
	t.buffer = nil
}

func (t *Delay) Clone() Transform {
	copied := &Delay{DelaySec: t.DelaySec}
	if t.buffer != nil {
		copied.buffer = append([]float64(nil), t.buffer...)
	}
	return copied
}
