package transform

import "math"

// FirstOrderLag is a low-pass filter: dy/dt = (x-y)/tau. If tau_s <= 0 it is
// a passthrough. The first call initializes y to the input and returns it
// unfiltered.
type FirstOrderLag struct {
	TauS        float64
	y           float64
	initialized bool
}

// NewFirstOrderLag constructs a first-order lag with time constant tauS.
func NewFirstOrderLag(tauS float64) *FirstOrderLag {
	return &FirstOrderLag{TauS: tauS}
}

func (t *FirstOrderLag) Apply(input, dt float64) float64 {
	if !t.initialized {
		t.y = input
		t.initialized = true
		return t.y
	}
	if t.TauS <= 0 {
		t.y = input
		return t.y
	}
	alpha := 1 - math.Exp(-dt/t.TauS)
	t.y += alpha * (input - t.y)
	return t.y
}

func (t *FirstOrderLag) Reset() {
	t.y = 0
	t.initialized = false
}

func (t *FirstOrderLag) Clone() Transform {
	copied := *t
	return &copied
}
