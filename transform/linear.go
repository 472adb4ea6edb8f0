package transform

import "math"

// Linear scales and offsets its input, then clamps to an optional range.
// y = clamp(scale*x + offset, min, max). It carries no state and ignores dt.
type Linear struct {
	Scale    float64
	Offset   float64
	ClampMin float64
	ClampMax float64
}

// NewLinear constructs a Linear transform with unbounded clamp defaults.
func NewLinear(scale, offset float64) *Linear {
	return &Linear{
		Scale:    scale,
		Offset:   offset,
		ClampMin: math.Inf(-1),
		ClampMax: math.Inf(1),
	}
}

func (t *Linear) Apply(input, _ float64) float64 {
	return clamp(t.Scale*input+t.Offset, t.ClampMin, t.ClampMax)
}

func (t *Linear) Reset() {}

func (t *Linear) Clone() Transform {
	copied := *t
	return &copied
}
