package transform

import "math"

// Deadband zeroes small-magnitude inputs: y = 0 if |x| < threshold, else x.
// It carries no state.
type Deadband struct {
	Threshold float64
}

// NewDeadband constructs a deadband transform.
func NewDeadband(threshold float64) *Deadband {
	return &Deadband{Threshold: threshold}
}

func (t *Deadband) Apply(input, _ float64) float64 {
	if math.Abs(input) < t.Threshold {
		return 0.0
	}
	return input
}

func (t *Deadband) Reset() {}

func (t *Deadband) Clone() Transform {
	copied := *t
	return &copied
}
