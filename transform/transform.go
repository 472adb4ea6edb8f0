// Package transform implements the eight stateful per-edge operators the
// graph compiler can attach to an edge. Each Transform carries its own
// state; the set is closed (dispatch is by static type, not an open
// registry).
package transform

// Transform is the contract every edge operator satisfies: apply one
// sample, reset to initial state, and deep-clone (including any PRNG state
// or FIFO buffers) so a clone's next sample matches what the original would
// have produced.
type Transform interface {
	Apply(input, dt float64) float64
	Reset()
	Clone() Transform
}

func clamp(x, min, max float64) float64 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
