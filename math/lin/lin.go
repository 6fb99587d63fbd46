// Package lin provides the 2D linear math primitives used by the rb2d
// simulation core: vectors, rotations stored as (sin, cos) pairs, small
// fixed size matrices, and rigid transforms.
//
// Package lin is provided as part of the rb2d 2D physics engine.
package lin

// Design notes, carried over from the engine's general math conventions:
//   - the types are small structs passed by value: methods take value
//     receivers and return new values, so chained calls stay on the
//     stack instead of allocating.
//   - rotations are never passed around as a raw angle in hot code; they
//     are stored as (sin, cos) so repeated composition doesn't need
//     trig calls.

import "math"

// Various math constants used throughout the solver and narrow phase.
const (
	PI   float64 = math.Pi
	PIx2 float64 = PI * 2

	// Epsilon is used to distinguish when a float is close enough to a
	// number to be treated as equal to it.
	Epsilon float64 = 1e-6

	// Large is a stand-in for "effectively infinite" in the few places
	// (e.g. the starting value of a running minimum) that want a saturating value
	// without using math.Inf and risking NaN propagation.
	Large float64 = math.MaxFloat32
)

// AeqZ (~=) reports whether x is close enough to zero that it makes no
// difference numerically.
func AeqZ(x float64) bool { return math.Abs(x) < Epsilon }

// Aeq (~=) reports whether a and b are close enough to be considered equal.
func Aeq(a, b float64) bool { return math.Abs(a-b) < Epsilon }

// Clamp restricts x to the closed interval [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	default:
		return x
	}
}

// Max returns the larger of a and b.
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Min returns the smaller of a and b.
func Min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// Sign returns -1, 0 or 1 depending on the sign of x.
func Sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}
