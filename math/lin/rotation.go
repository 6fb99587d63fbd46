package lin

import "math"

// Rot represents a 2D orientation as (sin, cos) rather than a raw angle.
// Hot paths (the narrow phase, the solver) never store or compare a raw
// angle; composing two rotations this way avoids a trig call per frame.
type Rot struct {
	S float64 // sin(theta)
	C float64 // cos(theta)
}

// Ident returns the identity rotation.
func Ident() Rot { return Rot{S: 0, C: 1} }

// FromAngle builds a Rot from a raw angle in radians. Only used at the
// boundary (authoring time, tests) where no Rot is available yet.
func FromAngle(theta float64) Rot {
	return Rot{S: math.Sin(theta), C: math.Cos(theta)}
}

// Angle recovers the raw angle in radians. Used only for debugging and
// at the API boundary; never in a per-step hot path.
func (r Rot) Angle() float64 { return math.Atan2(r.S, r.C) }

// Mul composes two rotations: r then a, i.e. a applied in r's frame.
func (r Rot) Mul(a Rot) Rot {
	return Rot{
		S: r.S*a.C + r.C*a.S,
		C: r.C*a.C - r.S*a.S,
	}
}

// MulT composes the inverse of r with a (r^T * a in matrix terms).
func (r Rot) MulT(a Rot) Rot {
	return Rot{
		S: r.C*a.S - r.S*a.C,
		C: r.C*a.C + r.S*a.S,
	}
}

// Apply rotates v by r.
func (r Rot) Apply(v V2) V2 {
	return V2{r.C*v.X - r.S*v.Y, r.S*v.X + r.C*v.Y}
}

// ApplyT rotates v by the inverse of r.
func (r Rot) ApplyT(v V2) V2 {
	return V2{r.C*v.X + r.S*v.Y, -r.S*v.X + r.C*v.Y}
}

// Inv returns the inverse rotation.
func (r Rot) Inv() Rot { return Rot{S: -r.S, C: r.C} }
