package lin

// Vector performs 2 element vector math for the 2D simulation: positions,
// velocities, normals, impulses.

import "math"

// V2 is a 2 element vector. Depending on context it is used as a point,
// a direction, a velocity, or an impulse.
type V2 struct {
	X float64
	Y float64
}

// Vec2 is a convenience constructor for a V2 literal.
func Vec2(x, y float64) V2 { return V2{X: x, Y: y} }

// Eq (==) reports whether v and a hold identical components.
func (v V2) Eq(a V2) bool { return v.X == a.X && v.Y == a.Y }

// Aeq (~=) reports whether v and a are within Epsilon of each other.
func (v V2) Aeq(a V2) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) }

// AeqZ (~=0) reports whether v has a squared length close enough to zero
// that it makes no numerical difference.
func (v V2) AeqZ() bool { return v.LenSqr() < Epsilon*Epsilon }

// Add returns v + a.
func (v V2) Add(a V2) V2 { return V2{v.X + a.X, v.Y + a.Y} }

// Sub returns v - a.
func (v V2) Sub(a V2) V2 { return V2{v.X - a.X, v.Y - a.Y} }

// Neg returns -v.
func (v V2) Neg() V2 { return V2{-v.X, -v.Y} }

// Scale returns v scaled by s.
func (v V2) Scale(s float64) V2 { return V2{v.X * s, v.Y * s} }

// MulAdd returns v + a*s, useful for avoiding an intermediate allocation
// when integrating velocities and positions.
func (v V2) MulAdd(a V2, s float64) V2 { return V2{v.X + a.X*s, v.Y + a.Y*s} }

// Dot returns the dot product of v and a.
func (v V2) Dot(a V2) float64 { return v.X*a.X + v.Y*a.Y }

// Cross returns the 2D "cross product" of v and a, a scalar equal to the
// z-component of the 3D cross product of (v.X, v.Y, 0) and (a.X, a.Y, 0).
func (v V2) Cross(a V2) float64 { return v.X*a.Y - v.Y*a.X }

// CrossScalar returns the vector s x v, i.e. the cross product of a scalar
// (treated as a z-axis vector) with v. Used to turn an angular velocity
// into a linear velocity contribution: omega x r.
func CrossScalar(s float64, v V2) V2 { return V2{-s * v.Y, s * v.X} }

// CrossVecScalar returns v x s, the mirror of CrossScalar.
func CrossVecScalar(v V2, s float64) V2 { return V2{s * v.Y, -s * v.X} }

// LenSqr returns the squared length of v.
func (v V2) LenSqr() float64 { return v.X*v.X + v.Y*v.Y }

// Len returns the length of v.
func (v V2) Len() float64 { return math.Sqrt(v.LenSqr()) }

// Unit returns v normalized to unit length. The zero vector is returned
// unchanged since it has no meaningful direction.
func (v V2) Unit() V2 {
	l := v.Len()
	if l < Epsilon {
		return v
	}
	return V2{v.X / l, v.Y / l}
}

// Perp returns the vector rotated 90 degrees counter-clockwise: (-y, x).
// Used throughout the narrow phase and solver to turn an edge normal into
// a tangent direction.
func (v V2) Perp() V2 { return V2{-v.Y, v.X} }

// RPerp returns the vector rotated 90 degrees clockwise: (y, -x).
func (v V2) RPerp() V2 { return V2{v.Y, -v.X} }

// DistSqr returns the squared distance between v and a.
func (v V2) DistSqr(a V2) float64 { return v.Sub(a).LenSqr() }

// Dist returns the distance between v and a.
func (v V2) Dist(a V2) float64 { return v.Sub(a).Len() }

// Lerp returns the linear interpolation between v and a at parameter t.
func (v V2) Lerp(a V2, t float64) V2 {
	return V2{v.X + (a.X-v.X)*t, v.Y + (a.Y-v.Y)*t}
}

// Min returns the component-wise minimum of v and a.
func (v V2) Min(a V2) V2 { return V2{Min(v.X, a.X), Min(v.Y, a.Y)} }

// Max returns the component-wise maximum of v and a.
func (v V2) Max(a V2) V2 { return V2{Max(v.X, a.X), Max(v.Y, a.Y)} }
