package lin

// T is a rigid 2D transform: a translation and a rotation, applied
// rotation-then-translation (the usual body-to-world convention).
type T struct {
	P V2
	R Rot
}

// TIdent returns the identity transform.
func TIdent() T { return T{P: V2{}, R: Ident()} }

// Apply maps a local point v into the frame described by t.
func (t T) Apply(v V2) V2 { return t.P.Add(t.R.Apply(v)) }

// ApplyVec maps a local direction v into the frame described by t, ignoring
// translation. Useful for normals.
func (t T) ApplyVec(v V2) V2 { return t.R.Apply(v) }

// ApplyT maps a world point v into t's local frame (the inverse of Apply).
func (t T) ApplyT(v V2) V2 { return t.R.ApplyT(v.Sub(t.P)) }

// ApplyTVec maps a world direction v into t's local frame.
func (t T) ApplyTVec(v V2) V2 { return t.R.ApplyT(v) }

// Mul composes two transforms: first b, then t, i.e. the result maps a
// point in b's local frame all the way to t's parent frame.
func (t T) Mul(b T) T {
	return T{
		P: t.Apply(b.P),
		R: t.R.Mul(b.R),
	}
}

// MulT computes the transform that maps points from b's frame into t's
// frame, i.e. t^-1 * b in matrix terms. This is the operation used
// throughout narrow phase to express one body's shape in another's local
// space without ever materializing a world-space intermediate.
func (t T) MulT(b T) T {
	return T{
		P: t.R.ApplyT(b.P.Sub(t.P)),
		R: t.R.MulT(b.R),
	}
}
