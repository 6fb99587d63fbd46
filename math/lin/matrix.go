package lin

// M22 is a 2x2 matrix, column-major (Col1, Col2), used by the two-point
// block solver to build and invert the K matrix.
type M22 struct {
	Col1, Col2 V2
}

// NewM22 builds a matrix from its four entries in row-major order, the
// natural way to write one down at a call site.
func NewM22(a11, a12, a21, a22 float64) M22 {
	return M22{Col1: V2{a11, a21}, Col2: V2{a12, a22}}
}

// Apply returns m*v.
func (m M22) Apply(v V2) V2 {
	return V2{
		m.Col1.X*v.X + m.Col2.X*v.Y,
		m.Col1.Y*v.X + m.Col2.Y*v.Y,
	}
}

// Det returns the determinant of m.
func (m M22) Det() float64 { return m.Col1.X*m.Col2.Y - m.Col2.X*m.Col1.Y }

// Invert returns the inverse of m and whether it was invertible. A
// singular or near-singular matrix returns the zero matrix and false so
// callers can fall back to a single-point solve.
func (m M22) Invert() (M22, bool) {
	det := m.Det()
	if AeqZ(det) {
		return M22{}, false
	}
	inv := 1.0 / det
	return M22{
		Col1: V2{m.Col2.Y * inv, -m.Col1.Y * inv},
		Col2: V2{-m.Col2.X * inv, m.Col1.X * inv},
	}, true
}
