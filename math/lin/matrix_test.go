package lin

import "testing"

func TestM22InvertRoundTrip(t *testing.T) {
	m := NewM22(4, 1, 2, 3)
	inv, ok := m.Invert()
	if !ok {
		t.Fatalf("expected invertible matrix")
	}
	v := Vec2(5, 6)
	roundTrip := inv.Apply(m.Apply(v))
	if !roundTrip.Aeq(v) {
		t.Errorf("expected round trip to recover %v, got %v", v, roundTrip)
	}
}

func TestM22SingularReturnsFalse(t *testing.T) {
	m := NewM22(1, 2, 2, 4) // rows are linearly dependent, det == 0
	if _, ok := m.Invert(); ok {
		t.Errorf("expected singular matrix to be reported as non-invertible")
	}
}
