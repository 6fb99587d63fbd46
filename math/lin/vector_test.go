package lin

import "testing"

// While the functions below are not complicated, they are foundational
// enough that bugs here are better caught now than debugged later through
// the narrow phase or the solver.

func TestAddSub(t *testing.T) {
	a, b := Vec2(1, 2), Vec2(3, 4)
	sum := a.Add(b)
	if !sum.Eq(Vec2(4, 6)) {
		t.Errorf("expected (4,6), got %v", sum)
	}
	if !sum.Sub(b).Eq(a) {
		t.Errorf("Sub did not invert Add")
	}
}

func TestDotCross(t *testing.T) {
	a, b := Vec2(1, 0), Vec2(0, 1)
	if a.Dot(b) != 0 {
		t.Errorf("expected orthogonal vectors to have zero dot product")
	}
	if a.Cross(b) != 1 {
		t.Errorf("expected cross(x,y) == 1, got %f", a.Cross(b))
	}
}

func TestPerp(t *testing.T) {
	v := Vec2(1, 0)
	if !v.Perp().Eq(Vec2(0, 1)) {
		t.Errorf("expected perp(1,0) == (0,1), got %v", v.Perp())
	}
	if !v.RPerp().Eq(Vec2(0, -1)) {
		t.Errorf("expected rperp(1,0) == (0,-1), got %v", v.RPerp())
	}
}

func TestUnit(t *testing.T) {
	v := Vec2(3, 4)
	u := v.Unit()
	if !Aeq(u.Len(), 1) {
		t.Errorf("expected unit length, got %f", u.Len())
	}
	zero := Vec2(0, 0)
	if !zero.Unit().Eq(zero) {
		t.Errorf("expected Unit of the zero vector to stay zero")
	}
}

func TestCrossScalarRoundTrip(t *testing.T) {
	r := Vec2(2, 0)
	omega := 3.0
	v := CrossScalar(omega, r)
	// omega x r for r along +x should point along +y scaled by omega*|r|.
	if !v.Aeq(Vec2(0, 6)) {
		t.Errorf("expected (0,6), got %v", v)
	}
}

func TestLerp(t *testing.T) {
	a, b := Vec2(0, 0), Vec2(10, 10)
	mid := a.Lerp(b, 0.5)
	if !mid.Aeq(Vec2(5, 5)) {
		t.Errorf("expected midpoint (5,5), got %v", mid)
	}
}
