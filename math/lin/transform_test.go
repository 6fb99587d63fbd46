package lin

import "testing"

func TestTransformApplyRoundTrip(t *testing.T) {
	xf := T{P: Vec2(3, 4), R: FromAngle(PI / 5)}
	local := Vec2(1, 2)
	world := xf.Apply(local)
	back := xf.ApplyT(world)
	if !back.Aeq(local) {
		t.Errorf("ApplyT did not invert Apply: got %v want %v", back, local)
	}
}

func TestTransformMulT(t *testing.T) {
	a := T{P: Vec2(1, 0), R: FromAngle(PI / 2)}
	b := T{P: Vec2(0, 1), R: Ident()}
	// MulT(a, b) maps a point in b's frame into a's frame: a^-1 * b.
	rel := a.MulT(b)
	world := b.Apply(Vec2(2, 2))
	viaRel := a.Apply(rel.Apply(Vec2(2, 2)))
	if !world.Aeq(viaRel) {
		t.Errorf("MulT composition mismatch: got %v want %v", viaRel, world)
	}
}
