package lin

import (
	"math"
	"testing"
)

func TestRotApplyInverse(t *testing.T) {
	r := FromAngle(PI / 3)
	v := Vec2(1, 2)
	rotated := r.Apply(v)
	back := r.ApplyT(rotated)
	if !back.Aeq(v) {
		t.Errorf("ApplyT did not invert Apply: got %v want %v", back, v)
	}
}

func TestRotMulComposesAngles(t *testing.T) {
	a := FromAngle(PI / 6)
	b := FromAngle(PI / 4)
	composed := a.Mul(b)
	want := PI/6 + PI/4
	if !Aeq(math.Mod(composed.Angle()+PIx2, PIx2), math.Mod(want+PIx2, PIx2)) {
		t.Errorf("expected angle %f, got %f", want, composed.Angle())
	}
}

func TestIdentRotation(t *testing.T) {
	v := Vec2(5, -3)
	if !Ident().Apply(v).Eq(v) {
		t.Errorf("identity rotation should not change v")
	}
}
