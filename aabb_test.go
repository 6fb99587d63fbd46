package rb2d

import (
	"testing"

	"github.com/solidphys/rb2d/math/lin"
)

func TestAABBOverlaps(t *testing.T) {
	a := NewAABB(lin.Vec2(0, 0), lin.Vec2(1, 1))
	b := NewAABB(lin.Vec2(0.5, 0.5), lin.Vec2(2, 2))
	c := NewAABB(lin.Vec2(5, 5), lin.Vec2(6, 6))
	if !a.Overlaps(b) {
		t.Errorf("expected a and b to overlap")
	}
	if a.Overlaps(c) {
		t.Errorf("expected a and c to not overlap")
	}
}

func TestAABBCombineContains(t *testing.T) {
	a := NewAABB(lin.Vec2(0, 0), lin.Vec2(1, 1))
	b := NewAABB(lin.Vec2(2, 2), lin.Vec2(3, 3))
	c := Combine(a, b)
	if !c.Contains(a) || !c.Contains(b) {
		t.Errorf("combined AABB must contain both inputs")
	}
	if c.Lower.X != 0 || c.Upper.X != 3 {
		t.Errorf("unexpected combined bounds: %v", c)
	}
}

func TestAABBInflate(t *testing.T) {
	a := NewAABB(lin.Vec2(0, 0), lin.Vec2(1, 1))
	inflated := a.Inflate(0.5)
	if !inflated.Contains(a) {
		t.Errorf("inflated AABB must contain the original")
	}
	if inflated.Lower.X != -0.5 || inflated.Upper.X != 1.5 {
		t.Errorf("unexpected inflated bounds: %v", inflated)
	}
}
