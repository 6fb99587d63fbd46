package rb2d

import (
	"testing"

	"github.com/solidphys/rb2d/math/lin"
)

func TestCircleMass(t *testing.T) {
	c := NewCircleShape(2)
	md := c.ComputeMass(1)
	wantArea := lin.PI * 4
	if !lin.Aeq(md.Mass, wantArea) {
		t.Errorf("expected mass %f, got %f", wantArea, md.Mass)
	}
	wantInertia := 0.5 * wantArea * 4
	if !lin.Aeq(md.Inertia, wantInertia) {
		t.Errorf("expected inertia %f, got %f", wantInertia, md.Inertia)
	}
}

func TestBoxMassAndCentroid(t *testing.T) {
	b := NewBoxShape(1, 2)
	md := b.ComputeMass(1)
	if !lin.Aeq(md.Mass, 8) {
		t.Errorf("expected mass 8 (2*1 x 2*2), got %f", md.Mass)
	}
	if !md.Centroid.Aeq(lin.Vec2(0, 0)) {
		t.Errorf("expected centroid at origin, got %v", md.Centroid)
	}
}

func TestPolygonNormalsOutward(t *testing.T) {
	b := NewBoxShape(1, 1)
	for i := 0; i < b.Count; i++ {
		mid := b.Vertices[i].Lerp(b.Vertices[(i+1)%b.Count], 0.5)
		// The normal should point away from the centroid.
		if b.Normals[i].Dot(mid.Sub(b.Centroid)) <= 0 {
			t.Errorf("normal %d does not point outward", i)
		}
	}
}

func TestPolygonPointInside(t *testing.T) {
	b := NewBoxShape(1, 1)
	xf := lin.TIdent()
	if !b.PointInside(xf, lin.Vec2(0, 0)) {
		t.Errorf("origin should be inside a box centered at origin")
	}
	if b.PointInside(xf, lin.Vec2(5, 5)) {
		t.Errorf("(5,5) should be outside a unit box")
	}
}

func TestCircleAABB(t *testing.T) {
	c := NewCircleShape(1)
	xf := lin.T{P: lin.Vec2(3, 4), R: lin.Ident()}
	ab := c.ComputeAABB(xf)
	if !ab.Lower.Aeq(lin.Vec2(2, 3)) || !ab.Upper.Aeq(lin.Vec2(4, 5)) {
		t.Errorf("unexpected circle AABB: %v", ab)
	}
}

func TestPolygonVertexCountValidation(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for a 2-vertex polygon")
		}
	}()
	NewPolygonShape([]lin.V2{{X: 0, Y: 0}, {X: 1, Y: 0}})
}
