package rb2d

import (
	"testing"

	"github.com/solidphys/rb2d/math/lin"
)

func TestCollideCirclesOverlapping(t *testing.T) {
	a := NewCircleShape(1)
	b := NewCircleShape(1)
	xfA := lin.T{P: lin.Vec2(0, 0), R: lin.Ident()}
	xfB := lin.T{P: lin.Vec2(1.5, 0), R: lin.Ident()}

	m := collideCircles(a, xfA, b, xfB)

	if m.PointCount != 1 {
		t.Fatalf("expected 1 contact point, got %d", m.PointCount)
	}
	if m.Type != manifoldCircles {
		t.Errorf("expected manifoldCircles, got %v", m.Type)
	}
}

func TestCollideCirclesSeparated(t *testing.T) {
	a := NewCircleShape(1)
	b := NewCircleShape(1)
	xfA := lin.T{P: lin.Vec2(0, 0), R: lin.Ident()}
	xfB := lin.T{P: lin.Vec2(5, 0), R: lin.Ident()}

	m := collideCircles(a, xfA, b, xfB)

	if m.PointCount != 0 {
		t.Errorf("expected no contact for separated circles, got %d points", m.PointCount)
	}
}

func TestCollidePolygonAndCircleFaceRegion(t *testing.T) {
	box := NewBoxShape(1, 1)
	circle := NewCircleShape(0.5)
	xfBox := lin.TIdent()
	xfCircle := lin.T{P: lin.Vec2(0, 1.3), R: lin.Ident()}

	m := collidePolygonAndCircle(box, xfBox, circle, xfCircle)

	if m.PointCount != 1 {
		t.Fatalf("expected 1 contact point, got %d", m.PointCount)
	}
	if m.Type != manifoldFaceA {
		t.Errorf("expected manifoldFaceA, got %v", m.Type)
	}
	if m.LocalNormal.Y <= 0 {
		t.Errorf("expected face normal pointing up (+y), got %v", m.LocalNormal)
	}
}

func TestCollidePolygonAndCircleVertexRegion(t *testing.T) {
	box := NewBoxShape(1, 1)
	circle := NewCircleShape(0.5)
	xfBox := lin.TIdent()
	// Circle placed diagonally past the box's corner: falls in the vertex
	// Voronoi region, not directly over a face.
	xfCircle := lin.T{P: lin.Vec2(1.3, 1.3), R: lin.Ident()}

	m := collidePolygonAndCircle(box, xfBox, circle, xfCircle)

	if m.PointCount != 1 {
		t.Fatalf("expected 1 contact point, got %d", m.PointCount)
	}
	expectedNormal := lin.Vec2(1, 1).Unit()
	if m.LocalNormal.Dist(expectedNormal) > 1e-6 {
		t.Errorf("expected normal toward the corner %v, got %v", expectedNormal, m.LocalNormal)
	}
}

func TestCollidePolygonAndCircleNoOverlap(t *testing.T) {
	box := NewBoxShape(1, 1)
	circle := NewCircleShape(0.5)
	xfBox := lin.TIdent()
	xfCircle := lin.T{P: lin.Vec2(0, 10), R: lin.Ident()}

	m := collidePolygonAndCircle(box, xfBox, circle, xfCircle)
	if m.PointCount != 0 {
		t.Errorf("expected no contact, got %d points", m.PointCount)
	}
}
