package rb2d

import (
	"testing"

	"github.com/solidphys/rb2d/math/lin"
)

func TestCollidePolygonsFaceToFace(t *testing.T) {
	a := NewBoxShape(1, 1)
	b := NewBoxShape(1, 1)
	xfA := lin.TIdent()
	xfB := lin.T{P: lin.Vec2(0, 1.9), R: lin.Ident()}

	m := collidePolygons(a, xfA, b, xfB, true)

	if m.PointCount != 2 {
		t.Fatalf("expected a 2-point face manifold for stacked boxes, got %d", m.PointCount)
	}
	if m.Type != manifoldFaceA {
		t.Errorf("expected box A's top face to be the reference face, got %v", m.Type)
	}
	if m.LocalNormal.Y <= 0 {
		t.Errorf("expected reference normal pointing up, got %v", m.LocalNormal)
	}
}

func TestCollidePolygonsSeparated(t *testing.T) {
	a := NewBoxShape(1, 1)
	b := NewBoxShape(1, 1)
	xfA := lin.TIdent()
	xfB := lin.T{P: lin.Vec2(10, 10), R: lin.Ident()}

	m := collidePolygons(a, xfA, b, xfB, true)
	if m.PointCount != 0 {
		t.Errorf("expected no manifold for separated boxes, got %d points", m.PointCount)
	}
}

func TestCollidePolygonsHysteresisPrefersPriorReferenceFace(t *testing.T) {
	a := NewBoxShape(1, 1)
	b := NewBoxShape(1, 1)
	xfA := lin.TIdent()
	// Symmetric side-by-side overlap: A's right face and B's left face
	// are equally deep separating axes, so with preferA the hysteresis
	// bias must keep A as the reference face.
	xfB := lin.T{P: lin.Vec2(1.9, 0), R: lin.Ident()}

	m := collidePolygons(a, xfA, b, xfB, true)
	if m.Type != manifoldFaceA {
		t.Errorf("expected preferA=true to keep A as reference, got %v", m.Type)
	}
}

func TestFindMaxSeparationPicksDeepestFace(t *testing.T) {
	a := NewBoxShape(1, 1)
	b := NewBoxShape(1, 1)
	xfA := lin.TIdent()
	xfB := lin.T{P: lin.Vec2(0, 1.5), R: lin.Ident()}

	aToB := xfB.MulT(xfA)
	idx, sep := findMaxSeparation(a, b, aToB)

	// Box vertex winding from NewBoxShape: (-h,-h),(h,-h),(h,h),(-h,h), so
	// edge 2 (index 2->3) is the top face with normal (0,1).
	if idx != 2 {
		t.Errorf("expected top-face edge index 2, got %d", idx)
	}
	wantSep := 1.5 - 2.0
	if sep < wantSep-1e-9 || sep > wantSep+1e-9 {
		t.Errorf("expected separation near %v, got %v", wantSep, sep)
	}
}
