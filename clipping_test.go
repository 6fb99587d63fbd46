package rb2d

import (
	"testing"

	"github.com/solidphys/rb2d/math/lin"
)

func TestClipSegmentToLineBothInside(t *testing.T) {
	in := [2]clipVertex{
		{v: lin.Vec2(-1, 0)},
		{v: lin.Vec2(1, 0)},
	}
	// Half-space x <= 5 keeps both points untouched.
	out, count := clipSegmentToLine(in, lin.Vec2(1, 0), 5, 0)
	if count != 2 {
		t.Fatalf("expected both points kept, got count=%d", count)
	}
	if out[0].v != in[0].v || out[1].v != in[1].v {
		t.Errorf("expected points unchanged, got %v", out)
	}
}

func TestClipSegmentToLineOneClipped(t *testing.T) {
	in := [2]clipVertex{
		{v: lin.Vec2(-2, 0)},
		{v: lin.Vec2(2, 0)},
	}
	// Half-space x <= 0: only the first point survives, plus a new
	// interpolated point at the crossing.
	out, count := clipSegmentToLine(in, lin.Vec2(1, 0), 0, 7)
	if count != 2 {
		t.Fatalf("expected 2 output points (1 original + 1 interpolated), got %d", count)
	}
	if out[0].v != in[0].v {
		t.Errorf("expected first surviving point unchanged, got %v", out[0].v)
	}
	if out[1].v.X < -1e-9 || out[1].v.X > 1e-9 {
		t.Errorf("expected interpolated point at x=0, got %v", out[1].v)
	}
	if out[1].feature.typeA != featureFace || out[1].feature.indexA != 7 {
		t.Errorf("expected interpolated point tagged with the clip edge, got %+v", out[1].feature)
	}
}

func TestClipSegmentToLineInterpolatedPointKeepsIncidentVertex(t *testing.T) {
	in := [2]clipVertex{
		{v: lin.Vec2(-2, 0), feature: contactFeature{indexB: 3}},
		{v: lin.Vec2(2, 0), feature: contactFeature{indexB: 9}},
	}
	out, count := clipSegmentToLine(in, lin.Vec2(1, 0), 0, 7)
	if count != 2 {
		t.Fatalf("expected 2 output points, got %d", count)
	}
	if out[1].feature.indexB != in[0].feature.indexB {
		t.Errorf("expected interpolated point to keep in[0]'s incident vertex index %d, got %d", in[0].feature.indexB, out[1].feature.indexB)
	}
}

func TestClipSegmentToLineBothOutside(t *testing.T) {
	in := [2]clipVertex{
		{v: lin.Vec2(1, 0)},
		{v: lin.Vec2(2, 0)},
	}
	out, count := clipSegmentToLine(in, lin.Vec2(1, 0), 0, 0)
	if count != 0 {
		t.Errorf("expected no points to survive, got %d: %v", count, out)
	}
}
