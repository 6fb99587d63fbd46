package rb2d

import (
	"testing"

	"github.com/solidphys/rb2d/math/lin"
)

func TestContactFeatureKeyDistinguishesFields(t *testing.T) {
	base := contactFeature{indexA: 1, indexB: 2, typeA: featureFace, typeB: featureVertex}
	variants := []contactFeature{
		{indexA: 2, indexB: 2, typeA: featureFace, typeB: featureVertex},
		{indexA: 1, indexB: 3, typeA: featureFace, typeB: featureVertex},
		{indexA: 1, indexB: 2, typeA: featureVertex, typeB: featureVertex},
		{indexA: 1, indexB: 2, typeA: featureFace, typeB: featureFace},
	}
	for i, v := range variants {
		if v.key() == base.key() {
			t.Errorf("variant %d expected a different key than base, both got %d", i, v.key())
		}
	}
}

func TestContactFeatureKeyStableForEqualFields(t *testing.T) {
	a := contactFeature{indexA: 4, indexB: 5, typeA: featureFace, typeB: featureVertex}
	b := contactFeature{indexA: 4, indexB: 5, typeA: featureFace, typeB: featureVertex}
	if a.key() != b.key() {
		t.Errorf("expected identical features to produce identical keys")
	}
}

func TestComputeWorldManifoldCircles(t *testing.T) {
	m := LocalManifold{
		Type:       manifoldCircles,
		LocalPoint: lin.Vec2(0, 0),
		PointCount: 1,
		Points:     [maxManifoldPoints]manifoldPoint{{localPoint: lin.Vec2(0, 0)}},
	}
	xfA := lin.T{P: lin.Vec2(0, 0), R: lin.Ident()}
	xfB := lin.T{P: lin.Vec2(1.5, 0), R: lin.Ident()}

	wm := computeWorldManifold(&m, xfA, 1, xfB, 1)

	if wm.normal.Dist(lin.Vec2(1, 0)) > 1e-9 {
		t.Errorf("expected normal (1,0), got %v", wm.normal)
	}
	wantSeparation := 1.5 - 1 - 1
	if wm.points[0].separation < wantSeparation-1e-9 || wm.points[0].separation > wantSeparation+1e-9 {
		t.Errorf("expected separation near %v, got %v", wantSeparation, wm.points[0].separation)
	}
}

func TestComputeWorldManifoldEmpty(t *testing.T) {
	var m LocalManifold
	wm := computeWorldManifold(&m, lin.TIdent(), 1, lin.TIdent(), 1)
	if wm.normal != (lin.V2{}) {
		t.Errorf("expected a zero-value world manifold for an empty input, got %+v", wm)
	}
}
