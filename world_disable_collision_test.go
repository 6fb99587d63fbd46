package rb2d

import (
	"testing"

	"github.com/solidphys/rb2d/math/lin"
)

// Two overlapping bodies that would otherwise collide never generate a
// contact once DisableCollisionBetween is called, and collision resumes
// once re-enabled.
func TestDisableAndEnableCollisionBetween(t *testing.T) {
	w := newTestWorld()

	a := w.CreateBody(Dynamic, lin.T{P: lin.Vec2(0, 5), R: lin.Ident()})
	a.AddCollider(NewCircleShape(1), lin.TIdent())
	a.SetMassPropertiesUsingColliders()

	b := w.CreateBody(Dynamic, lin.T{P: lin.Vec2(0.5, 5), R: lin.Ident()})
	b.AddCollider(NewCircleShape(1), lin.TIdent())
	b.SetMassPropertiesUsingColliders()

	w.DisableCollisionBetween(a, b)

	const dt = 1.0 / 60.0
	for i := 0; i < 5; i++ {
		w.Step(dt)
	}

	if len(w.collisionDetection.contacts) != 0 {
		t.Errorf("expected no contacts while the pair is disabled, got %d", len(w.collisionDetection.contacts))
	}

	w.EnableCollisionBetween(a, b)
	for i := 0; i < 5; i++ {
		w.Step(dt)
	}

	if len(w.collisionDetection.contacts) == 0 {
		t.Errorf("expected contacts to resume once the pair is re-enabled")
	}
}

func TestEntityPairKeySymmetric(t *testing.T) {
	a, b := Entity(7), Entity(19)
	if entityPairKey(a, b) != entityPairKey(b, a) {
		t.Errorf("expected entityPairKey to be order-independent")
	}
}
