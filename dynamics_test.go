package rb2d

import (
	"testing"

	"github.com/solidphys/rb2d/math/lin"
)

// Gravity must be ignored for a body whose gravity is explicitly
// disabled, and a free body (no damping, no forces) must keep a constant
// velocity after one step.
func TestIntegrateVelocitiesHonorsGravityEnabled(t *testing.T) {
	w := newTestWorld()

	b := w.CreateBody(Dynamic, lin.TIdent())
	b.AddCollider(NewCircleShape(1), lin.TIdent())
	b.SetMassPropertiesUsingColliders()
	b.SetGravityEnabled(false)

	w.initializeConstrainedState()
	w.integrateVelocities(1.0 / 60.0)

	row := b.row()
	if row.constrainedLinearVelocity != (lin.V2{}) {
		t.Errorf("expected zero velocity change with gravity disabled, got %v", row.constrainedLinearVelocity)
	}
}

func TestIntegrateVelocitiesAppliesGravity(t *testing.T) {
	w := newTestWorld()

	b := w.CreateBody(Dynamic, lin.TIdent())
	b.AddCollider(NewCircleShape(1), lin.TIdent())
	b.SetMassPropertiesUsingColliders()

	const dt = 1.0 / 60.0
	w.initializeConstrainedState()
	w.integrateVelocities(dt)

	row := b.row()
	want := w.settings.Gravity.Scale(dt)
	if row.constrainedLinearVelocity.Dist(want) > 1e-9 {
		t.Errorf("expected velocity %v after one step of gravity, got %v", want, row.constrainedLinearVelocity)
	}
}

func TestIntegrateVelocitiesSkipsStaticBodies(t *testing.T) {
	w := newTestWorld()

	ground := w.CreateBody(Static, lin.TIdent())
	ground.AddCollider(NewBoxShape(10, 1), lin.TIdent())
	ground.SetMassPropertiesUsingColliders()

	w.initializeConstrainedState()
	w.integrateVelocities(1.0 / 60.0)

	row := ground.row()
	if row.constrainedLinearVelocity != (lin.V2{}) {
		t.Errorf("expected a static body's constrained velocity to remain zero, got %v", row.constrainedLinearVelocity)
	}
}

func TestIntegratePositionsClampsTranslation(t *testing.T) {
	w := newTestWorld()

	b := w.CreateBody(Dynamic, lin.TIdent())
	b.AddCollider(NewCircleShape(1), lin.TIdent())
	b.SetMassPropertiesUsingColliders()

	w.initializeConstrainedState()
	row := b.row()
	row.constrainedLinearVelocity = lin.Vec2(1e6, 0)

	const dt = 1.0 / 60.0
	w.integratePositions(dt)

	moved := row.constrainedPosition.Len()
	if moved > w.settings.MaxTranslation+1e-9 {
		t.Errorf("expected translation clamped to MaxTranslation=%v, moved %v", w.settings.MaxTranslation, moved)
	}

	maxSpeed := w.settings.MaxTranslation / dt
	if row.constrainedLinearVelocity.Len() > maxSpeed+1e-6 {
		t.Errorf("expected constrained velocity scaled back to |v| <= %v, got %v", maxSpeed, row.constrainedLinearVelocity.Len())
	}
}

func TestIntegratePositionsClampsAngularSpeed(t *testing.T) {
	w := newTestWorld()

	b := w.CreateBody(Dynamic, lin.TIdent())
	b.AddCollider(NewCircleShape(1), lin.TIdent())
	b.SetMassPropertiesUsingColliders()

	w.initializeConstrainedState()
	row := b.row()
	row.constrainedAngularSpeed = 1e6

	const dt = 1.0 / 60.0
	w.integratePositions(dt)

	maxAngularSpeed := w.settings.MaxRotation / dt
	if row.constrainedAngularSpeed > maxAngularSpeed+1e-6 {
		t.Errorf("expected constrained angular speed scaled back to <= %v, got %v", maxAngularSpeed, row.constrainedAngularSpeed)
	}
}

func TestWriteBackConstrainedStateSyncsTransformAndColliders(t *testing.T) {
	w := newTestWorld()

	b := w.CreateBody(Dynamic, lin.T{P: lin.Vec2(1, 2), R: lin.Ident()})
	c := b.AddCollider(NewCircleShape(1), lin.TIdent())
	b.SetMassPropertiesUsingColliders()

	w.initializeConstrainedState()
	row := b.row()
	row.constrainedPosition = lin.Vec2(5, 6)
	row.constrainedOrientation = lin.FromAngle(0)

	w.writeBackConstrainedState()

	if b.Transform().P.Dist(lin.Vec2(5, 6)) > 1e-9 {
		t.Errorf("expected body transform to reflect the written-back position, got %v", b.Transform().P)
	}
	if (Collider{w: w, e: c.Entity()}).WorldTransform().P.Dist(lin.Vec2(5, 6)) > 1e-9 {
		t.Errorf("expected collider world transform synced after write-back")
	}
}
