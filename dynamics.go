package rb2d

import (
	"math"

	"github.com/solidphys/rb2d/math/lin"
)

// initializeConstrainedState seeds every awake body's solver-scratch
// fields from its current persistent state, the starting point the
// velocity/position solvers nudge away from this step.
func (w *World) initializeConstrainedState() {
	rows := w.bodies.rows
	for slot := 0; slot < rows.AwakeLen(); slot++ {
		row := rows.At(slot)
		row.constrainedLinearVelocity = row.linearVelocity
		row.constrainedAngularSpeed = row.angularVelocity
		row.constrainedPosition = row.worldCenter
		row.constrainedOrientation = w.transforms.get(w.bodyTransformSlotByIndex(slot)).R
	}
}

// bodyTransformSlotByIndex resolves a body component slot to its paired
// transform row. Body and transform arrays are partitioned identically
// (both track the same awake/sleeping set) but are independent slotArray
// instances, so the World keeps an entity-indexed cross-reference rather
// than assuming matching slot numbers.
func (w *World) bodyTransformSlotByIndex(bodySlot int) int {
	e := w.bodies.rows.EntityAt(bodySlot)
	slot, ok := w.bodyTransformSlot[e]
	w.assertf(ok, "body at slot %d (entity %v) has no transform row", bodySlot, e)
	return slot
}

// integrateVelocities applies gravity, accumulated forces/torques, and
// damping to every awake dynamic body's constrained velocity, then clears
// the force/torque accumulators.
func (w *World) integrateVelocities(dt float64) {
	rows := w.bodies.rows
	for slot := 0; slot < rows.AwakeLen(); slot++ {
		row := rows.At(slot)
		if row.bodyType != Dynamic {
			continue
		}

		v := row.constrainedLinearVelocity
		omega := row.constrainedAngularSpeed

		if row.gravityEnabled {
			v = v.MulAdd(w.settings.Gravity, dt)
		}
		v = v.MulAdd(row.force, row.invMass*dt)
		omega += row.invInertia * row.torque * dt

		v = v.Scale(1.0 / (1.0 + dt*row.linearDamping))
		omega *= 1.0 / (1.0 + dt*row.angularDamping)

		if v.LenSqr() > w.settings.MaxLinearVelocitySq {
			v = v.Scale(math.Sqrt(w.settings.MaxLinearVelocitySq / v.LenSqr()))
		}

		row.constrainedLinearVelocity = v
		row.constrainedAngularSpeed = omega

		row.force = lin.V2{}
		row.torque = 0
	}
}

// integratePositions advances every awake body's constrained position
// and orientation by its constrained velocity over dt, clamping both the
// translation and rotation so a single step can never move a body
// further than MaxTranslation/MaxRotation, a safety net against
// numerical blow-ups from a degenerate solve.
func (w *World) integratePositions(dt float64) {
	rows := w.bodies.rows
	for slot := 0; slot < rows.AwakeLen(); slot++ {
		row := rows.At(slot)
		if row.bodyType == Static {
			continue
		}

		translation := row.constrainedLinearVelocity.Scale(dt)
		if translation.LenSqr() > w.settings.MaxTranslation*w.settings.MaxTranslation {
			ratio := w.settings.MaxTranslation / translation.Len()
			translation = translation.Scale(ratio)
			row.constrainedLinearVelocity = row.constrainedLinearVelocity.Scale(ratio)
		}

		rotation := row.constrainedAngularSpeed * dt
		if math.Abs(rotation) > w.settings.MaxRotation {
			maxAngularSpeed := w.settings.MaxRotation / dt
			rotation = math.Copysign(w.settings.MaxRotation, rotation)
			row.constrainedAngularSpeed = math.Copysign(maxAngularSpeed, row.constrainedAngularSpeed)
		}

		row.constrainedPosition = row.constrainedPosition.Add(translation)
		row.constrainedOrientation = row.constrainedOrientation.Mul(lin.FromAngle(rotation))
	}
}

// writeBackConstrainedState copies each awake body's solver-scratch
// state into its persistent components: the transform's rotation comes
// directly from the constrained orientation, and its position is
// recovered from the constrained center of mass
// (centerOfMassWorld - rotation * centerOfMassLocal), then every awake
// collider's cached world transform is recomputed.
func (w *World) writeBackConstrainedState() {
	rows := w.bodies.rows
	for slot := 0; slot < rows.AwakeLen(); slot++ {
		row := rows.At(slot)
		row.linearVelocity = row.constrainedLinearVelocity
		row.angularVelocity = row.constrainedAngularSpeed
		row.worldCenter = row.constrainedPosition

		origin := row.constrainedPosition.Sub(row.constrainedOrientation.Apply(row.localCenter))
		xf := lin.T{P: origin, R: row.constrainedOrientation}
		w.transforms.set(w.bodyTransformSlotByIndex(slot), xf)
	}

	w.syncAllColliderTransforms()
}

// syncAllColliderTransforms recomputes every awake collider's cached
// world transform from its owning body's (just-updated) transform. The
// broad phase's AABBs are refreshed from these at the start of the next
// Step, not here.
func (w *World) syncAllColliderTransforms() {
	rows := w.colliders.rows
	for slot := 0; slot < rows.AwakeLen(); slot++ {
		row := rows.At(slot)
		bodyXf := w.transforms.get(w.bodyTransformSlot[row.body])
		row.worldTransform = bodyXf.Mul(row.localTransform)
	}
}
