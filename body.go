package rb2d

import "github.com/solidphys/rb2d/math/lin"

// BodyType determines how a body participates in simulation.
type BodyType uint8

const (
	// Static bodies never move: zero inverse mass and inertia, excluded
	// from islands except as a non-propagating participant.
	Static BodyType = iota
	// Dynamic bodies are moved by forces, gravity, and contacts.
	Dynamic
	// Kinematic bodies have nonzero velocity but zero inverse mass and
	// inertia: they move exactly as commanded and are never pushed by
	// contacts.
	Kinematic
)

// bodyRow is the dense row BodyComponents stores per body. Solver-scratch
// fields live alongside the persistent state rather than in a side table,
// matching a single flat Body struct.
type bodyRow struct {
	bodyType BodyType

	linearVelocity  lin.V2
	angularVelocity float64
	force           lin.V2
	torque          float64
	linearDamping   float64
	angularDamping  float64

	mass, invMass       float64
	inertia, invInertia float64
	localCenter         lin.V2
	worldCenter         lin.V2
	boundsRadius        float64

	sleepTime      float64
	gravityEnabled bool
	allowedToSleep bool
	sleeping       bool
	inIsland       bool

	colliders   []Entity
	contactPairs []int // frame-scoped indices into the current contact pair array.

	userData any

	// Solver-scratch state, regenerated every step.
	constrainedPosition       lin.V2
	constrainedOrientation    lin.Rot
	constrainedLinearVelocity lin.V2
	constrainedAngularSpeed   float64
}

// BodyComponents is the struct-of-arrays store for every body in a World.
type BodyComponents struct {
	rows *slotArray[bodyRow]
}

func newBodyComponents() *BodyComponents {
	return &BodyComponents{rows: newSlotArray[bodyRow]()}
}

func (c *BodyComponents) insert(e Entity, row bodyRow, awake bool) int {
	return c.rows.Insert(e, row, awake)
}

func (c *BodyComponents) remove(slot int) { c.rows.Remove(slot) }

func (c *BodyComponents) get(slot int) *bodyRow { return c.rows.At(slot) }

// addContactPair records that contact-pair index idx touches the body at
// slot. Called during collision detection; the list is frame-scoped and
// cleared by the island builder once it has consumed it.
func (c *BodyComponents) addContactPair(slot int, idx int) {
	row := c.rows.At(slot)
	row.contactPairs = append(row.contactPairs, idx)
}

func (c *BodyComponents) clearContactPairs(slot int) {
	c.rows.At(slot).contactPairs = c.rows.At(slot).contactPairs[:0]
}

// Body is a stable handle to a row in a World's BodyComponents, plus the
// collider/transform rows it owns. Mutators that change its type,
// transform, velocity, gravity setting, colliders, or applied forces and
// torques wake the body; the damping and user-data setters, ClearForces,
// ClearTorques and SetMassPropertiesUsingColliders do not.
type Body struct {
	w *World
	e Entity
}

// Entity returns the underlying stable entity handle.
func (b Body) Entity() Entity { return b.e }

func (b Body) slot() int {
	slot, ok := b.w.bodies.rows.Slot(b.e)
	b.w.assertf(ok, "body entity %v is not alive", b.e)
	return slot
}

func (b Body) row() *bodyRow { return b.w.bodies.get(b.slot()) }

// Type returns the body's motion type.
func (b Body) Type() BodyType { return b.row().bodyType }

// SetType changes the body's motion type and wakes it.
func (b Body) SetType(t BodyType) {
	row := b.row()
	row.bodyType = t
	if t != Dynamic {
		row.invMass, row.invInertia = 0, 0
	}
	b.wake()
}

// Transform returns the body's current world transform.
func (b Body) Transform() lin.T { return b.w.transforms.get(b.transformSlot()) }

func (b Body) transformSlot() int {
	slot, ok := b.w.bodyTransformSlot[b.e]
	b.w.assertf(ok, "body entity %v has no transform row", b.e)
	return slot
}

// SetTransform moves the body directly (not through integration) and
// wakes it.
func (b Body) SetTransform(xf lin.T) {
	b.w.transforms.set(b.transformSlot(), xf)
	row := b.row()
	row.worldCenter = xf.Apply(row.localCenter)
	b.wake()
	b.w.syncColliderTransforms(b)
}

// LinearVelocity returns the body's current linear velocity.
func (b Body) LinearVelocity() lin.V2 { return b.row().linearVelocity }

// SetLinearVelocity sets the body's linear velocity and wakes it.
func (b Body) SetLinearVelocity(v lin.V2) {
	b.row().linearVelocity = v
	b.wake()
}

// AngularVelocity returns the body's current angular speed (radians/s).
func (b Body) AngularVelocity() float64 { return b.row().angularVelocity }

// SetAngularVelocity sets the body's angular speed and wakes it.
func (b Body) SetAngularVelocity(omega float64) {
	b.row().angularVelocity = omega
	b.wake()
}

// LinearDamping returns the body's linear damping coefficient.
func (b Body) LinearDamping() float64 { return b.row().linearDamping }

// SetLinearDamping sets the body's linear damping coefficient.
func (b Body) SetLinearDamping(d float64) { b.row().linearDamping = d }

// AngularDamping returns the body's angular damping coefficient.
func (b Body) AngularDamping() float64 { return b.row().angularDamping }

// SetAngularDamping sets the body's angular damping coefficient.
func (b Body) SetAngularDamping(d float64) { b.row().angularDamping = d }

// Mass returns the body's total mass (zero for Static/Kinematic bodies).
func (b Body) Mass() float64 { return b.row().mass }

// InverseMass returns the body's inverse mass.
func (b Body) InverseMass() float64 { return b.row().invMass }

// Inertia returns the body's rotational inertia about its center of mass.
func (b Body) Inertia() float64 { return b.row().inertia }

// InverseInertia returns the body's inverse rotational inertia.
func (b Body) InverseInertia() float64 { return b.row().invInertia }

// LocalCenter returns the body's center of mass in its own local frame.
func (b Body) LocalCenter() lin.V2 { return b.row().localCenter }

// WorldCenter returns the body's center of mass in world space.
func (b Body) WorldCenter() lin.V2 { return b.row().worldCenter }

// BoundsRadius returns the cached radius of the smallest circle centered
// on the body's local origin that encloses every collider with positive
// mass attached to it, as of the last SetMassPropertiesUsingColliders
// call on it as a Dynamic body; for Static and Kinematic bodies that
// call leaves the value unchanged. Useful for a cheap conservative broad
// check before a more precise query.
func (b Body) BoundsRadius() float64 { return b.row().boundsRadius }

// GravityEnabled reports whether gravity applies to this body.
func (b Body) GravityEnabled() bool { return b.row().gravityEnabled }

// SetGravityEnabled toggles whether gravity applies to this body.
func (b Body) SetGravityEnabled(enabled bool) {
	b.row().gravityEnabled = enabled
	b.wake()
}

// AllowedToSleep reports whether this body may ever be put to sleep.
func (b Body) AllowedToSleep() bool { return b.row().allowedToSleep }

// SetAllowedToSleep toggles whether this body may ever be put to sleep.
// Disallowing sleep wakes the body immediately.
func (b Body) SetAllowedToSleep(allowed bool) {
	b.row().allowedToSleep = allowed
	if !allowed {
		b.wake()
	}
}

// Sleeping reports whether the body is currently asleep.
func (b Body) Sleeping() bool { return b.row().sleeping }

// UserData returns the opaque value previously set with SetUserData.
func (b Body) UserData() any { return b.row().userData }

// SetUserData attaches host-application state to the body; the core
// never reads this value itself.
func (b Body) SetUserData(v any) { b.row().userData = v }

// wake transitions the body (and its transform/collider rows) into the
// awake partition if it was sleeping, and resets its sleep timer. A body
// cannot sleep again the same step it was woken; callers achieve that by
// only running the sleep system once per step, after all mutators for
// the step have been applied.
func (b Body) wake() {
	row := b.row()
	row.sleepTime = 0
	if !row.sleeping {
		return
	}
	row.sleeping = false
	b.w.setBodyAwake(b.e, true)
}

// AddCollider attaches shape to the body at the given body-local
// transform, registers it with the broad phase, and returns a handle.
// Adding a collider wakes the body.
func (b Body) AddCollider(shape Shape, localTransform lin.T) Collider {
	c := b.w.addCollider(b.e, shape, localTransform)
	b.wake()
	return c
}

// RemoveCollider detaches and unregisters c from this body.
func (b Body) RemoveCollider(c Collider) {
	b.w.removeCollider(c.e)
	b.wake()
}

// Colliders returns the entities of every collider currently attached to
// this body.
func (b Body) Colliders() []Entity {
	out := make([]Entity, len(b.row().colliders))
	copy(out, b.row().colliders)
	return out
}

// ApplyForce adds f to the body's accumulated force, and the torque that
// f applied at worldPoint induces about the center of mass, to the
// body's accumulated torque. Wakes the body.
func (b Body) ApplyForce(f lin.V2, worldPoint lin.V2) {
	row := b.row()
	row.force = row.force.Add(f)
	row.torque += worldPoint.Sub(row.worldCenter).Cross(f)
	b.wake()
}

// ApplyForceToCenter adds f to the body's accumulated force without
// inducing torque. Wakes the body.
func (b Body) ApplyForceToCenter(f lin.V2) {
	row := b.row()
	row.force = row.force.Add(f)
	b.wake()
}

// ApplyTorque adds tau to the body's accumulated torque. Wakes the body.
func (b Body) ApplyTorque(tau float64) {
	b.row().torque += tau
	b.wake()
}

// ClearForces zeroes the body's accumulated force.
func (b Body) ClearForces() { b.row().force = lin.V2{} }

// ClearTorques zeroes the body's accumulated torque.
func (b Body) ClearTorques() { b.row().torque = 0 }

// SetMassPropertiesUsingColliders recomputes mass, inverse mass, inertia,
// inverse inertia, and both local/world centers of mass by summing
// density*area, area-weighted centroids, and parallel-axis-shifted
// per-shape inertias over every collider on this body. Static
// and Kinematic bodies always end up with zero mass/inertia from this
// call.
func (b Body) SetMassPropertiesUsingColliders() {
	row := b.row()
	if row.bodyType != Dynamic {
		row.mass, row.invMass = 0, 0
		row.inertia, row.invInertia = 0, 0
		row.localCenter = lin.V2{}
		row.worldCenter = b.Transform().Apply(row.localCenter)
		return
	}

	var totalMass, totalInertia float64
	var centerAccum lin.V2
	var boundsRadius float64

	for _, ce := range row.colliders {
		cRow := b.w.colliderRow(ce)
		md := cRow.shape.ComputeMass(cRow.material.Density)
		if md.Mass <= 0 {
			continue
		}
		totalMass += md.Mass
		worldLocalCentroid := cRow.localTransform.Apply(md.Centroid)
		centerAccum = centerAccum.Add(worldLocalCentroid.Scale(md.Mass))
		// Parallel axis theorem: shift shape inertia (about its own
		// centroid) to the body's local origin before summing, since we
		// don't yet know the combined center of mass.
		d2 := worldLocalCentroid.LenSqr()
		totalInertia += md.Inertia + md.Mass*d2

		r := worldLocalCentroid.Len() + cRow.shape.Radius()
		if poly, ok := cRow.shape.(*PolygonShape); ok {
			for i := 0; i < poly.Count; i++ {
				r = lin.Max(r, cRow.localTransform.Apply(poly.Vertices[i]).Len()+poly.Radius())
			}
		}
		if r > boundsRadius {
			boundsRadius = r
		}
	}

	if totalMass > 0 {
		row.mass = totalMass
		row.invMass = 1.0 / totalMass
		row.localCenter = centerAccum.Scale(1.0 / totalMass)
		// Shift inertia from the body's local origin to its actual
		// center of mass (inverse parallel axis theorem).
		totalInertia -= totalMass * row.localCenter.LenSqr()
	} else {
		row.mass = 1
		row.invMass = 1
		row.localCenter = lin.V2{}
	}

	if totalInertia > 0 {
		row.inertia = totalInertia
		row.invInertia = 1.0 / totalInertia
	} else {
		row.inertia, row.invInertia = 0, 0
	}

	row.boundsRadius = boundsRadius
	row.worldCenter = b.Transform().Apply(row.localCenter)
}
