package rb2d

import "github.com/solidphys/rb2d/math/lin"

// maxConditionNumber bounds how ill-conditioned the two-point block
// solver's K matrix is allowed to be before falling back to solving each
// point independently; a nearly-singular K (near-parallel contact
// points) produces impulses too large to trust.
const maxConditionNumber = 1000.0

// velocityConstraintPoint is the per-point working state of a velocity
// constraint: the contact point's offsets from each body's center of
// mass, its normal/tangent effective masses, and the restitution bias
// velocity baked in once at initialization.
type velocityConstraintPoint struct {
	rA, rB         lin.V2
	normalMass     float64
	tangentMass    float64
	velocityBias   float64
	normalImpulse  float64
	tangentImpulse float64
}

// contactVelocityConstraint is one manifold's worth of velocity-solver
// state, built once per step from a manifoldRecord and its world
// manifold.
type contactVelocityConstraint struct {
	manifoldIndex int
	bodyA, bodyB  int // body component slots.
	invMassA, invMassB float64
	invIA, invIB       float64
	normal             lin.V2
	friction           float64
	restitution        float64
	points             [maxManifoldPoints]velocityConstraintPoint
	pointCount         int

	// normalMassBlock is the inverse of the 2x2 normal-impulse coupling
	// matrix K, used only when pointCount == 2 and K is well-conditioned.
	normalMassBlock lin.M22
	blockValid      bool
}

// ContactSolver owns the per-step velocity and position constraint
// arrays derived from the current island's manifolds, and the iteration
// loops that consume them.
type ContactSolver struct {
	w           *World
	velocityConstraints []contactVelocityConstraint
}

func newContactSolver(w *World) *ContactSolver {
	return &ContactSolver{w: w}
}

// initializeVelocityConstraints builds one contactVelocityConstraint per
// manifold index in manifoldIndices, computing effective masses and the
// restitution bias from each manifold's world-space points, and loads
// each point's carried-forward normal/tangent impulses. It does not
// apply them to the bodies' velocities; warmStart does that.
func (s *ContactSolver) initializeVelocityConstraints(manifoldIndices []int, restitutionThreshold float64) {
	s.velocityConstraints = s.velocityConstraints[:0]

	for _, mi := range manifoldIndices {
		mr := &s.w.collisionDetection.manifolds[mi]
		bodyASlot := s.w.bodySlot(mr.bodyA)
		bodyBSlot := s.w.bodySlot(mr.bodyB)
		bodyA := s.w.bodies.get(bodyASlot)
		bodyB := s.w.bodies.get(bodyBSlot)

		collA := s.w.colliderRow(mr.colliderA)
		collB := s.w.colliderRow(mr.colliderB)

		xfA := colliderWorldTransformFromConstrained(collA, bodyA)
		xfB := colliderWorldTransformFromConstrained(collB, bodyB)

		wm := computeWorldManifold(&mr.manifold, xfA, collA.shape.Radius(), xfB, collB.shape.Radius())

		vc := contactVelocityConstraint{
			manifoldIndex: mi,
			bodyA:         bodyASlot,
			bodyB:         bodyBSlot,
			invMassA:      bodyA.invMass,
			invMassB:      bodyB.invMass,
			invIA:         bodyA.invInertia,
			invIB:         bodyB.invInertia,
			normal:        wm.normal,
			friction:      mr.friction,
			restitution:   mr.restitution,
			pointCount:    mr.manifold.PointCount,
		}

		tangent := wm.normal.RPerp()

		for i := 0; i < vc.pointCount; i++ {
			rA := wm.points[i].point.Sub(bodyA.constrainedPosition)
			rB := wm.points[i].point.Sub(bodyB.constrainedPosition)

			rnA := rA.Cross(wm.normal)
			rnB := rB.Cross(wm.normal)
			kNormal := vc.invMassA + vc.invMassB + vc.invIA*rnA*rnA + vc.invIB*rnB*rnB
			normalMass := 0.0
			if kNormal > 0 {
				normalMass = 1.0 / kNormal
			}

			rtA := rA.Cross(tangent)
			rtB := rB.Cross(tangent)
			kTangent := vc.invMassA + vc.invMassB + vc.invIA*rtA*rtA + vc.invIB*rtB*rtB
			tangentMass := 0.0
			if kTangent > 0 {
				tangentMass = 1.0 / kTangent
			}

			relVel := relativeVelocity(bodyA, bodyB, rA, rB)
			relNormalVel := wm.normal.Dot(relVel)
			bias := 0.0
			if relNormalVel < -restitutionThreshold {
				bias = -vc.restitution * relNormalVel
			}

			vc.points[i] = velocityConstraintPoint{
				rA: rA, rB: rB,
				normalMass:   normalMass,
				tangentMass:  tangentMass,
				velocityBias: bias,
				// Warm start directly from the manifold's persistent
				// impulses, carried forward by contact key (collision.go).
				normalImpulse:  mr.manifold.Points[i].normalImpulse,
				tangentImpulse: mr.manifold.Points[i].tangentImpulse,
			}
		}

		if vc.pointCount == 2 {
			vc.blockValid = s.buildBlockSolver(&vc)
		}

		s.velocityConstraints = append(s.velocityConstraints, vc)
	}
}

// warmStart applies every velocity constraint point's carried-forward
// normal/tangent impulses to its bodies' constrained velocities, so the
// first velocity iteration starts from last frame's converged solution
// instead of zero.
func (s *ContactSolver) warmStart() {
	for i := range s.velocityConstraints {
		vc := &s.velocityConstraints[i]
		bodyA := s.w.bodies.get(vc.bodyA)
		bodyB := s.w.bodies.get(vc.bodyB)
		tangent := vc.normal.RPerp()

		for p := 0; p < vc.pointCount; p++ {
			pc := &vc.points[p]
			impulse := vc.normal.Scale(pc.normalImpulse).Add(tangent.Scale(pc.tangentImpulse))
			applyImpulse(bodyA, bodyB, pc.rA, pc.rB, impulse.Neg(), impulse)
		}
	}
}

// colliderWorldTransformFromConstrained derives a collider's world
// transform from its body's solver-scratch constrained center-of-mass
// position/orientation, without disturbing the body's actual transform
// (only written back once per step, in dynamics.go). constrainedPosition
// is the world center of mass, so the body's origin must be recovered
// before composing with the collider's body-local transform.
func colliderWorldTransformFromConstrained(c *colliderRow, b *bodyRow) lin.T {
	origin := b.constrainedPosition.Sub(b.constrainedOrientation.Apply(b.localCenter))
	bodyOrigin := lin.T{P: origin, R: b.constrainedOrientation}
	return bodyOrigin.Mul(c.localTransform)
}

func relativeVelocity(bodyA, bodyB *bodyRow, rA, rB lin.V2) lin.V2 {
	vB := bodyB.constrainedLinearVelocity.Add(lin.CrossScalar(bodyB.constrainedAngularSpeed, rB))
	vA := bodyA.constrainedLinearVelocity.Add(lin.CrossScalar(bodyA.constrainedAngularSpeed, rA))
	return vB.Sub(vA)
}

// buildBlockSolver computes the 2x2 K matrix coupling both contact
// points' normal impulses and inverts it, rejecting the inversion (and
// falling back to sequential single-point solving) when K is
// ill-conditioned.
func (s *ContactSolver) buildBlockSolver(vc *contactVelocityConstraint) bool {
	p1, p2 := vc.points[0], vc.points[1]

	rn1A := p1.rA.Cross(vc.normal)
	rn1B := p1.rB.Cross(vc.normal)
	rn2A := p2.rA.Cross(vc.normal)
	rn2B := p2.rB.Cross(vc.normal)

	k11 := vc.invMassA + vc.invMassB + vc.invIA*rn1A*rn1A + vc.invIB*rn1B*rn1B
	k22 := vc.invMassA + vc.invMassB + vc.invIA*rn2A*rn2A + vc.invIB*rn2B*rn2B
	k12 := vc.invMassA + vc.invMassB + vc.invIA*rn1A*rn2A + vc.invIB*rn1B*rn2B

	if k11*k11 >= maxConditionNumber*(k11*k22-k12*k12) {
		return false
	}

	k := lin.NewM22(k11, k12, k12, k22)
	inv, ok := k.Invert()
	if !ok {
		return false
	}
	vc.normalMassBlock = inv
	return true
}

// solveVelocityConstraints runs one sequential-impulse pass over every
// active velocity constraint: friction first (clamped to the current
// normal impulse, so friction never lags a full iteration behind normal),
// then the normal impulse itself (via
// the block solver when available).
func (s *ContactSolver) solveVelocityConstraints() {
	for i := range s.velocityConstraints {
		vc := &s.velocityConstraints[i]
		bodyA := s.w.bodies.get(vc.bodyA)
		bodyB := s.w.bodies.get(vc.bodyB)
		tangent := vc.normal.RPerp()

		for p := 0; p < vc.pointCount; p++ {
			pc := &vc.points[p]
			relVel := relativeVelocity(bodyA, bodyB, pc.rA, pc.rB)
			vt := relVel.Dot(tangent)
			lambda := pc.tangentMass * -vt

			maxFriction := vc.friction * pc.normalImpulse
			newImpulse := lin.Clamp(pc.tangentImpulse+lambda, -maxFriction, maxFriction)
			lambda = newImpulse - pc.tangentImpulse
			pc.tangentImpulse = newImpulse

			impulse := tangent.Scale(lambda)
			applyImpulse(bodyA, bodyB, pc.rA, pc.rB, impulse.Neg(), impulse)
		}

		if vc.pointCount == 2 && vc.blockValid {
			s.solveBlock(vc, bodyA, bodyB)
			continue
		}

		for p := 0; p < vc.pointCount; p++ {
			pc := &vc.points[p]
			relVel := relativeVelocity(bodyA, bodyB, pc.rA, pc.rB)
			vn := relVel.Dot(vc.normal)
			lambda := pc.normalMass * (-vn + pc.velocityBias)

			newImpulse := lin.Max(pc.normalImpulse+lambda, 0)
			lambda = newImpulse - pc.normalImpulse
			pc.normalImpulse = newImpulse

			impulse := vc.normal.Scale(lambda)
			applyImpulse(bodyA, bodyB, pc.rA, pc.rB, impulse.Neg(), impulse)
		}
	}
}

// solveBlock is Erin Catto's two-point sequential-impulse block solver:
// it tries, in order, "both points active", "point 1 only", "point 2
// only", and "neither" (Danzig's 4-case LCP enumeration for a 2x2
// problem), accepting the first candidate whose resulting impulses and
// post-solve relative velocities are all non-negative.
func (s *ContactSolver) solveBlock(vc *contactVelocityConstraint, bodyA, bodyB *bodyRow) {
	p1, p2 := &vc.points[0], &vc.points[1]

	a := lin.Vec2(p1.normalImpulse, p2.normalImpulse)

	relVel1 := relativeVelocity(bodyA, bodyB, p1.rA, p1.rB)
	relVel2 := relativeVelocity(bodyA, bodyB, p2.rA, p2.rB)
	rhs := lin.Vec2(
		relVel1.Dot(vc.normal)-p1.velocityBias,
		relVel2.Dot(vc.normal)-p2.velocityBias,
	)

	// Case 1: both points stay active. x = a - K^-1 * rhs.
	x := a.Sub(vc.normalMassBlock.Apply(rhs))
	if x.X >= 0 && x.Y >= 0 {
		applyBlockImpulse(bodyA, bodyB, vc, x.Sub(a))
		p1.normalImpulse, p2.normalImpulse = x.X, x.Y
		return
	}

	// Case 2: point 1 only — solve 1D for x1, then check the resulting
	// relative velocity at point 2 is still separating.
	x1 := lin.Max(-p1.normalMass*rhs.X, 0)
	if x1 > 0 {
		d1 := x1 - a.X
		impulse1 := vc.normal.Scale(d1)
		postRelVel2 := relVel2.Add(deltaVelocityFromImpulse(bodyA, bodyB, p1.rA, p1.rB, p2.rA, p2.rB, impulse1))
		if postRelVel2.Dot(vc.normal)-p2.velocityBias >= -lin.Epsilon {
			applyBlockImpulse(bodyA, bodyB, vc, lin.Vec2(d1, -a.Y))
			p1.normalImpulse, p2.normalImpulse = x1, 0
			return
		}
	}

	// Case 3: point 2 only, symmetric to case 2.
	x2 := lin.Max(-p2.normalMass*rhs.Y, 0)
	if x2 > 0 {
		d2 := x2 - a.Y
		impulse2 := vc.normal.Scale(d2)
		postRelVel1 := relVel1.Add(deltaVelocityFromImpulse(bodyA, bodyB, p2.rA, p2.rB, p1.rA, p1.rB, impulse2))
		if postRelVel1.Dot(vc.normal)-p1.velocityBias >= -lin.Epsilon {
			applyBlockImpulse(bodyA, bodyB, vc, lin.Vec2(-a.X, d2))
			p1.normalImpulse, p2.normalImpulse = 0, x2
			return
		}
	}

	// Case 4: neither point carries an impulse this iteration — both
	// were separating once the other's impulse was removed.
	applyBlockImpulse(bodyA, bodyB, vc, a.Neg())
	p1.normalImpulse, p2.normalImpulse = 0, 0
}

// deltaVelocityFromImpulse reports how much the relative velocity at
// contact point "at" (rAt on body A, rBt on body B) would change if
// impulse (along the normal, applied at rApplied/rBApplied) were
// applied, without mutating any body state. Used by the block solver's
// case 2/3 checks to predict the other point's post-impulse velocity.
func deltaVelocityFromImpulse(bodyA, bodyB *bodyRow, rApplied, rBApplied, rAt, rBt lin.V2, impulse lin.V2) lin.V2 {
	linear := impulse.Scale(bodyA.invMass + bodyB.invMass)
	angularB := lin.CrossScalar(bodyB.invInertia*rBApplied.Cross(impulse), rBt)
	angularA := lin.CrossScalar(bodyA.invInertia*rApplied.Cross(impulse), rAt)
	return linear.Add(angularB).Add(angularA)
}

func applyBlockImpulse(bodyA, bodyB *bodyRow, vc *contactVelocityConstraint, d lin.V2) {
	p1, p2 := vc.points[0], vc.points[1]
	impulse1 := vc.normal.Scale(d.X)
	impulse2 := vc.normal.Scale(d.Y)
	applyImpulse(bodyA, bodyB, p1.rA, p1.rB, impulse1.Neg(), impulse1)
	applyImpulse(bodyA, bodyB, p2.rA, p2.rB, impulse2.Neg(), impulse2)
}

func applyImpulse(bodyA, bodyB *bodyRow, rA, rB, impulseOnA, impulseOnB lin.V2) {
	bodyA.constrainedLinearVelocity = bodyA.constrainedLinearVelocity.MulAdd(impulseOnA, bodyA.invMass)
	bodyA.constrainedAngularSpeed += bodyA.invInertia * rA.Cross(impulseOnA)
	bodyB.constrainedLinearVelocity = bodyB.constrainedLinearVelocity.MulAdd(impulseOnB, bodyB.invMass)
	bodyB.constrainedAngularSpeed += bodyB.invInertia * rB.Cross(impulseOnB)
}

// storeImpulses writes each velocity constraint's converged normal and
// tangent impulses back into the manifold's points, so the next frame's
// collision detection can warm start from them.
func (s *ContactSolver) storeImpulses() {
	for _, vc := range s.velocityConstraints {
		mr := &s.w.collisionDetection.manifolds[vc.manifoldIndex]
		for i := 0; i < vc.pointCount; i++ {
			mr.manifold.Points[i].normalImpulse = vc.points[i].normalImpulse
			mr.manifold.Points[i].tangentImpulse = vc.points[i].tangentImpulse
		}
	}
}

// solvePositionConstraints runs one Baumgarte position-correction pass
// over the given manifold indices, directly nudging each body's
// constrained position/orientation (never its velocity) to relax
// penetration, and returns the minimum separation observed across every
// point. A island is considered solved
// once this minimum clears -3*linearSlop.
func (s *ContactSolver) solvePositionConstraints(manifoldIndices []int, baumgarte, linearSlop, maxLinearCorrection float64) float64 {
	minSeparation := lin.Large

	for _, mi := range manifoldIndices {
		mr := &s.w.collisionDetection.manifolds[mi]
		bodyASlot := s.w.bodySlot(mr.bodyA)
		bodyBSlot := s.w.bodySlot(mr.bodyB)
		bodyA := s.w.bodies.get(bodyASlot)
		bodyB := s.w.bodies.get(bodyBSlot)
		collA := s.w.colliderRow(mr.colliderA)
		collB := s.w.colliderRow(mr.colliderB)

		xfA := colliderWorldTransformFromConstrained(collA, bodyA)
		xfB := colliderWorldTransformFromConstrained(collB, bodyB)
		wm := computeWorldManifold(&mr.manifold, xfA, collA.shape.Radius(), xfB, collB.shape.Radius())

		for i := 0; i < mr.manifold.PointCount; i++ {
			sep := wm.points[i].separation
			if sep < minSeparation {
				minSeparation = sep
			}

			correction := lin.Clamp(baumgarte*(sep+linearSlop), -maxLinearCorrection, 0)
			if correction >= 0 {
				continue
			}

			rA := wm.points[i].point.Sub(bodyA.constrainedPosition)
			rB := wm.points[i].point.Sub(bodyB.constrainedPosition)
			rnA := rA.Cross(wm.normal)
			rnB := rB.Cross(wm.normal)
			k := bodyA.invMass + bodyB.invMass + bodyA.invInertia*rnA*rnA + bodyB.invInertia*rnB*rnB
			if k <= 0 {
				continue
			}
			lambda := -correction / k
			impulse := wm.normal.Scale(lambda)

			bodyA.constrainedPosition = bodyA.constrainedPosition.Sub(impulse.Scale(bodyA.invMass))
			bodyA.constrainedOrientation = integrateRot(bodyA.constrainedOrientation, -bodyA.invInertia*rA.Cross(impulse))
			bodyB.constrainedPosition = bodyB.constrainedPosition.Add(impulse.Scale(bodyB.invMass))
			bodyB.constrainedOrientation = integrateRot(bodyB.constrainedOrientation, bodyB.invInertia*rB.Cross(impulse))
		}
	}

	return minSeparation
}

// integrateRot composes r with the small rotation da (radians), used by
// the position solver which works in small per-iteration corrections
// rather than full per-step integration.
func integrateRot(r lin.Rot, da float64) lin.Rot {
	return r.Mul(lin.FromAngle(da))
}
