package rb2d

import (
	"math"

	"github.com/solidphys/rb2d/math/lin"
)

// contactPair is the frame-scoped record linking one overlap pair to its
// resolved narrow-phase manifold and the two bodies it touches. It is
// rebuilt every step from scratch; nothing about
// it survives across steps except by way of the warm-started impulses
// copied forward into the new manifold.
type contactPair struct {
	pairID            uint64
	bodyA, bodyB      Entity
	colliderA, colliderB Entity
	manifoldIndex     int // index into CollisionDetection.manifolds for this step.
	inIsland          bool
}

// manifoldRecord pairs a resolved LocalManifold with enough context
// (whether it was flipped relative to canonical order, the colliders and
// bodies it joins in A/B order, and the mixed friction and restitution)
// for the world-manifold pass and the contact solver.
type manifoldRecord struct {
	manifold  LocalManifold
	flipped   bool
	colliderA Entity
	colliderB Entity
	bodyA     Entity
	bodyB     Entity
	friction  float64
	restitution float64
}

// CollisionDetection orchestrates the broad phase, the overlap-pair
// table, and the narrow phase into the frame-scoped contactPair/manifold
// arrays the island builder and solver consume.
type CollisionDetection struct {
	w *World

	broadPhase *BroadPhase
	pairs      *overlapPairTable

	contacts  []contactPair
	manifolds []manifoldRecord

	// prevManifoldType remembers, by pairID, which face was the reference
	// face last step, so polygon-polygon collision can apply the
	// hysteresis bias instead of re-deciding from scratch
	// every frame.
	prevManifoldType map[uint64]manifoldType
}

func newCollisionDetection(w *World) *CollisionDetection {
	return &CollisionDetection{
		w:                w,
		broadPhase:       NewBroadPhase(),
		pairs:            newOverlapPairTable(),
		prevManifoldType: make(map[uint64]manifoldType),
	}
}

func (cd *CollisionDetection) colliderWorldAABB(e Entity) AABB {
	row := cd.w.colliderRow(e)
	return row.shape.ComputeAABB(row.worldTransform)
}

// addCollider registers a newly attached collider with the broad phase.
func (cd *CollisionDetection) addCollider(e Entity) {
	row := cd.w.colliderRow(e)
	row.treeID = cd.broadPhase.AddCollider(int32(e), cd.colliderWorldAABB(e))
}

// removeCollider unregisters a collider and drops every overlap pair
// that referenced it.
func (cd *CollisionDetection) removeCollider(e Entity) {
	row := cd.w.colliderRow(e)
	if row.treeID < 0 {
		return
	}
	cd.broadPhase.RemoveCollider(row.treeID)
	for _, id := range append([]uint64(nil), row.overlapPairs...) {
		if slot, ok := cd.pairs.slots[id]; ok {
			cd.pairs.removeAt(slot)
		}
	}
	row.overlapPairs = nil
	row.treeID = -1
}

// forceRetestCollider marks every overlap pair touching e's tree leaf for
// retest, e.g. after a category/filter change.
func (cd *CollisionDetection) forceRetestCollider(e Entity) {
	row := cd.w.colliderRow(e)
	if row.treeID < 0 {
		return
	}
	cd.broadPhase.UpdateCollider(row.treeID, cd.colliderWorldAABB(e), true)
	cd.retestPairsTouching(row)
}

// updateColliders refreshes the broad-phase AABB of every awake
// collider's tree leaf from its current world transform.
func (cd *CollisionDetection) updateColliders() {
	rows := cd.w.colliders.rows
	for slot := 0; slot < rows.AwakeLen(); slot++ {
		row := rows.At(slot)
		if row.treeID < 0 {
			continue
		}
		aabb := row.shape.ComputeAABB(row.worldTransform)
		reinserted := cd.broadPhase.UpdateCollider(row.treeID, aabb, row.sizeChanged)
		if reinserted || row.sizeChanged {
			cd.retestPairsTouching(row)
		}
		row.sizeChanged = false
	}
}

// retestPairsTouching clears the retest flag's inverse: it flags every
// existing overlap pair that touches row's collider so step 2 of
// reconciliation re-verifies the AABBs still overlap instead of trusting
// a stale pair.
func (cd *CollisionDetection) retestPairsTouching(row *colliderRow) {
	for _, id := range row.overlapPairs {
		if p, ok := cd.pairs.get(id); ok {
			p.retest = true
		}
	}
}

// reconcileOverlapPairs runs the broad phase, then reconciles its
// candidate (treeIdA, treeIdB) pairs against the live overlap-pair table
//:
//
//  1. Skip a candidate if the two colliders share a body, if neither
//     body can actually move (both static/disabled), or the category and
//     filter masks mutually exclude collision. Otherwise look up pairId:
//     create if absent, else clear its retest flag (still overlapping).
//  2. Any pair left with retest still set (it was marked for retest and
//     not reconfirmed in step 1 this frame) is removed if its fat AABBs
//     no longer overlap or its colliders' masks no longer allow
//     collision; otherwise it is kept.
func (cd *CollisionDetection) reconcileOverlapPairs(scratch []Pair) {
	scratch = cd.broadPhase.ComputeOverlapPairs(scratch[:0])

	for _, cand := range scratch {
		if cand.A == cand.B {
			continue
		}
		colliderA := Entity(cd.broadPhase.ColliderSlot(cand.A))
		colliderB := Entity(cd.broadPhase.ColliderSlot(cand.B))
		rowA := cd.w.colliderRow(colliderA)
		rowB := cd.w.colliderRow(colliderB)

		if rowA.body == rowB.body {
			continue
		}
		bodyDataA := cd.w.bodies.get(cd.w.bodySlot(rowA.body))
		bodyDataB := cd.w.bodies.get(cd.w.bodySlot(rowB.body))
		if bodyDataA.bodyType == Static && bodyDataB.bodyType == Static {
			continue
		}
		if !cd.w.pairIsCompatible(rowA.body, rowB.body) {
			continue
		}
		if !canCollide(rowA.category, rowA.filter, rowB.category, rowB.filter) {
			continue
		}

		id := pairID(cand.A, cand.B)
		if existing, ok := cd.pairs.get(id); ok {
			existing.retest = false
			continue
		}

		left, right := cand.A, cand.B
		leftEntity, rightEntity := colliderA, colliderB
		leftShape, rightShape := rowA.shape.Type(), rowB.shape.Type()
		swapped := false
		if leftShape > rightShape {
			left, right = right, left
			leftEntity, rightEntity = rightEntity, leftEntity
			leftShape, rightShape = rightShape, leftShape
			swapped = true
		}
		algo := selectAlgorithm(leftShape, rightShape)
		if algo == algoNone {
			continue
		}

		p := overlapPair{
			id:          id,
			leftTree:    left,
			rightTree:   right,
			leftEntity:  leftEntity,
			rightEntity: rightEntity,
			algorithm:   algo,
			swapped:     swapped,
		}
		cd.pairs.add(p)
		rowA.overlapPairs = append(rowA.overlapPairs, id)
		rowB.overlapPairs = append(rowB.overlapPairs, id)
	}

	// Step 2: anything still flagged for retest never got reconfirmed
	// this frame; drop it if its fat AABBs no longer overlap at the tree
	// level or its masks no longer allow collision.
	for i := 0; i < len(cd.pairs.pairs); {
		p := cd.pairs.pairs[i]
		if p.retest {
			rowL, rowR := cd.w.colliderRow(p.leftEntity), cd.w.colliderRow(p.rightEntity)
			if !cd.broadPhase.FatAABB(p.leftTree).Overlaps(cd.broadPhase.FatAABB(p.rightTree)) ||
				!canCollide(rowL.category, rowL.filter, rowR.category, rowR.filter) {
				cd.dropPair(p)
				continue
			}
		}
		i++
	}
}

func (cd *CollisionDetection) dropPair(p overlapPair) {
	slot, ok := cd.pairs.slots[p.id]
	if !ok {
		return
	}
	cd.pairs.removeAt(slot)
	removeUint64(&cd.w.colliderRow(p.leftEntity).overlapPairs, p.id)
	removeUint64(&cd.w.colliderRow(p.rightEntity).overlapPairs, p.id)
	delete(cd.prevManifoldType, p.id)
}

func removeUint64(s *[]uint64, v uint64) {
	for i, x := range *s {
		if x == v {
			*s = append((*s)[:i], (*s)[i+1:]...)
			return
		}
	}
}

// runNarrowPhaseAndBuildContacts walks every live overlap pair, runs its
// narrow-phase algorithm, discards empty manifolds, and otherwise carries
// forward persistent impulses by matching contact keys against the
// previous frame's manifold for the same pairID, then registers the
// resulting contact pair on both bodies so warm-started impulses carry
// across frames.
func (cd *CollisionDetection) runNarrowPhaseAndBuildContacts(prevManifolds map[uint64]LocalManifold) {
	cd.contacts = cd.contacts[:0]
	cd.manifolds = cd.manifolds[:0]

	for _, p := range cd.pairs.pairs {
		colliderA := p.leftEntity
		colliderB := p.rightEntity
		rowA := cd.w.colliderRow(colliderA)
		rowB := cd.w.colliderRow(colliderB)

		if rowA.body == rowB.body {
			continue
		}
		bodyA := cd.w.bodies.get(cd.w.bodySlot(rowA.body))
		bodyB := cd.w.bodies.get(cd.w.bodySlot(rowB.body))
		if bodyA.sleeping && bodyB.sleeping {
			continue
		}

		preferA := true
		if prevType, ok := cd.prevManifoldType[p.id]; ok {
			preferA = prevType != manifoldFaceB
		}

		result := runNarrowPhase(p.algorithm, rowA.shape, rowA.worldTransform, rowB.shape, rowB.worldTransform, preferA)
		if result.manifold.PointCount == 0 {
			continue
		}
		cd.prevManifoldType[p.id] = result.manifold.Type

		finalA, finalB := colliderA, colliderB
		if result.flipped {
			finalA, finalB = colliderB, colliderA
		}

		carryWarmStart(&result.manifold, prevManifolds[p.id])

		cd.manifolds = append(cd.manifolds, manifoldRecord{
			manifold:    result.manifold,
			flipped:     result.flipped,
			colliderA:   finalA,
			colliderB:   finalB,
			bodyA:       cd.w.colliderRow(finalA).body,
			bodyB:       cd.w.colliderRow(finalB).body,
			friction:    combineFriction(cd.w.colliderRow(finalA).material, cd.w.colliderRow(finalB).material),
			restitution: combineRestitution(cd.w.colliderRow(finalA).material, cd.w.colliderRow(finalB).material),
		})
		idx := len(cd.manifolds) - 1

		cp := contactPair{
			pairID:    p.id,
			bodyA:     cd.w.colliderRow(finalA).body,
			bodyB:     cd.w.colliderRow(finalB).body,
			colliderA: finalA,
			colliderB: finalB,
			manifoldIndex: idx,
		}
		cd.contacts = append(cd.contacts, cp)
		cpIndex := len(cd.contacts) - 1

		cd.w.bodies.addContactPair(cd.w.bodySlot(cp.bodyA), cpIndex)
		cd.w.bodies.addContactPair(cd.w.bodySlot(cp.bodyB), cpIndex)
	}
}

// carryWarmStart copies accumulated normal/tangent impulses from prev
// into cur for every point whose contact key matches, so the solver
// starts this frame's iterations from last frame's converged impulses
// instead of zero.
func carryWarmStart(cur *LocalManifold, prev LocalManifold) {
	if prev.PointCount == 0 {
		return
	}
	for i := 0; i < cur.PointCount; i++ {
		key := cur.Points[i].feature.key()
		for j := 0; j < prev.PointCount; j++ {
			if prev.Points[j].feature.key() == key {
				cur.Points[i].normalImpulse = prev.Points[j].normalImpulse
				cur.Points[i].tangentImpulse = prev.Points[j].tangentImpulse
				break
			}
		}
	}
}

// combineFriction/combineRestitution mix two materials' coefficients:
// geometric mean for friction, max for restitution.
func combineFriction(a, b Material) float64 {
	v := a.Friction * b.Friction
	if v <= 0 {
		return 0
	}
	return math.Sqrt(v)
}

func combineRestitution(a, b Material) float64 {
	return lin.Max(a.Restitution, b.Restitution)
}
