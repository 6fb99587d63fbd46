package rb2d

import "github.com/solidphys/rb2d/math/lin"

// World owns every body, collider, and transform in one simulation,
// plus the broad phase, overlap-pair table, and scratch state the step
// pipeline shares across its stages. A World is not safe for concurrent
// use: the scheduling model is single-threaded cooperative execution
// inside Step.
type World struct {
	settings Settings
	log      Logger

	entities *EntityHandler

	bodies     *BodyComponents
	colliders  *ColliderComponents
	transforms *TransformComponents

	// bodyTransformSlot cross-references a body entity to its row in
	// transforms, since BodyComponents and TransformComponents are
	// independent slotArrays whose partitions can reorder independently
	// of one another as bodies/transforms are added, removed, and put to
	// sleep.
	bodyTransformSlot map[Entity]int

	collisionDetection *CollisionDetection
	solver             *ContactSolver

	incompatiblePairs map[uint64]bool

	// pairScratch is handed to reconcileOverlapPairs as the starting
	// buffer for the broad phase's candidate pairs. The buffer that call
	// grows is not stored back here, so the candidate pairs are
	// reallocated every frame.
	pairScratch []Pair
}

// NewWorld creates an empty World configured by settings.
func NewWorld(settings Settings) *World {
	if settings.Allocator == nil {
		settings.Allocator = defaultAllocator{}
	}
	w := &World{
		settings:          settings,
		log:               settings.Logger,
		entities:          NewEntityHandler(),
		bodies:            newBodyComponents(),
		colliders:         newColliderComponents(),
		transforms:        newTransformComponents(),
		bodyTransformSlot: make(map[Entity]int),
		incompatiblePairs: make(map[uint64]bool),
	}
	w.collisionDetection = newCollisionDetection(w)
	w.solver = newContactSolver(w)
	return w
}

func (w *World) bodySlot(e Entity) int {
	slot, ok := w.bodies.rows.Slot(e)
	w.assertf(ok, "body entity %v is not alive", e)
	return slot
}

func (w *World) colliderRow(e Entity) *colliderRow {
	slot, ok := w.colliders.rows.Slot(e)
	w.assertf(ok, "collider entity %v is not alive", e)
	return w.colliders.get(slot)
}

// CreateBody allocates a new body entity of the given type at the given
// initial world transform, with its transform and body rows inserted
// awake.
func (w *World) CreateBody(bodyType BodyType, xf lin.T) Body {
	e := w.entities.Create()

	row := bodyRow{
		bodyType:       bodyType,
		linearDamping:  0,
		angularDamping: 0,
		gravityEnabled: bodyType == Dynamic,
		allowedToSleep: true,
		worldCenter:    xf.Apply(lin.V2{}),
	}
	w.bodies.insert(e, row, true)
	tSlot := w.transforms.insert(e, xf, true)
	w.bodyTransformSlot[e] = tSlot
	if last := w.transforms.rows.Len() - 1; last != tSlot {
		// The insert displaced a sleeping row to the tail.
		w.bodyTransformSlot[w.transforms.rows.EntityAt(last)] = last
	}

	return Body{w: w, e: e}
}

// DestroyBody removes b and every collider it owns.
func (w *World) DestroyBody(b Body) {
	e := b.e
	row := w.bodies.get(w.bodySlot(e))
	for _, ce := range append([]Entity(nil), row.colliders...) {
		w.removeCollider(ce)
	}

	w.bodies.remove(w.bodySlot(e))
	tSlot, ok := w.bodyTransformSlot[e]
	if ok {
		w.transforms.remove(tSlot)
		delete(w.bodyTransformSlot, e)
		// Remove swap-compacts rows into tSlot and the partition boundary.
		for _, s := range []int{tSlot, w.transforms.rows.AwakeLen()} {
			if s < w.transforms.rows.Len() {
				w.bodyTransformSlot[w.transforms.rows.EntityAt(s)] = s
			}
		}
	}
	w.entities.Destroy(e)
}

// addCollider attaches shape to bodyEntity at localTransform, registers
// it with the broad phase, and returns the new collider's entity
// wrapped as a handle.
func (w *World) addCollider(bodyEntity Entity, shape Shape, localTransform lin.T) Collider {
	bodySlot := w.bodySlot(bodyEntity)
	bodyRowPtr := w.bodies.get(bodySlot)
	bodyXf := w.transforms.get(w.bodyTransformSlot[bodyEntity])

	ce := w.entities.Create()
	row := colliderRow{
		body:           bodyEntity,
		shape:          shape,
		localTransform: localTransform,
		worldTransform: bodyXf.Mul(localTransform),
		material:       Material{Density: 1, Friction: w.settings.DefaultFriction, Restitution: w.settings.DefaultRestitution},
		category:       defaultCategory,
		filter:         defaultFilter,
		treeID:         -1,
	}
	awake := !bodyRowPtr.sleeping
	w.colliders.insert(ce, row, awake)
	bodyRowPtr.colliders = append(bodyRowPtr.colliders, ce)

	w.collisionDetection.addCollider(ce)
	return Collider{w: w, e: ce}
}

// removeCollider detaches collider entity ce from its body and
// unregisters it from the broad phase.
func (w *World) removeCollider(ce Entity) {
	row := w.colliderRow(ce)
	bodyEntity := row.body
	w.collisionDetection.removeCollider(ce)

	bodyRowPtr := w.bodies.get(w.bodySlot(bodyEntity))
	for i, c := range bodyRowPtr.colliders {
		if c == ce {
			bodyRowPtr.colliders = append(bodyRowPtr.colliders[:i], bodyRowPtr.colliders[i+1:]...)
			break
		}
	}

	slot, ok := w.colliders.rows.Slot(ce)
	if ok {
		w.colliders.remove(slot)
	}
	w.entities.Destroy(ce)
}

func (w *World) forceRetestCollider(e Entity) {
	w.collisionDetection.forceRetestCollider(e)
}

// syncColliderTransforms recomputes the world transform of every
// collider owned by b from its (just-changed) body transform, e.g. after
// Body.SetTransform.
func (w *World) syncColliderTransforms(b Body) {
	row := w.bodies.get(w.bodySlot(b.e))
	bodyXf := w.transforms.get(w.bodyTransformSlot[b.e])
	for _, ce := range row.colliders {
		cRow := w.colliderRow(ce)
		cRow.worldTransform = bodyXf.Mul(cRow.localTransform)
		if cRow.treeID >= 0 {
			w.collisionDetection.broadPhase.UpdateCollider(cRow.treeID, cRow.shape.ComputeAABB(cRow.worldTransform), true)
		}
	}
}

// DisableCollisionBetween marks the unordered pair (a, b) as never
// colliding, regardless of category/filter masks.
func (w *World) DisableCollisionBetween(a, b Body) {
	w.incompatiblePairs[entityPairKey(a.e, b.e)] = true
}

// EnableCollisionBetween undoes a prior DisableCollisionBetween.
func (w *World) EnableCollisionBetween(a, b Body) {
	delete(w.incompatiblePairs, entityPairKey(a.e, b.e))
}

func (w *World) pairIsCompatible(a, b Entity) bool {
	return !w.incompatiblePairs[entityPairKey(a, b)]
}

func entityPairKey(a, b Entity) uint64 {
	return pairID(int32(a), int32(b))
}

// setBodyAwake moves a single body (and its transform and colliders)
// across the awake/sleeping partition boundary. Waking a sleeping body
// reachable from an awake one through a contact pair is handled by
// buildIslands, which calls Body.wake (and so this) for every body it
// pulls into an island.
func (w *World) setBodyAwake(e Entity, awake bool) {
	bodySlot, ok := w.bodies.rows.Slot(e)
	if !ok {
		return
	}
	row := w.bodies.get(bodySlot)
	row.sleeping = !awake
	// Copy the collider list out before the partition swap below, since
	// that swap moves struct values (including this slice header) across
	// slots and row would otherwise alias the wrong body afterward.
	colliders := append([]Entity(nil), row.colliders...)

	w.bodies.rows.SetAwake(bodySlot, awake)

	if tSlot, ok := w.bodyTransformSlot[e]; ok {
		newSlot := w.transforms.rows.SetAwake(tSlot, awake)
		w.bodyTransformSlot[e] = newSlot
		w.bodyTransformSlot[w.transforms.rows.EntityAt(tSlot)] = tSlot
	}

	for _, ce := range colliders {
		if cSlot, ok := w.colliders.rows.Slot(ce); ok {
			w.colliders.rows.SetAwake(cSlot, awake)
		}
	}
}

// Step advances the simulation by dt seconds, running the full pipeline:
// broad-phase update, overlap-pair reconciliation, narrow phase, island
// construction, the sequential impulse solver, integration, write-back,
// and sleep accounting.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}

	prevManifolds := make(map[uint64]LocalManifold, len(w.collisionDetection.manifolds))
	for i := range w.collisionDetection.manifolds {
		mr := &w.collisionDetection.manifolds[i]
		prevManifolds[w.collisionDetection.contacts[i].pairID] = mr.manifold
	}

	w.collisionDetection.updateColliders()
	w.collisionDetection.reconcileOverlapPairs(w.pairScratch)
	w.collisionDetection.runNarrowPhaseAndBuildContacts(prevManifolds)

	islands, bodyRun, manifoldRun, _ := w.buildIslands()

	w.initializeConstrainedState()
	w.integrateVelocities(dt)

	for i := range islands {
		isl := &islands[i]
		indices := manifoldRun[isl.manifoldStart : isl.manifoldStart+isl.manifoldCount]

		w.solver.initializeVelocityConstraints(indices, w.settings.RestitutionThreshold)
		w.solver.warmStart()
		for iter := 0; iter < w.settings.VelocityIterations; iter++ {
			w.solver.solveVelocityConstraints()
		}
		w.solver.storeImpulses()
	}

	w.integratePositions(dt)

	for i := range islands {
		isl := &islands[i]
		indices := manifoldRun[isl.manifoldStart : isl.manifoldStart+isl.manifoldCount]

		solved := true
		for iter := 0; iter < w.settings.PositionIterations; iter++ {
			minSep := w.solver.solvePositionConstraints(indices, w.settings.Baumgarte, w.settings.LinearSlop, w.settings.MaxLinearCorrection)
			if minSep < -3*w.settings.LinearSlop {
				solved = false
			}
		}
		isl.solved = solved
	}

	w.writeBackConstrainedState()

	if w.settings.SleepingEnabled {
		w.updateSleep(dt, islands, bodyRun)
	}

	w.clearIslandBookkeeping()
	w.settings.Allocator.Reset()
}

// updateSleep first advances (or resets, on a still-moving body) every
// awake dynamic body's own sleep timer from its instantaneous velocity,
// then for each solved island whose every dynamic member has been
// quiescent for at least SleepTime seconds, puts the whole island to
// sleep together.
func (w *World) updateSleep(dt float64, islands []island, bodyRun []Entity) {
	rows := w.bodies.rows

	for slot := 0; slot < rows.AwakeLen(); slot++ {
		row := rows.At(slot)
		if row.bodyType != Dynamic || !row.allowedToSleep {
			row.sleepTime = 0
			continue
		}
		quiescent := row.linearVelocity.LenSqr() <= w.settings.SleepLinearVelocity*w.settings.SleepLinearVelocity &&
			row.angularVelocity*row.angularVelocity <= w.settings.SleepAngularSpeed*w.settings.SleepAngularSpeed
		if quiescent {
			row.sleepTime += dt
		} else {
			row.sleepTime = 0
		}
	}

	for i := range islands {
		isl := &islands[i]
		if !isl.solved {
			continue
		}

		members := bodyRun[isl.bodyStart : isl.bodyStart+isl.bodyCount]
		minSleepTime := lin.Large
		canSleep := true
		for _, e := range members {
			row := w.bodies.get(w.bodySlot(e))
			if row.bodyType != Dynamic {
				continue
			}
			if !row.allowedToSleep {
				canSleep = false
				break
			}
			if row.sleepTime < minSleepTime {
				minSleepTime = row.sleepTime
			}
		}

		if !canSleep || minSleepTime < w.settings.SleepTime {
			continue
		}
		for _, e := range members {
			w.setBodyAwake(e, false)
		}
	}
}
