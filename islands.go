package rb2d

// island is a connected component of the awake contact graph: a set of
// bodies and the manifolds between them, solved together because an
// impulse applied to one can propagate to any other in the same island.
// Manifolds and bodies are stored as
// contiguous runs in the world's per-step scratch slices so the solver
// can iterate an island without per-body indirection.
type island struct {
	bodyStart, bodyCount         int
	manifoldStart, manifoldCount int
	solved                       bool
}

// buildIslands performs a stack-based depth-first search over the
// contact graph formed by cd.contacts, rooted at every awake, non-static
// body not yet visited. A static body participates in whatever islands
// touch it (so its immovable mass still resists the solver) but never
// propagates the search through itself: static bodies don't connect
// islands together. Kinematic bodies are treated like dynamic ones here.
//
// Returns the islands, the flattened body-entity and manifold-index runs
// referenced by each island's [bodyStart,bodyStart+bodyCount) and
// [manifoldStart,manifoldStart+manifoldCount) ranges, and a map from
// every manifold index placed in an island to that island's index.
func (w *World) buildIslands() (islands []island, bodies []Entity, manifolds []int, manifoldToIsland map[int]int) {
	visited := make(map[Entity]bool)
	manifoldToIsland = make(map[int]int)

	rows := w.bodies.rows
	var stack []Entity

	for slot := 0; slot < rows.AwakeLen(); slot++ {
		rootEntity := rows.EntityAt(slot)
		rootRow := rows.At(slot)
		if rootRow.bodyType == Static || visited[rootEntity] {
			continue
		}

		isl := island{bodyStart: len(bodies), manifoldStart: len(manifolds), solved: true}
		stack = append(stack[:0], rootEntity)
		visited[rootEntity] = true

		for len(stack) > 0 {
			e := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			bodySlot := w.bodySlot(e)
			row := w.bodies.get(bodySlot)
			if row.sleeping {
				// A sleeping body reachable from an awake root through a
				// contact pair wakes with the rest of the island; its slot
				// moves on waking, so the row pointer must be refetched.
				Body{w: w, e: e}.wake()
				bodySlot = w.bodySlot(e)
				row = w.bodies.get(bodySlot)
			}
			row.inIsland = true
			bodies = append(bodies, e)
			isl.bodyCount++

			for _, cpIndex := range row.contactPairs {
				cp := w.collisionDetection.contacts[cpIndex]
				other := cp.bodyA
				if other == e {
					other = cp.bodyB
				}

				if _, already := manifoldToIsland[cp.manifoldIndex]; !already {
					manifoldToIsland[cp.manifoldIndex] = len(islands)
					manifolds = append(manifolds, cp.manifoldIndex)
					isl.manifoldCount++
				}

				otherSlot := w.bodySlot(other)
				otherRow := w.bodies.get(otherSlot)
				if otherRow.bodyType == Static || visited[other] {
					continue
				}
				visited[other] = true
				stack = append(stack, other)
			}
		}

		islands = append(islands, isl)
	}

	return islands, bodies, manifolds, manifoldToIsland
}

// clearIslandBookkeeping resets every body's contact-pair list and
// in-island flag, sleeping and static bodies included, at the end of a
// step, since both are entirely frame-scoped.
func (w *World) clearIslandBookkeeping() {
	rows := w.bodies.rows
	for slot := 0; slot < rows.Len(); slot++ {
		row := rows.At(slot)
		row.inIsland = false
		row.contactPairs = row.contactPairs[:0]
	}
}
