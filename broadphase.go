package rb2d

// BroadPhase wraps a DynamicTree with a collider-entity indirection and a
// "moved" set of tree ids that need retesting against the rest of the
// tree this frame. The moved set is keyed by tree id, not
// collider entity, so a single moved shape yields both possible query
// directions exactly once per frame.
type BroadPhase struct {
	tree *DynamicTree

	moved    map[int32]bool
	movedIDs []int32 // insertion-ordered for deterministic iteration.
}

// NewBroadPhase creates an empty broad phase.
func NewBroadPhase() *BroadPhase {
	return &BroadPhase{
		tree:  NewDynamicTree(),
		moved: make(map[int32]bool),
	}
}

func (bp *BroadPhase) markMoved(id int32) {
	if !bp.moved[id] {
		bp.moved[id] = true
		bp.movedIDs = append(bp.movedIDs, id)
	}
}

// AddCollider inserts a leaf for the collider's current world AABB,
// returning the assigned tree node id, and marks it moved so it gets
// tested against the rest of the tree this frame.
func (bp *BroadPhase) AddCollider(colliderSlot int32, aabb AABB) int32 {
	id := bp.tree.Insert(aabb, colliderSlot)
	bp.markMoved(id)
	return id
}

// RemoveCollider removes the leaf for treeID and drops it from the moved
// set, if present.
func (bp *BroadPhase) RemoveCollider(treeID int32) {
	bp.tree.Remove(treeID)
	if bp.moved[treeID] {
		delete(bp.moved, treeID)
		for i, id := range bp.movedIDs {
			if id == treeID {
				bp.movedIDs = append(bp.movedIDs[:i], bp.movedIDs[i+1:]...)
				break
			}
		}
	}
}

// UpdateCollider recomputes the tree entry for treeID from the collider's
// current world AABB. If the tree actually reinserted the leaf (it
// escaped its fat AABB) or force is set (e.g. after a shape resize), the
// leaf is re-added to the moved set and UpdateCollider reports true so
// the caller (collision detection) knows to force-retest every existing
// overlap pair touching this collider.
func (bp *BroadPhase) UpdateCollider(treeID int32, aabb AABB, force bool) bool {
	reinserted := bp.tree.Update(treeID, aabb, force)
	if reinserted {
		bp.markMoved(treeID)
	}
	return reinserted
}

// Pair is a candidate overlapping pair of tree ids emitted by the broad
// phase. Duplicates across a frame's pairs are expected and tolerated;
// the overlap-pair table deduplicates by its own derived pairId.
type Pair struct {
	A, B int32
}

// ComputeOverlapPairs drains the moved set, and for every previously
// moved leaf, queries the tree for overlaps against the rest of the tree,
// appending each (thisId, otherId) hit to out. The moved set is cleared
// as part of this call.
func (bp *BroadPhase) ComputeOverlapPairs(out []Pair) []Pair {
	for _, id := range bp.movedIDs {
		fat := bp.tree.FatAABB(id)
		bp.tree.QueryAABB(fat, func(other int32) bool {
			if other == id {
				return true
			}
			out = append(out, Pair{A: id, B: other})
			return true
		})
	}
	bp.moved = make(map[int32]bool)
	bp.movedIDs = bp.movedIDs[:0]
	return out
}

// FatAABB exposes the tree's stored fat AABB for treeID, used by the
// overlap-pair table's explicit retest path.
func (bp *BroadPhase) FatAABB(treeID int32) AABB { return bp.tree.FatAABB(treeID) }

// ColliderSlot returns the opaque collider slot stored at treeID.
func (bp *BroadPhase) ColliderSlot(treeID int32) int32 { return bp.tree.UserData(treeID) }
