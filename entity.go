package rb2d

// Entity is a stable handle to a slot in one of the component arrays
// (body, collider, transform). It packs a 24-bit index and an 8-bit
// generation into a single 32-bit value: two entities compare equal iff
// both fields match, and a stale Entity (one whose generation has moved
// on) is detected rather than silently aliasing a reused slot.
type Entity uint32

const (
	entityIndexBits = 24
	entityIndexMask = (1 << entityIndexBits) - 1
	entityGenBits   = 8
	entityGenMask   = (1 << entityGenBits) - 1

	// nullIndex freeing threshold: an index is only handed back
	// out after at least this many indices have accumulated in the free
	// list, so a dangling Entity almost always gets caught by a
	// generation mismatch rather than aliasing a fresh object immediately.
	minFreedIndices = 1024
)

// InvalidEntity is never returned by EntityHandler.Create and never
// compares equal to a live entity.
const InvalidEntity Entity = Entity(entityIndexMask) // index == max, generation == 0

func makeEntity(index uint32, generation uint8) Entity {
	return Entity((index & entityIndexMask) | (uint32(generation) << entityIndexBits))
}

// Index returns the packed 24-bit slot index.
func (e Entity) Index() uint32 { return uint32(e) & entityIndexMask }

// Generation returns the packed 8-bit generation counter.
func (e Entity) Generation() uint8 { return uint8(uint32(e) >> entityIndexBits) }

// Valid reports whether e is not the sentinel InvalidEntity value.
func (e Entity) Valid() bool { return e != InvalidEntity }

// EntityHandler owns entity identity: it allocates indices, bumps
// generations on release, and only reuses an index once enough other
// indices have also been freed so a lingering stale handle is
// caught with overwhelming probability rather than aliasing live data.
type EntityHandler struct {
	generations []uint8
	freeIndices []uint32
}

// NewEntityHandler creates an empty entity handler.
func NewEntityHandler() *EntityHandler {
	return &EntityHandler{
		generations: make([]uint8, 0, 64),
		freeIndices: make([]uint32, 0, 64),
	}
}

// Create allocates a new Entity, reusing a previously freed index when the
// free list has grown past minFreedIndices, otherwise appending a new slot.
func (h *EntityHandler) Create() Entity {
	if len(h.freeIndices) >= minFreedIndices {
		index := h.freeIndices[0]
		h.freeIndices = h.freeIndices[1:]
		return makeEntity(index, h.generations[index])
	}
	index := uint32(len(h.generations))
	h.generations = append(h.generations, 0)
	return makeEntity(index, 0)
}

// Destroy invalidates e: its generation is bumped so any other Entity
// value sharing its index no longer compares as alive, and the index is
// queued for eventual reuse.
func (h *EntityHandler) Destroy(e Entity) {
	index := e.Index()
	if int(index) >= len(h.generations) {
		return
	}
	h.generations[index]++
	h.freeIndices = append(h.freeIndices, index)
}

// IsAlive reports whether e still refers to a live slot: the index is in
// range and its current generation matches e's.
func (h *EntityHandler) IsAlive(e Entity) bool {
	index := e.Index()
	if int(index) >= len(h.generations) {
		return false
	}
	return h.generations[index] == e.Generation()
}
