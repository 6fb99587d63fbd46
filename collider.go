package rb2d

import "github.com/solidphys/rb2d/math/lin"

// Material carries the per-collider physical coefficients used by mass
// aggregation and the contact solver.
type Material struct {
	Density     float64 // must be > 0.
	Friction    float64 // >= 0.
	Restitution float64 // in [0, 1].
}

const (
	// defaultCategory/defaultFilter are the defaults given to a freshly
	// created collider: it belongs to category bit 0 and collides with
	// everything.
	defaultCategory uint16 = 0x0001
	defaultFilter   uint16 = 0xFFFF
)

// colliderRow is the dense row ColliderComponents stores per collider.
// worldTransform is a cache recomputed every step
// from bodyTransform * localTransform so the narrow phase never has to
// chase the owning body.
type colliderRow struct {
	body           Entity
	shape          Shape
	localTransform lin.T
	worldTransform lin.T
	material       Material

	category uint16
	filter   uint16

	treeID int32 // -1 when unregistered with the broad phase.

	overlapPairs []uint64 // pairIds of every live overlap pair touching this collider.

	sizeChanged bool
}

// ColliderComponents is the struct-of-arrays store for every collider in
// a World.
type ColliderComponents struct {
	rows *slotArray[colliderRow]
}

func newColliderComponents() *ColliderComponents {
	return &ColliderComponents{rows: newSlotArray[colliderRow]()}
}

func (c *ColliderComponents) insert(e Entity, row colliderRow, awake bool) int {
	return c.rows.Insert(e, row, awake)
}

func (c *ColliderComponents) remove(slot int) { c.rows.Remove(slot) }

func (c *ColliderComponents) get(slot int) *colliderRow { return c.rows.At(slot) }

// Collider is a stable handle to a row in a World's ColliderComponents.
type Collider struct {
	w *World
	e Entity
}

// Entity returns the underlying stable entity handle.
func (c Collider) Entity() Entity { return c.e }

func (c Collider) slot() int {
	slot, ok := c.w.colliders.rows.Slot(c.e)
	c.w.assertf(ok, "collider entity %v is not alive", c.e)
	return slot
}

func (c Collider) row() *colliderRow { return c.w.colliders.get(c.slot()) }

// Body returns the body this collider is attached to.
func (c Collider) Body() Body { return Body{w: c.w, e: c.row().body} }

// Shape returns the collider's shape.
func (c Collider) Shape() Shape { return c.row().shape }

// LocalTransform returns the collider's transform relative to its body.
func (c Collider) LocalTransform() lin.T { return c.row().localTransform }

// WorldTransform returns the collider's cached world transform, last
// recomputed during the most recent step that touched its body (or at
// attachment time for a still-sleeping body).
func (c Collider) WorldTransform() lin.T { return c.row().worldTransform }

// Material returns the collider's physical coefficients.
func (c Collider) Material() Material { return c.row().material }

// SetMaterial replaces the collider's physical coefficients. Does not by
// itself trigger mass recomputation; call
// Body.SetMassPropertiesUsingColliders if density changed.
func (c Collider) SetMaterial(m Material) { c.row().material = m }

// Category returns the collider's 16-bit collision category bitmask.
func (c Collider) Category() uint16 { return c.row().category }

// SetCategory changes the collider's category and re-submits it to the
// broad phase so existing overlap pairs are retested against the new
// filtering rules.
func (c Collider) SetCategory(category uint16) {
	c.row().category = category
	c.w.forceRetestCollider(c.e)
}

// Filter returns the collider's 16-bit collision filter bitmask.
func (c Collider) Filter() uint16 { return c.row().filter }

// SetFilter changes the collider's filter and re-submits it to the broad
// phase so existing overlap pairs are retested against the new
// filtering rules.
func (c Collider) SetFilter(filter uint16) {
	c.row().filter = filter
	c.w.forceRetestCollider(c.e)
}

// canCollide reports whether two collision bitmask pairs mutually allow
// collision: each side's category must intersect the
// other's filter.
func canCollide(aCategory, aFilter, bCategory, bFilter uint16) bool {
	return aCategory&bFilter != 0 && bCategory&aFilter != 0
}
