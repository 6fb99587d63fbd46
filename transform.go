package rb2d

import "github.com/solidphys/rb2d/math/lin"

// transformRow is the dense row stored by TransformComponents: a body's
// position and orientation, stored as (sin, cos) rather than a raw angle.
type transformRow struct {
	xf lin.T
}

// TransformComponents is the struct-of-arrays store for body world
// transforms. It shares the awake/sleeping
// partition used by BodyComponents and ColliderComponents so per-step
// traversal of "awake only" rows is a plain slice prefix scan.
type TransformComponents struct {
	rows *slotArray[transformRow]
}

func newTransformComponents() *TransformComponents {
	return &TransformComponents{rows: newSlotArray[transformRow]()}
}

func (c *TransformComponents) insert(e Entity, xf lin.T, awake bool) int {
	return c.rows.Insert(e, transformRow{xf: xf}, awake)
}

func (c *TransformComponents) remove(slot int) { c.rows.Remove(slot) }

func (c *TransformComponents) get(slot int) lin.T { return c.rows.At(slot).xf }

func (c *TransformComponents) set(slot int, xf lin.T) { c.rows.At(slot).xf = xf }
