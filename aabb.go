package rb2d

import "github.com/solidphys/rb2d/math/lin"

// AABB is an axis-aligned bounding box: invariant Lower <= Upper
// componentwise after any mutating operation in this file.
type AABB struct {
	Lower lin.V2
	Upper lin.V2
}

// NewAABB builds an AABB from two corners in any order.
func NewAABB(a, b lin.V2) AABB {
	return AABB{Lower: a.Min(b), Upper: a.Max(b)}
}

// Width returns the AABB's extent in x.
func (a AABB) Width() float64 { return a.Upper.X - a.Lower.X }

// Height returns the AABB's extent in y.
func (a AABB) Height() float64 { return a.Upper.Y - a.Lower.Y }

// Center returns the midpoint of the AABB.
func (a AABB) Center() lin.V2 { return a.Lower.Lerp(a.Upper, 0.5) }

// HalfExtents returns half the AABB's width and height.
func (a AABB) HalfExtents() lin.V2 {
	return lin.Vec2(a.Width()*0.5, a.Height()*0.5)
}

// Perimeter returns twice the sum of the AABB's width and height; the
// dynamic tree's SAH cost metric uses this (not area) since it is cheap
// and monotonic in the same way for a 2D tree.
func (a AABB) Perimeter() float64 {
	return 2 * (a.Width() + a.Height())
}

// Contains reports whether b is entirely contained within a.
func (a AABB) Contains(b AABB) bool {
	return a.Lower.X <= b.Lower.X && a.Lower.Y <= b.Lower.Y &&
		b.Upper.X <= a.Upper.X && b.Upper.Y <= a.Upper.Y
}

// Overlaps reports whether a and b intersect (touching counts as overlap).
func (a AABB) Overlaps(b AABB) bool {
	if a.Upper.X < b.Lower.X || b.Upper.X < a.Lower.X {
		return false
	}
	if a.Upper.Y < b.Lower.Y || b.Upper.Y < a.Lower.Y {
		return false
	}
	return true
}

// Combine returns the smallest AABB containing both a and b.
func Combine(a, b AABB) AABB {
	return AABB{Lower: a.Lower.Min(b.Lower), Upper: a.Upper.Max(b.Upper)}
}

// Inflate returns a grown by d on every side.
func (a AABB) Inflate(d float64) AABB {
	pad := lin.Vec2(d, d)
	return AABB{Lower: a.Lower.Sub(pad), Upper: a.Upper.Add(pad)}
}
