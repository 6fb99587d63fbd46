package rb2d

import "github.com/solidphys/rb2d/math/lin"

// manifoldType tags which narrow-phase case produced a LocalManifold, so
// the world-manifold derivation and the solver know how to interpret its
// normal and points.
type manifoldType uint8

const (
	manifoldCircles manifoldType = iota // both shapes are circles; normal/points are trivial.
	manifoldFaceA                       // a face on shape A is the reference face.
	manifoldFaceB                       // a face on shape B is the reference face.
)

// maxManifoldPoints is the most contact points a single manifold ever
// carries in 2D: two, for a face-face (polygon) contact.
const maxManifoldPoints = 2

// contactFeature identifies which vertex/edge pair on each shape produced
// a manifold point, packed into a single uint32 contact key. Two
// manifolds computed a frame apart carry a matching key for "the same"
// contact point iff all four fields match, which is what lets the solver
// warm-start from the previous frame's accumulated impulses.
type contactFeature struct {
	indexA, indexB uint8
	typeA, typeB   uint8
}

func (f contactFeature) key() uint32 {
	return uint32(f.indexA) | uint32(f.indexB)<<8 | uint32(f.typeA)<<16 | uint32(f.typeB)<<24
}

const (
	featureVertex uint8 = 0
	featureFace   uint8 = 1
)

// manifoldPoint is one contact point expressed in the local frame of the
// shape opposite the reference shape (see LocalManifold), carrying both
// the geometric data
// the world-manifold pass needs and the persistent accumulated impulses
// the solver warm-starts from.
type manifoldPoint struct {
	localPoint lin.V2
	feature    contactFeature

	normalImpulse  float64
	tangentImpulse float64
}

// LocalManifold is the narrow phase's raw output for one overlapping
// pair: a contact normal and up to two points, kept in shape-local frames
// so it stays valid across the frame it was computed for regardless of
// which body actually moves. LocalNormal and LocalPoint are in the
// reference shape's frame (A for Circles and FaceA, B for FaceB); each
// point is in the other shape's frame.
type LocalManifold struct {
	Type         manifoldType
	LocalNormal  lin.V2 // meaningless for manifoldCircles.
	LocalPoint   lin.V2 // reference point: shape A's center for circles, else the reference face's point.
	Points       [maxManifoldPoints]manifoldPoint
	PointCount   int
}

// worldManifoldPoint is a single contact fully resolved to world space,
// ready for the solver.
type worldManifoldPoint struct {
	point       lin.V2
	separation  float64
}

// worldManifold is the per-step, solver-ready expansion of a
// LocalManifold plus the two shapes' current world transforms.
type worldManifold struct {
	normal lin.V2
	points [maxManifoldPoints]worldManifoldPoint
}

// computeWorldManifold expands m (in shape A's or B's local frame,
// depending on m.Type) into world space using the two colliders' current
// transforms and radii.
func computeWorldManifold(m *LocalManifold, xfA lin.T, radiusA float64, xfB lin.T, radiusB float64) worldManifold {
	var wm worldManifold
	if m.PointCount == 0 {
		return wm
	}

	switch m.Type {
	case manifoldCircles:
		pointA := xfA.Apply(m.LocalPoint)
		pointB := xfB.Apply(m.Points[0].localPoint)
		normal := lin.Vec2(1, 0)
		if pointB.Sub(pointA).Len() > lin.Epsilon {
			normal = pointB.Sub(pointA).Unit()
		}
		cA := pointA.MulAdd(normal, radiusA)
		cB := pointB.MulAdd(normal, -radiusB)
		wm.normal = normal
		wm.points[0] = worldManifoldPoint{
			point:      cA.Lerp(cB, 0.5),
			separation: cB.Sub(cA).Dot(normal),
		}
		return wm

	case manifoldFaceA:
		normal := xfA.ApplyVec(m.LocalNormal)
		planePoint := xfA.Apply(m.LocalPoint)
		wm.normal = normal
		for i := 0; i < m.PointCount; i++ {
			clip := xfB.Apply(m.Points[i].localPoint)
			cA := clip.Add(normal.Scale(radiusA - clip.Sub(planePoint).Dot(normal)))
			cB := clip.Sub(normal.Scale(radiusB))
			wm.points[i] = worldManifoldPoint{
				point:      cA.Lerp(cB, 0.5),
				separation: cB.Sub(cA).Dot(normal),
			}
		}
		return wm

	default: // manifoldFaceB
		normal := xfB.ApplyVec(m.LocalNormal)
		planePoint := xfB.Apply(m.LocalPoint)
		// Flip the normal so it still points from A to B: the reference
		// face belongs to B here, so LocalNormal points from B to A.
		wm.normal = normal.Neg()
		for i := 0; i < m.PointCount; i++ {
			clip := xfA.Apply(m.Points[i].localPoint)
			cB := clip.Add(normal.Scale(radiusB - clip.Sub(planePoint).Dot(normal)))
			cA := clip.Sub(normal.Scale(radiusA))
			wm.points[i] = worldManifoldPoint{
				point:      cA.Lerp(cB, 0.5),
				separation: cA.Sub(cB).Dot(normal),
			}
		}
		return wm
	}
}
