package rb2d

import "github.com/solidphys/rb2d/math/lin"

// narrowPhaseResult is what collision detection keeps per contact pair
// after calling into the narrow phase: the raw local manifold plus
// whether the output was flipped relative to the pair's canonical
// (lower shape-type-ordinal first) order, which the solver and the
// world-manifold pass both need to know to interpret LocalNormal/points
// in the right direction.
type narrowPhaseResult struct {
	manifold LocalManifold
	flipped  bool
}

// runNarrowPhase dispatches a single overlapping pair to its algorithm,
// given each collider's shape and current world transform, plus whether
// the polygon-polygon case should prefer keeping A as the reference face
// (warm-started from the previous frame's manifold type, for hysteresis).
func runNarrowPhase(algorithm algorithmTag, shapeA Shape, xfA lin.T, shapeB Shape, xfB lin.T, preferFaceA bool) narrowPhaseResult {
	switch algorithm {
	case algoCircleCircle:
		return narrowPhaseResult{
			manifold: collideCircles(shapeA.(*CircleShape), xfA, shapeB.(*CircleShape), xfB),
		}

	case algoCirclePolygon:
		// Canonical order for this tag is (circle, polygon); the
		// collision algorithm itself wants (polygon, circle).
		m := collidePolygonAndCircle(shapeB.(*PolygonShape), xfB, shapeA.(*CircleShape), xfA)
		return narrowPhaseResult{manifold: m, flipped: true}

	case algoPolygonPolygon:
		m := collidePolygons(shapeA.(*PolygonShape), xfA, shapeB.(*PolygonShape), xfB, preferFaceA)
		return narrowPhaseResult{manifold: m}

	case algoEdgeCircle:
		// Canonical order for this tag is (circle, edge). An edge behaves
		// like a degenerate two-vertex polygon with no interior; its
		// mass/point-inside semantics differ (shape.go) but its
		// collision geometry is handled identically to a polygon face,
		// so build a transient two-vertex polygon to reuse
		// collidePolygonAndCircle with the shapes flipped back to
		// (polygon, circle) order.
		edge := shapeB.(*EdgeShape)
		poly := edgeAsDegeneratePolygon(edge)
		m := collidePolygonAndCircle(poly, xfB, shapeA.(*CircleShape), xfA)
		return narrowPhaseResult{manifold: m, flipped: true}

	case algoEdgePolygon:
		// Canonical order for this tag is (polygon, edge); collidePolygons
		// takes its first shape as "A", so this dispatches directly.
		edge := shapeB.(*EdgeShape)
		poly := edgeAsDegeneratePolygon(edge)
		m := collidePolygons(shapeA.(*PolygonShape), xfA, poly, xfB, preferFaceA)
		return narrowPhaseResult{manifold: m}

	default:
		return narrowPhaseResult{}
	}
}

// edgeAsDegeneratePolygon builds a two-sided "polygon" from an edge shape
// so the polygon collision routines can be reused for edge contacts: one
// normal per side of the segment, no welding concerns since it is never
// inserted into a tree or used for mass.
func edgeAsDegeneratePolygon(e *EdgeShape) *PolygonShape {
	p := &PolygonShape{Count: 2}
	p.Vertices[0] = e.P1
	p.Vertices[1] = e.P2
	edge := e.P2.Sub(e.P1).Unit()
	p.Normals[0] = edge.RPerp()
	p.Normals[1] = edge.RPerp().Neg()
	p.Centroid = e.P1.Lerp(e.P2, 0.5)
	return p
}
