package rb2d

import "github.com/solidphys/rb2d/math/lin"

// findMaxSeparation returns the index of the edge on a whose normal gives
// the greatest separation against b, and that separation. aToB maps a
// point in a's local frame into b's local frame; a's normals and vertices
// are carried through it and tested against b's own local vertices.
func findMaxSeparation(a, b *PolygonShape, aToB lin.T) (int, float64) {
	bestIndex := 0
	bestSeparation := -lin.Large

	for i := 0; i < a.Count; i++ {
		n := aToB.ApplyVec(a.Normals[i])
		v1 := aToB.Apply(a.Vertices[i])

		sep := lin.Large
		for j := 0; j < b.Count; j++ {
			s := n.Dot(b.Vertices[j].Sub(v1))
			if s < sep {
				sep = s
			}
		}
		if sep > bestSeparation {
			bestSeparation = sep
			bestIndex = i
		}
	}
	return bestIndex, bestSeparation
}

// findIncidentEdge returns the two-vertex clip segment on the incident
// polygon (inc, expressed via incToRef into the reference polygon's local
// frame) whose own normal is most anti-parallel to the reference edge
// normal: the edge most nearly facing the reference face.
func findIncidentEdge(refNormal lin.V2, inc *PolygonShape, incToRef lin.T, refEdge int) [2]clipVertex {
	bestIndex := 0
	bestDot := lin.Large
	for i := 0; i < inc.Count; i++ {
		n := incToRef.ApplyVec(inc.Normals[i])
		d := refNormal.Dot(n)
		if d < bestDot {
			bestDot = d
			bestIndex = i
		}
	}

	i1 := bestIndex
	i2 := (bestIndex + 1) % inc.Count
	return [2]clipVertex{
		{
			v:       incToRef.Apply(inc.Vertices[i1]),
			feature: contactFeature{indexB: uint8(i1), typeA: featureFace, typeB: featureVertex},
		},
		{
			v:       incToRef.Apply(inc.Vertices[i2]),
			feature: contactFeature{indexB: uint8(i2), typeA: featureFace, typeB: featureVertex},
		},
	}
}

// polygonRelativeTolerance/polygonAbsoluteTolerance bias the
// reference-face choice toward whichever face was reference last frame
//, avoiding a manifold that chatters between
// FaceA and FaceB on equal-separation ties from floating point noise.
// The caller supplies that bias via preferA.
const (
	polygonRelativeTolerance = 0.98
	polygonAbsoluteTolerance = 0.001
)

// collidePolygons runs full polygon-polygon SAT: a separating-axis search
// on both shapes' faces, reference/incident face selection (with a small
// hysteresis bias toward the shape that was the reference face last
// time), and Sutherland-Hodgman clipping of the incident edge against the
// reference face's side planes. Returns a manifold whose normal and
// reference point are in the reference shape's local frame and whose
// points are in the incident shape's local frame. preferA true means: on a
// near-tie, keep A as the reference face (the manifold was manifoldFaceA
// last frame for this pair).
func collidePolygons(a *PolygonShape, xfA lin.T, b *PolygonShape, xfB lin.T, preferA bool) LocalManifold {
	var m LocalManifold

	aToB := xfB.MulT(xfA)
	bToA := xfA.MulT(xfB)

	edgeA, sepA := findMaxSeparation(a, b, aToB)
	edgeB, sepB := findMaxSeparation(b, a, bToA)

	totalRadius := a.Radius() + b.Radius()
	if sepA > totalRadius || sepB > totalRadius {
		return m
	}

	var flip bool
	var ref, inc *PolygonShape
	var xfRef, xfInc lin.T
	var refEdge int

	if preferA {
		flip = sepB > sepA+polygonAbsoluteTolerance
	} else {
		flip = !(sepA > polygonRelativeTolerance*sepB+polygonAbsoluteTolerance)
	}

	if !flip {
		ref, inc = a, b
		xfRef, xfInc = xfA, xfB
		refEdge = edgeA
	} else {
		ref, inc = b, a
		xfRef, xfInc = xfB, xfA
		refEdge = edgeB
	}

	incToRef := xfRef.MulT(xfInc)

	refNormal := ref.Normals[refEdge]
	incEdge := findIncidentEdge(refNormal, inc, incToRef, refEdge)

	i1 := refEdge
	i2 := (refEdge + 1) % ref.Count
	v1 := ref.Vertices[i1]
	v2 := ref.Vertices[i2]

	tangent := v2.Sub(v1).Unit()

	sideOffset1 := -tangent.Dot(v1) + ref.Radius()
	sideOffset2 := tangent.Dot(v2) + ref.Radius()

	clipped, count := clipSegmentToLine(incEdge, tangent.Neg(), sideOffset1, uint8(i1))
	if count < 2 {
		return m
	}
	clipped, count = clipSegmentToLine(clipped, tangent, sideOffset2, uint8(i2))
	if count < 2 {
		return m
	}

	frontNormal := tangent.RPerp()
	frontOffset := frontNormal.Dot(v1)

	m.LocalPoint = v1.Lerp(v2, 0.5)
	m.LocalNormal = frontNormal
	if flip {
		m.Type = manifoldFaceB
	} else {
		m.Type = manifoldFaceA
	}

	pointCount := 0
	for i := 0; i < count; i++ {
		separation := frontNormal.Dot(clipped[i].v) - frontOffset
		if separation <= totalRadius {
			m.Points[pointCount] = manifoldPoint{
				localPoint: xfInc.MulT(xfRef).Apply(clipped[i].v),
				feature:    clipped[i].feature,
			}
			pointCount++
		}
	}
	m.PointCount = pointCount
	return m
}
