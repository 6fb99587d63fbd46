package rb2d

import "github.com/solidphys/rb2d/math/lin"

// collideCircles tests two circles for overlap, both expressed in world
// space via their transforms, returning a manifold whose reference point
// is circle A's local center and whose single point is circle B's local
// center.
func collideCircles(a *CircleShape, xfA lin.T, b *CircleShape, xfB lin.T) LocalManifold {
	var m LocalManifold

	pA := xfA.Apply(a.Center)
	pB := xfB.Apply(b.Center)
	d := pB.Sub(pA)
	distSqr := d.LenSqr()
	radius := a.radius + b.radius

	if distSqr > radius*radius {
		return m
	}

	m.Type = manifoldCircles
	m.LocalPoint = a.Center
	m.PointCount = 1
	m.Points[0] = manifoldPoint{
		localPoint: b.Center,
		feature:    contactFeature{typeA: featureVertex, typeB: featureVertex},
	}
	return m
}

// collidePolygonAndCircle tests a polygon against a circle, both in world
// space, and returns a manifold in the polygon's local frame, covering
// both the vertex-region and face-region sub-cases. Caller is
// responsible for canonical (polygon, circle)
// ordering; collision.go flips the result when the original pair order
// was (circle, polygon).
func collidePolygonAndCircle(poly *PolygonShape, xfA lin.T, circle *CircleShape, xfB lin.T) LocalManifold {
	var m LocalManifold

	// Express the circle's center in the polygon's local frame.
	center := xfA.MulT(xfB).Apply(circle.Center)

	// Find the edge with maximum separation (the face the circle is most
	// outside of).
	separation := -lin.Large
	normalIndex := 0
	for i := 0; i < poly.Count; i++ {
		s := poly.Normals[i].Dot(center.Sub(poly.Vertices[i]))
		if s > separation {
			separation = s
			normalIndex = i
		}
	}

	radius := poly.Radius() + circle.radius
	if separation > radius {
		return m
	}

	v1 := poly.Vertices[normalIndex]
	v2 := poly.Vertices[(normalIndex+1)%poly.Count]

	if separation < lin.Epsilon {
		// Circle center is inside the polygon: the found face is the
		// reference face and the circle sits squarely in the face region.
		m.Type = manifoldFaceA
		m.LocalNormal = poly.Normals[normalIndex]
		m.LocalPoint = v1.Lerp(v2, 0.5)
		m.PointCount = 1
		m.Points[0] = manifoldPoint{
			localPoint: circle.Center,
			feature:    contactFeature{indexA: uint8(normalIndex), typeA: featureFace, typeB: featureVertex},
		}
		return m
	}

	// Circle center is outside the polygon: determine which Voronoi
	// region of the edge (v1, v2) it falls into.
	u1 := center.Sub(v1).Dot(v2.Sub(v1))
	u2 := center.Sub(v2).Dot(v1.Sub(v2))

	switch {
	case u1 <= 0:
		if center.DistSqr(v1) > radius*radius {
			return m
		}
		m.Type = manifoldFaceA
		m.LocalNormal = center.Sub(v1).Unit()
		m.LocalPoint = v1
		m.PointCount = 1
		m.Points[0] = manifoldPoint{
			localPoint: circle.Center,
			feature:    contactFeature{indexA: uint8(normalIndex), typeA: featureVertex, typeB: featureVertex},
		}
	case u2 <= 0:
		if center.DistSqr(v2) > radius*radius {
			return m
		}
		m.Type = manifoldFaceA
		m.LocalNormal = center.Sub(v2).Unit()
		m.LocalPoint = v2
		m.PointCount = 1
		m.Points[0] = manifoldPoint{
			localPoint: circle.Center,
			feature:    contactFeature{indexA: uint8((normalIndex + 1) % poly.Count), typeA: featureVertex, typeB: featureVertex},
		}
	default:
		m.Type = manifoldFaceA
		m.LocalNormal = poly.Normals[normalIndex]
		m.LocalPoint = v1.Lerp(v2, 0.5)
		m.PointCount = 1
		m.Points[0] = manifoldPoint{
			localPoint: circle.Center,
			feature:    contactFeature{indexA: uint8(normalIndex), typeA: featureFace, typeB: featureVertex},
		}
	}
	return m
}
