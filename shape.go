package rb2d

import (
	"math"

	"github.com/solidphys/rb2d/math/lin"
)

// ShapeType is the tag of the shape union. It also doubles as
// the ordinal used to canonically order a pair of shapes before dispatch:
// the narrow phase always receives the lower-ordinal shape first and
// flips the resulting manifold if the caller's order differed.
type ShapeType uint8

const (
	ShapeCircle ShapeType = iota
	ShapePolygon
	ShapeEdge
	numShapeTypes
)

func (t ShapeType) String() string {
	switch t {
	case ShapeCircle:
		return "circle"
	case ShapePolygon:
		return "polygon"
	case ShapeEdge:
		return "edge"
	default:
		return "unknown"
	}
}

const (
	// polygonRadius is the small skin every polygon and edge carries so
	// contact detection has a margin to work with without changing the
	// shape's apparent geometry.
	polygonRadius = 0.005

	// maxPolygonVertices bounds PolygonShape.Vertices/Normals.
	maxPolygonVertices = 8
)

// MassData is the output of Shape.ComputeMass: the mass properties of a
// shape at the given density, combined by Body.SetMassPropertiesUsingColliders.
type MassData struct {
	Mass     float64 // density * area
	Centroid lin.V2  // shape-local center of mass
	Inertia  float64 // rotational inertia about the shape's own centroid
}

// Shape is the tagged-union contract every concrete shape satisfies. The
// narrow phase never dispatches through this interface in its hot path;
// it is used at the edges: mass aggregation, broad-phase AABB
// computation, point queries.
type Shape interface {
	Type() ShapeType
	Radius() float64                               // skin/true radius.
	ComputeAABB(xf lin.T) AABB                      // world-space bounds under transform xf.
	ComputeMass(density float64) MassData           // density*area, centroid, inertia.
	PointInside(xf lin.T, worldPoint lin.V2) bool   // world-space point-in-shape test.
}

// CircleShape is a solid disc of the given radius centered at Center in
// the body's local frame.
type CircleShape struct {
	Center lin.V2
	radius float64
}

// NewCircleShape creates a circle of radius r centered at the shape-local
// origin. r must be strictly positive.
func NewCircleShape(r float64) *CircleShape {
	assertf(r > 0, "circle radius must be positive, got %f", r)
	return &CircleShape{radius: r}
}

func (c *CircleShape) Type() ShapeType { return ShapeCircle }
func (c *CircleShape) Radius() float64 { return c.radius }

func (c *CircleShape) ComputeAABB(xf lin.T) AABB {
	center := xf.Apply(c.Center)
	r := lin.Vec2(c.radius, c.radius)
	return AABB{Lower: center.Sub(r), Upper: center.Add(r)}
}

func (c *CircleShape) ComputeMass(density float64) MassData {
	mass := density * lin.PI * c.radius * c.radius
	// Inertia of a disc about its own centroid: 1/2 * m * r^2.
	inertia := 0.5 * mass * c.radius * c.radius
	return MassData{Mass: mass, Centroid: c.Center, Inertia: inertia}
}

func (c *CircleShape) PointInside(xf lin.T, worldPoint lin.V2) bool {
	center := xf.Apply(c.Center)
	return center.DistSqr(worldPoint) <= c.radius*c.radius
}

// PolygonShape is a solid convex polygon of up to 8 vertices wound
// counter-clockwise, each paired with its outward edge normal. Box is the
// common 4-vertex special case, built by NewBoxShape.
type PolygonShape struct {
	Vertices [maxPolygonVertices]lin.V2
	Normals  [maxPolygonVertices]lin.V2
	Count    int
	Centroid lin.V2
}

// NewPolygonShape builds a PolygonShape from an already-convex,
// counter-clockwise-wound vertex list of 3 to 8 points. Hull construction
// (welding near-duplicate points, rejecting collinear input) is an
// out-of-scope authoring-time utility; callers are expected to pass an
// already-valid convex hull. This constructor still
// validates count and computes normals and the centroid, the genuinely
// in-scope part of shape construction; it does not check or correct the
// winding.
func NewPolygonShape(vertices []lin.V2) *PolygonShape {
	assertf(len(vertices) >= 3, "polygon needs at least 3 vertices, got %d", len(vertices))
	assertf(len(vertices) <= maxPolygonVertices, "polygon supports at most %d vertices, got %d", maxPolygonVertices, len(vertices))

	p := &PolygonShape{Count: len(vertices)}
	copy(p.Vertices[:p.Count], vertices)

	for i := 0; i < p.Count; i++ {
		v1 := p.Vertices[i]
		v2 := p.Vertices[(i+1)%p.Count]
		edge := v2.Sub(v1)
		assertf(!edge.AeqZ(), "polygon has a near-zero-length edge at vertex %d", i)
		p.Normals[i] = edge.RPerp().Unit()
	}
	p.Centroid = polygonCentroid(p.Vertices[:p.Count])
	return p
}

// NewBoxShape builds an axis-aligned box polygon of the given half
// extents, centered at the shape-local origin.
func NewBoxShape(hx, hy float64) *PolygonShape {
	assertf(hx > 0 && hy > 0, "box half-extents must be positive, got (%f,%f)", hx, hy)
	return NewPolygonShape([]lin.V2{
		{X: -hx, Y: -hy},
		{X: hx, Y: -hy},
		{X: hx, Y: hy},
		{X: -hx, Y: hy},
	})
}

func (p *PolygonShape) Type() ShapeType { return ShapePolygon }
func (p *PolygonShape) Radius() float64 { return polygonRadius }

func (p *PolygonShape) ComputeAABB(xf lin.T) AABB {
	lower := xf.Apply(p.Vertices[0])
	upper := lower
	for i := 1; i < p.Count; i++ {
		v := xf.Apply(p.Vertices[i])
		lower = lower.Min(v)
		upper = upper.Max(v)
	}
	pad := lin.Vec2(polygonRadius, polygonRadius)
	return AABB{Lower: lower.Sub(pad), Upper: upper.Add(pad)}
}

func (p *PolygonShape) ComputeMass(density float64) MassData {
	// Standard polygon area/centroid/inertia formulas, integrating over
	// triangles fanned from an arbitrary reference point (the first
	// vertex), which keeps the sums well-conditioned for polygons far
	// from the local origin.
	var area, inertia float64
	var centroid lin.V2
	ref := p.Vertices[0]
	const inv3 = 1.0 / 3.0

	for i := 0; i < p.Count; i++ {
		e1 := p.Vertices[i].Sub(ref)
		e2 := p.Vertices[(i+1)%p.Count].Sub(ref)
		d := e1.Cross(e2)
		triArea := 0.5 * d
		area += triArea
		centroid = centroid.Add(e1.Add(e2).Scale(triArea * inv3))

		intx2 := e1.X*e1.X + e1.X*e2.X + e2.X*e2.X
		inty2 := e1.Y*e1.Y + e1.Y*e2.Y + e2.Y*e2.Y
		inertia += (0.25 * inv3 * d) * (intx2 + inty2)
	}

	mass := density * area
	if area > lin.Epsilon {
		centroid = centroid.Scale(1.0 / area)
	}
	worldCentroid := centroid.Add(ref)

	// Shift inertia from the reference point to the shape's own centroid
	// (inverse parallel-axis theorem), then to density units.
	inertia *= density
	inertia -= mass * centroid.Dot(centroid)

	return MassData{Mass: mass, Centroid: worldCentroid, Inertia: inertia}
}

func (p *PolygonShape) PointInside(xf lin.T, worldPoint lin.V2) bool {
	local := xf.ApplyT(worldPoint)
	for i := 0; i < p.Count; i++ {
		if p.Normals[i].Dot(local.Sub(p.Vertices[i])) > 0 {
			return false
		}
	}
	return true
}

func polygonCentroid(vertices []lin.V2) lin.V2 {
	var area float64
	var centroid lin.V2
	ref := vertices[0]
	const inv3 = 1.0 / 3.0
	for i := 0; i < len(vertices); i++ {
		e1 := vertices[i].Sub(ref)
		e2 := vertices[(i+1)%len(vertices)].Sub(ref)
		d := e1.Cross(e2)
		triArea := 0.5 * d
		area += triArea
		centroid = centroid.Add(e1.Add(e2).Scale(triArea * inv3))
	}
	if math.Abs(area) > lin.Epsilon {
		centroid = centroid.Scale(1.0 / area)
	}
	return centroid.Add(ref)
}

// EdgeShape is a single line segment with a skin radius; it has no area
// or inertia of its own and is intended for static world boundaries.
type EdgeShape struct {
	P1, P2 lin.V2
}

// NewEdgeShape builds a two-point edge.
func NewEdgeShape(p1, p2 lin.V2) *EdgeShape {
	assertf(!p1.Aeq(p2), "edge endpoints must be distinct")
	return &EdgeShape{P1: p1, P2: p2}
}

func (e *EdgeShape) Type() ShapeType { return ShapeEdge }
func (e *EdgeShape) Radius() float64 { return polygonRadius }

func (e *EdgeShape) ComputeAABB(xf lin.T) AABB {
	p1 := xf.Apply(e.P1)
	p2 := xf.Apply(e.P2)
	pad := lin.Vec2(polygonRadius, polygonRadius)
	return AABB{Lower: p1.Min(p2).Sub(pad), Upper: p1.Max(p2).Add(pad)}
}

func (e *EdgeShape) ComputeMass(density float64) MassData {
	// An edge has no area: static-only shape, zero mass contribution.
	mid := e.P1.Lerp(e.P2, 0.5)
	return MassData{Mass: 0, Centroid: mid, Inertia: 0}
}

func (e *EdgeShape) PointInside(xf lin.T, worldPoint lin.V2) bool {
	// An edge has no interior.
	return false
}
