package rb2d

import "github.com/solidphys/rb2d/math/lin"

// clipVertex is one point on the incident edge as it passes through
// Sutherland-Hodgman clipping against the reference face's two side
// planes. Its feature is carried through and updated whenever clipping
// introduces a new interpolated point, so the contact key downstream
// still identifies a stable vertex/edge pair across frames.
type clipVertex struct {
	v       lin.V2
	feature contactFeature
}

// clipSegmentToLine clips the two-point segment in against the half-space
// normal.Dot(x) <= offset (i.e. keeps points on or behind the plane),
// inserting an interpolated point on the plane when the segment crosses
// it. This is the standard Sutherland-Hodgman single-plane clip step.
func clipSegmentToLine(in [2]clipVertex, normal lin.V2, offset float64, edgeIndex uint8) ([2]clipVertex, int) {
	var out [2]clipVertex
	count := 0

	dist0 := normal.Dot(in[0].v) - offset
	dist1 := normal.Dot(in[1].v) - offset

	if dist0 <= 0 {
		out[count] = in[0]
		count++
	}
	if dist1 <= 0 {
		out[count] = in[1]
		count++
	}

	if dist0*dist1 < 0 {
		t := dist0 / (dist0 - dist1)
		out[count] = clipVertex{
			v: in[0].v.Lerp(in[1].v, t),
			// Keep the incident vertex index from in[0] so the
			// interpolated point's key still identifies which incident
			// vertex it came from, the way Box2D's b2ClipSegmentToLine
			// does.
			feature: contactFeature{indexA: edgeIndex, indexB: in[0].feature.indexB, typeA: featureFace, typeB: featureVertex},
		}
		count++
	}

	return out, count
}
