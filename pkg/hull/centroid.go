package hull

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Centroid computes the volume-weighted centroid of the closed hull.
// The hull is decomposed into tetrahedra spanned by the origin and
// each triangular face; each contributes its volume |det(v1,v2,v3)|/6
// at its centroid (0+v1+v2+v3)/4, and the result is the volume-
// weighted average. When the accumulated volume is numerically zero
// the centroid degrades to the arithmetic mean of the hull vertices.
func (h *Hull) Centroid() mgl64.Vec3 {
	var acc mgl64.Vec3
	totalVolume := 0.0

	for _, f := range h.Faces {
		v1 := h.Vertices[f.V[0]]
		v2 := h.Vertices[f.V[1]]
		v3 := h.Vertices[f.V[2]]

		vol := math.Abs(v1.Dot(v2.Cross(v3))) / 6
		c := v1.Add(v2).Add(v3).Mul(0.25)

		acc = acc.Add(c.Mul(vol))
		totalVolume += vol
	}

	if totalVolume < 1e-12 {
		return vertexMean(h.Vertices)
	}
	return acc.Mul(1 / totalVolume)
}

// vertexMean is the degenerate-hull fallback centroid.
func vertexMean(vs []mgl64.Vec3) mgl64.Vec3 {
	var sum mgl64.Vec3
	if len(vs) == 0 {
		return sum
	}
	for _, v := range vs {
		sum = sum.Add(v)
	}
	return sum.Mul(1 / float64(len(vs)))
}
