package orient

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ABakker30/ballpuzzle4-sub000/pkg/hull"
)

// Patch is a cluster of near-coplanar hull faces treated as one flat
// supporting surface.
type Patch struct {
	// Normal is the normalized sum of the member face normals. It is
	// deliberately not area-weighted.
	Normal mgl64.Vec3

	// Area is the summed area of the member triangles.
	Area float64

	// Centroid is the area-weighted average of the member triangle
	// centroids.
	Centroid mgl64.Vec3

	// Faces indexes the member faces in the source hull.
	Faces []int
}

// ClusterPatches groups the hull's faces into coplanar patches using a
// greedy single pass: each unprocessed face seeds a patch and absorbs
// every later unprocessed face that is coplanar with the seed. The
// test is against the seed only, not transitively against absorbed
// members; the result therefore depends on face order, which the hull
// builder keeps deterministic. Patches partition the face set.
func ClusterPatches(h *hull.Hull, cfg Config) []Patch {
	distThreshold := averagePairwiseDistance(h.Vertices) * cfg.CoplanarDistanceRatio
	cosTol := math.Cos(mgl64.DegToRad(cfg.CoplanarAngleDeg))

	processed := make([]bool, len(h.Faces))
	var patches []Patch

	for i := range h.Faces {
		if processed[i] {
			continue
		}
		processed[i] = true
		members := []int{i}

		seed := h.Faces[i]
		seedOrigin := h.Vertices[seed.V[0]]

		for j := i + 1; j < len(h.Faces); j++ {
			if processed[j] {
				continue
			}
			cand := h.Faces[j]

			// Parallel in either direction, within tolerance.
			if math.Abs(seed.Normal.Dot(cand.Normal)) < cosTol {
				continue
			}
			// Candidate's first vertex close to the seed plane.
			dist := math.Abs(seed.Normal.Dot(h.Vertices[cand.V[0]].Sub(seedOrigin)))
			if dist > distThreshold {
				continue
			}

			processed[j] = true
			members = append(members, j)
		}

		patches = append(patches, aggregate(h, members))
	}

	return patches
}

// aggregate derives a patch's area, centroid, and normal from its
// member faces.
func aggregate(h *hull.Hull, members []int) Patch {
	p := Patch{Faces: members}

	var normalSum, weighted mgl64.Vec3
	for _, fi := range members {
		f := h.Faces[fi]
		p.Area += f.Area
		normalSum = normalSum.Add(f.Normal)
		weighted = weighted.Add(h.FaceCentroid(f).Mul(f.Area))
	}

	if p.Area > 0 {
		p.Centroid = weighted.Mul(1 / p.Area)
	}
	if l := normalSum.Len(); l > 0 {
		p.Normal = normalSum.Mul(1 / l)
	}
	return p
}

// averagePairwiseDistance is the characteristic length scale of the
// hull: the mean distance over all vertex pairs.
func averagePairwiseDistance(vs []mgl64.Vec3) float64 {
	if len(vs) < 2 {
		return 0
	}
	sum := 0.0
	n := 0
	for i := 0; i < len(vs); i++ {
		for j := i + 1; j < len(vs); j++ {
			sum += vs[i].Sub(vs[j]).Len()
			n++
		}
	}
	return sum / float64(n)
}
