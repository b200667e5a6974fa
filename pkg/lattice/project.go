package lattice

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Project maps a lattice cell to a continuous world-space position.
// The three lattice basis vectors are the permutations of (0,1,1)
// scaled by scale/2, so:
//
//	x = (j+k) * scale/2
//	y = (i+k) * scale/2
//	z = (i+j) * scale/2
//
// This is the single source of truth for ball positions: both hull
// computation and rendering must go through it so they agree exactly.
func Project(c Cell, scale float64) mgl64.Vec3 {
	h := scale / 2
	return mgl64.Vec3{
		float64(c.J+c.K) * h,
		float64(c.I+c.K) * h,
		float64(c.I+c.J) * h,
	}
}

// ProjectWorld maps a world grid cell directly to continuous space.
// Equivalent to Project after ToLattice, without requiring validity:
// the world grid is simply the continuous grid in half-scale units.
func ProjectWorld(w WorldCell, scale float64) mgl64.Vec3 {
	h := scale / 2
	return mgl64.Vec3{
		float64(w.X) * h,
		float64(w.Y) * h,
		float64(w.Z) * h,
	}
}

// NearestNeighborDistance returns the center-to-center distance of
// adjacent lattice sites at the given scale: |(1,1,0)| * scale/2.
func NearestNeighborDistance(scale float64) float64 {
	return scale * math.Sqrt2 / 2
}

// BallRadius returns the touching-sphere radius at the given scale,
// half the nearest-neighbor distance.
func BallRadius(scale float64) float64 {
	return NearestNeighborDistance(scale) / 2
}
