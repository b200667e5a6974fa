package orient

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ABakker30/ballpuzzle4-sub000/pkg/hull"
)

// up is the canonical world up direction the chosen support normal is
// aligned against.
var up = mgl64.Vec3{0, 1, 0}

// Result is the recommended rest pose for an assembly. Rotation acts
// about Centroid, then Translation grounds the lowest point at height
// zero; Translation only ever adjusts height.
type Result struct {
	Rotation    mgl64.Quat
	Translation mgl64.Vec3
	Centroid    mgl64.Vec3
	Patch       *Patch  // chosen support patch, nil on the fallback path
	TotalArea   float64 // summed hull patch area, 0 for degenerate hulls
	Fallback    bool    // true when the principal-axis estimate was used
}

// Apply transforms one point by the pose: rotate about the hull
// centroid, then translate. Rotating about the origin instead of the
// centroid would silently produce a different final placement, so the
// ordering here is load-bearing.
func (r Result) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return r.Rotation.Rotate(p.Sub(r.Centroid)).Add(r.Centroid).Add(r.Translation)
}

// Solve computes the rest pose for a point cloud. It is pure and
// deterministic: identical input yields a bit-identical Result.
//
// Fewer than four points is a caller-correctable input error and is
// returned as hull.ErrInsufficientPoints. A degenerate (flat) cloud
// is not an error: it routes to the principal-axis fallback, as does
// a hull whose largest coplanar patch stays below the dominance
// threshold.
func Solve(points []mgl64.Vec3, cfg Config) (Result, error) {
	h, err := hull.Build(points)
	if err != nil {
		if errors.Is(err, hull.ErrDegenerateHull) {
			return solveFallback(points, pointMean(points), 0, cfg), nil
		}
		return Result{}, err
	}

	centroid := h.Centroid()
	patches := ClusterPatches(h, cfg)

	totalArea := 0.0
	largest := 0
	for i, p := range patches {
		totalArea += p.Area
		if p.Area > patches[largest].Area {
			largest = i
		}
	}

	if totalArea <= 0 || patches[largest].Area < cfg.MinPatchAreaRatio*totalArea {
		return solveFallback(points, centroid, totalArea, cfg), nil
	}

	winner := tieBreak(points, patches, largest, cfg)
	normal := snapToAxis(patches[winner].Normal, cfg.AxisSnapAngleDeg)

	res := pose(points, centroid, normal)
	res.TotalArea = totalArea
	chosen := patches[winner]
	res.Patch = &chosen
	return res, nil
}

// solveFallback builds the curved/degenerate pose from the principal
// axis of the raw point cloud.
func solveFallback(points []mgl64.Vec3, centroid mgl64.Vec3, totalArea float64, cfg Config) Result {
	normal := snapToAxis(principalAxisNormal(points), cfg.AxisSnapAngleDeg)
	res := pose(points, centroid, normal)
	res.TotalArea = totalArea
	res.Fallback = true
	return res
}

// tieBreak selects among the patches whose area is within the
// configured relative margin of the largest: each candidate's normal
// is test-aligned to the up axis and the candidate yielding the
// smallest bounding-box height wins. Earlier patches win exact ties,
// keeping the choice deterministic.
func tieBreak(points []mgl64.Vec3, patches []Patch, largest int, cfg Config) int {
	cutoff := patches[largest].Area * (1 - cfg.TieAreaRatio)

	best := -1
	bestHeight := math.Inf(1)
	for i, p := range patches {
		if p.Area < cutoff {
			continue
		}
		q := rotationBetween(p.Normal, up)
		minY, maxY := math.Inf(1), math.Inf(-1)
		for _, pt := range points {
			y := q.Rotate(pt).Y()
			minY = math.Min(minY, y)
			maxY = math.Max(maxY, y)
		}
		if h := maxY - minY; h < bestHeight {
			bestHeight = h
			best = i
		}
	}
	return best
}

// pose builds the final rotation and grounding translation for the
// chosen outward support normal. The inverted normal is aligned to up
// so the support surface faces upward (carries the solid from below),
// then the grounded height offset is measured after rotating about
// the centroid.
func pose(points []mgl64.Vec3, centroid, outwardNormal mgl64.Vec3) Result {
	rot := rotationBetween(outwardNormal.Mul(-1), up)

	minY := math.Inf(1)
	for _, p := range points {
		y := rot.Rotate(p.Sub(centroid)).Add(centroid).Y()
		minY = math.Min(minY, y)
	}
	if len(points) == 0 {
		minY = 0
	}

	return Result{
		Rotation:    rot,
		Translation: mgl64.Vec3{0, -minY, 0},
		Centroid:    centroid,
	}
}

// snapToAxis replaces a normal with the exact principal axis direction
// when it is within maxAngleDeg of one. Lattice-derived solids are
// very often axis-aligned by construction, and snapping removes the
// floating-point jitter their normals accumulate.
func snapToAxis(n mgl64.Vec3, maxAngleDeg float64) mgl64.Vec3 {
	axes := [6]mgl64.Vec3{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
	minCos := math.Cos(mgl64.DegToRad(maxAngleDeg))

	best := -1
	bestDot := minCos
	for i, a := range axes {
		if d := n.Dot(a); d >= bestDot {
			bestDot = d
			best = i
		}
	}
	if best < 0 {
		return n
	}
	return axes[best]
}

// rotationBetween returns the minimal-angle rotation mapping one unit
// vector onto another. Aligned inputs give the identity; antiparallel
// inputs rotate half a turn about a fixed perpendicular (the X axis
// unless the target is nearly parallel to it, then the Y axis), so
// the choice never depends on floating-point noise.
func rotationBetween(from, to mgl64.Vec3) mgl64.Quat {
	d := from.Dot(to)
	if d > 1 {
		d = 1
	} else if d < -1 {
		d = -1
	}

	switch {
	case d >= 1-1e-12:
		return mgl64.QuatIdent()
	case d <= -1+1e-12:
		perp := mgl64.Vec3{1, 0, 0}
		if math.Abs(to.Dot(perp)) > 0.9 {
			perp = mgl64.Vec3{0, 1, 0}
		}
		// Project out any component along the rotation target.
		axis := perp.Sub(to.Mul(to.Dot(perp))).Normalize()
		return mgl64.QuatRotate(math.Pi, axis)
	}

	axis := from.Cross(to).Normalize()
	return mgl64.QuatRotate(math.Acos(d), axis)
}

// pointMean is the centroid stand-in for clouds with no usable hull.
func pointMean(points []mgl64.Vec3) mgl64.Vec3 {
	var sum mgl64.Vec3
	if len(points) == 0 {
		return sum
	}
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Mul(1 / float64(len(points)))
}
