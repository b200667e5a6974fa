// Package orient decides how a lattice assembly should rest on the
// ground plane. It clusters the convex hull's triangular faces into
// near-coplanar patches, picks the patch that should carry the solid
// (falling back to a principal-axis estimate for curved shapes), and
// produces the rotation and grounding translation to apply.
package orient

// Config holds the geometric tolerances of the orientation pipeline.
// The defaults are empirical; they are named and overridable so test
// suites can probe boundary behavior precisely.
type Config struct {
	// CoplanarAngleDeg is the maximum angle between face normals for
	// two faces to be clustered into one patch. Normals parallel in
	// either direction qualify, since triangulating a flat polygon
	// can produce either winding.
	CoplanarAngleDeg float64

	// CoplanarDistanceRatio scales the characteristic hull size (the
	// average pairwise vertex distance) into the maximum out-of-plane
	// distance for clustering. A scale-relative threshold generalizes
	// across puzzle sizes where an absolute epsilon would not.
	CoplanarDistanceRatio float64

	// MinPatchAreaRatio is the fraction of total hull area the
	// largest patch must reach before the solid is treated as having
	// a flat resting face at all; below it the principal-axis
	// fallback runs instead.
	MinPatchAreaRatio float64

	// TieAreaRatio is the relative area margin within which patches
	// compete in the bounding-box-height tie-break.
	TieAreaRatio float64

	// AxisSnapAngleDeg snaps a selected normal to an exact principal
	// axis when it is already this close, removing floating-point
	// jitter from lattice-derived axis-aligned surfaces.
	AxisSnapAngleDeg float64
}

// DefaultConfig returns the tuned production thresholds.
func DefaultConfig() Config {
	return Config{
		CoplanarAngleDeg:      2,
		CoplanarDistanceRatio: 0.01,
		MinPatchAreaRatio:     0.15,
		TieAreaRatio:          0.05,
		AxisSnapAngleDeg:      1,
	}
}
