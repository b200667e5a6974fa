// Package hull computes 3-D convex hulls of point clouds. The builder
// is incremental: it seeds a tetrahedron from extreme points and folds
// the remaining points in one at a time, replacing the faces visible
// from each point with a fan over the horizon edges. The output is a
// closed, consistently outward-oriented triangular surface.
package hull

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrInsufficientPoints is returned when fewer than four points are
// supplied; a non-degenerate 3-D hull needs at least a tetrahedron.
var ErrInsufficientPoints = errors.New("hull: need at least 4 points")

// ErrDegenerateHull is returned when all points are collinear or
// coplanar, so the hull would enclose zero volume. Callers are
// expected to fall back rather than treat this as fatal.
var ErrDegenerateHull = errors.New("hull: points span zero volume")

// Face is one triangular face of a hull. Vertex indices wind
// counter-clockwise seen from outside, so Normal points outward.
type Face struct {
	V      [3]int
	Normal mgl64.Vec3
	Area   float64
}

// Hull is a closed convex triangular surface.
type Hull struct {
	Vertices []mgl64.Vec3
	Faces    []Face
}

// tri is a face under construction, indexing the raw input points.
type tri struct {
	a, b, c int
	n       mgl64.Vec3 // unit outward normal
	d       float64    // plane offset: n·v = d on the plane
}

// Build computes the convex hull of the given point cloud. Duplicate
// and near-duplicate points are tolerated. The input slice is never
// mutated.
func Build(points []mgl64.Vec3) (*Hull, error) {
	if len(points) < 4 {
		return nil, fmt.Errorf("%w: got %d", ErrInsufficientPoints, len(points))
	}

	eps := distanceEpsilon(points)

	seed, err := initialTetrahedron(points, eps)
	if err != nil {
		return nil, err
	}

	faces := seedFaces(points, seed)

	inSeed := map[int]bool{seed[0]: true, seed[1]: true, seed[2]: true, seed[3]: true}
	for i := range points {
		if inSeed[i] {
			continue
		}
		faces = addPoint(points, faces, i, eps)
	}

	return compact(points, faces), nil
}

// distanceEpsilon derives the visibility tolerance from the cloud's
// bounding extent, so the builder behaves identically across scales.
func distanceEpsilon(points []mgl64.Vec3) float64 {
	min, max := points[0], points[0]
	for _, p := range points {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < min[axis] {
				min[axis] = p[axis]
			}
			if p[axis] > max[axis] {
				max[axis] = p[axis]
			}
		}
	}
	extent := max.Sub(min).Len()
	if extent == 0 {
		extent = 1
	}
	return extent * 1e-9
}

// initialTetrahedron picks four points spanning maximal volume: the
// farthest pair among the axis extremes, the point farthest from
// their line, and the point farthest from their plane.
func initialTetrahedron(points []mgl64.Vec3, eps float64) ([4]int, error) {
	var seed [4]int

	// Extremes along each coordinate axis.
	extremes := make([]int, 6)
	for i, p := range points {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < points[extremes[axis*2]][axis] {
				extremes[axis*2] = i
			}
			if p[axis] > points[extremes[axis*2+1]][axis] {
				extremes[axis*2+1] = i
			}
		}
	}

	// Farthest pair among the extremes.
	best := -1.0
	for x := 0; x < len(extremes); x++ {
		for y := x + 1; y < len(extremes); y++ {
			d := points[extremes[x]].Sub(points[extremes[y]]).Len()
			if d > best {
				best = d
				seed[0], seed[1] = extremes[x], extremes[y]
			}
		}
	}
	if best <= eps {
		return seed, fmt.Errorf("%w: all points coincide", ErrDegenerateHull)
	}

	// Farthest point from the seed line.
	a, b := points[seed[0]], points[seed[1]]
	dir := b.Sub(a).Normalize()
	best = -1.0
	for i, p := range points {
		ap := p.Sub(a)
		d := ap.Sub(dir.Mul(ap.Dot(dir))).Len()
		if d > best {
			best = d
			seed[2] = i
		}
	}
	if best <= eps {
		return seed, fmt.Errorf("%w: all points collinear", ErrDegenerateHull)
	}

	// Farthest point from the seed plane.
	n := b.Sub(a).Cross(points[seed[2]].Sub(a)).Normalize()
	best = -1.0
	for i, p := range points {
		d := math.Abs(n.Dot(p.Sub(a)))
		if d > best {
			best = d
			seed[3] = i
		}
	}
	if best <= eps {
		return seed, fmt.Errorf("%w: all points coplanar", ErrDegenerateHull)
	}

	return seed, nil
}

// seedFaces builds the four outward-oriented faces of the seed
// tetrahedron.
func seedFaces(points []mgl64.Vec3, seed [4]int) []tri {
	interior := points[seed[0]].
		Add(points[seed[1]]).
		Add(points[seed[2]]).
		Add(points[seed[3]]).Mul(0.25)

	idx := [4][3]int{
		{seed[0], seed[1], seed[2]},
		{seed[0], seed[1], seed[3]},
		{seed[0], seed[2], seed[3]},
		{seed[1], seed[2], seed[3]},
	}

	faces := make([]tri, 0, 4)
	for _, f := range idx {
		faces = append(faces, newTri(points, f[0], f[1], f[2], interior))
	}
	return faces
}

// newTri builds a face from three point indices, flipping the winding
// if needed so the normal points away from the given interior point.
func newTri(points []mgl64.Vec3, a, b, c int, interior mgl64.Vec3) tri {
	va, vb, vc := points[a], points[b], points[c]
	n := vb.Sub(va).Cross(vc.Sub(va))
	if n.Dot(interior.Sub(va)) > 0 {
		b, c = c, b
		n = n.Mul(-1)
	}
	n = n.Normalize()
	return tri{a: a, b: b, c: c, n: n, d: n.Dot(points[a])}
}

// addPoint folds one point into the hull. Points inside or on the
// current surface are absorbed unchanged; otherwise every face visible
// from the point is replaced by a fan from the point to the horizon.
func addPoint(points []mgl64.Vec3, faces []tri, p int, eps float64) []tri {
	pt := points[p]

	visible := make([]bool, len(faces))
	any := false
	for i, f := range faces {
		if f.n.Dot(pt)-f.d > eps {
			visible[i] = true
			any = true
		}
	}
	if !any {
		return faces
	}

	// Directed edges of the visible region, in face order so the
	// resulting face list is deterministic. An edge whose twin is not
	// in the region lies on the horizon.
	type edge struct{ u, v int }
	var ordered []edge
	inRegion := make(map[edge]bool)
	for i, f := range faces {
		if !visible[i] {
			continue
		}
		for _, e := range [3]edge{{f.a, f.b}, {f.b, f.c}, {f.c, f.a}} {
			ordered = append(ordered, e)
			inRegion[e] = true
		}
	}

	kept := make([]tri, 0, len(faces))
	for i, f := range faces {
		if !visible[i] {
			kept = append(kept, f)
		}
	}

	// New faces reuse the visible side's edge direction, which keeps
	// the surface orientation consistent without an interior test.
	for _, e := range ordered {
		if inRegion[edge{e.v, e.u}] {
			continue
		}
		va, vb := points[e.u], points[e.v]
		n := vb.Sub(va).Cross(pt.Sub(va)).Normalize()
		kept = append(kept, tri{a: e.u, b: e.v, c: p, n: n, d: n.Dot(va)})
	}

	return kept
}

// compact reindexes the surviving faces against a minimal vertex set
// and derives per-face normals and areas.
func compact(points []mgl64.Vec3, faces []tri) *Hull {
	remap := make(map[int]int)
	h := &Hull{Faces: make([]Face, 0, len(faces))}

	use := func(i int) int {
		if j, ok := remap[i]; ok {
			return j
		}
		j := len(h.Vertices)
		remap[i] = j
		h.Vertices = append(h.Vertices, points[i])
		return j
	}

	for _, f := range faces {
		va, vb, vc := points[f.a], points[f.b], points[f.c]
		cross := vb.Sub(va).Cross(vc.Sub(va))
		h.Faces = append(h.Faces, Face{
			V:      [3]int{use(f.a), use(f.b), use(f.c)},
			Normal: f.n,
			Area:   cross.Len() / 2,
		})
	}
	return h
}

// TotalArea returns the summed area of all hull faces.
func (h *Hull) TotalArea() float64 {
	total := 0.0
	for _, f := range h.Faces {
		total += f.Area
	}
	return total
}

// Contains reports whether p lies on or inside the hull, allowing the
// given tolerance outside each face plane.
func (h *Hull) Contains(p mgl64.Vec3, tol float64) bool {
	for _, f := range h.Faces {
		va := h.Vertices[f.V[0]]
		if f.Normal.Dot(p.Sub(va)) > tol {
			return false
		}
	}
	return true
}

// FaceCentroid returns the centroid of one triangular face.
func (h *Hull) FaceCentroid(f Face) mgl64.Vec3 {
	return h.Vertices[f.V[0]].
		Add(h.Vertices[f.V[1]]).
		Add(h.Vertices[f.V[2]]).Mul(1.0 / 3.0)
}
