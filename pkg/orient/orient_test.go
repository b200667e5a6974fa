package orient

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ABakker30/ballpuzzle4-sub000/pkg/hull"
	"github.com/ABakker30/ballpuzzle4-sub000/pkg/lattice"
)

// box returns the 8 corners of an axis-aligned box centered at the
// origin with the given full extents.
func box(sx, sy, sz float64) []mgl64.Vec3 {
	var pts []mgl64.Vec3
	for _, x := range []float64{-sx / 2, sx / 2} {
		for _, y := range []float64{-sy / 2, sy / 2} {
			for _, z := range []float64{-sz / 2, sz / 2} {
				pts = append(pts, mgl64.Vec3{x, y, z})
			}
		}
	}
	return pts
}

// spherePoints returns n deterministic golden-spiral points on a
// sphere of the given radius.
func spherePoints(n int, radius float64) []mgl64.Vec3 {
	golden := math.Pi * (3 - math.Sqrt(5))
	pts := make([]mgl64.Vec3, 0, n)
	for i := 0; i < n; i++ {
		y := 1 - 2*float64(i)/float64(n-1)
		r := math.Sqrt(1 - y*y)
		theta := golden * float64(i)
		pts = append(pts, mgl64.Vec3{
			radius * r * math.Cos(theta),
			radius * y,
			radius * r * math.Sin(theta),
		})
	}
	return pts
}

// groundedBounds applies the pose to every point and returns the
// resulting min and max Y.
func groundedBounds(res Result, pts []mgl64.Vec3) (minY, maxY float64) {
	minY, maxY = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		y := res.Apply(p).Y()
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}
	return minY, maxY
}

func TestSolveUnitCube(t *testing.T) {
	pts := box(1, 1, 1)
	res, err := Solve(pts, DefaultConfig())
	require.NoError(t, err)

	require.False(t, res.Fallback)
	require.NotNil(t, res.Patch)
	assert.InDelta(t, 1.0, res.Patch.Area, 1e-9, "largest patch should be one cube face")
	assert.InDelta(t, 6.0, res.TotalArea, 1e-9)

	minY, maxY := groundedBounds(res, pts)
	assert.InDelta(t, 0.0, minY, 1e-9, "grounded")
	assert.InDelta(t, 1.0, maxY-minY, 1e-9, "cube rests at height 1")

	assert.InDelta(t, 1.0, quatNorm(res.Rotation), 1e-9, "unit quaternion")
	assert.Equal(t, 0.0, res.Translation.X())
	assert.Equal(t, 0.0, res.Translation.Z())
}

func quatNorm(q mgl64.Quat) float64 {
	return math.Sqrt(q.W*q.W + q.V.Dot(q.V))
}

func TestSolveBoxTieBreak(t *testing.T) {
	// 1x1x2 box: the four long sides tie on area; resting on any of
	// them gives height 1, never 2.
	pts := box(1, 1, 2)
	res, err := Solve(pts, DefaultConfig())
	require.NoError(t, err)

	require.False(t, res.Fallback)
	assert.InDelta(t, 2.0, res.Patch.Area, 1e-9)

	minY, maxY := groundedBounds(res, pts)
	assert.InDelta(t, 0.0, minY, 1e-9)
	assert.InDelta(t, 1.0, maxY-minY, 1e-9, "tie-break must pick a side, not an end")
}

func TestSolveSphereFallback(t *testing.T) {
	pts := spherePoints(20, 1)
	res, err := Solve(pts, DefaultConfig())
	require.NoError(t, err)

	assert.True(t, res.Fallback, "no patch should dominate a sphere")
	assert.Nil(t, res.Patch)

	minY, _ := groundedBounds(res, pts)
	assert.InDelta(t, 0.0, minY, 1e-9, "fallback results still ground at zero")
}

func TestSolveFlatLatticePiece(t *testing.T) {
	// Four lattice cells in one close-packed plane: the hull is
	// degenerate and must route to the fallback without an error.
	cells := []lattice.Cell{
		{I: 0, J: 0, K: 0},
		{I: 1, J: 0, K: 0},
		{I: 0, J: 1, K: 0},
		{I: 1, J: 1, K: 0},
	}
	var pts []mgl64.Vec3
	for _, c := range cells {
		pts = append(pts, lattice.Project(c, 1))
	}

	res, err := Solve(pts, DefaultConfig())
	require.NoError(t, err)
	require.True(t, res.Fallback)

	// The plane normal becomes the support normal, so every cell
	// lands exactly on the ground.
	for _, p := range pts {
		assert.InDelta(t, 0.0, res.Apply(p).Y(), 1e-9)
	}
}

func TestSolveInsufficientPoints(t *testing.T) {
	_, err := Solve([]mgl64.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, DefaultConfig())
	require.ErrorIs(t, err, hull.ErrInsufficientPoints)
}

func TestSolveIdempotent(t *testing.T) {
	pts := append(box(1, 1, 2), spherePoints(9, 0.4)...)
	cfg := DefaultConfig()

	a, err := Solve(pts, cfg)
	require.NoError(t, err)
	b, err := Solve(pts, cfg)
	require.NoError(t, err)

	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("Solve is not bit-identical across calls:\n%s", diff)
	}
}

func TestGrounding(t *testing.T) {
	clouds := map[string][]mgl64.Vec3{
		"cube":      box(1, 1, 1),
		"slab":      box(4, 0.5, 3),
		"sphere":    spherePoints(40, 2),
		"offcenter": {{3, 4, 5}, {4, 4, 5}, {3, 5, 5}, {3, 4, 6}, {4, 5, 6}},
	}
	for name, pts := range clouds {
		t.Run(name, func(t *testing.T) {
			res, err := Solve(pts, DefaultConfig())
			require.NoError(t, err)
			minY, _ := groundedBounds(res, pts)
			assert.InDelta(t, 0.0, minY, 1e-9)
			for _, p := range pts {
				assert.GreaterOrEqual(t, res.Apply(p).Y(), -1e-9)
			}
		})
	}
}

func TestPatchPartition(t *testing.T) {
	for name, pts := range map[string][]mgl64.Vec3{
		"cube":   box(1, 1, 1),
		"sphere": spherePoints(25, 1),
	} {
		t.Run(name, func(t *testing.T) {
			h, err := hull.Build(pts)
			require.NoError(t, err)
			patches := ClusterPatches(h, DefaultConfig())

			seen := make(map[int]int)
			total := 0.0
			for _, p := range patches {
				total += p.Area
				for _, f := range p.Faces {
					seen[f]++
				}
			}
			for fi := range h.Faces {
				assert.Equal(t, 1, seen[fi], "face %d must be in exactly one patch", fi)
			}
			assert.InDelta(t, h.TotalArea(), total, 1e-9)
		})
	}
}

func TestClusterPatchesCube(t *testing.T) {
	h, err := hull.Build(box(1, 1, 1))
	require.NoError(t, err)
	patches := ClusterPatches(h, DefaultConfig())

	require.Len(t, patches, 6)
	for _, p := range patches {
		assert.Len(t, p.Faces, 2)
		assert.InDelta(t, 1.0, p.Area, 1e-9)
		assert.InDelta(t, 1.0, p.Normal.Len(), 1e-12)
	}
}

func TestConfigOverrideForcesFallback(t *testing.T) {
	// A cube face holds 1/6 of the total area; raising the dominance
	// threshold above that must push even a cube onto the fallback.
	cfg := DefaultConfig()
	cfg.MinPatchAreaRatio = 0.2

	res, err := Solve(box(1, 1, 1), cfg)
	require.NoError(t, err)
	assert.True(t, res.Fallback)
}

func TestSnapToAxis(t *testing.T) {
	tests := []struct {
		name string
		in   mgl64.Vec3
		want mgl64.Vec3
		snap bool
	}{
		{"exact axis", mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 0}, true},
		{"slight jitter +x", mgl64.Vec3{1, 0.005, 0}.Normalize(), mgl64.Vec3{1, 0, 0}, true},
		{"slight jitter -z", mgl64.Vec3{0.002, -0.003, -1}.Normalize(), mgl64.Vec3{0, 0, -1}, true},
		{"diagonal stays", mgl64.Vec3{1, 1, 1}.Normalize(), mgl64.Vec3{}, false},
		{"two degrees off", mgl64.Vec3{math.Cos(mgl64.DegToRad(2)), math.Sin(mgl64.DegToRad(2)), 0}, mgl64.Vec3{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := snapToAxis(tt.in, 1)
			if tt.snap {
				assert.Equal(t, tt.want, got)
			} else {
				assert.Equal(t, tt.in, got, "must not snap")
			}
		})
	}
}

func TestRotationBetween(t *testing.T) {
	t.Run("aligned gives identity", func(t *testing.T) {
		q := rotationBetween(mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 1, 0})
		assert.Equal(t, mgl64.QuatIdent(), q)
	})

	t.Run("antiparallel flips", func(t *testing.T) {
		from := mgl64.Vec3{0, -1, 0}
		q := rotationBetween(from, up)
		got := q.Rotate(from)
		for axis := 0; axis < 3; axis++ {
			assert.InDelta(t, up[axis], got[axis], 1e-12)
		}
	})

	t.Run("generic minimal rotation", func(t *testing.T) {
		from := mgl64.Vec3{1, 2, -0.5}.Normalize()
		q := rotationBetween(from, up)
		got := q.Rotate(from)
		for axis := 0; axis < 3; axis++ {
			assert.InDelta(t, up[axis], got[axis], 1e-12)
		}
		assert.InDelta(t, 1.0, quatNorm(q), 1e-12)
	})
}

func TestPrincipalAxisNormal(t *testing.T) {
	// A thin slab in the XZ plane disperses least along Y; the
	// deterministic sign rule points the axis downward.
	var pts []mgl64.Vec3
	for x := -2; x <= 2; x++ {
		for z := -2; z <= 2; z++ {
			pts = append(pts, mgl64.Vec3{float64(x), 0, float64(z)})
		}
	}
	n := principalAxisNormal(pts)
	assert.InDelta(t, 0.0, n.X(), 1e-9)
	assert.InDelta(t, -1.0, n.Y(), 1e-9)
	assert.InDelta(t, 0.0, n.Z(), 1e-9)
}
