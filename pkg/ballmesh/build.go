package ballmesh

import (
	"errors"
	"fmt"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/go-gl/mathgl/mgl64"
)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// ErrNoBalls is returned when an assembly with no ball centers is
// meshed; an empty solid has no marching-cubes domain.
var ErrNoBalls = errors.New("ballmesh: assembly has no ball centers")

// Build meshes an assembly of balls at the given centers and radius,
// at the default tessellation resolution.
func Build(centers []mgl64.Vec3, radius float64) (*Mesh, error) {
	return BuildDetail(centers, radius, defaultMeshCells)
}

// BuildDetail meshes an assembly of balls with an explicit marching
// cubes resolution. Centers typically come from lattice.Project, and
// radius from lattice.BallRadius so adjacent balls touch exactly.
func BuildDetail(centers []mgl64.Vec3, radius float64, cells int) (*Mesh, error) {
	if len(centers) == 0 {
		return nil, ErrNoBalls
	}
	if radius <= 0 {
		return nil, fmt.Errorf("ballmesh: radius must be positive, got %v", radius)
	}

	solid, err := assemble(centers, radius)
	if err != nil {
		return nil, err
	}

	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(solid, renderer)

	numVerts := len(triangles) * 3
	m := &Mesh{
		Vertices: make([]float32, 0, numVerts*3),
		Normals:  make([]float32, 0, numVerts*3),
		Indices:  make([]uint32, 0, numVerts),
	}

	for i, tri := range triangles {
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			m.Vertices = append(m.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			m.Normals = append(m.Normals, nx, ny, nz)
			m.Indices = append(m.Indices, uint32(i*3+j))
		}
	}

	return m, nil
}

// assemble unions one sphere per ball center.
func assemble(centers []mgl64.Vec3, radius float64) (sdf.SDF3, error) {
	balls := make([]sdf.SDF3, 0, len(centers))
	for _, c := range centers {
		s, err := sdf.Sphere3D(radius)
		if err != nil {
			return nil, fmt.Errorf("ballmesh: sphere: %w", err)
		}
		mtx := sdf.Translate3d(v3.Vec{X: c.X(), Y: c.Y(), Z: c.Z()})
		balls = append(balls, sdf.Transform3D(s, mtx))
	}
	return sdf.Union3D(balls...), nil
}
