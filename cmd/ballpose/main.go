// Command ballpose computes the rest pose for a ball puzzle assembly.
// It reads a JSON assembly file, resolves each piece's placement to
// lattice cells, projects the cells into continuous space, and prints
// the resulting rotation and grounding translation as JSON. With -stl
// it also writes a mesh of the grounded assembly.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/ABakker30/ballpuzzle4-sub000/pkg/ballmesh"
	"github.com/ABakker30/ballpuzzle4-sub000/pkg/lattice"
	"github.com/ABakker30/ballpuzzle4-sub000/pkg/orient"
)

// assemblyFile is the on-disk assembly format: a named set of placed
// pieces at a lattice scale.
type assemblyFile struct {
	Name   string              `json:"name"`
	Scale  float64             `json:"scale"`
	Pieces []lattice.Placement `json:"pieces"`
}

// poseOutput is the JSON result printed on stdout.
type poseOutput struct {
	Name        string     `json:"name,omitempty"`
	Rotation    [4]float64 `json:"rotation"` // w, x, y, z
	Translation [3]float64 `json:"translation"`
	Centroid    [3]float64 `json:"centroid"`
	TotalArea   float64    `json:"totalHullArea"`
	PatchArea   float64    `json:"patchArea,omitempty"`
	Fallback    bool       `json:"fallback"`
	Balls       int        `json:"balls"`
}

func main() {
	var (
		in     = flag.String("in", "", "assembly JSON file (required)")
		scale  = flag.Float64("scale", 0, "override the lattice scale from the file")
		stlOut = flag.String("stl", "", "write a grounded assembly mesh to this STL file")
		radius = flag.Float64("radius", 0, "ball radius for -stl (default: touching spheres)")
		cells  = flag.Int("cells", 200, "marching cubes resolution for -stl")
	)
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	asm, err := loadAssembly(*in)
	if err != nil {
		log.Fatalf("load assembly: %v", err)
	}

	s := asm.Scale
	if *scale > 0 {
		s = *scale
	}
	if s <= 0 {
		s = 1
	}

	points, err := projectPieces(asm.Pieces, s)
	if err != nil {
		log.Fatalf("resolve placements: %v", err)
	}

	res, err := orient.Solve(points, orient.DefaultConfig())
	if err != nil {
		log.Fatalf("solve orientation: %v", err)
	}

	out := poseOutput{
		Name:        asm.Name,
		Rotation:    [4]float64{res.Rotation.W, res.Rotation.V.X(), res.Rotation.V.Y(), res.Rotation.V.Z()},
		Translation: res.Translation,
		Centroid:    res.Centroid,
		TotalArea:   res.TotalArea,
		Fallback:    res.Fallback,
		Balls:       len(points),
	}
	if res.Patch != nil {
		out.PatchArea = res.Patch.Area
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("encode pose: %v", err)
	}

	if *stlOut != "" {
		if err := writeSTL(*stlOut, points, res, s, *radius, *cells); err != nil {
			log.Fatalf("write stl: %v", err)
		}
		log.Printf("wrote %s", *stlOut)
	}
}

// loadAssembly reads and decodes an assembly file.
func loadAssembly(path string) (*assemblyFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var asm assemblyFile
	if err := json.Unmarshal(data, &asm); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &asm, nil
}

// projectPieces resolves every placement and projects the cells into
// continuous space at the given lattice scale.
func projectPieces(pieces []lattice.Placement, scale float64) ([]mgl64.Vec3, error) {
	var points []mgl64.Vec3
	for i, p := range pieces {
		cells, err := p.Resolve()
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", i, err)
		}
		for _, c := range cells {
			points = append(points, lattice.Project(c, scale))
		}
	}
	return points, nil
}

// writeSTL meshes the assembly in its grounded pose and writes it out.
func writeSTL(path string, points []mgl64.Vec3, res orient.Result, scale, radius float64, cells int) error {
	if radius <= 0 {
		radius = lattice.BallRadius(scale)
	}

	grounded := make([]mgl64.Vec3, len(points))
	for i, p := range points {
		grounded[i] = res.Apply(p)
	}

	m, err := ballmesh.BuildDetail(grounded, radius, cells)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ballmesh.WriteSTL(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
