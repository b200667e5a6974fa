package ballmesh

import (
	"encoding/binary"
	"fmt"
	"io"
)

// le is the byte order mandated by the binary STL format.
var le = binary.LittleEndian

// stlTriangle is the 50-byte on-disk triangle record.
type stlTriangle struct {
	Normal [3]float32
	Vertex [3][3]float32
	Attr   uint16
}

// WriteSTL writes the mesh as binary STL: an 80-byte header, a uint32
// triangle count, then one 50-byte little-endian record per triangle.
func WriteSTL(m *Mesh, w io.Writer) error {
	var header [80]byte
	copy(header[:], "ballpuzzle4 assembly")
	if _, err := w.Write(header[:]); err != nil {
		return fmt.Errorf("stl header: %w", err)
	}

	count := uint32(m.TriangleCount())
	if err := binary.Write(w, le, count); err != nil {
		return fmt.Errorf("stl count: %w", err)
	}

	for t := 0; t < int(count); t++ {
		var rec stlTriangle

		// Per-vertex normals in the mesh are per-face constant, so
		// the first vertex's normal stands for the facet.
		i0 := m.Indices[t*3]
		rec.Normal = [3]float32{m.Normals[i0*3], m.Normals[i0*3+1], m.Normals[i0*3+2]}

		for j := 0; j < 3; j++ {
			vi := m.Indices[t*3+j]
			rec.Vertex[j] = [3]float32{m.Vertices[vi*3], m.Vertices[vi*3+1], m.Vertices[vi*3+2]}
		}

		if err := binary.Write(w, le, &rec); err != nil {
			return fmt.Errorf("stl triangle %d: %w", t, err)
		}
	}
	return nil
}
