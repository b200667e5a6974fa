package ballmesh

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"
)

func TestWriteSTLLayout(t *testing.T) {
	// Two triangles sharing a vertex.
	m := &Mesh{
		Vertices: []float32{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			1, 1, 0,
		},
		Normals: []float32{
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
		},
		Indices: []uint32{0, 1, 2, 1, 3, 2},
	}

	var buf bytes.Buffer
	if err := WriteSTL(m, &buf); err != nil {
		t.Fatalf("WriteSTL: %v", err)
	}

	wantLen := 80 + 4 + 50*2
	if buf.Len() != wantLen {
		t.Fatalf("STL length = %d, want %d", buf.Len(), wantLen)
	}

	data := buf.Bytes()
	if count := binary.LittleEndian.Uint32(data[80:84]); count != 2 {
		t.Fatalf("triangle count = %d, want 2", count)
	}

	// First triangle record: normal then first vertex.
	nz := math.Float32frombits(binary.LittleEndian.Uint32(data[84+8 : 84+12]))
	if nz != 1 {
		t.Fatalf("first normal z = %v, want 1", nz)
	}
	v1x := math.Float32frombits(binary.LittleEndian.Uint32(data[84+12 : 84+16]))
	if v1x != 0 {
		t.Fatalf("first vertex x = %v, want 0", v1x)
	}

	// Second record starts 50 bytes after the first; its first
	// vertex is index 1 = (1,0,0).
	off := 84 + 50 + 12
	v2x := math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4]))
	if v2x != 1 {
		t.Fatalf("second triangle first vertex x = %v, want 1", v2x)
	}
}

func TestWriteSTLEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSTL(&Mesh{}, &buf); err != nil {
		t.Fatalf("WriteSTL empty: %v", err)
	}
	if buf.Len() != 84 {
		t.Fatalf("empty STL length = %d, want 84", buf.Len())
	}
}
