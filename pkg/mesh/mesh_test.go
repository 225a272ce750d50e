package mesh

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func soupTriangle() *Mesh {
	return &Mesh{
		Name: "soup",
		Vertices: []r3.Vec{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0},
		},
	}
}

func indexedQuad() *Mesh {
	return &Mesh{
		Name: "quad",
		Vertices: []r3.Vec{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0},
			{X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
}

func TestTriangleCount(t *testing.T) {
	if got := soupTriangle().TriangleCount(); got != 1 {
		t.Errorf("soup count = %d, want 1", got)
	}
	if got := indexedQuad().TriangleCount(); got != 2 {
		t.Errorf("indexed count = %d, want 2", got)
	}
}

func TestTriangleResolvesIndices(t *testing.T) {
	m := indexedQuad()
	a, b, c := m.Triangle(1)
	want := [3]r3.Vec{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}}
	if a != want[0] || b != want[1] || c != want[2] {
		t.Errorf("Triangle(1) = %v %v %v, want %v", a, b, c, want)
	}
}

func TestTranslateCopies(t *testing.T) {
	m := indexedQuad()
	moved := m.Translate(r3.Vec{X: 10, Y: 20, Z: 30})

	if moved.Vertices[2] != (r3.Vec{X: 11, Y: 21, Z: 30}) {
		t.Errorf("translated vertex = %v", moved.Vertices[2])
	}
	if m.Vertices[2] != (r3.Vec{X: 1, Y: 1, Z: 0}) {
		t.Error("Translate mutated the receiver")
	}
	moved.Indices[0] = 99
	if m.Indices[0] == 99 {
		t.Error("Translate shares the index slice")
	}
}

func TestSolidBounds(t *testing.T) {
	s := &Solid{Meshes: []*Mesh{soupTriangle(), indexedQuad().Translate(r3.Vec{Z: -2})}}
	min, max := s.Bounds()
	if min != (r3.Vec{X: 0, Y: 0, Z: -2}) || max != (r3.Vec{X: 1, Y: 1, Z: 0}) {
		t.Errorf("Bounds = %v %v", min, max)
	}
}

func TestFlattenSoupAndIndexed(t *testing.T) {
	for _, m := range []*Mesh{soupTriangle(), indexedQuad()} {
		flat := Flatten(m)
		nt := m.TriangleCount()
		if len(flat.Vertices) != nt*9 || len(flat.Normals) != nt*9 || len(flat.Indices) != nt*3 {
			t.Fatalf("%s: flat sizes %d/%d/%d for %d triangles",
				m.Name, len(flat.Vertices), len(flat.Normals), len(flat.Indices), nt)
		}
		if flat.PartName != m.Name {
			t.Errorf("PartName = %q, want %q", flat.PartName, m.Name)
		}

		// Per-vertex face normals must be unit length.
		for i := 0; i < len(flat.Normals); i += 3 {
			n := math.Sqrt(float64(flat.Normals[i])*float64(flat.Normals[i]) +
				float64(flat.Normals[i+1])*float64(flat.Normals[i+1]) +
				float64(flat.Normals[i+2])*float64(flat.Normals[i+2]))
			if math.Abs(n-1) > 1e-5 {
				t.Fatalf("%s: normal %d length %g", m.Name, i/3, n)
			}
		}
	}
}

func TestTriangleNormalDegenerate(t *testing.T) {
	p := r3.Vec{X: 1, Y: 2, Z: 3}
	if got := TriangleNormal(p, p, p); got != (r3.Vec{}) {
		t.Errorf("degenerate normal = %v, want zero", got)
	}
}
