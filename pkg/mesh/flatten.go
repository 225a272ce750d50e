package mesh

import "gonum.org/v1/gonum/spatial/r3"

// FlatMesh is the flat-array view of a submesh sent to the frontend:
// 3 floats per vertex, per-vertex face normals, 3 uint32s per triangle.
type FlatMesh struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
}

// Flatten expands a mesh into the flat soup layout the viewport uploads
// directly to GPU buffers. Indexed meshes are de-indexed so that every
// vertex can carry its face normal (flat shading).
func Flatten(m *Mesh) FlatMesh {
	nt := m.TriangleCount()
	out := FlatMesh{
		Vertices: make([]float32, 0, nt*9),
		Normals:  make([]float32, 0, nt*9),
		Indices:  make([]uint32, 0, nt*3),
		PartName: m.Name,
	}
	for i := 0; i < nt; i++ {
		a, b, c := m.Triangle(i)
		n := TriangleNormal(a, b, c)
		nx, ny, nz := float32(n.X), float32(n.Y), float32(n.Z)
		for _, v := range [3]r3.Vec{a, b, c} {
			out.Vertices = append(out.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
			out.Normals = append(out.Normals, nx, ny, nz)
			out.Indices = append(out.Indices, uint32(len(out.Indices)))
		}
	}
	return out
}

// TriangleNormal returns the unit face normal of triangle (a, b, c),
// or the zero vector when the triangle is degenerate.
func TriangleNormal(a, b, c r3.Vec) r3.Vec {
	cr := r3.Cross(r3.Sub(c, b), r3.Sub(a, b))
	if r3.Norm2(cr) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(cr)
}
