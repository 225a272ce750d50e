// Package mesh defines the kernel-agnostic mesh and solid value types
// shared by the geometry builder, the grid populator and the exporters.
// A Solid is plain data: named submeshes in solid-local coordinates
// (Y up) plus a world position and identification metadata. Rendering
// and GPU buffer ownership live entirely in the frontend.
package mesh

import (
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

// Mesh is a triangle mesh. When Indices is nil the vertex slice is a
// triangle soup: every three consecutive vertices form one triangle.
type Mesh struct {
	Name     string
	Vertices []r3.Vec
	Indices  []uint32
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m.Indices != nil {
		return len(m.Indices) / 3
	}
	return len(m.Vertices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Triangle returns the three corners of triangle i, resolving indices
// when the mesh is indexed.
func (m *Mesh) Triangle(i int) (a, b, c r3.Vec) {
	if m.Indices != nil {
		return m.Vertices[m.Indices[i*3]],
			m.Vertices[m.Indices[i*3+1]],
			m.Vertices[m.Indices[i*3+2]]
	}
	return m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]
}

// Translate returns a copy of the mesh with every vertex offset by v.
func (m *Mesh) Translate(v r3.Vec) *Mesh {
	out := &Mesh{
		Name:     m.Name,
		Vertices: make([]r3.Vec, len(m.Vertices)),
	}
	if m.Indices != nil {
		out.Indices = make([]uint32, len(m.Indices))
		copy(out.Indices, m.Indices)
	}
	for i, p := range m.Vertices {
		out.Vertices[i] = r3.Add(p, v)
	}
	return out
}

// Dimensions is the outer size of a solid in mm.
type Dimensions struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// Solid is one generated box: named submeshes plus the metadata the
// export pipeline needs to identify it. Solids are rebuilt wholesale on
// every settings change and never mutated in place.
type Solid struct {
	ID            uuid.UUID
	Name          string
	Meshes        []*Mesh
	Position      r3.Vec // world placement of the solid-local origin
	Cell          [3]int // grid coordinates (x, y, z)
	Dimensions    Dimensions
	WallThickness float64
	BorderRadius  float64
	HasFoot       bool
	Valid         bool // advisory print-validity flag, never blocking
}

// TriangleCount returns the total triangle count across all submeshes.
func (s *Solid) TriangleCount() int {
	n := 0
	for _, m := range s.Meshes {
		n += m.TriangleCount()
	}
	return n
}

// Bounds returns the axis-aligned bounding box of the solid in local
// coordinates. Returns zero boxes for empty solids.
func (s *Solid) Bounds() (min, max r3.Vec) {
	first := true
	for _, m := range s.Meshes {
		for _, p := range m.Vertices {
			if first {
				min, max = p, p
				first = false
				continue
			}
			min = r3.Vec{X: minf(min.X, p.X), Y: minf(min.Y, p.Y), Z: minf(min.Z, p.Z)}
			max = r3.Vec{X: maxf(max.X, p.X), Y: maxf(max.Y, p.Y), Z: maxf(max.Z, p.Z)}
		}
	}
	return min, max
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
