// Package stl serializes box solids to STL, binary by default with an
// ASCII variant. The writer bakes the solid's world transform into the
// vertices, reorients Y-up model space to the Z-up STL convention and
// rests the solid on the z=0 plane, so the output is printable as-is.
package stl

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"

	"github.com/chewxy/math32"
	"github.com/chrisknsmn/printbox/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	headerSize   = 84 // 80-byte comment + uint32 triangle count
	triangleSize = 50 // 12-byte normal + 3 vertices + attribute word

	// degenerateTol is the squared cross-product magnitude below which
	// a triangle is considered zero-area and skipped. Extrusion edge
	// cases (zero-radius corners, closed cavities) produce coincident
	// vertices; emitting them would corrupt the STL facets.
	degenerateTol = 1e-10
)

// headerComment lands in the 80-byte STL header.
const headerComment = "printbox binary export"

// triangle is one oriented facet in output (Z-up) space.
type triangle struct {
	n       r3.Vec
	a, b, c r3.Vec
}

// orient bakes the world position into a vertex and maps model space
// (Y up) onto STL space (Z up): a 90° rotation about X.
func orient(v, position r3.Vec) r3.Vec {
	w := r3.Add(v, position)
	return r3.Vec{X: w.X, Y: -w.Z, Z: w.Y}
}

// collect gathers the printable facets of a solid: transform-baked,
// reoriented, degenerate-filtered, normals from cross(c-b, a-b), and
// the whole set translated so the lowest point sits at z=0.
func collect(s *mesh.Solid) []triangle {
	out := make([]triangle, 0, s.TriangleCount())
	minZ := math.Inf(1)

	for _, m := range s.Meshes {
		nt := m.TriangleCount()
		for i := 0; i < nt; i++ {
			a, b, c := m.Triangle(i)
			a = orient(a, s.Position)
			b = orient(b, s.Position)
			c = orient(c, s.Position)

			cr := r3.Cross(r3.Sub(c, b), r3.Sub(a, b))
			if r3.Norm2(cr) < degenerateTol {
				continue
			}
			if badVec(a) || badVec(b) || badVec(c) {
				continue
			}
			out = append(out, triangle{n: r3.Unit(cr), a: a, b: b, c: c})
			minZ = math.Min(minZ, math.Min(a.Z, math.Min(b.Z, c.Z)))
		}
	}

	if len(out) == 0 {
		return out
	}
	drop := r3.Vec{Z: -minZ}
	for i := range out {
		out[i].a = r3.Add(out[i].a, drop)
		out[i].b = r3.Add(out[i].b, drop)
		out[i].c = r3.Add(out[i].c, drop)
	}
	return out
}

// badVec reports vertices that do not survive the float32 narrowing.
func badVec(v r3.Vec) bool {
	return bad32(float32(v.X)) || bad32(float32(v.Y)) || bad32(float32(v.Z))
}

func bad32(f float32) bool {
	return math32.IsNaN(f) || math32.IsInf(f, 0)
}

// Encode serializes a solid to binary STL. The buffer is allocated
// with a 2x margin over the pre-skip triangle estimate and trimmed to
// the bytes actually written; the header count is the post-skip count.
func Encode(s *mesh.Solid) []byte {
	estimate := s.TriangleCount()
	buf := make([]byte, headerSize+2*estimate*triangleSize)
	copy(buf, headerComment)

	tris := collect(s)
	off := headerSize
	for _, t := range tris {
		put3F32(buf[off:], t.n)
		put3F32(buf[off+12:], t.a)
		put3F32(buf[off+24:], t.b)
		put3F32(buf[off+36:], t.c)
		binary.LittleEndian.PutUint16(buf[off+48:], 0)
		off += triangleSize
	}
	binary.LittleEndian.PutUint32(buf[80:], uint32(len(tris)))
	return buf[:off]
}

// EncodeASCII serializes a solid to the textual solid/facet/endsolid
// format with the same normal and degenerate-skip rules as Encode.
func EncodeASCII(s *mesh.Solid) []byte {
	var b bytes.Buffer
	name := s.Name
	if name == "" {
		name = "printbox"
	}
	fmt.Fprintf(&b, "solid %s\n", name)
	for _, t := range collect(s) {
		fmt.Fprintf(&b, "facet normal %g %g %g\n", t.n.X, t.n.Y, t.n.Z)
		b.WriteString("  outer loop\n")
		for _, v := range [3]r3.Vec{t.a, t.b, t.c} {
			fmt.Fprintf(&b, "    vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		b.WriteString("  endloop\nendfacet\n")
	}
	fmt.Fprintf(&b, "endsolid %s\n", name)
	return b.Bytes()
}

func put3F32(b []byte, v r3.Vec) {
	_ = b[11] // early bounds check
	binary.LittleEndian.PutUint32(b, math.Float32bits(float32(v.X)))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(float32(v.Y)))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(float32(v.Z)))
}
