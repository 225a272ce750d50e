package box

import (
	"math"

	"github.com/chrisknsmn/printbox/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// point2 is a profile point in the XZ plane (the solid's footprint
// plane; Y is up).
type point2 struct {
	X, Z float64
}

// cornerSegments is the number of line segments approximating each
// quadratic Bézier corner arc.
const cornerSegments = 8

// roundedRectProfile returns a closed profile for a width×depth rounded
// rectangle centered at the origin. The boundary is four straight edges
// joined by quadratic Bézier corner arcs of the given radius, sampled
// at cornerSegments points per corner. The vertex count is the same for
// every radius (including 0) so that two profiles can be paired into an
// annulus strip. Orientation is positive (counterclockwise in XZ).
func roundedRectProfile(width, depth, radius float64) []point2 {
	hw, hd := width/2, depth/2
	r := radius
	if r < 0 {
		r = 0
	}
	if r > hw {
		r = hw
	}
	if r > hd {
		r = hd
	}

	// Corners in positive orientation with, per corner, the tangent
	// point where the incoming straight edge ends and the one where the
	// outgoing edge starts.
	type corner struct {
		at, in, out point2
	}
	corners := [4]corner{
		{at: point2{hw, hd}, in: point2{hw, hd - r}, out: point2{hw - r, hd}},
		{at: point2{-hw, hd}, in: point2{-hw + r, hd}, out: point2{-hw, hd - r}},
		{at: point2{-hw, -hd}, in: point2{-hw, -hd + r}, out: point2{-hw + r, -hd}},
		{at: point2{hw, -hd}, in: point2{hw - r, -hd}, out: point2{hw, -hd + r}},
	}

	profile := make([]point2, 0, 4*(cornerSegments+1))
	for _, c := range corners {
		profile = append(profile, c.in)
		for i := 1; i <= cornerSegments; i++ {
			t := float64(i) / cornerSegments
			profile = append(profile, quadBezier(c.in, c.at, c.out, t))
		}
	}
	return profile
}

// quadBezier evaluates the quadratic Bézier curve p0→p2 with control
// point p1 at parameter t.
func quadBezier(p0, p1, p2 point2, t float64) point2 {
	u := 1 - t
	return point2{
		X: u*u*p0.X + 2*u*t*p1.X + t*t*p2.X,
		Z: u*u*p0.Z + 2*u*t*p1.Z + t*t*p2.Z,
	}
}

// circleProfile returns a closed circular profile of the given radius
// centered at the origin, in positive orientation.
func circleProfile(radius float64, segments int) []point2 {
	profile := make([]point2, segments)
	for i := 0; i < segments; i++ {
		theta := 2 * math.Pi * float64(i) / float64(segments)
		profile[i] = point2{X: radius * math.Cos(theta), Z: radius * math.Sin(theta)}
	}
	return profile
}

// extrudePrism builds a closed solid prism by extruding a simple closed
// profile from y0 to y1: side walls, a bottom cap at y0 and a top cap
// at y1. The profile must be convex (caps are triangle fans).
func extrudePrism(name string, profile []point2, y0, y1 float64) *mesh.Mesh {
	n := len(profile)
	m := &mesh.Mesh{Name: name}

	at := func(p point2, y float64) r3.Vec {
		return r3.Vec{X: p.X, Y: y, Z: p.Z}
	}

	// Side walls, outward-facing.
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		bi, bj := at(profile[i], y0), at(profile[j], y0)
		ti, tj := at(profile[i], y1), at(profile[j], y1)
		m.Vertices = append(m.Vertices, bi, tj, bj, bi, ti, tj)
	}

	// Caps: fan from vertex 0. Top faces +Y, bottom faces -Y.
	for i := 1; i < n-1; i++ {
		m.Vertices = append(m.Vertices,
			at(profile[0], y1), at(profile[i+1], y1), at(profile[i], y1),
			at(profile[0], y0), at(profile[i], y0), at(profile[i+1], y0),
		)
	}
	return m
}

// extrudeAnnulus builds a closed ring prism between an outer and an
// inner profile with identical vertex counts: outer walls face outward,
// hole walls face into the hole, and the top/bottom caps are quad
// strips between corresponding vertices.
func extrudeAnnulus(name string, outer, inner []point2, y0, y1 float64) *mesh.Mesh {
	n := len(outer)
	m := &mesh.Mesh{Name: name}

	at := func(p point2, y float64) r3.Vec {
		return r3.Vec{X: p.X, Y: y, Z: p.Z}
	}

	for i := 0; i < n; i++ {
		j := (i + 1) % n
		ob, oj := at(outer[i], y0), at(outer[j], y0)
		ot, otj := at(outer[i], y1), at(outer[j], y1)
		ib, ij := at(inner[i], y0), at(inner[j], y0)
		it, itj := at(inner[i], y1), at(inner[j], y1)

		// Outer wall, outward.
		m.Vertices = append(m.Vertices, ob, otj, oj, ob, ot, otj)
		// Hole wall, facing the hole axis.
		m.Vertices = append(m.Vertices, ib, ij, itj, ib, itj, it)
		// Top rim, +Y.
		m.Vertices = append(m.Vertices, ot, it, itj, ot, itj, otj)
		// Bottom rim, -Y.
		m.Vertices = append(m.Vertices, ob, ij, ib, ob, oj, ij)
	}
	return m
}

// prismBox builds a closed axis-aligned rectangular prism centered at
// the given point. Quad pairs follow the usual box topology.
func prismBox(name string, center, size r3.Vec) *mesh.Mesh {
	hx, hy, hz := size.X/2, size.Y/2, size.Z/2
	p := func(sx, sy, sz float64) r3.Vec {
		return r3.Vec{X: center.X + sx*hx, Y: center.Y + sy*hy, Z: center.Z + sz*hz}
	}

	m := &mesh.Mesh{Name: name}
	quad := func(a, b, c, d r3.Vec) {
		m.Vertices = append(m.Vertices, a, b, c, a, c, d)
	}

	quad(p(-1, 1, 1), p(1, 1, 1), p(1, 1, -1), p(-1, 1, -1))     // top, +Y
	quad(p(-1, -1, -1), p(1, -1, -1), p(1, -1, 1), p(-1, -1, 1)) // bottom, -Y
	quad(p(-1, -1, 1), p(1, -1, 1), p(1, 1, 1), p(-1, 1, 1))     // front, +Z
	quad(p(1, -1, -1), p(-1, -1, -1), p(-1, 1, -1), p(1, 1, -1)) // back, -Z
	quad(p(1, -1, 1), p(1, -1, -1), p(1, 1, -1), p(1, 1, 1))     // right, +X
	quad(p(-1, -1, -1), p(-1, -1, 1), p(-1, 1, 1), p(-1, 1, -1)) // left, -X
	return m
}
