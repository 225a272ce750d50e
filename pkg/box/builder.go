// Package box builds a single open-top container solid from structural
// parameters. Two mutually exclusive topologies are produced: five
// rectangular prisms when the border radius is zero, or two stacked
// rounded-rectangle extrusions (floor + one-piece walls) when it is
// positive. An optional support foot is attached below the floor.
//
// The builder never returns an error: every numeric input is clamped
// defensively and degenerate cavities degrade to solid geometry.
package box

import (
	"fmt"
	"math"

	"github.com/chrisknsmn/printbox/pkg/mesh"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// MinWallThickness is the thinnest printable wall in mm.
	MinWallThickness = 2.0
	// MaxWallThicknessCap is the absolute wall thickness ceiling in mm.
	MaxWallThicknessCap = 20.0
	// MaxPrintDimension is the nominal print-bed size in mm. Solids
	// exceeding it are flagged invalid but still generated.
	MaxPrintDimension = 200.0

	// safeRadiusFactor keeps the corner arcs clear of the opposite wall.
	safeRadiusFactor = 0.9
	// innerRadiusClearance shrinks the cavity corner radius for fit.
	innerRadiusClearance = 0.9

	// minDimension floors every axis so degenerate cells still produce
	// a valid, minimal solid.
	minDimension = 1.0
)

// Params are the structural parameters of one box.
type Params struct {
	Width  float64 // outer X extent, mm
	Height float64 // outer Y extent, mm
	Depth  float64 // outer Z extent, mm

	// WallThickness pins the wall thickness in mm. Zero or negative
	// means derive it from the dimensions.
	WallThickness float64
	BorderRadius  float64
	ShowFoot      bool
}

// ResolveWallThickness returns the wall thickness actually applied for
// the given outer dimensions. An unpinned request (t <= 0) defaults to
// 5% of the smallest dimension, rounded to the nearest integer mm. The
// result is clamped into [MinWallThickness, floor(min(min(w,d)/3,
// MaxWallThicknessCap))]; the geometric bound guarantees the cavity
// never closes. The lower clamp wins for boxes too small to honor the
// geometric bound (the validity flag reports those).
func ResolveWallThickness(w, h, d, requested float64) float64 {
	limit := math.Floor(math.Min(math.Min(w, d)/3, MaxWallThicknessCap))
	t := requested
	if t <= 0 {
		t = math.Round(0.05 * math.Min(math.Min(w, h), d))
	}
	if t > limit {
		t = limit
	}
	if t < MinWallThickness {
		t = MinWallThickness
	}
	return t
}

// EffectiveRadius clamps a requested border radius to the geometrically
// safe maximum for the given footprint.
func EffectiveRadius(w, d, requested float64) float64 {
	safeMax := safeRadiusFactor * math.Min(w, d) / 2
	return math.Min(requested, safeMax)
}

// printable reports whether the solid fits the nominal print bed and
// its resolved thickness respects both bounds. Advisory only.
func printable(w, h, d, t float64) bool {
	if w > MaxPrintDimension || h > MaxPrintDimension || d > MaxPrintDimension {
		return false
	}
	if t < MinWallThickness {
		return false
	}
	return t <= math.Min(w, d)/3
}

// Build constructs one box solid. It does not position the solid; the
// local origin is the box center and the caller assigns Position.
func Build(p Params) *mesh.Solid {
	w := math.Max(p.Width, minDimension)
	h := math.Max(p.Height, minDimension)
	d := math.Max(p.Depth, minDimension)

	t := ResolveWallThickness(w, h, d, p.WallThickness)
	// The floor slab grows upward from the underside, so thickness can
	// never exceed the height without escaping the declared bounds.
	t = math.Min(t, h)
	radius := EffectiveRadius(w, d, p.BorderRadius)

	var meshes []*mesh.Mesh
	if radius > 0 {
		meshes = buildRounded(w, h, d, t, radius)
	} else {
		meshes = buildRectilinear(w, h, d, t)
	}

	if p.ShowFoot {
		if foot := buildFoot(w, h, d, t, radius); foot != nil {
			meshes = append(meshes, foot)
		}
	}

	return &mesh.Solid{
		ID:     uuid.New(),
		Name:   fmt.Sprintf("box_%.0fx%.0fx%.0f", w, h, d),
		Meshes: meshes,
		Dimensions: mesh.Dimensions{
			Width:  w,
			Height: h,
			Depth:  d,
		},
		WallThickness: t,
		BorderRadius:  radius,
		HasFoot:       p.ShowFoot,
		Valid:         printable(w, h, d, t),
	}
}

// buildRectilinear emits the five-prism topology: a floor slab plus
// four walls. Front/back walls span the full width; left/right walls
// are shortened by 2t so the corners meet without overlap.
func buildRectilinear(w, h, d, t float64) []*mesh.Mesh {
	wallH := math.Max(h-t, minDimension)
	wallY := (h - wallH) / 2 // walls sit on top of the floor slab
	sideD := math.Max(d-2*t, minDimension)

	return []*mesh.Mesh{
		prismBox("floor",
			r3.Vec{Y: -h/2 + t/2},
			r3.Vec{X: w, Y: t, Z: d}),
		prismBox("wall_front",
			r3.Vec{Y: wallY, Z: d/2 - t/2},
			r3.Vec{X: w, Y: wallH, Z: t}),
		prismBox("wall_back",
			r3.Vec{Y: wallY, Z: -(d/2 - t/2)},
			r3.Vec{X: w, Y: wallH, Z: t}),
		prismBox("wall_left",
			r3.Vec{X: -(w/2 - t/2), Y: wallY},
			r3.Vec{X: t, Y: wallH, Z: sideD}),
		prismBox("wall_right",
			r3.Vec{X: w/2 - t/2, Y: wallY},
			r3.Vec{X: t, Y: wallH, Z: sideD}),
	}
}

// buildRounded emits the two-extrusion topology: the outer rounded
// rectangle extruded down by t forms the floor, and the same outline
// with the cavity subtracted extruded up by h-t forms the walls in one
// piece, stacked with no gap. A non-positive cavity skips the hole and
// extrudes the walls solid — tolerated degenerate, not an error.
func buildRounded(w, h, d, t, radius float64) []*mesh.Mesh {
	outer := roundedRectProfile(w, d, radius)
	floorTop := -h/2 + t

	floor := extrudePrism("floor", outer, -h/2, floorTop)

	// Thickness equal to the height leaves no wall band; extruding it
	// would run y0 past y1 and invert the winding.
	if t >= h {
		return []*mesh.Mesh{floor}
	}

	innerW := w - 2*t
	innerD := d - 2*t
	if innerW <= 0 || innerD <= 0 {
		return []*mesh.Mesh{floor, extrudePrism("walls", outer, floorTop, h/2)}
	}

	innerR := radius * (math.Min(innerW, innerD) / math.Min(w, d)) * innerRadiusClearance
	inner := roundedRectProfile(innerW, innerD, innerR)
	walls := extrudeAnnulus("walls", outer, inner, floorTop, h/2)

	return []*mesh.Mesh{floor, walls}
}
