package box

import (
	"math"

	"github.com/chrisknsmn/printbox/pkg/mesh"
)

const (
	footHeightFactor = 1.5 // foot height as a multiple of wall thickness
	footClearance    = 1.0 // mm shaved off the footprint per axis
	footSegments     = 32  // cylinder facets for the degenerate foot
)

// FootHeight returns the support foot height for a wall thickness.
func FootHeight(t float64) float64 {
	return footHeightFactor * t
}

// buildFoot emits the support foot below the floor underside, or nil
// when the footprint degenerates away. The footprint is the inner
// cavity shrunk by one thickness and a clearance per axis. A square
// footprint would round into a near-circle with useless hairline
// straight segments, so it degenerates to a cylinder primitive instead.
func buildFoot(w, h, d, t, radius float64) *mesh.Mesh {
	footH := FootHeight(t)
	footW := w - 2*t - t - footClearance
	footD := d - 2*t - t - footClearance
	if footH <= 0 || footW <= 0 || footD <= 0 {
		return nil
	}

	y1 := -h / 2 // floor underside
	y0 := y1 - footH

	r := math.Min(footW, footD) / 2
	if footW <= 2*r && footD <= 2*r {
		return extrudePrism("foot", circleProfile(r, footSegments), y0, y1)
	}

	footR := math.Min(radius, safeRadiusFactor*math.Min(footW, footD)/2)
	return extrudePrism("foot", roundedRectProfile(footW, footD, footR), y0, y1)
}
