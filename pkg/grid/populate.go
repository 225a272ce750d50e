package grid

import (
	"fmt"

	"github.com/chrisknsmn/printbox/pkg/box"
	"github.com/chrisknsmn/printbox/pkg/mesh"
	"gonum.org/v1/gonum/spatial/r3"
)

// footShrink is the extra per-axis reduction that guarantees the foot
// fits within the cell footprint.
const footShrink = 0.9

// Populate expands settings into one box solid per grid cell:
// horizontalDivisions × verticalDivisions × horizontalDivisions, grid
// centered at the origin. Settings are resolved first, so callers may
// pass raw input. Every call builds a fresh set; the caller discards
// the previous one wholesale (no incremental diffing).
func Populate(s Settings) []*mesh.Solid {
	rs := Resolve(s)

	cellW, cellH, cellD := rs.CellSize()
	boxW, boxD := rs.BoxFootprint()
	boxH := cellH

	footOffset := 0.0
	if rs.ShowFoot {
		boxW *= footShrink
		boxH *= footShrink
		boxD *= footShrink
		footOffset = box.FootHeight(rs.WallThickness) / 2
	}

	hDiv, vDiv := rs.HorizontalDivisions, rs.VerticalDivisions
	solids := make([]*mesh.Solid, 0, hDiv*vDiv*hDiv)

	for ix := 0; ix < hDiv; ix++ {
		for iy := 0; iy < vDiv; iy++ {
			for iz := 0; iz < hDiv; iz++ {
				b := box.Build(box.Params{
					Width:         boxW,
					Height:        boxH,
					Depth:         boxD,
					WallThickness: rs.WallThickness,
					BorderRadius:  rs.BorderRadius,
					ShowFoot:      rs.ShowFoot,
				})
				b.Name = fmt.Sprintf("cell_%d_%d_%d", ix, iy, iz)
				b.Cell = [3]int{ix, iy, iz}
				b.Position = r3.Vec{
					X: (float64(ix)+0.5)*cellW - rs.Width/2,
					Y: (float64(iy)+0.5)*cellH - rs.Height/2 + footOffset,
					Z: (float64(iz)+0.5)*cellD - rs.Length/2,
				}
				solids = append(solids, b)
			}
		}
	}
	return solids
}
