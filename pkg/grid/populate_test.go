package grid_test

import (
	"math"
	"testing"

	"github.com/chrisknsmn/printbox/pkg/box"
	"github.com/chrisknsmn/printbox/pkg/export"
	"github.com/chrisknsmn/printbox/pkg/grid"
)

// Reference scenario: 100×100×50 volume, 2×1 divisions, 1mm buffer.
func scenarioSettings() grid.Settings {
	return grid.Settings{
		Width: 100, Length: 100, Height: 50,
		HorizontalDivisions: 2, VerticalDivisions: 1,
		BufferSize: 1, WallThickness: 2, BorderRadius: 1,
	}
}

func TestPopulateScenario(t *testing.T) {
	solids := grid.Populate(scenarioSettings())

	if len(solids) != 4 {
		t.Fatalf("expected 4 solids (2x1x2), got %d", len(solids))
	}
	for _, s := range solids {
		// Cell 50x50x50 minus the 1mm buffer each side in-plane.
		if math.Abs(s.Dimensions.Width-48) > 1e-9 || math.Abs(s.Dimensions.Depth-48) > 1e-9 {
			t.Errorf("%s: footprint %gx%g, want 48x48", s.Name, s.Dimensions.Width, s.Dimensions.Depth)
		}
		if math.Abs(s.Dimensions.Height-50) > 1e-9 {
			t.Errorf("%s: height %g, want 50", s.Name, s.Dimensions.Height)
		}
		if s.WallThickness != 2 {
			t.Errorf("%s: wall thickness %g, want 2", s.Name, s.WallThickness)
		}
		if s.BorderRadius != 1 {
			t.Errorf("%s: border radius %g, want 1", s.Name, s.BorderRadius)
		}
		// Small positive radius selects the rounded topology: floor
		// extrusion + one-piece walls.
		if len(s.Meshes) != 2 {
			t.Errorf("%s: %d mesh pieces, want 2 (rounded)", s.Name, len(s.Meshes))
		}
	}
}

func TestPopulateScenarioRectilinear(t *testing.T) {
	s := scenarioSettings()
	s.BorderRadius = 0
	for _, solid := range grid.Populate(s) {
		if len(solid.Meshes) != 5 {
			t.Errorf("%s: %d mesh pieces, want 5 (rectilinear)", solid.Name, len(solid.Meshes))
		}
	}
}

func TestPopulateIdempotent(t *testing.T) {
	a := grid.Populate(scenarioSettings())
	b := grid.Populate(scenarioSettings())

	if len(a) != len(b) {
		t.Fatalf("solid counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if export.SignatureOf(a[i]) != export.SignatureOf(b[i]) {
			t.Errorf("cell %d: signatures differ: %v vs %v",
				i, export.SignatureOf(a[i]), export.SignatureOf(b[i]))
		}
		if a[i].Position != b[i].Position {
			t.Errorf("cell %d: positions differ", i)
		}
	}
}

func TestPopulateGridCentered(t *testing.T) {
	solids := grid.Populate(scenarioSettings())

	var sumX, sumZ float64
	for _, s := range solids {
		sumX += s.Position.X
		sumZ += s.Position.Z
	}
	if math.Abs(sumX) > 1e-9 || math.Abs(sumZ) > 1e-9 {
		t.Errorf("grid not centered: mean offset (%g, %g)", sumX/4, sumZ/4)
	}
}

func TestPopulateNearDegenerateGrid(t *testing.T) {
	// Maximum divisions and buffer on a minimum volume: cells are far
	// smaller than the buffer, so raw box dimensions go negative. The
	// populator must degrade to minimal solids, never panic.
	solids := grid.Populate(grid.Settings{
		Width: 10, Length: 10, Height: 10,
		HorizontalDivisions: 16, VerticalDivisions: 1,
		BufferSize: 20,
	})

	if len(solids) != 16*16 {
		t.Fatalf("expected 256 solids, got %d", len(solids))
	}
	for _, s := range solids {
		if len(s.Meshes) == 0 {
			t.Fatalf("%s: no geometry", s.Name)
		}
		if s.Dimensions.Width <= 0 || s.Dimensions.Height <= 0 || s.Dimensions.Depth <= 0 {
			t.Fatalf("%s: non-positive dimensions %+v", s.Name, s.Dimensions)
		}
	}
}

func TestPopulateFootAccommodation(t *testing.T) {
	base := scenarioSettings()
	withFoot := base
	withFoot.ShowFoot = true

	plain := grid.Populate(base)
	footed := grid.Populate(withFoot)

	for i := range footed {
		// 10% shrink per axis reserves room for the foot footprint.
		if got, want := footed[i].Dimensions.Width, plain[i].Dimensions.Width*0.9; math.Abs(got-want) > 1e-9 {
			t.Errorf("%s: width %g, want %g", footed[i].Name, got, want)
		}
		if got, want := footed[i].Dimensions.Height, plain[i].Dimensions.Height*0.9; math.Abs(got-want) > 1e-9 {
			t.Errorf("%s: height %g, want %g", footed[i].Name, got, want)
		}

		// Seating offset: half the foot height keeps the body centered
		// above the cell plane.
		wantY := plain[i].Position.Y + box.FootHeight(footed[i].WallThickness)/2
		if math.Abs(footed[i].Position.Y-wantY) > 1e-9 {
			t.Errorf("%s: Y position %g, want %g", footed[i].Name, footed[i].Position.Y, wantY)
		}
	}
}
