// Package grid holds the grid configuration record, the constraint
// resolution that keeps wall thickness and border radius consistent
// with the cell dimensions, and the populator that expands settings
// into positioned box solids.
package grid

import "math"

// Raw input bounds. Out-of-range or non-numeric input is clamped here
// on commit; it is never surfaced as an error.
const (
	MinDimension = 10.0
	MaxDimension = 1000.0
	MinBuffer    = 1.0
	MaxBuffer    = 20.0
	MaxRawRadius = 30.0

	MinHorizontalDivisions = 1
	MaxHorizontalDivisions = 16
	MinVerticalDivisions   = 1
	MaxVerticalDivisions   = 6
)

// Settings is the full grid configuration. It is a closed value object:
// the frontend replaces it wholesale on every edit and the core treats
// it as read-only.
type Settings struct {
	Width  float64 `json:"width"`  // overall X extent, mm
	Length float64 `json:"length"` // overall Z extent, mm
	Height float64 `json:"height"` // overall Y extent, mm

	// HorizontalDivisions applies to both X and Z; VerticalDivisions
	// to Y.
	HorizontalDivisions int `json:"horizontalDivisions"`
	VerticalDivisions   int `json:"verticalDivisions"`

	BufferSize    float64 `json:"bufferSize"`    // gap reserved between boxes, mm
	WallThickness float64 `json:"wallThickness"` // mm
	BorderRadius  float64 `json:"borderRadius"`  // mm
	ShowFoot      bool    `json:"showFoot"`
}

// DefaultSettings is the configuration shown on first launch and the
// fallback for empty input fields.
func DefaultSettings() Settings {
	return Settings{
		Width:               100,
		Length:              100,
		Height:              50,
		HorizontalDivisions: 2,
		VerticalDivisions:   1,
		BufferSize:          1,
		WallThickness:       2,
		BorderRadius:        1,
	}
}

// CellSize returns the size of one grid cell.
func (s Settings) CellSize() (w, h, d float64) {
	return s.Width / float64(s.HorizontalDivisions),
		s.Height / float64(s.VerticalDivisions),
		s.Length / float64(s.HorizontalDivisions)
}

// BoxFootprint returns the in-plane box dimensions for one cell: the
// cell footprint minus the buffer gap on each side. May be zero or
// negative for near-degenerate grids; the builder clamps downstream.
func (s Settings) BoxFootprint() (w, d float64) {
	cw, _, cd := s.CellSize()
	return cw - 2*s.BufferSize, cd - 2*s.BufferSize
}

func clampf(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
