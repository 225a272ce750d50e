package grid

import (
	"math"

	"github.com/chrisknsmn/printbox/pkg/box"
)

// Limits are the live bounds the control panel displays next to the
// wall thickness and border radius fields.
type Limits struct {
	MaxWallThickness float64 `json:"maxWallThickness"`
	MaxBorderRadius  float64 `json:"maxBorderRadius"`
}

// MaxWallThickness returns the largest wall thickness the current cell
// footprint supports: a third of the smaller in-plane box dimension,
// capped at the absolute ceiling. May fall below the printable minimum
// for near-degenerate cells.
func MaxWallThickness(s Settings) float64 {
	bw, bd := s.BoxFootprint()
	return math.Min(math.Floor(math.Min(bw, bd)/3), box.MaxWallThicknessCap)
}

// MaxSafeBorderRadius returns the largest border radius that keeps the
// corner arcs clear of the cavity for the given box footprint and wall
// thickness. Never negative.
func MaxSafeBorderRadius(boxW, boxD, t float64) float64 {
	return math.Floor(math.Max(0, 0.9*math.Min(boxW, boxD)/2-t))
}

// Resolve clamps raw input to its documented bounds and re-derives the
// dependent constraints. It is the single invariant-maintenance step:
// the caller runs it wholesale after every edit instead of clamping in
// per-field handlers. Wall thickness resolves before border radius
// because the radius bound depends on it.
func Resolve(s Settings) Settings {
	out := s
	out.Width = clampf(defaultIfNaN(out.Width, DefaultSettings().Width), MinDimension, MaxDimension)
	out.Length = clampf(defaultIfNaN(out.Length, DefaultSettings().Length), MinDimension, MaxDimension)
	out.Height = clampf(defaultIfNaN(out.Height, DefaultSettings().Height), MinDimension, MaxDimension)
	out.HorizontalDivisions = clampi(out.HorizontalDivisions, MinHorizontalDivisions, MaxHorizontalDivisions)
	out.VerticalDivisions = clampi(out.VerticalDivisions, MinVerticalDivisions, MaxVerticalDivisions)
	out.BufferSize = clampf(defaultIfNaN(out.BufferSize, MinBuffer), MinBuffer, MaxBuffer)

	maxT := MaxWallThickness(out)
	out.WallThickness = clampf(defaultIfNaN(out.WallThickness, box.MinWallThickness), box.MinWallThickness, math.Max(maxT, box.MinWallThickness))

	bw, bd := out.BoxFootprint()
	maxR := MaxSafeBorderRadius(bw, bd, out.WallThickness)
	raw := clampf(defaultIfNaN(out.BorderRadius, 0), 0, MaxRawRadius)
	out.BorderRadius = clampf(raw, 0, maxR)

	return out
}

// ResolveLimits returns the published bounds for a resolved settings
// record.
func ResolveLimits(s Settings) Limits {
	bw, bd := s.BoxFootprint()
	return Limits{
		MaxWallThickness: math.Max(MaxWallThickness(s), box.MinWallThickness),
		MaxBorderRadius:  MaxSafeBorderRadius(bw, bd, s.WallThickness),
	}
}

// defaultIfNaN guards against non-numeric input committed from the
// frontend (NaN survives JSON round-trips as null → 0 is handled by
// the range clamps; NaN is not).
func defaultIfNaN(v, def float64) float64 {
	if math.IsNaN(v) {
		return def
	}
	return v
}
