package render

import (
	"math"

	"github.com/san-kum/fern/internal/ifs"
)

// Viewport maps fern-space onto a pixel surface. Fern-space y grows upward,
// pixel y grows downward.
type Viewport struct {
	Width, Height    int
	Scale            float64
	CenterX, CenterY float64
}

// Project returns the pixel-space position of p.
func (v Viewport) Project(p ifs.Point) (float64, float64) {
	return v.CenterX + p.X*v.Scale, v.CenterY - p.Y*v.Scale
}

// Contains reports whether a pixel-space position lies in [0, Width) x [0, Height).
func (v Viewport) Contains(sx, sy float64) bool {
	return sx >= 0 && sx < float64(v.Width) && sy >= 0 && sy < float64(v.Height)
}

// Pixel returns the floored pixel under p and whether it is on the surface.
func (v Viewport) Pixel(p ifs.Point) (x, y int, ok bool) {
	sx, sy := v.Project(p)
	if !v.Contains(sx, sy) {
		return 0, 0, false
	}
	return int(math.Floor(sx)), int(math.Floor(sy)), true
}

// Sizer chooses a viewport for the space a host offers.
type Sizer func(width, height int) Viewport

// Sizing limits and fern extent used by FitViewport. The fern spans roughly
// x in [-3, 3] and y in [0, 10] fern units.
const (
	MaxWidth  = 900
	MaxHeight = 600

	fernSpanX     = 18.0 // horizontal units across the surface, including side margins
	fernSpanY     = 10.8 // fern height plus headroom
	marginDivisor = 10   // bottom margin is 1/10 of the height
)

// FitViewport caps the surface at MaxWidth x MaxHeight, anchors fern-space
// (0, 0) at the horizontal center one margin above the bottom edge and picks
// the largest scale that keeps the fern and its headroom on the surface.
// At 900x600 this yields scale 50 centered at (450, 540).
func FitViewport(width, height int) Viewport {
	w := clamp(width, 1, MaxWidth)
	h := clamp(height, 1, MaxHeight)

	margin := float64(h) / marginDivisor
	scale := math.Min(float64(w)/fernSpanX, (float64(h)-margin)/fernSpanY)

	return Viewport{
		Width:   w,
		Height:  h,
		Scale:   scale,
		CenterX: float64(w) / 2,
		CenterY: float64(h) - margin,
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
