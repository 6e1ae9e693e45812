package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/fern/internal/ifs"
)

// shades orders glyphs from sparse to dense.
var shades = []rune(" .:-=+*#%@")

// DensityToASCII bins points into a width x height grid and shades each cell
// by its hit count relative to the densest cell. The y axis points up.
func DensityToASCII(points []ifs.Point, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	first := -1
	for i, p := range points {
		if p.IsValid() {
			first = i
			break
		}
	}
	if first < 0 {
		return ""
	}

	// Find bounds
	minX, maxX := points[first].X, points[first].X
	minY, maxY := points[first].Y, points[first].Y
	for _, p := range points[first:] {
		if !p.IsValid() {
			continue
		}
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}

	counts := make([][]int, height)
	for i := range counts {
		counts[i] = make([]int, width)
	}

	peak := 0
	for _, p := range points[first:] {
		if !p.IsValid() {
			continue
		}
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		counts[row][col]++
		if counts[row][col] > peak {
			peak = counts[row][col]
		}
	}

	// Log scale; any hit maps past the blank glyph.
	top := math.Log1p(float64(peak))
	var sb strings.Builder
	for _, row := range counts {
		for _, n := range row {
			idx := 0
			if n > 0 {
				idx = 1 + int(math.Log1p(float64(n))/top*float64(len(shades)-2))
			}
			sb.WriteRune(shades[idx])
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}
