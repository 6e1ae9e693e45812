package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/fern/internal/ifs"
)

var (
	ErrNotEnoughPoints = errors.New("analysis: not enough points")
	ErrNotEnoughSizes  = errors.New("analysis: need at least two distinct positive box sizes")
)

type box struct{ i, j int64 }

// DefaultBoxSizes returns box sides halving from 1.0 down to 1/64 fern units.
func DefaultBoxSizes() []float64 {
	sizes := make([]float64, 0, 7)
	for s := 1.0; s >= 1.0/64; s /= 2 {
		sizes = append(sizes, s)
	}
	return sizes
}

// BoxDimension estimates the box-counting dimension of points by the
// least-squares slope of log N(ε) against log 1/ε over the given sizes.
// Non-finite points are ignored.
func BoxDimension(points []ifs.Point, sizes []float64) (float64, error) {
	valid := 0
	for _, p := range points {
		if p.IsValid() {
			valid++
		}
	}
	if valid < 2 {
		return 0, fmt.Errorf("%w: %d", ErrNotEnoughPoints, valid)
	}

	xs := make([]float64, 0, len(sizes))
	ys := make([]float64, 0, len(sizes))
	seen := make(map[float64]bool, len(sizes))
	for _, eps := range sizes {
		if eps <= 0 || math.IsInf(eps, 0) || math.IsNaN(eps) || seen[eps] {
			continue
		}
		seen[eps] = true
		xs = append(xs, math.Log(1/eps))
		ys = append(ys, math.Log(float64(CountBoxes(points, eps))))
	}
	if len(xs) < 2 {
		return 0, ErrNotEnoughSizes
	}

	return slope(xs, ys), nil
}

// CountBoxes returns the number of eps-sized grid boxes holding at least one
// point.
func CountBoxes(points []ifs.Point, eps float64) int {
	boxes := make(map[box]struct{})
	for _, p := range points {
		if !p.IsValid() {
			continue
		}
		b := box{
			i: int64(math.Floor(p.X / eps)),
			j: int64(math.Floor(p.Y / eps)),
		}
		boxes[b] = struct{}{}
	}
	return len(boxes)
}

func slope(xs, ys []float64) float64 {
	n := float64(len(xs))
	var sx, sy, sxx, sxy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	den := n*sxx - sx*sx
	if den == 0 {
		return 0
	}
	return (n*sxy - sx*sy) / den
}
