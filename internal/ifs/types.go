package ifs

import "math"

// Point is a location in fern-space.
type Point struct {
	X, Y float64
}

// IsValid reports whether both coordinates are finite.
func (p Point) IsValid() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Transform is the affine map (x, y) -> (A*x + B*y + E, C*x + D*y + F)
// selected with probability P.
type Transform struct {
	A, B, C, D, E, F float64
	P                float64
}

// Apply maps p through the transform.
func (t Transform) Apply(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.E,
		Y: t.C*p.X + t.D*p.Y + t.F,
	}
}

// Source yields uniformly distributed values in [0, 1).
// *rand.Rand from math/rand satisfies it.
type Source interface {
	Float64() float64
}

// probabilityTolerance bounds the accepted drift of a table's probability sum.
const probabilityTolerance = 1e-9

// Validate checks that the table is usable by a Generator.
func Validate(table []Transform) error {
	if len(table) == 0 {
		return &TableError{Index: -1, Wrapped: ErrEmptyTable}
	}
	sum := 0.0
	for i, t := range table {
		if t.P < 0 || math.IsNaN(t.P) {
			return &TableError{Index: i, Wrapped: ErrProbabilitySum}
		}
		sum += t.P
	}
	if math.Abs(sum-1) > probabilityTolerance {
		return &TableError{Index: -1, Wrapped: ErrProbabilitySum}
	}
	return nil
}
