package metrics

import (
	"math"

	"github.com/san-kum/fern/internal/render"
)

// Extent tracks the fern-space bounding box of every generated point. Its
// value is the box's width / height aspect ratio.
type Extent struct {
	name                   string
	minX, maxX, minY, maxY float64
	samples                int64
}

func NewExtent() *Extent {
	e := &Extent{name: "extent"}
	e.Reset()
	return e
}

func (e *Extent) Name() string { return e.name }

func (e *Extent) Observe(s render.Sample) {
	if !s.Point.IsValid() {
		return
	}
	e.minX = math.Min(e.minX, s.Point.X)
	e.maxX = math.Max(e.maxX, s.Point.X)
	e.minY = math.Min(e.minY, s.Point.Y)
	e.maxY = math.Max(e.maxY, s.Point.Y)
	e.samples++
}

func (e *Extent) Width() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.maxX - e.minX
}

func (e *Extent) Height() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.maxY - e.minY
}

// Bounds returns the box corners; all zero before the first sample.
func (e *Extent) Bounds() (minX, minY, maxX, maxY float64) {
	if e.samples == 0 {
		return 0, 0, 0, 0
	}
	return e.minX, e.minY, e.maxX, e.maxY
}

func (e *Extent) Value() float64 {
	h := e.Height()
	if h == 0 {
		return 0
	}
	return e.Width() / h
}

func (e *Extent) Reset() {
	e.minX, e.minY = math.Inf(1), math.Inf(1)
	e.maxX, e.maxY = math.Inf(-1), math.Inf(-1)
	e.samples = 0
}
