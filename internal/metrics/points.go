package metrics

import (
	"github.com/san-kum/fern/internal/ifs"
	"github.com/san-kum/fern/internal/render"
)

// Points collects painted fern-space points up to a limit, for offline
// analysis. Its value is the number collected.
type Points struct {
	name   string
	limit  int
	points []ifs.Point
}

func NewPoints(limit int) *Points {
	if limit < 0 {
		limit = 0
	}
	return &Points{
		name:   "points",
		limit:  limit,
		points: make([]ifs.Point, 0, limit),
	}
}

func (p *Points) Name() string { return p.name }

func (p *Points) Observe(s render.Sample) {
	if !s.Painted || len(p.points) >= p.limit {
		return
	}
	p.points = append(p.points, s.Point)
}

func (p *Points) Points() []ifs.Point { return p.points }

func (p *Points) Value() float64 { return float64(len(p.points)) }

func (p *Points) Reset() { p.points = p.points[:0] }
