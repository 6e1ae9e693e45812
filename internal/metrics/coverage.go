package metrics

import "github.com/san-kum/fern/internal/render"

// Coverage is the fraction of generated points that landed on the surface.
type Coverage struct {
	name      string
	painted   int64
	generated int64
}

func NewCoverage() *Coverage {
	return &Coverage{
		name: "coverage",
	}
}

func (c *Coverage) Name() string { return c.name }

func (c *Coverage) Observe(s render.Sample) {
	c.generated++
	if s.Painted {
		c.painted++
	}
}

func (c *Coverage) Value() float64 {
	if c.generated == 0 {
		return 0
	}
	return float64(c.painted) / float64(c.generated)
}

func (c *Coverage) Reset() {
	c.painted = 0
	c.generated = 0
}
