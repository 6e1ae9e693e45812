package metrics

import (
	"fmt"

	"github.com/san-kum/fern/internal/render"
)

// TransformShare is the fraction of draws that selected one transform.
// Over a long run it converges to that transform's probability.
type TransformShare struct {
	name    string
	index   int
	hits    int64
	samples int64
}

func NewTransformShare(index int) *TransformShare {
	return &TransformShare{
		name:  fmt.Sprintf("transform_%d", index),
		index: index,
	}
}

func (t *TransformShare) Name() string { return t.name }

func (t *TransformShare) Observe(s render.Sample) {
	t.samples++
	if s.Transform == t.index {
		t.hits++
	}
}

func (t *TransformShare) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return float64(t.hits) / float64(t.samples)
}

func (t *TransformShare) Reset() {
	t.hits = 0
	t.samples = 0
}
