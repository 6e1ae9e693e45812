// Package metrics observes render samples and reduces them to numbers.
package metrics

import "github.com/san-kum/fern/internal/render"

// Metric accumulates samples into a single value.
type Metric interface {
	Name() string
	Observe(s render.Sample)
	Value() float64
	Reset()
}

// TickMetric is implemented by metrics that also want per-tick totals.
type TickMetric interface {
	Metric
	ObserveTick(generated, painted int)
}

// Set fans samples out to its metrics. It satisfies render.Observer and
// render.TickObserver, so one AddObserver call wires every metric.
type Set struct {
	metrics []Metric
}

func NewSet(ms ...Metric) *Set {
	return &Set{metrics: ms}
}

func (s *Set) Add(m Metric) { s.metrics = append(s.metrics, m) }

func (s *Set) OnSample(sample render.Sample) {
	for _, m := range s.metrics {
		m.Observe(sample)
	}
}

func (s *Set) OnTick(generated, painted int) {
	for _, m := range s.metrics {
		if tm, ok := m.(TickMetric); ok {
			tm.ObserveTick(generated, painted)
		}
	}
}

// Values returns each metric's value keyed by name.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Standard returns the metrics recorded with every saved run.
func Standard(transforms int) *Set {
	set := NewSet(NewCoverage(), NewExtent())
	for i := 0; i < transforms; i++ {
		set.Add(NewTransformShare(i))
	}
	return set
}
