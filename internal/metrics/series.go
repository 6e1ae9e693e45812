package metrics

import "github.com/san-kum/fern/internal/render"

// TickSeries keeps the painted count of the most recent ticks in a ring
// buffer, for charts. Its value is the mean over the buffer.
type TickSeries struct {
	name  string
	buf   []float64
	start int
	size  int
}

func NewTickSeries(capacity int) *TickSeries {
	if capacity < 1 {
		capacity = 1
	}
	return &TickSeries{
		name: "painted_per_tick",
		buf:  make([]float64, capacity),
	}
}

func (t *TickSeries) Name() string { return t.name }

func (t *TickSeries) Observe(render.Sample) {}

func (t *TickSeries) ObserveTick(generated, painted int) {
	if t.size < len(t.buf) {
		t.buf[(t.start+t.size)%len(t.buf)] = float64(painted)
		t.size++
		return
	}
	t.buf[t.start] = float64(painted)
	t.start = (t.start + 1) % len(t.buf)
}

// Values returns the buffered counts, oldest first.
func (t *TickSeries) Values() []float64 {
	out := make([]float64, t.size)
	for i := range out {
		out[i] = t.buf[(t.start+i)%len(t.buf)]
	}
	return out
}

func (t *TickSeries) Len() int { return t.size }

func (t *TickSeries) Value() float64 {
	if t.size == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range t.Values() {
		sum += v
	}
	return sum / float64(t.size)
}

func (t *TickSeries) Reset() {
	t.start = 0
	t.size = 0
}
