package ifs

// Generator produces the point sequence of an IFS. Each call to Next draws
// one value from the source, picks a transform and moves the current point.
type Generator struct {
	table   []Transform
	src     Source
	current Point
	last    int
}

// New returns a generator starting at the origin. The table is copied.
func New(table []Transform, src Source) (*Generator, error) {
	if err := Validate(table); err != nil {
		return nil, err
	}
	return newGenerator(table, src), nil
}

func newGenerator(table []Transform, src Source) *Generator {
	t := make([]Transform, len(table))
	copy(t, table)
	return &Generator{table: t, src: src, last: -1}
}

// Next advances the generator and returns the new point.
func (g *Generator) Next() Point {
	i := g.Select(g.src.Float64())
	g.current = g.table[i].Apply(g.current)
	g.last = i
	return g.current
}

// Select returns the index of the first transform whose cumulative
// probability reaches r. When rounding leaves the cumulative sum short of r
// the last transform is chosen, so a transform is always selected.
func (g *Generator) Select(r float64) int {
	cumulative := 0.0
	for i, t := range g.table {
		cumulative += t.P
		if cumulative >= r {
			return i
		}
	}
	return len(g.table) - 1
}

// Reset moves the generator back to the origin.
func (g *Generator) Reset() {
	g.current = Point{}
	g.last = -1
}

// Current returns the point produced by the latest Next, or the origin.
func (g *Generator) Current() Point { return g.current }

// Last returns the index of the transform applied by the latest Next,
// or -1 if none has been applied since construction or Reset.
func (g *Generator) Last() int { return g.last }

// Transforms returns a copy of the generator's table.
func (g *Generator) Transforms() []Transform {
	t := make([]Transform, len(g.table))
	copy(t, g.table)
	return t
}
