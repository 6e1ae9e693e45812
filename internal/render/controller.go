package render

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/san-kum/fern/internal/frame"
	"github.com/san-kum/fern/internal/ifs"
)

// State is the run state of a Controller.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

const (
	// DefaultThroughput is the number of points generated per tick.
	DefaultThroughput = 100
	// MarkSize is the side of the square painted for each point.
	MarkSize = 2
)

// Controller drives a generator onto a surface, one batch per frame.
type Controller struct {
	gen     *ifs.Generator
	surface Surface
	sched   Scheduler
	sizer   Sizer
	logger  *log.Logger

	state      State
	run        uint64
	pending    frame.Handle
	throughput int
	theme      Theme
	viewport   Viewport

	count     int64
	generated int64
	ticks     int64

	observers []Observer
}

// Option configures a Controller.
type Option func(*Controller) error

// WithThroughput sets the initial points per tick.
func WithThroughput(n int) Option {
	return func(c *Controller) error { return c.SetThroughput(n) }
}

// WithTheme sets the initial theme.
func WithTheme(name string) Option {
	return func(c *Controller) error { return c.SetTheme(name) }
}

// WithSizer replaces FitViewport.
func WithSizer(s Sizer) Option {
	return func(c *Controller) error {
		c.sizer = s
		return nil
	}
}

// WithLogger sets the logger for state transitions. The default discards.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) error {
		c.logger = l
		return nil
	}
}

// New returns an idle controller. The viewport is fitted to the surface's
// current size and the surface is cleared.
func New(gen *ifs.Generator, surface Surface, sched Scheduler, opts ...Option) (*Controller, error) {
	c := &Controller{
		gen:        gen,
		surface:    surface,
		sched:      sched,
		sizer:      FitViewport,
		logger:     log.New(io.Discard),
		throughput: DefaultThroughput,
		theme:      DefaultTheme,
		observers:  make([]Observer, 0),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	c.layout(surface.Size())
	return c, nil
}

// AddObserver registers o for every generated sample, and for tick totals
// when o is also a TickObserver.
func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }

// Start begins the draw loop. It is a no-op while running.
func (c *Controller) Start() {
	if c.state == Running {
		return
	}
	c.state = Running
	c.run++
	c.pending = c.sched.RequestFrame(c.tick)
	c.logger.Debug("start", "points", c.count, "throughput", c.throughput)
}

// Stop halts the draw loop, keeping the generator position and the point
// counter. It is a no-op while idle.
func (c *Controller) Stop() {
	if c.state == Idle {
		return
	}
	c.state = Idle
	if c.pending != 0 {
		c.sched.CancelFrame(c.pending)
		c.pending = 0
	}
	c.logger.Debug("stop", "points", c.count)
}

// Toggle starts an idle controller and stops a running one.
func (c *Controller) Toggle() {
	if c.state == Running {
		c.Stop()
	} else {
		c.Start()
	}
}

// Reset stops, zeroes the counters, returns the generator to the origin and
// clears the surface.
func (c *Controller) Reset() {
	c.Stop()
	c.count = 0
	c.generated = 0
	c.ticks = 0
	c.gen.Reset()
	c.surface.Clear(Background)
	c.logger.Debug("reset")
}

// SetThroughput sets the points generated per tick, from the next tick on.
func (c *Controller) SetThroughput(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidThroughput, n)
	}
	c.throughput = n
	c.logger.Debug("throughput", "points_per_tick", n)
	return nil
}

// SetTheme switches the active theme. Unknown names leave it unchanged.
func (c *Controller) SetTheme(name string) error {
	t, err := LookupTheme(name)
	if err != nil {
		return err
	}
	c.theme = t
	c.logger.Debug("theme", "name", name)
	return nil
}

// OnViewportChange refits the viewport to the offered space and clears the
// resized surface. Generator position, counter and run state are kept;
// callers wanting a fresh fern call Reset as well.
func (c *Controller) OnViewportChange(width, height int) {
	c.layout(width, height)
	c.logger.Debug("viewport", "width", c.viewport.Width, "height", c.viewport.Height, "scale", c.viewport.Scale)
}

func (c *Controller) layout(width, height int) {
	c.viewport = c.sizer(width, height)
	c.surface.Resize(c.viewport.Width, c.viewport.Height)
	c.surface.Clear(Background)
}

// tick generates one batch. It runs only from the scheduler. Observers may
// call back into the controller; a Stop, Reset or restart from OnSample
// abandons the rest of the batch.
func (c *Controller) tick() {
	c.pending = 0
	if c.state != Running {
		return
	}

	run := c.run
	n := c.throughput
	painted := 0
	for i := 0; i < n; i++ {
		if c.plot(c.gen.Next()) {
			painted++
		}
		if c.state != Running || c.run != run {
			return
		}
	}
	c.ticks++

	for _, o := range c.observers {
		if to, ok := o.(TickObserver); ok {
			to.OnTick(n, painted)
		}
	}

	// An observer may have stopped us, or restarted us with a frame
	// already requested.
	if c.state == Running && c.pending == 0 {
		c.pending = c.sched.RequestFrame(c.tick)
	}
}

func (c *Controller) plot(p ifs.Point) bool {
	c.generated++
	s := Sample{Point: p, Transform: c.gen.Last()}

	if x, y, ok := c.viewport.Pixel(p); ok {
		c.surface.FillSquare(x, y, MarkSize, c.theme.ColorAt(c.count), c.theme.Alpha)
		c.count++
		s.X, s.Y, s.Painted = x, y, true
	}
	s.Count = c.count

	for _, o := range c.observers {
		o.OnSample(s)
	}
	return s.Painted
}

// State returns the run state.
func (c *Controller) State() State { return c.state }

// Running reports whether the draw loop is active.
func (c *Controller) Running() bool { return c.state == Running }

// PointCount returns the number of points painted since the last reset.
func (c *Controller) PointCount() int64 { return c.count }

// Generated returns the number of points generated since the last reset,
// painted or not.
func (c *Controller) Generated() int64 { return c.generated }

// Ticks returns the number of completed ticks since the last reset.
func (c *Controller) Ticks() int64 { return c.ticks }

// Throughput returns the points generated per tick.
func (c *Controller) Throughput() int { return c.throughput }

// Theme returns the active theme.
func (c *Controller) Theme() Theme { return c.theme }

// Viewport returns the current fern-space to pixel mapping.
func (c *Controller) Viewport() Viewport { return c.viewport }

// Position returns the generator's current fern-space point.
func (c *Controller) Position() ifs.Point { return c.gen.Current() }
