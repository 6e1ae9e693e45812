package render_test

import (
	"image/color"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/fern/internal/frame"
	"github.com/san-kum/fern/internal/ifs"
	"github.com/san-kum/fern/internal/render"
)

type fill struct {
	x, y, size int
	c          color.RGBA
	alpha      float64
}

type fakeSurface struct {
	w, h   int
	fills  []fill
	clears int
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }
func (s *fakeSurface) Resize(w, h int)  { s.w, s.h = w, h }

func (s *fakeSurface) Clear(color.Color) {
	s.clears++
	s.fills = s.fills[:0]
}

func (s *fakeSurface) FillSquare(x, y, size int, c color.RGBA, alpha float64) {
	s.fills = append(s.fills, fill{x, y, size, c, alpha})
}

type countingObserver struct {
	samples []render.Sample
	ticks   [][2]int
}

func (o *countingObserver) OnSample(s render.Sample)      { o.samples = append(o.samples, s) }
func (o *countingObserver) OnTick(generated, painted int) { o.ticks = append(o.ticks, [2]int{generated, painted}) }

// unitViewport maps fern (x, y) to pixel (x, -y) on a 100x100 surface.
func unitViewport(w, h int) render.Viewport {
	return render.Viewport{Width: 100, Height: 100, Scale: 1}
}

// constantGenerator always lands on (x, y).
func constantGenerator(x, y float64) *ifs.Generator {
	gen, err := ifs.New([]ifs.Transform{{E: x, F: y, P: 1}}, rand.New(rand.NewSource(1)))
	Expect(err).NotTo(HaveOccurred())
	return gen
}

var _ = Describe("Controller", func() {
	var (
		surface *fakeSurface
		queue   *frame.Queue
		gen     *ifs.Generator
		ctrl    *render.Controller
	)

	BeforeEach(func() {
		surface = &fakeSurface{w: 900, h: 600}
		queue = frame.NewQueue()
		gen = ifs.NewBarnsley(rand.New(rand.NewSource(42)))

		var err error
		ctrl, err = render.New(gen, surface, queue)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("starts idle with defaults and a cleared surface", func() {
			Expect(ctrl.State()).To(Equal(render.Idle))
			Expect(ctrl.PointCount()).To(BeZero())
			Expect(ctrl.Throughput()).To(Equal(render.DefaultThroughput))
			Expect(ctrl.Theme().Name).To(Equal("classic"))
			Expect(ctrl.Viewport()).To(Equal(render.FitViewport(900, 600)))
			Expect(surface.clears).To(Equal(1))
		})

		It("rejects invalid options", func() {
			_, err := render.New(gen, surface, queue, render.WithTheme("sepia"))
			Expect(err).To(MatchError(render.ErrUnknownTheme))

			_, err = render.New(gen, surface, queue, render.WithThroughput(0))
			Expect(err).To(MatchError(render.ErrInvalidThroughput))
		})
	})

	Describe("Start", func() {
		It("schedules a tick and paints on each frame", func() {
			ctrl.Start()
			Expect(ctrl.Running()).To(BeTrue())
			Expect(queue.Pending()).To(Equal(1))

			queue.Fire()
			Expect(ctrl.Generated()).To(BeEquivalentTo(100))
			Expect(ctrl.PointCount()).To(BeNumerically(">", 0))
			Expect(ctrl.PointCount()).To(BeNumerically("<=", 100))
			Expect(queue.Pending()).To(Equal(1))

			queue.Fire()
			Expect(ctrl.Generated()).To(BeEquivalentTo(200))
			Expect(ctrl.Ticks()).To(BeEquivalentTo(2))
		})

		It("is a no-op while running", func() {
			ctrl.Start()
			ctrl.Start()
			Expect(queue.Pending()).To(Equal(1))

			queue.Fire()
			Expect(ctrl.Generated()).To(BeEquivalentTo(100))
		})

		It("paints 2x2 marks with the theme color and opacity", func() {
			ctrl.Start()
			queue.Fire()

			Expect(surface.fills).NotTo(BeEmpty())
			for _, f := range surface.fills {
				Expect(f.size).To(Equal(render.MarkSize))
				Expect(f.c).To(Equal(color.RGBA{0x90, 0xEE, 0x90, 255}))
				Expect(f.alpha).To(Equal(0.8))
			}
		})
	})

	Describe("Stop", func() {
		It("cancels the pending tick", func() {
			ctrl.Start()
			queue.Fire()
			ctrl.Stop()

			Expect(ctrl.State()).To(Equal(render.Idle))
			Expect(queue.Pending()).To(BeZero())
			Expect(queue.Fire()).To(BeZero())
			Expect(ctrl.Generated()).To(BeEquivalentTo(100))
		})

		It("is a no-op while idle", func() {
			ctrl.Stop()
			Expect(ctrl.State()).To(Equal(render.Idle))
		})

		It("resumes from the held point and counter", func() {
			ctrl.Start()
			queue.Fire()
			queue.Fire()
			ctrl.Stop()

			held := ctrl.Position()
			count := ctrl.PointCount()
			Expect(held).NotTo(Equal(ifs.Point{}))

			obs := &countingObserver{}
			ctrl.AddObserver(obs)
			ctrl.Start()
			Expect(ctrl.Position()).To(Equal(held))
			queue.Fire()

			Expect(obs.samples).To(HaveLen(100))
			painted := 0
			for _, s := range obs.samples {
				if s.Painted {
					painted++
				}
			}
			Expect(ctrl.PointCount()).To(Equal(count + int64(painted)))
		})

		It("matches an uninterrupted run", func() {
			otherQueue := frame.NewQueue()
			other, err := render.New(ifs.NewBarnsley(rand.New(rand.NewSource(42))), &fakeSurface{w: 900, h: 600}, otherQueue, render.WithThroughput(300))
			Expect(err).NotTo(HaveOccurred())
			other.Start()
			otherQueue.Fire()

			for i := 0; i < 3; i++ {
				ctrl.Start()
				queue.Fire()
				ctrl.Stop()
			}

			Expect(ctrl.Generated()).To(Equal(other.Generated()))
			Expect(ctrl.PointCount()).To(Equal(other.PointCount()))
			Expect(ctrl.Position()).To(Equal(other.Position()))
		})
	})

	Describe("Toggle", func() {
		It("flips between idle and running", func() {
			ctrl.Toggle()
			Expect(ctrl.Running()).To(BeTrue())
			ctrl.Toggle()
			Expect(ctrl.Running()).To(BeFalse())
			Expect(queue.Pending()).To(BeZero())
		})
	})

	Describe("Reset", func() {
		It("stops and clears everything", func() {
			ctrl.Start()
			queue.Fire()
			clears := surface.clears

			ctrl.Reset()
			Expect(ctrl.State()).To(Equal(render.Idle))
			Expect(ctrl.PointCount()).To(BeZero())
			Expect(ctrl.Generated()).To(BeZero())
			Expect(ctrl.Position()).To(Equal(ifs.Point{}))
			Expect(surface.clears).To(Equal(clears + 1))
			Expect(surface.fills).To(BeEmpty())
			Expect(queue.Pending()).To(BeZero())
		})

		It("is idempotent", func() {
			ctrl.Start()
			queue.Fire()

			ctrl.Reset()
			state, count, pos := ctrl.State(), ctrl.PointCount(), ctrl.Position()
			ctrl.Reset()

			Expect(ctrl.State()).To(Equal(state))
			Expect(ctrl.PointCount()).To(Equal(count))
			Expect(ctrl.Position()).To(Equal(pos))
			Expect(surface.fills).To(BeEmpty())
		})
	})

	Describe("SetThroughput", func() {
		It("takes effect from the next tick", func() {
			ctrl.Start()
			queue.Fire()
			Expect(ctrl.Generated()).To(BeEquivalentTo(100))

			Expect(ctrl.SetThroughput(500)).To(Succeed())
			Expect(ctrl.Generated()).To(BeEquivalentTo(100))

			queue.Fire()
			Expect(ctrl.Generated()).To(BeEquivalentTo(600))
		})

		It("rejects non-positive values", func() {
			Expect(ctrl.SetThroughput(0)).To(MatchError(render.ErrInvalidThroughput))
			Expect(ctrl.SetThroughput(-3)).To(MatchError(render.ErrInvalidThroughput))
			Expect(ctrl.Throughput()).To(Equal(render.DefaultThroughput))
		})
	})

	Describe("SetTheme", func() {
		It("switches the paint color", func() {
			Expect(ctrl.SetTheme("monochrome")).To(Succeed())
			ctrl.Start()
			queue.Fire()

			Expect(surface.fills).NotTo(BeEmpty())
			Expect(surface.fills[0].c).To(Equal(color.RGBA{255, 255, 255, 255}))
			Expect(surface.fills[0].alpha).To(Equal(0.6))
		})

		It("rejects unknown names and keeps the current theme", func() {
			Expect(ctrl.SetTheme("sepia")).To(MatchError(render.ErrUnknownTheme))
			Expect(ctrl.Theme().Name).To(Equal("classic"))
		})

		It("cycles rainbow hue by point count", func() {
			Expect(ctrl.SetTheme("rainbow")).To(Succeed())
			Expect(ctrl.SetThroughput(5000)).To(Succeed())
			ctrl.Start()
			queue.Fire()

			Expect(len(surface.fills)).To(BeNumerically(">", 1000))
			Expect(surface.fills[0].c).To(Equal(render.ThemeRainbow.ColorAt(0)))
			Expect(surface.fills[1000].c).To(Equal(render.ThemeRainbow.ColorAt(1000)))
			Expect(surface.fills[0].c).NotTo(Equal(surface.fills[1000].c))
		})
	})

	Describe("bounds filtering", func() {
		DescribeTable("points mapped by a unit viewport",
			func(x, y float64, painted bool) {
				c, err := render.New(constantGenerator(x, y), surface, queue, render.WithSizer(unitViewport), render.WithThroughput(1))
				Expect(err).NotTo(HaveOccurred())
				obs := &countingObserver{}
				c.AddObserver(obs)

				c.Start()
				queue.Fire()

				Expect(obs.samples).To(HaveLen(1))
				Expect(obs.samples[0].Painted).To(Equal(painted))
				if painted {
					Expect(c.PointCount()).To(BeEquivalentTo(1))
					Expect(surface.fills).To(HaveLen(1))
				} else {
					Expect(c.PointCount()).To(BeZero())
					Expect(surface.fills).To(BeEmpty())
				}
			},
			Entry("pixel (-1, 5) is dropped", -1.0, -5.0, false),
			Entry("pixel (width, 5) is dropped", 100.0, -5.0, false),
			Entry("pixel (0, 0) is painted", 0.0, 0.0, true),
			Entry("pixel (99.5, 99.5) is painted", 99.5, -99.5, true),
			Entry("pixel (5, height) is dropped", 5.0, -100.0, false),
		)

		It("paints at the floored coordinate", func() {
			c, err := render.New(constantGenerator(3.7, -4.2), surface, queue, render.WithSizer(unitViewport), render.WithThroughput(1))
			Expect(err).NotTo(HaveOccurred())
			c.Start()
			queue.Fire()

			Expect(surface.fills).To(HaveLen(1))
			Expect(surface.fills[0].x).To(Equal(3))
			Expect(surface.fills[0].y).To(Equal(4))
		})
	})

	Describe("observers", func() {
		It("receive samples and tick totals", func() {
			obs := &countingObserver{}
			ctrl.AddObserver(obs)
			ctrl.Start()
			queue.Fire()

			Expect(obs.samples).To(HaveLen(100))
			Expect(obs.ticks).To(HaveLen(1))
			Expect(obs.ticks[0][0]).To(Equal(100))
			Expect(int64(obs.ticks[0][1])).To(Equal(ctrl.PointCount()))
			Expect(obs.samples[99].Count).To(Equal(ctrl.PointCount()))
			for _, s := range obs.samples {
				Expect(s.Transform).To(BeNumerically(">=", 0))
				Expect(s.Transform).To(BeNumerically("<", 4))
			}
		})

		It("may stop the controller from a tick", func() {
			ctrl.AddObserver(stopAfter{ctrl: ctrl})
			ctrl.Start()
			queue.Fire()

			Expect(ctrl.Running()).To(BeFalse())
			Expect(queue.Pending()).To(BeZero())
		})

		It("keeps a single pending tick when restarted from a tick", func() {
			ctrl.AddObserver(&restartOnTick{ctrl: ctrl})
			ctrl.Start()
			queue.Fire()

			Expect(ctrl.Running()).To(BeTrue())
			Expect(queue.Pending()).To(Equal(1))

			ctrl.Stop()
			Expect(queue.Pending()).To(BeZero())

			ctrl.Start()
			before := ctrl.Generated()
			Expect(queue.Fire()).To(Equal(1))
			Expect(ctrl.Generated() - before).To(BeEquivalentTo(render.DefaultThroughput))
			Expect(queue.Pending()).To(Equal(1))
		})

		It("applies a reset from a sample before the call returns", func() {
			obs := &resetAfter{ctrl: ctrl, n: 10}
			ctrl.AddObserver(obs)
			ctrl.Start()
			queue.Fire()

			Expect(obs.seen).To(Equal(10))
			Expect(ctrl.Running()).To(BeFalse())
			Expect(ctrl.PointCount()).To(BeZero())
			Expect(ctrl.Generated()).To(BeZero())
			Expect(ctrl.Ticks()).To(BeZero())
			Expect(ctrl.Position()).To(Equal(ifs.Point{}))
			Expect(surface.fills).To(BeEmpty())
			Expect(queue.Pending()).To(BeZero())
		})

		It("abandons the batch when stopped from a sample", func() {
			obs := &countingObserver{}
			ctrl.AddObserver(&stopOnSample{ctrl: ctrl, n: 5})
			ctrl.AddObserver(obs)
			ctrl.Start()
			queue.Fire()

			Expect(ctrl.Running()).To(BeFalse())
			Expect(ctrl.Generated()).To(BeEquivalentTo(5))
			Expect(ctrl.Ticks()).To(BeZero())
			Expect(obs.ticks).To(BeEmpty())
			Expect(queue.Pending()).To(BeZero())
		})
	})

	Describe("OnViewportChange", func() {
		It("refits, clears and keeps state", func() {
			ctrl.Start()
			queue.Fire()
			count, pos := ctrl.PointCount(), ctrl.Position()
			clears := surface.clears

			ctrl.OnViewportChange(400, 300)

			Expect(ctrl.Viewport()).To(Equal(render.FitViewport(400, 300)))
			w, h := surface.Size()
			Expect(w).To(Equal(400))
			Expect(h).To(Equal(300))
			Expect(surface.clears).To(Equal(clears + 1))
			Expect(ctrl.PointCount()).To(Equal(count))
			Expect(ctrl.Position()).To(Equal(pos))
			Expect(ctrl.Running()).To(BeTrue())
			Expect(queue.Pending()).To(Equal(1))
		})
	})
})

type stopAfter struct{ ctrl *render.Controller }

func (s stopAfter) OnSample(render.Sample) {}
func (s stopAfter) OnTick(int, int)        { s.ctrl.Stop() }

type restartOnTick struct{ ctrl *render.Controller }

func (r *restartOnTick) OnSample(render.Sample) {}

func (r *restartOnTick) OnTick(int, int) {
	r.ctrl.Stop()
	r.ctrl.Start()
}

// resetAfter resets the controller on the n-th sample it sees.
type resetAfter struct {
	ctrl *render.Controller
	n    int
	seen int
}

func (r *resetAfter) OnSample(render.Sample) {
	r.seen++
	if r.seen == r.n {
		r.ctrl.Reset()
	}
}

type stopOnSample struct {
	ctrl *render.Controller
	n    int
	seen int
}

func (s *stopOnSample) OnSample(render.Sample) {
	s.seen++
	if s.seen == s.n {
		s.ctrl.Stop()
	}
}
