package main

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fern/internal/analysis"
	"github.com/san-kum/fern/internal/config"
	"github.com/san-kum/fern/internal/ensemble"
	"github.com/san-kum/fern/internal/export"
	"github.com/san-kum/fern/internal/ifs"
	"github.com/san-kum/fern/internal/metrics"
	"github.com/san-kum/fern/internal/raster"
	"github.com/san-kum/fern/internal/render"
	"github.com/san-kum/fern/internal/storage"
	"github.com/san-kum/fern/internal/viz"
	"github.com/san-kum/fern/internal/window"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// The controller keeps its discarding logger so output does not tear
	// the alt screen.
	canvas := viz.NewCanvas(80, 24)
	s, err := newSession(cfg, cfg.RandSeed(), canvas)
	if err != nil {
		return err
	}

	m := viz.NewModel(s.ctrl, s.queue, canvas, viz.Options{
		FPS:       cfg.FPS,
		Resize:    cfg.ResizePolicy(),
		AutoStart: autoStart,
	})
	logger.Debug("starting tui", "seed", s.seed, "interval", cfg.FrameInterval())
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	surface := raster.New(cfg.Width, cfg.Height)
	s, err := newSession(cfg, cfg.RandSeed(), surface, render.WithLogger(logger))
	if err != nil {
		return err
	}

	h := window.NewHost(s.ctrl, s.queue, surface, window.Options{
		FPS:       cfg.FPS,
		Resize:    cfg.ResizePolicy(),
		AutoStart: autoStart,
	})
	logger.Debug("opening window", "seed", s.seed, "size", fmt.Sprintf("%dx%d", cfg.Width, cfg.Height), "interval", cfg.FrameInterval())
	return window.Run(h)
}

func renderRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if runs < 1 {
		return fmt.Errorf("runs must be at least 1, got %d", runs)
	}
	if runs > 1 && outFile != "" {
		return fmt.Errorf("--out writes a single image; drop it or use --runs 1")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	st := storage.New(dataDir, storage.WithLogger(logger))
	e := ensemble.New(runs, cfg.RandSeed(), 0)

	start := time.Now()
	ids, err := ensemble.Run(ctx, e, func(ctx context.Context, idx int, seed int64) (string, error) {
		return renderOne(ctx, cfg, seed, st)
	})
	logger.Info("rendered", "runs", runs, "frames", cfg.Frames, "elapsed", time.Since(start))

	for _, id := range ids {
		if id != "" {
			fmt.Printf("run saved: %s\n", id)
		}
	}
	return err
}

// renderOne renders cfg.Frames frames with seed, writes --out if set and
// saves the run unless --no-save is given. It returns the run id.
func renderOne(ctx context.Context, cfg *config.Config, seed int64, st *storage.Store) (string, error) {
	surface := raster.New(cfg.Width, cfg.Height)
	s, err := newSession(cfg, seed, surface, render.WithLogger(logger.With("seed", seed)))
	if err != nil {
		return "", err
	}
	set := metrics.Standard(len(ifs.Barnsley))
	s.ctrl.AddObserver(set)

	if err := s.run(ctx, cfg.Frames); err != nil {
		return "", fmt.Errorf("render interrupted after %d points: %w", s.ctrl.PointCount(), err)
	}
	logger.Debug("run done", "seed", seed, "points", s.ctrl.PointCount(), "generated", s.ctrl.Generated())

	if outFile != "" {
		if err := raster.WritePNG(outFile, surface.Image()); err != nil {
			return "", err
		}
		fmt.Printf("image written: %s\n", outFile)
	}

	if noSave {
		return "", nil
	}
	return st.Save(s.metadata(set.Values()), surface.Image())
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, storage.WithLogger(logger))
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTHEME\tTIME\tPOINTS\tSEED\tSIZE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%dx%d\n",
			run.ID,
			run.Theme,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Points,
			run.Seed,
			run.Width,
			run.Height,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir, storage.WithLogger(logger))
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("time: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("theme: %s\n", meta.Theme)
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("throughput: %d x %d frames\n", meta.Throughput, meta.Frames)
	fmt.Printf("points: %d of %d generated\n\n", meta.Points, meta.Generated)

	printMetrics(meta.Metrics)

	img, err := st.LoadImage(runID)
	if err != nil {
		logger.Warn("no image for run", "id", runID, "err", err)
		return nil
	}
	fmt.Println()
	fmt.Print(preview(img, 60))
	return nil
}

// preview draws the lit pixels of img as Braille, cols cells wide at most.
func preview(img image.Image, cols int) string {
	thumb := raster.Thumbnail(img, cols*2)
	b := thumb.Bounds()
	canvas := viz.NewCanvas((b.Dx()+1)/2, (b.Dy()+3)/4)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := thumb.RGBAAt(x, y)
			if int(c.R)+int(c.G)+int(c.B) > 48 {
				canvas.Set(x-b.Min.X, y-b.Min.Y)
			}
		}
	}
	return canvas.String()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir, storage.WithLogger(logger))
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	cfg, err := configFromRun(meta)
	if err != nil {
		return err
	}

	rec := export.NewRecorder(cfg.Width, cfg.Height)
	s, err := newSession(cfg, meta.Seed, rec, render.WithLogger(logger))
	if err != nil {
		return err
	}
	if err := s.run(cmd.Context(), cfg.Frames); err != nil {
		return err
	}

	out := outFile
	if out == "" {
		out = runID + ".svg"
	}
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := export.WriteSVG(f, rec, "Barnsley fern "+runID); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}

	logger.Debug("svg export", "marks", len(rec.Marks()), "points", s.ctrl.PointCount())
	fmt.Printf("exported to %s\n", out)
	return nil
}

func statsRun(cmd *cobra.Command, args []string) error {
	var (
		cfg  *config.Config
		err  error
		seed int64
	)
	if len(args) == 1 {
		st := storage.New(dataDir, storage.WithLogger(logger))
		meta, err := st.Load(args[0])
		if err != nil {
			return err
		}
		if cfg, err = configFromRun(meta); err != nil {
			return err
		}
		seed = meta.Seed
	} else {
		if cfg, err = loadConfig(cmd); err != nil {
			return err
		}
		seed = cfg.RandSeed()
	}

	surface := raster.New(cfg.Width, cfg.Height)
	s, err := newSession(cfg, seed, surface, render.WithLogger(logger))
	if err != nil {
		return err
	}

	series := metrics.NewTickSeries(max(1, cfg.Frames))
	points := metrics.NewPoints(limit)
	set := metrics.Standard(len(ifs.Barnsley))
	set.Add(series)
	set.Add(points)
	s.ctrl.AddObserver(set)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if err := s.run(ctx, cfg.Frames); err != nil {
		return err
	}

	fmt.Printf("seed: %d  theme: %s  throughput: %d  frames: %d\n\n", seed, cfg.Theme, cfg.Throughput, cfg.Frames)
	printMetrics(set.Values())

	dim, err := analysis.BoxDimension(points.Points(), analysis.DefaultBoxSizes())
	if err != nil {
		logger.Warn("box dimension unavailable", "err", err)
	} else {
		fmt.Printf("\nbox-counting dimension: %.3f (%d points)\n", dim, len(points.Points()))
	}

	if data := series.Values(); len(data) > 1 {
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("points painted per frame"),
		)
		fmt.Println()
		fmt.Println(graph)
	}

	fmt.Println()
	fmt.Print(analysis.DensityToASCII(points.Points(), 60, 30))
	return nil
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, values[name])
	}
	w.Flush()
}

func listThemes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOLOR\tALPHA\t")
	for _, t := range render.Themes {
		color := string(t.Color)
		if t.Rainbow {
			color = "hue cycle"
		}
		fmt.Fprintf(w, "%s\t%s\t%.1f\t%s\n", t.Name, color, t.Alpha, viz.Swatch(t.Color))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tTHEME\tTHROUGHPUT\tSIZE\tFRAMES")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%dx%d\t%d\n", name, p.Theme, p.Throughput, p.Width, p.Height, p.Frames)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("config written: %s\n", args[0])
	return nil
}
