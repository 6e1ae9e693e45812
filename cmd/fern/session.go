package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/san-kum/fern/internal/config"
	"github.com/san-kum/fern/internal/frame"
	"github.com/san-kum/fern/internal/ifs"
	"github.com/san-kum/fern/internal/render"
	"github.com/san-kum/fern/internal/storage"
)

// loadConfig resolves preset < config file < explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	// Load preset if specified
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// Load config file if specified (overrides preset)
	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// CLI flags override both
	flags := cmd.Flags()
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("throughput") {
		cfg.Throughput = throughput
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configFromRun rebuilds the configuration a stored run was rendered with.
func configFromRun(meta *storage.RunMetadata) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Theme = meta.Theme
	cfg.Throughput = meta.Throughput
	cfg.Seed = meta.Seed
	cfg.Width = meta.Width
	cfg.Height = meta.Height
	cfg.Frames = meta.Frames
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("run %s: %w", meta.ID, err)
	}
	return cfg, nil
}

// session is one generator, frame queue and controller painting on a
// surface.
type session struct {
	cfg   *config.Config
	seed  int64
	queue *frame.Queue
	ctrl  *render.Controller
}

func newSession(cfg *config.Config, seed int64, surface render.Surface, opts ...render.Option) (*session, error) {
	gen := ifs.NewBarnsley(rand.New(rand.NewSource(seed)))
	queue := frame.NewQueue()

	opts = append([]render.Option{
		render.WithTheme(cfg.Theme),
		render.WithThroughput(cfg.Throughput),
	}, opts...)
	ctrl, err := render.New(gen, surface, queue, opts...)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, seed: seed, queue: queue, ctrl: ctrl}, nil
}

// run fires n frames back to back, stopping early when ctx is done.
func (s *session) run(ctx context.Context, n int) error {
	s.ctrl.Start()
	defer s.ctrl.Stop()

	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s.queue.Fire()
	}
	return nil
}

func (s *session) metadata(values map[string]float64) storage.RunMetadata {
	return storage.RunMetadata{
		Theme:      s.cfg.Theme,
		Seed:       s.seed,
		Throughput: s.cfg.Throughput,
		Frames:     s.cfg.Frames,
		Width:      s.cfg.Width,
		Height:     s.cfg.Height,
		Points:     s.ctrl.PointCount(),
		Generated:  s.ctrl.Generated(),
		Metrics:    values,
	}
}
