package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fern/internal/render"
)

const (
	DefaultWidth      = render.MaxWidth
	DefaultHeight     = render.MaxHeight
	DefaultFrames     = 600
	DefaultFPS        = 60
	DefaultDebounceMs = 300
	DefaultMinDX      = 50
	DefaultMinDY      = 100
	MaxFPS            = 240
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Theme      string       `yaml:"theme"`
	Throughput int          `yaml:"throughput"`
	Width      int          `yaml:"width"`
	Height     int          `yaml:"height"`
	Seed       int64        `yaml:"seed"`
	Frames     int          `yaml:"frames"`
	FPS        int          `yaml:"fps"`
	Resize     ResizeConfig `yaml:"resize"`
}

type ResizeConfig struct {
	DebounceMs int `yaml:"debounce_ms"`
	MinDX      int `yaml:"min_dx"`
	MinDY      int `yaml:"min_dy"`
}

func DefaultConfig() *Config {
	return &Config{
		Theme:      render.DefaultTheme.Name,
		Throughput: render.DefaultThroughput,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		Frames:     DefaultFrames,
		FPS:        DefaultFPS,
		Resize: ResizeConfig{
			DebounceMs: DefaultDebounceMs,
			MinDX:      DefaultMinDX,
			MinDY:      DefaultMinDY,
		},
	}
}

// Load reads a YAML file over the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads a YAML file over a copy of base, so keys missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cp := *base
	cfg := &cp
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := render.LookupTheme(c.Theme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch {
	case c.Throughput <= 0:
		return fmt.Errorf("%w: throughput must be positive, got %d", ErrInvalidConfig, c.Throughput)
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Frames < 0:
		return fmt.Errorf("%w: frames must not be negative, got %d", ErrInvalidConfig, c.Frames)
	case c.FPS <= 0 || c.FPS > MaxFPS:
		return fmt.Errorf("%w: fps must be in 1..%d, got %d", ErrInvalidConfig, MaxFPS, c.FPS)
	case c.Resize.DebounceMs < 0 || c.Resize.MinDX < 0 || c.Resize.MinDY < 0:
		return fmt.Errorf("%w: resize thresholds must not be negative", ErrInvalidConfig)
	}
	return nil
}

// RandSeed returns the configured seed, or a time-based one when it is 0.
func (c *Config) RandSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

func (c *Config) ResizePolicy() render.ResizePolicy {
	return render.ResizePolicy{
		Debounce: time.Duration(c.Resize.DebounceMs) * time.Millisecond,
		MinDX:    c.Resize.MinDX,
		MinDY:    c.Resize.MinDY,
	}
}

// FrameInterval is the time between frames at the configured rate.
func (c *Config) FrameInterval() time.Duration {
	if c.FPS <= 0 {
		return time.Second / DefaultFPS
	}
	return time.Second / time.Duration(c.FPS)
}
