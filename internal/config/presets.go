package config

import "sort"

var Presets = map[string]*Config{
	"sparse": preset(func(c *Config) {
		c.Throughput = 20
	}),
	"classic": preset(func(c *Config) {}),
	"dense": preset(func(c *Config) {
		c.Throughput = 1000
		c.Theme = "ocean"
		c.Frames = 300
	}),
	"rainbow": preset(func(c *Config) {
		c.Theme = "rainbow"
		c.Throughput = 200
	}),
	// Phone-sized portrait canvas.
	"mobile": preset(func(c *Config) {
		c.Width = 375
		c.Height = 600
		c.Throughput = 50
	}),
}

func preset(apply func(*Config)) *Config {
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
