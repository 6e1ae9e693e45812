package render

import (
	"fmt"
	"image/color"
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme is an immutable color policy for painted points.
type Theme struct {
	Name string
	// Color is the fixed mark color; empty for procedural themes.
	Color lipgloss.Color
	Alpha float64
	// Rainbow themes derive the hue from the running point count.
	Rainbow bool

	rgb color.RGBA
}

// Rainbow parameters: hue advances 0.1 degree per painted point.
const (
	rainbowHueStep    = 0.1
	rainbowSaturation = 0.7
	rainbowLightness  = 0.6
)

// Background is the color a cleared surface is filled with.
var (
	Background      = color.RGBA{0, 0, 0, 255}
	BackgroundColor = lipgloss.Color("#000000")
)

// Available themes
var (
	ThemeClassic    = newTheme("classic", "#90EE90", 0.8)
	ThemeAutumn     = newTheme("autumn", "#FF6B35", 0.8)
	ThemeOcean      = newTheme("ocean", "#4A90E2", 0.8)
	ThemeMonochrome = newTheme("monochrome", "#FFFFFF", 0.6)
	ThemeRainbow    = Theme{Name: "rainbow", Alpha: 0.8, Rainbow: true}

	// Default theme
	DefaultTheme = ThemeClassic

	// All available themes, in menu order
	Themes = []Theme{
		ThemeClassic,
		ThemeAutumn,
		ThemeOcean,
		ThemeMonochrome,
		ThemeRainbow,
	}
)

func newTheme(name, hex string, alpha float64) Theme {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(fmt.Sprintf("render: bad color %q for theme %s: %v", hex, name, err))
	}
	r, g, b := c.RGB255()
	return Theme{
		Name:  name,
		Color: lipgloss.Color(hex),
		Alpha: alpha,
		rgb:   color.RGBA{R: r, G: g, B: b, A: 255},
	}
}

// ColorAt returns the opaque mark color for the point painted after count
// earlier points.
func (t Theme) ColorAt(count int64) color.RGBA {
	if !t.Rainbow {
		return t.rgb
	}
	r, g, b := colorful.Hsl(RainbowHue(count), rainbowSaturation, rainbowLightness).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// RainbowHue is (count * 0.1) mod 360, in degrees.
func RainbowHue(count int64) float64 {
	return math.Mod(float64(count)*rainbowHueStep, 360)
}

// LookupTheme returns the catalog theme with the given name.
func LookupTheme(name string) (Theme, error) {
	for _, t := range Themes {
		if t.Name == name {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("%w: %q (available: %v)", ErrUnknownTheme, name, ThemeNames())
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextThemeName returns the catalog entry after name, wrapping around.
// Unknown names yield the first theme.
func NextThemeName(name string) string {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)].Name
		}
	}
	return Themes[0].Name
}
