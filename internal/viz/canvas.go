package viz

import (
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

type inkKey struct {
	c     color.RGBA
	alpha float64
}

// Canvas is a Braille render.Surface. Each cell holds 2x4 sub-pixels and
// the color of the last mark painted into it.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Ink           [][]lipgloss.Color

	inks map[inkKey]lipgloss.Color
}

// NewCanvas returns a canvas of w x h cells.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{inks: make(map[inkKey]lipgloss.Color)}
	c.resizeCells(w, h)
	return c
}

func (c *Canvas) resizeCells(w, h int) {
	w, h = max(w, 1), max(h, 1)
	c.Width, c.Height = w, h
	c.Grid = make([][]rune, h)
	c.Ink = make([][]lipgloss.Color, h)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Ink[i] = make([]lipgloss.Color, w)
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
		}
	}
}

// Size returns the sub-pixel dimensions.
func (c *Canvas) Size() (int, int) {
	return c.Width * 2, c.Height * 4
}

// Resize takes sub-pixel dimensions and rounds up to whole cells.
func (c *Canvas) Resize(width, height int) {
	w, h := (width+1)/2, (height+3)/4
	if w == c.Width && h == c.Height {
		return
	}
	c.resizeCells(w, h)
}

// Clear resets the canvas. Cells have no background of their own, so c is
// left to the terminal.
func (c *Canvas) Clear(color.Color) {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Ink[i][j] = ""
		}
	}
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) bool {
	if x < 0 || y < 0 {
		return false
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return false
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	return true
}

// FillSquare sets the square's dots and inks the touched cells with c
// dimmed by alpha against black.
func (c *Canvas) FillSquare(x, y, size int, col color.RGBA, alpha float64) {
	ink := c.ink(col, alpha)
	for dy := 0; dy < size; dy++ {
		for dx := 0; dx < size; dx++ {
			if c.Set(x+dx, y+dy) {
				c.Ink[(y+dy)/4][(x+dx)/2] = ink
			}
		}
	}
}

func (c *Canvas) ink(col color.RGBA, alpha float64) lipgloss.Color {
	k := inkKey{col, alpha}
	if ink, ok := c.inks[k]; ok {
		return ink
	}
	cf, _ := colorful.MakeColor(col)
	ink := lipgloss.Color(colorful.Color{}.BlendRgb(cf, alpha).Clamped().Hex())
	c.inks[k] = ink
	return ink
}

// Dots returns the number of set sub-pixels.
func (c *Canvas) Dots() int {
	n := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for bits := r - blank; bits != 0; bits &= bits - 1 {
				n++
			}
		}
	}
	return n
}

// String returns the canvas without color.
func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render returns the canvas with each run of same-ink cells styled.
func (c *Canvas) Render() string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.Ink[i][j] == c.Ink[i][start] {
				continue
			}
			run := string(row[start:j])
			if ink := c.Ink[i][start]; ink != "" {
				run = lipgloss.NewStyle().Foreground(ink).Render(run)
			}
			b.WriteString(run)
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}
