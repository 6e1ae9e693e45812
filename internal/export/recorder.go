package export

import (
	"image/color"
)

// Mark is one painted square and the number of times it was painted.
type Mark struct {
	X, Y, Size int
	Color      color.RGBA
	Alpha      float64
	Hits       int
}

type markKey struct {
	x, y, size int
	c          color.RGBA
	alpha      float64
}

// Recorder is a render.Surface that keeps painted marks instead of pixels.
// Repeated paints of an identical mark are merged into a hit count.
type Recorder struct {
	width, height int
	background    color.RGBA
	marks         []Mark
	index         map[markKey]int
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{
		width:      width,
		height:     height,
		background: color.RGBA{A: 255},
		index:      make(map[markKey]int),
	}
}

func (r *Recorder) Size() (int, int) { return r.width, r.height }

func (r *Recorder) Resize(width, height int) {
	r.width, r.height = width, height
}

func (r *Recorder) Clear(c color.Color) {
	r.background = color.RGBAModel.Convert(c).(color.RGBA)
	r.marks = r.marks[:0]
	clear(r.index)
}

func (r *Recorder) FillSquare(x, y, size int, c color.RGBA, alpha float64) {
	if x+size <= 0 || y+size <= 0 || x >= r.width || y >= r.height {
		return
	}
	k := markKey{x, y, size, c, alpha}
	if i, ok := r.index[k]; ok {
		r.marks[i].Hits++
		return
	}
	r.index[k] = len(r.marks)
	r.marks = append(r.marks, Mark{X: x, Y: y, Size: size, Color: c, Alpha: alpha, Hits: 1})
}

// Marks returns the recorded marks in first-paint order.
func (r *Recorder) Marks() []Mark { return r.marks }

func (r *Recorder) Background() color.RGBA { return r.background }
