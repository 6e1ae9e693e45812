package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// Opacity is the combined opacity of n source-over paints at alpha.
func (m Mark) Opacity() float64 {
	return 1 - math.Pow(1-m.Alpha, float64(m.Hits))
}

// WriteSVG renders the recorded marks as an SVG document of rects over the
// background.
func WriteSVG(w io.Writer, rec *Recorder, title string) error {
	cw := &errWriter{w: w}
	canvas := svg.New(cw)

	width, height := rec.Size()
	canvas.Start(width, height)
	if title != "" {
		canvas.Title(title)
	}

	bg := rec.Background()
	canvas.Rect(0, 0, width, height, canvas.RGB(int(bg.R), int(bg.G), int(bg.B)))

	canvas.Gstyle("shape-rendering:crispEdges")
	for _, m := range rec.Marks() {
		style := canvas.RGBA(int(m.Color.R), int(m.Color.G), int(m.Color.B), round2(m.Opacity()))
		canvas.Rect(m.X, m.Y, m.Size, m.Size, style)
	}
	canvas.Gend()
	canvas.End()

	if cw.err != nil {
		return fmt.Errorf("write svg: %w", cw.err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// errWriter keeps the first write error; svgo drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err == nil {
		_, e.err = e.w.Write(p)
	}
	return len(p), nil
}
