package render

import (
	"image/color"

	"github.com/san-kum/fern/internal/frame"
	"github.com/san-kum/fern/internal/ifs"
)

// Surface is the pixel sink the controller paints on.
type Surface interface {
	Size() (width, height int)
	// Resize changes the pixel dimensions; the content is undefined until
	// the next Clear.
	Resize(width, height int)
	Clear(c color.Color)
	// FillSquare blends a size x size square with top-left corner (x, y)
	// over the surface using the given opacity.
	FillSquare(x, y, size int, c color.RGBA, alpha float64)
}

// Scheduler runs callbacks once per display frame.
type Scheduler interface {
	RequestFrame(fn func()) frame.Handle
	CancelFrame(h frame.Handle)
}

// Sample describes one generated point and what became of it.
type Sample struct {
	Point ifs.Point
	// Transform is the index of the map that produced Point.
	Transform int
	// X and Y are the painted pixel; zero when Painted is false.
	X, Y    int
	Painted bool
	// Count is the point counter after this sample.
	Count int64
}

// Observer receives every generated sample.
type Observer interface {
	OnSample(s Sample)
}

// TickObserver is implemented by observers that also want per-tick totals.
type TickObserver interface {
	OnTick(generated, painted int)
}
