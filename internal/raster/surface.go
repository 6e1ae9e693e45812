// Package raster implements render.Surface on an in-memory RGBA image.
//
// The surface is not safe for concurrent use; hosts paint and read it from
// one goroutine.
package raster

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"golang.org/x/image/draw"
)

// Surface is an RGBA pixel buffer with source-over blending.
type Surface struct {
	img *image.RGBA
	// masks caches the uniform opacity mask per 8-bit alpha.
	masks map[uint8]*image.Uniform
}

func New(width, height int) *Surface {
	s := &Surface{masks: make(map[uint8]*image.Uniform)}
	s.Resize(width, height)
	return s
}

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// Resize replaces the buffer with a transparent one of the new size.
func (s *Surface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if s.img != nil {
		b := s.img.Bounds()
		if b.Dx() == width && b.Dy() == height {
			return
		}
	}
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (s *Surface) Clear(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// FillSquare blends c over the size x size square at (x, y), clipped to the
// buffer, with the given opacity in [0, 1].
func (s *Surface) FillSquare(x, y, size int, c color.RGBA, alpha float64) {
	r := image.Rect(x, y, x+size, y+size).Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	draw.DrawMask(s.img, r, image.NewUniform(c), image.Point{}, s.mask(alpha), image.Point{}, draw.Over)
}

func (s *Surface) mask(alpha float64) *image.Uniform {
	switch {
	case alpha < 0:
		alpha = 0
	case alpha > 1:
		alpha = 1
	}
	a := uint8(alpha*255 + 0.5)
	m, ok := s.masks[a]
	if !ok {
		m = image.NewUniform(color.Alpha{A: a})
		s.masks[a] = m
	}
	return m
}

// Image returns the live buffer. It is replaced by Resize.
func (s *Surface) Image() *image.RGBA { return s.img }

// Pix returns the buffer's RGBA bytes, row-major.
func (s *Surface) Pix() []byte { return s.img.Pix }

func (s *Surface) EncodePNG(w io.Writer) error {
	return EncodePNG(w, s.img)
}

func EncodePNG(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	return enc.Encode(w, img)
}

func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func ReadPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return png.Decode(f)
}

// Thumbnail scales img so its longer side is at most maxSide, keeping the
// aspect ratio. Images already small enough are copied unscaled.
func Thumbnail(img image.Image, maxSide int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide > 0 && (w > maxSide || h > maxSide) {
		if w >= h {
			h = max(1, h*maxSide/w)
			w = maxSide
		} else {
			w = max(1, w*maxSide/h)
			h = maxSide
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == b.Dx() && h == b.Dy() {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
