//go:build cgo

package window

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Run opens the window and blocks until it closes.
func Run(h *Host) error {
	w, ht := h.Surface().Size()
	ebiten.SetWindowTitle(h.Options().Title)
	ebiten.SetWindowSize(w, ht)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(h.Options().FPS)

	err := ebiten.RunGame(&game{h: h})
	if err == ebiten.Termination {
		return nil
	}
	return err
}

type game struct {
	h     *Host
	img   *ebiten.Image
	chars []rune
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.h.ShowingHelp() {
		g.h.Apply(ActionDismiss)
	}

	g.chars = ebiten.AppendInputChars(g.chars[:0])
	for _, r := range g.chars {
		a := ActionForRune(r)
		if a == ActionNone && g.h.ShowingHelp() {
			a = ActionDismiss
		}
		if g.h.Apply(a) {
			return ebiten.Termination
		}
	}

	g.h.Frame(time.Now())
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	surface := g.h.Surface()
	w, h := surface.Size()
	if w == 0 || h == 0 {
		return
	}
	if g.img == nil || g.img.Bounds().Dx() != w || g.img.Bounds().Dy() != h {
		if g.img != nil {
			g.img.Deallocate()
		}
		g.img = ebiten.NewImage(w, h)
	}

	g.img.WritePixels(surface.Pix())
	screen.DrawImage(g.img, nil)
	ebitenutil.DebugPrint(screen, g.h.Overlay())
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.h.Layout(outsideWidth, outsideHeight, time.Now())
	return outsideWidth, outsideHeight
}
