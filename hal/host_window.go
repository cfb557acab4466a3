//go:build !tinygo && cgo

package hal

import (
	"context"
	"image"

	"tftscenes/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowConfig controls the desktop viewer.
type WindowConfig struct {
	Title string
	Scale int
}

// RunWindow shows the emulated panel in a desktop window while run drives it
// on another goroutine. Esc or closing the window pulls the kill pin low; the
// window stays up until the application has sent its final frame.
func RunWindow(ctx context.Context, h *Host, run Runner, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 2
	}
	if cfg.Title == "" {
		cfg.Title = "tftscenes"
	}
	done := make(chan error, 1)
	go func() { done <- run(ctx, h) }()

	g := &hostGame{h: h, done: done}
	pc := h.PanelConfig()
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(pc.Width*cfg.Scale, pc.Height*cfg.Scale)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(g); err != nil {
		h.RequestStop()
		return err
	}
	return g.err
}

type hostGame struct {
	h       *Host
	done    <-chan error
	err     error
	img     *image.RGBA
	fbImg   *ebiten.Image
	scratch []byte
	w, hh   int
}

func (g *hostGame) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed() {
		g.h.RequestStop()
	}
	select {
	case g.err = <-g.done:
		return ebiten.Termination
	default:
		return nil
	}
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	w, h := g.h.panel.Size()
	if w == 0 || h == 0 {
		return
	}
	if g.img == nil || g.w != w || g.hh != h {
		g.w, g.hh = w, h
		g.img = image.NewRGBA(image.Rect(0, 0, w, h))
		g.scratch = make([]byte, w*h*2)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(w, h)
	}

	g.h.panel.snapshot(g.scratch)
	expandRGB565BE(g.img.Pix, g.scratch)
	g.fbImg.WritePixels(g.img.Pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	pc := g.h.PanelConfig()
	if w, h := g.h.panel.Size(); w > 0 && h > 0 {
		return w, h
	}
	return pc.Width, pc.Height
}
