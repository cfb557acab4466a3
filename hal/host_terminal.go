//go:build !tinygo

package hal

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
)

// TerminalConfig controls the text-mode preview.
type TerminalConfig struct {
	// Refresh is the preview redraw period.
	Refresh time.Duration
}

// RunTerminal previews the emulated panel in the terminal using upper
// half-block cells, two panel rows per cell. q, Esc and Ctrl-C pull the kill
// pin low. Log lines are held until the screen is released.
func RunTerminal(ctx context.Context, h *Host, run Runner, cfg TerminalConfig) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("hal: terminal: %w", err)
	}
	return runTerminal(ctx, s, h, run, cfg)
}

func runTerminal(ctx context.Context, s tcell.Screen, h *Host, run Runner, cfg TerminalConfig) error {
	if cfg.Refresh <= 0 {
		cfg.Refresh = 50 * time.Millisecond
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("hal: terminal: %w", err)
	}
	h.logger.hold()
	defer h.logger.release()
	defer s.Fini()
	s.HideCursor()

	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			if key, ok := ev.(*tcell.EventKey); ok && isStopKey(key) {
				h.RequestStop()
			}
		}
	}()

	done := make(chan error, 1)
	go func() { done <- run(ctx, h) }()

	t := time.NewTicker(cfg.Refresh)
	defer t.Stop()

	var scratch []byte
	for {
		select {
		case err := <-done:
			return err
		case <-t.C:
			scratch = drawPreview(s, h.panel, scratch)
			s.Show()
		}
	}
}

func isStopKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// drawPreview samples the panel onto the screen and returns the scratch buffer
// for reuse.
func drawPreview(s tcell.Screen, p *hostPanel, scratch []byte) []byte {
	w, h := p.Size()
	if w == 0 || h == 0 {
		return scratch
	}
	if len(scratch) != w*h*2 {
		scratch = make([]byte, w*h*2)
	}
	p.snapshot(scratch)

	sw, sh := s.Size()
	if sw <= 0 || sh <= 0 {
		return scratch
	}
	step := (w + sw - 1) / sw
	if v := (h + 2*sh - 1) / (2 * sh); v > step {
		step = v
	}
	if step < 1 {
		step = 1
	}

	at := func(x, y int) tcell.Color {
		if y >= h {
			return tcell.NewRGBColor(0, 0, 0)
		}
		i := (y*w + x) * 2
		r, g, b := rgb888FromBE(scratch[i], scratch[i+1])
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}

	s.Clear()
	for ty := 0; ty < sh; ty++ {
		top := 2 * ty * step
		if top >= h {
			break
		}
		for tx := 0; tx < sw; tx++ {
			x := tx * step
			if x >= w {
				break
			}
			style := tcell.StyleDefault.Foreground(at(x, top)).Background(at(x, top+step))
			s.SetContent(tx, ty, '▀', nil, style)
		}
	}
	return scratch
}
