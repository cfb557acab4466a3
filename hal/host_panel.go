package hal

import (
	"errors"
	"fmt"
	"sync"

	"tinygo.org/x/drivers"
)

var errNotConfigured = errors.New("hal: panel not configured")

// hostPanel emulates the controller's graphics RAM: SetWindow latches an
// address window and WritePixels fills it left to right, top to bottom,
// wrapping back to the window origin. Each time the window wraps the GRAM is
// published as a complete frame.
type hostPanel struct {
	mu         sync.Mutex
	cfg        PanelConfig
	configured bool
	w, h       int

	gram  []byte
	front []byte

	x0, y0, x1, y1 int
	cx, cy         int
	half           bool

	frames  uint64
	onFrame func(frame []byte)
}

func newHostPanel() *hostPanel { return &hostPanel{} }

func (p *hostPanel) Configure(cfg PanelConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("hal: panel %dx%d: %w", cfg.Width, cfg.Height, ErrWindow)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	p.cfg = cfg
	p.w, p.h = cfg.Width, cfg.Height
	switch cfg.Rotation {
	case drivers.Rotation90, drivers.Rotation270, drivers.Rotation90Mirror, drivers.Rotation270Mirror:
		p.w, p.h = p.h, p.w
	}
	p.gram = make([]byte, p.w*p.h*2)
	p.front = make([]byte, p.w*p.h*2)
	p.configured = true
	p.setWindowLocked(0, 0, p.w-1, p.h-1)
	return nil
}

func (p *hostPanel) Size() (w, h int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.w, p.h
}

func (p *hostPanel) SetWindow(x0, y0, x1, y1 int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured {
		return errNotConfigured
	}
	if x0 < 0 || y0 < 0 || x1 >= p.w || y1 >= p.h || x0 > x1 || y0 > y1 {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d) on %dx%d", ErrWindow, x0, y0, x1, y1, p.w, p.h)
	}
	p.setWindowLocked(x0, y0, x1, y1)
	return nil
}

func (p *hostPanel) setWindowLocked(x0, y0, x1, y1 int) {
	p.x0, p.y0, p.x1, p.y1 = x0, y0, x1, y1
	p.cx, p.cy = x0, y0
	p.half = false
}

func (p *hostPanel) WritePixels(buf []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.configured {
		return errNotConfigured
	}
	for _, b := range buf {
		i := (p.cy*p.w + p.cx) * 2
		if p.half {
			p.gram[i+1] = b
		} else {
			p.gram[i] = b
			p.half = true
			continue
		}
		p.half = false
		p.cx++
		if p.cx <= p.x1 {
			continue
		}
		p.cx = p.x0
		p.cy++
		if p.cy <= p.y1 {
			continue
		}
		p.cy = p.y0
		p.publishLocked()
	}
	return nil
}

func (p *hostPanel) publishLocked() {
	copy(p.front, p.gram)
	p.frames++
	if p.onFrame != nil {
		p.onFrame(p.front)
	}
}

// snapshot copies the last published frame into dst and returns its size.
func (p *hostPanel) snapshot(dst []byte) (w, h int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	copy(dst, p.front)
	return p.w, p.h
}

func (p *hostPanel) frameCount() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

// setFrameHook installs fn to run, under the panel lock, on every published
// frame. fn must not retain the slice.
func (p *hostPanel) setFrameHook(fn func(frame []byte)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onFrame = fn
}
