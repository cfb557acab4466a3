//go:build tinygo && baremetal

package hal

import (
	"fmt"
	"machine"

	"tinygo.org/x/drivers/ili9341"
)

// spiPanel drives an ILI9341 on SPI0.
//
// Wiring: SCK GP6, SDO GP7, CS GP13, RST GP14, DC GP15.
type spiPanel struct {
	dev *ili9341.Device

	w, h           int
	x0, y0, x1, y1 int
	row            int
}

func newSPIPanel() *spiPanel {
	return &spiPanel{
		dev: ili9341.NewSPI(machine.SPI0, machine.GP15, machine.GP13, machine.GP14),
	}
}

func (p *spiPanel) Configure(cfg PanelConfig) error {
	if !cfg.BGR {
		// The driver always programs BGR order in MADCTL.
		return fmt.Errorf("hal: ili9341 RGB order: %w", ErrNotImplemented)
	}
	if err := machine.SPI0.Configure(machine.SPIConfig{
		SCK:       machine.GP6,
		SDO:       machine.GP7,
		Frequency: cfg.ClockHz,
	}); err != nil {
		return fmt.Errorf("hal: spi0: %w", err)
	}
	p.dev.Configure(ili9341.Config{
		Width:    int16(cfg.Width),
		Height:   int16(cfg.Height),
		Rotation: cfg.Rotation,
	})
	w, h := p.dev.Size()
	p.w, p.h = int(w), int(h)
	p.x0, p.y0, p.x1, p.y1 = 0, 0, p.w-1, p.h-1
	return nil
}

func (p *spiPanel) Size() (w, h int) { return p.w, p.h }

func (p *spiPanel) SetWindow(x0, y0, x1, y1 int) error {
	if x0 < 0 || y0 < 0 || x1 >= p.w || y1 >= p.h || x0 > x1 || y0 > y1 {
		return fmt.Errorf("%w: (%d,%d)-(%d,%d)", ErrWindow, x0, y0, x1, y1)
	}
	p.x0, p.y0, p.x1, p.y1 = x0, y0, x1, y1
	p.row = y0
	return nil
}

// WritePixels sends whole rows of the current window, continuing below the
// rows written by the previous call.
func (p *spiPanel) WritePixels(buf []byte) error {
	ww := p.x1 - p.x0 + 1
	stride := ww * 2
	if len(buf)%stride != 0 {
		return fmt.Errorf("hal: write of %d bytes is not whole %d-pixel rows", len(buf), ww)
	}
	rows := len(buf) / stride
	if p.row+rows > p.y1+1 {
		return fmt.Errorf("%w: %d rows past window end", ErrWindow, p.row+rows-p.y1-1)
	}
	if rows == 0 {
		return nil
	}
	if err := p.dev.DrawRGBBitmap8(int16(p.x0), int16(p.row), buf, int16(ww), int16(rows)); err != nil {
		return err
	}
	p.row += rows
	if p.row > p.y1 {
		p.row = p.y0
	}
	return nil
}
