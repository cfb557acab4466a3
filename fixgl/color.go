package fixgl

import (
	"image/color"

	"tinygo.org/x/drivers/pixel"
)

// Color is a panel-native RGB565 pixel, stored big-endian.
type Color = pixel.RGB565BE

// RGB packs 8-bit channels into RGB565 (5/6/5, low bits dropped).
func RGB(r, g, b uint8) Color { return pixel.NewRGB565BE(r, g, b) }

// Black is the all-zero pixel.
var Black = RGB(0, 0, 0)

// RGBA expands a panel color for drivers.Displayer based renderers.
func RGBA(c Color) color.RGBA { return c.RGBA() }

// Palette is a 256-entry lookup table, indexed with an 8-bit phase or level.
type Palette [256]Color

// NewPalette builds a palette from integer channel functions. Channels are
// clamped to 0..255 before packing.
func NewPalette(fn func(i int) (r, g, b int)) Palette {
	var p Palette
	for i := range p {
		r, g, b := fn(i)
		p[i] = RGB(clamp8(r), clamp8(g), clamp8(b))
	}
	return p
}

// At indexes with wraparound.
func (p *Palette) At(i int) Color { return p[i&0xFF] }

func clamp8(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
