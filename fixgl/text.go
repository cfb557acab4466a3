package fixgl

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// TextFont is the 8 px bitmap font used for labels and glyph grids.
var TextFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// TextBaseline is the offset from the top of an 8 px text cell to the baseline.
const TextBaseline = 7

// TextCell is the width and height of one character cell.
const TextCell = 8

// DrawText writes s with its cell top-left at (x, y), advancing TextCell pixels
// per character so labels line up with the glyph grid.
func (f *Framebuffer) DrawText(x, y int, s string, c Color) {
	rgba := RGBA(c)
	for _, r := range s {
		if r != ' ' {
			f.drawRune(x, y, r, rgba)
		}
		x += TextCell
	}
}

// DrawBytes is DrawText for a reusable byte buffer.
func (f *Framebuffer) DrawBytes(x, y int, b []byte, c Color) {
	for _, ch := range b {
		f.DrawGlyph(x, y, ch, c)
		x += TextCell
	}
}

// DrawGlyph writes a single character into the cell whose top-left is (x, y).
func (f *Framebuffer) DrawGlyph(x, y int, r byte, c Color) {
	if r == ' ' {
		return
	}
	f.drawRune(x, y, rune(r), RGBA(c))
}

// drawRune draws the glyph unrotated straight into the embedded displayer.
// tinyfont.DrawChar would box a RotatedDisplay per call.
func (f *Framebuffer) drawRune(x, y int, r rune, c color.RGBA) {
	TextFont.GetGlyph(r).Draw(&f.text, int16(x), int16(y+TextBaseline), c)
}

// Displayer adapts the framebuffer to the TinyGo drivers interface used by
// tinyfont and tinyterm. Display is a no-op: transfers belong to the caller.
func (f *Framebuffer) Displayer() *TextDisplayer { return &f.text }

// TextDisplayer implements the drivers displayer interfaces on top of a
// Framebuffer.
type TextDisplayer struct {
	fb *Framebuffer
}

var _ drivers.Displayer = (*TextDisplayer)(nil)

func (d *TextDisplayer) Size() (x, y int16) { return int16(d.fb.w), int16(d.fb.h) }

func (d *TextDisplayer) SetPixel(x, y int16, c color.RGBA) {
	d.fb.SetPixel(int(x), int(y), RGB(c.R, c.G, c.B))
}

func (d *TextDisplayer) Display() error { return nil }

func (d *TextDisplayer) FillRectangle(x, y, width, height int16, c color.RGBA) error {
	col := RGB(c.R, c.G, c.B)
	for j := int(y); j < int(y)+int(height); j++ {
		d.fb.HLine(int(x), j, int(width), col)
	}
	return nil
}

// SetScroll is unsupported; consoles must use software scrolling.
func (d *TextDisplayer) SetScroll(line int16) {}

func (d *TextDisplayer) SetRotation(rotation drivers.Rotation) error { return nil }
