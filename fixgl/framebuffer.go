package fixgl

import (
	"fmt"

	"tinygo.org/x/drivers/pixel"
)

// Framebuffer is a full-frame RGB565 pixel buffer.
//
// Memory layout is row-major, top-left origin, two bytes per pixel in the order
// the panel expects on the wire. All drawing clips against the frame.
type Framebuffer struct {
	img  pixel.Image[pixel.RGB565BE]
	w    int
	h    int
	text TextDisplayer
}

// NewFramebuffer allocates a w×h buffer. It is the only allocation of a frame
// pipeline and happens once before the loop starts.
func NewFramebuffer(w, h int) (*Framebuffer, error) {
	if w <= 0 || h <= 0 || w > 0x7FFF || h > 0x7FFF {
		return nil, fmt.Errorf("fixgl: invalid framebuffer size %dx%d", w, h)
	}
	f := &Framebuffer{
		img: pixel.NewImage[pixel.RGB565BE](w, h),
		w:   w,
		h:   h,
	}
	f.text.fb = f
	return f, nil
}

func (f *Framebuffer) Width() int  { return f.w }
func (f *Framebuffer) Height() int { return f.h }

// Bytes exposes the raw buffer for transfer. Its length is Width·Height·2.
func (f *Framebuffer) Bytes() []byte { return f.img.RawBuffer() }

func (f *Framebuffer) Fill(c Color) { f.img.FillSolidColor(c) }

// SetPixel writes one pixel; out-of-frame coordinates are ignored.
func (f *Framebuffer) SetPixel(x, y int, c Color) {
	if uint(x) >= uint(f.w) || uint(y) >= uint(f.h) {
		return
	}
	f.img.Set(x, y, c)
}

// At reads one pixel; out-of-frame coordinates read as black.
func (f *Framebuffer) At(x, y int) Color {
	if uint(x) >= uint(f.w) || uint(y) >= uint(f.h) {
		return Black
	}
	return f.img.Get(x, y)
}

// HLine draws w pixels to the right of (x, y).
func (f *Framebuffer) HLine(x, y, w int, c Color) {
	if w <= 0 || y < 0 || y >= f.h {
		return
	}
	x0, x1 := x, x+w
	if x0 < 0 {
		x0 = 0
	}
	if x1 > f.w {
		x1 = f.w
	}
	for i := x0; i < x1; i++ {
		f.img.Set(i, y, c)
	}
}

// VLine draws h pixels below (x, y).
func (f *Framebuffer) VLine(x, y, h int, c Color) {
	if h <= 0 || x < 0 || x >= f.w {
		return
	}
	y0, y1 := y, y+h
	if y0 < 0 {
		y0 = 0
	}
	if y1 > f.h {
		y1 = f.h
	}
	for j := y0; j < y1; j++ {
		f.img.Set(x, j, c)
	}
}

// Line draws a 1-pixel Bresenham line including both endpoints.
func (f *Framebuffer) Line(x0, y0, x1, y1 int, c Color) {
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= f.w && x1 >= f.w) || (y0 >= f.h && y1 >= f.h) {
		return
	}
	dx := x1 - x0
	sx := 1
	if dx < 0 {
		dx = -dx
		sx = -1
	}
	dy := y1 - y0
	sy := 1
	if dy < 0 {
		dy = -dy
		sy = -1
	}
	dy = -dy

	err := dx + dy
	for {
		f.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// FillCircle fills a disc with the midpoint algorithm using horizontal runs.
func (f *Framebuffer) FillCircle(cx, cy, r int, c Color) {
	if r < 0 {
		return
	}
	x, y := 0, r
	d := 1 - r
	f.HLine(cx-r, cy, 2*r+1, c)
	for x < y {
		if d >= 0 {
			y--
			d += 2*(x-y) + 5
		} else {
			d += 2*x + 3
		}
		x++
		f.HLine(cx-x, cy+y, 2*x+1, c)
		f.HLine(cx-x, cy-y, 2*x+1, c)
		f.HLine(cx-y, cy+x, 2*y+1, c)
		f.HLine(cx-y, cy-x, 2*y+1, c)
	}
}

// CirclePoly outlines a circle as a closed polygon of seg chords.
func (f *Framebuffer) CirclePoly(cx, cy, r, seg int, c Color) {
	if seg < 3 {
		seg = 3
	}
	rr := Scalar(r)
	px := cx + int(FloorDiv(rr*Cos(0), One))
	py := cy + int(FloorDiv(rr*Sin(0), One))
	for i := 1; i <= seg; i++ {
		a := Scalar(i * 360 / seg)
		x := cx + int(FloorDiv(rr*Cos(a), One))
		y := cy + int(FloorDiv(rr*Sin(a), One))
		f.Line(px, py, x, y, c)
		px, py = x, y
	}
}
