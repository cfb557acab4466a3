package fixgl

// DepthBuffer keeps one glyph sample per screen cell, nearest sample wins.
//
// Depth is stored as inverse depth (larger is nearer). A cell is overwritten only
// by a strictly nearer sample, so ties keep the first sample seen in the frame.
type DepthBuffer struct {
	cols, rows int
	ooz        []Scalar
	glyph      []byte
	color      []Color
}

func NewDepthBuffer(cols, rows int) *DepthBuffer {
	if cols < 0 {
		cols = 0
	}
	if rows < 0 {
		rows = 0
	}
	n := cols * rows
	d := &DepthBuffer{
		cols:  cols,
		rows:  rows,
		ooz:   make([]Scalar, n),
		glyph: make([]byte, n),
		color: make([]Color, n),
	}
	d.Reset()
	return d
}

func (d *DepthBuffer) Cols() int { return d.cols }
func (d *DepthBuffer) Rows() int { return d.rows }

// Reset clears every cell to blank at infinite distance.
func (d *DepthBuffer) Reset() {
	for i := range d.ooz {
		d.ooz[i] = 0
		d.glyph[i] = ' '
		d.color[i] = Black
	}
}

// Plot offers a sample to a cell and reports whether it was stored.
func (d *DepthBuffer) Plot(col, row int, ooz Scalar, glyph byte, c Color) bool {
	if col < 0 || row < 0 || col >= d.cols || row >= d.rows {
		return false
	}
	i := row*d.cols + col
	if ooz <= d.ooz[i] {
		return false
	}
	d.ooz[i] = ooz
	d.glyph[i] = glyph
	d.color[i] = c
	return true
}

// Cell returns the stored sample of a cell.
func (d *DepthBuffer) Cell(col, row int) (ooz Scalar, glyph byte, c Color) {
	if col < 0 || row < 0 || col >= d.cols || row >= d.rows {
		return 0, ' ', Black
	}
	i := row*d.cols + col
	return d.ooz[i], d.glyph[i], d.color[i]
}
