package fixgl

import "math"

// TrigTable holds sin(a)·One for integer degrees 0..359.
//
// Cosine is read from the same table at a +90° offset.
type TrigTable struct {
	sin [360]Scalar
}

// NewTrigTable samples the sine at 1° steps, truncating towards zero.
func NewTrigTable() *TrigTable {
	t := &TrigTable{}
	for a := 0; a < 360; a++ {
		t.sin[a] = Scalar(math.Sin(float64(a)*math.Pi/180.0) * float64(One))
	}
	return t
}

// Sin accepts any degree, including negative values.
func (t *TrigTable) Sin(deg Scalar) Scalar { return t.sin[FloorMod(deg, 360)] }

func (t *TrigTable) Cos(deg Scalar) Scalar { return t.sin[FloorMod(deg+90, 360)] }

var defaultTrig = NewTrigTable()

// Sin returns sin(deg)·One from the shared table.
func Sin(deg Scalar) Scalar { return defaultTrig.Sin(deg) }

// Cos returns cos(deg)·One from the shared table.
func Cos(deg Scalar) Scalar { return defaultTrig.Cos(deg) }
