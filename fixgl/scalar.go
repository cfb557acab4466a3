package fixgl

// Scalar is a fixed-point value: real value × One.
type Scalar = int32

// One is the fixed-point scale (10 fractional bits).
const One Scalar = 1024

// FloorDiv divides rounding towards negative infinity.
//
// A zero divisor yields 0 rather than a fault: a frame must never abort on
// arithmetic edge cases.
func FloorDiv(a, b Scalar) Scalar {
	if b == 0 {
		return 0
	}
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod returns a modulo n with the sign of n.
func FloorMod(a, n Scalar) Scalar {
	if n == 0 {
		return 0
	}
	m := a % n
	if m != 0 && ((m < 0) != (n < 0)) {
		m += n
	}
	return m
}

// MulDiv computes a*b // d with an int64 intermediate.
func MulDiv(a, b, d Scalar) Scalar {
	if d == 0 {
		return 0
	}
	p := int64(a) * int64(b)
	q := p / int64(d)
	if p%int64(d) != 0 && ((p < 0) != (d < 0)) {
		q--
	}
	return Scalar(q)
}

// Ratio is a small rational used where the source geometry scales by a constant
// factor. Apply truncates towards zero.
type Ratio struct {
	Num, Den Scalar
}

// Unit is the identity ratio.
var Unit = Ratio{Num: 1, Den: 1}

func (r Ratio) Apply(v Scalar) Scalar {
	if r.Den == 0 {
		return v
	}
	return v * r.Num / r.Den
}

// Phase returns frame·rate mod m, for angles and colour cycles derived from a
// frame counter. It does not overflow for any frame.
func Phase(frame, rate, m uint32) Scalar {
	if m == 0 {
		return 0
	}
	return Scalar(uint64(frame) * uint64(rate) % uint64(m))
}
