package fixgl

// LCG is the 32-bit linear congruential generator used to seed scenes.
//
// Given the same seed and call sequence it reproduces the same values on every
// platform.
type LCG struct {
	state uint32
}

func NewLCG(seed uint32) *LCG { return &LCG{state: seed} }

// Next advances the state: state·1664525 + 1013904223 mod 2^32.
func (r *LCG) Next() uint32 {
	r.state = r.state*1664525 + 1013904223
	return r.state
}

// Intn returns Next() mod n, or 0 when n <= 0.
func (r *LCG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint32(n))
}

// Range returns a value in the inclusive range [lo, hi].
func (r *LCG) Range(lo, hi int) int {
	if hi < lo {
		return lo
	}
	return lo + int(r.Next()%uint32(hi-lo+1))
}
