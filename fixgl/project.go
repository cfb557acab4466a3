package fixgl

// ProjectMode selects how the perspective divide is applied.
type ProjectMode uint8

const (
	// ProjectDirect computes x·FOV // den.
	ProjectDirect ProjectMode = iota
	// ProjectScaled computes k = Distance·One // den, then x·k // One.
	ProjectScaled
)

// Perspective maps camera-space points to screen space.
//
// The camera sits Distance units in front of the origin looking down +z; points
// with smaller z are nearer. The denominator Distance+z is clamped to MinDepth so
// geometry crossing the camera plane never divides by zero or flips sign.
type Perspective struct {
	Distance Scalar
	FOV      Scalar // ProjectDirect only
	MinDepth Scalar
	Mode     ProjectMode
	// FlipY makes +y render upwards.
	FlipY bool
}

// Denominator returns the clamped Distance+z.
func (p Perspective) Denominator(z Scalar) Scalar {
	den := p.Distance + z
	if den < p.MinDepth {
		den = p.MinDepth
	}
	if den <= 0 {
		den = 1
	}
	return den
}

// Scale returns the Distance·One // den magnification at depth z.
func (p Perspective) Scale(z Scalar) Scalar {
	return FloorDiv(p.Distance*One, p.Denominator(z))
}

// Project returns integer screen coordinates relative to the centre (cx, cy).
// The result is not clipped.
func (p Perspective) Project(v Vec3, cx, cy Scalar) (x, y Scalar) {
	var dx, dy Scalar
	switch p.Mode {
	case ProjectScaled:
		k := p.Scale(v.Z)
		dx = FloorDiv(v.X*k, One)
		dy = FloorDiv(v.Y*k, One)
	default:
		den := p.Denominator(v.Z)
		dx = FloorDiv(v.X*p.FOV, den)
		dy = FloorDiv(v.Y*p.FOV, den)
	}
	if p.FlipY {
		return cx + dx, cy - dy
	}
	return cx + dx, cy + dy
}
