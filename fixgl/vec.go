package fixgl

// Vec3 is a fixed-point 3D point or direction.
type Vec3 struct {
	X, Y, Z Scalar
}

func V3(x, y, z Scalar) Vec3 { return Vec3{X: x, Y: y, Z: z} }

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Rotator is the (cos, sin) pair of one axis angle.
type Rotator struct {
	C, S Scalar
}

// Angle looks the pair up in the shared trig table.
func Angle(deg Scalar) Rotator { return Rotator{C: Cos(deg), S: Sin(deg)} }

// RotateX rotates about the X axis; x is unchanged.
func RotateX(p Vec3, r Rotator) Vec3 {
	return Vec3{
		X: p.X,
		Y: FloorDiv(p.Y*r.C-p.Z*r.S, One),
		Z: FloorDiv(p.Y*r.S+p.Z*r.C, One),
	}
}

// RotateY rotates about the Y axis; y is unchanged.
func RotateY(p Vec3, r Rotator) Vec3 {
	return Vec3{
		X: FloorDiv(p.X*r.C+p.Z*r.S, One),
		Y: p.Y,
		Z: FloorDiv(-p.X*r.S+p.Z*r.C, One),
	}
}

// RotateZ rotates about the Z axis; z is unchanged.
func RotateZ(p Vec3, r Rotator) Vec3 {
	return Vec3{
		X: FloorDiv(p.X*r.C-p.Y*r.S, One),
		Y: FloorDiv(p.X*r.S+p.Y*r.C, One),
		Z: p.Z,
	}
}
