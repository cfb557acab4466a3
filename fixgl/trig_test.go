package fixgl

import "testing"

func TestTrigExactAngles(t *testing.T) {
	cases := []struct {
		deg, sin, cos Scalar
	}{
		{0, 0, One},
		{90, One, 0},
		{180, 0, -One},
		{270, -One, 0},
		{360, 0, One},
		{-90, -One, 0},
		{450, One, 0},
	}
	for _, c := range cases {
		if got := Sin(c.deg); got != c.sin {
			t.Fatalf("Sin(%d) = %d, want %d", c.deg, got, c.sin)
		}
		if got := Cos(c.deg); got != c.cos {
			t.Fatalf("Cos(%d) = %d, want %d", c.deg, got, c.cos)
		}
	}
}

func TestTrigTableShape(t *testing.T) {
	for a := Scalar(-720); a < 720; a++ {
		if Cos(a) != Sin(a+90) {
			t.Fatalf("Cos(%d) != Sin(%d)", a, a+90)
		}
		if Sin(a) != Sin(a+360) {
			t.Fatalf("Sin not periodic at %d", a)
		}
		if s := Sin(a); s < -One || s > One {
			t.Fatalf("Sin(%d) = %d out of range", a, s)
		}
	}
	// Rising quarter wave.
	for a := Scalar(1); a <= 90; a++ {
		if Sin(a) < Sin(a-1) {
			t.Fatalf("Sin not monotonic at %d", a)
		}
	}
}

func TestNewTrigTableMatchesShared(t *testing.T) {
	tt := NewTrigTable()
	for a := Scalar(0); a < 360; a++ {
		if tt.Sin(a) != Sin(a) || tt.Cos(a) != Cos(a) {
			t.Fatalf("table mismatch at %d", a)
		}
	}
}
