package galaxy

import (
	"bytes"
	"errors"
	"testing"

	"tftscenes/fixgl"
)

func build(t *testing.T, cfg Config) *Scene {
	t.Helper()
	s := New(cfg)
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func frameBytes(t *testing.T, s *Scene, frames int) []byte {
	t.Helper()
	fb, err := fixgl.NewFramebuffer(240, 320)
	if err != nil {
		t.Fatal(err)
	}
	for f := 0; f < frames; f++ {
		s.Update(uint32(f))
		s.Render(fb)
	}
	return append([]byte(nil), fb.Bytes()...)
}

func TestStarGenerationReference(t *testing.T) {
	s := build(t, DefaultConfig())
	want := []Star{
		{R: 3, Angle: 193, Brightness: 172, Drift: 1},
		{R: 38, Angle: 326, Brightness: 250, Drift: 0},
		{R: 54, Angle: 115, Brightness: 183, Drift: -1},
	}
	for i, w := range want {
		if got := s.Stars()[i]; got != w {
			t.Fatalf("star %d = %+v, want %+v", i, got, w)
		}
	}
	if len(s.Stars()) != 520 {
		t.Fatalf("stars = %d, want 520", len(s.Stars()))
	}
}

func TestUpdateRotatesAndDrifts(t *testing.T) {
	s := build(t, DefaultConfig())
	s.Update(0)
	// omega = 2 + 90/(3+12) = 8; drift applies on frame 0 and moves r to 4.
	if st := s.Stars()[0]; st.Angle != 201 || st.R != 4 {
		t.Fatalf("star 0 after frame 0 = %+v, want angle 201 r 4", st)
	}
	s.Update(1)
	// omega = 2 + 90/(4+12) = 7 at the drifted radius.
	if st := s.Stars()[0]; st.Angle != 208 || st.R != 4 {
		t.Fatalf("star 0 after frame 1 = %+v, want angle 208 r 4", st)
	}
}

func TestRadiiStayBounded(t *testing.T) {
	cfg := DefaultConfig()
	s := build(t, cfg)
	for f := uint32(0); f < 4000; f++ {
		s.Update(f)
	}
	for i, st := range s.Stars() {
		if st.R < 0 || st.R > cfg.MaxRadius {
			t.Fatalf("star %d radius %d out of [0,%d]", i, st.R, cfg.MaxRadius)
		}
		if st.Angle < 0 || st.Angle >= 360 {
			t.Fatalf("star %d angle %d", i, st.Angle)
		}
	}
}

func TestSameSeedSameFrames(t *testing.T) {
	a := frameBytes(t, build(t, DefaultConfig()), 3)
	b := frameBytes(t, build(t, DefaultConfig()), 3)
	if !bytes.Equal(a, b) {
		t.Fatal("same seed produced different frames")
	}

	cfg := DefaultConfig()
	cfg.Seed = 7
	c := frameBytes(t, build(t, cfg), 3)
	if bytes.Equal(a, c) {
		t.Fatal("different seeds produced identical frames")
	}
}

func TestShootingStarSpawn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ShootChance = 1
	s := build(t, cfg)
	fb, err := fixgl.NewFramebuffer(240, 320)
	if err != nil {
		t.Fatal(err)
	}
	s.Update(0)
	s.Render(fb)

	sh := s.shoot
	if sh.vx == 0 && sh.vy == 0 {
		t.Fatal("shooting star has no velocity")
	}
	// Spawned with life 10..18, one frame already spent.
	if sh.life < 9 || sh.life > 17 {
		t.Fatalf("life after first frame = %d", sh.life)
	}
	hx, hy := sh.x-sh.vx, sh.y-sh.vy
	if hx >= 0 && hy >= 0 && hx < 240 && hy < 320 && fb.At(hx, hy) != cfg.Head {
		t.Fatalf("head pixel at (%d,%d) not drawn", hx, hy)
	}
}

func TestBuildRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxRadius = 0
	if err := New(cfg).Build(); !errors.Is(err, fixgl.ErrInvalidGeometry) {
		t.Fatalf("err = %v", err)
	}
	cfg = DefaultConfig()
	cfg.ShootChance = 0
	if err := New(cfg).Build(); !errors.Is(err, fixgl.ErrInvalidGeometry) {
		t.Fatalf("err = %v", err)
	}
}
