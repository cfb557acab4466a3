package orbit

import (
	"bytes"
	"errors"
	"testing"

	"tftscenes/fixgl"
)

func build(t *testing.T, cfg Config) (*Scene, *fixgl.Framebuffer) {
	t.Helper()
	s := New(cfg)
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	fb, err := fixgl.NewFramebuffer(240, 320)
	if err != nil {
		t.Fatal(err)
	}
	return s, fb
}

func TestEarthGrid(t *testing.T) {
	s, _ := build(t, DefaultConfig())
	if got := len(s.Earth().Verts); got != 72 {
		t.Fatalf("earth verts = %d, want 72", got)
	}
	// 6 latitude rings of 12 plus 12 meridians of 5 segments.
	if got := len(s.Earth().Edges); got != 132 {
		t.Fatalf("earth edges = %d, want 132", got)
	}
	if len(s.ring.Verts) != 48 || len(s.ring.Edges) != 48 {
		t.Fatalf("orbit ring = %d/%d, want 48/48", len(s.ring.Verts), len(s.ring.Edges))
	}
}

func TestMoonFarSide(t *testing.T) {
	cfg := DefaultConfig()
	s, fb := build(t, cfg)
	s.Render(fb)
	// Frame 0 puts the moon on +x at the depth of the globe's centre.
	if got := fb.At(236, 162); got != cfg.MoonFillFar {
		t.Fatalf("moon = %#04x, want far fill", got)
	}
}

func TestMoonNearSide(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateSpin = 0
	s, fb := build(t, cfg)
	s.Update(45)
	s.Render(fb)
	// 270 degrees swings the moon toward the camera, below the globe.
	if got := fb.At(120, 239); got != cfg.MoonFillNear {
		t.Fatalf("moon = %#04x, want near fill", got)
	}
}

func TestTrailFollowsMoon(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateSpin = 0
	s, fb := build(t, cfg)
	s.Render(fb)
	if fb.At(0, 0) == s.trailPal[0] {
		t.Fatal("unfilled trail slots drawn at origin")
	}

	s.Update(10)
	s.Render(fb)
	if got, want := fb.At(238, 160), s.trailPal[cfg.TrailLen-2]; got != want {
		t.Fatalf("previous moon position = %#04x, want trail %#04x", got, want)
	}
}

func TestTrailPalette(t *testing.T) {
	s, _ := build(t, DefaultConfig())
	if s.trailPal[0] != fixgl.RGB(35, 35, 60) {
		t.Fatalf("oldest trail colour = %#04x", s.trailPal[0])
	}
	if s.trailPal[17] != fixgl.RGB(188, 188, 213) {
		t.Fatalf("newest trail colour = %#04x", s.trailPal[17])
	}
}

func TestDeterministic(t *testing.T) {
	render := func() []byte {
		s, fb := build(t, DefaultConfig())
		for f := uint32(0); f < 12; f++ {
			s.Update(f)
			s.Render(fb)
		}
		return append([]byte(nil), fb.Bytes()...)
	}
	if !bytes.Equal(render(), render()) {
		t.Fatal("frames differ between identical runs")
	}
}

func TestRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LonStep = 7
	if err := New(cfg).Build(); !errors.Is(err, fixgl.ErrInvalidGeometry) {
		t.Fatalf("lonStep 7: err = %v", err)
	}
	cfg = DefaultConfig()
	cfg.TrailLen = 0
	if err := New(cfg).Build(); !errors.Is(err, fixgl.ErrInvalidGeometry) {
		t.Fatalf("trail 0: err = %v", err)
	}
}
