package torus

import (
	"errors"
	"testing"

	"tftscenes/fixgl"
)

func renderFrame(t *testing.T, cfg Config, frame uint32) (*Scene, *fixgl.Framebuffer) {
	t.Helper()
	s := New(cfg)
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	fb, err := fixgl.NewFramebuffer(240, 320)
	if err != nil {
		t.Fatal(err)
	}
	s.Update(frame)
	s.Render(fb)
	return s, fb
}

func maxDepth(d *fixgl.DepthBuffer) fixgl.Scalar {
	var m fixgl.Scalar
	for row := 0; row < d.Rows(); row++ {
		for col := 0; col < d.Cols(); col++ {
			if ooz, _, _ := d.Cell(col, row); ooz > m {
				m = ooz
			}
		}
	}
	return m
}

// The point of the ring closest to the camera sits at phi=270°, theta=0° and
// projects onto the grid centre. With a light along the view axis its normal
// faces the light head-on, so its cell takes the brightest glyph.
func TestNearestCellIsBrightest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PhiStep = 6
	cfg.Light = fixgl.V3(0, 0, -1)
	cfg.LightDiv = fixgl.One
	s, _ := renderFrame(t, cfg, 0)

	col, row := cfg.Cols/2+cfg.OffsetX, cfg.Rows/2+cfg.OffsetY
	ooz, g, _ := s.Depth().Cell(col, row)
	if g != Ramp[len(Ramp)-1] {
		t.Fatalf("nearest cell glyph = %q, want %q", g, Ramp[len(Ramp)-1])
	}
	if m := maxDepth(s.Depth()); ooz != m {
		t.Fatalf("nearest cell depth = %d, max = %d", ooz, m)
	}
}

func TestDefaultLightShadesNearestCellMidRamp(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PhiStep = 6
	s, _ := renderFrame(t, cfg, 0)

	_, g, _ := s.Depth().Cell(cfg.Cols/2+cfg.OffsetX, cfg.Rows/2+cfg.OffsetY)
	if g != ';' {
		t.Fatalf("glyph = %q, want ';'", g)
	}
}

func TestShade(t *testing.T) {
	cases := []struct {
		dot, div fixgl.Scalar
		want     byte
	}{
		{0, 2048, ' '},
		{-500, 2048, ' '},
		{1024, 2048, ';'},
		{2048, 2048, '@'},
		{9000, 2048, '@'},
		{1024, 1024, '@'},
		{100, 0, ' '},
	}
	for _, c := range cases {
		if got := Shade(c.dot, c.div); got != c.want {
			t.Fatalf("Shade(%d, %d) = %q, want %q", c.dot, c.div, got, c.want)
		}
	}
}

func TestRenderDrawsGlyphsAndTitle(t *testing.T) {
	s, fb := renderFrame(t, DefaultConfig(), 0)

	cells := 0
	d := s.Depth()
	for row := 0; row < d.Rows(); row++ {
		for col := 0; col < d.Cols(); col++ {
			if ooz, _, _ := d.Cell(col, row); ooz > 0 {
				cells++
			}
		}
	}
	if cells < 100 {
		t.Fatalf("only %d cells covered", cells)
	}

	lit := 0
	for y := fb.Height() - fixgl.TextCell; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if fb.At(x, y) != fixgl.Black {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatal("title row is empty")
	}
}

func TestHueCycles(t *testing.T) {
	s := New(DefaultConfig())
	if err := s.Build(); err != nil {
		t.Fatal(err)
	}
	s.Update(86)
	if s.hue != 2 {
		t.Fatalf("hue at frame 86 = %d, want 2", s.hue)
	}
	p := NeonPalette()
	if p.At(0) != fixgl.RGB(0, 0, 255) || p.At(85) != fixgl.RGB(0, 255, 255) {
		t.Fatal("palette endpoints drifted")
	}
}

func TestBuildRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cols = 0
	if err := New(cfg).Build(); !errors.Is(err, fixgl.ErrInvalidGeometry) {
		t.Fatalf("err = %v", err)
	}
	cfg = DefaultConfig()
	cfg.ThetaStep = 0
	if err := New(cfg).Build(); !errors.Is(err, fixgl.ErrInvalidGeometry) {
		t.Fatalf("err = %v", err)
	}
}
