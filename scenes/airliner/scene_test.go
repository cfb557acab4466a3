package airliner

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"tftscenes/fixgl"
)

func newBuilt(t *testing.T, cfg Config) *Scene {
	t.Helper()
	s := New(cfg)
	if err := s.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return s
}

func render(t *testing.T, s *Scene, frame uint32) *fixgl.Framebuffer {
	t.Helper()
	fb, err := fixgl.NewFramebuffer(240, 320)
	if err != nil {
		t.Fatal(err)
	}
	s.Update(frame)
	s.Render(fb)
	return fb
}

func TestMeshCounts(t *testing.T) {
	s := newBuilt(t, DefaultConfig())
	m := s.Mesh()
	// fuselage 14×18, wings 12, tailplane 4, fin 3, engines 2×3×10
	if got, want := len(m.Verts), 252+12+4+3+60; got != want {
		t.Fatalf("verts = %d, want %d", got, want)
	}
	// fuselage 14×18+13×18, wings 18, tailplane 4, fin 3, engines 2×(30+20+1)
	if got, want := len(m.Edges), 486+18+4+3+102; got != want {
		t.Fatalf("edges = %d, want %d", got, want)
	}
}

func TestFuselageSquash(t *testing.T) {
	s := newBuilt(t, DefaultConfig())
	// Ring 6 (r=27), segment at 80°: y = (27·sin80 // One)·3/4.
	v := s.Mesh().Verts[6*18+4]
	want := fixgl.Ratio{Num: 3, Den: 4}.Apply(fixgl.FloorDiv(27*fixgl.Sin(80), fixgl.One))
	if v.Y != want || v.Z != -10 {
		t.Fatalf("vertex = %v, want y=%d z=-10", v, want)
	}
}

func TestBuildRejectsBadGeometry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FuselageSegments = 2
	if err := New(cfg).Build(); !errors.Is(err, fixgl.ErrInvalidGeometry) {
		t.Fatalf("Build err = %v, want ErrInvalidGeometry", err)
	}

	cfg = DefaultConfig()
	cfg.Fuselage = cfg.Fuselage[:5]
	if err := New(cfg).Build(); !errors.Is(err, fixgl.ErrInvalidGeometry) {
		t.Fatalf("short fuselage err = %v", err)
	}

	cfg = DefaultConfig()
	cfg.MinorStep = 0
	err := New(cfg).Build()
	if !errors.Is(err, fixgl.ErrInvalidGeometry) || !strings.Contains(err.Error(), "grid steps 0/") {
		t.Fatalf("zero grid step err = %v", err)
	}
}

func TestRenderGridAndModel(t *testing.T) {
	cfg := DefaultConfig()
	s := newBuilt(t, cfg)
	fb := render(t, s, 0)

	checks := []struct {
		x, y int
		want fixgl.Color
		name string
	}{
		{10, 10, cfg.Background, "background"},
		{20, 10, cfg.GridMinor, "minor grid"},
		{40, 10, cfg.GridMajor, "major grid"},
		{120, 5, cfg.Axis, "vertical axis"},
		{5, 160, cfg.Axis, "horizontal axis"},
	}
	for _, c := range checks {
		if got := fb.At(c.x, c.y); got != c.want {
			t.Fatalf("%s at (%d,%d) = %#04x, want %#04x", c.name, c.x, c.y, got, c.want)
		}
	}

	white := 0
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if fb.At(x, y) == cfg.Stroke.Core {
				white++
			}
		}
	}
	if white < 200 {
		t.Fatalf("only %d core pixels drawn", white)
	}
}

func TestRenderDeterministic(t *testing.T) {
	a := render(t, newBuilt(t, DefaultConfig()), 37)
	b := render(t, newBuilt(t, DefaultConfig()), 37)
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("same frame rendered differently")
	}
	c := render(t, newBuilt(t, DefaultConfig()), 38)
	if bytes.Equal(a.Bytes(), c.Bytes()) {
		t.Fatal("consecutive frames identical")
	}
}

func TestRenderKeepsModel(t *testing.T) {
	s := newBuilt(t, DefaultConfig())
	before := append([]fixgl.Vec3(nil), s.Mesh().Verts...)
	for f := uint32(0); f < 5; f++ {
		render(t, s, f*41)
	}
	for i, v := range s.Mesh().Verts {
		if v != before[i] {
			t.Fatalf("vertex %d changed: %v -> %v", i, before[i], v)
		}
	}
}
