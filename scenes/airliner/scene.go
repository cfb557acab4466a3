// Package airliner renders a blueprint-style wireframe airliner banking over a
// navy grid.
package airliner

import (
	"fmt"
	"time"

	"tftscenes/fixgl"
)

const Name = "airliner"

// Config is the scene's compile-time tuning.
type Config struct {
	Budget time.Duration

	Fuselage         []fixgl.Ring
	FuselageSegments int
	EngineSegments   int

	Camera fixgl.Perspective
	// CenterDY shifts the model below the screen centre.
	CenterDY   int
	CullMargin int
	Stroke     fixgl.GlowStroke

	Background fixgl.Color
	GridMinor  fixgl.Color
	GridMajor  fixgl.Color
	Axis       fixgl.Color
	MinorStep  int
	MajorStep  int
}

func DefaultConfig() Config {
	return Config{
		Budget:           25 * time.Millisecond,
		Fuselage:         defaultFuselage,
		FuselageSegments: 18,
		EngineSegments:   10,
		Camera: fixgl.Perspective{
			Distance: 360,
			FOV:      230,
			MinDepth: 120,
			Mode:     fixgl.ProjectDirect,
			FlipY:    true,
		},
		CenterDY:   8,
		CullMargin: 50,
		Stroke: fixgl.GlowStroke{
			Near:      fixgl.RGB(0, 210, 255),
			Far:       fixgl.RGB(0, 70, 95),
			Core:      fixgl.RGB(255, 255, 255),
			WideBelow: -40,
		},
		Background: fixgl.RGB(0, 8, 40),
		GridMinor:  fixgl.RGB(0, 20, 70),
		GridMajor:  fixgl.RGB(0, 35, 120),
		Axis:       fixgl.RGB(0, 55, 170),
		MinorStep:  20,
		MajorStep:  40,
	}
}

// Scene is the airliner demo. It is not safe for concurrent use.
type Scene struct {
	cfg  Config
	mesh fixgl.Mesh
	proj *fixgl.Projected

	yaw, pitch, roll fixgl.Rotator
	bob              fixgl.Scalar

	xf   func(fixgl.Vec3) fixgl.Vec3
	edge fixgl.EdgeFunc
	fb   *fixgl.Framebuffer
}

func New(cfg Config) *Scene {
	s := &Scene{cfg: cfg}
	s.xf = s.transform
	s.edge = s.drawEdge
	return s
}

func (s *Scene) Name() string               { return Name }
func (s *Scene) FrameBudget() time.Duration { return s.cfg.Budget }

// Mesh returns the model built by Build.
func (s *Scene) Mesh() *fixgl.Mesh { return &s.mesh }

func (s *Scene) Build() error {
	if s.cfg.MinorStep <= 0 || s.cfg.MajorStep <= 0 {
		return fmt.Errorf("%w: grid steps %d/%d", fixgl.ErrInvalidGeometry, s.cfg.MinorStep, s.cfg.MajorStep)
	}
	m, err := buildMesh(s.cfg)
	if err != nil {
		return err
	}
	s.mesh = m
	s.proj = fixgl.NewProjected(len(m.Verts))
	s.Update(0)
	return nil
}

// Update derives the pose from the frame counter: yaw spins, pitch and roll
// oscillate, and the whole model bobs in depth.
func (s *Scene) Update(frame uint32) {
	yaw := fixgl.Phase(frame, 3, 360)
	t := fixgl.Phase(frame, 2, 360)
	pitch := 8 + fixgl.FloorDiv(fixgl.Sin(t)*10, fixgl.One)
	roll := fixgl.FloorDiv(fixgl.Sin(2*t)*22, fixgl.One)

	s.yaw = fixgl.Angle(yaw)
	s.pitch = fixgl.Angle(pitch)
	s.roll = fixgl.Angle(roll)
	s.bob = fixgl.FloorDiv(fixgl.Sin(yaw)*22, fixgl.One)
}

func (s *Scene) transform(v fixgl.Vec3) fixgl.Vec3 {
	v = fixgl.RotateY(v, s.yaw)
	v = fixgl.RotateX(v, s.pitch)
	v = fixgl.RotateZ(v, s.roll)
	v.Z += s.bob
	return v
}

func (s *Scene) Render(fb *fixgl.Framebuffer) {
	s.drawGrid(fb)

	w, h := fb.Width(), fb.Height()
	cx, cy := fixgl.Scalar(w/2), fixgl.Scalar(h/2+s.cfg.CenterDY)
	s.mesh.ProjectInto(s.proj, s.xf, s.cfg.Camera, cx, cy)

	s.fb = fb
	fixgl.DrawPainter(s.proj, s.mesh.Edges, fixgl.Cull{Margin: s.cfg.CullMargin, W: w, H: h}, s.edge)
	s.fb = nil
}

func (s *Scene) drawEdge(x0, y0, x1, y1 int, zavg fixgl.Scalar) {
	s.cfg.Stroke.Draw(s.fb, x0, y0, x1, y1, zavg)
}

func (s *Scene) drawGrid(fb *fixgl.Framebuffer) {
	w, h := fb.Width(), fb.Height()
	fb.Fill(s.cfg.Background)
	for _, g := range []struct {
		step int
		c    fixgl.Color
	}{{s.cfg.MinorStep, s.cfg.GridMinor}, {s.cfg.MajorStep, s.cfg.GridMajor}} {
		for x := 0; x < w; x += g.step {
			fb.VLine(x, 0, h, g.c)
		}
		for y := 0; y < h; y += g.step {
			fb.HLine(0, y, w, g.c)
		}
	}
	fb.HLine(0, h/2, w, s.cfg.Axis)
	fb.VLine(w/2, 0, h, s.cfg.Axis)
}
