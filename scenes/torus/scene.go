// Package torus renders a spinning torus as shaded ASCII glyphs on an 8×8 cell
// grid, resolving overlap with a per-cell inverse-depth buffer.
package torus

import (
	"fmt"
	"time"

	"tftscenes/fixgl"
)

const Name = "torus"

// Ramp orders shading glyphs from darkest to brightest.
const Ramp = " .,-~:;=!*#$@"

// Config is the scene's compile-time tuning.
type Config struct {
	Budget time.Duration

	// Cols and Rows size the glyph grid; each cell is fixgl.TextCell pixels.
	Cols, Rows int

	TubeRadius fixgl.Scalar // R1
	RingRadius fixgl.Scalar // R2
	Distance   fixgl.Scalar // K2, camera distance
	ThetaStep  fixgl.Scalar
	PhiStep    fixgl.Scalar

	ScaleX, ScaleY   fixgl.Scalar
	OffsetX, OffsetY int

	// Light is dotted with each rotated normal; the product is scaled by
	// len(Ramp)-1 and divided by LightDiv to pick a glyph.
	Light    fixgl.Vec3
	LightDiv fixgl.Scalar

	// RateA and RateB are the per-frame rotation steps about X and Z; RateHue
	// steps the neon palette.
	RateA, RateB, RateHue uint32

	Title      string
	Background fixgl.Color
}

func DefaultConfig() Config {
	return Config{
		Budget:     30 * time.Millisecond,
		Cols:       30,
		Rows:       40,
		TubeRadius: fixgl.One,
		RingRadius: 2 * fixgl.One,
		Distance:   5 * fixgl.One,
		ThetaStep:  18,
		PhiStep:    12,
		ScaleX:     16,
		ScaleY:     11,
		OffsetX:    4,
		OffsetY:    -4,
		Light:      fixgl.V3(0, 1, -1),
		LightDiv:   2 * fixgl.One,
		RateA:      6,
		RateB:      4,
		RateHue:    3,
		Title:      "ASCII DONUT // TFT",
		Background: fixgl.Black,
	}
}

// NeonPalette cycles blue, cyan, green-white, yellow, and magenta.
func NeonPalette() fixgl.Palette {
	return fixgl.NewPalette(func(i int) (int, int, int) {
		switch {
		case i < 85:
			return 0, i * 3, 255
		case i < 170:
			k := i - 85
			return k * 3, 255, 255 - k*3
		default:
			k := i - 170
			return 255, 255 - k*3, k * 3
		}
	})
}

// Scene is the ASCII torus demo. It is not safe for concurrent use.
type Scene struct {
	cfg     Config
	samples []fixgl.SurfacePoint
	depth   *fixgl.DepthBuffer
	pal     fixgl.Palette

	a, b fixgl.Rotator
	hue  int
}

func New(cfg Config) *Scene { return &Scene{cfg: cfg} }

func (s *Scene) Name() string               { return Name }
func (s *Scene) FrameBudget() time.Duration { return s.cfg.Budget }

// Depth exposes the glyph grid of the last rendered frame.
func (s *Scene) Depth() *fixgl.DepthBuffer { return s.depth }

func (s *Scene) Build() error {
	c := s.cfg
	if c.Cols <= 0 || c.Rows <= 0 {
		return fmt.Errorf("%w: grid %dx%d", fixgl.ErrInvalidGeometry, c.Cols, c.Rows)
	}
	if c.LightDiv <= 0 {
		return fmt.Errorf("%w: light divisor %d", fixgl.ErrInvalidGeometry, c.LightDiv)
	}
	samples, err := fixgl.TorusSamples(c.TubeRadius, c.RingRadius, c.ThetaStep, c.PhiStep)
	if err != nil {
		return err
	}
	s.samples = samples
	s.depth = fixgl.NewDepthBuffer(c.Cols, c.Rows)
	s.pal = NeonPalette()
	s.Update(0)
	return nil
}

func (s *Scene) Update(frame uint32) {
	s.a = fixgl.Angle(fixgl.Phase(frame, s.cfg.RateA, 360))
	s.b = fixgl.Angle(fixgl.Phase(frame, s.cfg.RateB, 360))
	s.hue = int(fixgl.Phase(frame, s.cfg.RateHue, 256))
}

// Shade maps a light dot product to a ramp glyph.
func Shade(dot, div fixgl.Scalar) byte {
	if dot <= 0 || div <= 0 {
		return Ramp[0]
	}
	levels := fixgl.Scalar(len(Ramp) - 1)
	lev := fixgl.FloorDiv(dot*levels, div)
	if lev > levels {
		lev = levels
	}
	return Ramp[lev]
}

func (s *Scene) rasterize() {
	c := &s.cfg
	s.depth.Reset()
	cx := fixgl.Scalar(c.Cols/2 + c.OffsetX)
	cy := fixgl.Scalar(c.Rows/2 + c.OffsetY)
	color := s.pal.At(s.hue)

	for i := range s.samples {
		p := fixgl.RotateZ(fixgl.RotateX(s.samples[i].Pos, s.a), s.b)
		n := fixgl.RotateZ(fixgl.RotateX(s.samples[i].Normal, s.a), s.b)

		zz := p.Z + c.Distance
		if zz <= 0 {
			continue
		}
		ooz := fixgl.FloorDiv(fixgl.One*64, fixgl.FloorDiv(zz, fixgl.One)+1)
		col := cx + fixgl.FloorDiv(p.X*c.ScaleX, zz)
		row := cy - fixgl.FloorDiv(p.Y*c.ScaleY, zz)

		dot := c.Light.X*n.X + c.Light.Y*n.Y + c.Light.Z*n.Z
		s.depth.Plot(int(col), int(row), ooz, Shade(dot, c.LightDiv), color)
	}
}

func (s *Scene) Render(fb *fixgl.Framebuffer) {
	s.rasterize()
	fb.Fill(s.cfg.Background)
	for row := 0; row < s.cfg.Rows; row++ {
		for col := 0; col < s.cfg.Cols; col++ {
			_, g, c := s.depth.Cell(col, row)
			fb.DrawGlyph(col*fixgl.TextCell, row*fixgl.TextCell, g, c)
		}
	}
	if s.cfg.Title != "" {
		fb.DrawText(fixgl.TextCell, fb.Height()-fixgl.TextCell, s.cfg.Title, s.pal.At(s.hue))
	}
}
