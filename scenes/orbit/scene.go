// Package orbit renders a wireframe Earth with a moon circling on a tilted
// orbit, leaving a fading trail over a slowly drifting star field.
package orbit

import (
	"fmt"
	"time"

	"tftscenes/fixgl"
)

const Name = "orbit"

type Config struct {
	Budget time.Duration
	Seed   uint32

	EarthRadius fixgl.Scalar
	Latitudes   []fixgl.Scalar
	LonStep     fixgl.Scalar
	OrbitRadius fixgl.Scalar
	OrbitSeg    int
	MoonRadius  fixgl.Scalar
	MoonMinR    int
	MoonRimSeg  int
	AtmosSeg    int
	TrailLen    int
	Stars       int

	Camera fixgl.Perspective

	// Tilt is the fixed X rotation of the whole system, in degrees.
	Tilt                  fixgl.Scalar
	RateSpin, RateMoon    uint32
	CenterDX, CenterDY    int
	Background            fixgl.Color
	Star1, Star2          fixgl.Color
	EarthFront, EarthBack fixgl.Color
	AtmosInner            fixgl.Color
	AtmosOuter            fixgl.Color
	OrbitColor            fixgl.Color
	MoonFillNear          fixgl.Color
	MoonFillFar           fixgl.Color
	MoonRimNear           fixgl.Color
	MoonRimFar            fixgl.Color
}

func DefaultConfig() Config {
	return Config{
		Budget:      25 * time.Millisecond,
		Seed:        0xA5A5A5A5,
		EarthRadius: 78,
		Latitudes:   []fixgl.Scalar{-75, -45, -15, 15, 45, 75},
		LonStep:     30,
		OrbitRadius: 118,
		OrbitSeg:    48,
		MoonRadius:  13,
		MoonMinR:    6,
		MoonRimSeg:  20,
		AtmosSeg:    44,
		TrailLen:    18,
		Stars:       90,
		Camera: fixgl.Perspective{
			Distance: 220,
			MinDepth: 60,
			Mode:     fixgl.ProjectScaled,
		},
		Tilt:         18,
		RateSpin:     3,
		RateMoon:     6,
		Background:   fixgl.Black,
		Star1:        fixgl.RGB(12, 12, 18),
		Star2:        fixgl.RGB(25, 25, 40),
		EarthFront:   fixgl.RGB(0, 220, 255),
		EarthBack:    fixgl.RGB(0, 90, 120),
		AtmosInner:   fixgl.RGB(0, 70, 90),
		AtmosOuter:   fixgl.RGB(0, 35, 45),
		OrbitColor:   fixgl.RGB(35, 35, 55),
		MoonFillNear: fixgl.RGB(240, 240, 240),
		MoonFillFar:  fixgl.RGB(130, 130, 130),
		MoonRimNear:  fixgl.RGB(255, 255, 255),
		MoonRimFar:   fixgl.RGB(170, 170, 170),
	}
}

// star keeps raw generator output; it is reduced modulo the framebuffer size
// at render time.
type star struct {
	x, y  uint32
	layer uint8
}

// Scene is the Earth and moon demo. It is not safe for concurrent use.
type Scene struct {
	cfg Config

	earth     fixgl.Mesh
	earthProj *fixgl.Projected
	ring      fixgl.Mesh
	ringProj  *fixgl.Projected
	trail     *fixgl.Trail
	trailPal  []fixgl.Color
	pushed    int
	stars     []star

	spin, tilt fixgl.Rotator
	moonAngle  fixgl.Scalar
	drift      int

	xf func(fixgl.Vec3) fixgl.Vec3
}

func New(cfg Config) *Scene {
	s := &Scene{cfg: cfg}
	s.xf = s.transform
	return s
}

func (s *Scene) Name() string               { return Name }
func (s *Scene) FrameBudget() time.Duration { return s.cfg.Budget }

// Earth returns the globe wireframe.
func (s *Scene) Earth() *fixgl.Mesh { return &s.earth }

func (s *Scene) Build() error {
	c := s.cfg
	if c.TrailLen <= 0 || c.MoonRadius <= 0 || c.Stars < 0 {
		return fmt.Errorf("%w: orbit trail=%d moon=%d stars=%d", fixgl.ErrInvalidGeometry, c.TrailLen, c.MoonRadius, c.Stars)
	}
	earth, err := fixgl.SphereGrid(c.EarthRadius, c.Latitudes, c.LonStep)
	if err != nil {
		return fmt.Errorf("earth: %w", err)
	}
	ring, err := fixgl.CircleXZ(c.OrbitRadius, c.OrbitSeg)
	if err != nil {
		return fmt.Errorf("orbit: %w", err)
	}
	s.earth, s.ring = earth, ring
	s.earthProj = fixgl.NewProjected(len(earth.Verts))
	s.ringProj = fixgl.NewProjected(len(ring.Verts))

	s.trail = fixgl.NewTrail(c.TrailLen)
	s.pushed = 0
	s.trailPal = make([]fixgl.Color, c.TrailLen)
	for k := range s.trailPal {
		v := 35 + 9*k
		if v > 200 {
			v = 200
		}
		s.trailPal[k] = fixgl.RGB(uint8(v), uint8(v), uint8(v+25))
	}

	rng := fixgl.NewLCG(c.Seed)
	s.stars = make([]star, c.Stars)
	for i := range s.stars {
		s.stars[i].x = rng.Next()
		s.stars[i].y = rng.Next()
		s.stars[i].layer = 2
		if rng.Next()&1 != 0 {
			s.stars[i].layer = 1
		}
	}
	s.Update(0)
	return nil
}

func (s *Scene) Update(frame uint32) {
	s.spin = fixgl.Angle(fixgl.Phase(frame, s.cfg.RateSpin, 360))
	s.tilt = fixgl.Angle(s.cfg.Tilt)
	s.moonAngle = fixgl.Phase(frame, s.cfg.RateMoon, 360)
	s.drift = int(frame / 2)
}

func (s *Scene) transform(v fixgl.Vec3) fixgl.Vec3 {
	return fixgl.RotateX(fixgl.RotateY(v, s.spin), s.tilt)
}

func (s *Scene) Render(fb *fixgl.Framebuffer) {
	c := &s.cfg
	w, h := fb.Width(), fb.Height()
	cx, cy := w/2+c.CenterDX, h/2+c.CenterDY
	fb.Fill(c.Background)

	drift := s.drift % w
	for i := range s.stars {
		st := &s.stars[i]
		col := c.Star2
		if st.layer == 1 {
			col = c.Star1
		}
		x := (int(st.x%uint32(w)) + drift) % w
		fb.SetPixel(x, int(st.y%uint32(h)), col)
	}

	s.ring.ProjectInto(s.ringProj, s.xf, c.Camera, fixgl.Scalar(cx), fixgl.Scalar(cy))
	for _, e := range s.ring.Edges {
		p := s.ringProj
		fb.Line(int(p.X[e.A]), int(p.Y[e.A]), int(p.X[e.B]), int(p.Y[e.B]), c.OrbitColor)
	}

	// Negative camera z is in front of the globe's centre.
	s.earth.ProjectInto(s.earthProj, s.xf, c.Camera, fixgl.Scalar(cx), fixgl.Scalar(cy))
	for _, e := range s.earth.Edges {
		p := s.earthProj
		col := c.EarthBack
		if p.Z[e.A]+p.Z[e.B] < 0 {
			col = c.EarthFront
		}
		fb.Line(int(p.X[e.A]), int(p.Y[e.A]), int(p.X[e.B]), int(p.Y[e.B]), col)
	}

	er := int(c.EarthRadius)
	fb.CirclePoly(cx, cy, er+5, c.AtmosSeg, c.AtmosOuter)
	fb.CirclePoly(cx, cy, er+3, c.AtmosSeg, c.AtmosInner)

	s.drawMoon(fb, cx, cy)
}

func (s *Scene) drawMoon(fb *fixgl.Framebuffer, cx, cy int) {
	c := &s.cfg
	m := fixgl.V3(
		fixgl.FloorDiv(c.OrbitRadius*fixgl.Cos(s.moonAngle), fixgl.One),
		0,
		fixgl.FloorDiv(c.OrbitRadius*fixgl.Sin(s.moonAngle), fixgl.One),
	)
	m = s.transform(m)
	mx, my := c.Camera.Project(m, fixgl.Scalar(cx), fixgl.Scalar(cy))

	s.trail.Push(int(mx), int(my))
	if s.pushed < s.trail.Len() {
		s.pushed++
	}
	empty := s.trail.Len() - s.pushed
	s.trail.Each(func(age, x, y int) {
		if age >= empty {
			fb.SetPixel(x, y, s.trailPal[age])
		}
	})

	r := int(fixgl.FloorDiv(c.MoonRadius*c.Camera.Scale(m.Z), fixgl.One))
	if r < c.MoonMinR {
		r = c.MoonMinR
	}
	fill, rim := c.MoonFillFar, c.MoonRimFar
	if m.Z < 0 {
		fill, rim = c.MoonFillNear, c.MoonRimNear
	}
	fb.FillCircle(int(mx), int(my), r, fill)
	fb.CirclePoly(int(mx), int(my), r, c.MoonRimSeg, rim)
}
