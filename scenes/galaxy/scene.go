// Package galaxy renders a spiral galaxy of particles with differential
// rotation, a drifting star field, dust, a bright nucleus, and the occasional
// shooting star.
package galaxy

import (
	"fmt"
	"time"

	"tftscenes/fixgl"
)

const Name = "galaxy"

type Config struct {
	Budget time.Duration
	Seed   uint32

	Stars int
	Arms  int
	// MaxRadius bounds star orbits in pixels.
	MaxRadius int32
	// EllipseY squashes orbits vertically, in thousandths.
	EllipseY int32
	// Twist is the extra angle in degrees at MaxRadius that winds the arms.
	Twist int32

	FieldStars  int
	DustPixels  int
	CoreSamples int
	CoreRadius  int

	// ShootChance is the 1-in-N per-frame chance of a new shooting star.
	ShootChance int
	ShootTrail  int

	Background fixgl.Color
	Dust       fixgl.Color
	Trail      fixgl.Color
	Head       fixgl.Color
}

func DefaultConfig() Config {
	return Config{
		Budget:      35 * time.Millisecond,
		Seed:        0x12345678,
		Stars:       520,
		Arms:        4,
		MaxRadius:   150,
		EllipseY:    650,
		Twist:       220,
		FieldStars:  90,
		DustPixels:  50,
		CoreSamples: 220,
		CoreRadius:  18,
		ShootChance: 45,
		ShootTrail:  16,
		Background:  fixgl.Black,
		Dust:        fixgl.RGB(6, 6, 10),
		Trail:       fixgl.RGB(255, 140, 40),
		Head:        fixgl.RGB(255, 255, 255),
	}
}

// Palette runs from pale blue through violet to magenta.
func Palette() fixgl.Palette {
	return fixgl.NewPalette(func(i int) (int, int, int) {
		switch {
		case i < 90:
			return 140 + i/2, 150 + i*2/3, 210 + i/4
		case i < 170:
			k := i - 90
			return 160 + k, 200 - k*2/3, 255
		default:
			k := i - 170
			return 255, 90 - k/2, 255 - k/3
		}
	})
}

// Star is one particle on its orbit.
type Star struct {
	R          int32
	Angle      int32
	Brightness uint8
	Drift      int8
}

type shootingStar struct {
	active bool
	x, y   int
	vx, vy int
	life   int
}

// Scene is the galaxy demo. It is not safe for concurrent use.
type Scene struct {
	cfg   Config
	rng   *fixgl.LCG
	pal   fixgl.Palette
	stars []Star
	shoot shootingStar
	frame uint32
}

func New(cfg Config) *Scene { return &Scene{cfg: cfg} }

func (s *Scene) Name() string               { return Name }
func (s *Scene) FrameBudget() time.Duration { return s.cfg.Budget }

// Stars returns the particle state.
func (s *Scene) Stars() []Star { return s.stars }

// Build seeds the generator and places every star. Radii follow u², which
// crowds stars towards the core.
func (s *Scene) Build() error {
	c := s.cfg
	if c.Stars <= 0 || c.Arms <= 0 || c.MaxRadius <= 0 || c.EllipseY <= 0 {
		return fmt.Errorf("%w: galaxy stars=%d arms=%d radius=%d ellipse=%d", fixgl.ErrInvalidGeometry, c.Stars, c.Arms, c.MaxRadius, c.EllipseY)
	}
	if c.ShootChance <= 0 || c.CoreRadius <= 0 {
		return fmt.Errorf("%w: galaxy shoot chance=%d core radius=%d", fixgl.ErrInvalidGeometry, c.ShootChance, c.CoreRadius)
	}

	s.rng = fixgl.NewLCG(c.Seed)
	s.pal = Palette()
	s.stars = make([]Star, c.Stars)
	s.shoot = shootingStar{}
	armStep := int32(360 / c.Arms)
	for i := range s.stars {
		u := s.rng.Next() & 0xFFFF
		u2 := (u * u) >> 16
		r := int32((u2 * uint32(c.MaxRadius)) >> 16)
		arm := int32(s.rng.Intn(c.Arms))
		base := int32(s.rng.Intn(360))
		ang := (base + r*c.Twist/c.MaxRadius + arm*armStep) % 360

		br := s.rng.Range(50, 255)
		if r < 35 && s.rng.Next()&3 == 0 {
			br = 255
		}
		s.stars[i] = Star{
			R:          r,
			Angle:      ang,
			Brightness: uint8(br),
			Drift:      int8(s.rng.Range(-1, 2)),
		}
	}
	return nil
}

// Update turns every star by its angular speed, faster near the core, and
// applies radial drift every 16th frame.
func (s *Scene) Update(frame uint32) {
	s.frame = frame
	drift := frame&15 == 0
	for i := range s.stars {
		st := &s.stars[i]
		omega := 2 + 90/(st.R+12)
		st.Angle = (st.Angle + omega) % 360
		if drift {
			r := st.R + int32(st.Drift)
			if r < 0 {
				r = 0
			}
			if r > s.cfg.MaxRadius {
				r = s.cfg.MaxRadius
			}
			st.R = r
		}
	}
}

func (s *Scene) orbit(cx, cy int, r, ang int32) (int, int) {
	x := cx + int(fixgl.FloorDiv(r*fixgl.Cos(ang), fixgl.One))
	y := cy + int(fixgl.FloorDiv(r*fixgl.Sin(ang)*s.cfg.EllipseY, fixgl.One*1000))
	return x, y
}

// Render draws back to front: field stars, dust, the spiral, the nucleus, then
// the shooting star. Dust, nucleus, and shooting star draw from the generator
// in that order.
func (s *Scene) Render(fb *fixgl.Framebuffer) {
	c := &s.cfg
	w, h := fb.Width(), fb.Height()
	cx, cy := w/2, h/2
	fb.Fill(c.Background)

	for i := 0; i < c.FieldStars; i++ {
		x := int((uint64(i)*97 + uint64(s.frame)*3) % uint64(w))
		y := int((uint64(i)*57 + uint64(s.frame)*5) % uint64(h))
		fb.SetPixel(x, y, s.pal.At(i*19))
	}

	for i := 0; i < c.DustPixels; i++ {
		x := s.rng.Intn(w)
		y := s.rng.Intn(h)
		fb.SetPixel(x, y, c.Dust)
	}

	for i := range s.stars {
		st := &s.stars[i]
		x, y := s.orbit(cx, cy, st.R, st.Angle)
		if x < 0 || y < 0 || x >= w || y >= h {
			continue
		}
		col := s.pal.At(int(st.R*255/c.MaxRadius) + int(st.Brightness)/3)
		fb.SetPixel(x, y, col)
		if st.Brightness > 240 {
			fb.SetPixel(x+1, y, col)
			fb.SetPixel(x, y+1, col)
		}
	}

	core := s.pal.At(25)
	for i := 0; i < c.CoreSamples; i++ {
		a := int32(s.rng.Intn(360))
		rr := int32(s.rng.Intn(c.CoreRadius))
		x, y := s.orbit(cx, cy, rr, a)
		fb.SetPixel(x, y, core)
	}

	s.shootingStar(fb)
}

func (s *Scene) shootingStar(fb *fixgl.Framebuffer) {
	c := &s.cfg
	w, h := fb.Width(), fb.Height()
	sh := &s.shoot

	if !sh.active && s.rng.Intn(c.ShootChance) == 0 {
		sh.x = s.rng.Intn(w)
		sh.y = s.rng.Intn(h)
		sh.vx = s.rng.Range(-5, 5)
		sh.vy = s.rng.Range(-5, 5)
		if sh.vx == 0 && sh.vy == 0 {
			sh.vx = 4
		}
		sh.life = s.rng.Range(10, 18)
		sh.active = true
	}
	if !sh.active {
		return
	}

	x, y := sh.x, sh.y
	for i := 0; i < c.ShootTrail; i++ {
		x -= sh.vx
		y -= sh.vy
		fb.SetPixel(x, y, c.Trail)
	}
	fb.SetPixel(sh.x, sh.y, c.Head)

	sh.x += sh.vx
	sh.y += sh.vy
	sh.life--
	if sh.life <= 0 || sh.x < -20 || sh.x > w+20 || sh.y < -20 || sh.y > h+20 {
		sh.active = false
	}
}
