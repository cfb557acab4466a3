// Package neuralmesh renders bouncing nodes linked to their neighbours within a
// fixed distance, with coordinate read-outs on a subset of nodes.
package neuralmesh

import (
	"fmt"
	"strconv"
	"time"

	"tftscenes/fixgl"
)

const Name = "neuralmesh"

type Config struct {
	Budget time.Duration
	Seed   uint32

	// Width and Height are the panel size the nodes bounce in.
	Width, Height int

	Nodes  int
	Margin int
	// MaxSpeed bounds the initial velocity; nodes move velocity/4 px per frame.
	MaxSpeed int
	// LinkDist is inclusive: nodes exactly LinkDist apart are linked.
	LinkDist int
	MaxLinks int
	// GlowRadius is the distance from the screen centre inside which nodes glow bright.
	GlowRadius int

	// LabelEvery labels every n-th node (0 disables labels).
	LabelEvery int
	HexLabels  bool

	Background fixgl.Color
	Node       fixgl.Color
	NodeDim    fixgl.Color
	Link       fixgl.Color
	LinkHi     fixgl.Color
	Text       fixgl.Color
}

func DefaultConfig() Config {
	return Config{
		Budget:     25 * time.Millisecond,
		Seed:       0xC0FFEE12,
		Width:      240,
		Height:     320,
		Nodes:      34,
		Margin:     10,
		MaxSpeed:   14,
		LinkDist:   62,
		MaxLinks:   5,
		GlowRadius: 70,
		LabelEvery: 4,
		HexLabels:  true,
		Background: fixgl.Black,
		Node:       fixgl.RGB(0, 240, 255),
		NodeDim:    fixgl.RGB(0, 120, 140),
		Link:       fixgl.RGB(0, 90, 120),
		LinkHi:     fixgl.RGB(0, 160, 200),
		Text:       fixgl.RGB(180, 180, 220),
	}
}

// Node is one particle.
type Node struct {
	X, Y   int
	VX, VY int
}

// Scene is the neural mesh demo. It is not safe for concurrent use.
type Scene struct {
	cfg   Config
	w, h  int
	nodes []Node
	label []byte
}

func New(cfg Config) *Scene {
	return &Scene{cfg: cfg, w: cfg.Width, h: cfg.Height}
}

func (s *Scene) Name() string               { return Name }
func (s *Scene) FrameBudget() time.Duration { return s.cfg.Budget }

// Nodes exposes node state. Callers may reposition nodes between frames.
func (s *Scene) Nodes() []Node { return s.nodes }

func (s *Scene) Build() error {
	c := s.cfg
	if c.Nodes <= 0 || c.LinkDist <= 0 || c.MaxLinks <= 0 || c.Margin < 0 {
		return fmt.Errorf("%w: mesh nodes=%d link=%d maxlinks=%d margin=%d", fixgl.ErrInvalidGeometry, c.Nodes, c.LinkDist, c.MaxLinks, c.Margin)
	}
	if s.w-2*c.Margin <= 0 || s.h-2*c.Margin <= 0 {
		return fmt.Errorf("%w: margin %d leaves no room in %dx%d", fixgl.ErrInvalidGeometry, c.Margin, s.w, s.h)
	}

	rng := fixgl.NewLCG(c.Seed)
	s.nodes = make([]Node, c.Nodes)
	for i := range s.nodes {
		n := &s.nodes[i]
		n.X = rng.Range(c.Margin, s.w-c.Margin-1)
		n.Y = rng.Range(c.Margin, s.h-c.Margin-1)
		n.VX = rng.Range(-c.MaxSpeed, c.MaxSpeed)
		n.VY = rng.Range(-c.MaxSpeed, c.MaxSpeed)
		if n.VX == 0 {
			n.VX = 7
		}
		if n.VY == 0 {
			n.VY = -9
		}
	}
	s.label = make([]byte, 0, 32)
	return nil
}

// Update moves every node a quarter of its velocity and reflects it off the
// margins.
func (s *Scene) Update(frame uint32) {
	lo := s.cfg.Margin
	hiX, hiY := s.w-s.cfg.Margin-1, s.h-s.cfg.Margin-1
	for i := range s.nodes {
		n := &s.nodes[i]
		x, y := n.X+(n.VX>>2), n.Y+(n.VY>>2)
		if x < lo {
			x, n.VX = lo, -n.VX
		} else if x > hiX {
			x, n.VX = hiX, -n.VX
		}
		if y < lo {
			y, n.VY = lo, -n.VY
		} else if y > hiY {
			y, n.VY = hiY, -n.VY
		}
		n.X, n.Y = x, y
	}
}

func (s *Scene) Render(fb *fixgl.Framebuffer) {
	fb.Fill(s.cfg.Background)
	s.drawLinks(fb)

	cx, cy := fb.Width()/2, fb.Height()/2
	glow2 := s.cfg.GlowRadius * s.cfg.GlowRadius
	for i := range s.nodes {
		n := &s.nodes[i]
		dx, dy := n.X-cx, n.Y-cy
		s.drawNode(fb, n.X, n.Y, dx*dx+dy*dy < glow2)
		if s.cfg.LabelEvery > 0 && i%s.cfg.LabelEvery == 0 {
			s.drawLabel(fb, n.X, n.Y)
		}
	}
}

// drawLinks joins each node to later nodes within range, at most MaxLinks per
// node. Close pairs use the highlight colour.
func (s *Scene) drawLinks(fb *fixgl.Framebuffer) {
	d2max := s.cfg.LinkDist * s.cfg.LinkDist
	for i := range s.nodes {
		a := &s.nodes[i]
		links := 0
		for j := i + 1; j < len(s.nodes); j++ {
			b := &s.nodes[j]
			dx, dy := a.X-b.X, a.Y-b.Y
			d2 := dx*dx + dy*dy
			if d2 > d2max {
				continue
			}
			col := s.cfg.Link
			if d2 < d2max>>2 {
				col = s.cfg.LinkHi
			}
			fb.Line(a.X, a.Y, b.X, b.Y, col)
			links++
			if links >= s.cfg.MaxLinks {
				break
			}
		}
	}
}

func (s *Scene) drawNode(fb *fixgl.Framebuffer, x, y int, bright bool) {
	c0, c1 := s.cfg.NodeDim, s.cfg.Link
	if bright {
		c0, c1 = s.cfg.Node, s.cfg.NodeDim
	}
	fb.SetPixel(x, y, c0)
	fb.SetPixel(x-1, y, c1)
	fb.SetPixel(x+1, y, c1)
	fb.SetPixel(x, y-1, c1)
	fb.SetPixel(x, y+1, c1)
}

const hexDigits = "0123456789ABCDEF"

// formatLabel writes "xHH yHH" (low byte of each coordinate) or "(x,y)".
func formatLabel(dst []byte, x, y int, hex bool) []byte {
	dst = dst[:0]
	if !hex {
		dst = append(dst, '(')
		dst = strconv.AppendInt(dst, int64(x), 10)
		dst = append(dst, ',')
		dst = strconv.AppendInt(dst, int64(y), 10)
		return append(dst, ')')
	}
	dst = append(dst, 'x', hexDigits[(x>>4)&0xF], hexDigits[x&0xF])
	return append(dst, ' ', 'y', hexDigits[(y>>4)&0xF], hexDigits[y&0xF])
}

// labelOrigin places a label up and to the right of its node, flipping left
// near the right edge and below near the top.
func labelOrigin(x, y, n, w, h int) (int, int) {
	tx, ty := x+4, y-6
	if tx > w-fixgl.TextCell*n {
		tx = x - fixgl.TextCell*n - 2
	}
	if ty < 0 {
		ty = y + 2
	}
	if ty > h-fixgl.TextCell {
		ty = h - fixgl.TextCell
	}
	return tx, ty
}

func (s *Scene) drawLabel(fb *fixgl.Framebuffer, x, y int) {
	s.label = formatLabel(s.label, x, y, s.cfg.HexLabels)
	tx, ty := labelOrigin(x, y, len(s.label), fb.Width(), fb.Height())
	fb.DrawBytes(tx, ty, s.label, s.cfg.Text)
}
