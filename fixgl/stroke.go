package fixgl

// GlowStroke draws a depth-keyed two-layer line: a dim glow under a bright core.
type GlowStroke struct {
	Near Color // glow when the edge is in front of the origin plane (zavg < 0)
	Far  Color
	Core Color
	// WideBelow adds one-pixel offset glow strokes when zavg is below it.
	WideBelow Scalar
}

func (g GlowStroke) Draw(f *Framebuffer, x0, y0, x1, y1 int, zavg Scalar) {
	glow := g.Far
	if zavg < 0 {
		glow = g.Near
	}
	f.Line(x0, y0, x1, y1, glow)
	if zavg < g.WideBelow {
		f.Line(x0+1, y0, x1+1, y1, glow)
		f.Line(x0, y0+1, x1, y1+1, glow)
	}
	f.Line(x0, y0, x1, y1, g.Core)
}

// Cull is a cheap off-screen reject: an edge is skipped when both endpoints lie
// more than Margin pixels outside the same side of a W×H frame.
type Cull struct {
	Margin int
	W, H   int
}

func (c Cull) Rejects(x0, y0, x1, y1 int) bool {
	lo, hiX, hiY := -c.Margin, c.W+c.Margin, c.H+c.Margin
	if (x0 < lo && x1 < lo) || (x0 > hiX && x1 > hiX) {
		return true
	}
	if (y0 < lo && y1 < lo) || (y0 > hiY && y1 > hiY) {
		return true
	}
	return false
}

// EdgeFunc rasterizes one projected edge; zavg is the floored mean depth.
type EdgeFunc func(x0, y0, x1, y1 int, zavg Scalar)

// DrawPainter draws edges in two passes: far (zavg >= 0) first, then near
// (zavg < 0), so near geometry overdraws far geometry.
func DrawPainter(pts *Projected, edges []Edge, cull Cull, draw EdgeFunc) {
	for pass := 0; pass < 2; pass++ {
		for _, e := range edges {
			a, b := int(e.A), int(e.B)
			zavg := FloorDiv(pts.Z[a]+pts.Z[b], 2)
			if pass == 0 && zavg < 0 {
				continue
			}
			if pass == 1 && zavg >= 0 {
				continue
			}
			x0, y0 := int(pts.X[a]), int(pts.Y[a])
			x1, y1 := int(pts.X[b]), int(pts.Y[b])
			if cull.Rejects(x0, y0, x1, y1) {
				continue
			}
			draw(x0, y0, x1, y1, zavg)
		}
	}
}
