package fixgl

import (
	"errors"
	"fmt"
)

// ErrInvalidGeometry reports a builder parameter that cannot produce a mesh.
var ErrInvalidGeometry = errors.New("fixgl: invalid geometry")

// Edge is an unordered pair of vertex indices.
type Edge struct {
	A, B uint16
}

// Mesh is static wireframe topology built once before the frame loop.
type Mesh struct {
	Verts []Vec3
	Edges []Edge
}

// AddVertex appends v and returns its index.
func (m *Mesh) AddVertex(v Vec3) int {
	m.Verts = append(m.Verts, v)
	return len(m.Verts) - 1
}

func (m *Mesh) AddEdge(a, b int) {
	m.Edges = append(m.Edges, Edge{A: uint16(a), B: uint16(b)})
}

// Validate checks the topology once so the frame loop can index without checks.
func (m *Mesh) Validate() error {
	if len(m.Verts) == 0 {
		return fmt.Errorf("%w: no vertices", ErrInvalidGeometry)
	}
	if len(m.Verts) > 0xFFFF {
		return fmt.Errorf("%w: %d vertices exceed edge index range", ErrInvalidGeometry, len(m.Verts))
	}
	for i, e := range m.Edges {
		if int(e.A) >= len(m.Verts) || int(e.B) >= len(m.Verts) {
			return fmt.Errorf("%w: edge %d (%d,%d) out of range (%d vertices)", ErrInvalidGeometry, i, e.A, e.B, len(m.Verts))
		}
		if e.A == e.B {
			return fmt.Errorf("%w: edge %d is degenerate", ErrInvalidGeometry, i)
		}
	}
	return nil
}

// Ring is one cross-section of an extruded body: radius r at depth z.
type Ring struct {
	Z, R Scalar
}

// AddRings extrudes circular cross-sections along z around center. Each ring has
// seg vertices; consecutive ring vertices are joined circularly and matching
// vertices of consecutive rings radially. y is scaled by squash after rounding.
// It returns the index of the first ring vertex.
func (m *Mesh) AddRings(center Vec3, rings []Ring, seg int, squash Ratio) (int, error) {
	if seg < 3 {
		return 0, fmt.Errorf("%w: ring needs at least 3 segments, got %d", ErrInvalidGeometry, seg)
	}
	if len(rings) == 0 {
		return 0, fmt.Errorf("%w: no rings", ErrInvalidGeometry)
	}
	for i, r := range rings {
		if r.R <= 0 {
			return 0, fmt.Errorf("%w: ring %d has radius %d", ErrInvalidGeometry, i, r.R)
		}
	}

	base := len(m.Verts)
	for _, r := range rings {
		for si := 0; si < seg; si++ {
			ang := Scalar(si * 360 / seg)
			x := FloorDiv(r.R*Cos(ang), One)
			y := squash.Apply(FloorDiv(r.R*Sin(ang), One))
			m.AddVertex(Vec3{X: center.X + x, Y: center.Y + y, Z: center.Z + r.Z})
		}
	}

	vid := func(ring, s int) int { return base + ring*seg + s%seg }
	for ri := range rings {
		for si := 0; si < seg; si++ {
			m.AddEdge(vid(ri, si), vid(ri, si+1))
			if ri < len(rings)-1 {
				m.AddEdge(vid(ri, si), vid(ri+1, si))
			}
		}
	}
	return base, nil
}

// SphereGrid builds latitude circles and meridian segments of a wireframe
// sphere. Latitude bands wrap around; meridians stop at the outermost bands.
func SphereGrid(radius Scalar, lats []Scalar, lonStep Scalar) (Mesh, error) {
	if radius <= 0 || len(lats) == 0 || lonStep <= 0 || 360%lonStep != 0 {
		return Mesh{}, fmt.Errorf("%w: sphere radius=%d lats=%d lonStep=%d", ErrInvalidGeometry, radius, len(lats), lonStep)
	}
	lons := int(360 / lonStep)

	var m Mesh
	for _, lat := range lats {
		cl, sl := Cos(lat), Sin(lat)
		ring := FloorDiv(radius*cl, One)
		for oi := 0; oi < lons; oi++ {
			lon := Scalar(oi) * lonStep
			m.AddVertex(Vec3{
				X: FloorDiv(ring*Cos(lon), One),
				Y: FloorDiv(radius*sl, One),
				Z: FloorDiv(ring*Sin(lon), One),
			})
		}
	}

	idx := func(li, oi int) int { return li*lons + oi }
	for li := range lats {
		for oi := 0; oi < lons; oi++ {
			m.AddEdge(idx(li, oi), idx(li, (oi+1)%lons))
		}
	}
	for oi := 0; oi < lons; oi++ {
		for li := 0; li < len(lats)-1; li++ {
			m.AddEdge(idx(li, oi), idx(li+1, oi))
		}
	}
	return m, m.Validate()
}

// CircleXZ builds a closed seg-gon of the given radius in the y=0 plane.
func CircleXZ(radius Scalar, seg int) (Mesh, error) {
	if radius <= 0 || seg < 3 {
		return Mesh{}, fmt.Errorf("%w: circle radius=%d seg=%d", ErrInvalidGeometry, radius, seg)
	}
	var m Mesh
	for i := 0; i < seg; i++ {
		ang := Scalar(i * 360 / seg)
		m.AddVertex(Vec3{
			X: FloorDiv(radius*Cos(ang), One),
			Z: FloorDiv(radius*Sin(ang), One),
		})
	}
	for i := 0; i < seg; i++ {
		m.AddEdge(i, (i+1)%seg)
	}
	return m, m.Validate()
}

// SurfacePoint is a sampled surface position with its unit normal (·One).
type SurfacePoint struct {
	Pos    Vec3
	Normal Vec3
}

// TorusSamples samples a torus of tube radius r1 and ring radius r2 (both ·One)
// around the y axis. Samples are ordered with phi (ring angle) outermost.
func TorusSamples(r1, r2, thetaStep, phiStep Scalar) ([]SurfacePoint, error) {
	if r1 <= 0 || r2 <= 0 || thetaStep <= 0 || phiStep <= 0 || thetaStep > 360 || phiStep > 360 {
		return nil, fmt.Errorf("%w: torus r1=%d r2=%d steps=%d/%d", ErrInvalidGeometry, r1, r2, thetaStep, phiStep)
	}
	n := int((359/phiStep + 1) * (359/thetaStep + 1))
	out := make([]SurfacePoint, 0, n)
	for phi := Scalar(0); phi < 360; phi += phiStep {
		cph, sph := Cos(phi), Sin(phi)
		for th := Scalar(0); th < 360; th += thetaStep {
			cth, sth := Cos(th), Sin(th)

			circleX := r2 + FloorDiv(r1*cth, One)
			circleY := FloorDiv(r1*sth, One)

			out = append(out, SurfacePoint{
				Pos: Vec3{
					X: FloorDiv(circleX*cph, One),
					Y: circleY,
					Z: FloorDiv(circleX*sph, One),
				},
				Normal: Vec3{
					X: FloorDiv(cph*cth, One),
					Y: sth,
					Z: FloorDiv(sph*cth, One),
				},
			})
		}
	}
	return out, nil
}

// Projected holds per-frame screen positions and camera depth for each vertex of
// a mesh. It is allocated once and overwritten every frame.
type Projected struct {
	X, Y, Z []Scalar
}

func NewProjected(n int) *Projected {
	return &Projected{
		X: make([]Scalar, n),
		Y: make([]Scalar, n),
		Z: make([]Scalar, n),
	}
}

// ProjectInto transforms every vertex with xf, then projects it. The mesh itself
// is never modified.
func (m *Mesh) ProjectInto(out *Projected, xf func(Vec3) Vec3, p Perspective, cx, cy Scalar) {
	for i, v := range m.Verts {
		t := xf(v)
		out.Z[i] = t.Z
		out.X[i], out.Y[i] = p.Project(t, cx, cy)
	}
}
