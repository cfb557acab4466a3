package airliner

import (
	"fmt"

	"tftscenes/fixgl"
)

// Fuselage cross-sections from nose (-z) to tail (+z).
var defaultFuselage = []fixgl.Ring{
	{Z: -160, R: 4}, {Z: -142, R: 9}, {Z: -124, R: 14}, {Z: -98, R: 19},
	{Z: -70, R: 23}, {Z: -40, R: 26}, {Z: -10, R: 27}, {Z: 20, R: 27},
	{Z: 55, R: 26}, {Z: 90, R: 23}, {Z: 120, R: 18}, {Z: 140, R: 12},
	{Z: 155, R: 7}, {Z: 165, R: 4},
}

const (
	wingRootRing = 7
	wingY        = -2
	wingSpan     = 115
	wingSweep    = 32
	wingBack     = -18

	tailRing    = 11
	tailSpan    = 70
	tailSweep   = 20
	finHeight   = 75
	engineX     = 40
	engineY     = -22
	engineAft   = -22
	engineSpace = 12
)

// fuselageSquash flattens the body's vertical radius.
var fuselageSquash = fixgl.Ratio{Num: 3, Den: 4}

// buildMesh assembles the airliner: ring-extruded fuselage, swept wings,
// tailplane, fin, and two engine nacelles hanging from the wings.
func buildMesh(cfg Config) (fixgl.Mesh, error) {
	var m fixgl.Mesh
	if len(cfg.Fuselage) <= tailRing {
		return m, fmt.Errorf("%w: fuselage needs more than %d rings, got %d", fixgl.ErrInvalidGeometry, tailRing, len(cfg.Fuselage))
	}
	if _, err := m.AddRings(fixgl.Vec3{}, cfg.Fuselage, cfg.FuselageSegments, fuselageSquash); err != nil {
		return m, fmt.Errorf("fuselage: %w", err)
	}

	zr := cfg.Fuselage[wingRootRing].Z
	v := func(x, y, z fixgl.Scalar) int { return m.AddVertex(fixgl.V3(x, y, z)) }

	rootL, rootR := v(-22, wingY, zr+12), v(22, wingY, zr+12)
	midL, midR := v(-70, wingY, zr-wingSweep), v(70, wingY, zr-wingSweep)
	tipL, tipR := v(-wingSpan, wingY, zr-(wingSweep+22)), v(wingSpan, wingY, zr-(wingSweep+22))
	root2L, root2R := v(-18, wingY, zr+wingBack), v(18, wingY, zr+wingBack)
	mid2L, mid2R := v(-60, wingY, zr+wingBack-6), v(60, wingY, zr+wingBack-6)
	tip2L, tip2R := v(-wingSpan+16, wingY, zr+wingBack), v(wingSpan-16, wingY, zr+wingBack)

	for _, e := range [][2]int{
		{rootL, midL}, {midL, tipL}, {tipL, tip2L}, {tip2L, mid2L}, {mid2L, root2L}, {root2L, rootL},
		{rootR, midR}, {midR, tipR}, {tipR, tip2R}, {tip2R, mid2R}, {mid2R, root2R}, {root2R, rootR},
		{rootL, rootR}, {root2L, root2R},
		{midL, midR}, {mid2L, mid2R},
		{tipL, tipR}, {tip2L, tip2R},
	} {
		m.AddEdge(e[0], e[1])
	}

	zt := cfg.Fuselage[tailRing].Z
	tpL, tpR := v(-tailSpan, 0, zt-tailSweep), v(tailSpan, 0, zt-tailSweep)
	tp2L, tp2R := v(-tailSpan+12, 0, zt+16), v(tailSpan-12, 0, zt+16)
	m.AddEdge(tpL, tpR)
	m.AddEdge(tpL, tp2L)
	m.AddEdge(tpR, tp2R)
	m.AddEdge(tp2L, tp2R)

	f0, f1, f2 := v(0, 0, zt+6), v(0, finHeight, zt-22), v(0, 18, zt-48)
	m.AddEdge(f0, f1)
	m.AddEdge(f1, f2)
	m.AddEdge(f2, f0)

	for _, eng := range []struct {
		x     fixgl.Scalar
		pylon int
	}{{-engineX, mid2L}, {engineX, mid2R}} {
		if err := addEngine(&m, fixgl.V3(eng.x, engineY, zr+engineAft), cfg.EngineSegments, eng.pylon); err != nil {
			return m, err
		}
	}
	return m, m.Validate()
}

func addEngine(m *fixgl.Mesh, c fixgl.Vec3, seg, pylon int) error {
	rings := []fixgl.Ring{
		{Z: c.Z - engineSpace, R: 10},
		{Z: c.Z, R: 11},
		{Z: c.Z + engineSpace, R: 9},
	}
	base, err := m.AddRings(fixgl.V3(c.X, c.Y, 0), rings, seg, fixgl.Unit)
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	// Middle ring, first segment, up to the wing trailing edge.
	m.AddEdge(base+seg, pylon)
	return nil
}
