package fixgl

import "testing"

func TestProjectDirect(t *testing.T) {
	p := Perspective{Distance: 360, FOV: 230, MinDepth: 120, Mode: ProjectDirect, FlipY: true}
	x, y := p.Project(V3(100, 50, 0), 120, 168)
	if x != 120+63 || y != 168-31 {
		t.Fatalf("Project = (%d, %d), want (183, 137)", x, y)
	}
	x, y = p.Project(V3(-100, -50, 0), 120, 168)
	if x != 120-64 || y != 168+32 {
		t.Fatalf("Project negative = (%d, %d), want (56, 200)", x, y)
	}
}

func TestProjectClampsDenominator(t *testing.T) {
	p := Perspective{Distance: 360, FOV: 230, MinDepth: 120, Mode: ProjectDirect}
	if got := p.Denominator(-1000); got != 120 {
		t.Fatalf("Denominator(-1000) = %d, want 120", got)
	}
	if got := p.Denominator(-360); got != 120 {
		t.Fatalf("Denominator(-360) = %d, want 120", got)
	}
	ax, ay := p.Project(V3(30, 30, -240), 0, 0)
	bx, by := p.Project(V3(30, 30, -5000), 0, 0)
	if ax != bx || ay != by {
		t.Fatalf("clamped projections differ: (%d,%d) vs (%d,%d)", ax, ay, bx, by)
	}

	zero := Perspective{Distance: 0, FOV: 1, MinDepth: 0}
	if got := zero.Denominator(0); got != 1 {
		t.Fatalf("Denominator never below 1, got %d", got)
	}
}

func TestProjectScaled(t *testing.T) {
	p := Perspective{Distance: 220, MinDepth: 60, Mode: ProjectScaled}
	if got := p.Scale(0); got != One {
		t.Fatalf("Scale(0) = %d, want %d", got, One)
	}
	if got := p.Scale(-500); got != 3754 {
		t.Fatalf("Scale(-500) = %d, want 3754", got)
	}
	x, y := p.Project(V3(50, -1, 0), 120, 160)
	if x != 170 || y != 159 {
		t.Fatalf("Project = (%d, %d), want (170, 159)", x, y)
	}
}
