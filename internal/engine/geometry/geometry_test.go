package geometry

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/toroids/pkg/math"
)

const epsilon = 1e-3

func approx(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < epsilon
}

func TestTorusCounts(t *testing.T) {
	g := NewTorus(100, 10, 16, 32)

	if got, want := len(g.Vertices), 17*33; got != want {
		t.Errorf("expected %d vertices, got %d", want, got)
	}
	if got, want := g.TriangleCount(), 16*32*2; got != want {
		t.Errorf("expected %d triangles, got %d", want, got)
	}
	for _, idx := range g.Indices {
		if int(idx) >= len(g.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestTorusSurface(t *testing.T) {
	const radius, tube = 120, 10
	g := NewTorus(radius, tube, 24, 48)

	for i, v := range g.Vertices {
		p := math.FromArray(v.Position)
		// Distance from the ring's centre circle equals the tube radius.
		ringDist := float32(gomath.Hypot(float64(p.X), float64(p.Y))) - radius
		d := float32(gomath.Hypot(float64(ringDist), float64(p.Z)))
		if !approx(d, tube) {
			t.Fatalf("vertex %d lies %v from the ring centre, want %v", i, d, tube)
		}
		if n := math.FromArray(v.Normal).Length(); !approx(n, 1) {
			t.Fatalf("vertex %d normal has length %v", i, n)
		}
	}

	size := g.Bounds.Size()
	if !approx(size.X, 2*(radius+tube)) || !approx(size.Z, 2*tube) {
		t.Errorf("unexpected torus bounds %+v", g.Bounds)
	}
}

func TestPlaneLayout(t *testing.T) {
	g := NewPlane(550, 10)

	if len(g.Vertices) != 121 {
		t.Fatalf("expected 121 vertices, got %d", len(g.Vertices))
	}
	if g.TriangleCount() != 200 {
		t.Errorf("expected 200 triangles, got %d", g.TriangleCount())
	}

	first := g.Vertices[0].Position
	if !approx(first[0], -275) || !approx(first[1], 275) {
		t.Errorf("expected first vertex at top-left, got %v", first)
	}
	last := g.Vertices[120].Position
	if !approx(last[0], 275) || !approx(last[1], -275) {
		t.Errorf("expected last vertex at bottom-right, got %v", last)
	}
	if g.Vertices[0].Normal != [3]float32{0, 0, 1} {
		t.Errorf("expected +Z normal, got %v", g.Vertices[0].Normal)
	}
}

func TestApplyMatrixRotatesIntoFloor(t *testing.T) {
	g := NewPlane(100, 2)
	g.ApplyMatrix(math.RotateX(-gomath.Pi / 2))

	for i, v := range g.Vertices {
		if !approx(v.Position[1], 0) {
			t.Fatalf("vertex %d not on the floor: %v", i, v.Position)
		}
		n := v.Normal
		if !approx(n[0], 0) || !approx(n[1], 1) || !approx(n[2], 0) {
			t.Fatalf("vertex %d normal %v, want +Y", i, n)
		}
	}

	// The top row of the grid ends up furthest from the viewer.
	if !approx(g.Vertices[0].Position[2], -50) {
		t.Errorf("expected first row at z=-50, got %v", g.Vertices[0].Position[2])
	}
	if !approx(g.Bounds.Min[2], -50) || !approx(g.Bounds.Max[2], 50) {
		t.Errorf("bounds not recomputed: %+v", g.Bounds)
	}
}

func TestApplyMatrixTranslatesPositionsOnly(t *testing.T) {
	g := NewPlane(10, 1)
	g.ApplyMatrix(math.Translate(5, 6, 7))

	if p := g.Vertices[0].Position; !approx(p[0], 0) || !approx(p[1], 11) || !approx(p[2], 7) {
		t.Errorf("unexpected translated position %v", p)
	}
	if n := g.Vertices[0].Normal; n != [3]float32{0, 0, 1} {
		t.Errorf("translation changed normal to %v", n)
	}
}

func TestPaint(t *testing.T) {
	g := NewPlane(2, 1)
	g.Paint(func(pos math.Vec3) math.Color {
		if pos.X < 0 {
			return math.Color{R: 1}
		}
		return math.Color{B: 1}
	})

	if g.Vertices[0].Color != [3]float32{1, 0, 0} {
		t.Errorf("expected red left vertex, got %v", g.Vertices[0].Color)
	}
	if g.Vertices[1].Color != [3]float32{0, 0, 1} {
		t.Errorf("expected blue right vertex, got %v", g.Vertices[1].Color)
	}
}

func TestLine(t *testing.T) {
	g := NewLine(math.Vec3{}, math.Vec3{X: 100}, math.Color{R: 1})

	if g.Primitive != Lines || len(g.Vertices) != 2 || len(g.Indices) != 0 {
		t.Fatalf("unexpected line geometry %+v", g)
	}
	if g.TriangleCount() != 0 {
		t.Error("lines have no triangles")
	}
	if c := g.Bounds.Center(); !approx(c.X, 50) {
		t.Errorf("expected centre at x=50, got %v", c)
	}
}
