package builder

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/toroids/internal/config"
	"github.com/Faultbox/toroids/internal/engine/camera"
	"github.com/Faultbox/toroids/internal/engine/geometry"
	"github.com/Faultbox/toroids/internal/engine/material"
	"github.com/Faultbox/toroids/internal/engine/scene"
	"github.com/Faultbox/toroids/pkg/math"
)

type countingRenderer struct {
	calls int
	last  *camera.Camera
}

func (r *countingRenderer) Render(_ *scene.Scene, cam *camera.Camera) error {
	r.calls++
	r.last = cam
	return nil
}

func near(a, b float32) bool {
	return gomath.Abs(float64(a-b)) < 1e-3
}

func fallback() material.Material {
	return material.NewPhong(math.ColorFromHex(0xffffff), 50)
}

func TestBuildDefaultScene(t *testing.T) {
	cfg := config.Default()
	r := &countingRenderer{}

	h, err := Build(fallback(), cfg, r)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(h.Toroids) != 3 {
		t.Fatalf("expected 3 toroids, got %d", len(h.Toroids))
	}
	if len(h.Planes) != 3 {
		t.Fatalf("expected 3 planes, got %d", len(h.Planes))
	}
	if len(h.Axes) != 3 {
		t.Errorf("expected 3 axes, got %d", len(h.Axes))
	}
	if got := len(h.Scene.Meshes); got != 9 {
		t.Errorf("expected 9 meshes in scene, got %d", got)
	}
	if len(h.Scene.PointLights) != 3 {
		t.Errorf("expected 3 point lights, got %d", len(h.Scene.PointLights))
	}

	if err := h.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if r.calls != 1 || r.last != h.Camera {
		t.Error("Render did not delegate to the renderer with the scene camera")
	}
}

func TestBuildRejectsMissingCollaborators(t *testing.T) {
	cfg := config.Default()
	if _, err := Build(nil, cfg, &countingRenderer{}); err == nil {
		t.Error("expected error for nil material")
	}
	if _, err := Build(fallback(), nil, &countingRenderer{}); err == nil {
		t.Error("expected error for nil config")
	}
	if _, err := Build(fallback(), cfg, nil); err == nil {
		t.Error("expected error for nil renderer")
	}
}

func TestToroidsShareMaterialAndTilt(t *testing.T) {
	cfg := config.Default()
	mat := fallback()
	h, err := Build(mat, cfg, &countingRenderer{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	tilts := []float32{0, gomath.Pi / 2, gomath.Pi / 3}
	for i, ring := range h.Toroids {
		if ring.Material != mat {
			t.Errorf("ring %d does not share the ring material", i)
		}
		if !near(ring.Rotation.X, tilts[i]) || ring.Rotation.Y != 0 || ring.Rotation.Z != 0 {
			t.Errorf("ring %d rotation %+v, want X=%v", i, ring.Rotation, tilts[i])
		}
		if ring.Position != (math.Vec3{Y: 200}) {
			t.Errorf("ring %d at %+v", i, ring.Position)
		}
		if !ring.CastShadow {
			t.Errorf("ring %d should cast shadows", i)
		}
	}
}

func TestToroidRadiiDoNotOverlap(t *testing.T) {
	spec := ToroidSpec{Radius: 100, TubeRadius: 10, RadialSegments: 16, TubularSegments: 32}

	want := []float32{100, 120, 140}
	for i, w := range want {
		if got := spec.RingRadius(i); got != w {
			t.Errorf("ring %d radius %v, want %v", i, got, w)
		}
	}

	rings := NewToroids(spec, fallback())
	for i := 0; i < 2; i++ {
		// Outer edge of ring i never passes the inner edge of ring i+1.
		outer := spec.RingRadius(i) + spec.TubeRadius
		inner := spec.RingRadius(i+1) - spec.TubeRadius
		if outer > inner {
			t.Errorf("rings %d and %d overlap: %v > %v", i, i+1, outer, inner)
		}
		size := rings[i].Geometry.Bounds.Size()
		if !near(size.X/2, outer) {
			t.Errorf("ring %d extent %v, want %v", i, size.X/2, outer)
		}
	}
}

func TestToroidsToggle(t *testing.T) {
	cfg := config.Default()
	cfg.Render.ToroidsOn = false

	h, err := Build(fallback(), cfg, &countingRenderer{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(h.Toroids) != 0 {
		t.Errorf("expected no toroids, got %d", len(h.Toroids))
	}
	if len(h.Planes) != 3 {
		t.Error("planes must be built regardless of the toroid toggle")
	}
}

func TestAxesToggle(t *testing.T) {
	cfg := config.Default()
	cfg.Render.AxesOn = false

	h, err := Build(fallback(), cfg, &countingRenderer{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(h.Axes) != 0 {
		t.Errorf("expected no axes, got %d", len(h.Axes))
	}
	for _, m := range h.Scene.Meshes {
		if m.Geometry.Primitive == geometry.Lines {
			t.Errorf("line mesh %s present with axes off", m.Name)
		}
	}
}

func TestAxesGeometry(t *testing.T) {
	axes := NewAxes(Origin(0), 100)
	if len(axes) != 3 {
		t.Fatalf("expected 3 axes, got %d", len(axes))
	}
	end := axes[1].Geometry.Vertices[1].Position
	if end != [3]float32{0, 100, 0} {
		t.Errorf("y axis ends at %v", end)
	}
	if lb, ok := axes[2].Material.(*material.LineBasic); !ok || lb.Color.B != 1 {
		t.Errorf("z axis should be blue line material, got %+v", axes[2].Material)
	}
}

func gradientSpec(o Orientation) PlaneSpec {
	return PlaneSpec{
		Orientation:  o,
		Size:         450,
		Segments:     10,
		ViewerColor:  math.ColorFromHex(0xffffff),
		HorizonColor: math.ColorFromHex(0x000000),
		Shininess:    50,
	}
}

func TestPlaneMaterialFromConfig(t *testing.T) {
	cfg := config.Default()
	for _, o := range []Orientation{Floor, BackWall, SideWall} {
		p := NewPlane(PlaneSpecFrom(cfg, o))
		mat, ok := p.Material.(*material.Phong)
		if !ok {
			t.Fatalf("%s: expected Phong material, got %T", o, p.Material)
		}
		if mat.Specular != cfg.Planes.Specular.RGB() || mat.Shininess != cfg.Planes.Shininess {
			t.Errorf("%s: specular %+v shininess %v", o, mat.Specular, mat.Shininess)
		}
		if !mat.VertexColors || !mat.DoubleSided() {
			t.Errorf("%s: expected double-sided vertex-coloured material", o)
		}
	}
}

func TestFloorGradient(t *testing.T) {
	p := NewPlane(gradientSpec(Floor))
	v := p.Geometry.Vertices
	const cols = 11

	// Row 0 is baked to the far edge, row 10 to the viewer.
	horizon := v[0].Color
	viewer := v[10*cols].Color
	mid := v[5*cols].Color

	if !near(viewer[0], 1) || !near(viewer[1], 1) || !near(viewer[2], 1) {
		t.Errorf("viewer edge should be white, got %v", viewer)
	}
	if !near(horizon[0], 0) {
		t.Errorf("horizon edge should be black, got %v", horizon)
	}
	if !near(mid[0], 0.5) {
		t.Errorf("midpoint should be grey 0.5, got %v", mid)
	}

	// Colour only varies along depth.
	for col := 0; col < cols; col++ {
		if v[5*cols+col].Color != mid {
			t.Fatalf("row 5 is not uniform at column %d", col)
		}
	}
}

func TestWallGradient(t *testing.T) {
	for _, o := range []Orientation{BackWall, SideWall} {
		t.Run(string(o), func(t *testing.T) {
			spec := gradientSpec(o)
			p := NewPlane(spec)
			for i, v := range p.Geometry.Vertices {
				y := v.Position[1]
				want := (y + spec.Size/2) / spec.Size
				if !near(v.Color[0], 1-want) {
					t.Fatalf("vertex %d at y=%v has %v, want %v", i, y, v.Color[0], 1-want)
				}
			}
		})
	}
}

func TestGradientClamps(t *testing.T) {
	spec := gradientSpec(BackWall)
	if got := spec.GradientT(math.Vec3{Y: 10000}); got != 1 {
		t.Errorf("expected clamp to 1, got %v", got)
	}
	if got := spec.GradientT(math.Vec3{Y: -10000}); got != 0 {
		t.Errorf("expected clamp to 0, got %v", got)
	}
}

func TestPlaneSeams(t *testing.T) {
	const size = 550
	half := float32(size / 2)
	var bounds = map[Orientation]geometry.Bounds{}
	for _, o := range Orientations {
		spec := gradientSpec(o)
		spec.Size = size
		m := NewPlane(spec)
		if !m.ReceiveShadow {
			t.Errorf("plane %s should receive shadows", o)
		}
		bounds[o] = m.WorldBounds()
	}

	floor, back, side := bounds[Floor], bounds[BackWall], bounds[SideWall]

	// Floor at y=0 spanning ±half.
	if !near(floor.Min[1], 0) || !near(floor.Max[1], 0) || !near(floor.Min[0], -half) || !near(floor.Min[2], -half) {
		t.Errorf("floor bounds %+v", floor)
	}
	// Back wall stands on the floor's far edge.
	if !near(back.Min[2], -half) || !near(back.Max[2], -half) || !near(back.Min[1], 0) || !near(back.Max[1], size) {
		t.Errorf("back wall bounds %+v", back)
	}
	// Side wall stands on the floor's left edge and meets the back wall.
	if !near(side.Min[0], -half) || !near(side.Max[0], -half) || !near(side.Min[1], 0) || !near(side.Min[2], -half) {
		t.Errorf("side wall bounds %+v", side)
	}
}

func TestUnknownOrientationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown orientation")
		}
	}()
	NewPlane(PlaneSpec{Orientation: "zz", Size: 10, Segments: 1})
}

func TestLightRig(t *testing.T) {
	cfg := config.Default()
	rig := NewLightRig(LightSpecFrom(cfg))

	want := []math.Vec3{{Y: 500}, {Y: 250, Z: 250}, {X: 250, Y: 250}}
	for i, l := range rig.Points {
		if l.Position != want[i] {
			t.Errorf("light %d at %+v, want %+v", i, l.Position, want[i])
		}
		if l.Range != 600 {
			t.Errorf("light %d range %v, want 600", i, l.Range)
		}
		if l.Shadow.Resolution != 1000 {
			t.Errorf("light %d shadow resolution %d, want 1000", i, l.Shadow.Resolution)
		}
		if l.Shadow.Near != 20 || l.Shadow.Far != 1000 || !l.Shadow.Cast {
			t.Errorf("light %d shadow config %+v", i, l.Shadow)
		}
		if l.Intensity != 4 {
			t.Errorf("light %d intensity %v", i, l.Intensity)
		}
	}
	if rig.Ambient.Color != math.ColorFromHex(0x404040) || rig.Ambient.Intensity != 1 {
		t.Errorf("unexpected ambient %+v", rig.Ambient)
	}
}

func TestShadowsOffDisablesCasting(t *testing.T) {
	cfg := config.Default()
	cfg.Render.ShadowsOn = false

	h, err := Build(fallback(), cfg, &countingRenderer{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, l := range h.Lights.Points {
		if l.Shadow.Cast {
			t.Errorf("light %d still casts shadows", i)
		}
	}
	for i, ring := range h.Toroids {
		if ring.CastShadow {
			t.Errorf("ring %d still casts shadows", i)
		}
	}
}

func TestCameraFromConfig(t *testing.T) {
	cfg := config.Default()
	cam := NewCamera(cfg)

	if cam.Position != (math.Vec3{X: 50, Y: 100, Z: 600}) || cam.Target != (math.Vec3{}) {
		t.Errorf("unexpected camera placement %+v -> %+v", cam.Position, cam.Target)
	}
	if !near(cam.Aspect, 1280.0/720.0) || cam.FOV != 75 {
		t.Errorf("unexpected projection fov=%v aspect=%v", cam.FOV, cam.Aspect)
	}

	cfg.Render.CameraOrbitOn = true
	cfg.Camera.OrbitRadius = 2000
	if far := NewCamera(cfg).Far; far < 2000+cfg.Planes.Size {
		t.Errorf("far plane %v does not cover the orbit", far)
	}
}
