package builder

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/toroids/internal/config"
	"github.com/Faultbox/toroids/internal/engine/geometry"
	"github.com/Faultbox/toroids/internal/engine/material"
	"github.com/Faultbox/toroids/internal/engine/scene"
	"github.com/Faultbox/toroids/pkg/math"
)

// Orientation names the world plane a bounding plane lies in.
type Orientation string

const (
	Floor    Orientation = "xz"
	BackWall Orientation = "xy"
	SideWall Orientation = "yz"
)

// Orientations lists the three bounding planes in build order.
var Orientations = [...]Orientation{Floor, BackWall, SideWall}

// PlaneSpec describes one gradient bounding plane.
type PlaneSpec struct {
	Orientation  Orientation
	Size         float32
	Segments     int
	Offset       float32
	ViewerColor  math.Color // colour nearest the viewer or the floor
	HorizonColor math.Color // colour at the far or top edge
	Specular     math.Color
	Shininess    float32
}

// PlaneSpecFrom reads the plane settings from config.
func PlaneSpecFrom(cfg *config.Config, o Orientation) PlaneSpec {
	p := cfg.Planes
	return PlaneSpec{
		Orientation:  o,
		Size:         p.Size,
		Segments:     p.Segments,
		Offset:       p.Offset,
		ViewerColor:  p.ViewerColor.RGB(),
		HorizonColor: p.HorizonColor.RGB(),
		Specular:     p.Specular.RGB(),
		Shininess:    p.Shininess,
	}
}

// placement returns the orientation rotation and world position of a plane.
// Unknown orientations panic.
func (s PlaneSpec) placement() (rot math.Mat4, pos math.Vec3) {
	half := s.Size / 2
	switch s.Orientation {
	case Floor:
		return math.RotateX(-gomath.Pi / 2), math.Vec3{X: s.Offset, Z: s.Offset}
	case BackWall:
		return math.Identity(), math.Vec3{X: s.Offset, Y: s.Offset + half, Z: -half}
	case SideWall:
		return math.RotateY(-gomath.Pi / 2), math.Vec3{X: -half, Y: s.Offset + half, Z: s.Offset}
	}
	panic(fmt.Sprintf("builder: unknown plane orientation %q", s.Orientation))
}

// gradientAxis returns the baked-space axis and direction the colour ramps
// along: the floor darkens away from the viewer (-Z), walls darken upwards.
func (s PlaneSpec) gradientAxis() (axis int, sign float32) {
	if s.Orientation == Floor {
		return 2, -1
	}
	return 1, 1
}

// GradientT returns the interpolation factor for a position in baked plane
// space, 0 at the viewer/floor edge and 1 at the horizon/top edge.
func (s PlaneSpec) GradientT(pos math.Vec3) float32 {
	axis, sign := s.gradientAxis()
	return math.Clamp01((sign*pos.Component(axis) + s.Size/2) / s.Size)
}

// NewPlane creates a vertex-coloured bounding plane. The orientation is baked
// into the vertices before the gradient is computed, so the gradient axis is
// a world axis for every orientation.
func NewPlane(spec PlaneSpec) *scene.Mesh {
	rot, pos := spec.placement()

	g := geometry.NewPlane(spec.Size, spec.Segments)
	g.ApplyMatrix(rot)
	g.Paint(func(p math.Vec3) math.Color {
		return spec.ViewerColor.Lerp(spec.HorizonColor, spec.GradientT(p))
	})

	mat := material.NewPhong(math.Color{R: 1, G: 1, B: 1}, spec.Shininess)
	mat.Specular = spec.Specular
	mat.VertexColors = true
	mat.Sided = true

	m := scene.NewMesh("plane-"+string(spec.Orientation), g, mat)
	m.Position = pos
	m.ReceiveShadow = true
	return m
}

// Origin returns the corner where the three planes meet.
func Origin(offset float32) math.Vec3 {
	return math.Vec3{X: offset, Z: offset}
}
