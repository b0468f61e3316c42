package builder

import (
	gomath "math"

	"github.com/Faultbox/toroids/internal/config"
	"github.com/Faultbox/toroids/internal/engine/geometry"
	"github.com/Faultbox/toroids/internal/engine/material"
	"github.com/Faultbox/toroids/internal/engine/scene"
	"github.com/Faultbox/toroids/pkg/math"
)

// ringTilt is the static X rotation of each ring.
var ringTilt = [3]float32{0, gomath.Pi / 2, gomath.Pi / 3}

// ToroidSpec describes the three rings.
type ToroidSpec struct {
	Radius          float32 // major radius of the innermost ring
	TubeRadius      float32
	RadialSegments  int
	TubularSegments int
	Offset          math.Vec3
	CastShadow      bool
}

// ToroidSpecFrom reads the ring settings from config.
func ToroidSpecFrom(cfg *config.Config) ToroidSpec {
	t := cfg.Toroids
	return ToroidSpec{
		Radius:          t.Radius,
		TubeRadius:      t.TubeRadius,
		RadialSegments:  t.RadialSegments,
		TubularSegments: t.TubularSegments,
		Offset:          t.Offset,
		CastShadow:      cfg.Render.ShadowsOn,
	}
}

// RingRadius returns the major radius of ring i. Rings grow by two tube
// radii so neighbouring tubes touch but never intersect.
func (s ToroidSpec) RingRadius(i int) float32 {
	return s.Radius + float32(2*i)*s.TubeRadius
}

// NewToroids creates the three rings sharing mat, centred on the offset.
func NewToroids(spec ToroidSpec, mat material.Material) [3]*scene.Mesh {
	var rings [3]*scene.Mesh
	for i := range rings {
		g := geometry.NewTorus(spec.RingRadius(i), spec.TubeRadius, spec.RadialSegments, spec.TubularSegments)
		m := scene.NewMesh(ringName(i), g, mat)
		m.Position = spec.Offset
		m.Rotation = math.Vec3{X: ringTilt[i]}
		m.CastShadow = spec.CastShadow
		rings[i] = m
	}
	return rings
}

func ringName(i int) string {
	return [...]string{"ring-inner", "ring-middle", "ring-outer"}[i]
}
