// Package scene holds the renderable objects and lights of a frame.
package scene

import (
	gomath "math"

	"github.com/Faultbox/toroids/internal/engine/geometry"
	"github.com/Faultbox/toroids/internal/engine/lighting"
	"github.com/Faultbox/toroids/internal/engine/material"
	"github.com/Faultbox/toroids/pkg/math"
)

// Mesh places a geometry with a material in the world.
type Mesh struct {
	Name     string
	Geometry *geometry.Geometry
	Material material.Material

	Position math.Vec3
	Rotation math.Vec3 // XYZ Euler angles, radians

	CastShadow    bool
	ReceiveShadow bool
	Visible       bool
}

// NewMesh creates a visible mesh at the origin.
func NewMesh(name string, g *geometry.Geometry, m material.Material) *Mesh {
	return &Mesh{
		Name:     name,
		Geometry: g,
		Material: m,
		Visible:  true,
	}
}

// ModelMatrix returns the local-to-world transform.
func (m *Mesh) ModelMatrix() math.Mat4 {
	return math.Compose(m.Position, m.Rotation)
}

// WorldBounds returns the box enclosing the transformed geometry bounds.
func (m *Mesh) WorldBounds() geometry.Bounds {
	model := m.ModelMatrix()
	b := m.Geometry.Bounds
	out := geometry.Bounds{
		Min: [3]float32{gomath.MaxFloat32, gomath.MaxFloat32, gomath.MaxFloat32},
		Max: [3]float32{-gomath.MaxFloat32, -gomath.MaxFloat32, -gomath.MaxFloat32},
	}
	for i := 0; i < 8; i++ {
		corner := [3]float32{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			corner[0] = b.Max[0]
		}
		if i&2 != 0 {
			corner[1] = b.Max[1]
		}
		if i&4 != 0 {
			corner[2] = b.Max[2]
		}
		p := model.TransformPoint(corner)
		for k := 0; k < 3; k++ {
			out.Min[k] = min(out.Min[k], p[k])
			out.Max[k] = max(out.Max[k], p[k])
		}
	}
	return out
}

// Scene is the set of meshes and lights drawn each frame.
type Scene struct {
	Meshes      []*Mesh
	PointLights []lighting.PointLight
	Ambient     lighting.AmbientLight
	Background  math.Color
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends meshes to the scene.
func (s *Scene) Add(meshes ...*Mesh) {
	s.Meshes = append(s.Meshes, meshes...)
}

// AddPointLight appends a point light.
func (s *Scene) AddPointLight(l lighting.PointLight) {
	s.PointLights = append(s.PointLights, l)
}

// LightBuffer flattens the point lights for upload.
func (s *Scene) LightBuffer() *lighting.PointLightBuffer {
	b := lighting.NewPointLightBuffer()
	b.SetLights(s.PointLights)
	return b
}

// Bounds returns the world box around every visible triangle mesh.
func (s *Scene) Bounds() geometry.Bounds {
	var out geometry.Bounds
	first := true
	for _, m := range s.Meshes {
		if !m.Visible || m.Geometry.Primitive != geometry.Triangles {
			continue
		}
		b := m.WorldBounds()
		if first {
			out = b
			first = false
			continue
		}
		for k := 0; k < 3; k++ {
			out.Min[k] = min(out.Min[k], b.Min[k])
			out.Max[k] = max(out.Max[k], b.Max[k])
		}
	}
	return out
}
