package builder

import (
	"github.com/Faultbox/toroids/internal/engine/debug"
	"github.com/Faultbox/toroids/internal/engine/geometry"
	"github.com/Faultbox/toroids/internal/engine/material"
	"github.com/Faultbox/toroids/internal/engine/scene"
	"github.com/Faultbox/toroids/pkg/math"
)

// NewAxes returns red, green and blue lines along +X, +Y and +Z from origin.
func NewAxes(origin math.Vec3, length float32) []*scene.Mesh {
	axes := debug.Axes(origin, length)
	meshes := make([]*scene.Mesh, 0, len(axes))
	for _, a := range axes {
		g := geometry.NewLine(a.From, a.To, a.Color)
		meshes = append(meshes, scene.NewMesh("axis-"+a.Name, g, &material.LineBasic{Color: a.Color}))
	}
	return meshes
}
