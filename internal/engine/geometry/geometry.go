// Package geometry builds indexed vertex data for the procedural scene shapes.
package geometry

import (
	gomath "math"

	"github.com/Faultbox/toroids/pkg/math"
)

// Vertex is the interleaved layout uploaded to the GPU.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	Tangent  [3]float32
	TexCoord [2]float32
	Color    [3]float32
}

// Primitive selects how vertices are assembled.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
)

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min [3]float32
	Max [3]float32
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return math.Vec3{
		X: (b.Min[0] + b.Max[0]) / 2,
		Y: (b.Min[1] + b.Max[1]) / 2,
		Z: (b.Min[2] + b.Max[2]) / 2,
	}
}

// Size returns the extent of the box on each axis.
func (b Bounds) Size() math.Vec3 {
	return math.Vec3{
		X: b.Max[0] - b.Min[0],
		Y: b.Max[1] - b.Min[1],
		Z: b.Max[2] - b.Min[2],
	}
}

// Geometry is CPU-side mesh data. Indices is empty for non-indexed lines.
type Geometry struct {
	Vertices  []Vertex
	Indices   []uint32
	Primitive Primitive
	Bounds    Bounds
}

var white = [3]float32{1, 1, 1}

// ApplyMatrix bakes m into positions, normals and tangents.
func (g *Geometry) ApplyMatrix(m math.Mat4) {
	nm := m.NormalMatrix()
	for i := range g.Vertices {
		v := &g.Vertices[i]
		v.Position = m.TransformPoint(v.Position)
		v.Normal = math.FromArray(nm.TransformDirection(v.Normal)).Normalize().Array()
		v.Tangent = math.FromArray(m.TransformDirection(v.Tangent)).Normalize().Array()
	}
	g.updateBounds()
}

// Paint sets each vertex colour from its position.
func (g *Geometry) Paint(fn func(pos math.Vec3) math.Color) {
	for i := range g.Vertices {
		g.Vertices[i].Color = fn(math.FromArray(g.Vertices[i].Position)).Array()
	}
}

// TriangleCount returns the number of triangles drawn.
func (g *Geometry) TriangleCount() int {
	if g.Primitive != Triangles {
		return 0
	}
	return len(g.Indices) / 3
}

func (g *Geometry) updateBounds() {
	if len(g.Vertices) == 0 {
		g.Bounds = Bounds{}
		return
	}
	b := Bounds{
		Min: [3]float32{gomath.MaxFloat32, gomath.MaxFloat32, gomath.MaxFloat32},
		Max: [3]float32{-gomath.MaxFloat32, -gomath.MaxFloat32, -gomath.MaxFloat32},
	}
	for _, v := range g.Vertices {
		for i := 0; i < 3; i++ {
			if v.Position[i] < b.Min[i] {
				b.Min[i] = v.Position[i]
			}
			if v.Position[i] > b.Max[i] {
				b.Max[i] = v.Position[i]
			}
		}
	}
	g.Bounds = b
}
