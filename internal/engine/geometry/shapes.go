package geometry

import (
	gomath "math"

	"github.com/Faultbox/toroids/pkg/math"
)

// NewTorus returns a ring lying in the XY plane around the origin.
// radius is the distance from the centre to the middle of the tube;
// radialSegs divide the tube cross-section, tubularSegs the ring.
func NewTorus(radius, tube float32, radialSegs, tubularSegs int) *Geometry {
	g := &Geometry{
		Vertices: make([]Vertex, 0, (radialSegs+1)*(tubularSegs+1)),
		Indices:  make([]uint32, 0, radialSegs*tubularSegs*6),
	}

	for j := 0; j <= radialSegs; j++ {
		v := float64(j) / float64(radialSegs) * 2 * gomath.Pi
		cv, sv := float32(gomath.Cos(v)), float32(gomath.Sin(v))
		for i := 0; i <= tubularSegs; i++ {
			u := float64(i) / float64(tubularSegs) * 2 * gomath.Pi
			cu, su := float32(gomath.Cos(u)), float32(gomath.Sin(u))

			center := math.Vec3{X: radius * cu, Y: radius * su}
			pos := math.Vec3{
				X: (radius + tube*cv) * cu,
				Y: (radius + tube*cv) * su,
				Z: tube * sv,
			}
			g.Vertices = append(g.Vertices, Vertex{
				Position: pos.Array(),
				Normal:   pos.Sub(center).Normalize().Array(),
				Tangent:  [3]float32{-su, cu, 0},
				TexCoord: [2]float32{float32(i) / float32(tubularSegs), float32(j) / float32(radialSegs)},
				Color:    white,
			})
		}
	}

	row := uint32(tubularSegs + 1)
	for j := uint32(1); j <= uint32(radialSegs); j++ {
		for i := uint32(1); i <= uint32(tubularSegs); i++ {
			a := row*j + i - 1
			b := row*(j-1) + i - 1
			c := row*(j-1) + i
			d := row*j + i
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}

	g.updateBounds()
	return g
}

// NewPlane returns a size×size square in the XY plane facing +Z, split into
// segs×segs cells. Rows run from +Y to -Y and columns from -X to +X.
func NewPlane(size float32, segs int) *Geometry {
	half := size / 2
	step := size / float32(segs)
	cols := uint32(segs + 1)

	g := &Geometry{
		Vertices: make([]Vertex, 0, (segs+1)*(segs+1)),
		Indices:  make([]uint32, 0, segs*segs*6),
	}

	for iy := 0; iy <= segs; iy++ {
		y := half - float32(iy)*step
		for ix := 0; ix <= segs; ix++ {
			x := float32(ix)*step - half
			g.Vertices = append(g.Vertices, Vertex{
				Position: [3]float32{x, y, 0},
				Normal:   [3]float32{0, 0, 1},
				Tangent:  [3]float32{1, 0, 0},
				TexCoord: [2]float32{float32(ix) / float32(segs), 1 - float32(iy)/float32(segs)},
				Color:    white,
			})
		}
	}

	for iy := uint32(0); iy < uint32(segs); iy++ {
		for ix := uint32(0); ix < uint32(segs); ix++ {
			a := ix + cols*iy
			b := ix + cols*(iy+1)
			c := ix + 1 + cols*(iy+1)
			d := ix + 1 + cols*iy
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}

	g.updateBounds()
	return g
}

// NewLine returns a single segment from a to b in one colour.
func NewLine(a, b math.Vec3, color math.Color) *Geometry {
	c := color.Array()
	g := &Geometry{
		Vertices: []Vertex{
			{Position: a.Array(), Color: c},
			{Position: b.Array(), Color: c},
		},
		Primitive: Lines,
	}
	g.updateBounds()
	return g
}
