// Package material describes how surfaces are shaded. Materials are plain
// data; the renderer turns them into shader state.
package material

import (
	"image"

	"github.com/Faultbox/toroids/internal/bundle"
	"github.com/Faultbox/toroids/pkg/math"
)

// Type identifies a material model.
type Type int

const (
	TypePhysical Type = iota
	TypePhong
	TypeLineBasic
)

func (t Type) String() string {
	switch t {
	case TypePhysical:
		return "physical"
	case TypePhong:
		return "phong"
	case TypeLineBasic:
		return "line-basic"
	}
	return "unknown"
}

// Material is implemented by every surface description.
type Material interface {
	Type() Type
	// DoubleSided reports whether back faces are drawn.
	DoubleSided() bool
}

// Physical is the metal-rough textured ring material.
type Physical struct {
	ColorMap        image.Image
	RoughnessMap    image.Image
	MetalnessMap    image.Image
	EnvironmentMap  image.Image // equirectangular
	DisplacementMap image.Image
	NormalMap       image.Image

	Roughness         float32
	Metalness         float32
	NormalScale       float32
	DisplacementScale float32
}

// NewPhysical binds each map of a resolved texture set to its slot.
func NewPhysical(set *bundle.TextureSet, normalScale, displacementScale float32) *Physical {
	return &Physical{
		ColorMap:          set.Get(bundle.RoleColor),
		RoughnessMap:      set.Get(bundle.RoleRoughness),
		MetalnessMap:      set.Get(bundle.RoleMetalness),
		EnvironmentMap:    set.Get(bundle.RoleEnvironment),
		DisplacementMap:   set.Get(bundle.RoleDisplacement),
		NormalMap:         set.Get(bundle.RoleNormal),
		Roughness:         1,
		Metalness:         1,
		NormalScale:       normalScale,
		DisplacementScale: displacementScale,
	}
}

func (m *Physical) Type() Type        { return TypePhysical }
func (m *Physical) DoubleSided() bool { return false }

// Phong is an untextured specular material.
type Phong struct {
	Color        math.Color
	Specular     math.Color
	Shininess    float32
	VertexColors bool
	Sided        bool // draw both faces
}

// NewPhong returns a flat Phong material.
func NewPhong(color math.Color, shininess float32) *Phong {
	return &Phong{
		Color:     color,
		Specular:  math.ColorFromHex(0x111111),
		Shininess: shininess,
	}
}

func (m *Phong) Type() Type        { return TypePhong }
func (m *Phong) DoubleSided() bool { return m.Sided }

// LineBasic is an unlit single-colour line material.
type LineBasic struct {
	Color math.Color
}

func (m *LineBasic) Type() Type        { return TypeLineBasic }
func (m *LineBasic) DoubleSided() bool { return false }
