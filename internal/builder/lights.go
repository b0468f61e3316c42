package builder

import (
	"github.com/Faultbox/toroids/internal/config"
	"github.com/Faultbox/toroids/internal/engine/lighting"
	"github.com/Faultbox/toroids/pkg/math"
)

// LightRig is the fixed set of lights of the scene.
type LightRig struct {
	Points  [3]lighting.PointLight
	Ambient lighting.AmbientLight
}

// LightSpec describes the light rig.
type LightSpec struct {
	SurfaceSize      float32 // side of the lit area; lights sit on its bounds
	Color            math.Color
	Intensity        float32
	RangeOffset      float32
	ShadowMapScale   float32
	ShadowNear       float32
	ShadowFar        float32
	CastShadow       bool
	AmbientColor     math.Color
	AmbientIntensity float32
}

// LightSpecFrom reads the light settings from config.
func LightSpecFrom(cfg *config.Config) LightSpec {
	l := cfg.Lights
	return LightSpec{
		SurfaceSize:      l.SurfaceSize,
		Color:            l.Color.RGB(),
		Intensity:        l.Intensity,
		RangeOffset:      l.RangeOffset,
		ShadowMapScale:   l.ShadowMapScale,
		ShadowNear:       l.ShadowNear,
		ShadowFar:        l.ShadowFar,
		CastShadow:       cfg.Render.ShadowsOn,
		AmbientColor:     l.AmbientColor.RGB(),
		AmbientIntensity: l.AmbientIntensity,
	}
}

// ShadowResolution returns the square shadow map size for each light.
func (s LightSpec) ShadowResolution() int32 {
	return int32(s.SurfaceSize * s.ShadowMapScale)
}

// NewLightRig places one light overhead and one over each wall-facing side.
func NewLightRig(spec LightSpec) LightRig {
	size := spec.SurfaceSize
	positions := [3]math.Vec3{
		{X: 0, Y: size, Z: 0},
		{X: 0, Y: size / 2, Z: size / 2},
		{X: size / 2, Y: size / 2, Z: 0},
	}

	var rig LightRig
	for i, p := range positions {
		rig.Points[i] = lighting.PointLight{
			Position:  p,
			Color:     spec.Color,
			Intensity: spec.Intensity,
			Range:     size + spec.RangeOffset,
			Shadow: lighting.ShadowConfig{
				Cast:       spec.CastShadow,
				Resolution: spec.ShadowResolution(),
				Near:       spec.ShadowNear,
				Far:        spec.ShadowFar,
			},
		}
	}
	rig.Ambient = lighting.AmbientLight{
		Color:     spec.AmbientColor,
		Intensity: spec.AmbientIntensity,
	}
	return rig
}
