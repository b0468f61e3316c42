// Package lighting provides the point and ambient lights of the scene.
package lighting

import "github.com/Faultbox/toroids/pkg/math"

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 4

// ShadowConfig describes the depth map a point light renders.
type ShadowConfig struct {
	Cast       bool
	Resolution int32   // square map size in texels
	Near       float32 // shadow camera clip planes
	Far        float32
}

// PointLight is an omnidirectional light with distance falloff.
type PointLight struct {
	Position  math.Vec3
	Color     math.Color
	Intensity float32 // 0-100
	Range     float32 // distance at which the light reaches zero
	Shadow    ShadowConfig
}

// AmbientLight lights every surface equally.
type AmbientLight struct {
	Color     math.Color
	Intensity float32 // 0-10
}

// Radiance returns the light colour scaled by intensity.
func (a AmbientLight) Radiance() math.Color {
	return a.Color.Scale(a.Intensity)
}

// PointLightBuffer holds lights flattened for GPU upload.
type PointLightBuffer struct {
	Lights []PointLight
	Count  int
}

// NewPointLightBuffer creates an empty point light buffer.
func NewPointLightBuffer() *PointLightBuffer {
	return &PointLightBuffer{
		Lights: make([]PointLight, 0, MaxPointLights),
	}
}

// Clear removes all lights from the buffer.
func (b *PointLightBuffer) Clear() {
	b.Lights = b.Lights[:0]
	b.Count = 0
}

// AddLight adds a point light to the buffer.
// Returns false if buffer is full.
func (b *PointLightBuffer) AddLight(light PointLight) bool {
	if b.Count >= MaxPointLights {
		return false
	}
	b.Lights = append(b.Lights, light)
	b.Count++
	return true
}

// SetLights replaces all lights in the buffer.
// Truncates to MaxPointLights if necessary.
func (b *PointLightBuffer) SetLights(lights []PointLight) {
	b.Clear()
	count := len(lights)
	if count > MaxPointLights {
		count = MaxPointLights
	}
	b.Lights = append(b.Lights, lights[:count]...)
	b.Count = count
}

// GetPositions returns positions as a flat float32 slice for GPU upload.
// Format: [x0, y0, z0, x1, y1, z1, ...]
func (b *PointLightBuffer) GetPositions() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Position.X
		result[i*3+1] = light.Position.Y
		result[i*3+2] = light.Position.Z
	}
	return result
}

// GetColors returns colors as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetColors() []float32 {
	result := make([]float32, MaxPointLights*3)
	for i, light := range b.Lights {
		result[i*3+0] = light.Color.R
		result[i*3+1] = light.Color.G
		result[i*3+2] = light.Color.B
	}
	return result
}

// GetRanges returns ranges as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetRanges() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Range
	}
	return result
}

// GetIntensities returns intensities as a flat float32 slice for GPU upload.
func (b *PointLightBuffer) GetIntensities() []float32 {
	result := make([]float32, MaxPointLights)
	for i, light := range b.Lights {
		result[i] = light.Intensity
	}
	return result
}

// ShadowCasters returns the indices of lights that render a shadow map.
func (b *PointLightBuffer) ShadowCasters() []int {
	var idx []int
	for i, light := range b.Lights {
		if light.Shadow.Cast {
			idx = append(idx, i)
		}
	}
	return idx
}
