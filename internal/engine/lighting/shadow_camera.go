package lighting

import (
	gomath "math"

	"github.com/Faultbox/toroids/pkg/math"
)

// shadowFOV is the vertical field of view of a point light's shadow camera.
const shadowFOV = gomath.Pi / 2

// ShadowView returns the view matrix of the light's shadow camera aimed at target.
func (l PointLight) ShadowView(target math.Vec3) math.Mat4 {
	dir := target.Sub(l.Position).Normalize()
	up := math.Vec3{Y: 1}
	if d := dir.Dot(up); d > 0.99 || d < -0.99 {
		up = math.Vec3{Z: 1}
	}
	return math.LookAt(l.Position, target, up)
}

// ShadowProjection returns the square perspective projection of the shadow camera.
func (l PointLight) ShadowProjection() math.Mat4 {
	near, far := l.Shadow.Near, l.Shadow.Far
	if near <= 0 {
		near = 0.5
	}
	if far <= near {
		far = near + l.Range
	}
	return math.Perspective(shadowFOV, 1, near, far)
}

// ShadowViewProj returns projection * view for the light's shadow camera.
func (l PointLight) ShadowViewProj(target math.Vec3) math.Mat4 {
	return l.ShadowProjection().Mul(l.ShadowView(target))
}
