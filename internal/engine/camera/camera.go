// Package camera provides the perspective camera and its user controls.
package camera

import (
	gomath "math"

	"github.com/Faultbox/toroids/pkg/math"
)

// Camera is a perspective camera aimed at a target point.
type Camera struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3

	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fov, aspect, near, far float32) *Camera {
	return &Camera{
		Target: math.Vec3{Z: -1},
		Up:     math.Vec3{Y: 1},
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// LookAt aims the camera at target.
func (c *Camera) LookAt(target math.Vec3) {
	c.Target = target
}

// SetAspect updates the aspect ratio after a resize.
func (c *Camera) SetAspect(width, height int32) {
	if height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *Camera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Target, c.Up)
}

// ProjectionMatrix returns the perspective projection.
func (c *Camera) ProjectionMatrix() math.Mat4 {
	fovRad := float32(float64(c.FOV) * gomath.Pi / 180)
	return math.Perspective(fovRad, c.Aspect, c.Near, c.Far)
}

// ViewProjection returns projection * view.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.ProjectionMatrix().Mul(c.ViewMatrix())
}

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float32 {
	return c.Position.Distance(c.Target)
}
