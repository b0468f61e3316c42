package camera

import (
	gomath "math"

	"github.com/Faultbox/toroids/pkg/math"
)

// Controls rotate and zoom a camera around its target from mouse input.
// Input is accumulated between frames and applied by Update.
type Controls struct {
	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32

	dragX, dragY float32
	zoom         float32

	// Accumulated offsets for Follow.
	yaw, pitch float32
	scale      float32
}

// NewControls creates controls with the given distance limits.
func NewControls(minDistance, maxDistance float32) *Controls {
	return &Controls{
		MinDistance:     minDistance,
		MaxDistance:     maxDistance,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// HandleDrag queues a rotation from a mouse drag delta in pixels.
func (c *Controls) HandleDrag(deltaX, deltaY float32) {
	c.dragX += deltaX
	c.dragY += deltaY
}

// HandleZoom queues a zoom from scroll wheel delta.
func (c *Controls) HandleZoom(delta float32) {
	c.zoom += delta
}

// Pending reports whether input is waiting to be applied.
func (c *Controls) Pending() bool {
	return c.dragX != 0 || c.dragY != 0 || c.zoom != 0
}

// Update applies queued input to cam, orbiting its position around the
// target, then clears the queue. Pitch and distance are clamped even when
// nothing is queued.
func (c *Controls) Update(cam *Camera) {
	yaw, pitch, distance := c.spherical(cam)

	yaw -= c.dragX * c.DragSensitivity
	pitch += c.dragY * c.DragSensitivity
	distance -= c.zoom * distance * c.ZoomSensitivity
	c.dragX, c.dragY, c.zoom = 0, 0, 0

	c.place(cam, yaw, clamp(pitch, c.MinPitch, c.MaxPitch), clamp(distance, c.MinDistance, c.MaxDistance))
}

// Follow folds queued input into a persistent offset and applies the whole
// offset to cam's current pose. It is meant for cameras whose position is
// reset every frame, such as the orbit sweep. The stored offset is trimmed
// to what the clamps allowed.
func (c *Controls) Follow(cam *Camera) {
	if c.scale == 0 {
		c.scale = 1
	}
	c.yaw -= c.dragX * c.DragSensitivity
	c.pitch += c.dragY * c.DragSensitivity
	c.scale -= c.zoom * c.scale * c.ZoomSensitivity
	c.dragX, c.dragY, c.zoom = 0, 0, 0

	yaw, pitch, distance := c.spherical(cam)
	p := clamp(pitch+c.pitch, c.MinPitch, c.MaxPitch)
	d := clamp(distance*c.scale, c.MinDistance, c.MaxDistance)
	c.pitch = p - pitch
	if distance > 0 {
		c.scale = d / distance
	}

	c.place(cam, yaw+c.yaw, p, d)
}

// spherical returns cam's position relative to its target as yaw, pitch
// and distance.
func (c *Controls) spherical(cam *Camera) (yaw, pitch, distance float32) {
	offset := cam.Position.Sub(cam.Target)
	distance = offset.Length()
	if distance == 0 {
		distance = c.MinDistance
		offset = math.Vec3{Z: distance}
	}
	yaw = float32(gomath.Atan2(float64(offset.X), float64(offset.Z)))
	pitch = float32(gomath.Asin(float64(offset.Y / distance)))
	return yaw, pitch, distance
}

func (c *Controls) place(cam *Camera, yaw, pitch, distance float32) {
	cp := float32(gomath.Cos(float64(pitch)))
	cam.Position = cam.Target.Add(math.Vec3{
		X: distance * cp * float32(gomath.Sin(float64(yaw))),
		Y: distance * float32(gomath.Sin(float64(pitch))),
		Z: distance * cp * float32(gomath.Cos(float64(yaw))),
	})
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
