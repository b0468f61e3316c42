package config

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate checks the configuration once, before any scene work starts, and
// reports every problem found rather than only the first.
func (c *Config) Validate() error {
	var err error
	check := func(ok bool, format string, args ...interface{}) {
		if !ok {
			err = multierr.Append(err, fmt.Errorf(format, args...))
		}
	}

	check(c.Graphics.Width > 0 && c.Graphics.Height > 0,
		"graphics: window size must be positive, got %dx%d", c.Graphics.Width, c.Graphics.Height)
	check(c.Render.Exposure > 0, "render.exposure must be positive, got %v", c.Render.Exposure)

	t := c.Toroids
	check(t.Radius > 0, "toroids.radius must be positive, got %v", t.Radius)
	check(t.TubeRadius > 0, "toroids.tube_radius must be positive, got %v", t.TubeRadius)
	check(t.TubeRadius < t.Radius, "toroids.tube_radius (%v) must be smaller than radius (%v)", t.TubeRadius, t.Radius)
	check(t.RadialSegments >= 3, "toroids.radial_segments must be at least 3, got %d", t.RadialSegments)
	check(t.TubularSegments >= 3, "toroids.tubular_segments must be at least 3, got %d", t.TubularSegments)
	check(t.SpinStep >= 0, "toroids.spin_step must not be negative, got %v", t.SpinStep)

	p := c.Planes
	check(p.Size > 0, "planes.size must be positive, got %v", p.Size)
	check(p.Segments >= 1, "planes.segments must be at least 1, got %d", p.Segments)

	l := c.Lights
	check(l.SurfaceSize > 0, "lights.surface_size must be positive, got %v", l.SurfaceSize)
	check(l.Intensity >= 0 && l.Intensity <= 100, "lights.intensity must be within [0,100], got %v", l.Intensity)
	check(l.AmbientIntensity >= 0 && l.AmbientIntensity <= 10, "lights.ambient_intensity must be within [0,10], got %v", l.AmbientIntensity)
	check(l.RangeOffset >= 0, "lights.range_offset must not be negative, got %v", l.RangeOffset)
	check(l.ShadowMapScale > 0, "lights.shadow_map_scale must be positive, got %v", l.ShadowMapScale)
	check(l.ShadowNear > 0 && l.ShadowNear < l.ShadowFar,
		"lights: shadow near/far must satisfy 0 < near < far, got %v/%v", l.ShadowNear, l.ShadowFar)

	cam := c.Camera
	check(cam.FOV > 0 && cam.FOV < 180, "camera.fov must be within (0,180), got %v", cam.FOV)
	check(cam.Near > 0 && cam.Near < cam.Far, "camera: near/far must satisfy 0 < near < far, got %v/%v", cam.Near, cam.Far)
	check(cam.OrbitRadius > 0, "camera.orbit_radius must be positive, got %v", cam.OrbitRadius)
	check(cam.OrbitStep > 0, "camera.orbit_step must be positive, got %v", cam.OrbitStep)
	check(cam.OrbitMin < cam.OrbitMax, "camera: orbit_min (%v) must be below orbit_max (%v)", cam.OrbitMin, cam.OrbitMax)
	check(cam.MinDistance > 0 && cam.MinDistance < cam.MaxDistance,
		"camera: distance limits must satisfy 0 < min < max, got %v/%v", cam.MinDistance, cam.MaxDistance)

	check(c.Axes.Length > 0, "axes.length must be positive, got %v", c.Axes.Length)

	if c.Render.TexturesOn {
		tx := c.Textures
		for name, id := range map[string]string{
			"color":        tx.Color,
			"roughness":    tx.Roughness,
			"metalness":    tx.Metalness,
			"environment":  tx.Environment,
			"displacement": tx.Displacement,
			"normal":       tx.Normal,
		} {
			check(id != "", "textures.%s is required when textures are on", name)
		}
		check(tx.Timeout >= 0, "textures.timeout must not be negative, got %v", tx.Timeout)
	}

	check(c.Capture.Format == "png" || c.Capture.Format == "webp",
		"capture.format must be png or webp, got %q", c.Capture.Format)

	return err
}
