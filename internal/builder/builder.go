// Package builder assembles the toroid scene from configuration.
package builder

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Faultbox/toroids/internal/config"
	"github.com/Faultbox/toroids/internal/engine/camera"
	"github.com/Faultbox/toroids/internal/engine/material"
	"github.com/Faultbox/toroids/internal/engine/scene"
	"github.com/Faultbox/toroids/internal/logger"
)

// Renderer draws a scene from a camera. The GL renderer satisfies it.
type Renderer interface {
	Render(s *scene.Scene, cam *camera.Camera) error
}

// Handles are the objects the animation driver mutates after construction.
type Handles struct {
	Scene   *scene.Scene
	Toroids []*scene.Mesh // three rings sharing one material, or none
	Planes  []*scene.Mesh
	Axes    []*scene.Mesh
	Lights  LightRig
	Camera  *camera.Camera

	renderer Renderer
}

// Render draws the scene once.
func (h *Handles) Render() error {
	return h.renderer.Render(h.Scene, h.Camera)
}

// Build constructs the whole scene. mat is the ring material: the textured
// physical material once the bundle resolved, or the flat fallback.
func Build(mat material.Material, cfg *config.Config, r Renderer) (*Handles, error) {
	if mat == nil {
		return nil, errors.New("builder: nil ring material")
	}
	if cfg == nil {
		return nil, errors.New("builder: nil config")
	}
	if r == nil {
		return nil, errors.New("builder: nil renderer")
	}

	s := scene.New()
	h := &Handles{Scene: s, renderer: r}

	if cfg.Render.ToroidsOn {
		rings := NewToroids(ToroidSpecFrom(cfg), mat)
		h.Toroids = rings[:]
		s.Add(h.Toroids...)
	}

	for _, o := range Orientations {
		spec := PlaneSpecFrom(cfg, o)
		p := NewPlane(spec)
		h.Planes = append(h.Planes, p)
		s.Add(p)
	}

	h.Lights = NewLightRig(LightSpecFrom(cfg))
	for _, l := range h.Lights.Points {
		s.AddPointLight(l)
	}
	s.Ambient = h.Lights.Ambient

	if cfg.Render.AxesOn {
		origin := Origin(cfg.Planes.Offset)
		h.Axes = NewAxes(origin, cfg.Axes.Length)
		s.Add(h.Axes...)
	}

	h.Camera = NewCamera(cfg)

	logger.Named("builder").Info("scene built",
		zap.Stringer("material", mat.Type()),
		zap.Int("meshes", len(s.Meshes)),
		zap.Int("lights", len(s.PointLights)),
		zap.Bool("shadows", cfg.Render.ShadowsOn))

	return h, nil
}

// NewCamera places the perspective camera from config.
func NewCamera(cfg *config.Config) *camera.Camera {
	c := cfg.Camera
	far := c.Far
	if reach := c.OrbitRadius + cfg.Planes.Size; cfg.Render.CameraOrbitOn && reach > far {
		far = reach
	}
	cam := camera.NewPerspective(c.FOV, 1, c.Near, far)
	cam.SetAspect(int32(cfg.Graphics.Width), int32(cfg.Graphics.Height))
	cam.Position = c.Position
	cam.LookAt(c.LookAt)
	return cam
}
