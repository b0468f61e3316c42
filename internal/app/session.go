// Package app runs a scene session: texture acquisition, scene construction
// and the animation loop, paced by the host window.
package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/toroids/internal/animation"
	"github.com/Faultbox/toroids/internal/builder"
	"github.com/Faultbox/toroids/internal/bundle"
	"github.com/Faultbox/toroids/internal/config"
	"github.com/Faultbox/toroids/internal/engine/camera"
	"github.com/Faultbox/toroids/internal/engine/material"
	"github.com/Faultbox/toroids/internal/logger"
)

// Renderer draws scene frames and empty frames.
type Renderer interface {
	builder.Renderer
	// Clear presents an empty frame.
	Clear() error
}

// Session owns the configuration and everything built from it for one run.
type Session struct {
	cfg      *config.Config
	loader   bundle.Loader
	renderer Renderer
	sched    animation.FrameScheduler
	controls *camera.Controls

	handles *builder.Handles
	driver  *animation.Driver
	log     *zap.Logger
}

// NewSession creates a session. loader may be nil when texturing is off;
// controls may be nil.
func NewSession(cfg *config.Config, loader bundle.Loader, r Renderer, sched animation.FrameScheduler, controls *camera.Controls) *Session {
	return &Session{
		cfg:      cfg,
		loader:   loader,
		renderer: r,
		sched:    sched,
		controls: controls,
		log:      logger.Named("session"),
	}
}

// Handles returns the built scene, nil before construction.
func (s *Session) Handles() *builder.Handles {
	return s.handles
}

// Driver returns the animation driver, nil before construction.
func (s *Session) Driver() *animation.Driver {
	return s.driver
}

// Run acquires the ring material, builds the scene and animates it until the
// host closes or ctx is cancelled. A texture bundle failure is logged and the
// session keeps presenting empty frames; it is not returned.
func (s *Session) Run(ctx context.Context) error {
	mat, err := s.acquireMaterial(ctx)
	if err != nil {
		var failure *bundle.BundleLoadFailure
		switch {
		case s.stopped(ctx, err):
			return nil
		case errors.As(err, &failure):
			s.log.Error("texture bundle failed",
				zap.Stringer("role", failure.Role),
				zap.Bool("aborted", failure.Aborted),
				zap.Error(failure.Err))
			return s.idle(ctx)
		}
		return err
	}

	h, err := builder.Build(mat, s.cfg, s.renderer)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}
	s.handles = h
	s.driver = animation.New(h, animation.OptionsFrom(s.cfg, s.controls))

	if err := s.driver.Run(ctx, s.sched); err != nil && !s.stopped(ctx, err) {
		return err
	}
	s.log.Info("session ended", zap.Uint64("ticks", s.driver.Ticks()))
	return nil
}

// acquireMaterial returns the textured physical material once the bundle
// resolved, or the flat fallback when texturing is off. Empty frames are
// presented while the bundle is pending.
func (s *Session) acquireMaterial(ctx context.Context) (material.Material, error) {
	if !s.cfg.Render.TexturesOn {
		s.log.Info("texturing disabled, using flat material")
		return s.fallbackMaterial(), nil
	}
	if s.loader == nil {
		return nil, errors.New("app: texturing enabled without a loader")
	}

	var (
		rctx   context.Context
		cancel context.CancelFunc
	)
	if t := s.cfg.Textures.Timeout; t > 0 {
		rctx, cancel = context.WithTimeout(ctx, t)
	} else {
		rctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	type outcome struct {
		set *bundle.TextureSet
		err error
	}
	done := make(chan outcome, 1)
	ids := bundle.IdentifiersFrom(s.cfg.Textures)
	go func() {
		set, err := bundle.Resolve(rctx, s.loader, ids)
		done <- outcome{set, err}
	}()

	s.log.Info("resolving texture bundle")
	frames := 0
	for {
		select {
		case out := <-done:
			if out.err != nil {
				return nil, out.err
			}
			s.log.Info("texture bundle resolved", zap.Int("pending_frames", frames))
			t := s.cfg.Textures
			return material.NewPhysical(out.set, t.NormalScale, t.DisplacementScale), nil
		default:
		}

		if err := s.sched.NextFrame(ctx); err != nil {
			return nil, err
		}
		if err := s.renderer.Clear(); err != nil {
			return nil, err
		}
		frames++
	}
}

func (s *Session) fallbackMaterial() material.Material {
	t := s.cfg.Toroids
	mat := material.NewPhong(t.Color.RGB(), t.Shininess)
	mat.Specular = t.Specular.RGB()
	mat.Sided = true
	return mat
}

// idle presents empty frames until the host closes.
func (s *Session) idle(ctx context.Context) error {
	for {
		if err := s.sched.NextFrame(ctx); err != nil {
			if s.stopped(ctx, err) {
				return nil
			}
			return err
		}
		if err := s.renderer.Clear(); err != nil {
			return err
		}
	}
}

// stopped reports whether err is a normal end of the session: the host
// closed or the caller cancelled ctx.
func (s *Session) stopped(ctx context.Context, err error) bool {
	if errors.Is(err, animation.ErrHostClosed) {
		return true
	}
	return ctx.Err() != nil && errors.Is(err, ctx.Err())
}
