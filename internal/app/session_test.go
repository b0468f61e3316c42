package app

import (
	"context"
	"errors"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/toroids/internal/animation"
	"github.com/Faultbox/toroids/internal/bundle"
	"github.com/Faultbox/toroids/internal/config"
	"github.com/Faultbox/toroids/internal/engine/camera"
	"github.com/Faultbox/toroids/internal/engine/material"
	"github.com/Faultbox/toroids/internal/engine/scene"
	"github.com/Faultbox/toroids/internal/logger"
)

type fakeRenderer struct {
	renders int
	clears  int
}

func (r *fakeRenderer) Render(*scene.Scene, *camera.Camera) error {
	r.renders++
	return nil
}

func (r *fakeRenderer) Clear() error {
	r.clears++
	return nil
}

// scheduler grants frames until it runs out, then returns ErrHostClosed.
type scheduler struct {
	frames  int
	granted int
	delay   time.Duration
	onFrame func(s *scheduler)
}

func (s *scheduler) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.granted >= s.frames {
		return animation.ErrHostClosed
	}
	s.granted++
	if s.onFrame != nil {
		s.onFrame(s)
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return nil
}

// loader serves a 1x1 image per identifier. Identifiers in fail return an
// error; when gate is set every load waits for it or for ctx.
type loader struct {
	calls    atomic.Int32
	returned atomic.Int32
	fail     map[string]bool
	gate     chan struct{}
}

func (l *loader) Load(ctx context.Context, id string) (image.Image, error) {
	l.calls.Add(1)
	defer l.returned.Add(1)
	if l.gate != nil {
		select {
		case <-l.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if l.fail[id] {
		return nil, errors.New("decode failed")
	}
	return image.NewRGBA(image.Rect(0, 0, 1, 1)), nil
}

func texturedConfig() *config.Config {
	cfg := config.Default()
	cfg.Render.TexturesOn = true
	cfg.Textures.Color = "color.jpg"
	cfg.Textures.Roughness = "roughness.jpg"
	cfg.Textures.Metalness = "metalness.jpg"
	cfg.Textures.Environment = "environment.jpg"
	cfg.Textures.Displacement = "displacement.jpg"
	cfg.Textures.Normal = "normal.jpg"
	return cfg
}

func observe(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)
	t.Cleanup(logger.Set(zap.New(core)))
	return logs
}

func ringMaterial(t *testing.T, s *Session) material.Material {
	t.Helper()
	h := s.Handles()
	if h == nil {
		t.Fatal("scene was not built")
	}
	if len(h.Toroids) != 3 {
		t.Fatalf("expected 3 toroids, got %d", len(h.Toroids))
	}
	return h.Toroids[0].Material
}

func TestSessionFallbackNeverLoads(t *testing.T) {
	cfg := texturedConfig()
	cfg.Render.TexturesOn = false
	l := &loader{}
	r := &fakeRenderer{}
	sched := &scheduler{frames: 5}

	s := NewSession(cfg, l, r, sched, nil)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if n := l.calls.Load(); n != 0 {
		t.Errorf("expected no loads, got %d", n)
	}
	phong, ok := ringMaterial(t, s).(*material.Phong)
	if !ok {
		t.Fatalf("expected flat fallback material, got %T", ringMaterial(t, s))
	}
	if phong.Specular != cfg.Toroids.Specular.RGB() || phong.Shininess != cfg.Toroids.Shininess {
		t.Errorf("fallback specular %+v shininess %v", phong.Specular, phong.Shininess)
	}
	if !phong.DoubleSided() {
		t.Error("fallback material should draw both faces")
	}
	if r.renders != 5 || r.clears != 0 {
		t.Errorf("renders=%d clears=%d, want 5 and 0", r.renders, r.clears)
	}
	if s.Driver().Ticks() != 5 {
		t.Errorf("expected 5 ticks, got %d", s.Driver().Ticks())
	}
}

func TestSessionTexturedBuildsPhysical(t *testing.T) {
	cfg := texturedConfig()
	l := &loader{}
	r := &fakeRenderer{}
	sched := &scheduler{frames: 500, delay: time.Millisecond}
	sched.onFrame = func(s *scheduler) {
		if r.renders >= 3 {
			s.frames = s.granted
		}
	}

	s := NewSession(cfg, l, r, sched, nil)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	phys, ok := ringMaterial(t, s).(*material.Physical)
	if !ok {
		t.Fatalf("expected physical material, got %T", ringMaterial(t, s))
	}
	if phys.NormalScale != cfg.Textures.NormalScale || phys.DisplacementScale != cfg.Textures.DisplacementScale {
		t.Errorf("unexpected scales %v/%v", phys.NormalScale, phys.DisplacementScale)
	}
	if phys.ColorMap == nil || phys.NormalMap == nil || phys.EnvironmentMap == nil {
		t.Error("expected every map bound")
	}
	if n := l.calls.Load(); n != 6 {
		t.Errorf("expected 6 loads, got %d", n)
	}
	// Every granted frame is either an empty frame or a scene frame.
	if r.renders+r.clears != sched.granted {
		t.Errorf("renders=%d clears=%d, want %d frames total", r.renders, r.clears, sched.granted)
	}
}

func TestSessionPresentsEmptyFramesWhilePending(t *testing.T) {
	cfg := texturedConfig()
	l := &loader{gate: make(chan struct{})}
	r := &fakeRenderer{}
	var once sync.Once
	sched := &scheduler{frames: 500}
	sched.onFrame = func(s *scheduler) {
		if s.granted == 5 {
			once.Do(func() { close(l.gate) })
		}
		if s.granted > 5 {
			s.delay = time.Millisecond
		}
	}

	s := NewSession(cfg, l, r, sched, nil)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if r.clears < 4 {
		t.Errorf("expected empty frames while pending, got %d", r.clears)
	}
	if r.renders == 0 {
		t.Error("expected scene frames after the bundle resolved")
	}
	if _, ok := ringMaterial(t, s).(*material.Physical); !ok {
		t.Errorf("expected physical material, got %T", ringMaterial(t, s))
	}
}

func TestSessionLogsBundleFailureAndIdles(t *testing.T) {
	logs := observe(t)
	cfg := texturedConfig()
	l := &loader{fail: map[string]bool{"normal.jpg": true}}
	r := &fakeRenderer{}
	sched := &scheduler{frames: 10, delay: 2 * time.Millisecond}

	s := NewSession(cfg, l, r, sched, nil)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run should not fail on a bundle failure: %v", err)
	}

	if s.Handles() != nil {
		t.Error("scene must not be built after a bundle failure")
	}
	if r.renders != 0 {
		t.Errorf("expected no scene frames, got %d", r.renders)
	}
	if r.clears != 10 {
		t.Errorf("expected the session to idle on empty frames, got %d", r.clears)
	}

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(errs) != 1 {
		t.Fatalf("expected exactly one error log, got %d", len(errs))
	}
	if errs[0].Message != "texture bundle failed" {
		t.Errorf("unexpected message %q", errs[0].Message)
	}
	if role := errs[0].ContextMap()["role"]; role != bundle.RoleNormal.String() {
		t.Errorf("logged role %v, want %s", role, bundle.RoleNormal)
	}
}

func TestSessionTimeoutEndsPendingBundle(t *testing.T) {
	logs := observe(t)
	cfg := texturedConfig()
	cfg.Textures.Timeout = 20 * time.Millisecond
	l := &loader{gate: make(chan struct{})}
	r := &fakeRenderer{}
	sched := &scheduler{frames: 5000, delay: time.Millisecond}
	sched.onFrame = func(s *scheduler) {
		// Close the host shortly after the failure is reported.
		if logs.FilterMessage("texture bundle failed").Len() > 0 && s.frames > s.granted+3 {
			s.frames = s.granted + 3
		}
	}

	s := NewSession(cfg, l, r, sched, nil)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	failed := logs.FilterMessage("texture bundle failed").All()
	if len(failed) != 1 {
		t.Fatalf("expected one failure log, got %d", len(failed))
	}
	if aborted, _ := failed[0].ContextMap()["aborted"].(bool); !aborted {
		t.Error("expected the failure to be reported as aborted")
	}
	if s.Handles() != nil {
		t.Error("scene must not be built after a timeout")
	}
}

func TestSessionHostClosedWhilePending(t *testing.T) {
	logs := observe(t)
	cfg := texturedConfig()
	l := &loader{gate: make(chan struct{})}
	r := &fakeRenderer{}
	sched := &scheduler{frames: 3}

	s := NewSession(cfg, l, r, sched, nil)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if r.clears != 3 {
		t.Errorf("expected 3 empty frames, got %d", r.clears)
	}
	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 0 {
		t.Errorf("closing the host is not a failure, got %d error logs", n)
	}

	// Pending loads are cancelled once the session returns.
	deadline := time.Now().Add(2 * time.Second)
	for l.returned.Load() != l.calls.Load() {
		if time.Now().After(deadline) {
			t.Fatalf("%d of %d loads still running", l.calls.Load()-l.returned.Load(), l.calls.Load())
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSessionCancelledContext(t *testing.T) {
	cfg := texturedConfig()
	cfg.Render.TexturesOn = false
	r := &fakeRenderer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewSession(cfg, nil, r, &scheduler{frames: 10}, nil)
	if err := s.Run(ctx); err != nil {
		t.Fatalf("cancellation should end the session cleanly: %v", err)
	}
	if r.renders != 0 {
		t.Errorf("expected no frames, got %d", r.renders)
	}
}

func TestSessionMissingIdentifier(t *testing.T) {
	cfg := texturedConfig()
	cfg.Textures.Displacement = ""
	l := &loader{}

	s := NewSession(cfg, l, &fakeRenderer{}, &scheduler{frames: 100, delay: time.Millisecond}, nil)
	err := s.Run(context.Background())
	if !errors.Is(err, bundle.ErrMissingIdentifier) {
		t.Fatalf("expected ErrMissingIdentifier, got %v", err)
	}
	if n := l.calls.Load(); n != 0 {
		t.Errorf("expected no loads, got %d", n)
	}
}

func TestSessionWithoutLoader(t *testing.T) {
	s := NewSession(texturedConfig(), nil, &fakeRenderer{}, &scheduler{frames: 1}, nil)
	if err := s.Run(context.Background()); err == nil {
		t.Fatal("expected an error when texturing is on without a loader")
	}
}

func TestSessionAppliesControls(t *testing.T) {
	cfg := texturedConfig()
	cfg.Render.TexturesOn = false
	controls := camera.NewControls(cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	controls.HandleZoom(5)

	s := NewSession(cfg, nil, &fakeRenderer{}, &scheduler{frames: 1}, controls)
	if err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if controls.Pending() {
		t.Error("queued zoom should have been applied on the first tick")
	}
}
