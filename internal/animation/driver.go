// Package animation advances the ring spin and camera sweep once per frame.
package animation

import (
	"context"
	"errors"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/toroids/internal/builder"
	"github.com/Faultbox/toroids/internal/config"
	"github.com/Faultbox/toroids/internal/engine/camera"
	"github.com/Faultbox/toroids/internal/logger"
	"github.com/Faultbox/toroids/pkg/math"
)

// ErrHostClosed is returned by a FrameScheduler when the window is gone.
// Run treats it as a normal end of the loop.
var ErrHostClosed = errors.New("animation: host closed")

// FrameScheduler blocks until the host is ready for the next frame.
type FrameScheduler interface {
	NextFrame(ctx context.Context) error
}

// CameraState is the orbit sweep position.
type CameraState struct {
	Angle     float64 // radians
	Direction int     // +1 or -1
}

// Options configures a Driver.
type Options struct {
	SpinStep float64 // radians per tick on each Euler axis

	Orbit       bool
	OrbitRadius float32
	OrbitHeight float32
	OrbitStep   float64
	OrbitMin    float64
	OrbitMax    float64

	LookAt   math.Vec3
	Controls *camera.Controls // optional user input, applied after re-aiming
}

// OptionsFrom reads the animation settings from config.
func OptionsFrom(cfg *config.Config, controls *camera.Controls) Options {
	c := cfg.Camera
	return Options{
		SpinStep:    cfg.Toroids.SpinStep,
		Orbit:       cfg.Render.CameraOrbitOn,
		OrbitRadius: c.OrbitRadius,
		OrbitHeight: c.OrbitHeight,
		OrbitStep:   c.OrbitStep,
		OrbitMin:    c.OrbitMin,
		OrbitMax:    c.OrbitMax,
		LookAt:      c.LookAt,
		Controls:    controls,
	}
}

// Driver mutates the scene handles once per tick and renders.
type Driver struct {
	handles *builder.Handles
	opts    Options

	base  []math.Vec3 // ring rotations at construction
	ticks uint64
	state CameraState
}

// New creates a driver. The orbit starts at OrbitMin heading up.
func New(h *builder.Handles, opts Options) *Driver {
	d := &Driver{
		handles: h,
		opts:    opts,
		state:   CameraState{Angle: opts.OrbitMin, Direction: 1},
	}
	for _, ring := range h.Toroids {
		d.base = append(d.base, ring.Rotation)
	}
	return d
}

// State returns the current orbit state.
func (d *Driver) State() CameraState {
	return d.state
}

// Ticks returns the number of completed ticks.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// SpinAngle returns the spin added to every Euler axis, in [0, 2π).
// It is derived from the tick count so rounding never accumulates.
func (d *Driver) SpinAngle() float64 {
	return gomath.Mod(float64(d.ticks)*d.opts.SpinStep, 2*gomath.Pi)
}

// Tick advances one frame: spin, orbit, re-aim, user controls, render.
func (d *Driver) Tick() error {
	d.ticks++

	spin := float32(d.SpinAngle())
	for i, ring := range d.handles.Toroids {
		ring.Rotation = d.base[i].Add(math.Vec3{X: spin, Y: spin, Z: spin})
	}

	cam := d.handles.Camera
	if d.opts.Orbit {
		d.advanceOrbit()
		a := d.state.Angle
		cam.Position = math.Vec3{
			X: d.opts.OrbitRadius * float32(gomath.Sin(a)),
			Y: d.opts.OrbitHeight,
			Z: d.opts.OrbitRadius * float32(gomath.Cos(a)),
		}
	}
	cam.LookAt(d.opts.LookAt)
	switch {
	case d.opts.Controls == nil:
	case d.opts.Orbit:
		// The sweep resets the position every tick, so user input is
		// kept as an offset from it.
		d.opts.Controls.Follow(cam)
	default:
		d.opts.Controls.Update(cam)
	}

	return d.handles.Render()
}

// advanceOrbit steps the sweep angle and bounces it off the arc ends.
func (d *Driver) advanceOrbit() {
	s := &d.state
	s.Angle += float64(s.Direction) * d.opts.OrbitStep
	switch {
	case s.Angle >= d.opts.OrbitMax:
		s.Angle = d.opts.OrbitMax
		s.Direction = -1
	case s.Angle <= d.opts.OrbitMin:
		s.Angle = d.opts.OrbitMin
		s.Direction = 1
	}
}

// Run ticks once per scheduled frame until the scheduler or ctx stops it.
// ErrHostClosed ends the loop without error.
func (d *Driver) Run(ctx context.Context, sched FrameScheduler) error {
	log := logger.Named("animation")
	log.Debug("animation started", zap.Bool("orbit", d.opts.Orbit), zap.Float64("spin_step", d.opts.SpinStep))

	for {
		if err := sched.NextFrame(ctx); err != nil {
			if errors.Is(err, ErrHostClosed) {
				log.Debug("host closed", zap.Uint64("ticks", d.ticks))
				return nil
			}
			return err
		}
		if err := d.Tick(); err != nil {
			return err
		}
	}
}
