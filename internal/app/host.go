package app

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/toroids/internal/animation"
	"github.com/Faultbox/toroids/internal/engine/camera"
	"github.com/Faultbox/toroids/internal/engine/input"
	"github.com/Faultbox/toroids/internal/logger"
)

// Surface is the presentable window. *window.Window satisfies it.
type Surface interface {
	SwapBuffers()
	DrawableSize() (int32, int32)
	Title() string
	SetTitle(title string)
}

// EventSource polls input once per frame. *input.Input satisfies it.
type EventSource interface {
	Update() bool
	Events() []input.Event
	IsButtonHeld(button uint8) bool
}

// FrameTarget is the part of the renderer the host drives directly.
type FrameTarget interface {
	Resize(width, height int32)
	Capture() *image.RGBA
}

// Capturer writes a captured frame somewhere and returns its location.
type Capturer interface {
	CaptureFromImage(img image.Image) (string, error)
}

// Host paces the frame loop against the window: it presents the previous
// frame, polls input and routes it. It implements animation.FrameScheduler.
type Host struct {
	surface  Surface
	events   EventSource
	target   FrameTarget
	controls *camera.Controls
	capture  Capturer

	title      string
	presented  bool
	frames     int
	frameTimer time.Time
	now        func() time.Time
	log        *zap.Logger
}

// NewHost creates a host. controls and capture may be nil.
func NewHost(surface Surface, events EventSource, target FrameTarget, controls *camera.Controls, capture Capturer) *Host {
	return &Host{
		surface:  surface,
		events:   events,
		target:   target,
		controls: controls,
		capture:  capture,
		title:    surface.Title(),
		now:      time.Now,
		log:      logger.Named("host"),
	}
}

// NextFrame presents the last frame and handles this frame's input.
// It returns animation.ErrHostClosed once the window is closed or ESC is pressed.
func (h *Host) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if h.presented {
		h.surface.SwapBuffers()
		h.countFrame()
	}
	h.presented = true

	if h.events.Update() {
		return animation.ErrHostClosed
	}

	for _, ev := range h.events.Events() {
		switch ev.Type {
		case input.EventQuit:
			return animation.ErrHostClosed
		case input.EventWindowResize:
			// Event sizes are in points; the GL surface may be larger on HiDPI.
			w, ht := h.surface.DrawableSize()
			h.target.Resize(w, ht)
		case input.EventKeyDown:
			switch ev.Key {
			case sdl.SCANCODE_ESCAPE:
				return animation.ErrHostClosed
			case sdl.SCANCODE_F12:
				h.screenshot()
			}
		case input.EventMouseMove:
			if h.controls != nil && h.events.IsButtonHeld(sdl.BUTTON_LEFT) {
				h.controls.HandleDrag(ev.DeltaX, ev.DeltaY)
			}
		case input.EventMouseWheel:
			if h.controls != nil {
				h.controls.HandleZoom(ev.DeltaY)
			}
		}
	}
	return nil
}

func (h *Host) countFrame() {
	now := h.now()
	if h.frameTimer.IsZero() {
		h.frameTimer = now
	}
	h.frames++
	if elapsed := now.Sub(h.frameTimer); elapsed >= time.Second {
		fps := float64(h.frames) / elapsed.Seconds()
		h.log.Debug("fps", zap.Float64("fps", fps))
		h.surface.SetTitle(fmt.Sprintf("%s - %.0f FPS", h.title, fps))
		h.frames = 0
		h.frameTimer = now
	}
}

func (h *Host) screenshot() {
	if h.capture == nil {
		return
	}
	path, err := h.capture.CaptureFromImage(h.target.Capture())
	if err != nil {
		h.log.Error("screenshot failed", zap.Error(err))
		return
	}
	h.log.Info("screenshot saved", zap.String("path", path))
}
