// Package main is the entry point for the toroids viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/toroids/internal/app"
	"github.com/Faultbox/toroids/internal/asset"
	"github.com/Faultbox/toroids/internal/bundle"
	"github.com/Faultbox/toroids/internal/config"
	"github.com/Faultbox/toroids/internal/engine/camera"
	"github.com/Faultbox/toroids/internal/engine/debug"
	"github.com/Faultbox/toroids/internal/engine/input"
	"github.com/Faultbox/toroids/internal/engine/renderer"
	"github.com/Faultbox/toroids/internal/engine/window"
	"github.com/Faultbox/toroids/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.DumpPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := logger.Init(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Toroids ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("toroids error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("closed normally")
}

func run(cfg *config.Config) error {
	win, err := window.New("Toroids", cfg.Graphics)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Close()

	width, height := win.DrawableSize()
	r, err := renderer.New(renderer.OptionsFrom(cfg, width, height))
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	defer r.Close()

	var loader bundle.Loader
	if cfg.Render.TexturesOn {
		loader = asset.NewLoader(asset.WithCache(asset.NewCache()))
	}

	controls := camera.NewControls(cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	controls.DragSensitivity = cfg.Camera.DragSensitivity
	controls.ZoomSensitivity = cfg.Camera.ZoomSensitivity

	capture := debug.NewScreenshotCapture(cfg.Capture.Dir, "toroids", debug.Format(cfg.Capture.Format))
	host := app.NewHost(win, input.New(), r, controls, capture)
	session := app.NewSession(cfg, loader, r, host, controls)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return session.Run(ctx)
}
