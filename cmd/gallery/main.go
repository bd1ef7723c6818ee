// Package main is the entry point for the Midgard gallery.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-gallery/internal/assets"
	"github.com/Faultbox/midgard-gallery/internal/config"
	"github.com/Faultbox/midgard-gallery/internal/engine/renderer"
	"github.com/Faultbox/midgard-gallery/internal/engine/scene"
	"github.com/Faultbox/midgard-gallery/internal/engine/window"
	"github.com/Faultbox/midgard-gallery/internal/gallery"
	"github.com/Faultbox/midgard-gallery/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("=== Midgard Gallery ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if config.WriteConfig() {
		path, err := cfg.Save()
		if err != nil {
			logger.Warn("failed to write config", zap.Error(err))
		} else {
			logger.Info("config written", zap.String("path", path))
		}
	}

	if config.Browse() {
		ok, err := browseImagesDir(&cfg.Gallery)
		if err != nil {
			logger.Error("folder dialog failed", zap.Error(err))
			logger.Sync()
			os.Exit(1)
		}
		if !ok {
			logger.Info("no folder chosen")
			logger.Sync()
			return
		}
		logger.Info("images folder chosen", zap.String("dir", cfg.Gallery.ImagesDir))
	}

	if err := run(cfg); err != nil {
		logger.Error("gallery error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	logger.Info("gallery closed normally")
	logger.Sync()
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := cfg.Gallery.Assets()
	if err != nil {
		return err
	}
	opts, err := galleryOptions(cfg.Gallery)
	if err != nil {
		return err
	}

	rc, err := renderer.New(renderer.Config{
		Window: window.Config{
			Title:      cfg.Graphics.Title,
			Width:      cfg.Graphics.Width,
			Height:     cfg.Graphics.Height,
			Fullscreen: cfg.Graphics.Fullscreen,
			VSync:      cfg.Graphics.VSync,
		},
		FOV:           cfg.Graphics.FOV,
		ScreenshotDir: cfg.Graphics.ScreenshotDir,
	})
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}

	loader := assets.NewLoader(rc, cfg.Gallery.MaxTextureSize)
	g, err := gallery.New(ctx, rc, a, loader, opts)
	if err != nil {
		rc.Dispose()
		return fmt.Errorf("creating gallery: %w", err)
	}
	defer g.Dispose()

	if err := rc.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func galleryOptions(gc config.GalleryConfig) (gallery.Options, error) {
	bg, err := scene.ParseHexColor(gc.Background)
	if err != nil {
		return gallery.Options{}, fmt.Errorf("background: %w", err)
	}

	opts := gallery.DefaultOptions()
	opts.Tiles = gallery.TileParams{Amount: gc.Tiles.Amount, Size: gc.Tiles.Size}
	opts.SceneScale = gc.SceneScale
	opts.Background = bg
	opts.CameraDistance = gc.CameraDistance
	opts.TransitionDuration = gc.TransitionDuration
	opts.LineOpacity = gc.LineOpacity
	return opts, nil
}
