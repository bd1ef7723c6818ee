package config

import (
	"flag"
	"fmt"
	"strings"
)

var (
	flagConfig      = flag.String("config", "", "Path to config file")
	flagDebug       = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed    = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen  = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth       = flag.Int("width", 0, "Window width")
	flagHeight      = flag.Int("height", 0, "Window height")
	flagImages      = flag.String("images", "", "Comma-separated image paths, shown in order")
	flagTiles       = flag.Int("tiles", 0, "Tiles per grid side")
	flagWriteConfig = flag.Bool("write-config", false, "Save the effective config to the user config dir")
	flagBrowse      = flag.Bool("browse", false, "Choose the image folder with a native dialog")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfig reports whether --write-config was given.
func WriteConfig() bool {
	return *flagWriteConfig
}

// Browse reports whether --browse was given.
func Browse() bool {
	return *flagBrowse
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagImages != "" {
		cfg.Gallery.Images = parseImageList(*flagImages)
		cfg.Gallery.ImagesDir = ""
	}
	if *flagTiles > 0 {
		cfg.Gallery.Tiles.Amount = *flagTiles
	}
}

// parseImageList turns "a.jpg, b.jpg" into image1..imageN.
func parseImageList(s string) []ImageConfig {
	var images []ImageConfig
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		images = append(images, ImageConfig{
			Key:  fmt.Sprintf("image%d", len(images)+1),
			Path: p,
		})
	}
	return images
}
