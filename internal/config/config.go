// Package config handles gallery configuration loading and management.
package config

import "time"

// Config holds all gallery settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Gallery  GalleryConfig  `yaml:"gallery"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FOV        float32 `yaml:"fov"` // vertical, degrees
	Title      string  `yaml:"title"`

	ScreenshotDir string `yaml:"screenshot_dir"`
}

// GalleryConfig holds the scene and asset settings.
type GalleryConfig struct {
	Images    []ImageConfig `yaml:"images"`
	ImagesDir string        `yaml:"images_dir"` // used when Images is empty

	Tiles              TilesConfig   `yaml:"tiles"`
	SceneScale         float32       `yaml:"scene_scale"`
	Background         string        `yaml:"background"`
	CameraDistance     float32       `yaml:"camera_distance"`
	TransitionDuration time.Duration `yaml:"transition_duration"`
	MaxTextureSize     int           `yaml:"max_texture_size"`
	LineOpacity        float32       `yaml:"line_opacity"`
}

// ImageConfig maps an asset key to an image file.
type ImageConfig struct {
	Key  string `yaml:"key"`
	Path string `yaml:"path"`
}

// TilesConfig sizes the tile grid.
type TilesConfig struct {
	Amount int     `yaml:"amount"`
	Size   float32 `yaml:"size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FOV:        50,
			Title:      "Midgard Gallery",

			ScreenshotDir: "screenshots",
		},
		Gallery: GalleryConfig{
			Images: []ImageConfig{
				{Key: "image1", Path: "resources/wlop1.jpg"},
				{Key: "image2", Path: "resources/wlop2.jpg"},
				{Key: "image3", Path: "resources/wlop3.jpg"},
				{Key: "image4", Path: "resources/wlop4.jpg"},
			},
			Tiles:              TilesConfig{Amount: 30, Size: 0.1},
			SceneScale:         1.1,
			Background:         "#000",
			CameraDistance:     1,
			TransitionDuration: 2 * time.Second,
			MaxTextureSize:     4096,
			LineOpacity:        0.15,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
