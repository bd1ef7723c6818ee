package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "MidgardGallery")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MidgardGallery")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "midgard-gallery")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "midgard-gallery")
	}
}

// Validate rejects settings the gallery cannot start with.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Graphics.FOV <= 0 || c.Graphics.FOV >= 180 {
		return fmt.Errorf("invalid fov %g", c.Graphics.FOV)
	}
	if t := c.Gallery.Tiles; t.Amount <= 0 || t.Size <= 0 {
		return fmt.Errorf("invalid tiles: amount=%d size=%g", t.Amount, t.Size)
	}
	if c.Gallery.TransitionDuration <= 0 {
		return fmt.Errorf("invalid transition duration %v", c.Gallery.TransitionDuration)
	}
	return nil
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return err
	}

	// A file that names only an image directory replaces the default list.
	var probe struct {
		Gallery struct {
			Images    []ImageConfig `yaml:"images"`
			ImagesDir string        `yaml:"images_dir"`
		} `yaml:"gallery"`
	}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe.Gallery.ImagesDir != "" && len(probe.Gallery.Images) == 0 {
		cfg.Gallery.Images = nil
	}
	return nil
}
