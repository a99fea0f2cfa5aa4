package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// ErrNoSkeleton is returned by Validate when no skeleton was configured.
var ErrNoSkeleton = errors.New("config: skeleton path and atlas are required")

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	applyFlags(cfg)

	return cfg, nil
}

// Validate reports settings the tools cannot run with.
func (c *Config) Validate() error {
	if c.Skeleton.Path == "" || c.Skeleton.Atlas == "" {
		return ErrNoSkeleton
	}
	if c.Skeleton.Scale <= 0 {
		return fmt.Errorf("config: skeleton scale must be positive, got %g", c.Skeleton.Scale)
	}
	if c.Render.Checked && c.Render.LengthLimit <= 0 {
		return fmt.Errorf("config: render length_limit must be positive in checked mode, got %d", c.Render.LengthLimit)
	}
	return nil
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./spine.yaml",
		filepath.Join(ConfigDir(), "spine.yaml"),
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
		return filepath.Join(home, "Library", "Application Support", "MidgardSpine")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "MidgardSpine")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "midgard-spine")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "midgard-spine")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
