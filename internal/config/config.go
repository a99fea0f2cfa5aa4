// Package config handles viewer and tool configuration.
package config

import (
	"path/filepath"
	"time"
)

// Config holds all settings for the spine tools.
type Config struct {
	Window   WindowConfig   `yaml:"window"`
	Skeleton SkeletonConfig `yaml:"skeleton"`
	Render   RenderConfig   `yaml:"render"`
	Watch    WatchConfig    `yaml:"watch"`
	Audio    AudioConfig    `yaml:"audio"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// WindowConfig holds display settings for the viewer.
type WindowConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	VSync  bool `yaml:"vsync"`
}

// SkeletonConfig selects the skeleton to load and how to pose it.
type SkeletonConfig struct {
	Atlas     string  `yaml:"atlas"`
	Path      string  `yaml:"path"` // .json or .skel
	Scale     float32 `yaml:"scale"`
	Animation string  `yaml:"animation"`
	Skin      string  `yaml:"skin"`
	Loop      bool    `yaml:"loop"`
}

// RenderConfig controls batch building.
type RenderConfig struct {
	// Checked validates native buffers and output sizing every frame.
	Checked bool `yaml:"checked"`
	// LengthLimit bounds native length fields in checked mode.
	LengthLimit   int        `yaml:"length_limit"`
	Premultiplied bool       `yaml:"premultiplied"`
	Background    [4]float32 `yaml:"background"`
}

// WatchConfig controls hot reload of skeleton files.
type WatchConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Debounce time.Duration `yaml:"debounce"`
}

// AudioConfig controls playback of event sounds.
type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
	// Dir is where event audio paths are resolved. Empty means the
	// skeleton file's directory.
	Dir string `yaml:"dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Skeleton: SkeletonConfig{
			Scale: 1,
			Loop:  true,
		},
		Render: RenderConfig{
			Checked:     false,
			LengthLimit: 1 << 16,
			Background:  [4]float32{0.1, 0.1, 0.15, 1},
		},
		Watch: WatchConfig{
			Enabled:  true,
			Debounce: 250 * time.Millisecond,
		},
		Audio: AudioConfig{
			Enabled: true,
			Volume:  1,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// AudioPath resolves an event's audio path. Absolute paths are kept.
func (c *Config) AudioPath(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	dir := c.Audio.Dir
	if dir == "" {
		dir = filepath.Dir(c.Skeleton.Path)
	}
	return filepath.Join(dir, rel)
}
