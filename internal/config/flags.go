package config

import "flag"

var (
	flagConfig    = flag.String("config", "", "Path to config file")
	flagDebug     = flag.Bool("debug", false, "Enable debug logging")
	flagAtlas     = flag.String("atlas", "", "Atlas file")
	flagSkeleton  = flag.String("skeleton", "", "Skeleton file (.json or .skel)")
	flagAnimation = flag.String("animation", "", "Animation to play")
	flagScale     = flag.Float64("scale", 0, "Skeleton scale")
	flagChecked   = flag.Bool("checked", false, "Validate native buffers every frame")
	flagNoWatch   = flag.Bool("no-watch", false, "Disable hot reload")
	flagMute      = flag.Bool("mute", false, "Disable event audio")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagAtlas != "" {
		cfg.Skeleton.Atlas = *flagAtlas
	}
	if *flagSkeleton != "" {
		cfg.Skeleton.Path = *flagSkeleton
	}
	if *flagAnimation != "" {
		cfg.Skeleton.Animation = *flagAnimation
	}
	if *flagScale > 0 {
		cfg.Skeleton.Scale = float32(*flagScale)
	}
	if *flagChecked {
		cfg.Render.Checked = true
	}
	if *flagNoWatch {
		cfg.Watch.Enabled = false
	}
	if *flagMute {
		cfg.Audio.Enabled = false
	}
}
