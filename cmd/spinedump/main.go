//go:build spinec

// Package main loads a skeleton, poses it and prints every slot's
// attachment and world vertices as YAML.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-spine/internal/config"
	"github.com/Faultbox/midgard-spine/internal/dump"
	"github.com/Faultbox/midgard-spine/internal/logger"
	"github.com/Faultbox/midgard-spine/pkg/spine/spinec"
)

var flagTime = flag.Float64("time", 0, "Seconds to advance the animation before dumping")

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err == nil {
		err = cfg.Validate()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so stdout stays valid YAML.
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("dump failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	sc := cfg.Skeleton
	atlas, err := spinec.LoadAtlas(sc.Atlas)
	if err != nil {
		return err
	}
	defer atlas.Dispose()

	data, err := spinec.LoadSkeletonData(atlas, sc.Path, sc.Scale)
	if err != nil {
		return err
	}
	defer data.Dispose()

	inst, err := spinec.NewInstance(data)
	if err != nil {
		return err
	}
	defer inst.Dispose()

	if sc.Skin != "" {
		if err := inst.SetSkin(sc.Skin); err != nil {
			return err
		}
	}
	if sc.Animation != "" {
		if err := inst.SetAnimation(0, sc.Animation, sc.Loop); err != nil {
			return err
		}
	}
	inst.Update(float32(*flagTime))

	report := dump.Build(inst.Skeleton(), dump.Options{
		Checked:     cfg.Render.Checked,
		LengthLimit: cfg.Render.LengthLimit,
	})
	return report.Write(os.Stdout)
}
