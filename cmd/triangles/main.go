// Triangles opens the puzzle board window: a generated radial gradient
// behind a diamond of colored squares, each carrying a triangle tile.
//
// Usage:
//
//	triangles [-config triangles.toml] [-data dir] [-assets dir] [-scale n] [-seed n] [-rotate] [-fps] [-debug] [-regen]
//
// Press Escape to quit.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/CyberTea0X/triangles3"
)

type options struct {
	config string
	data   string
	assets string
	scale  int
	seed   uint64
	rotate bool
	fps    bool
	debug  bool
	regen  bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("triangles", flag.ContinueOnError)
	fs.StringVar(&o.config, "config", "", "TOML config `file` (defaults apply when empty)")
	fs.StringVar(&o.data, "data", "", "directory for generated data such as the background cache")
	fs.StringVar(&o.assets, "assets", "", "directory holding triangles/*.png")
	fs.IntVar(&o.scale, "scale", 0, "cells per field side, corners included")
	fs.Uint64Var(&o.seed, "seed", 0, "seed for triangle colors (0 picks one from the clock)")
	fs.BoolVar(&o.rotate, "rotate", false, "turn the field by 45 degrees after startup")
	fs.BoolVar(&o.fps, "fps", false, "show the FPS counter")
	fs.BoolVar(&o.debug, "debug", false, "debug logging and per-frame render stats")
	fs.BoolVar(&o.regen, "regen", false, "delete the cached background so it is generated again")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return o, nil
}

// buildConfig loads the config file, if any, and applies flag overrides.
func buildConfig(o options) (triangles.Config, error) {
	cfg := triangles.DefaultConfig()
	if o.config != "" {
		var err error
		if cfg, err = triangles.LoadConfig(o.config); err != nil {
			return triangles.Config{}, err
		}
	}
	if o.data != "" {
		cfg.DataDir = o.data
	}
	if o.assets != "" {
		cfg.AssetsDir = o.assets
	}
	if o.scale != 0 {
		cfg.FieldScale = o.scale
	}
	if o.seed != 0 {
		cfg.Seed = o.seed
	}
	cfg.RotateField = cfg.RotateField || o.rotate
	cfg.ShowFPS = cfg.ShowFPS || o.fps
	cfg.Debug = cfg.Debug || o.debug
	return cfg, cfg.Validate()
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func run(args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	cfg, err := buildConfig(o)
	if err != nil {
		return err
	}
	triangles.SetLogger(newLogger(cfg.Debug))

	if o.regen {
		if err := triangles.RemoveBackground(cfg.BackgroundPath()); err != nil {
			return err
		}
	}
	return triangles.Run(cfg)
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "triangles: %v\n", err)
		os.Exit(1)
	}
}
