package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/CyberTea0X/triangles3"
)

func TestBuildConfigDefaults(t *testing.T) {
	o, err := parseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := buildConfig(o)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FieldScale != 8 || cfg.RotateField || cfg.ShowFPS {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestBuildConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triangles.toml")
	body := "field_scale = 6\nseed = 3\nshow_fps = true\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	o, err := parseFlags([]string{"-config", path, "-scale", "10", "-rotate", "-data", "/tmp/x"})
	if err != nil {
		t.Fatal(err)
	}
	cfg, err := buildConfig(o)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FieldScale != 10 {
		t.Errorf("FieldScale = %d, want flag value 10", cfg.FieldScale)
	}
	if cfg.Seed != 3 || !cfg.ShowFPS {
		t.Errorf("file values lost: seed %d fps %v", cfg.Seed, cfg.ShowFPS)
	}
	if !cfg.RotateField || cfg.DataDir != "/tmp/x" {
		t.Errorf("flags not applied: %+v", cfg)
	}
}

func TestBuildConfigRejectsSmallScale(t *testing.T) {
	o, err := parseFlags([]string{"-scale", "2"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := buildConfig(o); !errors.Is(err, triangles.ErrInvalidConfig) {
		t.Errorf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestParseFlagsUnknown(t *testing.T) {
	if _, err := parseFlags([]string{"-nope"}); err == nil {
		t.Error("unknown flag should fail")
	}
}
