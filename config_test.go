package triangles

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/CyberTea0X/triangles3/gradient"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.FieldScale != 8 {
		t.Errorf("FieldScale = %d, want 8", cfg.FieldScale)
	}
	if got := cfg.SquareBG.String(); got != "911C8B" {
		t.Errorf("SquareBG = %s, want 911C8B", got)
	}
	if cfg.Gradient.Color2.NRGBA != (color.NRGBA{145, 28, 139, 255}) {
		t.Errorf("Color2 = %v", cfg.Gradient.Color2)
	}
	if cfg.BackgroundPath() != filepath.Join("assets", "background.png") {
		t.Errorf("BackgroundPath = %s", cfg.BackgroundPath())
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    color.NRGBA
		wantErr bool
	}{
		{"911C8B", color.NRGBA{0x91, 0x1c, 0x8b, 0xff}, false},
		{"#911c8b", color.NRGBA{0x91, 0x1c, 0x8b, 0xff}, false},
		{"00000080", color.NRGBA{0, 0, 0, 0x80}, false},
		{" #FFFFFF ", color.NRGBA{255, 255, 255, 255}, false},
		{"FFF", color.NRGBA{}, true},
		{"GG0000", color.NRGBA{}, true},
		{"000000ZZ", color.NRGBA{}, true},
		{"", color.NRGBA{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseHexColor(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHexColor(%q): %v", tt.in, err)
			}
			if got.NRGBA != tt.want {
				t.Errorf("ParseHexColor(%q) = %v, want %v", tt.in, got.NRGBA, tt.want)
			}
		})
	}
}

func TestHexColorString(t *testing.T) {
	if s := MustHexColor("#0a0B0c").String(); s != "0A0B0C" {
		t.Errorf("String = %s", s)
	}
	if s := MustHexColor("0A0B0C40").String(); s != "0A0B0C40" {
		t.Errorf("String = %s", s)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "triangles.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
field_scale = 6
square_bg = "#112233"
seed = 42

[gradient]
color2 = "000000"
falloff = "linear"
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.FieldScale != 6 || cfg.Seed != 42 {
		t.Errorf("FieldScale, Seed = %d, %d", cfg.FieldScale, cfg.Seed)
	}
	if cfg.SquareBG.String() != "112233" {
		t.Errorf("SquareBG = %s", cfg.SquareBG)
	}
	if cfg.Gradient.Color2.String() != "000000" {
		t.Errorf("Color2 = %s", cfg.Gradient.Color2)
	}
	// Untouched keys keep defaults.
	if cfg.Gradient.Radius != 0.25 || cfg.Gradient.Color1.String() != "FFFFFF" {
		t.Errorf("defaults lost: %+v", cfg.Gradient)
	}
	spec, err := cfg.GradientSpec(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	if spec.Falloff != gradient.Linear {
		t.Errorf("Falloff = %v, want linear", spec.Falloff)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}
	if _, err := LoadConfig(writeConfig(t, `field_scael = 6`)); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("unknown key: err = %v, want ErrInvalidConfig", err)
	}
	if _, err := LoadConfig(writeConfig(t, `square_bg = "purple"`)); err == nil {
		t.Error("bad color should fail")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		is     error
	}{
		{"scale too small", func(c *Config) { c.FieldScale = 2 }, ErrInvalidConfig},
		{"zero radius", func(c *Config) { c.Gradient.Radius = 0 }, gradient.ErrDegenerateRadius},
		{"unknown falloff", func(c *Config) { c.Gradient.Falloff = "cubic" }, ErrInvalidConfig},
		{"unknown precision", func(c *Config) { c.Gradient.Precision = "half" }, ErrInvalidConfig},
		{"empty window", func(c *Config) { c.Width = 0 }, ErrInvalidConfig},
		{"empty data dir", func(c *Config) { c.DataDir = "" }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if !errors.Is(err, tt.is) {
				t.Errorf("Validate() = %v, want %v", err, tt.is)
			}
		})
	}
}
