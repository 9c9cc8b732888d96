package triangles

import (
	"errors"
	"fmt"
	"image/color"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/CyberTea0X/triangles3/board"
	"github.com/CyberTea0X/triangles3/gradient"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidConfig is wrapped by every Config validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// BackgroundFile is the cached gradient file name inside the data directory.
const BackgroundFile = "background.png"

// HexColor is a straight-alpha color written as "RRGGBB" or "RRGGBBAA",
// with an optional leading '#'.
type HexColor struct {
	color.NRGBA
}

// ParseHexColor parses "RRGGBB" or "RRGGBBAA". A missing alpha byte is 0xFF.
func ParseHexColor(s string) (HexColor, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return HexColor{}, fmt.Errorf("color %q: want 6 or 8 hex digits", s)
	}
	c, err := colorful.Hex("#" + h[:6])
	if err != nil {
		return HexColor{}, fmt.Errorf("color %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	a := uint64(0xff)
	if len(h) == 8 {
		a, err = strconv.ParseUint(h[6:], 16, 8)
		if err != nil {
			return HexColor{}, fmt.Errorf("color %q: alpha: %w", s, err)
		}
	}
	return HexColor{color.NRGBA{R: r, G: g, B: b, A: uint8(a)}}, nil
}

// MustHexColor is ParseHexColor for literals; it panics on malformed input.
func MustHexColor(s string) HexColor {
	c, err := ParseHexColor(s)
	if err != nil {
		panic("triangles: " + err.Error())
	}
	return c
}

// String formats the color as uppercase "RRGGBB", adding "AA" when not opaque.
func (c HexColor) String() string {
	s := fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
	if c.A != 0xff {
		s += fmt.Sprintf("%02X", c.A)
	}
	return s
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (c *HexColor) UnmarshalText(b []byte) error {
	v, err := ParseHexColor(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c HexColor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Color converts to a scene tint.
func (c HexColor) Color() Color {
	return ColorFromNRGBA(c.NRGBA)
}

// GradientConfig selects the colors and shape of the background gradient.
type GradientConfig struct {
	Color1 HexColor `toml:"color1"`
	Color2 HexColor `toml:"color2"`
	// Radius is a fraction of the shorter window side.
	Radius float64 `toml:"radius"`
	// Falloff is "saturating" (tanh) or "linear".
	Falloff string `toml:"falloff"`
	// Precision is "float32" or "float64".
	Precision string `toml:"precision"`
}

// Config holds everything the game host needs. Zero values are not usable;
// start from DefaultConfig.
type Config struct {
	// FieldScale is the number of cells per side, corners included.
	FieldScale int      `toml:"field_scale"`
	SquareBG   HexColor `toml:"square_bg"`

	Gradient GradientConfig `toml:"gradient"`

	// DataDir holds generated files (the background cache).
	DataDir string `toml:"data_dir"`
	// AssetsDir holds the shipped textures under triangles/.
	AssetsDir string `toml:"assets_dir"`

	// Seed feeds the triangle color picker. Zero picks a seed from the clock.
	Seed uint64 `toml:"seed"`

	RotateField bool `toml:"rotate_field"`
	ShowFPS     bool `toml:"show_fps"`
	Debug       bool `toml:"debug"`

	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		FieldScale: 8,
		SquareBG:   MustHexColor("911C8B"),
		Gradient: GradientConfig{
			Color1:    HexColor{color.NRGBA{R: 255, G: 255, B: 255, A: 255}},
			Color2:    HexColor{color.NRGBA{R: 145, G: 28, B: 139, A: 255}},
			Radius:    0.25,
			Falloff:   gradient.Saturating.String(),
			Precision: gradient.Float32.String(),
		},
		DataDir:   "./assets",
		AssetsDir: "./assets",
		Title:     "Triangles",
		Width:     1280,
		Height:    720,
	}
}

// LoadConfig reads a TOML file over the defaults. Keys missing from the
// file keep their default values; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys %s: %w",
			path, strings.Join(keys, ", "), ErrInvalidConfig)
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.FieldScale < board.MinScale {
		return fmt.Errorf("field_scale %d: must be at least %d: %w", c.FieldScale, board.MinScale, ErrInvalidConfig)
	}
	if _, err := c.GradientSpec(1, 1); err != nil {
		return err
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size %dx%d: must be positive: %w", c.Width, c.Height, ErrInvalidConfig)
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir: must not be empty: %w", ErrInvalidConfig)
	}
	return nil
}

// GradientSpec builds the synthesis input for a w x h canvas.
func (c Config) GradientSpec(w, h int) (gradient.Spec, error) {
	falloff, err := gradient.ParseFalloff(c.Gradient.Falloff)
	if err != nil {
		return gradient.Spec{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	precision, err := gradient.ParsePrecision(c.Gradient.Precision)
	if err != nil {
		return gradient.Spec{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	spec := gradient.Spec{
		Width:     w,
		Height:    h,
		Radius:    c.Gradient.Radius,
		Color1:    c.Gradient.Color1.NRGBA,
		Color2:    c.Gradient.Color2.NRGBA,
		Falloff:   falloff,
		Precision: precision,
	}
	if err := spec.Validate(); err != nil {
		return gradient.Spec{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return spec, nil
}

// BackgroundPath is the location of the cached gradient image.
func (c Config) BackgroundPath() string {
	return filepath.Join(c.DataDir, BackgroundFile)
}

// TrianglesDir is the directory holding the triangle textures.
func (c Config) TrianglesDir() string {
	return filepath.Join(c.AssetsDir, "triangles")
}
