package gradient

import (
	"errors"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	if m, ok := img.(*image.NRGBA); ok {
		return m.NRGBAAt(x, y)
	}
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func channelDiff(a, b uint8) int {
	d := int(a) - int(b)
	if d < 0 {
		return -d
	}
	return d
}

func assertRoundTrip(t *testing.T, s Spec, path string) {
	t.Helper()
	img, err := Synthesize(s)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if err := Save(img, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Fatalf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			have, want := nrgbaAt(got, x, y), s.At(x, y)
			if channelDiff(have.R, want.R) > 1 || channelDiff(have.G, want.G) > 1 ||
				channelDiff(have.B, want.B) > 1 || channelDiff(have.A, want.A) > 1 {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, have, want)
			}
		}
	}
}

func TestRoundTripPNG(t *testing.T) {
	for _, m := range allModes {
		t.Run(m.name, func(t *testing.T) {
			s := testSpec(m.falloff, m.precision)
			s.Width, s.Height = 50, 30
			assertRoundTrip(t, s, filepath.Join(t.TempDir(), "background.png"))
		})
	}
}

func TestRoundTripTranslucentPNG(t *testing.T) {
	s := testSpec(Saturating, Float32)
	s.Color2 = color.NRGBA{R: 0, G: 90, B: 200, A: 64}
	assertRoundTrip(t, s, filepath.Join(t.TempDir(), "translucent.PNG"))
}

func TestRoundTripTIFF(t *testing.T) {
	s := testSpec(Saturating, Float64)
	s.Color2 = color.NRGBA{R: 0, G: 90, B: 200, A: 128}
	assertRoundTrip(t, s, filepath.Join(t.TempDir(), "background.tiff"))
}

func TestSaveBMP(t *testing.T) {
	s := testSpec(Saturating, Float32)
	img, err := Synthesize(s)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "background.bmp")
	if err := Save(img, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Bounds() != img.Bounds() {
		t.Errorf("bounds = %v, want %v", got.Bounds(), img.Bounds())
	}
}

func TestSaveUnsupportedFormat(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	path := filepath.Join(t.TempDir(), "background.jpg")

	err := Save(img, path)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Save = %v, want ErrUnsupportedFormat", err)
	}
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("Save = %T, want *EncodingError", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, fs.ErrNotExist) {
		t.Errorf("file should not be created, stat = %v", statErr)
	}
}

func TestSaveMissingDirectory(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	path := filepath.Join(t.TempDir(), "missing", "background.png")

	err := Save(img, path)
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("Save = %v, want *IOError", err)
	}
	if ioErr.Op != "create" {
		t.Errorf("Op = %q, want create", ioErr.Op)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Save = %v, want fs.ErrNotExist in chain", err)
	}
}

func TestSaveEmptyImage(t *testing.T) {
	// PNG cannot represent a zero-sized image.
	img := image.NewNRGBA(image.Rect(0, 0, 0, 0))
	path := filepath.Join(t.TempDir(), "empty.png")

	err := Save(img, path)
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("Save = %v, want *EncodingError", err)
	}
	if _, statErr := os.Stat(path); !errors.Is(statErr, fs.ErrNotExist) {
		t.Errorf("partial file should be removed, stat = %v", statErr)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "nope.png"))
	var ioErr *IOError
	if !errors.As(err, &ioErr) {
		t.Errorf("Load(missing) = %v, want *IOError", err)
	}

	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = Load(garbage)
	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Errorf("Load(garbage) = %v, want *EncodingError", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
		ok   bool
	}{
		{"a/b/background.png", FormatPNG, true},
		{"BG.PNG", FormatPNG, true},
		{"bg.bmp", FormatBMP, true},
		{"bg.tif", FormatTIFF, true},
		{"bg.tiff", FormatTIFF, true},
		{"bg.jpeg", 0, false},
		{"bg", 0, false},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err == nil) != tt.ok {
			t.Errorf("FormatFromPath(%q) err = %v, ok %v", tt.path, err, tt.ok)
			continue
		}
		if tt.ok && got != tt.want {
			t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}
