package gradient

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrEmptyCanvas is wrapped by ConfigError for a zero or negative size.
	ErrEmptyCanvas = errors.New("canvas width and height must be positive")
	// ErrCanvasTooLarge is wrapped by ConfigError when the pixel buffer of
	// the canvas would not fit in an int.
	ErrCanvasTooLarge = errors.New("canvas too large")
	// ErrDegenerateRadius is wrapped by ConfigError for a radius that is
	// zero, negative, NaN or infinite, or whose square is 0 or infinite in
	// the selected precision.
	ErrDegenerateRadius = errors.New("radius must be a positive finite fraction")
	// ErrUnsupportedFormat is wrapped by EncodingError when the file
	// extension names no known raster format.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	errUnknownName = errors.New("unknown name")
)

// ConfigError reports an invalid Spec or configuration value.
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gradient: invalid %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// EncodingError reports that an image could not be encoded to or decoded
// from the format selected by the path.
type EncodingError struct {
	Path   string
	Format string
	Err    error
}

func (e *EncodingError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("gradient: encode %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("gradient: %s %s: %v", e.Format, e.Path, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// IOError reports a filesystem failure while saving or loading.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("gradient: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func sizeString(w, h int) string {
	return strconv.Itoa(w) + "x" + strconv.Itoa(h)
}

func floatString(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
