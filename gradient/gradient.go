// Package gradient synthesizes the radial background image: a blend from
// one color at the canvas center to another towards the edges.
//
// Synthesis is pure and CPU bound. Rows are independent, so the pixel loop
// is sharded across goroutines with no synchronization beyond the final
// join. The only side effect lives in Save.
package gradient

import (
	"image"
	"image/color"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Falloff maps the normalized squared distance d²/R² to a blend factor.
type Falloff uint8

const (
	// Saturating uses t = tanh(d²/R²): a rounded transition with a long
	// tail that approaches Color2 without reaching it.
	Saturating Falloff = iota
	// Linear uses t = d²/R² unclamped. Pixels beyond the radius
	// extrapolate past Color2 and wrap on channel conversion.
	Linear
)

// String returns the falloff name used in configuration files.
func (f Falloff) String() string {
	switch f {
	case Saturating:
		return "saturating"
	case Linear:
		return "linear"
	default:
		return "unknown"
	}
}

// ParseFalloff converts a configuration name to a Falloff.
func ParseFalloff(s string) (Falloff, error) {
	switch s {
	case "saturating", "tanh", "":
		return Saturating, nil
	case "linear":
		return Linear, nil
	}
	return 0, &ConfigError{Field: "falloff", Value: s, Err: errUnknownName}
}

// Precision selects the float width used for the blend arithmetic.
type Precision uint8

const (
	// Float32 computes every step in float32.
	Float32 Precision = iota
	// Float64 computes every step in float64.
	Float64
)

// String returns the precision name used in configuration files.
func (p Precision) String() string {
	switch p {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// ParsePrecision converts a configuration name to a Precision.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "float32", "f32", "":
		return Float32, nil
	case "float64", "f64":
		return Float64, nil
	}
	return 0, &ConfigError{Field: "precision", Value: s, Err: errUnknownName}
}

// Spec is the input to Synthesize.
type Spec struct {
	// Width and Height are the canvas size in pixels.
	Width, Height int
	// Radius is a fraction of min(Width, Height). Values in (0, 1] give
	// the intended look; larger values are allowed.
	Radius float64
	// Color1 is the center color, Color2 the color at the radius.
	Color1, Color2 color.NRGBA

	Falloff   Falloff
	Precision Precision

	// Workers is the number of row shards. Zero means GOMAXPROCS.
	Workers int
}

// Validate rejects specs that cannot produce a defined image: an empty
// canvas, a canvas whose pixel buffer would not fit in an int, or a radius
// that is not a positive finite number. The radius must also keep R² a
// positive finite number in the selected precision. A degenerate radius is
// never clamped.
func (s Spec) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return &ConfigError{Field: "size", Value: sizeString(s.Width, s.Height), Err: ErrEmptyCanvas}
	}
	if s.Width > math.MaxInt/4/s.Height {
		return &ConfigError{Field: "size", Value: sizeString(s.Width, s.Height), Err: ErrCanvasTooLarge}
	}
	if !(s.Radius > 0) || math.IsInf(s.Radius, 0) {
		return &ConfigError{Field: "radius", Value: floatString(s.Radius), Err: ErrDegenerateRadius}
	}
	r2, r2f := radiusSquared(s)
	if s.Precision == Float32 {
		r2 = float64(r2f)
	}
	if r2 == 0 || math.IsInf(r2, 0) {
		return &ConfigError{Field: "radius", Value: floatString(s.Radius), Err: ErrDegenerateRadius}
	}
	return nil
}

// radiusSquared returns R² = (min(w, h)·radius)² in both precisions.
func radiusSquared(s Spec) (float64, float32) {
	r := float64(min(s.Width, s.Height)) * s.Radius
	rf := float32(min(s.Width, s.Height)) * float32(s.Radius)
	return r * r, rf * rf
}

// At returns the color of pixel (x, y) as computed by the blend formula.
// Synthesize produces exactly these values.
func (s Spec) At(x, y int) color.NRGBA {
	k := newKernel(s)
	return k.at(x, y)
}

// Synthesize renders the gradient described by spec into a new buffer.
// Every pixel of the returned image is written.
func Synthesize(spec Spec) (*image.NRGBA, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	img := image.NewNRGBA(image.Rect(0, 0, spec.Width, spec.Height))
	k := newKernel(spec)

	shards := spec.Workers
	if shards <= 0 {
		shards = runtime.GOMAXPROCS(0)
	}
	shards = min(shards, spec.Height)
	band := (spec.Height + shards - 1) / shards

	var g errgroup.Group
	for y0 := 0; y0 < spec.Height; y0 += band {
		y1 := min(y0+band, spec.Height)
		g.Go(func() error {
			k.fillRows(img, y0, y1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return img, nil
}

// kernel holds the per-image constants of the blend formula in both
// precisions, so the pixel loop does no setup work.
type kernel struct {
	falloff   Falloff
	precision Precision

	c1, c2 [4]float64
	cx, cy float64
	r2     float64

	c1f, c2f [4]float32
	cxf, cyf float32
	r2f      float32
}

func newKernel(s Spec) kernel {
	k := kernel{falloff: s.Falloff, precision: s.Precision}
	c1 := [4]uint8{s.Color1.R, s.Color1.G, s.Color1.B, s.Color1.A}
	c2 := [4]uint8{s.Color2.R, s.Color2.G, s.Color2.B, s.Color2.A}
	for i := range 4 {
		k.c1[i], k.c2[i] = float64(c1[i]), float64(c2[i])
		k.c1f[i], k.c2f[i] = float32(c1[i]), float32(c2[i])
	}

	k.cx = float64(s.Width) / 2
	k.cy = float64(s.Height) / 2
	k.cxf = float32(s.Width) / 2
	k.cyf = float32(s.Height) / 2
	k.r2, k.r2f = radiusSquared(s)
	return k
}

func (k *kernel) fillRows(img *image.NRGBA, y0, y1 int) {
	w := img.Rect.Dx()
	for y := y0; y < y1; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+4*w]
		for x := 0; x < w; x++ {
			c := k.at(x, y)
			p := row[4*x : 4*x+4 : 4*x+4]
			p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
		}
	}
}

func (k *kernel) at(x, y int) color.NRGBA {
	var ch [4]uint8
	if k.precision == Float32 {
		dx := float32(x) - k.cxf
		dy := float32(y) - k.cyf
		t := k.factor32((dx*dx + dy*dy) / k.r2f)
		for i := range 4 {
			ch[i] = toChannel(float64(k.c1f[i]*(1-t) + k.c2f[i]*t))
		}
	} else {
		dx := float64(x) - k.cx
		dy := float64(y) - k.cy
		t := k.factor64((dx*dx + dy*dy) / k.r2)
		for i := range 4 {
			ch[i] = toChannel(k.c1[i]*(1-t) + k.c2[i]*t)
		}
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}
}

func (k *kernel) factor32(ratio float32) float32 {
	if k.falloff == Linear {
		return ratio
	}
	return float32(math.Tanh(float64(ratio)))
}

func (k *kernel) factor64(ratio float64) float64 {
	if k.falloff == Linear {
		return ratio
	}
	return math.Tanh(ratio)
}

// toChannel converts a blended channel value to a byte by truncating
// toward zero and wrapping modulo 256. Out-of-range values are not
// saturated. NaN and infinities become 0.
func toChannel(v float64) uint8 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	w := math.Mod(math.Trunc(v), 256)
	if w < 0 {
		w += 256
	}
	return uint8(w)
}
