// Triangles-preview renders the background gradient and the board layout in
// a truecolor terminal, two pixels per character cell. It needs no GPU and
// is handy for tuning colors and the field scale over SSH.
//
// Usage:
//
//	triangles-preview [-config triangles.toml] [-scale n] [-falloff saturating|linear]
//
// Press q, Escape or Ctrl-C to quit. The preview follows terminal resizes.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"

	"github.com/CyberTea0X/triangles3"
	"github.com/CyberTea0X/triangles3/board"
	"github.com/CyberTea0X/triangles3/gradient"
	"github.com/gdamore/tcell/v2"
)

const (
	// fieldSizeFraction matches the window layout of the game.
	fieldSizeFraction = 0.5
	upperHalfBlock    = '▀'
)

var backdropColor = color.NRGBA{A: 77}

func main() {
	configPath := flag.String("config", "", "TOML config `file` (defaults apply when empty)")
	scale := flag.Int("scale", 0, "cells per field side, corners included")
	falloff := flag.String("falloff", "", "gradient falloff: saturating or linear")
	flag.Parse()

	cfg, err := loadConfig(*configPath, *scale, *falloff)
	if err != nil {
		fmt.Fprintf(os.Stderr, "triangles-preview: %v\n", err)
		os.Exit(1)
	}
	if err := run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "triangles-preview: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string, scale int, falloff string) (triangles.Config, error) {
	cfg := triangles.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = triangles.LoadConfig(path); err != nil {
			return triangles.Config{}, err
		}
	}
	if scale != 0 {
		cfg.FieldScale = scale
	}
	if falloff != "" {
		cfg.Gradient.Falloff = falloff
	}
	return cfg, cfg.Validate()
}

func run(cfg triangles.Config) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	done := make(chan struct{})
	defer close(done)
	events := pumpEvents(screen.PollEvent, done)

	redraw(screen, cfg)
	for ev := range events {
		switch ev := ev.(type) {
		case *tcell.EventResize:
			screen.Sync()
			redraw(screen, cfg)
		case *tcell.EventKey:
			if isQuit(ev) {
				return nil
			}
		}
	}
	return nil
}

// pumpEvents forwards events from poll until poll returns nil or done is
// closed. The returned channel is closed when the pump stops.
func pumpEvents(poll func() tcell.Event, done <-chan struct{}) <-chan tcell.Event {
	events := make(chan tcell.Event, 16)
	go func() {
		defer close(events)
		for {
			ev := poll()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()
	return events
}

func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// redraw paints the whole terminal. Each character cell shows two stacked
// pixels: the foreground of an upper half block is the top pixel and the
// background is the bottom one.
func redraw(screen tcell.Screen, cfg triangles.Config) {
	cols, rows := screen.Size()
	if cols <= 0 || rows <= 0 {
		return
	}
	screen.Clear()

	img, err := composite(cfg, cols, rows*2)
	if err != nil {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		for i, r := range err.Error() {
			if i >= cols {
				break
			}
			screen.SetContent(i, 0, r, nil, style)
		}
		screen.Show()
		return
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			style := tcell.StyleDefault.
				Foreground(termColor(img.NRGBAAt(x, 2*y))).
				Background(termColor(img.NRGBAAt(x, 2*y+1)))
			screen.SetContent(x, y, upperHalfBlock, nil, style)
		}
	}
	screen.Show()
}

func termColor(c color.NRGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// composite renders the gradient with the board drawn over it, the field
// centered in a w x h image the way the game centers it in the window.
func composite(cfg triangles.Config, w, h int) (*image.NRGBA, error) {
	spec, err := cfg.GradientSpec(w, h)
	if err != nil {
		return nil, err
	}
	img, err := gradient.Synthesize(spec)
	if err != nil {
		return nil, err
	}

	size := float64(min(w, h)) * fieldSizeFraction
	field := board.ComputeField(cfg.FieldScale, board.Vec2{X: float64(w) / 2, Y: float64(h) / 2}, size)

	fillSquare(img, field.Center, field.Size, backdropColor)
	squareBG := cfg.SquareBG.NRGBA
	for c := range board.Cells(field) {
		fillSquare(img, c.World(field), field.CellSize, squareBG)
	}
	return img, nil
}

// fillSquare blends an axis-aligned square of edge side centered on center
// over img. Pixels are covered when their top-left corner lies inside.
func fillSquare(img draw.Image, center board.Vec2, side float64, c color.Color) {
	half := side / 2
	r := image.Rect(
		int(math.Ceil(center.X-half)), int(math.Ceil(center.Y-half)),
		int(math.Ceil(center.X+half)), int(math.Ceil(center.Y+half)),
	)
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Over)
}
