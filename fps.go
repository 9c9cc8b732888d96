package triangles

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsRefresh is the widget redraw interval in seconds.
const fpsRefresh = 0.5

// NewFPSWidget creates a sprite that displays the current FPS and TPS,
// redrawn every half second with ebitenutil.DebugPrint. It renders on the
// overlay layer.
func NewFPSWidget() *Node {
	// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
	img := ebiten.NewImage(100, 32)

	node := NewSprite("fps_widget", img)
	node.RenderLayer = LayerOverlay

	elapsed := fpsRefresh
	node.OnUpdate = func(dt float64) {
		elapsed += dt
		if elapsed < fpsRefresh {
			return
		}
		elapsed = 0

		img.Clear()
		img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	}

	return node
}
