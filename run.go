package triangles

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// Run opens the window described by cfg and blocks until it is closed or
// Escape is pressed.
func Run(cfg Config) error {
	g, err := NewGame(cfg)
	if err != nil {
		return err
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)

	Logger().Info("starting", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
