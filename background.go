package triangles

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/CyberTea0X/triangles3/gradient"
	"github.com/hajimehoshi/ebiten/v2"
)

// EnsureBackground makes sure a gradient image exists at path. An existing
// file is trusted as-is, whatever its size or content. Otherwise the parent
// directory is created and spec is synthesized and saved. It reports whether
// a new file was written.
//
// A failure to create the directory is logged and the save is still
// attempted, so the returned error is the one from synthesis or saving.
func EnsureBackground(path string, spec gradient.Spec) (generated bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		Logger().Warn("background cache unreadable, regenerating", "path", path, "err", err)
	}

	logger := Logger()
	logger.Info("generating asset", "path", path)

	dir := filepath.Dir(path)
	logger.Info("creating directory for dynamic data", "dir", dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Error("failed to create data directory", "dir", dir, "err", err)
	}

	img, err := gradient.Synthesize(spec)
	if err != nil {
		return false, fmt.Errorf("synthesize background: %w", err)
	}
	if err := gradient.Save(img, path); err != nil {
		return false, fmt.Errorf("save background: %w", err)
	}
	return true, nil
}

// LoadBackground decodes the cached gradient into a GPU texture.
func LoadBackground(path string) (*ebiten.Image, error) {
	img, err := gradient.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load background: %w", err)
	}
	return ebiten.NewImageFromImage(img), nil
}

// RemoveBackground deletes the cached gradient so the next start
// regenerates it. A missing file is not an error.
func RemoveBackground(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove background: %w", err)
	}
	return nil
}
