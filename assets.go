package triangles

import (
	"image"
	"image/color"
	"path/filepath"

	"github.com/CyberTea0X/triangles3/ecs"
	"github.com/CyberTea0X/triangles3/gradient"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/sync/errgroup"
)

// fallbackTextureSize is the edge length of generated triangle textures.
const fallbackTextureSize = 64

// TriangleImages holds one decoded texture per triangle color.
type TriangleImages [len(ecs.AllTriangleColors)]image.Image

// LoadTriangleImages decodes every triangle texture from dir concurrently.
// A missing or undecodable file is replaced by a generated right triangle of
// the nominal color and a warning is logged; loading never fails.
func LoadTriangleImages(dir string) TriangleImages {
	var imgs TriangleImages
	var g errgroup.Group
	g.SetLimit(4)
	for _, c := range ecs.AllTriangleColors {
		g.Go(func() error {
			path := filepath.Join(dir, c.AssetPath())
			img, err := gradient.Load(path)
			if err != nil {
				Logger().Warn("triangle texture not loaded, using generated one",
					"color", c.String(), "path", path, "err", err)
				img = triangleImage(c, fallbackTextureSize)
			}
			imgs[c] = img
			return nil
		})
	}
	_ = g.Wait()
	return imgs
}

// triangleImage draws a size x size right triangle filling the lower-left
// half, with the right angle at the bottom-left corner.
func triangleImage(c ecs.TriangleColor, size int) *image.NRGBA {
	r, g, b := c.RGBA()
	fill := color.NRGBA{R: r, G: g, B: b, A: 0xff}
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x <= y; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	return img
}

// Assets is the set of GPU textures the board draws with.
type Assets struct {
	triangles [len(ecs.AllTriangleColors)]*ebiten.Image
}

// NewAssets uploads decoded textures.
func NewAssets(imgs TriangleImages) *Assets {
	a := &Assets{}
	for i, img := range imgs {
		if img == nil {
			img = triangleImage(ecs.TriangleColor(i), fallbackTextureSize)
		}
		a.triangles[i] = ebiten.NewImageFromImage(img)
	}
	return a
}

// Triangle returns the texture for color c.
func (a *Assets) Triangle(c ecs.TriangleColor) *ebiten.Image {
	if int(c) >= len(a.triangles) {
		return nil
	}
	return a.triangles[c]
}

// assetLoader runs LoadTriangleImages off the game loop. Ready is polled
// once per frame.
type assetLoader struct {
	done chan TriangleImages
	imgs *TriangleImages
}

func startAssetLoader(dir string) *assetLoader {
	l := &assetLoader{done: make(chan TriangleImages, 1)}
	go func() {
		l.done <- LoadTriangleImages(dir)
	}()
	return l
}

// Ready reports whether loading finished, without blocking.
func (l *assetLoader) Ready() (TriangleImages, bool) {
	if l.imgs != nil {
		return *l.imgs, true
	}
	select {
	case imgs := <-l.done:
		l.imgs = &imgs
		return imgs, true
	default:
		return TriangleImages{}, false
	}
}
