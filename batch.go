package triangles

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// batchKey groups render commands that ebiten can merge into one draw call:
// consecutive DrawImage calls sharing a source image and blend.
type batchKey struct {
	image *ebiten.Image
	blend BlendMode
}

func commandBatchKey(cmd *RenderCommand) batchKey {
	return batchKey{image: cmd.image, blend: cmd.BlendMode}
}

// submitBatches draws the sorted commands onto target in order.
func (s *Scene) submitBatches(target *ebiten.Image) {
	var op ebiten.DrawImageOptions
	for i := range s.commands {
		submitSprite(target, &s.commands[i], &op)
	}
}

// submitSprite draws a single sprite command using DrawImage.
func submitSprite(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	if cmd.Color.A <= 0 {
		return
	}
	op.GeoM = commandGeoM(cmd)
	op.ColorScale.Reset()
	a := cmd.Color.A
	op.ColorScale.Scale(cmd.Color.R*a, cmd.Color.G*a, cmd.Color.B*a, a)
	op.Blend = cmd.BlendMode.EbitenBlend()
	op.Filter = ebiten.FilterLinear
	target.DrawImage(cmd.image, op)
}

// commandGeoM converts the command's affine transform to an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, float64(cmd.Transform[0]))
	m.SetElement(1, 0, float64(cmd.Transform[1]))
	m.SetElement(0, 1, float64(cmd.Transform[2]))
	m.SetElement(1, 1, float64(cmd.Transform[3]))
	m.SetElement(0, 2, float64(cmd.Transform[4]))
	m.SetElement(1, 2, float64(cmd.Transform[5]))
	return m
}
