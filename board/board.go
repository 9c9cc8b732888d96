// Package board computes the geometry of the puzzle board: a square grid
// inscribed in a field rotated by 45 degrees, with the four corner cells
// left out.
//
// Everything here is pure arithmetic on explicit inputs. The package never
// reaches into engine state, so the same Field can drive the ebiten scene,
// the terminal preview, or a test.
package board

import (
	"errors"
	"fmt"
	"iter"
	"math"
)

const (
	// MinScale is the smallest grid that leaves an interior after the
	// corners are removed.
	MinScale = 3

	// CellFraction and SpacingFraction split the base unit between the
	// cell edge and the gap that follows it.
	CellFraction    = 0.95
	SpacingFraction = 0.05
)

// ErrScaleTooSmall is returned by Field.Validate for scales below MinScale.
var ErrScaleTooSmall = errors.New("board: scale must be at least 3")

// Vec2 is a 2D point or offset in scene coordinates.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Neg returns -v.
func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Field describes the board geometry. Build one with ComputeField; the
// derived fields are not recomputed if Scale or Size are changed afterwards.
type Field struct {
	// Scale is the number of cells per side of the outer grid.
	Scale int
	// Center is the field origin in scene coordinates.
	Center Vec2
	// Size is the edge length of the non-rotated bounding square.
	Size float64

	// Smaller is the edge of the square inscribed at 45 degrees.
	Smaller float64
	// CellSize and CellSpacing split Smaller/(Scale-2) as 95% / 5%.
	CellSize    float64
	CellSpacing float64
}

// ComputeField derives the board geometry for a grid of scale cells per side
// centered at center, inside a bounding square of edge size.
//
// scale >= MinScale is a precondition. It is not checked: smaller values
// produce infinite or negative cell sizes.
func ComputeField(scale int, center Vec2, size float64) Field {
	smaller := size / math.Sqrt2
	// The base unit divides the inscribed square among the interior
	// cells only, hence scale-2.
	base := smaller / float64(scale-2)
	return Field{
		Scale:       scale,
		Center:      center,
		Size:        size,
		Smaller:     smaller,
		CellSize:    base * CellFraction,
		CellSpacing: base * SpacingFraction,
	}
}

// Validate reports whether the field was computed from a usable scale.
// ComputeField never calls it; hosts validate their configuration with it.
func (f Field) Validate() error {
	if f.Scale < MinScale {
		return fmt.Errorf("%w: got %d", ErrScaleTooSmall, f.Scale)
	}
	return nil
}

// BaseUnit returns the per-cell unit before the cell/spacing split: the
// inscribed square divided among the interior cells.
func (f Field) BaseUnit() float64 {
	return f.Smaller / float64(f.Scale-2)
}

// Pitch is the distance between the centers of two neighbouring cells.
func (f Field) Pitch() float64 {
	return f.CellSize + f.CellSpacing
}

// Offset returns the planar offset of grid index k along either axis,
// relative to the field center.
//
// The (k-1) shift centers the first non-corner ring on the nominal edge of
// the inscribed square, which puts ring 0 half outside of it.
func (f Field) Offset(k int) float64 {
	start := -f.Smaller/2 + f.CellSize/2 + f.CellSpacing/2
	return start + float64(k-1)*f.Pitch()
}

// IsCorner reports whether (i, j) is one of the four excluded grid corners.
func (f Field) IsCorner(i, j int) bool {
	last := f.Scale - 1
	return (i == 0 || i == last) && (j == 0 || j == last)
}

// CellCount returns the number of cells Cells yields: Scale² - 4.
func (f Field) CellCount() int {
	return f.Scale*f.Scale - 4
}

// CellPosition is one non-corner grid cell.
type CellPosition struct {
	I, J int
	// Offset is the cell center relative to the field center.
	Offset Vec2
}

// World returns the cell center in scene coordinates.
func (c CellPosition) World(f Field) Vec2 {
	return f.Center.Add(c.Offset)
}

// Cells returns the non-corner cells of f in row-major order (i outer,
// j inner). The sequence is lazy and can be ranged over any number of times.
func Cells(f Field) iter.Seq[CellPosition] {
	return func(yield func(CellPosition) bool) {
		for i := 0; i < f.Scale; i++ {
			x := f.Offset(i)
			for j := 0; j < f.Scale; j++ {
				if f.IsCorner(i, j) {
					continue
				}
				if !yield(CellPosition{I: i, J: j, Offset: Vec2{x, f.Offset(j)}}) {
					return
				}
			}
		}
	}
}

// CollectCells returns all cells of f as a slice, preallocated to CellCount.
func CollectCells(f Field) []CellPosition {
	n := f.CellCount()
	if n < 0 {
		n = 0
	}
	out := make([]CellPosition, 0, n)
	for c := range Cells(f) {
		out = append(out, c)
	}
	return out
}
