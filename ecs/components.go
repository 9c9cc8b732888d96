package ecs

import (
	"github.com/CyberTea0X/triangles3/board"

	"github.com/yohamta/donburi"
)

// SquareOrientation is the split direction of a square cell.
type SquareOrientation uint8

const (
	Horizontal SquareOrientation = iota
	Vertical
)

func (o SquareOrientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// TriangleColor is one of the colors a triangle tile can have.
type TriangleColor uint8

const (
	Red TriangleColor = iota
	Green
	Blue
	Orange
	Purple
	Teal
	Yellow
)

// AllTriangleColors lists every color with a texture in the asset set.
var AllTriangleColors = [...]TriangleColor{Red, Green, Blue, Orange, Purple, Teal, Yellow}

var triangleColorNames = [...]string{"Red", "Green", "Blue", "Orange", "Purple", "Teal", "Yellow"}

func (c TriangleColor) String() string {
	if int(c) < len(triangleColorNames) {
		return triangleColorNames[c]
	}
	return "Unknown"
}

// AssetPath returns the texture file name for the color, e.g. "tRed.png".
func (c TriangleColor) AssetPath() string {
	return "t" + c.String() + ".png"
}

// RGBA returns the nominal color of the tile texture, used when the
// texture file is missing.
func (c TriangleColor) RGBA() (r, g, b uint8) {
	switch c {
	case Red:
		return 0xe5, 0x3b, 0x3b
	case Green:
		return 0x43, 0xb5, 0x4a
	case Blue:
		return 0x3b, 0x6f, 0xe5
	case Orange:
		return 0xf2, 0x8c, 0x28
	case Purple:
		return 0x91, 0x1c, 0x8b
	case Teal:
		return 0x1f, 0xb5, 0xa8
	case Yellow:
		return 0xf5, 0xd0, 0x2e
	default:
		return 0xff, 0x00, 0xff
	}
}

// CellData identifies a grid cell. ID is the row index the cell was
// spawned from.
type CellData struct {
	ID   uint32
	I, J int
}

// TransformData is the position of an entity relative to its parent: the
// field center for squares, the square center for triangles.
type TransformData struct {
	Position board.Vec2
	Z        float64
	Rotation float64
}

// SquareData marks a cell that holds a square tile.
type SquareData struct {
	Orientation SquareOrientation
	// Filled is set once a triangle has been placed on the square.
	Filled bool
}

// TriangleData is a triangle tile placed on a square.
type TriangleData struct {
	Color  TriangleColor
	Square donburi.Entity
}

var (
	Field     = donburi.NewComponentType[board.Field]()
	Cell      = donburi.NewComponentType[CellData]()
	Transform = donburi.NewComponentType[TransformData]()
	Square    = donburi.NewComponentType[SquareData]()
	Triangle  = donburi.NewComponentType[TriangleData]()
)
