package ecs

import (
	"errors"
	"math"

	"github.com/CyberTea0X/triangles3/board"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// Depth of each layer in the board, matching the draw order of the scene.
const (
	SquareZ   = 2
	TriangleZ = 3
)

// ErrNoField is returned by systems that need a field entity when the world
// has none.
var ErrNoField = errors.New("ecs: world has no field entity")

// RandSource is the random capability used to pick triangle colors.
// *math/rand/v2.Rand satisfies it.
type RandSource interface {
	IntN(n int) int
}

// spawnPalette is the subset of colors dealt onto a fresh board.
var spawnPalette = [...]TriangleColor{Red, Green, Blue, Teal}

// SquareEvent is published once per square created by CalculateCells.
type SquareEvent struct {
	Entity    donburi.Entity
	Cell      CellData
	Transform TransformData
}

// TriangleEvent is published once per triangle created by SpawnTriangles.
type TriangleEvent struct {
	Entity    donburi.Entity
	Square    donburi.Entity
	Color     TriangleColor
	Transform TransformData
}

var (
	// SquareSpawned carries SquareEvent values.
	SquareSpawned = events.NewEventType[SquareEvent]()
	// TriangleSpawned carries TriangleEvent values.
	TriangleSpawned = events.NewEventType[TriangleEvent]()
)

var (
	squareQuery   = donburi.NewQuery(filter.Contains(Square, Cell, Transform))
	triangleQuery = donburi.NewQuery(filter.Contains(Triangle, Transform))
)

// SpawnField stores field in the world. A world holds a single field; a
// second call overwrites the stored value and returns the same entry.
func SpawnField(w donburi.World, field board.Field) *donburi.Entry {
	if entry, ok := Field.First(w); ok {
		Field.SetValue(entry, field)
		return entry
	}
	entry := w.Entry(w.Create(Field))
	Field.SetValue(entry, field)
	return entry
}

// FieldEntry returns the field entity and its value.
func FieldEntry(w donburi.World) (*donburi.Entry, board.Field, bool) {
	entry, ok := Field.First(w)
	if !ok {
		return nil, board.Field{}, false
	}
	return entry, Field.GetValue(entry), true
}

// CalculateCells creates one square entity per non-corner cell of the
// world's field and publishes a SquareSpawned event for each. It returns the
// number of squares created.
func CalculateCells(w donburi.World) (int, error) {
	_, field, ok := FieldEntry(w)
	if !ok {
		return 0, ErrNoField
	}
	n := 0
	for c := range board.Cells(field) {
		entity := w.Create(Cell, Transform, Square)
		entry := w.Entry(entity)

		cell := CellData{ID: uint32(c.I), I: c.I, J: c.J}
		tr := TransformData{Position: c.Offset, Z: SquareZ}
		Cell.SetValue(entry, cell)
		Transform.SetValue(entry, tr)
		Square.SetValue(entry, SquareData{Orientation: Horizontal})

		SquareSpawned.Publish(w, SquareEvent{Entity: entity, Cell: cell, Transform: tr})
		n++
	}
	return n, nil
}

// SpawnTriangles places one triangle on every square that has none, with a
// color drawn uniformly from the spawn palette. Triangles sit at the center
// of their square, turned by 90 degrees. It returns the number placed.
func SpawnTriangles(w donburi.World, rng RandSource) int {
	var empty []*donburi.Entry
	squareQuery.Each(w, func(e *donburi.Entry) {
		if !Square.Get(e).Filled {
			empty = append(empty, e)
		}
	})

	for _, sq := range empty {
		color := spawnPalette[rng.IntN(len(spawnPalette))]
		tr := TransformData{Z: TriangleZ, Rotation: math.Pi / 2}

		entity := w.Create(Triangle, Transform)
		entry := w.Entry(entity)
		Triangle.SetValue(entry, TriangleData{Color: color, Square: sq.Entity()})
		Transform.SetValue(entry, tr)
		Square.Get(sq).Filled = true

		TriangleSpawned.Publish(w, TriangleEvent{
			Entity:    entity,
			Square:    sq.Entity(),
			Color:     color,
			Transform: tr,
		})
	}
	return len(empty)
}

// Squares returns the number of square entities.
func Squares(w donburi.World) int {
	return squareQuery.Count(w)
}

// Triangles returns the number of triangle entities.
func Triangles(w donburi.World) int {
	return triangleQuery.Count(w)
}

// EachTriangle calls fn for every triangle entity.
func EachTriangle(w donburi.World, fn func(TriangleData, TransformData)) {
	triangleQuery.Each(w, func(e *donburi.Entry) {
		fn(Triangle.GetValue(e), Transform.GetValue(e))
	})
}

// SquareInfo is what the board knows about one square.
type SquareInfo struct {
	Cell CellData
	// Triangle is the tile on the square; valid only when Filled is set.
	Triangle TriangleColor
	Filled   bool
}

// InspectSquare looks up a square entity and the triangle placed on it.
// It reports false when entity is not a live square.
func InspectSquare(w donburi.World, entity donburi.Entity) (SquareInfo, bool) {
	if !w.Valid(entity) {
		return SquareInfo{}, false
	}
	e := w.Entry(entity)
	if !e.HasComponent(Square) || !e.HasComponent(Cell) {
		return SquareInfo{}, false
	}
	info := SquareInfo{Cell: Cell.GetValue(e)}
	triangleQuery.Each(w, func(t *donburi.Entry) {
		if tri := Triangle.Get(t); tri.Square == entity {
			info.Triangle = tri.Color
			info.Filled = true
		}
	})
	return info, true
}

// Flush delivers every pending event in the world to its subscribers.
func Flush(w donburi.World) {
	events.ProcessAllEvents(w)
}
