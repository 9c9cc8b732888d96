// Package ecs keeps the puzzle board in a [Donburi] world.
//
// The field, its cells and the triangles placed on them are entities with
// plain data components. Systems in this package create them from a
// [board.Field]; the scene host listens for [SquareSpawned] and
// [TriangleSpawned] events to attach sprites.
//
// Usage:
//
//	world := donburi.NewWorld()
//	ecs.SpawnField(world, board.ComputeField(8, board.Vec2{}, 400))
//	ecs.SquareSpawned.Subscribe(world, onSquare)
//	if _, err := ecs.CalculateCells(world); err != nil { ... }
//	ecs.Flush(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
