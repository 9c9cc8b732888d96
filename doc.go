// Package triangles hosts the triangle puzzle board on [Ebitengine].
//
// A window shows a procedurally generated radial gradient behind a square
// board with its corner cells cut away. Every remaining cell holds a colored
// square with a triangle tile on top, and the board can be turned by 45
// degrees into a diamond. The board geometry lives in package board, the entities in package
// ecs, and the background image in package gradient. This package ties them
// to the screen.
//
// # Quick start
//
//	cfg := triangles.DefaultConfig()
//	if err := triangles.Run(cfg); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, build the [Game] yourself and hand it to
// [ebiten.RunGame]:
//
//	g, err := triangles.NewGame(cfg)
//	if err != nil { ... }
//	ebiten.RunGame(g)
//
// # Lifecycle
//
// The game moves through [StateStartup], [StateAssetLoading] and
// [StateReady]. On the first frame after the window size is known it
// ensures the cached background exists under [Config.DataDir] (generating
// it at the physical window size if missing), sizes the field from the
// shorter window side and creates one square per non-corner cell. Triangle
// textures load in the background; when they are ready every square gets a
// triangle of a random color, faded in.
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's transform and alpha.
//
//	field := triangles.NewContainer("field")
//	scene.Root().AddChild(field)
//
//	cell := triangles.NewRect("cell", 40, 40, triangles.Color{R: 0.57, G: 0.11, B: 0.55, A: 1})
//	cell.SetPosition(-20, 20)
//	field.AddChild(cell)
//
// The scene camera puts the world origin at the center of the window with
// Y pointing down. Tweens (via [gween]) animate node fields and are driven
// by [Scene.AddTween].
//
// # Input
//
// Escape quits, R turns the field by another 45 degrees and F12 saves a
// screenshot under DataDir/screenshots. Nodes with Interactable set are
// found by [Scene.NodeAt]; a left click on a square logs its cell.
//
// # Logging
//
// Nothing is logged until [SetLogger] installs a [log/slog] logger.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package triangles
