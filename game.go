package triangles

import (
	"fmt"
	"math"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/CyberTea0X/triangles3/board"
	"github.com/CyberTea0X/triangles3/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
)

const (
	// fieldSizeFraction is the field size relative to the shorter window side.
	fieldSizeFraction = 0.5
	// fieldRotation is the angle of the optional one-shot field rotation.
	fieldRotation         = math.Pi / 4
	fieldRotationDuration = 1.5
	triangleFadeDuration  = 0.4

	screenshotDir = "screenshots"
)

// fieldBackgroundColor darkens the area behind the board.
var fieldBackgroundColor = Color{R: 0, G: 0, B: 0, A: 0.30}

// Game is the ebiten.Game that hosts the board. It owns the scene graph,
// the ECS world and the lifecycle state.
type Game struct {
	cfg    Config
	scene  *Scene
	camera *Camera
	world  donburi.World
	rng    *rand.Rand
	states *stateMachine

	// logical layout size
	width, height int
	deviceScale   func() float64

	loader *assetLoader
	assets *Assets

	background *Node
	fieldBG    *Node
	fieldNode  *Node
	fps        *Node
	squares    map[donburi.Entity]*Node
	triangles  map[donburi.Entity]*Node
}

// NewGame validates cfg and builds an idle game. Nothing is generated or
// loaded until the first Update after the window size is known.
func NewGame(cfg Config) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	g := &Game{
		cfg:         cfg,
		scene:       NewScene(),
		world:       donburi.NewWorld(),
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		states:      newStateMachine(StateStartup),
		deviceScale: monitorScale,
		squares:     make(map[donburi.Entity]*Node),
		triangles:   make(map[donburi.Entity]*Node),
	}
	g.scene.ClearColor = Color{0, 0, 0, 1}
	g.scene.ScreenshotDir = filepath.Join(cfg.DataDir, screenshotDir)
	g.scene.OnClick(g.onClick)
	g.scene.SetDebugMode(cfg.Debug)
	g.camera = g.scene.NewCamera(Rect{Width: float64(cfg.Width), Height: float64(cfg.Height)})

	ecs.SquareSpawned.Subscribe(g.world, g.spawnSquare)
	ecs.TriangleSpawned.Subscribe(g.world, g.spawnTriangle)
	g.states.OnExit(StateAssetLoading, true, g.spawnTriangles)
	g.states.OnEnter(StateReady, true, func() {
		Logger().Info("assets loaded", "dir", g.cfg.TrianglesDir())
	})

	if cfg.ShowFPS {
		g.fps = NewFPSWidget()
		g.scene.Root().AddChild(g.fps)
	}

	Logger().Debug("game created", "seed", seed, "field_scale", cfg.FieldScale)
	return g, nil
}

func monitorScale() float64 {
	if m := ebiten.Monitor(); m != nil {
		return m.DeviceScaleFactor()
	}
	return 1
}

// State returns the current lifecycle state.
func (g *Game) State() GameState {
	return g.states.Current()
}

// Scene returns the scene graph.
func (g *Game) Scene() *Scene {
	return g.scene
}

// World returns the ECS world holding the board.
func (g *Game) World() donburi.World {
	return g.world
}

// Update implements ebiten.Game. Escape ends the game, R rotates the field
// again and F12 saves a screenshot of the next frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.RotateField()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		g.scene.Screenshot(g.states.Current().String())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.scene.Click(float64(x), float64(y))
	}
	return g.step(1 / float64(ebiten.TPS()))
}

// step advances the game by dt seconds.
func (g *Game) step(dt float64) error {
	switch g.states.Current() {
	case StateStartup:
		if g.width == 0 || g.height == 0 {
			return nil
		}
		if err := g.startup(); err != nil {
			return err
		}
		g.states.Set(StateAssetLoading)
	case StateAssetLoading:
		if imgs, ok := g.loader.Ready(); ok {
			g.assets = NewAssets(imgs)
			g.states.Set(StateReady)
		}
	}

	ecs.Flush(g.world)
	g.scene.Update(dt)
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

// Layout implements ebiten.Game. The logical screen follows the window; the
// camera keeps the world origin at its center.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		w, h := float64(outsideWidth), float64(outsideHeight)
		g.camera.SetViewport(Rect{Width: w, Height: h})
		if g.background != nil {
			g.background.SetSize(w, h)
		}
		if g.fps != nil {
			g.fps.SetPosition(-w/2, -h/2)
		}
	}
	return outsideWidth, outsideHeight
}

// startup builds the background and the board, then starts loading the
// triangle textures.
func (g *Game) startup() error {
	g.setupBackground()
	g.spawnField()
	n, err := ecs.CalculateCells(g.world)
	if err != nil {
		return fmt.Errorf("calculate cells: %w", err)
	}
	Logger().Debug("cells calculated", "squares", n)

	g.loader = startAssetLoader(g.cfg.TrianglesDir())
	if g.cfg.RotateField {
		g.RotateField()
	}
	return nil
}

// setupBackground generates the cached gradient at the physical window size
// if it is missing, then shows it stretched over the window. Failures are
// logged and leave the background empty.
func (g *Game) setupBackground() {
	scale := g.deviceScale()
	pw := int(math.Ceil(float64(g.width) * scale))
	ph := int(math.Ceil(float64(g.height) * scale))
	path := g.cfg.BackgroundPath()

	spec, err := g.cfg.GradientSpec(pw, ph)
	if err == nil {
		_, err = EnsureBackground(path, spec)
	}
	if err != nil {
		Logger().Error("background gradient generation failed", "path", path, "err", err)
	}

	img, err := LoadBackground(path)
	if err != nil {
		Logger().Error("background not loaded", "path", path, "err", err)
		return
	}
	bg := NewImageSprite("background", img)
	bg.SetSize(float64(g.width), float64(g.height))
	bg.RenderLayer = LayerBackground
	g.background = bg
	g.scene.Root().AddChild(bg)
}

// spawnField sizes the field from the window and adds its container and
// darkened backdrop to the scene.
func (g *Game) spawnField() {
	size := float64(min(g.width, g.height)) * fieldSizeFraction
	field := board.ComputeField(g.cfg.FieldScale, board.Vec2{}, size)

	g.fieldBG = NewRect("field_background", field.Size, field.Size, fieldBackgroundColor)
	g.fieldBG.RenderLayer = LayerBoard
	g.fieldBG.SetPosition(field.Center.X, field.Center.Y)

	g.fieldNode = NewContainer("field")
	g.fieldNode.SetPosition(field.Center.X, field.Center.Y)

	g.scene.Root().AddChild(g.fieldBG)
	g.scene.Root().AddChild(g.fieldNode)
	ecs.SpawnField(g.world, field)
}

// spawnSquare attaches a colored cell sprite to a newly created square.
func (g *Game) spawnSquare(w donburi.World, ev ecs.SquareEvent) {
	_, field, ok := ecs.FieldEntry(w)
	if !ok {
		return
	}
	sq := NewRect(fmt.Sprintf("square_%d_%d", ev.Cell.I, ev.Cell.J),
		field.CellSize, field.CellSize, g.cfg.SquareBG.Color())
	sq.RenderLayer = LayerBoard
	sq.SetPosition(ev.Transform.Position.X, ev.Transform.Position.Y)
	sq.ZIndex = int(ev.Transform.Z)
	sq.UserData = ev.Entity
	sq.Interactable = true
	g.fieldNode.AddChild(sq)
	g.squares[ev.Entity] = sq
}

// onClick logs the square under the cursor.
func (g *Game) onClick(ctx ClickContext) {
	entity, ok := ctx.Node.UserData.(donburi.Entity)
	if !ok {
		return
	}
	info, ok := ecs.InspectSquare(g.world, entity)
	if !ok {
		return
	}
	attrs := []any{"i", info.Cell.I, "j", info.Cell.J}
	if info.Filled {
		attrs = append(attrs, "triangle", info.Triangle.String())
	}
	Logger().Info("square clicked", attrs...)
}

// spawnTriangles deals a triangle onto every square. Runs once, when asset
// loading ends.
func (g *Game) spawnTriangles() {
	n := ecs.SpawnTriangles(g.world, g.rng)
	Logger().Info("triangles spawned", "count", n)
}

// spawnTriangle attaches a textured sprite to a newly placed triangle and
// fades it in.
func (g *Game) spawnTriangle(w donburi.World, ev ecs.TriangleEvent) {
	parent, ok := g.squares[ev.Square]
	if !ok {
		Logger().Warn("triangle has no square sprite", "square", ev.Square)
		return
	}
	_, field, _ := ecs.FieldEntry(w)

	tri := NewImageSprite("triangle_"+ev.Color.String(), g.assets.Triangle(ev.Color))
	tri.SetSize(field.CellSize, field.CellSize)
	tri.SetPosition(ev.Transform.Position.X, ev.Transform.Position.Y)
	tri.SetRotation(ev.Transform.Rotation)
	tri.ZIndex = int(ev.Transform.Z)
	tri.RenderLayer = LayerBoard
	tri.UserData = ev.Entity
	tri.SetAlpha(0)
	parent.AddChild(tri)
	g.triangles[ev.Entity] = tri

	g.scene.AddTween(TweenAlpha(tri, 1, triangleFadeDuration, ease.OutQuad))
}

// RotateField turns the field container by 45 degrees over a short tween.
// Squares and triangles rotate with it; the backdrop does not.
func (g *Game) RotateField() {
	if g.fieldNode == nil {
		return
	}
	tw := TweenRotation(g.fieldNode, g.fieldNode.Rotation+fieldRotation,
		fieldRotationDuration, ease.InOutSine)
	tw.OnDone = func() {
		Logger().Debug("field rotated", "rotation", g.fieldNode.Rotation)
	}
	g.scene.AddTween(tw)
}
