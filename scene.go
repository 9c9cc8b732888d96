package triangles

import (
	"image"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

const defaultCommandCap = 256

// Scene is the top-level object that owns the node tree, cameras, running
// tweens, and render buffers.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color
	// ScreenshotDir receives the captures queued with Screenshot.
	ScreenshotDir string

	cameras []*Camera
	tweens  []*TweenGroup

	// Render state
	commands []RenderCommand
	sortBuf  []RenderCommand

	screenshotQueue []string

	// Input state
	clickHandlers []func(ClickContext)
	hitBuf        []*Node
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:     NewContainer("root"),
		commands: make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:  make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update refreshes world transforms, runs node OnUpdate hooks and advances
// tweens by dt seconds. Finished tweens are dropped.
func (s *Scene) Update(dt float64) {
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	runUpdateHooks(s.root, dt)

	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(float32(dt))
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live

	for _, cam := range s.cameras {
		cam.update()
	}
}

// AddTween registers g to be advanced by Update until it is done.
func (s *Scene) AddTween(g *TweenGroup) {
	if g == nil || g.Done {
		return
	}
	s.tweens = append(s.tweens, g)
}

// NumTweens returns the number of running tweens.
func (s *Scene) NumTweens() int {
	return len(s.tweens)
}

// Draw traverses the scene tree, emits render commands, sorts them, and
// draws them onto screen once per camera.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.premultiplied())
	}

	if len(s.cameras) == 0 {
		// No explicit cameras: use implicit identity camera, full screen.
		s.drawWithCamera(screen, nil)
		s.flushScreenshots(screen)
		return
	}

	for _, cam := range s.cameras {
		vp := cam.Viewport
		viewportImg := screen.SubImage(image.Rect(
			int(vp.X), int(vp.Y),
			int(vp.X+vp.Width), int(vp.Y+vp.Height),
		)).(*ebiten.Image)
		s.drawWithCamera(viewportImg, cam)
	}
	s.flushScreenshots(screen)
}

// buildCommands traverses the tree under the given view and leaves the
// sorted command list in s.commands.
func (s *Scene) buildCommands(viewTransform [6]float64, stats *debugStats) {
	s.commands = s.commands[:0]

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	// The view changes per camera, so every node is recomputed.
	treeOrder := 0
	s.traverse(s.root, viewTransform, 1.0, true, &treeOrder)

	if s.debug {
		stats.traverseTime = time.Since(t0)
		t0 = time.Now()
	}

	s.mergeSort()

	if s.debug {
		stats.sortTime = time.Since(t0)
		stats.commandCount = len(s.commands)
	}
}

// drawWithCamera renders the scene from a camera's perspective.
// If cam is nil, uses identity view (no camera).
func (s *Scene) drawWithCamera(target *ebiten.Image, cam *Camera) {
	viewTransform := identityTransform
	if cam != nil {
		viewTransform = cam.computeViewMatrix()
	}

	var stats debugStats
	s.buildCommands(viewTransform, &stats)

	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	s.submitBatches(target)

	if s.debug {
		stats.submitTime = time.Since(t0)
		stats.batchCount = countBatches(s.commands)
		stats.drawCallCount = countDrawCalls(s.commands)
		s.debugLog(stats)
	}

	// World transforms include the view during traversal; restore the
	// camera-free values for coordinate conversion and hooks.
	if cam != nil {
		updateWorldTransform(s.root, identityTransform, 1.0, true)
	}
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, large child counts are logged, and per-frame timing stats
// are logged at debug level.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool
