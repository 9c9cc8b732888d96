package triangles

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// nodeIDCounter is a plain counter (no atomic, the scene is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is the scene graph element. A single flat struct is used for both
// node types to avoid interface dispatch on the hot path.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	PivotX   float64
	PivotY   float64

	// Computed during traversal
	worldTransform [6]float64
	worldAlpha     float64
	transformDirty bool

	// Visibility
	Alpha      float64
	Visible    bool
	Renderable bool

	// Interactable sprites are found by Scene.NodeAt and receive clicks.
	Interactable bool

	// Ordering
	ZIndex      int
	RenderLayer uint8

	// Metadata
	UserData any

	// Sprite fields (NodeTypeSprite). Image nil draws WhitePixel.
	// Width and Height are the drawn size in local units; the image is
	// stretched to fit. AnchorX and AnchorY place the quad relative to the
	// node origin (0.5, 0.5 centers it) without moving the children.
	Image         *ebiten.Image
	Width, Height float64
	AnchorX       float64
	AnchorY       float64
	BlendMode     BlendMode
	Color         Color

	// OnUpdate runs once per Scene.Update with the frame delta in seconds.
	OnUpdate func(dt float64)

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node
}

func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.Renderable = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a sprite drawing img at its natural size with its
// top-left corner at the node origin. A nil img draws a 1x1 white pixel.
func NewSprite(name string, img *ebiten.Image) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Image: img}
	nodeDefaults(n)
	n.Width, n.Height = imageSize(img)
	return n
}

// NewImageSprite creates a sprite drawing img at its natural size centered
// on the node origin.
func NewImageSprite(name string, img *ebiten.Image) *Node {
	n := NewSprite(name, img)
	n.AnchorX, n.AnchorY = 0.5, 0.5
	return n
}

// NewRect creates a solid w x h rectangle of color c centered on the node
// origin.
func NewRect(name string, w, h float64, c Color) *Node {
	n := NewImageSprite(name, nil)
	n.Width, n.Height = w, h
	n.Color = c
	return n
}

// SetSize sets the drawn size of a sprite.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
}

// SetImage replaces the sprite image. The drawn size is unchanged.
func (n *Node) SetImage(img *ebiten.Image) {
	n.Image = img
}

func imageSize(img *ebiten.Image) (w, h float64) {
	if img == nil {
		return 1, 1
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("triangles: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("triangles: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	if globalDebug {
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("triangles: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
		markSubtreeDirty(child)
	}
	n.children = n.children[:0]
	n.childrenSorted = true
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Images are not deallocated;
// textures are shared between sprites.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.Image = nil
	n.UserData = nil
	n.OnUpdate = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}

// runUpdateHooks calls OnUpdate depth-first, parents before children.
func runUpdateHooks(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for _, child := range n.children {
		runUpdateHooks(child, dt)
	}
}
