package triangles

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
}

func TestNewSpriteDefaults(t *testing.T) {
	img := ebiten.NewImage(32, 16)
	n := NewSprite("spr", img)
	assertNodeDefaults(t, n, "spr", NodeTypeSprite)
	if n.Width != 32 || n.Height != 16 {
		t.Errorf("size = (%v, %v), want (32, 16)", n.Width, n.Height)
	}
	if n.AnchorX != 0 || n.AnchorY != 0 {
		t.Errorf("anchor = (%v, %v), want (0, 0)", n.AnchorX, n.AnchorY)
	}
}

func TestNewSpriteNilImage(t *testing.T) {
	n := NewSprite("px", nil)
	if n.Width != 1 || n.Height != 1 {
		t.Errorf("size = (%v, %v), want (1, 1)", n.Width, n.Height)
	}
}

func TestNewImageSpriteCentered(t *testing.T) {
	n := NewImageSprite("spr", ebiten.NewImage(8, 8))
	if n.AnchorX != 0.5 || n.AnchorY != 0.5 {
		t.Errorf("anchor = (%v, %v), want (0.5, 0.5)", n.AnchorX, n.AnchorY)
	}
}

func TestNewRect(t *testing.T) {
	c := Color{0, 0, 0, 0.3}
	n := NewRect("bg", 400, 300, c)
	assertNodeDefaults(t, n, "bg", NodeTypeSprite)
	if n.Image != nil {
		t.Error("rect should draw the white pixel")
	}
	if n.Width != 400 || n.Height != 300 {
		t.Errorf("size = (%v, %v), want (400, 300)", n.Width, n.Height)
	}
	if n.Color != c {
		t.Errorf("Color = %v, want %v", n.Color, c)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible {
		t.Error("Visible should be true")
	}
	if !n.Renderable {
		t.Error("Renderable should be true")
	}
	if !n.transformDirty {
		t.Error("transformDirty should be true")
	}
}

// --- Unique IDs ---

func TestUniqueIDs(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	if a.ID == b.ID {
		t.Errorf("IDs should differ: %d == %d", a.ID, b.ID)
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent not set")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != child {
		t.Error("child not in parent's children")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Errorf("old parent still has %d children", a.NumChildren())
	}
	if child.Parent != b {
		t.Error("child.Parent should be the new parent")
	}
}

func TestAddChildPanics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil child", func() { NewContainer("p").AddChild(nil) }},
		{"self", func() {
			n := NewContainer("n")
			n.AddChild(n)
		}},
		{"cycle", func() {
			a := NewContainer("a")
			b := NewContainer("b")
			a.AddChild(b)
			b.AddChild(a)
		}},
		{"remove foreign child", func() {
			NewContainer("a").RemoveChild(NewContainer("b"))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tt.fn()
		})
	}
}

func TestRemoveChild(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)

	parent.RemoveChild(a)
	if a.Parent != nil {
		t.Error("removed child should have nil parent")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != b {
		t.Error("remaining children wrong")
	}
}

func TestRemoveFromParentNoParent(t *testing.T) {
	n := NewContainer("orphan")
	n.RemoveFromParent() // must not panic
}

func TestRemoveChildren(t *testing.T) {
	parent := NewContainer("parent")
	kids := []*Node{NewContainer("a"), NewContainer("b"), NewContainer("c")}
	for _, k := range kids {
		parent.AddChild(k)
	}
	parent.RemoveChildren()
	if parent.NumChildren() != 0 {
		t.Errorf("NumChildren = %d, want 0", parent.NumChildren())
	}
	for _, k := range kids {
		if k.Parent != nil || k.IsDisposed() {
			t.Errorf("%s: detached children must be orphaned, not disposed", k.Name)
		}
	}
}

// --- Disposal ---

func TestDisposeRecursive(t *testing.T) {
	root := NewContainer("root")
	parent := NewContainer("parent")
	child := NewSprite("child", nil)
	child.OnUpdate = func(float64) {}
	root.AddChild(parent)
	parent.AddChild(child)

	parent.Dispose()

	if root.NumChildren() != 0 {
		t.Error("disposed node should be removed from its parent")
	}
	if !parent.IsDisposed() || !child.IsDisposed() {
		t.Error("subtree should be disposed")
	}
	if child.ID != 0 || child.OnUpdate != nil {
		t.Error("disposed node should release its ID and hooks")
	}
	parent.Dispose() // second call is a no-op
}

// --- OnUpdate hooks ---

func TestRunUpdateHooksOrder(t *testing.T) {
	var order []string
	hook := func(name string) func(float64) {
		return func(dt float64) {
			if dt != 0.25 {
				t.Errorf("%s: dt = %v, want 0.25", name, dt)
			}
			order = append(order, name)
		}
	}
	root := NewContainer("root")
	a := NewContainer("a")
	b := NewContainer("b")
	a1 := NewContainer("a1")
	root.OnUpdate = hook("root")
	a.OnUpdate = hook("a")
	b.OnUpdate = hook("b")
	a1.OnUpdate = hook("a1")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(a1)

	runUpdateHooks(root, 0.25)

	want := []string{"root", "a", "a1", "b"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("order = %v, want %v", order, want)
		}
	}
}
