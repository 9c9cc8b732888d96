package triangles

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates one float64 field of a Node. Build one with
// TweenRotation or TweenAlpha and hand it to Scene.AddTween, or call Update
// yourself. A disposed target stops the group.
type TweenGroup struct {
	tween  *gween.Tween
	field  *float64
	target *Node

	// OnDone runs once, on the update that finishes the group. It does not
	// run when the group stops because its target was disposed.
	OnDone func()
	Done   bool
}

// newTweenGroup animates *field from its current value to to.
func newTweenGroup(target *Node, field *float64, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return &TweenGroup{
		tween:  gween.New(float32(*field), float32(to), duration, fn),
		field:  field,
		target: target,
	}
}

// Update advances the group by dt seconds and writes the tweened value.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target.IsDisposed() {
		g.Done = true
		return
	}

	v, finished := g.tween.Update(dt)
	*g.field = float64(v)
	g.target.MarkDirty()

	if finished {
		g.Done = true
		if g.OnDone != nil {
			g.OnDone()
		}
	}
}

// TweenAlpha animates Alpha to a.
func TweenAlpha(node *Node, a float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, &node.Alpha, a, duration, fn)
}

// TweenRotation animates Rotation to r radians.
func TweenRotation(node *Node, r float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	return newTweenGroup(node, &node.Rotation, r, duration, fn)
}
