package triangles

// ClickContext describes a click on an interactable node.
type ClickContext struct {
	Node           *Node
	WorldX, WorldY float64
	// LocalX and LocalY are relative to the node origin.
	LocalX, LocalY float64
}

// OnClick registers fn to run for every click that hits an interactable
// node. Handlers run in registration order.
func (s *Scene) OnClick(fn func(ClickContext)) {
	if fn == nil {
		return
	}
	s.clickHandlers = append(s.clickHandlers, fn)
}

// Click dispatches a click at screen coordinates (sx, sy), converted to
// world space through the first camera. It returns the node that was hit,
// or nil.
func (s *Scene) Click(sx, sy float64) *Node {
	wx, wy := sx, sy
	if len(s.cameras) > 0 {
		wx, wy = s.cameras[0].ScreenToWorld(sx, sy)
	}
	n := s.NodeAt(wx, wy)
	if n == nil {
		return nil
	}
	lx, ly := n.WorldToLocal(wx, wy)
	ctx := ClickContext{Node: n, WorldX: wx, WorldY: wy, LocalX: lx, LocalY: ly}
	for _, fn := range s.clickHandlers {
		fn(ctx)
	}
	return n
}

// NodeAt returns the topmost interactable sprite at (worldX, worldY), using
// world transforms from the last Update. Returns nil if nothing is hit.
func (s *Scene) NodeAt(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Reverse painter order: topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		lx, ly := n.WorldToLocal(worldX, worldY)
		if nodeContainsLocal(n, lx, ly) {
			return n
		}
	}
	return nil
}

// nodeContainsLocal tests whether (lx, ly) falls inside the drawn quad of a
// sprite, anchor included.
func nodeContainsLocal(n *Node, lx, ly float64) bool {
	if n.Type != NodeTypeSprite || n.Width == 0 || n.Height == 0 {
		return false
	}
	x0 := -n.Width * n.AnchorX
	y0 := -n.Height * n.AnchorY
	return lx >= x0 && lx <= x0+n.Width && ly >= y0 && ly <= y0+n.Height
}

// collectInteractable walks the tree in painter order (DFS, ZIndex-sorted)
// and appends interactable nodes to buf. Invisible subtrees are skipped.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible {
		return buf
	}
	if n.Interactable {
		buf = append(buf, n)
	}
	if len(n.children) == 0 {
		return buf
	}

	children := n.children
	if !n.childrenSorted {
		rebuildSortedChildren(n)
	}
	if n.sortedChildren != nil {
		children = n.sortedChildren
	}
	for _, child := range children {
		buf = collectInteractable(child, buf)
	}
	return buf
}
