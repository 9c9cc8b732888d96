package triangles

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timing and draw-call metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	traverseTime  time.Duration
	sortTime      time.Duration
	submitTime    time.Duration
	commandCount  int
	batchCount    int
	drawCallCount int
}

// debugLog reports timing and draw-call stats at debug level.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	Logger().Debug("frame",
		"traverse", stats.traverseTime,
		"sort", stats.sortTime,
		"submit", stats.submitTime,
		"total", stats.traverseTime+stats.sortTime+stats.submitTime,
		"commands", stats.commandCount,
		"batches", stats.batchCount,
		"draw_calls", stats.drawCallCount)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("triangles debug: %s on disposed node %q", op, n.Name))
	}
}

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		Logger().Warn("node has many children",
			"node", n.Name, "children", len(n.children), "threshold", debugMaxChildCount)
	}
}

// countBatches counts contiguous groups of commands sharing the same batchKey.
// This is the number of draw calls ebiten can merge the frame into.
func countBatches(commands []RenderCommand) int {
	if len(commands) == 0 {
		return 0
	}
	count := 1
	prev := commandBatchKey(&commands[0])
	for i := 1; i < len(commands); i++ {
		cur := commandBatchKey(&commands[i])
		if cur != prev {
			count++
			prev = cur
		}
	}
	return count
}

// countDrawCalls counts commands that reach DrawImage.
func countDrawCalls(commands []RenderCommand) int {
	count := 0
	for i := range commands {
		if commands[i].Color.A > 0 {
			count++
		}
	}
	return count
}
