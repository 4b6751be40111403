package trellis

import (
	"fmt"
	"time"
)

// SetDebugMode enables or disables debug mode. When enabled, operations on
// disposed elements panic, tree depth and child count warnings are logged,
// and per-frame redraw stats are logged at debug level.
func (t *Tree) SetDebugMode(enabled bool) {
	t.debug = enabled
}

// DebugMode reports whether debug mode is on.
func (t *Tree) DebugMode() bool { return t.debug }

// debugCheckDisposed panics with a descriptive message when a disposed
// element is used in a tree operation. Callers only invoke it in debug mode.
func debugCheckDisposed(e *Element, op string) {
	if e.disposed {
		panic(fmt.Sprintf("trellis debug: %s on disposed element %q (handle was %s)", op, e.Name, e.id))
	}
}

const debugMaxTreeDepth = 32

// debugCheckTreeDepth warns if the element sits deeper than the threshold.
func debugCheckTreeDepth(e *Element) {
	if d := e.Depth() + 1; d > debugMaxTreeDepth {
		e.tree.logger.Warn("tree depth exceeds threshold",
			"element", e.Name, "depth", d, "threshold", debugMaxTreeDepth)
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount warns if an element has more than 1000 children.
func debugCheckChildCount(e *Element) {
	if n := len(e.children); n > debugMaxChildCount {
		e.tree.logger.Warn("child count exceeds threshold",
			"element", e.Name, "children", n, "threshold", debugMaxChildCount)
	}
}

// debugLogFrame logs the redraw stats of the frame just rendered.
func (t *Tree) debugLogFrame() {
	now := time.Now()
	var frameTime time.Duration
	if !t.lastRender.IsZero() {
		frameTime = now.Sub(t.lastRender)
	}
	t.lastRender = now
	st := t.Stats()
	t.logger.Debug("frame rendered",
		"frame", st.Frame,
		"redraws", st.FrameRedraws,
		"total_redraws", st.TotalRedraws,
		"elements", st.Elements,
		"frame_time", frameTime)
}
