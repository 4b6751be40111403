package trellis

import (
	"math"
	"testing"
)

func TestSetSizeRespectsMinimum(t *testing.T) {
	tests := []struct {
		name         string
		w, h         float64
		wantW, wantH float64
	}{
		{"above", 50, 40, 50, 40},
		{"equal", 10, 10, 10, 10},
		{"below", 3, 2, 10, 10},
		{"negative", -5, 20, 10, 20},
		{"nan", math.NaN(), math.NaN(), 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := newTestTree(t)
			e := tree.NewElement("e")
			e.SetMinSize(10, 10)
			e.SetSize(tt.w, tt.h)
			if e.Width() != tt.wantW || e.Height() != tt.wantH {
				t.Errorf("size = %vx%v, want %vx%v", e.Width(), e.Height(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestSetMinSizeRaisesCurrentSize(t *testing.T) {
	tree, _ := newTestTree(t)
	e := tree.NewElementWithBounds("e", Rect{Width: 5, Height: 50})
	e.SetMinSize(20, 20)
	if e.Width() != 20 || e.Height() != 50 {
		t.Errorf("size = %vx%v, want 20x50", e.Width(), e.Height())
	}
}

func TestSetMinSizePanicsOnNonPositive(t *testing.T) {
	tests := []struct {
		name string
		w, h float64
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, -1},
		{"nan", math.NaN(), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := newTestTree(t)
			e := tree.NewElement("e")
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			e.SetMinSize(tt.w, tt.h)
		})
	}
}

func TestGeometryEventsAreDeferredAndCoalesced(t *testing.T) {
	tree, _ := newTestTree(t)
	e := addChild(tree.Root(), "e", Rect{Width: 10, Height: 10}, Capabilities{})
	tick(tree, pointerAt(-1, -1)) // drain the events from construction

	var loc, size, bounds int
	e.OnLocationChanged = func(*Element) { loc++ }
	e.OnSizeChanged = func(*Element) { size++ }
	e.OnBoundsChanged = func(*Element) { bounds++ }

	e.SetLocation(5, 5)
	e.SetLocation(6, 6)
	e.SetSize(20, 20)
	e.SetSize(30, 30)
	if loc+size+bounds != 0 {
		t.Fatal("change events must not fire synchronously")
	}

	tree.LateUpdate()
	if loc != 1 || size != 1 || bounds != 1 {
		t.Errorf("loc=%d size=%d bounds=%d, want 1 each", loc, size, bounds)
	}

	tree.LateUpdate()
	if loc != 1 || size != 1 || bounds != 1 {
		t.Error("events should not repeat without a new change")
	}

	// Moving only does not report a size change.
	e.SetX(7)
	tree.LateUpdate()
	if loc != 2 || size != 1 || bounds != 2 {
		t.Errorf("loc=%d size=%d bounds=%d after move", loc, size, bounds)
	}
}

func TestSetBoundsNoChangeRaisesNothing(t *testing.T) {
	tree, _ := newTestTree(t)
	e := addChild(tree.Root(), "e", Rect{X: 1, Y: 2, Width: 10, Height: 10}, Capabilities{})
	tree.LateUpdate()
	tree.Render(&fakeSurface{w: 400, h: 300})

	var fired bool
	e.OnBoundsChanged = func(*Element) { fired = true }
	e.SetBounds(Rect{X: 1, Y: 2, Width: 10, Height: 10})
	tree.LateUpdate()
	if fired || tree.Root().NeedsRedraw() {
		t.Errorf("fired=%v rootDirty=%v, want neither", fired, tree.Root().NeedsRedraw())
	}
}

func TestResizeMarksElementDirty(t *testing.T) {
	tree, _ := newTestTree(t)
	e := addChild(tree.Root(), "e", Rect{Width: 10, Height: 10}, Capabilities{})
	tree.Render(&fakeSurface{w: 400, h: 300})

	e.SetSize(20, 10)
	if !e.NeedsRedraw() || !tree.Root().NeedsRedraw() {
		t.Error("resize should dirty the element and its ancestors")
	}
}

// --- Constrain to parent ---

func TestConstrainToParentClampsPosition(t *testing.T) {
	tests := []struct {
		name       string
		x, y       float64
		wantX, wantY float64
	}{
		{"inside", 10, 10, 10, 10},
		{"negative", -5, -7, 0, 0},
		{"past right", 95, 10, 80, 10},
		{"past bottom", 10, 200, 10, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _ := newTestTree(t)
			parent := addChild(tree.Root(), "p", Rect{Width: 100, Height: 100}, Capabilities{})
			child := addChild(parent, "c", Rect{Width: 20, Height: 20}, Capabilities{})
			child.SetConstrainToParent(true)

			child.SetLocation(tt.x, tt.y)
			if child.X() != tt.wantX || child.Y() != tt.wantY {
				t.Errorf("location = (%v, %v), want (%v, %v)", child.X(), child.Y(), tt.wantX, tt.wantY)
			}
		})
	}
}

func TestConstrainedChildTooLargePanics(t *testing.T) {
	tree, _ := newTestTree(t)
	parent := addChild(tree.Root(), "p", Rect{Width: 100, Height: 100}, Capabilities{})
	child := addChild(parent, "c", Rect{Width: 20, Height: 20}, Capabilities{})
	child.SetConstrainToParent(true)

	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	child.SetSize(200, 20)
}

func TestShrinkingParentBelowConstrainedChildPanics(t *testing.T) {
	tree, _ := newTestTree(t)
	parent := addChild(tree.Root(), "p", Rect{Width: 100, Height: 100}, Capabilities{})
	child := addChild(parent, "c", Rect{Width: 50, Height: 50}, Capabilities{})
	child.SetConstrainToParent(true)

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		parent.SetSize(40, 100)
	}()
	if got := parent.Bounds(); got != (Rect{Width: 100, Height: 100}) {
		t.Errorf("parent bounds = %v, should be unchanged after the panic", got)
	}
}

func TestShrinkingParentReclampsConstrainedChild(t *testing.T) {
	tree, _ := newTestTree(t)
	parent := addChild(tree.Root(), "p", Rect{Width: 100, Height: 100}, Capabilities{})
	child := addChild(parent, "c", Rect{X: 70, Y: 70, Width: 20, Height: 20}, Capabilities{})
	child.SetConstrainToParent(true)

	parent.SetSize(60, 60)
	if child.X() != 40 || child.Y() != 40 {
		t.Errorf("child location = (%v, %v), want (40, 40)", child.X(), child.Y())
	}
}

// --- Coordinate spaces ---

func TestScreenBoundsIncludesRenderOffsets(t *testing.T) {
	tree, _ := newTestTree(t)
	panel := addChild(tree.Root(), "panel", Rect{X: 100, Y: 50, Width: 200, Height: 200}, Capabilities{})
	list := addChild(panel, "list", Rect{X: 10, Y: 10, Width: 100, Height: 100}, Capabilities{})
	item := addChild(list, "item", Rect{X: 0, Y: 40, Width: 100, Height: 20}, Capabilities{})

	if got := item.ScreenBounds(); got != (Rect{X: 110, Y: 100, Width: 100, Height: 20}) {
		t.Errorf("ScreenBounds = %v", got)
	}

	list.SetRenderOffset(Vec2{Y: -30})
	if got := item.ScreenBounds(); got.Y != 70 {
		t.Errorf("scrolled ScreenBounds.Y = %v, want 70", got.Y)
	}
	// The offset only moves children, not the element itself.
	if got := list.ScreenBounds(); got.Y != 60 {
		t.Errorf("list ScreenBounds.Y = %v, want 60", got.Y)
	}

	lx, ly := item.ScreenToLocal(115, 75)
	if lx != 5 || ly != 5 {
		t.Errorf("ScreenToLocal = (%v, %v), want (5, 5)", lx, ly)
	}
	sx, sy := item.LocalToScreen(lx, ly)
	if sx != 115 || sy != 75 {
		t.Errorf("LocalToScreen = (%v, %v), want (115, 75)", sx, sy)
	}
}

func TestContainsScreenPointUsesHitShape(t *testing.T) {
	tree, _ := newTestTree(t)
	e := addChild(tree.Root(), "e", Rect{X: 100, Y: 100, Width: 40, Height: 40}, Capabilities{})

	if !e.ContainsScreenPoint(101, 101) {
		t.Error("corner should be inside the bounds")
	}
	if e.ContainsScreenPoint(140, 120) {
		t.Error("right edge is exclusive")
	}

	e.HitShape = HitCircle{CenterX: 20, CenterY: 20, Radius: 10}
	if e.ContainsScreenPoint(101, 101) {
		t.Error("corner should be outside the circle")
	}
	if !e.ContainsScreenPoint(120, 125) {
		t.Error("point near the center should be inside the circle")
	}
}

func TestClipChangesMarkDirty(t *testing.T) {
	tree, _ := newTestTree(t)
	e := addChild(tree.Root(), "e", Rect{Width: 40, Height: 40}, Capabilities{})
	tree.Render(&fakeSurface{w: 400, h: 300})

	e.SetClip(Rect{Width: 20, Height: 20})
	if r, ok := e.Clip(); !ok || r.Width != 20 {
		t.Errorf("Clip = %v, %v", r, ok)
	}
	if !e.NeedsRedraw() {
		t.Error("SetClip should mark dirty")
	}
	tree.Render(&fakeSurface{w: 400, h: 300})

	e.SetClip(Rect{Width: 20, Height: 20})
	if e.NeedsRedraw() {
		t.Error("same clip should not mark dirty")
	}
	e.ClearClip()
	if _, ok := e.Clip(); ok || !e.NeedsRedraw() {
		t.Error("ClearClip should remove the clip and mark dirty")
	}
}

func TestAppendConstrainedChildTooLargePanics(t *testing.T) {
	tree, _ := newTestTree(t)
	old := addChild(tree.Root(), "old", Rect{Width: 300, Height: 300}, Capabilities{})
	small := addChild(tree.Root(), "small", Rect{Width: 50, Height: 50}, Capabilities{})
	c := addChild(old, "c", Rect{Width: 100, Height: 100}, Capabilities{})
	c.SetConstrainToParent(true)
	tree.LateUpdate()

	var notified int
	old.OnChildRemoved = func(*Element, *Element) { notified++ }
	small.OnChildAppended = func(*Element, *Element) { notified++ }

	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected panic")
			}
		}()
		small.Append(c)
	}()

	if c.Parent() != old || old.NumChildren() != 1 || small.NumChildren() != 0 {
		t.Errorf("tree changed: parent=%q old=%d small=%d", nameOf(c.Parent()), old.NumChildren(), small.NumChildren())
	}
	if c.Bounds() != (Rect{Width: 100, Height: 100}) {
		t.Errorf("bounds = %v, want unchanged", c.Bounds())
	}
	if notified != 0 {
		t.Errorf("notifications = %d, want 0", notified)
	}
}

func TestAppendConstrainedChildThatFits(t *testing.T) {
	tree, _ := newTestTree(t)
	parent := addChild(tree.Root(), "p", Rect{Width: 100, Height: 100}, Capabilities{})
	c := tree.NewElementWithBounds("c", Rect{X: 90, Y: -5, Width: 20, Height: 20})
	c.SetConstrainToParent(true)

	parent.Append(c)
	if c.X() != 80 || c.Y() != 0 {
		t.Errorf("location = (%v, %v), want clamped to (80, 0)", c.X(), c.Y())
	}
}
