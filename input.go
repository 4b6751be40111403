package trellis

// --- Built-in HitShape types ---

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// HitCircle is a circular hit area in local coordinates.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area in local coordinates.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using a
// cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}
	var positive, negative bool
	for i := 0; i < n; i++ {
		a := p.Points[i]
		b := p.Points[(i+1)%n]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// --- Pointer snapshot ---

// ButtonState is the per-tick state of one mouse button.
type ButtonState struct {
	Down        bool // went down this tick
	Pressed     bool // held, including the tick it went down
	Up          bool // went up this tick
	DoubleClick bool // this tick's Down completed a double click
}

// PointerSnapshot is the immutable pointer state for one tick, in screen
// coordinates.
type PointerSnapshot struct {
	X, Y      float64
	Buttons   [mouseButtonCount]ButtonState
	WheelX    float64
	WheelY    float64
	Modifiers KeyModifiers
}

// Button returns the state of button b.
func (p PointerSnapshot) Button(b MouseButton) ButtonState {
	if int(b) >= len(p.Buttons) {
		return ButtonState{}
	}
	return p.Buttons[b]
}

// --- Mouse routing ---

// RouteMouse runs one mouse routing pass. The active drag capture, if any,
// gets its drag hooks first and then owns the pointer exclusively for the
// rest of the pass. Otherwise the tree is hit-tested front to back and the
// deepest eligible element under the pointer becomes the hover target and
// receives button events.
//
// Reports whether the pointer was claimed by a drag or by an element other
// than the root.
func (t *Tree) RouteMouse(ptr PointerSnapshot) bool {
	s := &t.session
	dragging := s.updateDrag(ptr)
	handler := t.route(t.root, ptr)
	if handler == nil && !dragging {
		s.setHover(nil, ptr)
	}
	s.lastX, s.lastY = ptr.X, ptr.Y
	return dragging || (handler != nil && handler != t.root)
}

// route handles e and its subtree and returns the element that claimed the
// pointer, or nil.
func (t *Tree) route(e *Element, ptr PointerSnapshot) *Element {
	if e.disposed || !e.enabled || !e.visible {
		return nil
	}
	s := &t.session
	inside := e.ContainsScreenPoint(ptr.X, ptr.Y)
	e.containsMouse = inside

	if d := s.DragTarget(); d != nil {
		if d == e {
			return e
		}
		return nil
	}
	if !inside {
		return nil
	}

	eligible := e.Caps.MouseInput
	if eligible && (ptr.WheelX != 0 || ptr.WheelY != 0) && (!e.Caps.WheelNeedsFocus || e.focused) {
		if e.OnMouseWheel != nil {
			e.OnMouseWheel(t.mouseContext(e, ptr, MouseButtonMiddle))
		}
		s.emit(RoutingEvent{Type: EventMouseWheel, X: ptr.X, Y: ptr.Y, Modifiers: ptr.Modifiers}, e)
		if e.disposed {
			return nil
		}
	}

	// Front-most children first. Callbacks may shrink the list.
	for i := len(e.children) - 1; i >= 0; i-- {
		if i >= len(e.children) {
			continue
		}
		if h := t.route(e.children[i], ptr); h != nil {
			return h
		}
	}

	if !eligible && e != t.root {
		return nil
	}
	// The root takes hover even without mouse input, so "over nothing" is
	// still a hover state. It never receives button events that way.
	s.setHover(e, ptr)
	if e.disposed {
		return nil
	}
	if !eligible {
		return e
	}
	t.processButtons(e, ptr)
	return e
}

// processButtons delivers the button semantics of one tick to e.
func (t *Tree) processButtons(e *Element, ptr PointerSnapshot) {
	s := &t.session
	for b := MouseButton(0); b < mouseButtonCount; b++ {
		st := ptr.Buttons[b]
		if !st.Down && !st.Pressed && !st.Up && !st.DoubleClick {
			continue
		}
		ctx := t.mouseContext(e, ptr, b)
		ev := RoutingEvent{X: ptr.X, Y: ptr.Y, Button: b, Modifiers: ptr.Modifiers}
		fire := func(typ EventType, fn func(MouseContext)) bool {
			if fn != nil {
				fn(ctx)
			}
			ev.Type = typ
			s.emit(ev, e)
			return !e.disposed
		}

		if b == MouseButtonLeft && st.Down && e.Caps.Draggable && s.drag.IsZero() {
			s.beginDrag(e, ptr, b)
			if e.disposed {
				return
			}
		}
		if st.Pressed {
			e.mousePressed = true
			if !fire(EventMousePressed, e.OnMousePressed) {
				return
			}
		}
		if st.Down {
			if e.Caps.Focusable && !e.focused {
				e.Focus()
			}
			if !fire(EventMouseDown, e.OnMouseDown) {
				return
			}
		}
		if st.Up {
			if !fire(EventMouseUp, e.OnMouseUp) {
				return
			}
			if !fire(EventClick, e.OnClick) {
				return
			}
		}
		if st.DoubleClick && e.focused {
			if !fire(EventDoubleClick, e.OnDoubleClick) {
				return
			}
		}
	}
}

func (t *Tree) mouseContext(e *Element, ptr PointerSnapshot, b MouseButton) MouseContext {
	lx, ly := e.ScreenToLocal(ptr.X, ptr.Y)
	return MouseContext{
		Element:   e,
		ScreenX:   ptr.X,
		ScreenY:   ptr.Y,
		LocalX:    lx,
		LocalY:    ly,
		Button:    b,
		WheelX:    ptr.WheelX,
		WheelY:    ptr.WheelY,
		Modifiers: ptr.Modifiers,
	}
}
