package trellis

import "github.com/hajimehoshi/ebiten/v2"

// EventSink receives a record of every routing callback the tree
// dispatches. Set with Tree.SetEventSink.
type EventSink interface {
	HandleRoutingEvent(ev RoutingEvent)
}

// RoutingEvent describes one dispatched routing callback.
type RoutingEvent struct {
	Type      EventType
	Element   Handle
	Name      string
	X, Y      float64
	Button    MouseButton
	Key       ebiten.Key
	Text      string
	Modifiers KeyModifiers
}

// RoutingSession holds the tree-wide interaction state: the single hover,
// focus and drag targets. Only the router writes these slots; widget code
// requests changes through Element.Focus and Capabilities.Draggable.
type RoutingSession struct {
	tree *Tree

	hover Handle
	focus Handle
	drag  Handle

	pendingFocus Handle
	focusPending bool

	dragButton MouseButton
	dragStart  Vec2
	lastX      float64
	lastY      float64
}

// HoverTarget returns the element under the pointer, or nil.
func (s *RoutingSession) HoverTarget() *Element { return s.tree.arena.get(s.hover) }

// FocusTarget returns the element holding keyboard focus, or nil.
func (s *RoutingSession) FocusTarget() *Element { return s.tree.arena.get(s.focus) }

// DragTarget returns the element holding drag capture, or nil.
func (s *RoutingSession) DragTarget() *Element { return s.tree.arena.get(s.drag) }

// PendingFocus returns the element a focus request is queued for. The second
// result reports whether a request is queued at all; a queued request with a
// nil element clears focus.
func (s *RoutingSession) PendingFocus() (*Element, bool) {
	return s.tree.arena.get(s.pendingFocus), s.focusPending
}

// RequestFocus queues a focus transfer to e, applied at the start of the
// next pre-update pass. A nil e clears focus. A later request replaces an
// earlier one.
func (s *RoutingSession) RequestFocus(e *Element) {
	s.pendingFocus = Handle{}
	if e != nil {
		s.pendingFocus = e.id
	}
	s.focusPending = true
}

func (s *RoutingSession) applyPendingFocus() {
	if !s.focusPending {
		return
	}
	s.focusPending = false
	h := s.pendingFocus
	s.pendingFocus = Handle{}
	target := s.tree.arena.get(h)
	if target == nil && !h.IsZero() {
		// The requested element was disposed before the request was applied.
		return
	}
	s.setFocus(target)
}

// canFocus reports whether e may become the focus target.
func canFocus(e *Element) bool {
	return e != nil && !e.disposed && e.Caps.Focusable && e.enabled && e.visible && e.IsAttached()
}

// setFocus runs the focus transfer. Ancestors shared by the old and new
// targets keep their contains-focus flag without a notification.
func (s *RoutingSession) setFocus(target *Element) {
	log := s.tree.logger
	if target != nil && !canFocus(target) {
		log.Warn("focus request dropped", "element", target.Name)
		return
	}
	old := s.FocusTarget()
	if old == target {
		return
	}
	oldChain := ancestorsOf(old)

	if old != nil {
		s.focus = Handle{}
		old.focused = false
		if old.OnFocusLost != nil {
			old.OnFocusLost(old)
		}
		s.emit(RoutingEvent{Type: EventFocusLost}, old)
	}
	if target != nil && !target.disposed {
		s.focus = target.id
		target.focused = true
		if target.OnFocusGained != nil {
			target.OnFocusGained(target)
		}
		s.emit(RoutingEvent{Type: EventFocusGained}, target)
	}
	log.Debug("focus transferred", "from", nameOf(old), "to", nameOf(target))

	s.reconcileContainsFocus(oldChain)
}

// reconcileContainsFocus marks every ancestor of the current focus target
// and unmarks the nodes of oldChain (bottom-up) that no longer contain it.
// The unmarking walk stops at the first node that still contains focus.
func (s *RoutingSession) reconcileContainsFocus(oldChain []*Element) {
	focus := s.FocusTarget()
	for n := focus; n != nil; n = n.Parent() {
		if !n.containsFocus {
			n.containsFocus = true
			if n.OnContainsFocusGained != nil {
				n.OnContainsFocusGained(n)
			}
		}
	}
	for _, n := range oldChain {
		if focus != nil && n.isAncestorOrSelf(focus) {
			break
		}
		if n.containsFocus {
			n.containsFocus = false
			if n.OnContainsFocusLost != nil && !n.disposed {
				n.OnContainsFocusLost(n)
			}
		}
	}
}

// Blur clears keyboard focus immediately.
func (s *RoutingSession) Blur() {
	s.setFocus(nil)
}

// beginDrag gives e the drag capture.
func (s *RoutingSession) beginDrag(e *Element, ptr PointerSnapshot, b MouseButton) {
	s.drag = e.id
	s.dragButton = b
	s.dragStart = Vec2{X: ptr.X, Y: ptr.Y}
	e.dragged = true
	s.tree.logger.Debug("drag start", "element", e.Name)
	if e.OnDragStart != nil {
		e.OnDragStart(s.dragContext(e, ptr))
	}
	s.emit(RoutingEvent{Type: EventDragStart, X: ptr.X, Y: ptr.Y, Button: b, Modifiers: ptr.Modifiers}, e)
}

// updateDrag runs the captured element's drag hooks for this frame. It ends
// the capture when the drag button is released and reports whether a drag
// is still active afterwards.
func (s *RoutingSession) updateDrag(ptr PointerSnapshot) bool {
	d := s.DragTarget()
	if d == nil {
		s.drag = Handle{}
		return false
	}
	st := ptr.Buttons[s.dragButton]
	if st.Up || !st.Pressed {
		s.endDrag(d, ptr, true)
		return false
	}
	d.dragged = true
	d.mousePressed = true
	if d.OnDrag != nil {
		d.OnDrag(s.dragContext(d, ptr))
	}
	s.emit(RoutingEvent{Type: EventDrag, X: ptr.X, Y: ptr.Y, Button: s.dragButton, Modifiers: ptr.Modifiers}, d)
	return !s.drag.IsZero()
}

func (s *RoutingSession) endDrag(d *Element, ptr PointerSnapshot, notify bool) {
	s.drag = Handle{}
	d.dragged = false
	s.tree.logger.Debug("drag stop", "element", d.Name)
	if !notify {
		return
	}
	if d.OnDragStop != nil {
		d.OnDragStop(s.dragContext(d, ptr))
	}
	s.emit(RoutingEvent{Type: EventDragStop, X: ptr.X, Y: ptr.Y, Button: s.dragButton, Modifiers: ptr.Modifiers}, d)
}

func (s *RoutingSession) dragContext(e *Element, ptr PointerSnapshot) DragContext {
	return DragContext{
		Element:   e,
		ScreenX:   ptr.X,
		ScreenY:   ptr.Y,
		StartX:    s.dragStart.X,
		StartY:    s.dragStart.Y,
		DeltaX:    ptr.X - s.lastX,
		DeltaY:    ptr.Y - s.lastY,
		Button:    s.dragButton,
		Modifiers: ptr.Modifiers,
	}
}

// setHover moves the hover target. Enter and leave fire only for targets
// that take mouse input.
func (s *RoutingSession) setHover(target *Element, ptr PointerSnapshot) {
	old := s.HoverTarget()
	if old == target {
		if target != nil {
			target.mouseHovering = true
		}
		return
	}
	s.hover = Handle{}
	if old != nil {
		old.mouseHovering = false
		if old.Caps.MouseInput {
			if old.OnMouseLeave != nil {
				old.OnMouseLeave(s.tree.mouseContext(old, ptr, MouseButtonLeft))
			}
			s.emit(RoutingEvent{Type: EventMouseLeave, X: ptr.X, Y: ptr.Y, Modifiers: ptr.Modifiers}, old)
		}
	}
	if target == nil || target.disposed {
		return
	}
	s.hover = target.id
	target.mouseHovering = true
	if target.Caps.MouseInput {
		if target.OnMouseEnter != nil {
			target.OnMouseEnter(s.tree.mouseContext(target, ptr, MouseButtonLeft))
		}
		s.emit(RoutingEvent{Type: EventMouseEnter, X: ptr.X, Y: ptr.Y, Modifiers: ptr.Modifiers}, target)
	}
}

// releaseSubtree clears every routing slot held by e or a descendant, as
// when the subtree is removed, disabled or hidden. Leave, drag-stop and
// focus-lost notifications fire as usual.
func (s *RoutingSession) releaseSubtree(e *Element) {
	s.release(e, true)
}

// forget clears every routing slot held by e or a descendant while e is
// being disposed. Only the focus notifications fire, since ancestors outside
// the subtree must see contains-focus unwind.
func (s *RoutingSession) forget(e *Element) {
	s.release(e, false)
}

func (s *RoutingSession) release(e *Element, notify bool) {
	ptr := PointerSnapshot{X: s.lastX, Y: s.lastY}
	if h := s.HoverTarget(); h != nil && e.isAncestorOrSelf(h) {
		if notify {
			s.setHover(nil, ptr)
		} else {
			s.hover = Handle{}
			h.mouseHovering = false
		}
	}
	if d := s.DragTarget(); d != nil && e.isAncestorOrSelf(d) {
		s.endDrag(d, ptr, notify)
	}
	if f := s.FocusTarget(); f != nil && e.isAncestorOrSelf(f) {
		s.setFocus(nil)
	}
	if p := s.tree.arena.get(s.pendingFocus); p != nil && e.isAncestorOrSelf(p) {
		s.pendingFocus = Handle{}
		s.focusPending = false
	}
}

func (s *RoutingSession) emit(ev RoutingEvent, e *Element) {
	sink := s.tree.sink
	if sink == nil {
		return
	}
	ev.Element = e.id
	ev.Name = e.Name
	sink.HandleRoutingEvent(ev)
}

func nameOf(e *Element) string {
	if e == nil {
		return ""
	}
	return e.Name
}
