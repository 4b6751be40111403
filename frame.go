package trellis

// FrameResult reports what one Tick did with the input it was given.
type FrameResult struct {
	MouseConsumed    bool
	KeyboardConsumed bool
}

// Tick runs one update tick in the fixed order: pre-update, mouse routing,
// keyboard routing, update, late-update. Render is called separately from
// the draw callback of the frame pump.
func (t *Tree) Tick(ptr PointerSnapshot, keys KeySnapshot, dt float64) FrameResult {
	t.PreUpdate()
	var res FrameResult
	res.MouseConsumed = t.RouteMouse(ptr)
	res.KeyboardConsumed = t.RouteKeyboard(keys)
	t.Update(dt)
	t.LateUpdate()
	return res
}

// Frame returns the number of pre-update passes run so far.
func (t *Tree) Frame() uint64 { return t.frame }

// PreUpdate starts a frame: the pending focus request is applied, then
// every enabled element has its per-frame interaction flags reset, its
// queued reorders flushed and finally its OnPreUpdate hook called after its
// children.
func (t *Tree) PreUpdate() {
	t.frame++
	t.session.applyPendingFocus()
	t.preUpdate(t.root)
}

func (t *Tree) preUpdate(e *Element) {
	if !e.enabled || e.disposed {
		return
	}
	s := &t.session
	e.mouseHovering = s.drag == e.id
	e.dragged = s.drag == e.id
	e.focused = s.focus == e.id
	e.mousePressed = false
	e.containsMouse = false

	if len(e.reorders) > 0 && e.flushReorders() {
		e.ToggleRedraw()
		t.logger.Debug("children reordered", "element", e.Name)
	}
	base := t.pushChildren(e)
	for i := base; i < len(t.walk); i++ {
		if c := t.walk[i]; c.parent == e.id {
			t.preUpdate(c)
		}
	}
	t.popChildren(base)
	if e.OnPreUpdate != nil && !e.disposed {
		e.OnPreUpdate(e)
	}
}

// Update calls OnUpdate on every enabled element, parents before children.
func (t *Tree) Update(dt float64) {
	t.update(t.root, dt)
}

func (t *Tree) update(e *Element, dt float64) {
	if !e.enabled || e.disposed {
		return
	}
	if e.OnUpdate != nil {
		e.OnUpdate(e, dt)
		if e.disposed {
			return
		}
	}
	base := t.pushChildren(e)
	for i := base; i < len(t.walk); i++ {
		if c := t.walk[i]; c.parent == e.id {
			t.update(c, dt)
		}
	}
	t.popChildren(base)
}

// LateUpdate fires the deferred change events of every enabled element, each
// at most once per frame, and clears the change flags.
func (t *Tree) LateUpdate() {
	t.lateUpdate(t.root)
}

func (t *Tree) lateUpdate(e *Element) {
	if !e.enabled || e.disposed {
		return
	}
	if e.locationChanged {
		e.locationChanged = false
		if e.OnLocationChanged != nil {
			e.OnLocationChanged(e)
		}
	}
	if e.sizeChanged {
		e.sizeChanged = false
		e.surfaceResize = true
		if e.OnSizeChanged != nil {
			e.OnSizeChanged(e)
		}
	}
	if e.boundsChanged {
		e.boundsChanged = false
		if e.OnBoundsChanged != nil {
			e.OnBoundsChanged(e)
		}
	}
	if e.textChanged {
		e.textChanged = false
		e.ToggleRedraw()
		if e.OnTextChanged != nil {
			e.OnTextChanged(e)
		}
	}
	if e.textPropsChanged {
		e.textPropsChanged = false
		e.ToggleRedraw()
		if e.OnTextPropertiesChanged != nil {
			e.OnTextPropertiesChanged(e)
		}
	}
	if e.disposed {
		return
	}
	base := t.pushChildren(e)
	for i := base; i < len(t.walk); i++ {
		if c := t.walk[i]; c.parent == e.id {
			t.lateUpdate(c)
		}
	}
	t.popChildren(base)
}

// pushChildren copies e's child list onto the shared walk stack and returns
// where it starts. Passes iterate that copy, so a hook that removes or
// disposes an element does not shift its later siblings out of the walk.
// Every nested push is popped before it returns, so len(t.walk) bounds the
// caller's range between iterations.
func (t *Tree) pushChildren(e *Element) int {
	base := len(t.walk)
	t.walk = append(t.walk, e.children...)
	return base
}

func (t *Tree) popChildren(base int) {
	clear(t.walk[base:])
	t.walk = t.walk[:base]
}
