package trellis

// ToggleRedraw marks the element dirty together with every ancestor up to
// the root: an element's pixels live inside its parent's cached surface, so
// the whole chain has to be regenerated.
func (e *Element) ToggleRedraw() {
	for n := e; n != nil; n = n.Parent() {
		n.needsRedraw = true
	}
}

// NeedsRedraw reports whether the cached surface is stale.
func (e *Element) NeedsRedraw() bool { return e.needsRedraw }

// Surface returns the element's cached surface, or nil before the element
// has been rendered for the first time.
func (e *Element) Surface() Surface { return e.surface }

// invalidateParent marks the parent chain dirty after a change that only
// affects how the element is composited (position, opacity, visibility).
func (e *Element) invalidateParent() {
	if p := e.Parent(); p != nil {
		p.ToggleRedraw()
	}
}

// Render composites the tree onto target. Clean elements are blitted from
// their cached surfaces; dirty ones are regenerated first.
func (t *Tree) Render(target Surface) {
	if target == nil {
		panic("trellis: Render needs a target surface")
	}
	t.frameRedraws = 0
	t.composite(t.root, target, Vec2{})
	if t.debug {
		t.debugLogFrame()
	}
}

// composite draws e into dst, whose origin for e's bounds is shifted by
// origin (the parent's render offset).
func (t *Tree) composite(e *Element, dst Surface, origin Vec2) {
	if !e.enabled || !e.visible {
		return
	}
	if e.needsRedraw || e.surface == nil {
		t.redraw(e)
	}
	w, h := e.surface.Size()
	dst.DrawSurface(e.surface, Rect{
		X:      origin.X + e.bounds.X,
		Y:      origin.Y + e.bounds.Y,
		Width:  float64(w),
		Height: float64(h),
	}, e.opacity)
}

// redraw regenerates e's cached surface: own content, then every child
// composited into it, then the overlay.
func (t *Tree) redraw(e *Element) {
	w, h := e.surfaceSize()
	switch {
	case e.surface == nil:
		e.surface = t.device.NewSurface(w, h)
	case e.surfaceResize:
		if sw, sh := e.surface.Size(); sw != w || sh != h {
			e.surface.Resize(w, h)
		}
	}
	e.surfaceResize = false
	e.surface.Clear()

	ctx := DrawContext{
		Element: e,
		Surface: e.surface,
		Offset:  e.renderOffset,
		Tools:   t.drawTools,
		Params:  e.DrawParams,
	}
	if e.Drawable != nil {
		e.Drawable.Draw(&ctx)
	}
	if e.hasClip {
		e.surface.PushClip(e.clip)
	}
	for i := 0; i < len(e.children); i++ {
		t.composite(e.children[i], e.surface, e.renderOffset)
	}
	if e.hasClip {
		e.surface.PopClip()
	}
	if e.Overlay != nil {
		e.Overlay.Draw(&ctx)
	}

	e.needsRedraw = false
	t.redrawCount++
	t.frameRedraws++
}
