package trellis

import "github.com/hajimehoshi/ebiten/v2"

// KeySnapshot is the immutable keyboard state for one tick. Only one key
// auto-repeats at a time.
type KeySnapshot struct {
	Down      []ebiten.Key // went down this tick
	Up        []ebiten.Key // went up this tick
	Pressed   []ebiten.Key // held this tick
	Repeat    ebiten.Key
	HasRepeat bool
	Text      string
	Modifiers KeyModifiers
}

// RouteKeyboard delivers the tick's key events to the focus target. Tab
// moves focus forward, Shift+Tab backward. Reports whether the input was
// consumed: a callback ran and the target captures keyboard input.
func (t *Tree) RouteKeyboard(keys KeySnapshot) bool {
	s := &t.session
	f := s.FocusTarget()
	if f == nil || !f.Caps.KeyboardInput || !f.enabled || !f.visible {
		return false
	}
	fired := false
	deliver := func(typ EventType, fn func(KeyContext), k ebiten.Key) bool {
		if fn != nil {
			fn(KeyContext{Element: f, Key: k, Modifiers: keys.Modifiers})
			fired = true
		}
		s.emit(RoutingEvent{Type: typ, Key: k, Modifiers: keys.Modifiers}, f)
		return !f.disposed && s.FocusTarget() == f
	}

	for _, k := range keys.Down {
		if !deliver(EventKeyDown, f.OnKeyDown, k) {
			return fired && f.Caps.CaptureKeyboard
		}
		if k == ebiten.KeyTab {
			if keys.Modifiers&ModShift != 0 {
				t.TabPrevious(f)
			} else {
				t.TabNext(f)
			}
			fired = true
		}
	}
	for _, k := range keys.Pressed {
		if !deliver(EventKeyPressed, f.OnKeyPressed, k) {
			return fired && f.Caps.CaptureKeyboard
		}
	}
	for _, k := range keys.Up {
		if !deliver(EventKeyUp, f.OnKeyUp, k) {
			return fired && f.Caps.CaptureKeyboard
		}
	}
	if keys.HasRepeat {
		if !deliver(EventKeyRepeat, f.OnKeyRepeat, keys.Repeat) {
			return fired && f.Caps.CaptureKeyboard
		}
	}
	if keys.Text != "" {
		if f.OnTextInput != nil {
			f.OnTextInput(TextInputContext{Element: f, Text: keys.Text, Modifiers: keys.Modifiers})
			fired = true
		}
		s.emit(RoutingEvent{Type: EventTextInput, Text: keys.Text, Modifiers: keys.Modifiers}, f)
	}
	return fired && f.Caps.CaptureKeyboard
}

// --- Tab order ---

// TabNext requests focus for the tab stop after from and returns it, or nil
// when there is none. The search descends into from's children first
// (unless from stops tab recursion), then moves to the next sibling with a
// higher tab index, climbing the ancestors when a level is exhausted, and
// finally wraps to the first tab stop among from's siblings.
func (t *Tree) TabNext(from *Element) *Element {
	if from == nil {
		return nil
	}
	target := t.nextTabStop(from)
	return t.tabTo(from, target)
}

// TabPrevious requests focus for the tab stop before from and returns it,
// or nil. It mirrors TabNext: the previous sibling's last descendant, else
// a focusable parent, climbing the ancestors, finally wrapping to the last
// tab stop among from's siblings.
func (t *Tree) TabPrevious(from *Element) *Element {
	if from == nil {
		return nil
	}
	target := t.prevTabStop(from)
	return t.tabTo(from, target)
}

func (t *Tree) tabTo(from, target *Element) *Element {
	if target == nil || target == from {
		t.logger.Warn("no tab stop", "from", from.Name)
		return nil
	}
	target.Focus()
	return target
}

func (t *Tree) nextTabStop(from *Element) *Element {
	if !from.Caps.StopTabRecurse {
		if c := lowestTabChild(from); c != nil {
			return tabEntry(c)
		}
	}
	n := from
	for p := n.Parent(); p != nil; n, p = p, p.Parent() {
		if sib := nextTabSibling(p, n); sib != nil {
			return tabEntry(sib)
		}
	}
	if p := from.Parent(); p != nil {
		if c := lowestTabChild(p); c != nil {
			return tabEntry(c)
		}
	}
	return nil
}

func (t *Tree) prevTabStop(from *Element) *Element {
	n := from
	for p := n.Parent(); p != nil; n, p = p, p.Parent() {
		if sib := prevTabSibling(p, n); sib != nil {
			return tabExit(sib)
		}
		if isTabStop(p) && p.Caps.Focusable {
			return p
		}
	}
	if p := from.Parent(); p != nil {
		if c := highestTabChild(p); c != nil {
			return tabExit(c)
		}
	}
	return nil
}

func isTabStop(e *Element) bool {
	return e.Caps.Tabbable && e.tabIndex >= 0 && e.enabled && e.visible && !e.disposed
}

// lowestTabChild returns the tab stop child of e with the lowest tab index.
// Ties go to the earlier child.
func lowestTabChild(e *Element) *Element {
	var best *Element
	for _, c := range e.children {
		if isTabStop(c) && (best == nil || c.tabIndex < best.tabIndex) {
			best = c
		}
	}
	return best
}

// highestTabChild returns the tab stop child of e with the highest tab
// index. Ties go to the later child.
func highestTabChild(e *Element) *Element {
	var best *Element
	for _, c := range e.children {
		if isTabStop(c) && (best == nil || c.tabIndex >= best.tabIndex) {
			best = c
		}
	}
	return best
}

// nextTabSibling returns the child of p with the smallest tab index greater
// than self's.
func nextTabSibling(p, self *Element) *Element {
	var best *Element
	for _, c := range p.children {
		if c == self || !isTabStop(c) || c.tabIndex <= self.tabIndex {
			continue
		}
		if best == nil || c.tabIndex < best.tabIndex {
			best = c
		}
	}
	return best
}

// prevTabSibling returns the child of p with the largest tab index smaller
// than self's.
func prevTabSibling(p, self *Element) *Element {
	if self.tabIndex < 0 {
		return nil
	}
	var best *Element
	for _, c := range p.children {
		if c == self || !isTabStop(c) || c.tabIndex >= self.tabIndex {
			continue
		}
		if best == nil || c.tabIndex > best.tabIndex {
			best = c
		}
	}
	return best
}

// tabEntry descends from a tab stop into its first focusable tab stop.
func tabEntry(e *Element) *Element {
	for !e.Caps.Focusable && !e.Caps.StopTabRecurse {
		c := lowestTabChild(e)
		if c == nil {
			break
		}
		e = c
	}
	return e
}

// tabExit descends from a tab stop into its last tab stop, the element that
// precedes whatever follows e in tab order.
func tabExit(e *Element) *Element {
	for !e.Caps.StopTabRecurse {
		c := highestTabChild(e)
		if c == nil {
			break
		}
		e = c
	}
	return e
}
