package trellis

// HitShape is used for custom hit testing regions, in local coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// Element is the single node type of the UI tree. Widgets are built by
// configuring its Capabilities, Hooks, Drawable and text rather than by
// wrapping it in further types.
type Element struct {
	Name string
	Hooks
	Caps Capabilities

	// Drawable paints the element's own content; Overlay paints after the
	// children have been composited (e.g. scrollbar highlights).
	Drawable Drawable
	Overlay  Drawable

	// HitShape, when set, replaces the bounds for pointer containment.
	HitShape HitShape

	DrawParams any
	UserData   any

	// Hierarchy
	tree     *Tree
	id       Handle
	parent   Handle
	children []*Element
	reorders []ReorderCommand
	tabIndex int

	// Geometry
	bounds            Rect
	renderOffset      Vec2
	minW, minH        float64
	clip              Rect
	hasClip           bool
	constrainToParent bool

	locationChanged bool
	sizeChanged     bool
	boundsChanged   bool

	// Visibility
	enabled bool
	visible bool
	opacity float64

	// Redraw cache
	needsRedraw   bool
	surfaceResize bool
	surface       Surface

	// Interaction state, derived by the router every frame.
	mouseHovering bool
	mousePressed  bool
	dragged       bool
	focused       bool
	containsFocus bool
	containsMouse bool

	// Text
	text             string
	textProps        TextProps
	textCache        TextCache
	textChanged      bool
	textPropsChanged bool

	disposed bool
}

const defaultMinSize = 1

// NewElement creates a detached element owned by this tree. It becomes part
// of the live tree once appended to an attached element.
func (t *Tree) NewElement(name string) *Element {
	e := &Element{
		Name:        name,
		tree:        t,
		tabIndex:    -1,
		minW:        defaultMinSize,
		minH:        defaultMinSize,
		bounds:      Rect{Width: defaultMinSize, Height: defaultMinSize},
		enabled:     true,
		visible:     true,
		opacity:     1,
		needsRedraw: true,
		textProps:   t.defaultTextProps(),
	}
	e.id = t.arena.insert(e)
	return e
}

// NewElementWithBounds is a convenience for NewElement followed by SetBounds.
func (t *Tree) NewElementWithBounds(name string, bounds Rect) *Element {
	e := t.NewElement(name)
	e.SetBounds(bounds)
	return e
}

// ID returns the element's stable handle.
func (e *Element) ID() Handle { return e.id }

// Tree returns the tree that owns this element.
func (e *Element) Tree() *Tree { return e.tree }

// Parent returns the parent element, or nil for the root and detached elements.
func (e *Element) Parent() *Element {
	if e.parent.IsZero() || e.tree == nil {
		return nil
	}
	return e.tree.arena.get(e.parent)
}

// Children returns the child list, back to front. The returned slice MUST
// NOT be mutated by the caller.
func (e *Element) Children() []*Element { return e.children }

// NumChildren returns the number of children.
func (e *Element) NumChildren() int { return len(e.children) }

// ChildAt returns the child at the given index.
func (e *Element) ChildAt(index int) *Element { return e.children[index] }

// IsDisposed reports whether Dispose has been called.
func (e *Element) IsDisposed() bool { return e.disposed }

// IsAttached reports whether the element is reachable from the tree root.
func (e *Element) IsAttached() bool {
	if e.tree == nil || e.disposed {
		return false
	}
	for n := e; n != nil; n = n.Parent() {
		if n == e.tree.root {
			return true
		}
	}
	return false
}

// IsAncestorOf reports whether e is a strict ancestor of other.
func (e *Element) IsAncestorOf(other *Element) bool {
	if other == nil {
		return false
	}
	for p := other.Parent(); p != nil; p = p.Parent() {
		if p == e {
			return true
		}
	}
	return false
}

func (e *Element) isAncestorOrSelf(other *Element) bool {
	return e == other || e.IsAncestorOf(other)
}

// Depth returns the number of ancestors above the element.
func (e *Element) Depth() int {
	d := 0
	for p := e.Parent(); p != nil; p = p.Parent() {
		d++
	}
	return d
}

// --- Tree manipulation ---

// Append makes child the front-most child of e. If child already has a
// parent it is detached from it first. Panics if child is nil, belongs to
// another tree, is e or one of its ancestors, or is constrained to its parent
// and larger than e. A failed Append leaves the tree unchanged.
func (e *Element) Append(child *Element) {
	if child == nil {
		panic("trellis: cannot append nil child")
	}
	if e.tree.debug {
		debugCheckDisposed(e, "Append (parent)")
		debugCheckDisposed(child, "Append (child)")
	}
	if child.tree != e.tree {
		panic("trellis: cannot append an element from another tree")
	}
	if child == e || child.IsAncestorOf(e) {
		panic("trellis: appending child would create a cycle")
	}
	old := child.Parent()
	if old == e {
		child.ToggleRedraw()
		return
	}
	if child.constrainToParent {
		mustFit(child, e, child.bounds.Width, child.bounds.Height)
	}

	var focusChain []*Element
	if child.containsFocus {
		focusChain = ancestorsOf(old)
	}
	if old != nil {
		old.removeChildByPtr(child)
		if old.OnChildRemoved != nil {
			old.OnChildRemoved(old, child)
		}
		old.ToggleRedraw()
	}

	child.parent = e.id
	e.children = append(e.children, child)
	if child.Caps.Tabbable && child.tabIndex < 0 {
		child.tabIndex = e.tree.nextTabIndex
		e.tree.nextTabIndex++
	}
	if child.constrainToParent {
		child.setRect(child.bounds.X, child.bounds.Y, child.bounds.Width, child.bounds.Height)
	}
	if focusChain != nil {
		e.tree.session.reconcileContainsFocus(focusChain)
	}

	if child.OnParentChanged != nil {
		child.OnParentChanged(child)
	}
	if child.OnParentSet != nil {
		child.OnParentSet(child)
	}
	if e.OnChildAppended != nil {
		e.OnChildAppended(e, child)
	}
	child.ToggleRedraw()

	if e.tree.debug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(e)
	}
}

// Remove detaches child from e, optionally disposing it. Routing targets
// inside the removed subtree are released. Panics if child's parent is not e.
func (e *Element) Remove(child *Element, dispose bool) {
	if child == nil || child.Parent() != e {
		panic("trellis: child's parent is not this element")
	}
	e.tree.session.releaseSubtree(child)
	e.removeChildByPtr(child)
	child.parent = Handle{}
	if e.OnChildRemoved != nil {
		e.OnChildRemoved(e, child)
	}
	if child.OnParentUnset != nil {
		child.OnParentUnset(child)
	}
	if dispose {
		child.Dispose()
	}
	e.ToggleRedraw()
}

// RemoveFromParent detaches this element from its parent without disposing
// it. No-op if the element has no parent.
func (e *Element) RemoveFromParent() {
	if p := e.Parent(); p != nil {
		p.Remove(e, false)
	}
}

// RemoveChildren detaches all children, optionally disposing them.
func (e *Element) RemoveChildren(dispose bool) {
	for len(e.children) > 0 {
		e.Remove(e.children[len(e.children)-1], dispose)
	}
}

// removeChildByPtr removes child from e.children without touching
// child.parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}

// --- Deferred reordering ---

// ReorderKind selects the direction of a queued reorder.
type ReorderKind uint8

const (
	ReorderToFront ReorderKind = iota // last child: drawn last, routed first
	ReorderToBack                     // first child
)

// ReorderCommand is a queued sibling reorder, applied by the parent during
// the next pre-update pass.
type ReorderCommand struct {
	Kind  ReorderKind
	Child Handle
}

// MoveToFront queues this element to become its parent's front-most child.
// The move is applied at the start of the next frame, because the call
// usually comes from a routing pass that is iterating the sibling list.
func (e *Element) MoveToFront() { e.queueReorder(ReorderToFront) }

// MoveToBack queues this element to become its parent's back-most child.
func (e *Element) MoveToBack() { e.queueReorder(ReorderToBack) }

func (e *Element) queueReorder(kind ReorderKind) {
	p := e.Parent()
	if p == nil {
		return
	}
	p.reorders = append(p.reorders, ReorderCommand{Kind: kind, Child: e.id})
}

// PendingReorders returns the reorder commands queued on this element. The
// returned slice MUST NOT be mutated by the caller.
func (e *Element) PendingReorders() []ReorderCommand { return e.reorders }

// flushReorders applies queued reorder commands and reports whether any
// child actually moved.
func (e *Element) flushReorders() bool {
	moved := false
	for _, cmd := range e.reorders {
		child := e.tree.arena.get(cmd.Child)
		if child == nil || child.Parent() != e {
			continue
		}
		idx := -1
		for i, c := range e.children {
			if c == child {
				idx = i
				break
			}
		}
		switch cmd.Kind {
		case ReorderToFront:
			if idx == len(e.children)-1 {
				continue
			}
			copy(e.children[idx:], e.children[idx+1:])
			e.children[len(e.children)-1] = child
		case ReorderToBack:
			if idx == 0 {
				continue
			}
			copy(e.children[1:idx+1], e.children[:idx])
			e.children[0] = child
		}
		moved = true
	}
	clear(e.reorders)
	e.reorders = e.reorders[:0]
	return moved
}

// --- Disposal ---

// Dispose removes the element from its parent, releases its cached surface
// and text layout, clears any routing target pointing at it and recursively
// disposes all descendants. Safe to call from any callback; the element turns
// inert immediately so routing passes already in progress skip it.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.enabled = false
	e.visible = false
	t := e.tree
	t.session.forget(e)

	for len(e.children) > 0 {
		e.children[len(e.children)-1].Dispose()
	}
	if p := e.Parent(); p != nil {
		p.Remove(e, false)
	}
	if e.OnDispose != nil {
		e.OnDispose(e)
	}

	e.disposed = true
	if e.surface != nil {
		e.surface.Dispose()
		e.surface = nil
	}
	e.textCache.Dispose()
	e.reorders = nil
	e.children = nil
	t.arena.release(e.id)
	t.logger.Debug("element disposed", "element", e.Name, "id", e.id.String())

	e.Hooks = Hooks{}
	e.Drawable = nil
	e.Overlay = nil
	e.HitShape = nil
	e.DrawParams = nil
	e.UserData = nil
}

// --- Traversal ---

// Flatten returns the element and all its descendants in pre-order.
func (e *Element) Flatten() []*Element {
	return e.appendFlat(nil)
}

func (e *Element) appendFlat(buf []*Element) []*Element {
	buf = append(buf, e)
	for _, c := range e.children {
		buf = c.appendFlat(buf)
	}
	return buf
}

// Walk calls fn for the element and each descendant in pre-order. Returning
// false from fn skips that element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for i := 0; i < len(e.children); i++ {
		e.children[i].Walk(fn)
	}
}

// Collect returns the elements of the subtree, in pre-order, for which
// match returns true.
func (e *Element) Collect(match func(*Element) bool) []*Element {
	var out []*Element
	e.Walk(func(n *Element) bool {
		if match(n) {
			out = append(out, n)
		}
		return true
	})
	return out
}

// FindByName returns the first element in pre-order with the given name.
func (e *Element) FindByName(name string) *Element {
	var found *Element
	e.Walk(func(n *Element) bool {
		if found != nil {
			return false
		}
		if n.Name == name {
			found = n
			return false
		}
		return true
	})
	return found
}

// ancestorsOf returns e and its ancestors, bottom-up.
func ancestorsOf(e *Element) []*Element {
	var chain []*Element
	for n := e; n != nil; n = n.Parent() {
		chain = append(chain, n)
	}
	return chain
}

// --- Visibility ---

// Enabled reports whether the element takes part in update and render.
func (e *Element) Enabled() bool { return e.enabled }

// SetEnabled enables or disables the element. Disabled elements are skipped
// by every frame pass.
func (e *Element) SetEnabled(enabled bool) {
	if e.disposed || e.enabled == enabled {
		return
	}
	e.enabled = enabled
	if !enabled {
		e.tree.session.releaseSubtree(e)
	}
	e.invalidateParent()
}

// Visible reports whether the element is rendered.
func (e *Element) Visible() bool { return e.visible }

// SetVisible shows or hides the element. Hidden elements still update.
func (e *Element) SetVisible(visible bool) {
	if e.disposed || e.visible == visible {
		return
	}
	e.visible = visible
	if !visible {
		e.tree.session.releaseSubtree(e)
	}
	e.invalidateParent()
}

// Opacity returns the compositing alpha.
func (e *Element) Opacity() float64 { return e.opacity }

// SetOpacity sets the compositing alpha, clamped to [0, 1].
func (e *Element) SetOpacity(a float64) {
	a = clamp01(a)
	if e.opacity == a {
		return
	}
	e.opacity = a
	e.invalidateParent()
}

// --- Interaction state (read-only) ---

// MouseHovering reports whether the element is the hover target this frame.
func (e *Element) MouseHovering() bool { return e.mouseHovering }

// MousePressed reports whether a mouse button is held on the element.
func (e *Element) MousePressed() bool { return e.mousePressed }

// Dragged reports whether the element holds the drag capture.
func (e *Element) Dragged() bool { return e.dragged }

// Focused reports whether the element is the focus target.
func (e *Element) Focused() bool { return e.focused }

// ContainsFocus reports whether the element or a descendant has focus.
func (e *Element) ContainsFocus() bool { return e.containsFocus }

// ContainsMouse reports whether the pointer was inside the element during
// the last mouse routing pass.
func (e *Element) ContainsMouse() bool { return e.containsMouse }

// TabIndex returns the element's tab index, or -1 if none was assigned.
func (e *Element) TabIndex() int { return e.tabIndex }

// SetTabIndex sets the element's position in tab order among its siblings.
func (e *Element) SetTabIndex(i int) { e.tabIndex = i }

// Focus requests keyboard focus for this element. The request is applied at
// the start of the next frame and is dropped if the element cannot take
// focus by then.
func (e *Element) Focus() {
	e.tree.session.RequestFocus(e)
}
