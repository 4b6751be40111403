package trellis

import (
	"fmt"
	"math"
)

// Bounds returns the element rectangle in parent-local space.
func (e *Element) Bounds() Rect { return e.bounds }

// X returns the left edge in parent-local space.
func (e *Element) X() float64 { return e.bounds.X }

// Y returns the top edge in parent-local space.
func (e *Element) Y() float64 { return e.bounds.Y }

// Width returns the element width.
func (e *Element) Width() float64 { return e.bounds.Width }

// Height returns the element height.
func (e *Element) Height() float64 { return e.bounds.Height }

// SetBounds moves and resizes the element.
func (e *Element) SetBounds(r Rect) { e.setRect(r.X, r.Y, r.Width, r.Height) }

// SetLocation moves the element within its parent.
func (e *Element) SetLocation(x, y float64) { e.setRect(x, y, e.bounds.Width, e.bounds.Height) }

// SetX moves the element horizontally.
func (e *Element) SetX(x float64) { e.setRect(x, e.bounds.Y, e.bounds.Width, e.bounds.Height) }

// SetY moves the element vertically.
func (e *Element) SetY(y float64) { e.setRect(e.bounds.X, y, e.bounds.Width, e.bounds.Height) }

// SetSize resizes the element. Values below the minimum size are raised to it.
func (e *Element) SetSize(w, h float64) { e.setRect(e.bounds.X, e.bounds.Y, w, h) }

// SetWidth resizes the element horizontally.
func (e *Element) SetWidth(w float64) { e.setRect(e.bounds.X, e.bounds.Y, w, e.bounds.Height) }

// SetHeight resizes the element vertically.
func (e *Element) SetHeight(h float64) { e.setRect(e.bounds.X, e.bounds.Y, e.bounds.Width, h) }

// MinSize returns the smallest width and height the element accepts.
func (e *Element) MinSize() (w, h float64) { return e.minW, e.minH }

// SetMinSize sets the smallest accepted width and height and raises the
// current size to it if needed. Panics on a non-positive minimum.
func (e *Element) SetMinSize(w, h float64) {
	if !(w > 0) || !(h > 0) {
		panic(fmt.Sprintf("trellis: minimum size of %q must be positive, got %vx%v", e.Name, w, h))
	}
	e.minW, e.minH = w, h
	e.setRect(e.bounds.X, e.bounds.Y, e.bounds.Width, e.bounds.Height)
}

// ConstrainToParent reports whether the element is kept inside its parent.
func (e *Element) ConstrainToParent() bool { return e.constrainToParent }

// SetConstrainToParent keeps the element's rectangle inside its parent's by
// clamping its position. An element larger than its parent is a layout bug
// and panics instead of being shrunk.
func (e *Element) SetConstrainToParent(on bool) {
	e.constrainToParent = on
	if on {
		e.setRect(e.bounds.X, e.bounds.Y, e.bounds.Width, e.bounds.Height)
	}
}

// setRect is the single mutation path for geometry. It enforces the minimum
// size and the parent constraint, then raises the deferred change flags.
func (e *Element) setRect(x, y, w, h float64) {
	if e.tree.debug {
		debugCheckDisposed(e, "SetBounds")
	}
	if math.IsNaN(w) || w < e.minW {
		w = e.minW
	}
	if math.IsNaN(h) || h < e.minH {
		h = e.minH
	}
	if e.constrainToParent {
		x, y = e.constrain(x, y, w, h)
	}

	moved := x != e.bounds.X || y != e.bounds.Y
	resized := w != e.bounds.Width || h != e.bounds.Height
	if !moved && !resized {
		return
	}
	if resized {
		for _, c := range e.children {
			if c.constrainToParent && (c.bounds.Width > w || c.bounds.Height > h) {
				panic(fmt.Sprintf("trellis: resizing %q to %vx%v leaves constrained child %q (%vx%v) too large",
					e.Name, w, h, c.Name, c.bounds.Width, c.bounds.Height))
			}
		}
	}
	e.bounds = Rect{X: x, Y: y, Width: w, Height: h}
	e.boundsChanged = true
	if moved {
		e.locationChanged = true
		e.invalidateParent()
	}
	if resized {
		e.sizeChanged = true
		e.surfaceResize = true
		e.ToggleRedraw()
		for _, c := range e.children {
			if c.constrainToParent {
				c.setRect(c.bounds.X, c.bounds.Y, c.bounds.Width, c.bounds.Height)
			}
		}
	}
}

func (e *Element) constrain(x, y, w, h float64) (float64, float64) {
	p := e.Parent()
	if p == nil {
		return x, y
	}
	mustFit(e, p, w, h)
	pw, ph := p.bounds.Width, p.bounds.Height
	return math.Min(math.Max(x, 0), pw-w), math.Min(math.Max(y, 0), ph-h)
}

// mustFit panics if a constrained element of size w x h cannot sit inside p.
func mustFit(e, p *Element, w, h float64) {
	if pw, ph := p.bounds.Width, p.bounds.Height; w > pw || h > ph {
		panic(fmt.Sprintf("trellis: %q (%vx%v) does not fit inside parent %q (%vx%v)",
			e.Name, w, h, p.Name, pw, ph))
	}
}

// RenderOffset returns the translation applied to children (and to the
// element's own drawing) inside its surface, used by scroll regions.
func (e *Element) RenderOffset() Vec2 { return e.renderOffset }

// SetRenderOffset changes the child translation.
func (e *Element) SetRenderOffset(v Vec2) {
	if e.renderOffset == v {
		return
	}
	e.renderOffset = v
	e.ToggleRedraw()
}

// Clip returns the clip rectangle and whether one is declared.
func (e *Element) Clip() (Rect, bool) { return e.clip, e.hasClip }

// SetClip declares a clip rectangle, in local coordinates, applied while the
// children are composited into the element's surface.
func (e *Element) SetClip(r Rect) {
	if e.hasClip && e.clip == r {
		return
	}
	e.clip = r
	e.hasClip = true
	e.ToggleRedraw()
}

// ClearClip removes the clip rectangle.
func (e *Element) ClearClip() {
	if !e.hasClip {
		return
	}
	e.hasClip = false
	e.clip = Rect{}
	e.ToggleRedraw()
}

// ScreenBounds returns the element rectangle in screen space: its own
// bounds translated by every ancestor's origin and render offset. It is
// recomputed on every call.
func (e *Element) ScreenBounds() Rect {
	r := e.bounds
	if p := e.Parent(); p != nil {
		ps := p.ScreenBounds()
		r.X += ps.X + p.renderOffset.X
		r.Y += ps.Y + p.renderOffset.Y
	}
	return r
}

// ScreenToLocal converts a screen point to the element's local space.
func (e *Element) ScreenToLocal(x, y float64) (float64, float64) {
	sb := e.ScreenBounds()
	return x - sb.X, y - sb.Y
}

// LocalToScreen converts a local point to screen space.
func (e *Element) LocalToScreen(x, y float64) (float64, float64) {
	sb := e.ScreenBounds()
	return x + sb.X, y + sb.Y
}

// ContainsScreenPoint reports whether the screen point is over the element,
// using its HitShape when one is set.
func (e *Element) ContainsScreenPoint(x, y float64) bool {
	sb := e.ScreenBounds()
	if e.HitShape != nil {
		return e.HitShape.Contains(x-sb.X, y-sb.Y)
	}
	return sb.Contains(x, y)
}

// surfaceSize returns the pixel size of the cached surface for the current
// bounds.
func (e *Element) surfaceSize() (int, int) {
	w := int(math.Ceil(e.bounds.Width))
	h := int(math.Ceil(e.bounds.Height))
	return max(w, 1), max(h, 1)
}
