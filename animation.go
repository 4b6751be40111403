package trellis

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values of an Element simultaneously. Create
// one with TweenOpacity, TweenLocation or TweenSize and call Update(dt)
// each frame, usually from an OnUpdate hook. Values are written through the
// element's setters, so change events and redraw invalidation behave as if
// the values had been set by hand. If the target element is disposed, the
// group stops immediately.
//
// There is no global animation manager; callers drive Update themselves.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(v [4]float64)
	target *Element
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values to the
// target element.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target == nil || g.target.IsDisposed() {
		g.Done = true
		return
	}

	var v [4]float64
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		v[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.apply(v)
	g.Done = allDone
}

// TweenOpacity animates the element's opacity to the target value.
func TweenOpacity(e *Element, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1, target: e}
	g.tweens[0] = gween.New(float32(e.Opacity()), float32(to), duration, fn)
	g.apply = func(v [4]float64) { e.SetOpacity(v[0]) }
	return g
}

// TweenLocation animates the element's position within its parent.
func TweenLocation(e *Element, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: e}
	g.tweens[0] = gween.New(float32(e.X()), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(e.Y()), float32(toY), duration, fn)
	g.apply = func(v [4]float64) { e.SetLocation(v[0], v[1]) }
	return g
}

// TweenSize animates the element's width and height. Values below the
// element's minimum size are clamped as usual.
func TweenSize(e *Element, toW, toH float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: e}
	g.tweens[0] = gween.New(float32(e.Width()), float32(toW), duration, fn)
	g.tweens[1] = gween.New(float32(e.Height()), float32(toH), duration, fn)
	g.apply = func(v [4]float64) { e.SetSize(v[0], v[1]) }
	return g
}

// TweenBounds animates all four components of the element's bounds.
func TweenBounds(e *Element, to Rect, duration float32, fn ease.TweenFunc) *TweenGroup {
	b := e.Bounds()
	g := &TweenGroup{count: 4, target: e}
	g.tweens[0] = gween.New(float32(b.X), float32(to.X), duration, fn)
	g.tweens[1] = gween.New(float32(b.Y), float32(to.Y), duration, fn)
	g.tweens[2] = gween.New(float32(b.Width), float32(to.Width), duration, fn)
	g.tweens[3] = gween.New(float32(b.Height), float32(to.Height), duration, fn)
	g.apply = func(v [4]float64) { e.SetBounds(Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}) }
	return g
}
