package trellis

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const statsRefreshSeconds = 0.5

// NewStatsElement creates a passive element that shows FPS, TPS and the
// tree's redraw counters. Its text refreshes every half second, so it only
// costs a redraw twice a second.
func NewStatsElement(t *Tree) *Element {
	e := t.NewElementWithBounds("stats", Rect{Width: 180, Height: 64})
	e.DrawParams = Color{A: 0.5}

	var elapsed float64
	refresh := func() {
		st := t.Stats()
		e.SetText(fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nRedraws: %d/%d\nElements: %d",
			ebiten.ActualFPS(), ebiten.ActualTPS(), st.FrameRedraws, st.TotalRedraws, st.Elements))
	}
	e.OnUpdate = func(e *Element, dt float64) {
		elapsed += dt
		if elapsed < statsRefreshSeconds {
			return
		}
		elapsed = 0
		refresh()
	}
	e.Drawable = DrawFunc(func(ctx *DrawContext) {
		if bg, ok := ctx.Params.(Color); ok {
			ctx.Fill(bg)
		}
		if img := ctx.Image(); img != nil {
			ebitenutil.DebugPrintAt(img, ctx.Element.Text(), 4, 2)
		}
	})
	return e
}
