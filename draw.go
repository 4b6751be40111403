package trellis

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Image returns the ebiten image behind the context's surface, or nil when
// the surface comes from another device.
func (ctx *DrawContext) Image() *ebiten.Image {
	if es, ok := ctx.Surface.(*EbitenSurface); ok {
		return es.Image()
	}
	return nil
}

// Size returns the element size, the drawable area of the surface.
func (ctx *DrawContext) Size() (float64, float64) {
	return ctx.Element.bounds.Width, ctx.Element.bounds.Height
}

// FillRect fills r, in local coordinates shifted by the render offset.
func (ctx *DrawContext) FillRect(r Rect, c Color) {
	img := ctx.Image()
	if img == nil {
		return
	}
	vector.FillRect(img,
		float32(r.X+ctx.Offset.X), float32(r.Y+ctx.Offset.Y),
		float32(r.Width), float32(r.Height),
		c.toRGBA(), false)
}

// StrokeRect outlines r with the given stroke width.
func (ctx *DrawContext) StrokeRect(r Rect, width float64, c Color) {
	img := ctx.Image()
	if img == nil {
		return
	}
	vector.StrokeRect(img,
		float32(r.X+ctx.Offset.X), float32(r.Y+ctx.Offset.Y),
		float32(r.Width), float32(r.Height),
		float32(width), c.toRGBA(), false)
}

// Fill fills the whole surface, ignoring the render offset.
func (ctx *DrawContext) Fill(c Color) {
	if img := ctx.Image(); img != nil {
		img.Fill(c.toRGBA())
	}
}

// DrawText draws a shaped layout with its top-left corner at (x, y).
func (ctx *DrawContext) DrawText(layout TextLayout, x, y float64, c Color) {
	if layout == nil {
		return
	}
	layout.Draw(ctx.Surface, x+ctx.Offset.X, y+ctx.Offset.Y, c)
}

// DrawElementText shapes (or reuses) the element's own text and draws it at
// the element's origin.
func (ctx *DrawContext) DrawElementText(c Color) {
	ctx.DrawText(ctx.Element.TextLayout(), 0, 0, c)
}
