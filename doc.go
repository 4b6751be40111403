// Package trellis is a retained-mode element tree for in-application tool
// UIs on [Ebitengine]: windows, buttons, text boxes and list boxes drawn on
// top of a game or 3D scene.
//
// Trellis provides the element hierarchy, a per-element redraw cache with
// dirty propagation, the hover/focus/drag input state machine, keyboard
// routing with tab order, and cached text layout. Widgets are built on top
// of it by configuring a single [Element] type rather than by subclassing.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	tree := trellis.NewTree(trellis.DefaultConfig())
//	// ... append elements ...
//	trellis.Run(tree, trellis.RunConfig{Title: "Tools", Width: 1280, Height: 720})
//
// For full control, drive the tree from your own [ebiten.Game]:
//
//	func (g *Game) Update() error {
//		ptr, keys := g.input.Poll()
//		res := g.tree.Tick(ptr, keys, 1.0/60)
//		if !res.MouseConsumed {
//			g.updateCamera()
//		}
//		return nil
//	}
//	func (g *Game) Draw(s *ebiten.Image) { g.tree.Render(trellis.WrapScreen(s)) }
//
// # Elements
//
// Every widget is an [Element] created with [Tree.NewElement] and attached
// with [Element.Append]. An element has bounds in its parent's space, an
// optional render offset applied to its children (for scroll regions), a
// [Capabilities] value selecting which input it takes part in, a [Hooks]
// table of optional callbacks, and a [Drawable] for its own content.
//
//	btn := tree.NewElementWithBounds("ok", trellis.Rect{X: 20, Y: 20, Width: 80, Height: 24})
//	btn.Caps = trellis.FocusableCapabilities()
//	btn.SetText("OK")
//	btn.Drawable = trellis.DrawFunc(func(ctx *trellis.DrawContext) {
//		ctx.FillRect(trellis.Rect{Width: 80, Height: 24}, trellis.Color{R: 0.2, G: 0.4, B: 0.8, A: 1})
//		ctx.DrawElementText(trellis.ColorWhite)
//	})
//	btn.OnClick = func(ctx trellis.MouseContext) { save() }
//	tree.Root().Append(btn)
//
// # Frame order
//
// [Tree.Tick] runs pre-update, mouse routing, keyboard routing, update and
// late-update, in that order; [Tree.Render] composites afterwards. Sibling
// reorders ([Element.MoveToFront]) and focus requests ([Element.Focus]) are
// queued and applied at the start of the next pre-update pass. Geometry and
// text change events are deferred to the late-update pass and fire at most
// once per frame.
//
// # Redraw cache
//
// Each element renders into its own off-screen [Surface]. Any visual change
// marks the element and all of its ancestors dirty; clean subtrees are
// composited with a single blit. [Tree.RedrawCount] exposes the number of
// regenerations for diagnostics.
//
// # Extras
//
// Tweens (via [gween]) animate element properties through their setters,
// [Config] loads from TOML, and routing events can be forwarded to a
// [Donburi] world with the adapter in trellis/ecs.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package trellis
