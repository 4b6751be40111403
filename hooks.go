package trellis

import "github.com/hajimehoshi/ebiten/v2"

// MouseContext carries pointer event data.
type MouseContext struct {
	Element   *Element
	ScreenX   float64
	ScreenY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	WheelX    float64
	WheelY    float64
	Modifiers KeyModifiers
}

// DragContext carries drag event data. Deltas are relative to the previous
// frame; Start is the screen position where the drag began.
type DragContext struct {
	Element   *Element
	ScreenX   float64
	ScreenY   float64
	StartX    float64
	StartY    float64
	DeltaX    float64
	DeltaY    float64
	Button    MouseButton
	Modifiers KeyModifiers
}

// KeyContext carries a single key event delivered to the focus target.
type KeyContext struct {
	Element   *Element
	Key       ebiten.Key
	Modifiers KeyModifiers
}

// TextInputContext carries the text typed during one tick.
type TextInputContext struct {
	Element   *Element
	Text      string
	Modifiers KeyModifiers
}

// Hooks is the table of optional per-element callbacks. Nil entries cost
// nothing. The frame pump invokes them in a fixed order: pre-update, mouse
// routing, keyboard routing, update, late-update (deferred change events),
// render.
type Hooks struct {
	OnPreUpdate func(e *Element)
	OnUpdate    func(e *Element, dt float64)

	OnMouseEnter   func(MouseContext)
	OnMouseLeave   func(MouseContext)
	OnMouseWheel   func(MouseContext)
	OnMousePressed func(MouseContext)
	OnMouseDown    func(MouseContext)
	OnMouseUp      func(MouseContext)
	OnClick        func(MouseContext)
	OnDoubleClick  func(MouseContext)

	OnDragStart func(DragContext)
	OnDrag      func(DragContext)
	OnDragStop  func(DragContext)

	OnKeyDown    func(KeyContext)
	OnKeyUp      func(KeyContext)
	OnKeyPressed func(KeyContext)
	OnKeyRepeat  func(KeyContext)
	OnTextInput  func(TextInputContext)

	OnFocusGained         func(e *Element)
	OnFocusLost           func(e *Element)
	OnContainsFocusGained func(e *Element)
	OnContainsFocusLost   func(e *Element)

	// Deferred change events, fired once per frame from the late-update pass.
	OnLocationChanged       func(e *Element)
	OnSizeChanged           func(e *Element)
	OnBoundsChanged         func(e *Element)
	OnTextChanged           func(e *Element)
	OnTextPropertiesChanged func(e *Element)

	OnParentChanged func(e *Element)
	OnParentSet     func(e *Element)
	OnParentUnset   func(e *Element)
	OnChildAppended func(parent, child *Element)
	OnChildRemoved  func(parent, child *Element)

	OnDispose func(e *Element)
}

// Capabilities selects which kinds of input an element takes part in.
// The zero value is a passive element: it is drawn but ignores input.
type Capabilities struct {
	MouseInput      bool // hit-tested, receives hover, button and wheel events
	KeyboardInput   bool // receives key events while focused
	CaptureKeyboard bool // key events it receives are reported as consumed
	Focusable       bool // may become the focus target
	Draggable       bool // a primary-button press starts a drag capture
	Tabbable        bool // takes part in tab-order traversal
	StopTabRecurse  bool // TabNext does not descend into children
	WheelNeedsFocus bool // wheel events only while focused
}

// PointerCapabilities returns the capabilities of an element that reacts to
// the mouse but never takes keyboard focus.
func PointerCapabilities() Capabilities {
	return Capabilities{MouseInput: true}
}

// FocusableCapabilities returns the capabilities of a typical interactive
// control: mouse input, keyboard input while focused, and a tab stop.
func FocusableCapabilities() Capabilities {
	return Capabilities{
		MouseInput:    true,
		KeyboardInput: true,
		Focusable:     true,
		Tabbable:      true,
	}
}

// TextEntryCapabilities returns FocusableCapabilities with keyboard capture,
// for controls whose key presses must not reach the application.
func TextEntryCapabilities() Capabilities {
	c := FocusableCapabilities()
	c.CaptureKeyboard = true
	return c
}

// DrawContext is handed to an element's Drawable while its surface is being
// regenerated.
type DrawContext struct {
	Element *Element
	Surface Surface
	// Offset is the element's render offset. Content drawn by the element
	// itself should be translated by it.
	Offset Vec2
	// Tools and Params are opaque styling collaborators: Tools is set once on
	// the Tree, Params per element. The core never interprets them.
	Tools  any
	Params any
}

// Drawable draws an element's own content into its cached surface.
type Drawable interface {
	Draw(ctx *DrawContext)
}

// DrawFunc adapts an ordinary function to the Drawable interface.
type DrawFunc func(ctx *DrawContext)

// Draw calls f(ctx).
func (f DrawFunc) Draw(ctx *DrawContext) { f(ctx) }
