package trellis

import "math"

// FontWeight is a CSS-style font weight, 100 (thin) to 900 (black).
type FontWeight int

const (
	WeightNormal FontWeight = 400
	WeightBold   FontWeight = 700
)

// FontStyle selects upright or slanted glyphs.
type FontStyle uint8

const (
	StyleNormal FontStyle = iota
	StyleItalic
	StyleOblique
)

// StretchNormal is the default font stretch, as a percentage of normal width.
const StretchNormal = 100

// TextProps are the font properties that, together with the string and the
// bounding box, key a shaped layout.
type TextProps struct {
	Family  string
	Size    float64
	Weight  FontWeight
	Style   FontStyle
	Stretch float64
	Align   TextAlign
	Wrap    bool
}

// TextLine is one laid-out line, positioned relative to the layout origin.
type TextLine struct {
	Text  string
	X, Y  float64
	Width float64
}

// TextLayout is a shaped, measurable block of text.
type TextLayout interface {
	Size() Vec2
	Lines() []TextLine
	Draw(dst Surface, x, y float64, c Color)
	Dispose()
}

// TextShaper turns a string into a TextLayout. maxWidth <= 0 means no
// wrapping limit; maxHeight <= 0 means no line limit.
type TextShaper interface {
	Shape(s string, props TextProps, maxWidth, maxHeight float64) TextLayout
}

// textSizeTolerance is the box size difference, in pixels, below which a
// cached layout is reused.
const textSizeTolerance = 0.01

// TextCache holds the last shaped layout and the key it was shaped for. It
// re-shapes only when the shaper, the string, a property or the box changed.
type TextCache struct {
	shaper  TextShaper
	text    string
	props   TextProps
	maxW    float64
	maxH    float64
	layout  TextLayout
	shaping bool
	shapes  int
}

// Layout returns the cached layout for the key, shaping a new one when any
// part of the key changed since the last call. The previous layout is
// disposed before shaping. Returns nil when shaper is nil. Panics if called
// again from inside the shaper.
func (c *TextCache) Layout(shaper TextShaper, s string, props TextProps, maxW, maxH float64) TextLayout {
	if c.shaping {
		panic("trellis: re-entrant text layout")
	}
	if c.layout != nil && c.shaper == shaper && c.text == s && c.props == props &&
		approxEqual(c.maxW, maxW) && approxEqual(c.maxH, maxH) {
		return c.layout
	}
	if shaper == nil {
		return nil
	}

	c.shaping = true
	defer func() { c.shaping = false }()

	if c.layout != nil {
		c.layout.Dispose()
		c.layout = nil
	}
	c.layout = shaper.Shape(s, props, maxW, maxH)
	c.shaper, c.text, c.props, c.maxW, c.maxH = shaper, s, props, maxW, maxH
	c.shapes++
	return c.layout
}

// Cached returns the last shaped layout without shaping, or nil.
func (c *TextCache) Cached() TextLayout { return c.layout }

// Shapes returns how many times the cache has shaped a layout.
func (c *TextCache) Shapes() int { return c.shapes }

// Dispose releases the cached layout.
func (c *TextCache) Dispose() {
	if c.layout != nil {
		c.layout.Dispose()
		c.layout = nil
	}
	c.shaper = nil
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < textSizeTolerance
}

// TextHost is the text surface of an element.
type TextHost interface {
	Text() string
	SetText(s string)
	TextProps() TextProps
	SetTextProps(p TextProps)
	TextLayout() TextLayout
	CachedTextLayout() TextLayout
}

var _ TextHost = (*Element)(nil)

// Text returns the element's text.
func (e *Element) Text() string { return e.text }

// SetText changes the element's text. OnTextChanged fires during the next
// late-update pass.
func (e *Element) SetText(s string) {
	if e.text == s {
		return
	}
	e.text = s
	e.textChanged = true
	e.ToggleRedraw()
}

// TextProps returns the element's font properties.
func (e *Element) TextProps() TextProps { return e.textProps }

// SetTextProps changes the element's font properties.
// OnTextPropertiesChanged fires during the next late-update pass.
func (e *Element) SetTextProps(p TextProps) {
	if e.textProps == p {
		return
	}
	e.textProps = p
	e.textPropsChanged = true
	e.ToggleRedraw()
}

// TextLayout returns the shaped layout of the element's text, boxed by its
// current size (the width only limits lines when wrapping is on). Returns
// nil when the tree has no shaper.
func (e *Element) TextLayout() TextLayout {
	maxW := 0.0
	if e.textProps.Wrap {
		maxW = e.bounds.Width
	}
	return e.textCache.Layout(e.tree.shaper, e.text, e.textProps, maxW, e.bounds.Height)
}

// CachedTextLayout returns the last shaped layout without triggering shaping,
// or nil if the text has never been laid out.
func (e *Element) CachedTextLayout() TextLayout { return e.textCache.Cached() }

// TextShapes reports how many times the element's text has been shaped.
func (e *Element) TextShapes() int { return e.textCache.Shapes() }
