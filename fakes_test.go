package trellis

import (
	"strings"
	"testing"
)

// --- Recording device ---

type fakeDevice struct {
	created []*fakeSurface
}

func (d *fakeDevice) NewSurface(w, h int) Surface {
	s := &fakeSurface{w: w, h: h}
	d.created = append(d.created, s)
	return s
}

type fakeDraw struct {
	src     *fakeSurface
	dst     Rect
	opacity float64
	clipped bool
}

type fakeSurface struct {
	w, h     int
	clears   int
	resizes  int
	draws    []fakeDraw
	clips    []Rect
	pushes   int
	disposed bool
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }

func (s *fakeSurface) Resize(w, h int) {
	s.w, s.h = w, h
	s.resizes++
}

func (s *fakeSurface) Clear() {
	s.clears++
	s.draws = s.draws[:0]
}

func (s *fakeSurface) DrawSurface(src Surface, dst Rect, opacity float64) {
	fs, _ := src.(*fakeSurface)
	s.draws = append(s.draws, fakeDraw{src: fs, dst: dst, opacity: opacity, clipped: len(s.clips) > 0})
}

func (s *fakeSurface) PushClip(r Rect) {
	s.clips = append(s.clips, r)
	s.pushes++
}

func (s *fakeSurface) PopClip() {
	s.clips = s.clips[:len(s.clips)-1]
}

func (s *fakeSurface) Dispose() { s.disposed = true }

// --- Counting shaper ---

const (
	fakeCharWidth  = 8
	fakeLineHeight = 16
)

type fakeShaper struct {
	calls   int
	layouts []*fakeLayout
	onShape func()
}

func (f *fakeShaper) Shape(s string, props TextProps, maxW, maxH float64) TextLayout {
	f.calls++
	if f.onShape != nil {
		f.onShape()
	}
	advance := func(line string) float64 { return float64(len(line)) * fakeCharWidth }
	lines := wrapLines(s, maxW, props.Wrap, advance)
	if maxH > 0 {
		fit := max(int(maxH/fakeLineHeight), 1)
		if len(lines) > fit {
			lines = lines[:fit]
		}
	}
	l := &fakeLayout{text: s, props: props, maxW: maxW, maxH: maxH}
	var widest float64
	for i, line := range lines {
		w := advance(line)
		widest = max(widest, w)
		l.lines = append(l.lines, TextLine{Text: line, Y: float64(i) * fakeLineHeight, Width: w})
	}
	l.size = Vec2{X: widest, Y: float64(len(lines)) * fakeLineHeight}
	f.layouts = append(f.layouts, l)
	return l
}

type fakeLayout struct {
	text       string
	props      TextProps
	maxW, maxH float64
	lines      []TextLine
	size       Vec2
	disposed   bool
}

func (l *fakeLayout) Size() Vec2                         { return l.size }
func (l *fakeLayout) Lines() []TextLine                  { return l.lines }
func (l *fakeLayout) Draw(dst Surface, x, y float64, c Color) {}
func (l *fakeLayout) Dispose()                           { l.disposed = true }

func (l *fakeLayout) String() string {
	var parts []string
	for _, ln := range l.lines {
		parts = append(parts, ln.Text)
	}
	return strings.Join(parts, "|")
}

// --- Event recording sink ---

type recordingSink struct {
	events []RoutingEvent
}

func (r *recordingSink) HandleRoutingEvent(ev RoutingEvent) {
	r.events = append(r.events, ev)
}

func (r *recordingSink) typesFor(name string) []EventType {
	var out []EventType
	for _, ev := range r.events {
		if ev.Name == name {
			out = append(out, ev.Type)
		}
	}
	return out
}

// --- Tree helpers ---

func newTestTree(t *testing.T) (*Tree, *fakeDevice) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Window.Width, cfg.Window.Height = 400, 300
	tree := NewTree(cfg)
	dev := &fakeDevice{}
	tree.SetDevice(dev)
	return tree, dev
}

// addChild creates an element with the given bounds and appends it to parent.
func addChild(parent *Element, name string, r Rect, caps Capabilities) *Element {
	e := parent.Tree().NewElementWithBounds(name, r)
	e.Caps = caps
	parent.Append(e)
	return e
}

// --- Pointer helpers ---

func pointerAt(x, y float64) PointerSnapshot {
	return PointerSnapshot{X: x, Y: y}
}

func pressAt(x, y float64) PointerSnapshot {
	p := pointerAt(x, y)
	p.Buttons[MouseButtonLeft] = ButtonState{Down: true, Pressed: true}
	return p
}

func holdAt(x, y float64) PointerSnapshot {
	p := pointerAt(x, y)
	p.Buttons[MouseButtonLeft] = ButtonState{Pressed: true}
	return p
}

func releaseAt(x, y float64) PointerSnapshot {
	p := pointerAt(x, y)
	p.Buttons[MouseButtonLeft] = ButtonState{Up: true}
	return p
}

func tick(tree *Tree, ptr PointerSnapshot) FrameResult {
	return tree.Tick(ptr, KeySnapshot{}, 1.0/60)
}

func tickKeys(tree *Tree, keys KeySnapshot) FrameResult {
	return tree.Tick(pointerAt(-1, -1), keys, 1.0/60)
}
