package trellis

import (
	"log/slog"
	"time"
)

// Tree owns the element arena, the root element, the routing session and
// the rendering collaborators.
type Tree struct {
	root    *Element
	arena   arena
	session RoutingSession

	device    Device
	shaper    TextShaper
	drawTools any
	sink      EventSink

	cfg    Config
	logger *slog.Logger
	debug  bool

	nextTabIndex int
	redrawCount  uint64
	frameRedraws int
	frame        uint64
	lastRender   time.Time

	// walk is the child-list stack used by the frame passes.
	walk []*Element

	screenshotQueue []string
	// ScreenshotDir is the directory where screenshot PNGs are written.
	ScreenshotDir string
}

// NewTree creates a tree with a root element sized to the configured
// window. Surfaces come from an EbitenDevice until SetDevice is called;
// text is not shaped until SetShaper is called.
func NewTree(cfg Config) *Tree {
	t := &Tree{
		device:        EbitenDevice{},
		cfg:           cfg,
		logger:        newNopLogger(),
		debug:         cfg.Debug,
		ScreenshotDir: cfg.ScreenshotDir,
	}
	t.session.tree = t
	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	t.root = t.NewElementWithBounds("root", Rect{Width: max(w, defaultMinSize), Height: max(h, defaultMinSize)})
	return t
}

// Root returns the root element.
func (t *Tree) Root() *Element { return t.root }

// Config returns the configuration the tree was created with.
func (t *Tree) Config() Config { return t.cfg }

// Session returns the routing session holding the hover, focus and drag
// targets.
func (t *Tree) Session() *RoutingSession { return &t.session }

// Lookup returns the live element for h, or nil if it has been disposed.
func (t *Tree) Lookup(h Handle) *Element { return t.arena.get(h) }

// Len returns the number of live elements, attached or not.
func (t *Tree) Len() int { return t.arena.live }

// SetDevice replaces the surface factory. Existing cached surfaces are
// released and regenerated on the next render.
func (t *Tree) SetDevice(d Device) {
	t.device = d
	t.root.Walk(func(e *Element) bool {
		if e.surface != nil {
			e.surface.Dispose()
			e.surface = nil
		}
		e.needsRedraw = true
		return true
	})
}

// SetShaper sets the text shaper used by Element.TextLayout.
func (t *Tree) SetShaper(s TextShaper) {
	t.shaper = s
	t.root.ToggleRedraw()
}

// Shaper returns the text shaper, or nil.
func (t *Tree) Shaper() TextShaper { return t.shaper }

// SetDrawTools sets the opaque styling collaborator passed to every
// Drawable as DrawContext.Tools.
func (t *Tree) SetDrawTools(tools any) {
	t.drawTools = tools
	t.root.ToggleRedraw()
}

// SetEventSink sets the optional receiver of routing events.
func (t *Tree) SetEventSink(sink EventSink) { t.sink = sink }

// Resize sets the root element to the given size. Like any resize it panics
// if a constrained child of the root would no longer fit; see MinRootSize.
func (t *Tree) Resize(w, h float64) {
	t.root.SetSize(w, h)
}

// MinRootSize returns the smallest root size that still holds every
// constrained child of the root.
func (t *Tree) MinRootSize() (w, h float64) {
	w, h = t.root.MinSize()
	for _, c := range t.root.children {
		if c.constrainToParent {
			w = max(w, c.bounds.Width)
			h = max(h, c.bounds.Height)
		}
	}
	return w, h
}

// Blur clears keyboard focus immediately.
func (t *Tree) Blur() { t.session.Blur() }

// Walk calls fn for every element reachable from the root, in pre-order.
// Returning false skips the element's children.
func (t *Tree) Walk(fn func(*Element) bool) { t.root.Walk(fn) }

// RedrawCount returns the number of surface regenerations since the tree
// was created.
func (t *Tree) RedrawCount() uint64 { return t.redrawCount }

// Stats is a snapshot of tree-wide counters.
type Stats struct {
	Elements     int    // live elements, attached or not
	FrameRedraws int    // surfaces regenerated by the last Render
	TotalRedraws uint64 // surfaces regenerated since creation
	Frame        uint64 // pre-update passes run
}

// Stats returns the current counters.
func (t *Tree) Stats() Stats {
	return Stats{
		Elements:     t.arena.live,
		FrameRedraws: t.frameRedraws,
		TotalRedraws: t.redrawCount,
		Frame:        t.frame,
	}
}

func (t *Tree) defaultTextProps() TextProps {
	size := t.cfg.Font.Size
	if size <= 0 {
		size = DefaultFontSize
	}
	family := t.cfg.Font.Family
	if family == "" {
		family = FamilyGo
	}
	return TextProps{
		Family:  family,
		Size:    size,
		Weight:  WeightNormal,
		Style:   StyleNormal,
		Stretch: StretchNormal,
	}
}
