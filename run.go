package trellis

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures a window created by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	ShowStats  bool
	ClearColor Color
	// TestRunner, when set, feeds scripted input before each tick.
	TestRunner *TestRunner
}

// Game adapts a Tree to ebiten.Game: input is polled and routed in Update,
// the tree is composited onto the screen in Draw, and the root follows the
// window size in Layout.
type Game struct {
	tree   *Tree
	input  *EbitenInput
	runner *TestRunner
	clear  Color
	last   FrameResult
}

// NewGame creates a Game driving tree with an input poller configured from
// the tree's config.
func NewGame(tree *Tree) *Game {
	return &Game{tree: tree, input: NewEbitenInput(tree.Config().Input)}
}

// Input returns the poller, e.g. to inject synthetic events.
func (g *Game) Input() *EbitenInput { return g.input }

// SetTestRunner attaches a scripted input runner.
func (g *Game) SetTestRunner(r *TestRunner) { g.runner = r }

// LastResult reports whether the previous tick's input was consumed by the
// tree. Applications rendering a scene underneath use it to decide whether
// the input should still reach their own controls.
func (g *Game) LastResult() FrameResult { return g.last }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.runner != nil {
		g.runner.Step(g.tree, g.input)
	}
	ptr, keys := g.input.Poll()
	g.last = g.tree.Tick(ptr, keys, 1/float64(ebiten.TPS()))
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.clear.A > 0 {
		screen.Fill(g.clear.toRGBA())
	}
	g.tree.Render(WrapScreen(screen))
	g.tree.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The root follows the window but never
// shrinks below Tree.MinRootSize; a smaller window scales the screen down
// instead of rejecting the resize.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	minW, minH := g.tree.MinRootSize()
	w := max(outsideWidth, int(math.Ceil(minW)))
	h := max(outsideHeight, int(math.Ceil(minH)))
	g.tree.Resize(float64(w), float64(h))
	return w, h
}

// Run opens a window and drives tree until the window is closed. A Go text
// shaper is installed when the tree has none.
func Run(tree *Tree, cfg RunConfig) error {
	if tree.Shaper() == nil {
		s, err := NewGoTextShaper()
		if err != nil {
			return err
		}
		tree.SetShaper(s)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		wc := tree.Config().Window
		cfg.Width, cfg.Height = wc.Width, wc.Height
	}
	if cfg.Title == "" {
		cfg.Title = tree.Config().Window.Title
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if cfg.ShowStats {
		tree.Root().Append(NewStatsElement(tree))
	}
	g := NewGame(tree)
	g.clear = cfg.ClearColor
	g.runner = cfg.TestRunner
	tree.Logger().Info("running", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return ebiten.RunGame(g)
}
