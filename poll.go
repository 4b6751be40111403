package trellis

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// doubleClickSlop is how far, in pixels, the second press of a double click
// may land from the first.
const doubleClickSlop = 4.0

var ebitenButtons = [mouseButtonCount]ebiten.MouseButton{
	MouseButtonLeft:   ebiten.MouseButtonLeft,
	MouseButtonRight:  ebiten.MouseButtonRight,
	MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

// EbitenInput polls ebiten once per tick and turns the result into pointer
// and keyboard snapshots. Injected events take priority over the real
// devices, one event per tick.
//
// The slices of a KeySnapshot are reused and are only valid until the next
// call to Poll.
type EbitenInput struct {
	cfg InputConfig
	now func() time.Time

	lastDown    [mouseButtonCount]time.Time
	lastDownPos [mouseButtonCount]Vec2

	injectQueue []syntheticPointerEvent
	injectDown  [mouseButtonCount]bool
	injectKeys  []syntheticKeyEvent
	injectText  []rune

	downBuf    []ebiten.Key
	upBuf      []ebiten.Key
	pressedBuf []ebiten.Key
	runes      []rune
}

// NewEbitenInput creates a poller with the given timing configuration.
func NewEbitenInput(cfg InputConfig) *EbitenInput {
	if cfg.KeyRepeatIntervalTicks < 1 {
		cfg.KeyRepeatIntervalTicks = 1
	}
	return &EbitenInput{cfg: cfg, now: time.Now}
}

// Poll reads this tick's input.
func (in *EbitenInput) Poll() (PointerSnapshot, KeySnapshot) {
	mods := readModifiers()

	var ptr PointerSnapshot
	if !in.popInjected(&ptr) {
		x, y := ebiten.CursorPosition()
		ptr.X, ptr.Y = float64(x), float64(y)
		for b, eb := range ebitenButtons {
			ptr.Buttons[b] = ButtonState{
				Down:    inpututil.IsMouseButtonJustPressed(eb),
				Pressed: ebiten.IsMouseButtonPressed(eb),
				Up:      inpututil.IsMouseButtonJustReleased(eb),
			}
		}
		ptr.WheelX, ptr.WheelY = ebiten.Wheel()
	}
	ptr.Modifiers = mods
	in.detectDoubleClicks(&ptr)

	keys := KeySnapshot{Modifiers: mods}
	keys.Down = inpututil.AppendJustPressedKeys(in.downBuf[:0])
	keys.Up = inpututil.AppendJustReleasedKeys(in.upBuf[:0])
	keys.Pressed = inpututil.AppendPressedKeys(in.pressedBuf[:0])
	keys.Repeat, keys.HasRepeat = in.repeatKey(keys.Pressed)
	in.runes = ebiten.AppendInputChars(in.runes[:0])
	in.popInjectedKeys(&keys)
	keys.Text = string(in.runes)

	in.downBuf, in.upBuf, in.pressedBuf = keys.Down, keys.Up, keys.Pressed
	return ptr, keys
}

// detectDoubleClicks flags a Down that follows the previous Down of the
// same button closely in time and space. The pair is consumed, so a third
// press starts a new sequence.
func (in *EbitenInput) detectDoubleClicks(ptr *PointerSnapshot) {
	now := in.now()
	window := time.Duration(in.cfg.DoubleClickMS) * time.Millisecond
	for b := range ptr.Buttons {
		if !ptr.Buttons[b].Down {
			continue
		}
		last := in.lastDown[b]
		pos := in.lastDownPos[b]
		if !last.IsZero() && now.Sub(last) <= window &&
			math.Abs(ptr.X-pos.X) <= doubleClickSlop && math.Abs(ptr.Y-pos.Y) <= doubleClickSlop {
			ptr.Buttons[b].DoubleClick = true
			in.lastDown[b] = time.Time{}
			continue
		}
		in.lastDown[b] = now
		in.lastDownPos[b] = Vec2{X: ptr.X, Y: ptr.Y}
	}
}

// repeatKey picks the single auto-repeating key: the most recently pressed
// key that has been held past the delay and is on a repeat tick.
func (in *EbitenInput) repeatKey(pressed []ebiten.Key) (ebiten.Key, bool) {
	delay := in.cfg.KeyRepeatDelayTicks
	interval := in.cfg.KeyRepeatIntervalTicks
	best, bestDur := ebiten.Key(0), -1
	for _, k := range pressed {
		d := inpututil.KeyPressDuration(k)
		if bestDur < 0 || d < bestDur {
			best, bestDur = k, d
		}
	}
	if bestDur <= delay || (bestDur-delay)%interval != 0 {
		return 0, false
	}
	return best, true
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) {
		mods |= ModMeta
	}
	return mods
}
