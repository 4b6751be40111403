package trellis

import "github.com/hajimehoshi/ebiten/v2"

// syntheticPointerEvent is a single injected pointer event in screen
// coordinates.
type syntheticPointerEvent struct {
	x, y    float64
	pressed bool
	button  MouseButton
}

// syntheticKeyEvent is a single injected key transition.
type syntheticKeyEvent struct {
	key  ebiten.Key
	down bool
}

// InjectPress queues a left button press at the given screen coordinates.
// The event is consumed by the next Poll.
func (in *EbitenInput) InjectPress(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the left button held. Use it
// between InjectPress and InjectRelease to simulate a drag.
func (in *EbitenInput) InjectMove(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a left button release at the given screen
// coordinates.
func (in *EbitenInput) InjectRelease(x, y float64) {
	in.injectQueue = append(in.injectQueue, syntheticPointerEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two ticks.
func (in *EbitenInput) InjectClick(x, y float64) {
	in.InjectPress(x, y)
	in.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 linearly
// interpolated moves and a release at (toX, toY). Minimum frames is 2.
func (in *EbitenInput) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	in.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		in.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	in.InjectRelease(toX, toY)
}

// InjectKey queues a key tap: down on one tick, up on the next.
func (in *EbitenInput) InjectKey(k ebiten.Key) {
	in.injectKeys = append(in.injectKeys,
		syntheticKeyEvent{key: k, down: true},
		syntheticKeyEvent{key: k})
}

// InjectText queues text input delivered on the next tick.
func (in *EbitenInput) InjectText(s string) {
	in.injectText = append(in.injectText, []rune(s)...)
}

// PendingInjections returns the number of queued pointer and key events.
func (in *EbitenInput) PendingInjections() int {
	return len(in.injectQueue) + len(in.injectKeys)
}

// popInjected pops one pointer event into ptr. Returns false when the queue
// is empty and the real mouse should be read instead.
func (in *EbitenInput) popInjected(ptr *PointerSnapshot) bool {
	if len(in.injectQueue) == 0 {
		return false
	}
	evt := in.injectQueue[0]
	copy(in.injectQueue, in.injectQueue[1:])
	in.injectQueue = in.injectQueue[:len(in.injectQueue)-1]

	was := in.injectDown[evt.button]
	in.injectDown[evt.button] = evt.pressed
	ptr.X, ptr.Y = evt.x, evt.y
	ptr.Buttons[evt.button] = ButtonState{
		Down:    evt.pressed && !was,
		Pressed: evt.pressed,
		Up:      !evt.pressed && was,
	}
	return true
}

// popInjectedKeys merges one injected key transition and any injected text
// into keys.
func (in *EbitenInput) popInjectedKeys(keys *KeySnapshot) {
	if len(in.injectText) > 0 {
		in.runes = append(in.runes, in.injectText...)
		in.injectText = in.injectText[:0]
	}
	if len(in.injectKeys) == 0 {
		return
	}
	evt := in.injectKeys[0]
	copy(in.injectKeys, in.injectKeys[1:])
	in.injectKeys = in.injectKeys[:len(in.injectKeys)-1]
	if evt.down {
		keys.Down = append(keys.Down, evt.key)
		keys.Pressed = append(keys.Pressed, evt.key)
	} else {
		keys.Up = append(keys.Up, evt.key)
	}
}
