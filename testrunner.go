package trellis

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrNoSteps is returned by LoadTestScript for a script without steps.
var ErrNoSteps = errors.New("trellis: test script has no steps")

// testStep is a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
	Key    string  `json:"key,omitempty"`
	Text   string  `json:"text,omitempty"`

	key ebiten.Key
}

type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input and screenshots across ticks for
// scripted end-to-end runs. Attach it with RunConfig.TestRunner, or call
// Step once per tick before polling input.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script of the form
//
//	{"steps": [
//	  {"action": "click", "x": 10, "y": 10},
//	  {"action": "drag", "fromX": 10, "fromY": 10, "toX": 200, "toY": 40, "frames": 12},
//	  {"action": "key", "key": "Tab"},
//	  {"action": "text", "text": "hello"},
//	  {"action": "wait", "frames": 5},
//	  {"action": "screenshot", "label": "after-typing"}
//	]}
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, ErrNoSteps
	}
	for i := range script.Steps {
		st := &script.Steps[i]
		switch st.Action {
		case "click", "drag", "text", "wait", "screenshot":
		case "key":
			if err := st.key.UnmarshalText([]byte(st.Key)); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: key %q: %w", i, st.Key, err)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool { return r.done }

// Step advances the runner by one tick. It waits while earlier injections
// are still queued on in.
func (r *TestRunner) Step(t *Tree, in *EbitenInput) {
	if r.done {
		return
	}
	if in.PendingInjections() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		t.Screenshot(st.Label)
	case "click":
		in.InjectClick(st.X, st.Y)
	case "drag":
		in.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, max(st.Frames, 2))
	case "key":
		in.InjectKey(st.key)
	case "text":
		in.InjectText(st.Text)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.PendingInjections() == 0 {
		r.done = true
	}
}
