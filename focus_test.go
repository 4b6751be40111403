package trellis

import (
	"strings"
	"testing"
)

type focusLog struct {
	entries []string
}

func (l *focusLog) watch(elems ...*Element) {
	for _, e := range elems {
		e.OnFocusGained = func(e *Element) { l.entries = append(l.entries, "gained:"+e.Name) }
		e.OnFocusLost = func(e *Element) { l.entries = append(l.entries, "lost:"+e.Name) }
		e.OnContainsFocusGained = func(e *Element) { l.entries = append(l.entries, "contains-gained:"+e.Name) }
		e.OnContainsFocusLost = func(e *Element) { l.entries = append(l.entries, "contains-lost:"+e.Name) }
	}
}

func (l *focusLog) count(entry string) int {
	n := 0
	for _, e := range l.entries {
		if e == entry {
			n++
		}
	}
	return n
}

func (l *focusLog) String() string { return strings.Join(l.entries, ",") }

// focusTree builds root -> P1 -> P2 -> A and root -> P1 -> B.
func focusTree(t *testing.T) (tree *Tree, p1, p2, a, b *Element) {
	t.Helper()
	tree, _ = newTestTree(t)
	p1 = addChild(tree.Root(), "P1", Rect{Width: 200, Height: 200}, Capabilities{})
	p2 = addChild(p1, "P2", Rect{Width: 100, Height: 100}, Capabilities{})
	a = addChild(p2, "A", Rect{Width: 50, Height: 20}, FocusableCapabilities())
	b = addChild(p1, "B", Rect{Y: 150, Width: 50, Height: 20}, FocusableCapabilities())
	return tree, p1, p2, a, b
}

func TestFocusTransferKeepsSharedAncestors(t *testing.T) {
	tree, p1, p2, a, b := focusTree(t)
	a.Focus()
	tickKeys(tree, KeySnapshot{})
	if !a.Focused() || !p2.ContainsFocus() || !p1.ContainsFocus() || !tree.Root().ContainsFocus() {
		t.Fatal("A's chain should contain focus")
	}

	var log focusLog
	log.watch(tree.Root(), p1, p2, a, b)
	b.Focus()
	tickKeys(tree, KeySnapshot{})

	if p2.ContainsFocus() {
		t.Error("P2 should no longer contain focus")
	}
	if n := log.count("contains-lost:P2"); n != 1 {
		t.Errorf("P2 contains-lost notifications = %d, want 1", n)
	}
	for _, e := range log.entries {
		if strings.HasSuffix(e, ":P1") || strings.HasSuffix(e, ":root") {
			t.Errorf("shared ancestor notified: %s", e)
		}
	}
	if !p1.ContainsFocus() || !b.ContainsFocus() {
		t.Error("B's chain should contain focus")
	}
	if got := log.String(); got != "lost:A,gained:B,contains-gained:B,contains-lost:A,contains-lost:P2" {
		t.Errorf("notification order = %s", got)
	}
}

func TestFocusIsAppliedNextFrame(t *testing.T) {
	tree, _, _, a, b := focusTree(t)
	a.Focus()
	if tree.Session().FocusTarget() != nil || a.Focused() {
		t.Error("Focus must not apply synchronously")
	}
	if p, ok := tree.Session().PendingFocus(); !ok || p != a {
		t.Errorf("PendingFocus = %v, %v", p, ok)
	}

	// A later request in the same frame wins.
	b.Focus()
	tree.PreUpdate()
	if tree.Session().FocusTarget() != b {
		t.Error("the latest request should win")
	}
	if _, ok := tree.Session().PendingFocus(); ok {
		t.Error("request should be consumed")
	}
}

func TestFocusRequestDropped(t *testing.T) {
	tests := []struct {
		name  string
		setup func(tree *Tree, target *Element)
	}{
		{"not focusable", func(_ *Tree, e *Element) { e.Caps.Focusable = false }},
		{"detached", func(_ *Tree, e *Element) { e.RemoveFromParent() }},
		{"disabled", func(_ *Tree, e *Element) { e.SetEnabled(false) }},
		{"hidden", func(_ *Tree, e *Element) { e.SetVisible(false) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _, _, a, b := focusTree(t)
			a.Focus()
			tree.PreUpdate()

			tt.setup(tree, b)
			b.Focus()
			tree.PreUpdate()
			if tree.Session().FocusTarget() != a {
				t.Errorf("focus = %v, want A kept", tree.Session().FocusTarget())
			}
		})
	}
}

func TestFocusRequestForDisposedElementIsDropped(t *testing.T) {
	tree, _, _, a, b := focusTree(t)
	a.Focus()
	tree.PreUpdate()

	b.Focus()
	b.Dispose()
	tree.PreUpdate()
	if tree.Session().FocusTarget() != a {
		t.Error("request for a disposed element should be dropped")
	}
}

func TestRequestFocusNilClearsFocus(t *testing.T) {
	tree, p1, _, a, _ := focusTree(t)
	a.Focus()
	tree.PreUpdate()

	tree.Session().RequestFocus(nil)
	tree.PreUpdate()
	if tree.Session().FocusTarget() != nil || a.Focused() || p1.ContainsFocus() {
		t.Error("nil request should clear focus and unwind the chain")
	}
}

func TestBlurUnwindsImmediately(t *testing.T) {
	tree, p1, p2, a, _ := focusTree(t)
	a.Focus()
	tree.PreUpdate()

	var log focusLog
	log.watch(tree.Root(), p1, p2, a)
	tree.Blur()

	if tree.Session().FocusTarget() != nil {
		t.Error("Blur should clear focus immediately")
	}
	want := "lost:A,contains-lost:A,contains-lost:P2,contains-lost:P1,contains-lost:root"
	if got := log.String(); got != want {
		t.Errorf("notifications = %s, want %s", got, want)
	}
}

func TestRemovingFocusedSubtreeClearsFocus(t *testing.T) {
	tree, p1, p2, a, _ := focusTree(t)
	a.Focus()
	tree.PreUpdate()

	var log focusLog
	log.watch(p2, a)
	p1.Remove(p2, false)

	if tree.Session().FocusTarget() != nil || p1.ContainsFocus() || tree.Root().ContainsFocus() {
		t.Error("removing the focused subtree should clear focus")
	}
	if log.count("lost:A") != 1 || log.count("contains-lost:P2") != 1 {
		t.Errorf("notifications = %s", log.String())
	}
}

func TestReparentingFocusedElementMovesContainment(t *testing.T) {
	tree, p1, p2, a, _ := focusTree(t)
	q := addChild(tree.Root(), "Q", Rect{X: 250, Width: 100, Height: 100}, Capabilities{})
	a.Focus()
	tree.PreUpdate()

	var log focusLog
	log.watch(tree.Root(), p1, p2, q)
	q.Append(a)

	if tree.Session().FocusTarget() != a {
		t.Error("reparenting keeps focus")
	}
	if p1.ContainsFocus() || p2.ContainsFocus() || !q.ContainsFocus() || !tree.Root().ContainsFocus() {
		t.Errorf("contains-focus p1=%v p2=%v q=%v root=%v",
			p1.ContainsFocus(), p2.ContainsFocus(), q.ContainsFocus(), tree.Root().ContainsFocus())
	}
	if got := log.String(); got != "contains-gained:Q,contains-lost:P2,contains-lost:P1" {
		t.Errorf("notifications = %s", got)
	}
}

func TestFocusOnlyOneTarget(t *testing.T) {
	tree, _, _, a, b := focusTree(t)
	a.Focus()
	tree.PreUpdate()
	b.Focus()
	tree.PreUpdate()

	var focused int
	tree.Walk(func(e *Element) bool {
		if e.Focused() {
			focused++
		}
		return true
	})
	if focused != 1 || !b.Focused() {
		t.Errorf("%d focused elements, want only B", focused)
	}
}
