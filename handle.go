package trellis

import "fmt"

// Handle identifies an element within its Tree. A handle stays valid until
// the element is disposed; after that Tree.Lookup returns nil for it, even if
// the slot has been reused by a newer element.
type Handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether h refers to no element.
func (h Handle) IsZero() bool {
	return h.gen == 0
}

func (h Handle) String() string {
	if h.IsZero() {
		return "handle(none)"
	}
	return fmt.Sprintf("handle(%d#%d)", h.index, h.gen)
}

// arena stores every live element of a tree. Parent links and routing
// targets are plain handles into the arena, never owning pointers.
type arena struct {
	slots []arenaSlot
	free  []uint32
	live  int
}

type arenaSlot struct {
	gen uint32
	el  *Element
}

func (a *arena) insert(e *Element) Handle {
	a.live++
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.gen++
		s.el = e
		return Handle{index: idx, gen: s.gen}
	}
	a.slots = append(a.slots, arenaSlot{gen: 1, el: e})
	return Handle{index: uint32(len(a.slots) - 1), gen: 1}
}

func (a *arena) get(h Handle) *Element {
	if h.gen == 0 || int(h.index) >= len(a.slots) {
		return nil
	}
	s := a.slots[h.index]
	if s.gen != h.gen {
		return nil
	}
	return s.el
}

func (a *arena) release(h Handle) {
	if a.get(h) == nil {
		return
	}
	a.slots[h.index].el = nil
	a.free = append(a.free, h.index)
	a.live--
}
