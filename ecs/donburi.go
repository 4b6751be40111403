package ecs

import (
	"github.com/phanxgames/trellis"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// Event is a trellis routing event together with the entity bound to the
// element it was dispatched to. Entity is donburi.Null for unbound elements.
type Event struct {
	trellis.RoutingEvent
	Entity donburi.Entity
}

// RoutingEventType is the Donburi event type for trellis routing events.
// Subscribe to it in ECS systems to receive hover, button, drag, key and
// focus events.
var RoutingEventType = events.NewEventType[Event]()

// ElementRef is the component that links an entity to a trellis element.
var ElementRef = donburi.NewComponentType[trellis.Handle]()

// DonburiSink is a trellis.EventSink that publishes into a Donburi world.
type DonburiSink struct {
	world    donburi.World
	entities map[trellis.Handle]donburi.Entity
}

var _ trellis.EventSink = (*DonburiSink)(nil)

// NewDonburiSink creates a sink backed by world. Events are queued on
// RoutingEventType and delivered by its ProcessEvents.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world, entities: make(map[trellis.Handle]donburi.Entity)}
}

// Bind creates an entity carrying an ElementRef to e. Events dispatched to
// e are published with that entity.
func (s *DonburiSink) Bind(e *trellis.Element) donburi.Entity {
	if ent, ok := s.entities[e.ID()]; ok && s.world.Valid(ent) {
		return ent
	}
	ent := s.world.Create(ElementRef)
	ElementRef.SetValue(s.world.Entry(ent), e.ID())
	s.entities[e.ID()] = ent
	return ent
}

// Unbind removes the entity bound to e, if any.
func (s *DonburiSink) Unbind(e *trellis.Element) {
	if ent, ok := s.entities[e.ID()]; ok {
		delete(s.entities, e.ID())
		if s.world.Valid(ent) {
			s.world.Remove(ent)
		}
	}
}

// Entity returns the entity bound to the element with handle h.
func (s *DonburiSink) Entity(h trellis.Handle) (donburi.Entity, bool) {
	ent, ok := s.entities[h]
	return ent, ok
}

// HandleRoutingEvent implements trellis.EventSink.
func (s *DonburiSink) HandleRoutingEvent(ev trellis.RoutingEvent) {
	ent, ok := s.entities[ev.Element]
	if !ok {
		ent = donburi.Null
	}
	RoutingEventType.Publish(s.world, Event{RoutingEvent: ev, Entity: ent})
}
