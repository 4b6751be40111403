// Package ecs provides ECS adapters for trellis's routing events.
//
// The primary adapter is [NewDonburiSink], which bridges every routing
// callback the tree dispatches (hover, button, drag, key, focus) into a
// [Donburi] world as typed events. Subscribe to [RoutingEventType] in your
// ECS systems to receive them. Elements can be bound to entities with
// [DonburiSink.Bind] so events arrive with the matching entity.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	sink.Bind(button)
//	tree.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
