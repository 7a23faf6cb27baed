// Package ecs bridges almostover proximity events into an ECS world.
//
// The adapter is [NewDonburiSink], which publishes every event a tracker
// emits (enter, move, leave, click) into a [Donburi] world as a typed event.
// Subscribe to [ProximityEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	tracker.SetEventSink(sink)
//
// Events are queued by Donburi; call ProximityEventType.ProcessEvents (or
// events.ProcessAllEvents) once per frame to deliver them.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
