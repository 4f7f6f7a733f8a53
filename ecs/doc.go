// Package ecs provides ECS adapters for gestures' callback events.
//
// The primary adapter is [NewDonburiStore], which bridges gesture lifecycle
// events (start, change, end, multi-touch, rotate, scale) into a [Donburi]
// world as typed events. Subscribe to [GestureEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	gesture.SetEventStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
