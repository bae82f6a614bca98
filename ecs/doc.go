// Package ecs provides ECS adapters for willow2d scene events.
//
// [DonburiSink] is a willow2d.EventSink that publishes routing and animation
// events into a [Donburi] world as typed events. Subscribe to
// [SceneEventType] in your ECS systems to receive them, or attach a
// [SpriteMirror] to keep a Sprite component per scene entity up to date.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	mirror := ecs.NewSpriteMirror(world)
//	scene, err := willow2d.NewScene(engine, willow2d.WithEventSink(sink))
//	...
//	sink.ProcessEvents() // once per game tick
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
