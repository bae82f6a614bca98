package ecs

import (
	"sync"

	"github.com/phanxgames/willow2d"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// SceneEventType is the Donburi event type for willow2d scene events.
var SceneEventType = events.NewEventType[willow2d.SceneEvent]()

// SpriteData mirrors one scene entity inside the ECS world.
type SpriteData struct {
	EntityID uint32
	Name     string
	Is2D     bool
	Frame    int
}

// Sprite is the component SpriteMirror maintains.
var Sprite = donburi.NewComponentType[SpriteData]()

// DonburiSink is a willow2d.EventSink backed by a Donburi world. Scene events
// can arrive from the render thread and from game code, so publishing and
// processing are serialized.
type DonburiSink struct {
	mu    sync.Mutex
	world donburi.World
}

var _ willow2d.EventSink = (*DonburiSink)(nil)

// NewDonburiSink creates a sink publishing to SceneEventType in world.
func NewDonburiSink(world donburi.World) *DonburiSink {
	return &DonburiSink{world: world}
}

// EmitSceneEvent queues event in the world.
func (s *DonburiSink) EmitSceneEvent(event willow2d.SceneEvent) {
	s.mu.Lock()
	SceneEventType.Publish(s.world, event)
	s.mu.Unlock()
}

// ProcessEvents delivers queued events to subscribers. Call it from the
// goroutine that owns the world.
func (s *DonburiSink) ProcessEvents() {
	s.mu.Lock()
	SceneEventType.ProcessEvents(s.world)
	s.mu.Unlock()
}

// SpriteMirror keeps one Donburi entity with a Sprite component per scene
// entity, created when the entity is routed and removed when it leaves the
// scene.
type SpriteMirror struct {
	entities map[uint32]donburi.Entity
}

// NewSpriteMirror subscribes a mirror to SceneEventType in world.
func NewSpriteMirror(world donburi.World) *SpriteMirror {
	m := &SpriteMirror{entities: make(map[uint32]donburi.Entity)}
	SceneEventType.Subscribe(world, m.handle)
	return m
}

func (m *SpriteMirror) handle(w donburi.World, ev willow2d.SceneEvent) {
	switch ev.Type {
	case willow2d.EventRouted2D, willow2d.EventRouted3D:
		data := Sprite.Get(m.entry(w, ev))
		data.Name = ev.Name
		data.Is2D = ev.Type == willow2d.EventRouted2D
	case willow2d.EventFrameChanged:
		Sprite.Get(m.entry(w, ev)).Frame = ev.Frame
	case willow2d.EventRemoved:
		if ent, ok := m.entities[ev.EntityID]; ok {
			if w.Valid(ent) {
				w.Remove(ent)
			}
			delete(m.entities, ev.EntityID)
		}
	}
}

func (m *SpriteMirror) entry(w donburi.World, ev willow2d.SceneEvent) *donburi.Entry {
	if ent, ok := m.entities[ev.EntityID]; ok && w.Valid(ent) {
		return w.Entry(ent)
	}
	ent := w.Create(Sprite)
	m.entities[ev.EntityID] = ent
	entry := w.Entry(ent)
	Sprite.SetValue(entry, SpriteData{EntityID: ev.EntityID, Name: ev.Name})
	return entry
}

// Lookup returns the mirrored data of a scene entity.
func (m *SpriteMirror) Lookup(w donburi.World, entityID uint32) (SpriteData, bool) {
	ent, ok := m.entities[entityID]
	if !ok || !w.Valid(ent) {
		return SpriteData{}, false
	}
	return *Sprite.Get(w.Entry(ent)), true
}

// Len returns the number of mirrored entities.
func (m *SpriteMirror) Len() int { return len(m.entities) }
