package willow2d

// Component is a behavior module attached to an Entity. The entity drives the
// four lifecycle hooks:
//
//   - Start is called once when the component is attached.
//   - Update is called every render frame while the entity is in a scene's
//     Registry, with the frame's delta time in seconds.
//   - OnRemove is called when the component is detached.
//   - Cleanup releases resources owned by the component. It is called after
//     OnRemove and when the entity itself is cleaned up, and must tolerate
//     repeated calls.
type Component interface {
	Start(e *Entity)
	Update(dt float64)
	OnRemove()
	Cleanup()
}

// FixedUpdater is implemented by components that want the scene's fixed-rate
// tick in addition to the render-cadence Update. FixedUpdate runs on the
// fixed driver's goroutine, concurrently with rendering.
type FixedUpdater interface {
	FixedUpdate(dt float64)
}

// Capability is implemented by components that are exclusive per kind: an
// entity carries at most one component of each capability kind. Host mesh
// renderers should report KindMeshRenderer so 2D and 3D renderers exclude
// each other.
type Capability interface {
	CapabilityKind() string
}

// Capability kinds used by this package.
const (
	KindMeshRenderer   = "mesh-renderer"
	KindSpriteAnimator = "sprite-animator"
)

// BaseComponent provides no-op lifecycle hooks and remembers the owning
// entity. Embed it and override the hooks you need; overriding Start must
// call BaseComponent.Start to keep Entity working.
type BaseComponent struct {
	entity *Entity
}

// Start records the owning entity.
func (b *BaseComponent) Start(e *Entity) { b.entity = e }

// Update does nothing.
func (b *BaseComponent) Update(float64) {}

// OnRemove forgets the owning entity.
func (b *BaseComponent) OnRemove() { b.entity = nil }

// Cleanup does nothing.
func (b *BaseComponent) Cleanup() {}

// Entity returns the owning entity, or nil when detached.
func (b *BaseComponent) Entity() *Entity { return b.entity }
