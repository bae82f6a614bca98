package willow2d

import (
	"sync"
	"sync/atomic"

	"github.com/rotisserie/eris"
)

var entityIDCounter atomic.Uint32

func nextEntityID() uint32 {
	return entityIDCounter.Add(1)
}

// itemHost is the scene an entity was added to. Components use it to move the
// entity between collections when capabilities change.
type itemHost interface {
	promote(e *Entity)
	demote(e *Entity)
	frameChanged(e *Entity, frame int)
}

// Entity is an addressable game object composed of attachable components.
// The same type is used for host (3D) items and 2D sprites; what makes an
// entity 2D is carrying a MeshRenderer2D.
//
// The component list is copy-on-write, so the fixed driver and the render
// thread can iterate it while game code attaches or detaches components.
type Entity struct {
	// Identity
	ID   uint32
	Name string

	// Transform is the entity's local transform. Mutate it from the render
	// thread or from components.
	Transform Transform

	// UserData is free for application use.
	UserData any

	frame      atomic.Int32
	mu         sync.Mutex // serializes component writers
	components atomic.Pointer[[]Component]
	host       atomic.Pointer[hostRef]
}

// hostRef boxes the interface so it fits atomic.Pointer.
type hostRef struct{ h itemHost }

// NewEntity creates an entity with an identity transform and no components.
func NewEntity(name string) *Entity {
	e := &Entity{ID: nextEntityID(), Name: name, Transform: NewTransform()}
	empty := make([]Component, 0)
	e.components.Store(&empty)
	return e
}

// Frame returns the frame identifier (sprite-sheet tile id) currently shown.
func (e *Entity) Frame() int {
	return int(e.frame.Load())
}

// SetFrame sets the displayed frame identifier.
func (e *Entity) SetFrame(id int) {
	e.frame.Store(int32(id))
	if h := e.getHost(); h != nil {
		h.frameChanged(e, id)
	}
}

// Components returns the attached components in attachment order.
// The returned slice MUST NOT be mutated.
func (e *Entity) Components() []Component {
	if p := e.components.Load(); p != nil {
		return *p
	}
	return nil
}

// AddComponent attaches c and calls its Start hook. It fails with
// ErrPrecondition if c is nil, already attached, or shares a capability kind
// with an attached component.
func (e *Entity) AddComponent(c Component) error {
	if c == nil {
		return eris.Wrapf(ErrPrecondition, "add nil component to entity %q", e.Name)
	}

	e.mu.Lock()
	cur := e.Components()
	for _, existing := range cur {
		if existing == c {
			e.mu.Unlock()
			return eris.Wrapf(ErrPrecondition, "component %T already attached to entity %q", c, e.Name)
		}
		if kind, ok := capabilityKind(c); ok {
			if other, ok := capabilityKind(existing); ok && other == kind {
				e.mu.Unlock()
				return eris.Wrapf(ErrPrecondition, "entity %q already has a %s capability", e.Name, kind)
			}
		}
	}
	next := make([]Component, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, c)
	e.components.Store(&next)
	e.mu.Unlock()

	c.Start(e)
	return nil
}

// RemoveComponent detaches c, then calls OnRemove and Cleanup. Returns false
// if c was not attached.
func (e *Entity) RemoveComponent(c Component) bool {
	e.mu.Lock()
	cur := e.Components()
	idx := -1
	for i, existing := range cur {
		if existing == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return false
	}
	next := make([]Component, 0, len(cur)-1)
	next = append(next, cur[:idx]...)
	next = append(next, cur[idx+1:]...)
	e.components.Store(&next)
	e.mu.Unlock()

	c.OnRemove()
	c.Cleanup()
	return true
}

// Cleanup calls Cleanup on every attached component. Components stay
// attached.
func (e *Entity) Cleanup() {
	for _, c := range e.Components() {
		c.Cleanup()
	}
}

// Is2D reports whether the entity carries the 2D mesh renderer capability.
func (e *Entity) Is2D() bool {
	return HasComponent[*MeshRenderer2D](e)
}

// GetComponent returns the first attached component of type T.
func GetComponent[T Component](e *Entity) (T, bool) {
	var zero T
	if e == nil {
		return zero, false
	}
	for _, c := range e.Components() {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	return zero, false
}

// HasComponent reports whether a component of type T is attached.
func HasComponent[T Component](e *Entity) bool {
	_, ok := GetComponent[T](e)
	return ok
}

func capabilityKind(c Component) (string, bool) {
	if k, ok := c.(Capability); ok {
		return k.CapabilityKind(), true
	}
	return "", false
}

func (e *Entity) getHost() itemHost {
	if r := e.host.Load(); r != nil {
		return r.h
	}
	return nil
}

func (e *Entity) setHost(h itemHost) {
	if h == nil {
		e.host.Store(nil)
		return
	}
	e.host.Store(&hostRef{h: h})
}
