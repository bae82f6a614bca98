package willow2d

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Registry is the ordered set of 2D entities in a scene. Insertion order is
// render order.
//
// Writers are serialized by a mutex and publish a fresh immutable slice;
// readers (Items, Update, the render pass) iterate whatever snapshot was
// current when they started, so entities added or removed mid-iteration only
// show up in the next pass.
type Registry struct {
	mu    sync.Mutex
	items atomic.Pointer[[]*Entity]
	log   zerolog.Logger
}

// NewRegistry creates an empty registry that logs through logger.
func NewRegistry(logger zerolog.Logger) *Registry {
	r := &Registry{log: logger}
	empty := make([]*Entity, 0)
	r.items.Store(&empty)
	return r
}

// Add appends e. It fails with ErrInvalidCapability if e has no
// MeshRenderer2D, leaving the registry unchanged. Adding an entity that is
// already present is a no-op.
func (r *Registry) Add(e *Entity) error {
	if e == nil {
		return eris.Wrap(ErrPrecondition, "registry add nil entity")
	}
	if !e.Is2D() {
		return eris.Wrapf(ErrInvalidCapability, "registry add entity %q (id %d): no 2D mesh renderer", e.Name, e.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.Items()
	for _, it := range cur {
		if it == e {
			return nil
		}
	}
	next := make([]*Entity, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, e)
	r.items.Store(&next)
	return nil
}

// Remove deletes e if present and reports whether it was.
func (r *Registry) Remove(e *Entity) bool {
	if e == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.Items()
	for i, it := range cur {
		if it != e {
			continue
		}
		next := make([]*Entity, 0, len(cur)-1)
		next = append(next, cur[:i]...)
		next = append(next, cur[i+1:]...)
		r.items.Store(&next)
		return true
	}
	return false
}

// Contains reports whether e is in the registry.
func (r *Registry) Contains(e *Entity) bool {
	for _, it := range r.Items() {
		if it == e {
			return true
		}
	}
	return false
}

// Len returns the number of entities.
func (r *Registry) Len() int {
	return len(r.Items())
}

// Items returns the current snapshot. The returned slice MUST NOT be mutated.
func (r *Registry) Items() []*Entity {
	if p := r.items.Load(); p != nil {
		return *p
	}
	return nil
}

// Update calls Update(dt) on every component of every entity, in insertion
// and attachment order. A panicking entity is logged and skipped; the rest
// still update. The returned error joins every recovered failure.
func (r *Registry) Update(dt float64) error {
	var errs []error
	for _, e := range r.Items() {
		if err := r.guard(e, "update", func() {
			for _, c := range e.Components() {
				c.Update(dt)
			}
		}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// FixedUpdate calls FixedUpdate(dt) on every component implementing
// FixedUpdater, with the same ordering and isolation as Update.
func (r *Registry) FixedUpdate(dt float64) error {
	var errs []error
	for _, e := range r.Items() {
		if err := r.guard(e, "fixed update", func() {
			for _, c := range e.Components() {
				if f, ok := c.(FixedUpdater); ok {
					f.FixedUpdate(dt)
				}
			}
		}); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) guard(e *Entity, phase string, fn func()) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = eris.Errorf("%s entity %q (id %d): %s", phase, e.Name, e.ID, fmt.Sprint(p))
			r.log.Error().
				Uint32("entity", e.ID).
				Str("name", e.Name).
				Str("phase", phase).
				Interface("panic", p).
				Msg("component panicked")
		}
	}()
	fn()
	return nil
}
