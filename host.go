package willow2d

import (
	"context"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
)

// ItemHandler is the host's collection of non-2D (3D) items.
type ItemHandler interface {
	Add(e *Entity)
	Remove(e *Entity)
	Contains(e *Entity) bool
}

// HostRenderer draws everything that is not a 2D sprite: the 3D scene, an
// optional skybox and the UI overlay.
type HostRenderer interface {
	Render3D(ctx context.Context, target *ebiten.Image) error
	HasSkyBox() bool
	RenderSkyBox(ctx context.Context, target *ebiten.Image) error
	RenderUI(ctx context.Context, target *ebiten.Image) error
}

// ItemSet is the default ItemHandler: an insertion-ordered set guarded by a
// mutex.
type ItemSet struct {
	mu    sync.Mutex
	items []*Entity
}

var _ ItemHandler = (*ItemSet)(nil)

// Add appends e if it is not present.
func (s *ItemSet) Add(e *Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it == e {
			return
		}
	}
	s.items = append(s.items, e)
}

// Remove deletes e if present.
func (s *ItemSet) Remove(e *Entity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, it := range s.items {
		if it == e {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// Contains reports whether e is present.
func (s *ItemSet) Contains(e *Entity) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it == e {
			return true
		}
	}
	return false
}

// Items returns a copy of the set in insertion order.
func (s *ItemSet) Items() []*Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Entity, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of items.
func (s *ItemSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// NopHostRenderer draws nothing. It is the default for scenes without a host
// renderer.
type NopHostRenderer struct{}

var _ HostRenderer = NopHostRenderer{}

func (NopHostRenderer) Render3D(context.Context, *ebiten.Image) error { return nil }
func (NopHostRenderer) HasSkyBox() bool { return false }
func (NopHostRenderer) RenderSkyBox(context.Context, *ebiten.Image) error { return nil }
func (NopHostRenderer) RenderUI(context.Context, *ebiten.Image) error { return nil }
