package willow2d

import (
	"sync"
	"sync/atomic"

	"github.com/rotisserie/eris"
)

// MeshRenderer2D is the 2D mesh-renderer capability. Carrying it is what
// makes an entity 2D: scenes route such entities into their Registry, and
// attaching or removing it on an entity already in a scene moves the entity
// between the Registry and the host 3D collection.
//
// The renderer owns its meshes and cleans them up when they are replaced or
// when the renderer itself is cleaned up.
type MeshRenderer2D struct {
	BaseComponent

	mu      sync.RWMutex
	meshes  []*Mesh2D
	visible atomic.Bool
}

var (
	_ Component  = (*MeshRenderer2D)(nil)
	_ Capability = (*MeshRenderer2D)(nil)
)

// NewMeshRenderer2D creates a visible renderer holding meshes.
func NewMeshRenderer2D(meshes ...*Mesh2D) (*MeshRenderer2D, error) {
	r := &MeshRenderer2D{}
	r.visible.Store(true)
	if len(meshes) > 0 {
		if err := r.SetMeshes(meshes); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// CapabilityKind implements Capability.
func (r *MeshRenderer2D) CapabilityKind() string { return KindMeshRenderer }

// Start routes the entity into its scene's Registry if it is in a scene.
func (r *MeshRenderer2D) Start(e *Entity) {
	r.BaseComponent.Start(e)
	if h := e.getHost(); h != nil {
		h.promote(e)
	}
}

// OnRemove routes the entity back to its scene's host collection.
func (r *MeshRenderer2D) OnRemove() {
	if e := r.Entity(); e != nil {
		if h := e.getHost(); h != nil {
			h.demote(e)
		}
	}
	r.BaseComponent.OnRemove()
}

// Cleanup cleans up and drops every mesh.
func (r *MeshRenderer2D) Cleanup() {
	r.mu.Lock()
	old := r.meshes
	r.meshes = nil
	r.mu.Unlock()
	for _, m := range old {
		m.Cleanup()
	}
}

// SetMesh replaces all meshes with m.
func (r *MeshRenderer2D) SetMesh(m *Mesh2D) error {
	return r.SetMeshes([]*Mesh2D{m})
}

// SetMeshes replaces all meshes. Replaced meshes that are not in ms are
// cleaned up. On error nothing changes.
func (r *MeshRenderer2D) SetMeshes(ms []*Mesh2D) error {
	for i, m := range ms {
		if m == nil {
			return eris.Wrapf(ErrPrecondition, "mesh renderer: nil mesh at %d", i)
		}
	}
	next := make([]*Mesh2D, len(ms))
	copy(next, ms)

	r.mu.Lock()
	old := r.meshes
	r.meshes = next
	r.mu.Unlock()

	for _, o := range old {
		keep := false
		for _, n := range next {
			if n == o {
				keep = true
				break
			}
		}
		if !keep {
			o.Cleanup()
		}
	}
	return nil
}

// Mesh returns the first mesh, or nil.
func (r *MeshRenderer2D) Mesh() *Mesh2D {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.meshes) == 0 {
		return nil
	}
	return r.meshes[0]
}

// Meshes returns a copy of the mesh list.
func (r *MeshRenderer2D) Meshes() []*Mesh2D {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Mesh2D, len(r.meshes))
	copy(out, r.meshes)
	return out
}

// Visible reports whether the pipeline draws this renderer.
func (r *MeshRenderer2D) Visible() bool { return r.visible.Load() }

// SetVisible shows or hides the renderer.
func (r *MeshRenderer2D) SetVisible(v bool) { r.visible.Store(v) }
