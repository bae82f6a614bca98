package willow2d

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/rotisserie/eris"
)

// Mesh2D is a 2D mesh: backend buffers plus a material. Create meshes with
// Engine.NewMesh2D on the render thread.
type Mesh2D struct {
	engine      *Engine
	buffers     MeshBuffers
	vertexCount int

	mu       sync.RWMutex
	material *Material2D
	released atomic.Bool
}

// Material returns the mesh material.
func (m *Mesh2D) Material() *Material2D {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.material
}

// SetMaterial replaces the mesh material.
func (m *Mesh2D) SetMaterial(mat *Material2D) error {
	if mat == nil {
		return eris.Wrap(ErrPrecondition, "mesh: nil material")
	}
	m.mu.Lock()
	m.material = mat
	m.mu.Unlock()
	return nil
}

// VertexCount returns the number of indices drawn.
func (m *Mesh2D) VertexCount() int { return m.vertexCount }

// Buffers returns the backend handles.
func (m *Mesh2D) Buffers() MeshBuffers { return m.buffers }

// RenderList is the host 3D renderer's batched entry point. 2D meshes are
// drawn only by the 2D pipeline, so it always fails.
func (m *Mesh2D) RenderList(context.Context, []*Entity) error {
	return eris.Wrap(ErrUnsupportedOperation, "mesh: RenderList on a 2D mesh")
}

// Released reports whether Cleanup has been called.
func (m *Mesh2D) Released() bool { return m.released.Load() }

// Cleanup schedules release of the backend buffers on the render thread. The
// texture is left alone. Repeated calls do nothing.
func (m *Mesh2D) Cleanup() {
	if m.released.Swap(true) {
		return
	}
	buf := m.buffers
	if buf == nil {
		return
	}
	if m.engine == nil {
		buf.Release()
		return
	}
	m.engine.Post(func(context.Context) {
		buf.Release()
	})
}
