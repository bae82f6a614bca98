package willow2d

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// --- Recording backend ---

type fakeBackend struct {
	mu         sync.Mutex
	compiled   []string
	meshes     []*fakeMesh
	programs   []*fakeProgram
	compileErr error
}

func (b *fakeBackend) CreateMesh(positions, uvs []float32, indices []uint16) (MeshBuffers, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	m := &fakeMesh{vertices: len(positions) / 2, indices: len(indices)}
	b.meshes = append(b.meshes, m)
	return m, nil
}

func (b *fakeBackend) CompileShader(name string, src []byte) (ShaderProgram, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.compileErr != nil {
		return nil, b.compileErr
	}
	b.compiled = append(b.compiled, name)
	p := &fakeProgram{name: name, src: src, uniforms: make(map[string]any)}
	b.programs = append(b.programs, p)
	return p, nil
}

func (b *fakeBackend) compileCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.compiled)
}

func (b *fakeBackend) program(t *testing.T) *fakeProgram {
	t.Helper()
	b.mu.Lock()
	defer b.mu.Unlock()
	require.Len(t, b.programs, 1)
	return b.programs[0]
}

type fakeMesh struct {
	vertices int
	indices  int
	released atomic.Int32
}

func (m *fakeMesh) Release() { m.released.Add(1) }

type drawCall struct {
	uniforms map[string]any
	mesh     MeshBuffers
	texture  *ebiten.Image
}

type fakeProgram struct {
	name     string
	src      []byte
	bound    bool
	binds    int
	unbinds  int
	released int
	uniforms map[string]any
	draws    []drawCall
}

func (p *fakeProgram) Bind(*ebiten.Image) {
	p.bound = true
	p.binds++
}

func (p *fakeProgram) Unbind() {
	p.bound = false
	p.unbinds++
	clear(p.uniforms)
}

func (p *fakeProgram) SetUniform(name string, value any) { p.uniforms[name] = value }

func (p *fakeProgram) DrawMesh(buf MeshBuffers, tex *ebiten.Image) error {
	if !p.bound {
		return eris.Wrap(ErrPrecondition, "draw while unbound")
	}
	u := make(map[string]any, len(p.uniforms))
	for k, v := range p.uniforms {
		u[k] = v
	}
	p.draws = append(p.draws, drawCall{uniforms: u, mesh: buf, texture: tex})
	return nil
}

func (p *fakeProgram) Release() { p.released++ }

// --- Recording components ---

// recorder collects lifecycle calls from several components in order.
type recorder struct {
	mu    sync.Mutex
	calls []string
}

func (r *recorder) add(s string) {
	r.mu.Lock()
	r.calls = append(r.calls, s)
	r.mu.Unlock()
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

type recordingComponent struct {
	BaseComponent
	name string
	rec  *recorder
}

func (c *recordingComponent) Start(e *Entity) {
	c.BaseComponent.Start(e)
	c.rec.add(c.name + ":start")
}

func (c *recordingComponent) Update(float64) { c.rec.add(c.name + ":update") }

func (c *recordingComponent) OnRemove() {
	c.rec.add(c.name + ":remove")
	c.BaseComponent.OnRemove()
}

func (c *recordingComponent) Cleanup() { c.rec.add(c.name + ":cleanup") }

type panicComponent struct {
	BaseComponent
}

func (panicComponent) Update(float64) { panic("boom") }

type fixedCounter struct {
	BaseComponent
	mu    sync.Mutex
	ticks int
	dts   []float64
}

func (c *fixedCounter) FixedUpdate(dt float64) {
	c.mu.Lock()
	c.ticks++
	c.dts = append(c.dts, dt)
	c.mu.Unlock()
}

func (c *fixedCounter) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// meshRenderer3D stands in for a host mesh renderer.
type meshRenderer3D struct {
	BaseComponent
}

func (meshRenderer3D) CapabilityKind() string { return KindMeshRenderer }

// --- Helpers ---

// stepClock returns a fixed delta every frame.
type stepClock struct {
	dt atomic.Uint64
}

func newStepClock(dt float64) *stepClock {
	c := &stepClock{}
	c.set(dt)
	return c
}

func (c *stepClock) set(dt float64) { c.dt.Store(uint64(dt * 1e9)) }

func (c *stepClock) Delta() float64 { return float64(c.dt.Load()) / 1e9 }

func newTestEngine(t *testing.T, opts ...EngineOption) (*Engine, *fakeBackend) {
	t.Helper()
	b := &fakeBackend{}
	base := []EngineOption{
		WithBackend(b),
		WithLogger(zerolog.Nop()),
		WithClock(newStepClock(0)),
	}
	e, err := NewEngine(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e, b
}

// newTestScene creates a scene whose fixed driver only ticks when the test
// sends on the returned channel.
func newTestScene(t *testing.T, e *Engine, opts ...SceneOption) (*Scene, chan time.Time) {
	t.Helper()
	tick := make(chan time.Time, 1)
	s, err := NewScene(e, append([]SceneOption{WithTickChannel(tick)}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, tick
}

// newTestMesh creates a square mesh on e's render thread.
func newTestMesh(t *testing.T, e *Engine, mat *Material2D) *Mesh2D {
	t.Helper()
	m, err := e.NewSquareMesh(e.renderContext(), mat)
	require.NoError(t, err)
	return m
}

// newSprite creates an entity with a MeshRenderer2D holding one square mesh.
func newSprite(t *testing.T, e *Engine, name string, mat *Material2D) (*Entity, *MeshRenderer2D) {
	t.Helper()
	ent := NewEntity(name)
	r, err := NewMeshRenderer2D(newTestMesh(t, e, mat))
	require.NoError(t, err)
	require.NoError(t, ent.AddComponent(r))
	return ent, r
}

// renderFrame runs one engine frame into a small target.
func renderFrame(t *testing.T, e *Engine) {
	t.Helper()
	require.NoError(t, e.Frame(ebiten.NewImage(16, 16)))
}
