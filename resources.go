package willow2d

import (
	"context"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
)

// Pipeline is a render pass over a scene. Pipelines registered on an engine's
// Resources run every frame, in registration order, between the host 3D pass
// and the skybox.
type Pipeline interface {
	Name() string
	Init(res *Resources) error
	Render(ctx context.Context, scene *Scene, target *ebiten.Image) error
}

// Resources is an engine's shader and pipeline registry. Registration by name
// is init-once: concurrent FindOrRegister calls for the same name build the
// resource exactly once.
type Resources struct {
	mu        sync.Mutex
	shaders   map[string]ShaderProgram
	pipelines []Pipeline
}

// NewResources creates an empty registry.
func NewResources() *Resources {
	return &Resources{shaders: make(map[string]ShaderProgram)}
}

// FindShader returns the shader registered under name.
func (r *Resources) FindShader(name string) (ShaderProgram, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sh, ok := r.shaders[name]
	return sh, ok
}

// RegisterShader stores sh under name. It fails if the name is taken.
func (r *Resources) RegisterShader(name string, sh ShaderProgram) error {
	if sh == nil {
		return eris.Wrapf(ErrPrecondition, "register nil shader %q", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.shaders[name]; ok {
		return eris.Wrapf(ErrPrecondition, "shader %q already registered", name)
	}
	r.shaders[name] = sh
	return nil
}

// FindOrRegister returns the shader registered under name, building and
// registering it with factory if absent. created reports whether factory ran.
// The registry lock is held while factory runs.
func (r *Resources) FindOrRegister(name string, factory func() (ShaderProgram, error)) (sh ShaderProgram, created bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if sh, ok := r.shaders[name]; ok {
		return sh, false, nil
	}
	sh, err = factory()
	if err != nil {
		return nil, false, err
	}
	if sh == nil {
		return nil, false, eris.Wrapf(ErrPrecondition, "shader factory for %q returned nil", name)
	}
	r.shaders[name] = sh
	return sh, true, nil
}

// RegisterPipeline initializes p and appends it to the pipeline list.
func (r *Resources) RegisterPipeline(p Pipeline) error {
	if p == nil {
		return eris.Wrap(ErrPrecondition, "register nil pipeline")
	}
	if err := p.Init(r); err != nil {
		return eris.Wrapf(err, "init pipeline %q", p.Name())
	}
	r.mu.Lock()
	r.pipelines = append(r.pipelines, p)
	r.mu.Unlock()
	return nil
}

// Pipelines returns the registered pipelines in registration order.
func (r *Resources) Pipelines() []Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Pipeline, len(r.pipelines))
	copy(out, r.pipelines)
	return out
}

// Release releases every registered shader and forgets all pipelines.
func (r *Resources) Release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for name, sh := range r.shaders {
		sh.Release()
		delete(r.shaders, name)
	}
	r.pipelines = nil
}
