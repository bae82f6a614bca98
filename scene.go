package willow2d

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// SceneOption configures a Scene.
type SceneOption func(*Scene)

// WithItemHandler sets the host collection non-2D entities are routed to.
// The default is an ItemSet.
func WithItemHandler(h ItemHandler) SceneOption {
	return func(s *Scene) { s.items = h }
}

// WithHostRenderer sets the renderer for the 3D pass, skybox and UI.
func WithHostRenderer(r HostRenderer) SceneOption {
	return func(s *Scene) { s.host = r }
}

// WithTickChannel sets the channel that drives the fixed driver. If unset the
// driver ticks on its own at Settings.FixedStepMillis. Tests pass a channel
// they control to step the driver manually.
func WithTickChannel(ch <-chan time.Time) SceneOption {
	return func(s *Scene) { s.tickCh = ch }
}

// WithTickDoneChannel sets a channel that receives the tick count after
// every fixed tick.
func WithTickDoneChannel(ch chan<- uint64) SceneOption {
	return func(s *Scene) { s.tickDone = ch }
}

// WithEventSink forwards routing and animation events to sink.
func WithEventSink(sink EventSink) SceneOption {
	return func(s *Scene) { s.sink = sink }
}

// WithSceneLogger sets the scene logger. The default derives from the
// engine logger.
func WithSceneLogger(l zerolog.Logger) SceneOption {
	return func(s *Scene) { s.log = l; s.hasLog = true }
}

// WithSceneName names the scene in logs.
func WithSceneName(name string) SceneOption {
	return func(s *Scene) { s.name = name }
}

// Scene routes entities between the host 3D collection and its 2D Registry,
// owns the 2D camera and the fixed driver, and runs the frame's render
// passes.
//
// An entity is 2D exactly when it carries a MeshRenderer2D. Add and Remove
// dispatch on that; attaching or removing the renderer later moves the
// entity between collections.
type Scene struct {
	name     string
	engine   *Engine
	registry *Registry
	camera   *Camera2D
	driver   *FixedDriver
	items    ItemHandler
	host     HostRenderer
	sink     EventSink
	log      zerolog.Logger
	hasLog   bool
	tickCh   <-chan time.Time
	tickDone chan<- uint64

	// Render-thread only.
	frame FrameStats
	last  atomic.Pointer[FrameStats]

	closed    atomic.Bool
	closeOnce sync.Once
}

// NewScene creates a scene on engine and starts its fixed driver. The first
// scene on an engine registers the Standard2D shader and the 2D pipeline;
// later scenes reuse them.
func NewScene(engine *Engine, opts ...SceneOption) (*Scene, error) {
	if engine == nil {
		return nil, eris.Wrap(ErrPrecondition, "new scene: nil engine")
	}
	s := &Scene{
		name:   "scene",
		engine: engine,
		camera: NewCamera2D(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.items == nil {
		s.items = &ItemSet{}
	}
	if s.host == nil {
		s.host = NopHostRenderer{}
	}
	if !s.hasLog {
		s.log = engine.log.With().Str("scene", s.name).Logger()
	}
	s.registry = NewRegistry(s.log)

	res := engine.Resources()
	_, created, err := res.FindOrRegister(Standard2DShaderName, compileStandard2D(engine.Backend()))
	if err != nil {
		return nil, eris.Wrap(err, "new scene")
	}
	if created {
		if err := res.RegisterPipeline(NewStandard2DPipeline(engine)); err != nil {
			return nil, eris.Wrap(err, "new scene")
		}
		s.log.Info().Str("shader", Standard2DShaderName).Msg("registered 2D shader and pipeline")
	}

	s.driver = NewFixedDriver(s.registry, engine.Settings().FixedStep(), s.tickCh, s.tickDone, s.log)
	s.driver.Start()
	return s, nil
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// Engine returns the owning engine.
func (s *Scene) Engine() *Engine { return s.engine }

// Camera2D returns the 2D camera.
func (s *Scene) Camera2D() *Camera2D { return s.camera }

// Registry returns the 2D registry.
func (s *Scene) Registry() *Registry { return s.registry }

// Entities3D returns the host collection non-2D entities are routed to.
func (s *Scene) Entities3D() ItemHandler { return s.items }

// FixedDriver returns the scene's fixed-rate driver.
func (s *Scene) FixedDriver() *FixedDriver { return s.driver }

// Add routes e into the Registry if it is 2D, otherwise into the host
// collection. Adding a 2D entity twice is a no-op.
func (s *Scene) Add(e *Entity) error {
	if e == nil {
		return eris.Wrap(ErrPrecondition, "scene add nil entity")
	}
	e.setHost(s)
	if e.Is2D() {
		if err := s.registry.Add(e); err != nil {
			return err
		}
		s.emit(EventRouted2D, e, 0)
		return nil
	}
	s.items.Add(e)
	s.emit(EventRouted3D, e, 0)
	return nil
}

// Remove removes e from the collection its capabilities select.
func (s *Scene) Remove(e *Entity) error {
	if e == nil {
		return eris.Wrap(ErrPrecondition, "scene remove nil entity")
	}
	if e.Is2D() {
		s.registry.Remove(e)
	} else {
		s.items.Remove(e)
	}
	if e.getHost() == itemHost(s) {
		e.setHost(nil)
	}
	s.emit(EventRemoved, e, 0)
	return nil
}

func (s *Scene) promote(e *Entity) {
	s.items.Remove(e)
	if err := s.registry.Add(e); err != nil {
		s.log.Error().Err(err).Uint32("entity", e.ID).Msg("promote to 2D failed")
		return
	}
	s.log.Debug().Uint32("entity", e.ID).Str("name", e.Name).Msg("entity moved to 2D registry")
	s.emit(EventRouted2D, e, 0)
}

func (s *Scene) demote(e *Entity) {
	s.registry.Remove(e)
	s.items.Add(e)
	s.log.Debug().Uint32("entity", e.ID).Str("name", e.Name).Msg("entity moved to host collection")
	s.emit(EventRouted3D, e, 0)
}

func (s *Scene) frameChanged(e *Entity, frame int) {
	s.emit(EventFrameChanged, e, frame)
}

func (s *Scene) emit(t SceneEventType, e *Entity, frame int) {
	if s.sink == nil {
		return
	}
	s.sink.EmitSceneEvent(SceneEvent{Type: t, EntityID: e.ID, Name: e.Name, Frame: frame})
}

// Update advances the 2D camera by dt seconds.
func (s *Scene) Update(dt float64) {
	s.camera.update(dt)
}

// Render runs one frame into target: the host 3D pass, every registered
// pipeline (the 2D pass), the skybox if the host has one, the UI overlay and
// finally the render-cadence Update of every 2D entity. ctx must be a
// render-thread context; Engine.Frame provides one.
//
// Component panics during the update are isolated per entity and returned
// joined after every entity has updated.
func (s *Scene) Render(ctx context.Context, target *ebiten.Image) error {
	if s.closed.Load() {
		return eris.Wrapf(ErrPrecondition, "render closed scene %q", s.name)
	}
	start := time.Now()
	s.frame = FrameStats{}

	if err := s.host.Render3D(ctx, target); err != nil {
		return eris.Wrap(err, "host 3D render")
	}
	for _, p := range s.engine.Resources().Pipelines() {
		if err := p.Render(ctx, s, target); err != nil {
			return eris.Wrapf(err, "pipeline %q", p.Name())
		}
	}
	if s.host.HasSkyBox() {
		if err := s.host.RenderSkyBox(ctx, target); err != nil {
			return eris.Wrap(err, "skybox render")
		}
	}
	if err := s.host.RenderUI(ctx, target); err != nil {
		return eris.Wrap(err, "UI render")
	}
	s.frame.RenderTime = time.Since(start)

	updateStart := time.Now()
	err := s.registry.Update(s.engine.Delta())
	s.frame.UpdateTime = time.Since(updateStart)

	stats := s.frame
	s.last.Store(&stats)
	if s.engine.Settings().Debug {
		logFrameStats(&s.log, s.engine.Frames(), stats)
	}
	return err
}

// LastFrameStats returns the stats of the last completed Render.
func (s *Scene) LastFrameStats() FrameStats {
	if p := s.last.Load(); p != nil {
		return *p
	}
	return FrameStats{}
}

// Close stops the fixed driver, waiting for an in-flight tick. After Close
// returns no fixed tick touches the registry. Close is idempotent.
func (s *Scene) Close() error {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		s.driver.Stop()
		s.log.Info().Uint64("fixed_ticks", s.driver.Ticks()).Msg("scene closed")
	})
	return nil
}
