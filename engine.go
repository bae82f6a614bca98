package willow2d

import (
	"context"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// renderThreadKey marks a context as belonging to an engine's render thread.
type renderThreadKey struct{}

// Clock supplies the seconds elapsed since the previous frame.
type Clock interface {
	Delta() float64
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() float64

// Delta implements Clock.
func (f ClockFunc) Delta() float64 { return f() }

// wallClock measures real time between calls. The first call returns 0.
type wallClock struct {
	last time.Time
}

func (c *wallClock) Delta() float64 {
	now := time.Now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := now.Sub(c.last).Seconds()
	c.last = now
	return dt
}

// WindowSizeFunc reports the current window size in pixels.
type WindowSizeFunc func() (w, h int)

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithBackend sets the GPU backend. The default is an EbitenBackend.
func WithBackend(b Backend) EngineOption {
	return func(e *Engine) { e.backend = b }
}

// WithSettings replaces DefaultSettings.
func WithSettings(s Settings) EngineOption {
	return func(e *Engine) { e.settings = s }
}

// WithLogger sets the logger for the engine and every scene created on it.
func WithLogger(l zerolog.Logger) EngineOption {
	return func(e *Engine) { e.log = l }
}

// WithWindowSize overrides the window size reported by Layout.
func WithWindowSize(fn WindowSizeFunc) EngineOption {
	return func(e *Engine) { e.windowSize = fn }
}

// WithClock sets the frame delta source. The default measures wall time.
func WithClock(c Clock) EngineOption {
	return func(e *Engine) { e.clock = c }
}

// Engine owns the render thread, GPU resources and the active scene. It
// implements ebiten.Game.
//
// The goroutine that calls Frame (or Draw) is the render thread. Every frame
// carries a render-thread context; GPU resources can only be created with
// it. Other goroutines hand work to the render thread with Post or Call.
type Engine struct {
	backend    Backend
	settings   Settings
	log        zerolog.Logger
	res        *Resources
	clock      Clock
	windowSize WindowSizeFunc
	library    *AnimationLibrary

	winW, winH atomic.Int32
	delta      atomic.Uint64 // float64 bits
	frames     atomic.Uint64
	scene      atomic.Pointer[Scene]

	queueMu sync.Mutex
	queue   []func(ctx context.Context)

	closeOnce sync.Once
}

var _ ebiten.Game = (*Engine)(nil)

// NewEngine creates an engine. Settings are validated; if
// Settings.AnimationDir is set the directory is loaded into Library.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	e := &Engine{
		settings: DefaultSettings(),
		log:      log.With().Str("module", "willow2d").Logger(),
		res:      NewResources(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.settings.Validate(); err != nil {
		return nil, err
	}
	if e.backend == nil {
		e.backend = NewEbitenBackend()
	}
	if e.clock == nil {
		e.clock = &wallClock{}
	}

	e.library = NewAnimationLibrary(e)
	if dir := e.settings.AnimationDir; dir != "" {
		if err := e.library.LoadDir(dir); err != nil {
			return nil, eris.Wrapf(err, "load animations from %q", dir)
		}
		if e.settings.WatchAnimations {
			if err := e.library.Watch(); err != nil {
				return nil, eris.Wrapf(err, "watch animations in %q", dir)
			}
		}
	}

	e.log.Debug().
		Bool("standard", e.settings.Standard).
		Int("standard_width", e.settings.StandardWidth).
		Int("standard_height", e.settings.StandardHeight).
		Int("fixed_step_ms", e.settings.FixedStepMillis).
		Msg("engine created")
	return e, nil
}

// Settings returns the engine settings.
func (e *Engine) Settings() Settings { return e.settings }

// Logger returns the engine logger.
func (e *Engine) Logger() *zerolog.Logger { return &e.log }

// Backend returns the GPU backend.
func (e *Engine) Backend() Backend { return e.backend }

// Resources returns the engine's shader and pipeline registry.
func (e *Engine) Resources() *Resources { return e.res }

// Library returns the engine's animation library.
func (e *Engine) Library() *AnimationLibrary { return e.library }

// SetScene makes s the scene drawn by Frame. The previous scene is not
// closed.
func (e *Engine) SetScene(s *Scene) { e.scene.Store(s) }

// Scene returns the active scene, or nil.
func (e *Engine) Scene() *Scene { return e.scene.Load() }

// Delta returns the delta time of the current frame in seconds.
func (e *Engine) Delta() float64 {
	return math.Float64frombits(e.delta.Load())
}

// Frames returns the number of completed frames.
func (e *Engine) Frames() uint64 { return e.frames.Load() }

// WindowSize returns the window size in pixels. Before the first Layout it
// falls back to the standard size.
func (e *Engine) WindowSize() (int, int) {
	if e.windowSize != nil {
		return e.windowSize()
	}
	w, h := int(e.winW.Load()), int(e.winH.Load())
	if w <= 0 || h <= 0 {
		return e.settings.StandardWidth, e.settings.StandardHeight
	}
	return w, h
}

// OnRenderThread reports whether ctx is a render-thread context of e.
func (e *Engine) OnRenderThread(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	owner, _ := ctx.Value(renderThreadKey{}).(*Engine)
	return owner == e
}

// NewMesh2D creates a mesh from 2-component positions, UVs and triangle
// indices. ctx must be a render-thread context of e, as passed to Post and
// Call callbacks and to pipelines; otherwise it fails with
// ErrThreadAffinity.
func (e *Engine) NewMesh2D(ctx context.Context, positions, uvs []float32, indices []uint16) (*Mesh2D, error) {
	if !e.OnRenderThread(ctx) {
		return nil, eris.Wrap(ErrThreadAffinity, "create mesh")
	}
	if err := validateMeshData(positions, uvs, indices); err != nil {
		return nil, err
	}
	buf, err := e.backend.CreateMesh(positions, uvs, indices)
	if err != nil {
		return nil, eris.Wrap(err, "create mesh buffers")
	}
	return &Mesh2D{
		engine:      e,
		buffers:     buf,
		vertexCount: len(indices),
		material:    NewMaterial2D(ColorWhite, nil),
	}, nil
}

// NewSquareMesh creates a unit square mesh with material mat.
func (e *Engine) NewSquareMesh(ctx context.Context, mat *Material2D) (*Mesh2D, error) {
	m, err := e.NewMesh2D(ctx, squareVertices, squareUVs, squareIndices)
	if err != nil {
		return nil, err
	}
	if mat != nil {
		m.material = mat
	}
	return m, nil
}

// Post queues fn to run on the render thread at the start of the next frame.
func (e *Engine) Post(fn func(ctx context.Context)) {
	if fn == nil {
		return
	}
	e.queueMu.Lock()
	e.queue = append(e.queue, fn)
	e.queueMu.Unlock()
}

// Call runs fn on the render thread and returns its error. From the render
// thread (ctx is a render-thread context) fn runs inline; otherwise Call
// blocks until the next frame runs fn or ctx is done.
func (e *Engine) Call(ctx context.Context, fn func(ctx context.Context) error) error {
	if e.OnRenderThread(ctx) {
		return fn(ctx)
	}
	done := make(chan error, 1)
	e.Post(func(rctx context.Context) {
		done <- fn(rctx)
	})
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "call on render thread")
	}
}

func (e *Engine) renderContext() context.Context {
	return context.WithValue(context.Background(), renderThreadKey{}, e)
}

func (e *Engine) drain(ctx context.Context) {
	e.queueMu.Lock()
	q := e.queue
	e.queue = nil
	e.queueMu.Unlock()
	for _, fn := range q {
		fn(ctx)
	}
}

// Frame runs one render-thread frame into target: queued work, then the
// active scene's render pass.
func (e *Engine) Frame(target *ebiten.Image) error {
	ctx := e.renderContext()
	e.drain(ctx)

	dt := e.clock.Delta()
	e.delta.Store(math.Float64bits(dt))
	defer e.frames.Add(1)

	s := e.Scene()
	if s == nil {
		return nil
	}
	return s.Render(ctx, target)
}

// Update implements ebiten.Game. It advances the active scene's camera at
// the tick rate.
func (e *Engine) Update() error {
	if s := e.Scene(); s != nil {
		s.Update(1.0 / float64(ebiten.TPS()))
	}
	return nil
}

// Draw implements ebiten.Game.
func (e *Engine) Draw(screen *ebiten.Image) {
	if err := e.Frame(screen); err != nil {
		e.log.Error().Err(err).Uint64("frame", e.Frames()).Msg("frame failed")
	}
}

// Layout implements ebiten.Game. With standard scaling the screen is the
// fixed virtual size and Ebitengine stretches it to the window.
func (e *Engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	e.winW.Store(int32(outsideWidth))
	e.winH.Store(int32(outsideHeight))
	if e.settings.Standard {
		return e.settings.StandardWidth, e.settings.StandardHeight
	}
	return outsideWidth, outsideHeight
}

// Close closes the active scene, stops the animation watcher and releases
// every shader. Queued render work still pending is dropped.
func (e *Engine) Close() error {
	var err error
	e.closeOnce.Do(func() {
		if s := e.Scene(); s != nil {
			err = s.Close()
		}
		if cerr := e.library.Close(); cerr != nil && err == nil {
			err = cerr
		}
		e.res.Release()
		e.queueMu.Lock()
		e.queue = nil
		e.queueMu.Unlock()
	})
	return err
}
