package willow2d

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 4 values simultaneously and writes them to a
// target on every Update. Create one via the constructors (TweenPosition,
// TweenScale, TweenRotation, TweenColor) and either call Update(dt) each
// frame or hand it to a Tweener component.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	apply  func(vals [4]float32)
	Done   bool
}

// Update advances all tweens by dt seconds and writes the values.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	var vals [4]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = val
		if !finished {
			allDone = false
		}
	}
	g.apply(vals)
	g.Done = allDone
}

// TweenPosition animates the entity's X and Y position.
func TweenPosition(e *Entity, toX, toY float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	p := e.Transform.Position
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(p[0], toX, duration, fn)
	g.tweens[1] = gween.New(p[1], toY, duration, fn)
	g.apply = func(v [4]float32) { e.Transform.SetPosition2D(v[0], v[1]) }
	return g
}

// TweenScale animates the entity's X and Y scale.
func TweenScale(e *Entity, toSX, toSY float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	s := e.Transform.Scale
	g := &TweenGroup{count: 2}
	g.tweens[0] = gween.New(s[0], toSX, duration, fn)
	g.tweens[1] = gween.New(s[1], toSY, duration, fn)
	g.apply = func(v [4]float32) {
		e.Transform.Scale = mgl32.Vec3{v[0], v[1], e.Transform.Scale[2]}
	}
	return g
}

// TweenRotation animates the entity's planar rotation, in radians.
func TweenRotation(e *Entity, to float32, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 1}
	g.tweens[0] = gween.New(e.Transform.Rotation2D(), to, duration, fn)
	g.apply = func(v [4]float32) { e.Transform.SetRotation2D(v[0]) }
	return g
}

// TweenColor animates all four components of the material color.
func TweenColor(m *Material2D, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	from := m.Color()
	g := &TweenGroup{count: 4}
	g.tweens[0] = gween.New(float32(from.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(from.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(from.B), float32(to.B), duration, fn)
	g.tweens[3] = gween.New(float32(from.A), float32(to.A), duration, fn)
	g.apply = func(v [4]float32) {
		m.SetColor(Color{R: float64(v[0]), G: float64(v[1]), B: float64(v[2]), A: float64(v[3])})
	}
	return g
}

// Tweener is a component that runs tween groups on the render cadence and
// drops them once done.
type Tweener struct {
	BaseComponent

	mu     sync.Mutex
	groups []*TweenGroup
}

var _ Component = (*Tweener)(nil)

// NewTweener creates an empty Tweener.
func NewTweener() *Tweener {
	return &Tweener{}
}

// Add schedules g.
func (t *Tweener) Add(g *TweenGroup) {
	if g == nil {
		return
	}
	t.mu.Lock()
	t.groups = append(t.groups, g)
	t.mu.Unlock()
}

// Len returns the number of running groups.
func (t *Tweener) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.groups)
}

// Update advances every group and drops finished ones.
func (t *Tweener) Update(dt float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	live := t.groups[:0]
	for _, g := range t.groups {
		g.Update(float32(dt))
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(t.groups); i++ {
		t.groups[i] = nil
	}
	t.groups = live
}

// Cleanup drops every group.
func (t *Tweener) Cleanup() {
	t.mu.Lock()
	t.groups = nil
	t.mu.Unlock()
}
