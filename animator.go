package willow2d

import (
	"sort"
	"sync"

	"github.com/rotisserie/eris"
)

// SpriteAnimator is a component that owns named sprite animations and
// advances the current one on every Update.
//
// Selecting an animation always rewinds it. With no current animation the
// animator is idle but keeps its stored animations.
type SpriteAnimator struct {
	BaseComponent

	mu         sync.Mutex
	animations map[string]*SpriteAnimation
	current    *SpriteAnimation
}

var (
	_ Component  = (*SpriteAnimator)(nil)
	_ Capability = (*SpriteAnimator)(nil)
)

// NewSpriteAnimator creates an animator with no animations.
func NewSpriteAnimator() *SpriteAnimator {
	return &SpriteAnimator{animations: make(map[string]*SpriteAnimation)}
}

// CapabilityKind implements Capability.
func (s *SpriteAnimator) CapabilityKind() string { return KindSpriteAnimator }

// Start binds every stored animation to e.
func (s *SpriteAnimator) Start(e *Entity) {
	s.mu.Lock()
	s.BaseComponent.Start(e)
	for _, a := range s.animations {
		a.Bind(e)
	}
	s.mu.Unlock()
}

// Update advances the current animation.
func (s *SpriteAnimator) Update(dt float64) {
	s.Tick(dt)
}

// OnRemove unbinds every stored animation.
func (s *SpriteAnimator) OnRemove() {
	s.mu.Lock()
	for _, a := range s.animations {
		a.Bind(nil)
	}
	s.BaseComponent.OnRemove()
	s.mu.Unlock()
}

// AddAnimation stores a under its name, replacing any animation with the same
// name. If the animator is attached, a is bound to the entity right away.
// Replacing the current animation makes the new one current.
func (s *SpriteAnimator) AddAnimation(a *SpriteAnimation) error {
	if a == nil {
		return eris.Wrap(ErrPrecondition, "add nil animation")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.animations[a.name]; ok && prev == s.current {
		s.current = a
	}
	s.animations[a.name] = a
	if e := s.Entity(); e != nil {
		a.Bind(e)
	}
	return nil
}

// SetCurrentAnimation selects the named animation and rewinds it.
func (s *SpriteAnimator) SetCurrentAnimation(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.animations[name]
	if !ok {
		return eris.Wrapf(ErrUnknownAnimation, "set current animation %q", name)
	}
	s.current = a
	a.Reset()
	return nil
}

// ClearCurrentAnimation deselects the current animation. Ticks become no-ops.
func (s *SpriteAnimator) ClearCurrentAnimation() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// CurrentAnimation returns the current animation, or nil.
func (s *SpriteAnimator) CurrentAnimation() *SpriteAnimation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Animation returns the named animation.
func (s *SpriteAnimator) Animation(name string) (*SpriteAnimation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.animations[name]
	if !ok {
		return nil, eris.Wrapf(ErrUnknownAnimation, "get animation %q", name)
	}
	return a, nil
}

// AnimationNames returns the stored animation names in sorted order.
func (s *SpriteAnimator) AnimationNames() []string {
	s.mu.Lock()
	names := make([]string, 0, len(s.animations))
	for name := range s.animations {
		names = append(names, name)
	}
	s.mu.Unlock()
	sort.Strings(names)
	return names
}

// Tick advances the current animation by dt seconds.
func (s *SpriteAnimator) Tick(dt float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return
	}
	s.current.Advance(dt)
}
