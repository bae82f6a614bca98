package willow2d

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAnimated(t *testing.T, anims ...*SpriteAnimation) (*Entity, *SpriteAnimator) {
	t.Helper()
	e := NewEntity("animated")
	s := NewSpriteAnimator()
	for _, a := range anims {
		require.NoError(t, s.AddAnimation(a))
	}
	require.NoError(t, e.AddComponent(s))
	return e, s
}

func TestSpriteAnimator_SwitchResetsProgress(t *testing.T) {
	a := NewSpriteAnimation("A", 0, 1)
	b := NewSpriteAnimation("B", 2, 3)
	require.NoError(t, a.SetFrameDuration(1.0))
	require.NoError(t, b.SetFrameDuration(1.0))
	e, s := newAnimated(t, a, b)
	e.SetFrame(-1)

	require.NoError(t, s.SetCurrentAnimation("A"))
	s.Tick(0.9)
	require.Equal(t, -1, e.Frame())

	require.NoError(t, s.SetCurrentAnimation("B"))
	s.Tick(0.1)

	assert.Equal(t, -1, e.Frame())
	assert.Equal(t, 0, b.Cursor())
	assert.InDelta(t, 0.1, b.Elapsed(), 1e-9)
}

func TestSpriteAnimator_SelectingCurrentAgainRewinds(t *testing.T) {
	a := NewSpriteAnimation("A", 0, 1, 2)
	_, s := newAnimated(t, a)
	require.NoError(t, s.SetCurrentAnimation("A"))
	s.Tick(0.5)
	s.Tick(0.2)
	require.Equal(t, 1, a.Cursor())

	require.NoError(t, s.SetCurrentAnimation("A"))
	assert.Equal(t, 0, a.Cursor())
	assert.Zero(t, a.Elapsed())
}

func TestSpriteAnimator_UnknownAnimation(t *testing.T) {
	a := NewSpriteAnimation("A", 0)
	_, s := newAnimated(t, a)
	require.NoError(t, s.SetCurrentAnimation("A"))

	err := s.SetCurrentAnimation("missing")
	assert.ErrorIs(t, eris.Cause(err), ErrUnknownAnimation)
	assert.Same(t, a, s.CurrentAnimation())

	got, err := s.Animation("missing")
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrUnknownAnimation)
	assert.Same(t, a, s.CurrentAnimation())
}

func TestSpriteAnimator_StartBindsStoredAnimations(t *testing.T) {
	a := NewSpriteAnimation("A", 0)
	b := NewSpriteAnimation("B", 1)
	e, _ := newAnimated(t, a, b)

	assert.Same(t, e, a.Entity())
	assert.Same(t, e, b.Entity())
}

func TestSpriteAnimator_AddAfterAttachBindsImmediately(t *testing.T) {
	e, s := newAnimated(t)
	late := NewSpriteAnimation("late", 4)
	require.NoError(t, s.AddAnimation(late))
	assert.Same(t, e, late.Entity())
}

func TestSpriteAnimator_AddBeforeAttachLeavesUnbound(t *testing.T) {
	s := NewSpriteAnimator()
	a := NewSpriteAnimation("A", 1)
	require.NoError(t, s.AddAnimation(a))
	assert.Nil(t, a.Entity())
}

func TestSpriteAnimator_AddOverwritesSameName(t *testing.T) {
	first := NewSpriteAnimation("walk", 0, 1)
	_, s := newAnimated(t, first)
	require.NoError(t, s.SetCurrentAnimation("walk"))

	second := NewSpriteAnimation("walk", 5, 6)
	require.NoError(t, s.AddAnimation(second))

	got, err := s.Animation("walk")
	require.NoError(t, err)
	assert.Same(t, second, got)
	assert.Same(t, second, s.CurrentAnimation())
	assert.Equal(t, []string{"walk"}, s.AnimationNames())
}

func TestSpriteAnimator_AddNil(t *testing.T) {
	s := NewSpriteAnimator()
	assert.ErrorIs(t, s.AddAnimation(nil), ErrPrecondition)
}

func TestSpriteAnimator_ClearCurrentSuspends(t *testing.T) {
	a := NewSpriteAnimation("A", 0, 1)
	e, s := newAnimated(t, a)
	e.SetFrame(-1)
	require.NoError(t, s.SetCurrentAnimation("A"))
	s.ClearCurrentAnimation()

	s.Tick(10)
	assert.Equal(t, -1, e.Frame())
	assert.Nil(t, s.CurrentAnimation())

	got, err := s.Animation("A")
	require.NoError(t, err)
	assert.Same(t, a, got)
}

func TestSpriteAnimator_TickWithoutCurrentIsNoop(t *testing.T) {
	_, s := newAnimated(t, NewSpriteAnimation("A", 0, 1))
	assert.NotPanics(t, func() { s.Tick(1) })
}

func TestSpriteAnimator_UpdateAdvances(t *testing.T) {
	a := NewSpriteAnimation("A", 3, 7)
	e, s := newAnimated(t, a)
	require.NoError(t, s.SetCurrentAnimation("A"))

	for _, c := range e.Components() {
		c.Update(0.5)
	}
	assert.Equal(t, 7, e.Frame())
}

func TestSpriteAnimator_AnimationNamesSorted(t *testing.T) {
	_, s := newAnimated(t,
		NewSpriteAnimation("walk"),
		NewSpriteAnimation("idle"),
		NewSpriteAnimation("jump"),
	)
	assert.Equal(t, []string{"idle", "jump", "walk"}, s.AnimationNames())
}

func TestSpriteAnimator_OneAnimatorPerEntity(t *testing.T) {
	e, _ := newAnimated(t)
	err := e.AddComponent(NewSpriteAnimator())
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestSpriteAnimator_RemoveUnbinds(t *testing.T) {
	a := NewSpriteAnimation("A", 0, 1)
	e, s := newAnimated(t, a)
	require.True(t, e.RemoveComponent(s))

	assert.Nil(t, a.Entity())
	assert.Nil(t, s.Entity())
}
