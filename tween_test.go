package willow2d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanema/gween/ease"
)

func TestTweenPosition(t *testing.T) {
	e := NewEntity("e")
	e.Transform.SetPosition(0, 0, 5)
	g := TweenPosition(e, 100, 200, 1.0, ease.Linear)

	g.Update(0.5)
	assert.InDelta(t, 50, e.Transform.Position[0], 1)
	assert.InDelta(t, 100, e.Transform.Position[1], 1)
	assert.False(t, g.Done)

	g.Update(0.5)
	assert.InDelta(t, 100, e.Transform.Position[0], 1e-3)
	assert.InDelta(t, 200, e.Transform.Position[1], 1e-3)
	assert.Equal(t, float32(5), e.Transform.Position[2])
	assert.True(t, g.Done)
}

func TestTweenScale(t *testing.T) {
	e := NewEntity("e")
	g := TweenScale(e, 200, 100, 0.5, ease.Linear)
	g.Update(1)
	assert.InDelta(t, 200, e.Transform.Scale[0], 1e-3)
	assert.InDelta(t, 100, e.Transform.Scale[1], 1e-3)
	assert.Equal(t, float32(1), e.Transform.Scale[2])
	assert.True(t, g.Done)
}

func TestTweenRotation(t *testing.T) {
	e := NewEntity("e")
	g := TweenRotation(e, math.Pi/2, 1, ease.Linear)
	g.Update(1)
	assert.InDelta(t, math.Pi/2, e.Transform.Rotation2D(), 1e-4)
}

func TestTweenColor(t *testing.T) {
	m := NewMaterial2D(ColorWhite, nil)
	g := TweenColor(m, Color{R: 0, G: 0.5, B: 1, A: 0}, 1, ease.Linear)
	g.Update(1)

	c := m.Color()
	assert.InDelta(t, 0, c.R, 1e-3)
	assert.InDelta(t, 0.5, c.G, 1e-3)
	assert.InDelta(t, 1, c.B, 1e-3)
	assert.InDelta(t, 0, c.A, 1e-3)
}

func TestTweenGroupDoneIgnoresUpdates(t *testing.T) {
	e := NewEntity("e")
	g := TweenPosition(e, 10, 10, 0.1, ease.Linear)
	g.Update(1)
	require.True(t, g.Done)

	e.Transform.SetPosition2D(-1, -1)
	g.Update(1)
	assert.Equal(t, float32(-1), e.Transform.Position[0])
}

func TestTweenerDropsFinishedGroups(t *testing.T) {
	e := NewEntity("e")
	tw := NewTweener()
	require.NoError(t, e.AddComponent(tw))

	tw.Add(TweenPosition(e, 10, 0, 0.5, ease.Linear))
	tw.Add(TweenScale(e, 2, 2, 2, ease.Linear))
	tw.Add(nil)
	assert.Equal(t, 2, tw.Len())

	tw.Update(1)
	assert.Equal(t, 1, tw.Len())
	assert.InDelta(t, 10, e.Transform.Position[0], 1e-3)

	tw.Cleanup()
	assert.Zero(t, tw.Len())
}
