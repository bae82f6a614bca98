package willow2d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewTransformIdentity(t *testing.T) {
	tr := NewTransform()
	assert.Equal(t, mgl32.Vec3{}, tr.Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, tr.Scale)
	assert.True(t, tr.Rotation.ApproxEqual(mgl32.QuatIdent()))
	assert.InDelta(t, 0, tr.Rotation2D(), 1e-6)
}

func TestTransformPosition(t *testing.T) {
	tr := NewTransform()
	tr.SetPosition(1, 2, 3)
	tr.SetPosition2D(10, 20)
	assert.Equal(t, mgl32.Vec3{10, 20, 3}, tr.Position)

	tr.Translate(1, -1, 1)
	assert.Equal(t, mgl32.Vec3{11, 19, 4}, tr.Position)
}

func TestTransformRotation2DRoundtrip(t *testing.T) {
	for _, angle := range []float32{0, 0.3, math.Pi / 2, -1.2, 3} {
		tr := NewTransform()
		tr.SetRotation2D(angle)
		assert.InDelta(t, angle, tr.Rotation2D(), 1e-5, "angle %v", angle)
	}
}

func TestTransformSetRotation(t *testing.T) {
	tr := NewTransform()
	q := mgl32.QuatRotate(math.Pi/2, mgl32.Vec3{0, 0, 1})
	tr.SetRotation(q)
	assert.InDelta(t, math.Pi/2, tr.Rotation2D(), 1e-5)

	tr.SetScale(2, 3, 4)
	assert.Equal(t, mgl32.Vec3{2, 3, 4}, tr.Scale)
}
