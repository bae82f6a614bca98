package willow2d

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// zAxis is the rotation axis for planar rotations.
var zAxis = mgl32.Vec3{0, 0, 1}

// Transform holds an entity's local position, rotation, and scale.
//
// 2D entities ignore the Z component of Position and Scale when rendered:
// Z translation comes from the 2D camera and Z scale is pinned to 1. The full
// quaternion is kept so host code can share one transform type with 3D items.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
}

// NewTransform returns the identity transform (origin, no rotation, unit scale).
func NewTransform() Transform {
	return Transform{
		Rotation: mgl32.QuatIdent(),
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// SetPosition sets the position.
func (t *Transform) SetPosition(x, y, z float32) {
	t.Position = mgl32.Vec3{x, y, z}
}

// SetPosition2D sets X and Y, keeping Z.
func (t *Transform) SetPosition2D(x, y float32) {
	t.Position[0] = x
	t.Position[1] = y
}

// Translate offsets the position.
func (t *Transform) Translate(dx, dy, dz float32) {
	t.Position = t.Position.Add(mgl32.Vec3{dx, dy, dz})
}

// SetScale sets the scale.
func (t *Transform) SetScale(x, y, z float32) {
	t.Scale = mgl32.Vec3{x, y, z}
}

// SetRotation sets the rotation quaternion.
func (t *Transform) SetRotation(q mgl32.Quat) {
	t.Rotation = q
}

// SetRotation2D sets a planar rotation (radians, clockwise on screen since Y
// points down) about the Z axis.
func (t *Transform) SetRotation2D(radians float32) {
	t.Rotation = mgl32.QuatRotate(radians, zAxis)
}

// Rotation2D returns the planar rotation angle about Z, in radians.
func (t *Transform) Rotation2D() float32 {
	q := t.Rotation.Normalize()
	// Angle of the rotated X axis.
	x := q.Rotate(mgl32.Vec3{1, 0, 0})
	return float32(math.Atan2(float64(x[1]), float64(x[0])))
}
