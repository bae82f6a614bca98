package willow2d

import "errors"

// Sentinel errors. Public APIs return them wrapped with eris so the stack
// of the failing call is kept; test with errors.Is or eris.Cause.
var (
	// ErrInvalidCapability is returned when an entity lacks the capability a
	// capability-specific API requires, e.g. adding a non-2D entity to a Registry.
	ErrInvalidCapability = errors.New("willow2d: entity lacks required capability")

	// ErrUnknownAnimation is returned when an animation name is not registered
	// on a SpriteAnimator.
	ErrUnknownAnimation = errors.New("willow2d: unknown animation")

	// ErrThreadAffinity is returned when GPU resources are constructed outside
	// the engine's render thread.
	ErrThreadAffinity = errors.New("willow2d: not on the render thread")

	// ErrUnsupportedOperation is returned when a host-only (3D) rendering entry
	// point is called on a 2D mesh.
	ErrUnsupportedOperation = errors.New("willow2d: unsupported operation")

	// ErrPrecondition is returned for nil or otherwise invalid arguments.
	ErrPrecondition = errors.New("willow2d: precondition violated")
)
