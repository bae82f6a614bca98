package willow2d

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication happens in the shader.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default material color (no tint).
var ColorWhite = Color{1, 1, 1, 1}

// RGBA8 builds a Color from 8-bit channels and a [0, 1] alpha, the way
// colors are usually written down in level data.
func RGBA8(r, g, b uint8, a float64) Color {
	return Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255, A: a}
}

// Vec4 returns the color as a float32 vector for shader uniforms.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// BlendMode selects how a material composites onto the target.
type BlendMode uint8

const (
	BlendNormal   BlendMode = iota // source-over
	BlendAdd                       // additive
	BlendMultiply                  // source * destination; only darkens
	BlendScreen                    // 1 - (1-src)*(1-dst); only brightens
	BlendErase                     // destination-out
	BlendNone                      // opaque copy
)

// EbitenBlend returns the ebiten.Blend for the mode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendMultiply:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorDestinationColor,
			BlendFactorSourceAlpha:      ebiten.BlendFactorDestinationAlpha,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceAlpha,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	case BlendErase:
		return ebiten.BlendDestinationOut
	case BlendNone:
		return ebiten.BlendCopy
	default:
		return ebiten.BlendSourceOver
	}
}

// SceneEventType identifies a kind of scene event.
type SceneEventType uint8

const (
	EventRouted2D     SceneEventType = iota // entity entered the 2D registry
	EventRouted3D                           // entity entered the host 3D collection
	EventRemoved                            // entity left the scene
	EventFrameChanged                       // an animation wrote a new frame identifier
)

// String returns a lower-case name for the event type, used in log fields.
func (t SceneEventType) String() string {
	switch t {
	case EventRouted2D:
		return "routed_2d"
	case EventRouted3D:
		return "routed_3d"
	case EventRemoved:
		return "removed"
	case EventFrameChanged:
		return "frame_changed"
	default:
		return "unknown"
	}
}

// SceneEvent carries routing and animation changes to an EventSink.
type SceneEvent struct {
	Type     SceneEventType
	EntityID uint32
	Name     string
	// Frame is the new frame identifier (valid for EventFrameChanged).
	Frame int
}

// EventSink is the interface for optional ECS integration.
// When set on a Scene, routing and animation events are forwarded to it.
type EventSink interface {
	EmitSceneEvent(event SceneEvent)
}
