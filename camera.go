package willow2d

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera2D is the 2D pass's camera. Its position is added to every 2D
// entity's position when drawn (a world-space offset, not a view matrix),
// and Z is the depth 2D meshes are drawn at.
type Camera2D struct {
	mu sync.Mutex

	x, y, z float32

	followTarget  *Entity
	followOffsetX float32
	followOffsetY float32
	followLerp    float32

	scrollTween *scrollAnim
}

// NewCamera2D creates a camera at the origin.
func NewCamera2D() *Camera2D {
	return &Camera2D{}
}

// Position returns the camera position.
func (c *Camera2D) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return mgl32.Vec3{c.x, c.y, c.z}
}

// SetPosition sets X and Y, keeping Z.
func (c *Camera2D) SetPosition(x, y float32) {
	c.mu.Lock()
	c.x, c.y = x, y
	c.mu.Unlock()
}

// SetZ sets the depth 2D meshes are drawn at.
func (c *Camera2D) SetZ(z float32) {
	c.mu.Lock()
	c.z = z
	c.mu.Unlock()
}

// MovePosition offsets X and Y.
func (c *Camera2D) MovePosition(dx, dy float32) {
	c.mu.Lock()
	c.x += dx
	c.y += dy
	c.mu.Unlock()
}

// Follow makes the camera track e with the given offset and lerp factor.
// A lerp of 1.0 snaps immediately; lower values give smoother following.
func (c *Camera2D) Follow(e *Entity, offsetX, offsetY, lerp float32) {
	c.mu.Lock()
	c.followTarget = e
	c.followOffsetX = offsetX
	c.followOffsetY = offsetY
	c.followLerp = lerp
	c.mu.Unlock()
}

// Unfollow stops tracking the current target.
func (c *Camera2D) Unfollow() {
	c.mu.Lock()
	c.followTarget = nil
	c.mu.Unlock()
}

// ScrollTo animates the camera to (x, y) over duration seconds.
func (c *Camera2D) ScrollTo(x, y float32, duration float32, easeFn ease.TweenFunc) {
	c.mu.Lock()
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(c.x, x, duration, easeFn),
		tweenY: gween.New(c.y, y, duration, easeFn),
	}
	c.mu.Unlock()
}

// Scrolling reports whether a ScrollTo is in progress.
func (c *Camera2D) Scrolling() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrollTween != nil
}

// update advances follow and scroll. Called from Scene.Update.
func (c *Camera2D) update(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Follow target. The camera offsets entities, so it moves opposite to
	// the target to keep it in place on screen.
	if c.followTarget != nil {
		p := c.followTarget.Transform.Position
		targetX := -p[0] + c.followOffsetX
		targetY := -p[1] + c.followOffsetY
		c.x += (targetX - c.x) * c.followLerp
		c.y += (targetY - c.y) * c.followLerp
	}

	// Scroll animation
	if c.scrollTween != nil {
		if !c.scrollTween.doneX {
			c.x, c.scrollTween.doneX = c.scrollTween.tweenX.Update(float32(dt))
		}
		if !c.scrollTween.doneY {
			c.y, c.scrollTween.doneY = c.scrollTween.tweenY.Update(float32(dt))
		}
		if c.scrollTween.doneX && c.scrollTween.doneY {
			c.scrollTween = nil
		}
	}
}
