package willow2d

import "github.com/rotisserie/eris"

// DefaultFrameDuration is the display time of one frame, in seconds, for
// animations that never call SetFrameDuration.
const DefaultFrameDuration = 0.5

// SpriteAnimation is a named, ordered sequence of sprite-sheet frame
// identifiers with a per-frame display duration. It owns a cursor into the
// sequence and, once bound, writes the frame under the cursor to its entity
// each time the cursor moves.
//
// A SpriteAnimation is not safe for concurrent use; its SpriteAnimator
// serializes access.
type SpriteAnimation struct {
	name          string
	frames        []int
	frameDuration float64
	cursor        int
	elapsed       float64
	entity        *Entity
}

// NewSpriteAnimation creates an animation over the given frame identifiers.
// frames may be empty; an empty animation never writes a frame.
func NewSpriteAnimation(name string, frames ...int) *SpriteAnimation {
	f := make([]int, len(frames))
	copy(f, frames)
	return &SpriteAnimation{
		name:          name,
		frames:        f,
		frameDuration: DefaultFrameDuration,
	}
}

// Name returns the animation's name.
func (a *SpriteAnimation) Name() string { return a.name }

// Frames returns a copy of the frame identifiers.
func (a *SpriteAnimation) Frames() []int {
	out := make([]int, len(a.frames))
	copy(out, a.frames)
	return out
}

// Len returns the number of frames.
func (a *SpriteAnimation) Len() int { return len(a.frames) }

// AddFrame appends a frame identifier.
func (a *SpriteAnimation) AddFrame(id int) {
	a.frames = append(a.frames, id)
}

// SetFrameDuration sets how long each frame is shown, in seconds.
func (a *SpriteAnimation) SetFrameDuration(d float64) error {
	if !(d > 0) {
		return eris.Wrapf(ErrPrecondition, "animation %q: frame duration must be positive, got %v", a.name, d)
	}
	a.frameDuration = d
	return nil
}

// FrameDuration returns the per-frame display time in seconds.
func (a *SpriteAnimation) FrameDuration() float64 { return a.frameDuration }

// Cursor returns the index of the current frame.
func (a *SpriteAnimation) Cursor() int { return a.cursor }

// Elapsed returns the seconds accumulated since the last frame advance.
func (a *SpriteAnimation) Elapsed() float64 { return a.elapsed }

// CurrentFrame returns the frame identifier under the cursor. ok is false for
// an empty animation.
func (a *SpriteAnimation) CurrentFrame() (id int, ok bool) {
	if len(a.frames) == 0 {
		return 0, false
	}
	return a.frames[a.cursor], true
}

// Bind sets the entity whose displayed frame this animation writes. Pass nil
// to unbind.
func (a *SpriteAnimation) Bind(e *Entity) { a.entity = e }

// Entity returns the bound entity, or nil.
func (a *SpriteAnimation) Entity() *Entity { return a.entity }

// Reset rewinds the cursor and the elapsed time. The bound entity keeps its
// current frame until the next advance crosses the frame duration.
func (a *SpriteAnimation) Reset() {
	a.cursor = 0
	a.elapsed = 0
}

// Advance accumulates dt seconds. When a full frame duration has been
// reached, elapsed restarts at zero, the cursor moves one step (wrapping to
// the first frame) and the new frame is written to the bound entity. At most
// one step is taken per call.
func (a *SpriteAnimation) Advance(dt float64) {
	n := len(a.frames)
	if n == 0 {
		return
	}

	a.elapsed += dt
	if a.elapsed < a.frameDuration {
		return
	}
	a.elapsed = 0
	a.cursor = (a.cursor + 1) % n
	if a.entity != nil {
		a.entity.SetFrame(a.frames[a.cursor])
	}
}
