package willow2d

import "sync"

// Material2D is the color and optional texture of a 2D mesh. The texture is
// shared, not owned.
type Material2D struct {
	mu      sync.RWMutex
	color   Color
	texture *Texture
	blend   BlendMode
}

// NewMaterial2D creates a material. tex may be nil.
func NewMaterial2D(c Color, tex *Texture) *Material2D {
	return &Material2D{color: c, texture: tex}
}

// Color returns the material color.
func (m *Material2D) Color() Color {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.color
}

// SetColor sets the material color.
func (m *Material2D) SetColor(c Color) {
	m.mu.Lock()
	m.color = c
	m.mu.Unlock()
}

// Texture returns the texture, if any.
func (m *Material2D) Texture() (*Texture, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.texture, m.texture != nil
}

// SetTexture sets or, with nil, clears the texture.
func (m *Material2D) SetTexture(tex *Texture) {
	m.mu.Lock()
	m.texture = tex
	m.mu.Unlock()
}

// Blend returns the blend mode.
func (m *Material2D) Blend() BlendMode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.blend
}

// SetBlend sets the blend mode.
func (m *Material2D) SetBlend(b BlendMode) {
	m.mu.Lock()
	m.blend = b
	m.mu.Unlock()
}
