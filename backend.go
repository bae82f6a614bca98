package willow2d

import "github.com/hajimehoshi/ebiten/v2"

// Uniform names written by the 2D pipeline. Backends map them onto their own
// shader variables.
const (
	UniformModel           = "model"
	UniformOrtho           = "ortho"
	UniformTextureOffset   = "textureOffset"
	UniformColumnsRows     = "columnsRows"
	UniformIsSpriteSheet   = "isSpriteSheet"
	UniformMaterialTexture = "material.texture"
	UniformMaterialColor   = "material.color"
	UniformMaterialBlend   = "material.blend"
)

// Backend is the GPU layer the 2D renderer draws through. Implementations
// are only called from the render thread.
type Backend interface {
	// CreateMesh uploads 2-component positions, 2-component UVs and triangle
	// indices.
	CreateMesh(positions, uvs []float32, indices []uint16) (MeshBuffers, error)
	// CompileShader compiles the named shader program from source.
	CompileShader(name string, src []byte) (ShaderProgram, error)
}

// MeshBuffers are the backend handles of one mesh.
type MeshBuffers interface {
	Release()
}

// ShaderProgram is a compiled shader program.
//
// Uniform values are float32, int, mgl32.Vec2, mgl32.Vec4, mgl32.Mat4 or
// BlendMode.
// Uniforms persist across draws until overwritten or until Unbind.
type ShaderProgram interface {
	Bind(target *ebiten.Image)
	Unbind()
	SetUniform(name string, value any)
	// DrawMesh draws buf with the bound uniforms. tex may be nil.
	DrawMesh(buf MeshBuffers, tex *ebiten.Image) error
	Release()
}
