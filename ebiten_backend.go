package willow2d

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
)

// EbitenBackend implements Backend on Ebitengine. Meshes keep their vertex
// data on the CPU; each draw applies the model and projection matrices and
// submits one DrawTrianglesShader32 call with the Kage 2D shader.
type EbitenBackend struct {
	whiteOnce sync.Once
	white     *ebiten.Image
}

var _ Backend = (*EbitenBackend)(nil)

// NewEbitenBackend creates a backend.
func NewEbitenBackend() *EbitenBackend {
	return &EbitenBackend{}
}

// whiteImage is the source image for untextured draws. The 1x1 center of a
// 3x3 white image avoids edge bleeding.
func (b *EbitenBackend) whiteImage() *ebiten.Image {
	b.whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		b.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return b.white
}

// CreateMesh implements Backend.
func (b *EbitenBackend) CreateMesh(positions, uvs []float32, indices []uint16) (MeshBuffers, error) {
	if err := validateMeshData(positions, uvs, indices); err != nil {
		return nil, err
	}
	m := &ebitenMesh{
		positions: append([]float32(nil), positions...),
		uvs:       append([]float32(nil), uvs...),
		indices:   make([]uint32, len(indices)),
	}
	for i, idx := range indices {
		m.indices[i] = uint32(idx)
	}
	return m, nil
}

// CompileShader implements Backend.
func (b *EbitenBackend) CompileShader(name string, src []byte) (ShaderProgram, error) {
	sh, err := ebiten.NewShader(src)
	if err != nil {
		return nil, eris.Wrapf(err, "ebiten: compile shader %q", name)
	}
	return &ebitenProgram{
		backend:  b,
		name:     name,
		shader:   sh,
		uniforms: make(map[string]any, 8),
		kage:     make(map[string]any, 5),
	}, nil
}

type ebitenMesh struct {
	positions []float32
	uvs       []float32
	indices   []uint32
	released  atomic.Bool
}

func (m *ebitenMesh) Release() {
	if m.released.Swap(true) {
		return
	}
	m.positions, m.uvs, m.indices = nil, nil, nil
}

type ebitenProgram struct {
	backend  *EbitenBackend
	name     string
	shader   *ebiten.Shader
	target   *ebiten.Image
	uniforms map[string]any

	kage     map[string]any
	vertices []ebiten.Vertex
	op       ebiten.DrawTrianglesShaderOptions
}

func (p *ebitenProgram) Bind(target *ebiten.Image) {
	p.target = target
}

func (p *ebitenProgram) Unbind() {
	p.target = nil
	clear(p.uniforms)
}

func (p *ebitenProgram) SetUniform(name string, value any) {
	p.uniforms[name] = value
}

func (p *ebitenProgram) DrawMesh(buf MeshBuffers, tex *ebiten.Image) error {
	if p.target == nil {
		return eris.Wrapf(ErrPrecondition, "shader %q: draw without bound target", p.name)
	}
	m, ok := buf.(*ebitenMesh)
	if !ok || m == nil {
		return eris.Wrapf(ErrPrecondition, "shader %q: foreign mesh buffers %T", p.name, buf)
	}
	if m.released.Load() {
		return eris.Wrapf(ErrPrecondition, "shader %q: draw released mesh", p.name)
	}

	mvp := p.mat4(UniformOrtho).Mul4(p.mat4(UniformModel))
	tb := p.target.Bounds()
	tw, th := float32(tb.Dx()), float32(tb.Dy())

	src := tex
	hasTexture := 1
	if src == nil {
		src = p.backend.whiteImage()
		hasTexture = 0
	}
	sb := src.Bounds()
	ox, oy := float32(sb.Min.X), float32(sb.Min.Y)
	sw, sh := float32(sb.Dx()), float32(sb.Dy())

	n := len(m.positions) / 2
	if cap(p.vertices) < n {
		p.vertices = make([]ebiten.Vertex, n)
	}
	p.vertices = p.vertices[:n]
	for i := 0; i < n; i++ {
		v := mvp.Mul4x1(mgl32.Vec4{m.positions[2*i], m.positions[2*i+1], 0, 1})
		x, y := v[0], v[1]
		if v[3] != 0 && v[3] != 1 {
			x, y = x/v[3], y/v[3]
		}
		p.vertices[i] = ebiten.Vertex{
			DstX:   (x + 1) / 2 * tw,
			DstY:   (1 - y) / 2 * th,
			SrcX:   ox,
			SrcY:   oy,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
		if hasTexture == 1 {
			p.vertices[i].SrcX = ox + m.uvs[2*i]*sw
			p.vertices[i].SrcY = oy + m.uvs[2*i+1]*sh
		}
	}

	offset := p.vec2(UniformTextureOffset, mgl32.Vec2{0, 0})
	grid := p.vec2(UniformColumnsRows, mgl32.Vec2{1, 1})
	if grid[0] == 0 || grid[1] == 0 {
		grid = mgl32.Vec2{1, 1}
	}
	col := p.vec4(UniformMaterialColor, mgl32.Vec4{1, 1, 1, 1})
	p.kage["TextureOffset"] = []float32{offset[0], offset[1]}
	p.kage["ColumnsRows"] = []float32{grid[0], grid[1]}
	p.kage["IsSpriteSheet"] = p.intUniform(UniformIsSpriteSheet)
	p.kage["HasTexture"] = hasTexture
	p.kage["MaterialColor"] = []float32{col[0], col[1], col[2], col[3]}

	p.op.Uniforms = p.kage
	p.op.Blend = ebiten.BlendSourceOver
	if b, ok := p.uniforms[UniformMaterialBlend].(BlendMode); ok {
		p.op.Blend = b.EbitenBlend()
	}
	p.op.Images[0] = src
	p.target.DrawTrianglesShader32(p.vertices, m.indices, p.shader, &p.op)
	p.op.Images[0] = nil
	return nil
}

func (p *ebitenProgram) Release() {
	if p.shader != nil {
		p.shader.Deallocate()
		p.shader = nil
	}
}

func (p *ebitenProgram) mat4(name string) mgl32.Mat4 {
	if m, ok := p.uniforms[name].(mgl32.Mat4); ok {
		return m
	}
	return mgl32.Ident4()
}

func (p *ebitenProgram) vec2(name string, def mgl32.Vec2) mgl32.Vec2 {
	if v, ok := p.uniforms[name].(mgl32.Vec2); ok {
		return v
	}
	return def
}

func (p *ebitenProgram) vec4(name string, def mgl32.Vec4) mgl32.Vec4 {
	if v, ok := p.uniforms[name].(mgl32.Vec4); ok {
		return v
	}
	return def
}

func (p *ebitenProgram) intUniform(name string) int {
	switch v := p.uniforms[name].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case bool:
		if v {
			return 1
		}
	}
	return 0
}

// validateMeshData checks that positions and uvs hold 2-component vertices of
// equal count and that every index addresses a vertex.
func validateMeshData(positions, uvs []float32, indices []uint16) error {
	if len(positions) == 0 || len(positions)%2 != 0 {
		return eris.Wrapf(ErrPrecondition, "mesh positions: need a non-empty multiple of 2, got %d", len(positions))
	}
	if len(uvs) != len(positions) {
		return eris.Wrapf(ErrPrecondition, "mesh uvs: got %d values for %d positions", len(uvs), len(positions))
	}
	if len(indices) == 0 || len(indices)%3 != 0 {
		return eris.Wrapf(ErrPrecondition, "mesh indices: need a non-empty multiple of 3, got %d", len(indices))
	}
	n := len(positions) / 2
	for i, idx := range indices {
		if int(idx) >= n {
			return eris.Wrapf(ErrPrecondition, "mesh index %d at %d out of range for %d vertices", idx, i, n)
		}
	}
	return nil
}
