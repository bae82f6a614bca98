package willow2d

import (
	"context"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
)

// Standard2DPipeline draws a scene's Registry with the Standard2D shader and
// an orthographic projection whose origin is the top-left of the screen.
type Standard2DPipeline struct {
	engine *Engine
	shader ShaderProgram
}

var _ Pipeline = (*Standard2DPipeline)(nil)

// NewStandard2DPipeline creates the pipeline. Register it on the engine's
// Resources; NewScene does so for the first scene.
func NewStandard2DPipeline(e *Engine) *Standard2DPipeline {
	return &Standard2DPipeline{engine: e}
}

// Name implements Pipeline.
func (p *Standard2DPipeline) Name() string { return Standard2DShaderName }

// Init looks up the Standard2D shader.
func (p *Standard2DPipeline) Init(res *Resources) error {
	sh, ok := res.FindShader(Standard2DShaderName)
	if !ok {
		return eris.Wrapf(ErrPrecondition, "pipeline: shader %q not registered", Standard2DShaderName)
	}
	p.shader = sh
	return nil
}

// Render draws every visible mesh of every entity in the scene's Registry.
// Entities whose renderer has no mesh are skipped and counted.
func (p *Standard2DPipeline) Render(_ context.Context, scene *Scene, target *ebiten.Image) error {
	if p.shader == nil {
		return eris.Wrap(ErrPrecondition, "pipeline: not initialized")
	}
	sh := p.shader
	stats := &scene.frame

	sh.Bind(target)
	defer sh.Unbind()

	winW, winH := p.engine.WindowSize()
	w, h := ProjectionSize(p.engine.Settings(), winW, winH)
	ortho := mgl32.Ortho2D(0, float32(w), float32(h), 0)
	cam := scene.Camera2D().Position()

	for _, e := range scene.Registry().Items() {
		stats.Entities++
		r, ok := GetComponent[*MeshRenderer2D](e)
		if !ok {
			continue
		}
		if !r.Visible() {
			stats.SkippedHidden++
			continue
		}
		meshes := r.Meshes()
		if len(meshes) == 0 {
			stats.SkippedNoMesh++
			continue
		}

		model := ModelMatrix(e.Transform, cam)
		frame := e.Frame()
		for _, m := range meshes {
			if m.Released() {
				continue
			}
			mat := m.Material()
			sh.SetUniform(UniformModel, model)
			sh.SetUniform(UniformOrtho, ortho)
			sh.SetUniform(UniformMaterialTexture, 0)
			sh.SetUniform(UniformMaterialColor, mat.Color().Vec4())
			sh.SetUniform(UniformMaterialBlend, mat.Blend())

			var img *ebiten.Image
			if tex, ok := mat.Texture(); ok {
				sh.SetUniform(UniformTextureOffset, SheetUVOffset(frame, tex.Cols, tex.Rows))
				sh.SetUniform(UniformColumnsRows, mgl32.Vec2{float32(tex.Cols), float32(tex.Rows)})
				sheet := 0
				if tex.IsSpriteSheet() {
					sheet = 1
				}
				sh.SetUniform(UniformIsSpriteSheet, sheet)
				img = tex.Image
			} else {
				sh.SetUniform(UniformIsSpriteSheet, 0)
			}

			if err := sh.DrawMesh(m.Buffers(), img); err != nil {
				return eris.Wrapf(err, "draw entity %q (id %d)", e.Name, e.ID)
			}
			stats.DrawCalls++
		}
		stats.Drawn++
	}
	return nil
}

// ProjectionSize returns the orthographic projection size: the standard
// virtual size with standard scaling, otherwise the window size.
func ProjectionSize(s Settings, winW, winH int) (w, h int) {
	if s.Standard {
		return s.StandardWidth, s.StandardHeight
	}
	return winW, winH
}

// ModelMatrix builds a 2D entity's model matrix. The camera position is
// added to the entity position rather than applied as a view transform, and
// the camera's Z becomes the entity's depth. Z scale is pinned to 1.
func ModelMatrix(t Transform, cam mgl32.Vec3) mgl32.Mat4 {
	translate := mgl32.Translate3D(t.Position[0]+cam[0], t.Position[1]+cam[1], cam[2])
	scale := mgl32.Scale3D(t.Scale[0], t.Scale[1], 1)
	return translate.Mul4(t.Rotation.Mat4()).Mul4(scale)
}

// SheetCell returns the grid cell of a frame identifier in a sheet with cols
// columns, counting row-major from the top-left.
func SheetCell(frame, cols int) (col, row int) {
	if cols <= 0 {
		return 0, 0
	}
	return frame % cols, frame / cols
}

// SheetUVOffset returns the normalized texture offset of a frame's cell in a
// cols x rows sheet.
func SheetUVOffset(frame, cols, rows int) mgl32.Vec2 {
	if cols <= 0 || rows <= 0 {
		return mgl32.Vec2{}
	}
	col, row := SheetCell(frame, cols)
	return mgl32.Vec2{float32(col) / float32(cols), float32(row) / float32(rows)}
}
