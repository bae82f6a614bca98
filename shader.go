package willow2d

import (
	_ "embed"

	"github.com/rotisserie/eris"
)

// Standard2DShaderName is the resource name of the 2D sprite shader.
const Standard2DShaderName = "Standard2D"

//go:embed shaders/standard2d.kage
var standard2DShaderSrc []byte

// Standard2DShaderSource returns a copy of the embedded 2D shader source.
func Standard2DShaderSource() []byte {
	out := make([]byte, len(standard2DShaderSrc))
	copy(out, standard2DShaderSrc)
	return out
}

// compileStandard2D returns the factory Resources.FindOrRegister uses to
// build the 2D shader on first request.
func compileStandard2D(b Backend) func() (ShaderProgram, error) {
	return func() (ShaderProgram, error) {
		if b == nil {
			return nil, eris.Wrap(ErrPrecondition, "compile 2D shader: no backend")
		}
		prog, err := b.CompileShader(Standard2DShaderName, standard2DShaderSrc)
		if err != nil {
			return nil, eris.Wrapf(err, "compile shader %q", Standard2DShaderName)
		}
		return prog, nil
	}
}
