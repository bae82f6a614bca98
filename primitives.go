package willow2d

// Unit square centered on the origin, two triangles. UV (0,0) is the
// top-left of the texture.
var (
	squareVertices = []float32{
		-0.5, 0.5,
		-0.5, -0.5,
		0.5, -0.5,
		0.5, 0.5,
	}
	squareUVs = []float32{
		0, 0,
		0, 1,
		1, 1,
		1, 0,
	}
	squareIndices = []uint16{0, 3, 2, 2, 1, 0}
)

// SquareVertices returns the 2-component positions of the unit square.
func SquareVertices() []float32 { return append([]float32(nil), squareVertices...) }

// SquareUVs returns the texture coordinates of the unit square.
func SquareUVs() []float32 { return append([]float32(nil), squareUVs...) }

// SquareIndices returns the triangle indices of the unit square.
func SquareIndices() []uint16 { return append([]uint16(nil), squareIndices...) }
