package willow2d

import (
	"image"
	_ "image/png" // PNG decoder for LoadTexture
	"io"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rotisserie/eris"
)

// Texture is an image with a sprite-sheet grid. A plain image is a 1x1 grid.
//
// Textures are shared between materials and are never disposed by meshes;
// their owner decides when to deallocate the image.
type Texture struct {
	Image *ebiten.Image
	// Cols and Rows are the sprite-sheet grid size, both at least 1.
	Cols, Rows int
}

// NewTexture wraps img with a cols x rows sprite-sheet grid.
func NewTexture(img *ebiten.Image, cols, rows int) (*Texture, error) {
	if img == nil {
		return nil, eris.Wrap(ErrPrecondition, "texture: nil image")
	}
	if cols < 1 || rows < 1 {
		return nil, eris.Wrapf(ErrPrecondition, "texture: grid must be at least 1x1, got %dx%d", cols, rows)
	}
	return &Texture{Image: img, Cols: cols, Rows: rows}, nil
}

// LoadTexture decodes an image (PNG or any registered format) from r.
func LoadTexture(r io.Reader, cols, rows int) (*Texture, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, eris.Wrap(err, "texture: decode")
	}
	return NewTexture(ebiten.NewImageFromImage(img), cols, rows)
}

// IsSpriteSheet reports whether the grid has more than one column and more
// than one row. Only then does the shader sample a single cell.
func (t *Texture) IsSpriteSheet() bool {
	return t.Cols > 1 && t.Rows > 1
}

// CellSize returns the pixel size of one grid cell.
func (t *Texture) CellSize() (w, h int) {
	b := t.Image.Bounds()
	return b.Dx() / t.Cols, b.Dy() / t.Rows
}

// CellBounds returns the pixel rectangle of a frame's cell, relative to the
// image's top-left corner.
func (t *Texture) CellBounds(frame int) Rect {
	w, h := t.CellSize()
	col, row := SheetCell(frame, t.Cols)
	return Rect{X: float64(col * w), Y: float64(row * h), Width: float64(w), Height: float64(h)}
}
