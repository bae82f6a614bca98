package willow2d

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test JSON fixtures ---

const singlePageJSON = `{
  "frames": {
    "hero.png": {
      "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 64, "h": 64},
      "sourceSize": {"w": 64, "h": 64}
    },
    "block.png": {
      "frame": {"x": 64, "y": 0, "w": 128, "h": 96},
      "rotated": false,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 128, "h": 96},
      "sourceSize": {"w": 128, "h": 96}
    },
    "trimmed.png": {
      "frame": {"x": 100, "y": 150, "w": 60, "h": 58},
      "rotated": false,
      "trimmed": true,
      "spriteSourceSize": {"x": 2, "y": 3, "w": 60, "h": 58},
      "sourceSize": {"w": 64, "h": 64}
    },
    "rotated.png": {
      "frame": {"x": 200, "y": 0, "w": 48, "h": 32},
      "rotated": true,
      "trimmed": false,
      "spriteSourceSize": {"x": 0, "y": 0, "w": 48, "h": 32},
      "sourceSize": {"w": 32, "h": 48}
    }
  },
  "meta": {
    "image": "atlas.png",
    "size": {"w": 256, "h": 256}
  }
}`

const multiPageJSON = `{
  "textures": [
    {
      "image": "atlas-0.png",
      "frames": {
        "page0_sprite.png": {
          "frame": {"x": 0, "y": 0, "w": 64, "h": 64},
          "spriteSourceSize": {"x": 0, "y": 0, "w": 64, "h": 64},
          "sourceSize": {"w": 64, "h": 64}
        }
      }
    },
    {
      "image": "atlas-1.png",
      "frames": {
        "page1_sprite.png": {
          "frame": {"x": 10, "y": 20, "w": 50, "h": 50},
          "spriteSourceSize": {"x": 0, "y": 0, "w": 50, "h": 50},
          "sourceSize": {"w": 50, "h": 50}
        }
      }
    }
  ]
}`

func loadSinglePage(t *testing.T) *Atlas {
	t.Helper()
	atlas, err := LoadAtlas([]byte(singlePageJSON), []*ebiten.Image{ebiten.NewImage(256, 256)})
	require.NoError(t, err)
	return atlas
}

func TestLoadAtlas_SinglePage(t *testing.T) {
	atlas := loadSinglePage(t)
	assert.Equal(t, []string{"block.png", "hero.png", "rotated.png", "trimmed.png"}, atlas.RegionNames())

	r, ok := atlas.Region("block.png")
	require.True(t, ok)
	assert.Equal(t, TextureRegion{
		X: 64, Width: 128, Height: 96, OriginalW: 128, OriginalH: 96,
	}, r)

	_, ok = atlas.Region("nonexistent.png")
	assert.False(t, ok)
}

func TestLoadAtlas_TrimmedRegion(t *testing.T) {
	r, ok := loadSinglePage(t).Region("trimmed.png")
	require.True(t, ok)
	assert.Equal(t, int16(2), r.OffsetX)
	assert.Equal(t, int16(3), r.OffsetY)
	assert.Equal(t, uint16(64), r.OriginalW)
	assert.Equal(t, uint16(58), r.Height)
}

func TestLoadAtlas_RotatedRegion(t *testing.T) {
	r, ok := loadSinglePage(t).Region("rotated.png")
	require.True(t, ok)
	assert.True(t, r.Rotated)
	assert.Equal(t, uint16(48), r.Width)
	assert.Equal(t, uint16(32), r.Height)
}

func TestLoadAtlas_MultiPage(t *testing.T) {
	pages := []*ebiten.Image{ebiten.NewImage(128, 128), ebiten.NewImage(128, 128)}
	atlas, err := LoadAtlas([]byte(multiPageJSON), pages)
	require.NoError(t, err)

	r0, ok := atlas.Region("page0_sprite.png")
	require.True(t, ok)
	assert.Equal(t, uint16(0), r0.Page)

	r1, ok := atlas.Region("page1_sprite.png")
	require.True(t, ok)
	assert.Equal(t, uint16(1), r1.Page)
	assert.Equal(t, uint16(10), r1.X)
	assert.Equal(t, uint16(20), r1.Y)
}

func TestLoadAtlas_InvalidJSON(t *testing.T) {
	_, err := LoadAtlas([]byte(`{invalid`), nil)
	assert.Error(t, err)
}

func TestLoadAtlas_NoFramesOrTextures(t *testing.T) {
	_, err := LoadAtlas([]byte(`{"meta":{}}`), nil)
	assert.ErrorIs(t, err, ErrPrecondition)
	assert.Contains(t, err.Error(), "neither")
}

func TestAtlas_SpriteSheet(t *testing.T) {
	atlas := loadSinglePage(t)

	tex, err := atlas.SpriteSheet("block.png", 4, 3)
	require.NoError(t, err)
	assert.True(t, tex.IsSpriteSheet())
	assert.Equal(t, 128, tex.Image.Bounds().Dx())
	w, h := tex.CellSize()
	assert.Equal(t, 32, w)
	assert.Equal(t, 32, h)
}

func TestAtlas_SpriteSheetErrors(t *testing.T) {
	atlas := loadSinglePage(t)

	_, err := atlas.SpriteSheet("missing.png", 1, 1)
	assert.ErrorIs(t, err, ErrPrecondition)

	_, err = atlas.SpriteSheet("rotated.png", 2, 2)
	assert.ErrorIs(t, err, ErrPrecondition)

	_, err = atlas.SpriteSheet("hero.png", 0, 2)
	assert.ErrorIs(t, err, ErrPrecondition)

	noPages, err := LoadAtlas([]byte(singlePageJSON), nil)
	require.NoError(t, err)
	_, err = noPages.SpriteSheet("hero.png", 1, 1)
	assert.ErrorIs(t, err, ErrPrecondition)
}

// --- Benchmarks ---

func BenchmarkLoadAtlas_SinglePage(b *testing.B) {
	data := []byte(singlePageJSON)
	pages := []*ebiten.Image{ebiten.NewImage(256, 256)}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = LoadAtlas(data, pages)
	}
}

func BenchmarkAtlas_Region(b *testing.B) {
	atlas, _ := LoadAtlas([]byte(singlePageJSON), []*ebiten.Image{ebiten.NewImage(256, 256)})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = atlas.Region("hero.png")
	}
}
