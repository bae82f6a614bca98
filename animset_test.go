package willow2d

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const blockSetYAML = `
name: block
frame_duration: 0.2
current: blink
animations:
  - name: blink
    frames: [0, 1, 4, 5, 6, 8]
    frame_duration: 0.5
  - name: cycle
    frames: [0, 1, 2, 3]
`

func TestParseAnimationSet(t *testing.T) {
	set, err := ParseAnimationSet([]byte(blockSetYAML))
	require.NoError(t, err)

	assert.Equal(t, "block", set.Name)
	assert.Equal(t, "blink", set.Current)
	require.Len(t, set.Animations, 2)
	assert.Equal(t, []int{0, 1, 4, 5, 6, 8}, set.Animations[0].Frames)
	assert.Equal(t, 0.5, set.Animations[0].FrameDuration)
}

func TestParseAnimationSet_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"negative set duration", "frame_duration: -1\n", ErrPrecondition},
		{"unnamed animation", "animations:\n  - frames: [1]\n", ErrPrecondition},
		{"duplicate", "animations:\n  - name: a\n  - name: a\n", ErrPrecondition},
		{"negative animation duration", "animations:\n  - name: a\n    frame_duration: -2\n", ErrPrecondition},
		{"unknown current", "current: run\nanimations:\n  - name: walk\n", ErrUnknownAnimation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAnimationSet([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err := ParseAnimationSet([]byte("animations: [[["))
	assert.Error(t, err)
}

func TestAnimationSet_BuildDurations(t *testing.T) {
	set, err := ParseAnimationSet([]byte(blockSetYAML))
	require.NoError(t, err)

	anims, err := set.Build()
	require.NoError(t, err)
	require.Len(t, anims, 2)
	assert.Equal(t, "blink", anims[0].Name())
	assert.Equal(t, 0.5, anims[0].FrameDuration())
	assert.Equal(t, 0.2, anims[1].FrameDuration())

	set.FrameDuration = 0
	anims, err = set.Build()
	require.NoError(t, err)
	assert.Equal(t, DefaultFrameDuration, anims[1].FrameDuration())
}

func TestAnimationSet_Apply(t *testing.T) {
	set, err := ParseAnimationSet([]byte(blockSetYAML))
	require.NoError(t, err)
	e, s := newAnimated(t)

	require.NoError(t, set.Apply(s))
	assert.Equal(t, []string{"blink", "cycle"}, s.AnimationNames())
	require.NotNil(t, s.CurrentAnimation())
	assert.Equal(t, "blink", s.CurrentAnimation().Name())

	s.Tick(0.5)
	assert.Equal(t, 1, e.Frame())

	assert.ErrorIs(t, set.Apply(nil), ErrPrecondition)
}

func TestLoadAnimationSet_NamesFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hero.yaml")
	require.NoError(t, os.WriteFile(path, []byte("animations:\n  - name: idle\n    frames: [0]\n"), 0o644))

	set, err := LoadAnimationSet(path)
	require.NoError(t, err)
	assert.Equal(t, "hero", set.Name)

	_, err = LoadAnimationSet(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
