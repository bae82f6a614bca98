package willow2d

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.False(t, s.Standard)
	assert.Equal(t, 1080, s.StandardWidth)
	assert.Equal(t, 720, s.StandardHeight)
	assert.Equal(t, 10*time.Millisecond, s.FixedStep())
	assert.NoError(t, s.Validate())
}

func TestLoadSettings_Env(t *testing.T) {
	t.Setenv("WILLOW2D_STANDARD", "true")
	t.Setenv("WILLOW2D_STANDARD_WIDTH", "640")
	t.Setenv("WILLOW2D_FIXED_STEP_MS", "20")

	s, err := LoadSettings()
	require.NoError(t, err)
	assert.True(t, s.Standard)
	assert.Equal(t, 640, s.StandardWidth)
	assert.Equal(t, 720, s.StandardHeight)
	assert.Equal(t, 20*time.Millisecond, s.FixedStep())
}

func TestLoadSettings_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "willow2d.env")
	body := "WILLOW2D_STANDARD_WIDTH=800\nWILLOW2D_STANDARD_HEIGHT=600\nWILLOW2D_DEBUG=true\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	t.Setenv("WILLOW2D_STANDARD_HEIGHT", "480")

	s, err := LoadSettings(path, filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, 800, s.StandardWidth)
	assert.Equal(t, 480, s.StandardHeight)
	assert.True(t, s.Debug)
}

func TestLoadSettings_Invalid(t *testing.T) {
	t.Setenv("WILLOW2D_FIXED_STEP_MS", "0")
	_, err := LoadSettings()
	assert.ErrorIs(t, err, ErrPrecondition)
}

func TestSettingsValidate(t *testing.T) {
	s := DefaultSettings()
	s.StandardWidth = 0
	assert.ErrorIs(t, s.Validate(), ErrPrecondition)

	s = DefaultSettings()
	s.FixedStepMillis = -5
	assert.ErrorIs(t, s.Validate(), ErrPrecondition)
}

func TestNewEngine_RejectsInvalidSettings(t *testing.T) {
	s := DefaultSettings()
	s.StandardHeight = -1
	_, err := NewEngine(WithBackend(&fakeBackend{}), WithSettings(s))
	assert.ErrorIs(t, err, ErrPrecondition)
}
