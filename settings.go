package willow2d

import (
	"os"
	"time"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
)

// Settings configures an Engine. Fields map to environment variables (and
// KEY=VALUE config files) through their config tags.
type Settings struct {
	// Standard enables standard scaling: the 2D projection uses the fixed
	// StandardWidth x StandardHeight virtual size regardless of the window,
	// and the viewport stretches it.
	Standard       bool `config:"WILLOW2D_STANDARD"`
	StandardWidth  int  `config:"WILLOW2D_STANDARD_WIDTH"`
	StandardHeight int  `config:"WILLOW2D_STANDARD_HEIGHT"`

	// FixedStepMillis is the fixed driver's tick period.
	FixedStepMillis int `config:"WILLOW2D_FIXED_STEP_MS"`

	// Debug logs per-frame render stats.
	Debug bool `config:"WILLOW2D_DEBUG"`

	// AnimationDir, if set, is loaded into the engine's AnimationLibrary.
	AnimationDir string `config:"WILLOW2D_ANIMATION_DIR"`
	// WatchAnimations hot-reloads AnimationDir on change.
	WatchAnimations bool `config:"WILLOW2D_WATCH_ANIMATIONS"`
}

// DefaultSettings returns the built-in defaults: standard scaling off, a
// 1080x720 virtual size and a 10ms fixed step.
func DefaultSettings() Settings {
	return Settings{
		StandardWidth:   1080,
		StandardHeight:  720,
		FixedStepMillis: 10,
	}
}

// LoadSettings starts from DefaultSettings, applies each existing file in
// order and then the environment. Missing files are skipped.
func LoadSettings(files ...string) (Settings, error) {
	s := DefaultSettings()

	var b *config.Builder
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if b == nil {
			b = config.From(f)
		} else {
			b = b.From(f)
		}
	}
	if b == nil {
		b = config.FromEnv()
	} else {
		b = b.FromEnv()
	}
	if err := b.To(&s); err != nil {
		return s, eris.Wrap(err, "load settings")
	}
	if err := s.Validate(); err != nil {
		return s, err
	}
	return s, nil
}

// Validate checks that sizes and the fixed step are positive.
func (s Settings) Validate() error {
	if s.StandardWidth <= 0 || s.StandardHeight <= 0 {
		return eris.Wrapf(ErrPrecondition, "settings: standard size must be positive, got %dx%d",
			s.StandardWidth, s.StandardHeight)
	}
	if s.FixedStepMillis <= 0 {
		return eris.Wrapf(ErrPrecondition, "settings: fixed step must be positive, got %dms", s.FixedStepMillis)
	}
	return nil
}

// FixedStep returns the fixed driver period.
func (s Settings) FixedStep() time.Duration {
	return time.Duration(s.FixedStepMillis) * time.Millisecond
}
