package willow2d

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// AnimationSpec describes one sprite animation in an animation set file.
type AnimationSpec struct {
	Name   string `yaml:"name"`
	Frames []int  `yaml:"frames"`
	// FrameDuration overrides the set's duration when positive.
	FrameDuration float64 `yaml:"frame_duration"`
}

// AnimationSet is a YAML-described group of animations for one kind of
// sprite:
//
//	frame_duration: 0.2
//	current: blink
//	animations:
//	  - name: blink
//	    frames: [0, 1, 4, 5, 6, 8]
//	    frame_duration: 0.5
type AnimationSet struct {
	Name string `yaml:"name"`
	// FrameDuration is the default for animations without their own. Zero
	// means DefaultFrameDuration.
	FrameDuration float64         `yaml:"frame_duration"`
	Current       string          `yaml:"current"`
	Animations    []AnimationSpec `yaml:"animations"`
}

// ParseAnimationSet decodes and validates an animation set.
func ParseAnimationSet(data []byte) (*AnimationSet, error) {
	var set AnimationSet
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, eris.Wrap(err, "animset: unmarshal")
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}
	return &set, nil
}

// LoadAnimationSet reads an animation set file. A set without a name is named
// after the file.
func LoadAnimationSet(path string) (*AnimationSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "animset: load %s", path)
	}
	set, err := ParseAnimationSet(data)
	if err != nil {
		return nil, eris.Wrapf(err, "animset: %s", path)
	}
	if set.Name == "" {
		set.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return set, nil
}

// Validate checks names, durations and the current animation.
func (s *AnimationSet) Validate() error {
	if s.FrameDuration < 0 {
		return eris.Wrapf(ErrPrecondition, "animset %q: negative frame_duration", s.Name)
	}
	seen := make(map[string]struct{}, len(s.Animations))
	for i, a := range s.Animations {
		if a.Name == "" {
			return eris.Wrapf(ErrPrecondition, "animset %q: animation %d has no name", s.Name, i)
		}
		if _, dup := seen[a.Name]; dup {
			return eris.Wrapf(ErrPrecondition, "animset %q: duplicate animation %q", s.Name, a.Name)
		}
		if a.FrameDuration < 0 {
			return eris.Wrapf(ErrPrecondition, "animset %q: animation %q has negative frame_duration", s.Name, a.Name)
		}
		seen[a.Name] = struct{}{}
	}
	if s.Current != "" {
		if _, ok := seen[s.Current]; !ok {
			return eris.Wrapf(ErrUnknownAnimation, "animset %q: current %q", s.Name, s.Current)
		}
	}
	return nil
}

// Build creates fresh SpriteAnimations from the set, in file order.
func (s *AnimationSet) Build() ([]*SpriteAnimation, error) {
	out := make([]*SpriteAnimation, 0, len(s.Animations))
	for _, spec := range s.Animations {
		a := NewSpriteAnimation(spec.Name, spec.Frames...)
		d := spec.FrameDuration
		if d == 0 {
			d = s.FrameDuration
		}
		if d > 0 {
			if err := a.SetFrameDuration(d); err != nil {
				return nil, err
			}
		}
		out = append(out, a)
	}
	return out, nil
}

// Apply adds the set's animations to a, replacing same-named ones, and
// selects the set's current animation if it names one.
func (s *AnimationSet) Apply(a *SpriteAnimator) error {
	if a == nil {
		return eris.Wrap(ErrPrecondition, "animset: apply to nil animator")
	}
	anims, err := s.Build()
	if err != nil {
		return err
	}
	for _, anim := range anims {
		if err := a.AddAnimation(anim); err != nil {
			return err
		}
	}
	if s.Current != "" {
		return a.SetCurrentAnimation(s.Current)
	}
	return nil
}
