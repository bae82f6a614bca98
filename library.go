package willow2d

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/rotisserie/eris"
)

// AnimationLibrary holds named animation sets and the animators built from
// them. When watching, changed set files are reloaded and re-applied to every
// bound animator on the render thread.
type AnimationLibrary struct {
	engine *Engine

	mu    sync.Mutex
	dir   string
	sets  map[string]*AnimationSet
	paths map[string]string // file path -> set name
	bound map[string][]*SpriteAnimator

	watcher *animWatcher
	done    chan struct{}
}

// NewAnimationLibrary creates an empty library. Reloads are applied through
// e's render thread.
func NewAnimationLibrary(e *Engine) *AnimationLibrary {
	return &AnimationLibrary{
		engine: e,
		sets:   make(map[string]*AnimationSet),
		paths:  make(map[string]string),
		bound:  make(map[string][]*SpriteAnimator),
	}
}

// LoadDir loads every .yaml and .yml file in dir. The directory becomes the
// one Watch observes.
func (l *AnimationLibrary) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return eris.Wrapf(err, "animation library: read %s", dir)
	}
	for _, ent := range entries {
		if ent.IsDir() || !isAnimationFile(ent.Name()) {
			continue
		}
		path := filepath.Join(dir, ent.Name())
		set, err := LoadAnimationSet(path)
		if err != nil {
			return err
		}
		l.mu.Lock()
		l.sets[set.Name] = set
		l.paths[path] = set.Name
		l.mu.Unlock()
	}
	l.mu.Lock()
	l.dir = dir
	n := len(l.sets)
	l.mu.Unlock()
	l.engine.log.Info().Str("dir", dir).Int("sets", n).Msg("animation sets loaded")
	return nil
}

// Add stores set under its name, replacing any previous set.
func (l *AnimationLibrary) Add(set *AnimationSet) error {
	if set == nil || set.Name == "" {
		return eris.Wrap(ErrPrecondition, "animation library: set needs a name")
	}
	if err := set.Validate(); err != nil {
		return err
	}
	l.mu.Lock()
	l.sets[set.Name] = set
	l.mu.Unlock()
	return nil
}

// Get returns the named set.
func (l *AnimationLibrary) Get(name string) (*AnimationSet, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	set, ok := l.sets[name]
	return set, ok
}

// Names returns the set names in sorted order.
func (l *AnimationLibrary) Names() []string {
	l.mu.Lock()
	names := make([]string, 0, len(l.sets))
	for name := range l.sets {
		names = append(names, name)
	}
	l.mu.Unlock()
	sort.Strings(names)
	return names
}

// Bind applies the named set to a and keeps a for reloads.
func (l *AnimationLibrary) Bind(name string, a *SpriteAnimator) error {
	set, ok := l.Get(name)
	if !ok {
		return eris.Wrapf(ErrUnknownAnimation, "animation library: set %q", name)
	}
	if err := set.Apply(a); err != nil {
		return eris.Wrapf(err, "animation library: bind %q", name)
	}
	l.mu.Lock()
	l.bound[name] = append(l.bound[name], a)
	l.mu.Unlock()
	return nil
}

// Unbind stops reloading into a.
func (l *AnimationLibrary) Unbind(a *SpriteAnimator) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for name, list := range l.bound {
		for i, b := range list {
			if b == a {
				l.bound[name] = append(list[:i], list[i+1:]...)
				break
			}
		}
	}
}

// Reload re-reads the set file at path, replaces the set and queues it to be
// re-applied to every animator bound to it. On error the old set is kept.
func (l *AnimationLibrary) Reload(path string) error {
	set, err := LoadAnimationSet(path)
	if err != nil {
		return err
	}

	l.mu.Lock()
	if old, ok := l.paths[path]; ok && old != set.Name {
		// Renamed inside the file: carry the bindings over.
		l.bound[set.Name] = append(l.bound[set.Name], l.bound[old]...)
		delete(l.bound, old)
		delete(l.sets, old)
	}
	l.sets[set.Name] = set
	l.paths[path] = set.Name
	targets := append([]*SpriteAnimator(nil), l.bound[set.Name]...)
	l.mu.Unlock()

	if len(targets) == 0 {
		return nil
	}
	log := l.engine.log
	l.engine.Post(func(context.Context) {
		for _, a := range targets {
			if err := set.Apply(a); err != nil {
				log.Error().Err(err).Str("set", set.Name).Msg("re-apply animation set failed")
			}
		}
	})
	log.Info().Str("set", set.Name).Int("animators", len(targets)).Msg("animation set reloaded")
	return nil
}

// Watch starts reloading files of the loaded directory as they change.
func (l *AnimationLibrary) Watch() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.watcher != nil {
		return nil
	}
	if l.dir == "" {
		return eris.Wrap(ErrPrecondition, "animation library: watch before LoadDir")
	}
	w, err := newAnimWatcher(l.dir)
	if err != nil {
		return eris.Wrapf(err, "animation library: watch %s", l.dir)
	}
	l.watcher = w
	l.done = make(chan struct{})
	go l.watch(w, l.done)
	return nil
}

func (l *AnimationLibrary) watch(w *animWatcher, done chan struct{}) {
	defer close(done)
	log := l.engine.log
	for {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return
			}
			if err := l.Reload(path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("animation reload failed")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			log.Error().Err(err).Msg("animation watcher error")
		}
	}
}

// Close stops watching. It is safe to call without Watch.
func (l *AnimationLibrary) Close() error {
	l.mu.Lock()
	w, done := l.watcher, l.done
	l.watcher, l.done = nil, nil
	l.mu.Unlock()
	if w == nil {
		return nil
	}
	err := w.Close()
	<-done
	return err
}
