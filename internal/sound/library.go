package sound

import (
	"fmt"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-audition/playback"
)

// Library holds the sounds of one session. Every sound must share the rate
// held by its registry.
type Library struct {
	registry *playback.Registry
	logger   *zap.Logger

	mu     sync.RWMutex
	sounds map[string]*Sound
	order  []string
}

// NewLibrary returns an empty library checking rates against registry.
func NewLibrary(registry *playback.Registry, logger *zap.Logger) *Library {
	if registry == nil {
		registry = &playback.Registry{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Library{
		registry: registry,
		logger:   logger,
		sounds:   make(map[string]*Sound),
	}
}

// Add decodes path and adds it. A sound whose rate differs from the
// registered rate is rejected with an error wrapping
// playback.ErrIncompatibleSamplingRate.
func (l *Library) Add(path string) (*Sound, error) {
	s, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := l.registry.Register(s.SampleRate); err != nil {
		l.logger.Warn("rejected sound",
			zap.String("path", path),
			zap.Float64("sample_rate", s.SampleRate),
			zap.Float64("registered_rate", l.registry.Rate()),
		)
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	key := filepath.Clean(path)

	l.mu.Lock()
	if _, ok := l.sounds[key]; !ok {
		l.order = append(l.order, key)
	}
	l.sounds[key] = s
	l.mu.Unlock()

	l.logger.Debug("loaded sound",
		zap.String("path", path),
		zap.Int("samples", len(s.Samples)),
		zap.Float64("sample_rate", s.SampleRate),
		zap.Int("channels", s.Channels),
	)

	return s, nil
}

// Reload decodes path again, replacing the held copy. The rate check is the
// same as for Add.
func (l *Library) Reload(path string) (*Sound, error) {
	return l.Add(path)
}

// Get returns the sound loaded from path.
func (l *Library) Get(path string) (*Sound, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	s, ok := l.sounds[filepath.Clean(path)]
	return s, ok
}

// Paths returns the loaded paths in load order.
func (l *Library) Paths() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return append([]string(nil), l.order...)
}

// Registry returns the rate registry the library checks against.
func (l *Library) Registry() *playback.Registry {
	return l.registry
}
