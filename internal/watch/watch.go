// Package watch reports when loaded sound files change on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce groups the bursts of events editors and encoders emit while
// rewriting a file.
const DefaultDebounce = 200 * time.Millisecond

// Watcher notifies about writes to a fixed set of files. It watches their
// parent directories so files replaced by rename are still seen.
type Watcher struct {
	w        *fsnotify.Watcher
	logger   *zap.Logger
	debounce time.Duration

	files map[string]struct{}
	evC   chan string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger for watch errors.
func WithLogger(logger *zap.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithDebounce sets the quiet period before a change is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// New starts watching paths.
func New(paths []string, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	w := &Watcher{
		w:        fw,
		logger:   zap.NewNop(),
		debounce: DefaultDebounce,
		files:    make(map[string]struct{}),
		evC:      make(chan string, 16),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	dirs := make(map[string]struct{})
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range dirs {
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	return w, nil
}

// Changes delivers the absolute path of every changed file.
func (w *Watcher) Changes() <-chan string { return w.evC }

// Run forwards debounced changes until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.evC)

	due := make(map[string]time.Time)
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-w.w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			path, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, ok := w.files[path]; !ok {
				continue
			}

			due[path] = time.Now().Add(w.debounce)
			timer.Reset(w.debounce)
		case now := <-timer.C:
			next := time.Duration(0)
			for path, at := range due {
				if wait := at.Sub(now); wait > 0 {
					if next == 0 || wait < next {
						next = wait
					}
					continue
				}

				delete(due, path)
				select {
				case w.evC <- path:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if next > 0 {
				timer.Reset(next)
			}
		case err, ok := <-w.w.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

// Close stops watching.
func (w *Watcher) Close() error { return w.w.Close() }
