package audio

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Invalidator drops cached data for a path.
type Invalidator interface {
	InvalidateCache(path string)
}

// Watcher watches sound files for changes and invalidates the cache.
type Watcher struct {
	mu      sync.Mutex
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	target  Invalidator

	// Watched files: absolute path to the path given to Watch
	paths map[string]string

	done    chan struct{}
	stopped chan struct{}
	running bool
}

// NewWatcher creates a new audio file watcher.
func NewWatcher(target Invalidator, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		logger:  logger,
		watcher: fw,
		target:  target,
		paths:   make(map[string]string),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}, nil
}

// Watch adds a file to the watch list. The containing directory is watched
// because editors often replace files rather than writing them in place.
func (w *Watcher) Watch(path string) error {
	if path == "" {
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.watcher.Add(filepath.Dir(abs)); err != nil {
		return err
	}
	w.paths[abs] = path
	return nil
}

// Start begins watching in the background.
func (w *Watcher) Start() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return
	}
	w.running = true

	go w.watch()
	w.logger.Debug("audio watcher started", "files", len(w.paths))
}

// watch is the main watch loop.
func (w *Watcher) watch() {
	defer close(w.stopped)

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("audio watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	original, ok := w.paths[abs]
	w.mu.Unlock()
	if !ok {
		return
	}

	w.logger.Debug("sound file changed, invalidating cache", "path", original, "op", event.Op.String())
	w.target.InvalidateCache(original)
}

// Stop stops the watcher and releases its resources.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.done)
		<-w.stopped
	}
	return w.watcher.Close()
}
