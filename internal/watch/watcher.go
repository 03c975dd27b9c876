// Package watch re-runs work when watched files change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/giantswarm/projectinstall/pkg/logging"
)

// DefaultDebounce is used when NewFileWatcher gets a zero interval.
const DefaultDebounce = 500 * time.Millisecond

// Change reports that one or more watched files changed within a debounce
// window. Paths holds every file touched in that window.
type Change struct {
	Paths     []string
	Timestamp time.Time
}

// FileWatcher watches individual files. It watches their directories rather
// than the files themselves so that editors replacing a file by rename are
// still noticed.
type FileWatcher struct {
	mu sync.Mutex

	files    map[string]bool
	debounce time.Duration
	watcher  *fsnotify.Watcher

	pending []string
	timer   *time.Timer

	stopCh  chan struct{}
	running bool
}

// NewFileWatcher creates a watcher for paths.
func NewFileWatcher(debounce time.Duration, paths ...string) (*FileWatcher, error) {
	if debounce == 0 {
		debounce = DefaultDebounce
	}
	files := make(map[string]bool, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		files[abs] = true
	}
	return &FileWatcher{
		files:    files,
		debounce: debounce,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Changes are sent without blocking; if changes is
// full the change is dropped because another one is already queued.
func (w *FileWatcher) Start(ctx context.Context, changes chan<- Change) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.mu.Unlock()
		return err
	}
	dirs := make(map[string]bool)
	for f := range w.files {
		dirs[filepath.Dir(f)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			w.mu.Unlock()
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		logging.Debug("FileWatcher", "Watching directory: %s", dir)
	}

	w.watcher = watcher
	w.running = true
	w.stopCh = make(chan struct{})
	w.mu.Unlock()

	go w.processEvents(ctx, watcher, changes)
	return nil
}

func (w *FileWatcher) processEvents(ctx context.Context, watcher *fsnotify.Watcher, changes chan<- Change) {
	for {
		select {
		case <-ctx.Done():
			w.cancelPending()
			return

		case <-w.stopCh:
			w.cancelPending()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event, changes)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Error("FileWatcher", err, "Filesystem watcher error")
		}
	}
}

func (w *FileWatcher) handleEvent(event fsnotify.Event, changes chan<- Change) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) && !event.Has(fsnotify.Rename) {
		return
	}
	path, err := filepath.Abs(event.Name)
	if err != nil || !w.files[path] {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !contains(w.pending, path) {
		w.pending = append(w.pending, path)
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		paths := w.pending
		w.pending = nil
		w.timer = nil
		w.mu.Unlock()

		if len(paths) == 0 {
			return
		}
		select {
		case changes <- Change{Paths: paths, Timestamp: time.Now()}:
			logging.Debug("FileWatcher", "Emitted change for %v", paths)
		default:
			logging.Debug("FileWatcher", "Change already queued, dropping change for %v", paths)
		}
	})
}

func (w *FileWatcher) cancelPending() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.pending = nil
}

// Stop stops watching. It is safe to call more than once.
func (w *FileWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.stopCh)

	var err error
	if w.watcher != nil {
		err = w.watcher.Close()
		w.watcher = nil
	}
	return err
}

// Run calls fn once and then again after every change to the watched files,
// until ctx is cancelled. Errors from fn are passed to onError and do not stop
// the loop.
func Run(ctx context.Context, w *FileWatcher, fn func(context.Context) error, onError func(error)) error {
	changes := make(chan Change, 1)
	if err := w.Start(ctx, changes); err != nil {
		return err
	}
	defer w.Stop()

	runOnce := func() {
		if err := fn(ctx); err != nil && onError != nil {
			onError(err)
		}
	}

	runOnce()
	for {
		select {
		case <-ctx.Done():
			return nil
		case change := <-changes:
			logging.Info("FileWatcher", "Detected change in %v, re-running", change.Paths)
			runOnce()
		}
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
