// Package watcher reloads the open document when it changes on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sercha-tmx/internal/logger"
)

// DefaultDebounce collapses the burst of events an editor save produces.
const DefaultDebounce = 250 * time.Millisecond

// FileWatcher watches a single file and calls onChange once per burst of
// writes. The parent directory is watched so atomic saves (write to a
// temporary file, rename over the original) are seen as well.
type FileWatcher struct {
	path     string
	debounce time.Duration
	onChange func(path string)

	watcher *fsnotify.Watcher
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu      sync.Mutex
	timer   *time.Timer
	stopped bool
}

// New creates a watcher for path. A non-positive debounce uses
// DefaultDebounce.
func New(path string, debounce time.Duration, onChange func(path string)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &FileWatcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Path returns the absolute path being watched.
func (w *FileWatcher) Path() string {
	return w.path
}

// Start begins watching. Stop must be called to release the watcher.
func (w *FileWatcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	dir := filepath.Dir(w.path)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	ctx, cancel := context.WithCancel(ctx)
	w.watcher = fsw
	w.cancel = cancel

	w.wg.Add(1)
	go w.processEvents(ctx)

	logger.Debug("Watching %s for changes (debounce %s)", w.path, w.debounce)
	return nil
}

// Stop stops watching and drops any pending notification.
func (w *FileWatcher) Stop() error {
	w.mu.Lock()
	w.stopped = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()

	if w.cancel == nil {
		return nil
	}
	w.cancel()
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}

func (w *FileWatcher) processEvents(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("File watcher error: %v", err)
		}
	}
}

func (w *FileWatcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	// Remove and Rename leave nothing to load; the Create that follows an
	// atomic save triggers the reload.
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	logger.Debug("Watcher: %s %s", event.Op, event.Name)
	w.schedule()
}

// schedule (re)arms the debounce timer.
func (w *FileWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *FileWatcher) fire() {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()

	if stopped || w.onChange == nil {
		return
	}
	logger.Info("%s changed, reloading", w.path)
	w.onChange(w.path)
}
