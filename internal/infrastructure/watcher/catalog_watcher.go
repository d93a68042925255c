// Package watcher reloads the catalog when its file changes on disk.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce collapses bursts of writes from editors and copy tools.
const DefaultDebounce = 500 * time.Millisecond

// ReloadFunc is called with the watched path after it settles.
type ReloadFunc func(ctx context.Context, path string) error

// CatalogWatcher watches the directory holding the catalog file, so atomic
// rename-based replacements are seen as well as in-place writes.
type CatalogWatcher struct {
	path     string
	reload   ReloadFunc
	debounce time.Duration
	logger   *zap.Logger

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	done    chan struct{}
	once    sync.Once
}

// New creates a watcher for path. Start must be called to begin watching.
func New(path string, reload ReloadFunc, debounce time.Duration, logger *zap.Logger) (*CatalogWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve catalog path: %w", err)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fsWatcher.Add(filepath.Dir(abs)); err != nil {
		fsWatcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &CatalogWatcher{
		path:     abs,
		reload:   reload,
		debounce: debounce,
		logger:   logger,
		watcher:  fsWatcher,
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start begins the watch loop in a goroutine.
func (w *CatalogWatcher) Start(ctx context.Context) {
	w.logger.Info("Catalog hot reloading enabled", zap.String("path", w.path))
	go w.watchLoop(ctx)
}

func (w *CatalogWatcher) watchLoop(ctx context.Context) {
	defer close(w.done)
	defer w.watcher.Close()

	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			w.logger.Debug("Catalog file changed",
				zap.String("file", event.Name),
				zap.String("operation", event.Op.String()),
			)

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, func() {
				w.fire(ctx)
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("File watcher error", zap.Error(err))

		case <-ctx.Done():
			return
		case <-w.stopCh:
			w.logger.Info("Stopping catalog watcher")
			return
		}
	}
}

func (w *CatalogWatcher) fire(ctx context.Context) {
	if err := w.reload(ctx, w.path); err != nil {
		// the previous catalog stays active
		w.logger.Error("Catalog reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.logger.Info("Catalog reloaded", zap.String("path", w.path))
}

// Stop ends the watch loop and waits for it to exit.
func (w *CatalogWatcher) Stop() {
	w.once.Do(func() { close(w.stopCh) })
	<-w.done
}
