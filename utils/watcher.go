package utils

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"
)

// DefaultDebounce is how long FileWatcher waits for writes to settle
const DefaultDebounce = 100 * time.Millisecond

// FileWatcher calls a handler when a single file is written, created or
// renamed into place. Bursts of events within the debounce window collapse
// into one call. The parent directory is watched so editors that replace
// the file atomically are still seen.
type FileWatcher struct {
	path     string
	handler  func(path string)
	debounce time.Duration
	logger   *slog.Logger

	watcher  *fsnotify.Watcher
	stopOnce sync.Once
	done     chan struct{}
}

// NewFileWatcher prepares a watcher for path. Call Start to begin watching.
func NewFileWatcher(path string, debounce time.Duration, logger *slog.Logger, handler func(path string)) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "[NewFileWatcher] failed to resolve %s", path)
	}
	if dir, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(dir, filepath.Base(abs))
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = slog.Default()
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "[NewFileWatcher] failed to create watcher")
	}

	return &FileWatcher{
		path:     abs,
		handler:  handler,
		debounce: debounce,
		logger:   logger,
		watcher:  w,
		done:     make(chan struct{}),
	}, nil
}

// Start watches until ctx is canceled or Stop is called
func (w *FileWatcher) Start(ctx context.Context) error {
	if err := w.watcher.Add(filepath.Dir(w.path)); err != nil {
		return errors.Wrapf(err, "[FileWatcher.Start] failed to watch %s", filepath.Dir(w.path))
	}
	go w.loop(ctx)
	return nil
}

// Stop releases the watcher. It is safe to call more than once.
func (w *FileWatcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.watcher.Close()
	})
}

func (w *FileWatcher) loop(ctx context.Context) {
	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			pending = timer.C
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", "path", w.path, "error", err)
		case <-pending:
			pending = nil
			w.logger.Debug("watched file changed", "path", w.path)
			w.handler(w.path)
		}
	}
}
