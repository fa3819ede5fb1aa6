// Package watcher notices changes to the pause record made outside the
// daemon, such as by the chargewatch CLI.
package watcher

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const debounceDelay = 100 * time.Millisecond

// Watcher emits a signal on Changes whenever the watched file is created,
// written, renamed over or removed.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	changes   chan struct{}
	done      chan struct{}
	stopOnce  sync.Once
	logger    *zap.Logger

	debounceMu sync.Mutex
	debounce   *time.Timer
}

// New creates a watcher for the file at path. The file does not need to
// exist; its parent directory does.
func New(path string, logger *zap.Logger) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		path:      filepath.Clean(path),
		changes:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		logger:    logger,
	}, nil
}

// Changes returns the channel of change signals. Bursts are coalesced.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Start starts the watcher.
func (w *Watcher) Start() error {
	// Atomic replacement renames a temp file over the record, so the
	// directory has to be watched rather than the file itself.
	if err := w.fsWatcher.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.processEvents()
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		_ = w.fsWatcher.Close()

		w.debounceMu.Lock()
		if w.debounce != nil {
			w.debounce.Stop()
		}
		w.debounceMu.Unlock()
	})
}

func (w *Watcher) processEvents() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("pause watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if filepath.Clean(event.Name) != w.path {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return
	}
	w.logger.Debug("pause record changed", zap.String("op", event.Op.String()))

	w.debounceMu.Lock()
	defer w.debounceMu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(debounceDelay, w.signal)
}

func (w *Watcher) signal() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}
