// Package watch observes files bound to open buffers and reports when they
// change on disk, feeding the conflict-detection path (RefreshFromDisk).
package watch

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/scribe-editor/scribe/internal/log"
)

// DefaultDebounce coalesces bursts of events for one path (editors and
// build tools often rewrite files with several syscalls).
const DefaultDebounce = 100 * time.Millisecond

// Watcher reports changed paths on a channel the editor loop drains.
type Watcher struct {
	fsw      *fsnotify.Watcher
	events   chan string
	debounce time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	pending map[string]*time.Timer
	closed  bool
}

// New creates a running watcher. The events channel delivers the path of
// every file that changed or vanished, debounced per path.
func New(debounce time.Duration, logger *log.Logger) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	w := &Watcher{
		fsw:      fsw,
		events:   make(chan string, 16),
		debounce: debounce,
		logger:   logger,
		pending:  make(map[string]*time.Timer),
	}
	go w.run()
	return w, nil
}

// Events returns the channel of changed paths.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Add starts watching a file path.
func (w *Watcher) Add(path string) error {
	return w.fsw.Add(path)
}

// Remove stops watching a file path.
func (w *Watcher) Remove(path string) error {
	return w.fsw.Remove(path)
}

// Close stops the watcher; run drains the underlying watcher and then
// closes the events channel.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				w.shutdown()
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.schedule(ev.Name)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				w.shutdown()
				return
			}
			if w.logger != nil {
				w.logger.Warnf("watch error: %v", err)
			}
		}
	}
}

// shutdown closes the events channel under the same lock the debounce
// callbacks hold while sending, so a timer that already fired can never
// send on a closed channel.
func (w *Watcher) shutdown() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	for _, t := range w.pending {
		t.Stop()
	}
	w.pending = nil
	close(w.events)
}

// schedule arms or resets the per-path debounce timer.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if t, ok := w.pending[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.pending[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.pending, path)
		if w.closed {
			return
		}
		select {
		case w.events <- path:
		default:
			// The editor loop is behind; dropping is fine, the next
			// refresh will stat the file anyway.
		}
	})
}
