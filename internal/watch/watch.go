// Package watch reloads the shortcut catalog when its file changes on disk.
//
// The watcher monitors the catalog file's parent directory, since most
// editors replace files by rename, and coalesces rapid change bursts with a
// debounce timer before invoking the reload callback.
package watch

import (
	"errors"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned by Start after Close.
var ErrWatcherClosed = errors.New("watch: watcher is closed")

// DefaultDebounce is the quiet period after the last change before the
// reload callback fires.
const DefaultDebounce = 200 * time.Millisecond

// ReloadFunc is invoked after the watched file settles. Errors are logged,
// not propagated; a broken edit must not stop future reloads.
type ReloadFunc func(path string) error

// Watcher watches a single file for modification.
type Watcher struct {
	path     string
	reload   ReloadFunc
	debounce time.Duration
	log      *slog.Logger

	mu      sync.Mutex
	fsw     *fsnotify.Watcher
	timer   *time.Timer
	closed  bool
	done    chan struct{}
	running sync.WaitGroup
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce overrides the debounce duration.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(log *slog.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

// New creates a watcher for path that calls reload after changes settle.
func New(path string, reload ReloadFunc, opts ...Option) *Watcher {
	w := &Watcher{
		path:     path,
		reload:   reload,
		debounce: DefaultDebounce,
		log:      slog.Default(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start begins watching. It returns once the watch is established; events
// are processed on a background goroutine until Close.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrWatcherClosed
	}
	if w.fsw != nil {
		return nil
	}

	abs, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	w.path = abs

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return err
	}
	w.fsw = fsw

	w.running.Add(1)
	go w.loop()
	return nil
}

func (w *Watcher) loop() {
	defer w.running.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("catalog watch error", "path", w.path, "error", err)
		}
	}
}

// schedule arms (or re-arms) the debounce timer.
func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.fire)
}

func (w *Watcher) fire() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.mu.Unlock()

	if err := w.reload(w.path); err != nil {
		w.log.Warn("catalog reload failed", "path", w.path, "error", err)
		return
	}
	w.log.Info("catalog reloaded", "path", w.path)
}

// Close stops watching and waits for the event loop to exit. A pending
// debounce is dropped.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	fsw := w.fsw
	close(w.done)
	w.mu.Unlock()

	var err error
	if fsw != nil {
		err = fsw.Close()
		w.running.Wait()
	}
	return err
}
