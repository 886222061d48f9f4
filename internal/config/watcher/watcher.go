// Package watcher reloads a dataset file when it changes on disk.
//
// The containing directory is watched with fsnotify so that editors which
// replace a file through a rename are followed. Bursts of events are coalesced
// into one reload after a quiet period.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed indicates the watcher was closed.
var ErrWatcherClosed = errors.New("watcher closed")

// ReloadFunc is called after the watched file settled.
type ReloadFunc func() error

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets the quiet period before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d >= 0 {
			w.debounce = d
		}
	}
}

// WithLogger sets the logger used for reload failures.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher calls a ReloadFunc whenever one file changes.
type Watcher struct {
	fsw      *fsnotify.Watcher
	path     string
	reload   ReloadFunc
	debounce time.Duration
	logger   *slog.Logger
}

// New starts watching path.
func New(path string, reload ReloadFunc, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		path:     abs,
		reload:   reload,
		debounce: 100 * time.Millisecond,
		logger:   slog.Default().With("system", "watcher"),
	}
	for _, opt := range opts {
		opt(w)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	w.fsw = fsw
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string {
	return w.path
}

// Run dispatches reloads until ctx is done or the watcher is closed.
// Reload errors are logged and do not stop the loop.
func (w *Watcher) Run(ctx context.Context) error {
	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return ErrWatcherClosed
			}
			if !w.relevant(ev) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return ErrWatcherClosed
			}
			w.logger.Warn("watch error", "path", w.path, "error", err)

		case <-fire:
			fire = nil
			if err := w.reload(); err != nil {
				w.logger.Error("reload failed", "path", w.path, "error", err)
				continue
			}
			w.logger.Debug("reloaded", "path", w.path)
		}
	}
}

// relevant reports whether ev may have changed the watched file's content.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}

// Close stops watching. A running Run returns ErrWatcherClosed.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
