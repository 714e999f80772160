// Package watcher triggers a content refresh when files in the content
// directory change. Bursts of events collapse into one refresh.
package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dgallion1/inkpost/internal/parser"
)

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

// RefreshFunc is called once per debounced burst of changes.
type RefreshFunc func(ctx context.Context) error

// Watcher watches one directory, non-recursively.
type Watcher struct {
	dir     string
	delay   time.Duration
	refresh RefreshFunc
	log     *slog.Logger
}

func New(dir string, delay time.Duration, refresh RefreshFunc, log *slog.Logger) *Watcher {
	if delay <= 0 {
		delay = 500 * time.Millisecond
	}
	return &Watcher{dir: dir, delay: delay, refresh: refresh, log: log.With("dir", dir)}
}

// Run blocks until ctx is cancelled or the watch cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	w.log.Info("watching content directory", "debounce", w.delay)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.log.Debug("content change", "file", event.Name, "op", event.Op.String())
			if timer == nil {
				timer = time.NewTimer(w.delay)
			} else {
				timer.Reset(w.delay)
			}
			fire = timer.C

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "error", err)

		case <-fire:
			fire = nil
			if err := w.refresh(ctx); err != nil {
				w.log.Error("refresh after change failed", "error", err)
				continue
			}
			w.log.Info("content refreshed after change")
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	return event.Op&relevantOps != 0 && parser.IsContentFile(event.Name)
}
