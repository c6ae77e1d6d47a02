// SPDX-License-Identifier: MIT

package defaults

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a table must stay quiet before Watch reports it.
const DefaultDebounce = 150 * time.Millisecond

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
	logger   *slog.Logger
}

// WithDebounce sets the quiet period. Non-positive values are ignored.
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithWatchLogger routes watcher errors to l.
func WithWatchLogger(l *slog.Logger) WatchOption {
	return func(o *watchOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Watch calls onChange each time the file at path is created or written,
// once the burst of events has been quiet for the debounce period. The
// parent directory is watched so editors that save by rename are seen.
// Watch blocks until ctx is done and then returns nil.
//
// onChange runs on the watcher goroutine; callers that own a core.Graph
// should hand the notification to the goroutine that owns it.
func Watch(ctx context.Context, path string, onChange func(), opts ...WatchOption) error {
	o := watchOptions{debounce: DefaultDebounce, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("defaults: watch %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("defaults: watch: %w", err)
	}
	defer w.Close()
	if err = w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("defaults: watch %s: %w", path, err)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !relevant(ev.Op) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(o.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(o.debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			o.logger.Warn("defaults: watcher error", "path", abs, "err", err)
		case <-fire:
			fire = nil
			onChange()
		}
	}
}

func relevant(op fsnotify.Op) bool {
	return op.Has(fsnotify.Create) || op.Has(fsnotify.Write)
}
