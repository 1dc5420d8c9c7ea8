package jwt

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce coalesces bursts of file events into one invalidation.
const DefaultWatchDebounce = 500 * time.Millisecond

// WatchKeyFiles invalidates m whenever one of paths is written, created, renamed,
// or removed. Parent directories are watched so editor-style atomic replaces
// are observed. It returns once the watcher is running; the watcher stops when
// ctx is done.
func WatchKeyFiles(ctx context.Context, m *Manager, paths ...string) error {
	return watchKeyFiles(ctx, m, DefaultWatchDebounce, paths...)
}

func watchKeyFiles(ctx context.Context, m *Manager, debounce time.Duration, paths ...string) error {
	if m == nil {
		return errors.New("jwt: manager is required")
	}

	targets := make(map[string]struct{}, len(paths))
	dirs := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		targets[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	if len(targets) == 0 {
		return errors.New("jwt: no key files to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			_ = watcher.Close()
			return err
		}
	}

	go m.watchLoop(ctx, watcher, targets, debounce)
	return nil
}

func (m *Manager) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, targets map[string]struct{}, debounce time.Duration) {
	defer watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if _, ok := targets[abs]; !ok {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}
		case <-fire:
			timer, fire = nil, nil
			m.Invalidate()
			m.logger.Info("jwt key files changed, algorithm cache invalidated")
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			m.logger.Warn("jwt key watcher error", slog.Any("error", err))
		}
	}
}
