package settings

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watch reloads the settings whenever the settings file is modified by
// another process, e.g. the user editing it by hand. It blocks until the
// context is canceled.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating settings watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory rather than the file: editors commonly replace a
	// file rather than write to it, which would orphan a watch on the file.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watching settings directory: %w", err)
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(s.path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, s.reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watching settings", "error", err)
		}
	}
}

// reload re-reads the settings file and applies it if it differs from the
// current settings. Saves made by this process are therefore not re-applied.
func (s *Store) reload() {
	loaded, err := s.read()
	if err != nil {
		s.logger.Warn("reloading settings", "error", err)
		return
	}
	s.mu.Lock()
	changed := !loaded.Equal(s.current)
	if changed {
		s.current = loaded
	}
	s.mu.Unlock()

	if changed {
		s.logger.Info("reloaded settings from file", "path", s.path)
		s.apply(loaded)
	}
}
