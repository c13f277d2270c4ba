package server

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce groups the burst of events an editor save produces into a
// single template reload.
const reloadDebounce = 300 * time.Millisecond

// watchTemplates watches the configured templates directory and reloads the
// engine's template set when a .tmpl file changes. The returned stop function
// closes the watcher.
func (s *Server) watchTemplates(ctx context.Context) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create template watcher: %w", err)
	}

	dir := s.cfg.Docpaths.Templates
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %q: %w", dir, err)
	}

	go s.watchLoop(ctx, watcher)

	s.log.Debug(ctx, "watching templates", "dir", dir)
	return func() { watcher.Close() }, nil
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	var timer *time.Timer
	reload := func() {
		if err := s.engine.Reload(); err != nil {
			// Keep serving the previous template set until the edit parses.
			s.log.Warn(ctx, err, "template reload failed")
			return
		}
		s.log.Info(ctx, "templates reloaded")
	}

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if filepath.Ext(event.Name) != ".tmpl" {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, reload)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.log.Warn(ctx, err, "template watcher error")
		}
	}
}
