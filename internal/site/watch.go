// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package site

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce collapses the burst of events a site rebuild produces.
var reloadDebounce = 250 * time.Millisecond

// watchIndex reloads the engine whenever the file at path is written or
// replaced. The parent directory is watched because generators usually
// replace the file rather than write it in place. It returns nil when ctx
// ends.
func (s *Server) watchIndex(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving index path: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating index watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	s.logger.Info("watching search index", "path", abs)

	reload := make(chan struct{}, 1)
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

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("index watcher error", "err", err)

		case <-reload:
			if err := s.Reload(ctx); err != nil {
				s.logger.Warn("keeping previous search index", "err", err)
			}
		}
	}
}
