package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/gesso"
)

// settleDelay coalesces the burst of events an editor produces on save.
const settleDelay = 100 * time.Millisecond

// watchFile calls onChange after each change to path until ctx is done.
// The parent directory is watched so that editors replacing the file by
// rename are still seen.
func watchFile(ctx context.Context, path string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	gesso.Logger().Info("watching scene", "scene", abs)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !isChange(ev, abs) {
				continue
			}
			pending = time.After(settleDelay)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			gesso.Logger().Warn("watch error", "error", err)
		case <-pending:
			pending = nil
			onChange()
		}
	}
}

func isChange(ev fsnotify.Event, path string) bool {
	if filepath.Clean(ev.Name) != path {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
