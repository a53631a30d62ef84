package devloop

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch establishes the fsnotify subscription over the source, posts,
// and templates trees and forwards classified change events to the
// coordinator. fsnotify reports nothing for files that already exist
// when a watch is added, so startup never triggers a spurious
// rebuild. Watch blocks until ctx is cancelled.
func (l *Loop) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	for _, root := range []string{l.cfg.SourceDir, l.cfg.PostsDir, l.cfg.TemplatesDir} {
		if _, err := os.Stat(root); err != nil {
			l.log.Warn("not watching missing directory", "dir", root)
			continue
		}
		if err := addRecursive(watcher, root); err != nil {
			return fmt.Errorf("watching %s: %w", root, err)
		}
		l.log.Debug("watching", "dir", root)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			l.handleFSEvent(watcher, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			l.log.Warn("watcher error", "error", err)
		}
	}
}

func (l *Loop) handleFSEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	// Created directories aren't watched automatically; pick them up
	// so files added inside them are seen.
	if event.Has(fsnotify.Create) {
		if info, err := os.Lstat(event.Name); err == nil && info.IsDir() {
			if !hidden(event.Name) {
				if err := addRecursive(watcher, event.Name); err != nil {
					l.log.Warn("failed to watch new directory", "dir", event.Name, "error", err)
				}
			}
			return
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	if ev, ok := l.Classify(event.Name); ok {
		l.Notify(ev)
	}
}

// addRecursive watches root and every non-hidden directory below it.
func addRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(filepath.Base(path), ".") {
			return fs.SkipDir
		}
		return watcher.Add(path)
	})
}
