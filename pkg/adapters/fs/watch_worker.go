package fs

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/timeoverwrite/pkg/core"
)

type watchWorker struct {
	store   *Store
	pattern string
	events  chan core.Event
	watcher *fsnotify.Watcher
}

// Watch observes fixture files under Root matching pattern. The returned
// channel is closed once ctx is cancelled and the watcher has shut down.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %s", pattern)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := s.recursiveAdd(watcher, s.Root); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	w := &watchWorker{
		store:   s,
		pattern: pattern,
		events:  make(chan core.Event, 16),
		watcher: watcher,
	}
	s.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		if s.config.ErrorHandler != nil {
			s.config.ErrorHandler(fmt.Errorf("watcher panic: %w", err))
		} else {
			s.config.Logger.Error("watcher panic", "error", err)
		}
	}))

	return w.events, nil
}

func (s *Store) recursiveAdd(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *watchWorker) run(ctx context.Context) error {
	defer close(w.events)
	defer w.store.setWatcherActive(false)
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher events channel closed")
			}
			w.process(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("watcher errors channel closed")
			}
			w.store.config.Logger.Error("fsnotify error", "error", wErr)
			if w.store.config.ErrorHandler != nil {
				w.store.config.ErrorHandler(wErr)
			}
		}
	}
}

// process filters and maps a filesystem event, following new directories.
func (w *watchWorker) process(ctx context.Context, event fsnotify.Event) {
	w.store.config.Logger.Debug("event received", "name", event.Name)

	if strings.HasPrefix(filepath.Base(event.Name), TempFilePrefix) {
		return
	}

	if event.Has(fsnotify.Create) {
		if isDir, err := statDir(event.Name); err == nil && isDir {
			if err := w.store.recursiveAdd(w.watcher, event.Name); err != nil {
				w.store.config.Logger.Warn("failed to follow new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	rel, err := filepath.Rel(w.store.Root, event.Name)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	if ok, _ := doublestar.Match(w.pattern, rel); !ok {
		return
	}

	var eType core.EventType
	switch {
	case event.Has(fsnotify.Create):
		eType = core.EventCreate
	case event.Has(fsnotify.Write):
		eType = core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		eType = core.EventDelete
	default:
		return
	}

	select {
	case w.events <- core.Event{Type: eType, Path: rel, Timestamp: time.Now().Unix()}:
	case <-ctx.Done():
	}
}
