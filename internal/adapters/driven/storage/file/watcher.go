package file

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/inkwell-labs/inkwell-cli/internal/logger"
)

// watcher invalidates cache entries when annotation files are changed
// by another process, for example a sync client replacing a file on
// disk.
type watcher struct {
	fs    *fsnotify.Watcher
	store *Store

	mu      sync.Mutex
	watched map[string]struct{}
}

// Watch starts watching the store's per-user annotation directories
// and evicts cache entries whose files change externally. It runs
// until the context is cancelled or Close is called.
func (s *Store) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	w := &watcher{
		fs:      fsw,
		store:   s,
		watched: make(map[string]struct{}),
	}
	s.watcher = w

	// Watch existing user directories; directories created later are
	// added by Save.
	root := filepath.Join(s.baseDir, "annotations")
	entries, err := os.ReadDir(root)
	if err == nil {
		for _, entry := range entries {
			if entry.IsDir() {
				w.watchDir(filepath.Join(root, entry.Name()))
			}
		}
	}

	go w.run(ctx)
	return nil
}

// Close stops the watcher if one is running.
func (s *Store) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.fs.Close()
}

// watchDir registers a directory, once.
func (w *watcher) watchDir(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, ok := w.watched[dir]; ok {
		return
	}
	if err := w.fs.Add(dir); err != nil {
		logger.Warn("file store: watching %s: %v", dir, err)
		return
	}
	w.watched[dir] = struct{}{}
	logger.Debug("file store: watching %s", dir)
}

func (w *watcher) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.fs.Close()
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.store.evictPath(event.Name)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			logger.Warn("file store: watch error: %v", err)
		}
	}
}
