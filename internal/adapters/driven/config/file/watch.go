package file

import (
	"context"
	"path/filepath"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/leadscout/internal/logger"
)

// watchDelay coalesces the burst of events editors emit for one save.
const watchDelay = 100 * time.Millisecond

// Watch reloads the store whenever the config file changes on disk and then
// calls onChange. It returns once the watcher is running; watching stops when
// ctx is cancelled.
//
// The parent directory is watched rather than the file so that editors which
// save by rename are still seen.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		watcher.Close()
		return err
	}

	debounced := debounce.New(watchDelay)
	reload := func() {
		if err := s.Load(); err != nil {
			logger.Warn("reload %s: %v", s.filePath, err)
			return
		}
		logger.Debug("reloaded %s", s.filePath)
		if onChange != nil {
			onChange()
		}
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				debounced(func() {})
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(s.filePath) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
					debounced(reload)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("watch %s: %v", s.filePath, err)
			}
		}
	}()

	return nil
}
