// Package watcher reloads the displayed file when it changes on disk.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"text-viewer/internal/logger"
)

const component = "Watcher"

// Watch reports writes to path through onChange until ctx is cancelled.
//
// The parent directory is watched rather than the file so that editors which
// save by writing a temp file and renaming it over the original still
// trigger a reload. Bursts of events are collapsed into one call after
// debounce.
func Watch(ctx context.Context, path string, debounce time.Duration, log logger.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}

	log.Debug(component, "watching file", map[string]interface{}{"path": target})

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			log.Debug(component, "stopped watching file", map[string]interface{}{"path": target})
			return nil

		case <-fire:
			fire = nil
			onChange()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warning(component, "watch error", map[string]interface{}{
				"path":  target,
				"error": err.Error(),
			})
		}
	}
}

// FileWatcher follows at most one file at a time.
type FileWatcher struct {
	debounce time.Duration
	log      logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	path   string
}

func NewFileWatcher(debounce time.Duration, log logger.Logger) *FileWatcher {
	return &FileWatcher{debounce: debounce, log: log}
}

// Follow replaces the current watch with one on path.
func (fw *FileWatcher) Follow(path string, onChange func()) {
	fw.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	fw.mu.Lock()
	fw.cancel = cancel
	fw.done = done
	fw.path = path
	fw.mu.Unlock()

	go func() {
		defer close(done)
		if err := Watch(ctx, path, fw.debounce, fw.log, onChange); err != nil {
			fw.log.Error(component, err, map[string]interface{}{"path": path})
		}
	}()
}

// Path returns the file currently followed, if any
func (fw *FileWatcher) Path() string {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	return fw.path
}

// Stop ends the current watch and waits for it to exit
func (fw *FileWatcher) Stop() {
	fw.mu.Lock()
	cancel, done := fw.cancel, fw.done
	fw.cancel, fw.done, fw.path = nil, nil, ""
	fw.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

func (fw *FileWatcher) Shutdown() {
	fw.Stop()
}
