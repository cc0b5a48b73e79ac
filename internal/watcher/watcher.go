// Package watcher monitors the framegate config file for changes.
// When the file is rewritten it signals a reload over a channel; the run
// loop applies the new configuration between replay passes, never in the
// middle of one, so thresholds stay immutable for a run's duration.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/sensorwire/framegate/internal/ports"
)

// DefaultDebounce is the delay after a file event before a reload is
// signaled, coalescing editor write bursts into one reload.
const DefaultDebounce = 100 * time.Millisecond

// Watcher watches one config file and delivers reload signals.
type Watcher struct {
	path     string
	debounce time.Duration
	logger   ports.Logger

	reloads chan struct{}
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu    sync.Mutex
	timer *time.Timer
}

// New creates a watcher for the given config file path.
// A non-positive debounce falls back to DefaultDebounce.
func New(path string, debounce time.Duration, logger ports.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		path:     path,
		debounce: debounce,
		logger:   logger,
		reloads:  make(chan struct{}, 1),
	}
}

// Start begins watching. The directory is watched rather than the file
// itself so atomic save (write tmp, rename) is still observed.
func (w *Watcher) Start(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return err
	}

	watchCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	w.wg.Add(1)
	go w.loop(watchCtx, fw)

	w.logger.Info("watching config file", ports.String("path", w.path))
	return nil
}

// Reloads returns the channel reload signals are delivered on.
// Signals are coalesced; a slow consumer sees at most one pending signal.
func (w *Watcher) Reloads() <-chan struct{} {
	return w.reloads
}

// Stop ends the watch loop and waits for it to exit.
func (w *Watcher) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}

func (w *Watcher) loop(ctx context.Context, fw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fw.Close()

	base := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()

		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Error("config watch error", ports.Err(err))
		}
	}
}

func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		select {
		case w.reloads <- struct{}{}:
		default:
			// a reload is already pending
		}
	})
}
