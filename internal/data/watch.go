package data

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a store whenever its dataset file is written or replaced.
type Watcher struct {
	store    *Store
	watcher  *fsnotify.Watcher
	debounce time.Duration
}

// NewWatcher watches the directory of the store's dataset file. Watching the
// directory rather than the file survives editors that replace on save.
func NewWatcher(store *Store) (*Watcher, error) {
	if store.Path() == "" {
		return nil, fmt.Errorf("store has no dataset path to watch")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(filepath.Dir(store.Path())); err != nil {
		w.Close()
		return nil, err
	}
	return &Watcher{store: store, watcher: w, debounce: 500 * time.Millisecond}, nil
}

// Run blocks until ctx is cancelled or the watcher fails.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	target := filepath.Clean(w.store.Path())
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// spreadsheet tools write in several bursts; reload once they settle
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			if err := w.store.Reload(); err != nil {
				slog.Warn("keeping previous dataset", "err", err)
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return err
		}
	}
}
