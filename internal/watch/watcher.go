// Package watch reloads local histogram files when they change on disk.
// It watches the containing directory (editors replace files rather than
// write in place, which drops inode-level watches) and debounces rapid
// save sequences into a single reload.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher invokes a callback when one specific file is written or created.
type Watcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	path     string
	dir      string
	onChange func()
	log      *zap.Logger

	debounce time.Duration
	timer    *time.Timer

	running bool
	doneCh  chan struct{}

	stats Stats
}

// Stats tracks watcher activity for debugging.
type Stats struct {
	Events    int
	Reloads   int
	Errors    int
	LastEvent time.Time
}

// New creates a watcher for path. onChange runs on the watcher goroutine
// after the debounce window closes; keep it cheap (the viewer sends a
// message into its own event loop).
func New(path string, onChange func(), log *zap.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		_ = fsw.Close()
		return nil, err
	}

	return &Watcher{
		watcher:  fsw,
		path:     abs,
		dir:      filepath.Dir(abs),
		onChange: onChange,
		log:      log,
		debounce: 250 * time.Millisecond,
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. Non-blocking; the watch loop runs until Stop is
// called or ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	// Only mark running once the directory is registered; otherwise the
	// loop never starts and Stop would wait on it forever.
	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Unlock()
		return err
	}
	w.running = true
	w.mu.Unlock()

	w.log.Debug("watching", zap.String("file", w.path))

	go w.loop(ctx)
	return nil
}

func (w *Watcher) loop(ctx context.Context) {
	defer close(w.doneCh)
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handle(ev)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
			w.log.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.stats.Events++
	w.stats.LastEvent = time.Now()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		w.stats.Reloads++
		w.mu.Unlock()
		w.log.Debug("file changed, reloading", zap.String("file", w.path))
		w.onChange()
	})
}

// Stop closes the watcher and waits for the loop to exit. Any pending
// debounced reload is cancelled. Safe to call whether or not Start
// succeeded; without a running loop it just releases the fsnotify handle.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	_ = w.watcher.Close()
	<-w.doneCh
}

// Stats returns a snapshot of watcher activity.
func (w *Watcher) Snapshot() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}
