// Package watcher polls the upload directory and publishes change events.
package watcher

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/savedrive/savedrive/internal/events"
	"github.com/savedrive/savedrive/internal/logging"
	"github.com/savedrive/savedrive/internal/metrics"
)

// Watcher watches the upload directory for out-of-band changes: files
// dropped in or removed without going through the upload endpoint. It
// publishes create/modify/delete events to the shared broadcaster so SSE
// clients see them the same way they see catalog mutations.
type Watcher struct {
	root        string
	interval    time.Duration
	broadcaster *events.Broadcaster

	mu    sync.Mutex
	state map[string]int64 // name -> mtime (unix nanos)
	done  chan struct{}
}

// New creates a new upload directory watcher.
func New(root string, interval time.Duration, broadcaster *events.Broadcaster) *Watcher {
	if interval == 0 {
		interval = 5 * time.Second
	}
	return &Watcher{
		root:        root,
		interval:    interval,
		broadcaster: broadcaster,
		state:       make(map[string]int64),
		done:        make(chan struct{}),
	}
}

// Start builds the initial state and begins polling.
func (w *Watcher) Start(ctx context.Context) error {
	if _, err := w.scan(); err != nil {
		return err
	}
	go w.watchLoop(ctx)
	return nil
}

// Stop stops the watcher.
func (w *Watcher) Stop() {
	close(w.done)
}

func (w *Watcher) watchLoop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.checkChanges()
		case <-w.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// scan reads the current directory state. It returns the fresh state map
// without touching w.state; callers decide what to do with it.
func (w *Watcher) scan() (map[string]int64, error) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return nil, err
	}

	fresh := make(map[string]int64, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if len(name) > 0 && name[0] == '.' {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		fresh[name] = info.ModTime().UnixNano()
	}

	w.mu.Lock()
	w.state = fresh
	w.mu.Unlock()
	return fresh, nil
}

func (w *Watcher) checkChanges() {
	metrics.RecordWatcherScan()

	w.mu.Lock()
	previous := w.state
	w.mu.Unlock()

	fresh, err := w.scan()
	if err != nil {
		logging.Warn("upload directory scan failed", zap.String("root", w.root), zap.Error(err))
		return
	}

	for name, mtime := range fresh {
		old, seen := previous[name]
		switch {
		case !seen:
			w.publish(events.EventCreate, name)
		case old != mtime:
			w.publish(events.EventModify, name)
		}
	}
	for name := range previous {
		if _, still := fresh[name]; !still {
			w.publish(events.EventDelete, name)
		}
	}
}

func (w *Watcher) publish(eventType, name string) {
	if w.broadcaster == nil {
		return
	}
	w.broadcaster.Publish(events.Event{
		Type: eventType,
		Path: "/uploads/" + name,
		Name: name,
	})
}
