//go:build !darwin && !windows

package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

// PollInterval is how often the file is checked on platforms without a native backend
var PollInterval = time.Second

// Watcher polls the file's modification time and size
type Watcher struct {
	path    string
	eventCh chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// New creates a new file watcher
func New() (*Watcher, error) {
	return &Watcher{
		eventCh: make(chan Event, 16),
		done:    make(chan struct{}),
	}, nil
}

// Events returns the channel for receiving change events.
// It is closed when the watcher stops.
func (w *Watcher) Events() <-chan Event {
	return w.eventCh
}

// AddFile sets the file to watch; it does not need to exist yet
func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w.path = abs
	return nil
}

// Start begins polling
func (w *Watcher) Start() {
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer close(w.eventCh)

	modTime, size, exists := w.stat()
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.done:
			return
		case <-ticker.C:
		}

		m, s, ok := w.stat()
		switch {
		case exists && !ok:
			send(w.eventCh, Event{Type: EventRemoved, Path: w.path})
		case ok && (!exists || !m.Equal(modTime) || s != size):
			send(w.eventCh, Event{Type: EventModified, Path: w.path})
		}
		modTime, size, exists = m, s, ok
	}
}

func (w *Watcher) stat() (time.Time, int64, bool) {
	info, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}, 0, false
	}
	return info.ModTime(), info.Size(), true
}

// Stop stops the watcher
func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	w.wg.Wait()
	return nil
}
