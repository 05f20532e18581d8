//go:build darwin

package watcher

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsevents"
)

// Watcher watches a file using macOS FSEvents on its parent directory
type Watcher struct {
	stream  *fsevents.EventStream
	path    string
	eventCh chan Event
	done    chan struct{}
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

func New() (*Watcher, error) {
	return &Watcher{
		eventCh: make(chan Event, 16),
		done:    make(chan struct{}),
	}, nil
}

func (w *Watcher) Events() <-chan Event {
	return w.eventCh
}

func (w *Watcher) AddFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	// FSEvents reports resolved paths (/private/var/... for /var/...)
	if resolved, err := filepath.EvalSymlinks(filepath.Dir(abs)); err == nil {
		abs = filepath.Join(resolved, filepath.Base(abs))
	}
	w.path = abs

	dir := filepath.Dir(abs)
	dev, err := fsevents.DeviceForPath(dir)
	if err != nil {
		return err
	}

	w.stream = &fsevents.EventStream{
		Paths:   []string{dir},
		Latency: 200 * time.Millisecond,
		Device:  dev,
		Flags:   fsevents.FileEvents | fsevents.NoDefer,
	}
	return nil
}

func (w *Watcher) Start() {
	if w.stream == nil {
		close(w.eventCh)
		return
	}
	w.stream.Start()
	w.wg.Add(1)
	go w.run()
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer close(w.eventCh)

	for {
		select {
		case <-w.done:
			return
		case events, ok := <-w.stream.Events:
			if !ok {
				return
			}
			for _, event := range events {
				w.handleEvent(event)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsevents.Event) {
	path := event.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if path != w.path {
		return
	}

	switch {
	case event.Flags&fsevents.ItemRemoved != 0:
		send(w.eventCh, Event{Type: EventRemoved, Path: w.path})
	case event.Flags&(fsevents.ItemModified|fsevents.ItemCreated|fsevents.ItemRenamed) != 0:
		send(w.eventCh, Event{Type: EventModified, Path: w.path})
	}
}

func (w *Watcher) Stop() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	w.mu.Unlock()

	close(w.done)
	if w.stream != nil {
		w.stream.Stop()
	}
	w.wg.Wait()
	return nil
}
