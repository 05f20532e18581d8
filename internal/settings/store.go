package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lumipallolabs/driveinfo/internal/logging"
	"github.com/lumipallolabs/driveinfo/internal/model"
	"github.com/lumipallolabs/driveinfo/internal/watcher"
)

// FileName is the name of the settings file inside the settings directory
const FileName = "settings.yaml"

// Store handles loading, saving and change notification for Settings
type Store struct {
	path         string
	settings     Settings
	mu           sync.RWMutex
	dirty        bool
	saveTimer    *time.Timer
	saveDuration time.Duration
	lastWritten  []byte // file contents of our own last save, to ignore our own writes

	subsMu sync.Mutex
	subs   map[chan Change]struct{}

	watcher *watcher.Watcher
	stop    chan struct{}
}

// NewStore creates a store backed by path, or DefaultPath when path is empty
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{
		path:         path,
		settings:     Defaults(),
		saveDuration: 2 * time.Second, // Debounce saves
		subs:         make(map[chan Change]struct{}),
	}
}

// DefaultPath returns the default settings file path
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".driveinfo-" + FileName
	}
	return filepath.Join(home, ".driveinfo", FileName)
}

// Path returns the settings file path
func (s *Store) Path() string {
	return s.path
}

// Load reads settings from disk, migrating a legacy store the first time
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("read settings: %w", err)
		}
		return s.upgradeLocked()
	}

	loaded, err := decode(data)
	if err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	s.settings = loaded
	s.lastWritten = data
	return nil
}

// upgradeLocked migrates the newest legacy store, if any (caller must hold lock)
func (s *Store) upgradeLocked() error {
	stores, err := findLegacyStores(filepath.Dir(s.path))
	if err != nil {
		logging.Settings.Printf("Legacy settings search failed: %v", err)
	}
	if len(stores) == 0 {
		// No settings file yet, start fresh
		s.settings = Defaults()
		return nil
	}

	newest := stores[0]
	s.settings = newest.settings
	if err := s.saveLocked(); err != nil {
		return fmt.Errorf("save migrated settings: %w", err)
	}
	logging.Settings.Printf("Upgraded settings from %s", newest.path)

	removeLegacyStores(filepath.Dir(s.path), stores)
	return nil
}

func decode(data []byte) (Settings, error) {
	loaded := Defaults()
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return Settings{}, err
	}
	return loaded.Normalize(), nil
}

// Save saves settings to disk immediately
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.saveLocked()
}

// saveLocked saves settings without acquiring the lock (caller must hold lock)
func (s *Store) saveLocked() error {
	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(s.settings)
	if err != nil {
		return err
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return err
	}
	s.dirty = false
	s.lastWritten = data
	return nil
}

// Snapshot returns a copy of the current settings
func (s *Store) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// Subscribe returns a channel receiving every change and a function that cancels the subscription
func (s *Store) Subscribe() (<-chan Change, func()) {
	ch := make(chan Change, 32)

	s.subsMu.Lock()
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, ch)
			s.subsMu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// emit sends changes to all subscribers
func (s *Store) emit(changes []Change) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()

	for _, c := range changes {
		logging.Settings.Printf("Setting changed: %#v", c)
		for ch := range s.subs {
			select {
			case ch <- c:
				continue
			default:
			}
			// Subscriber is not keeping up: drop the oldest change so the latest gets through
			select {
			case dropped := <-ch:
				logging.Settings.Printf("Subscriber full, dropped %#v", dropped)
			default:
			}
			select {
			case ch <- c:
			default:
				logging.Settings.Printf("Subscriber full, dropped %#v", c)
			}
		}
	}
}

// update applies fn, then schedules a debounced save and notifies subscribers
func (s *Store) update(fn func(*Settings)) Settings {
	s.mu.Lock()
	old := s.settings
	updated := old
	fn(&updated)
	updated = updated.Normalize()
	changes := Diff(old, updated)
	if len(changes) > 0 {
		s.settings = updated
		s.dirty = true
		s.scheduleSaveLocked()
	}
	s.mu.Unlock()

	s.emit(changes)
	return updated
}

// scheduleSaveLocked (re)starts the debounce timer (caller must hold lock)
func (s *Store) scheduleSaveLocked() {
	// Cancel any pending save timer
	if s.saveTimer != nil {
		s.saveTimer.Stop()
	}

	s.saveTimer = time.AfterFunc(s.saveDuration, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.dirty {
			if err := s.saveLocked(); err != nil {
				logging.Settings.Printf("Background save failed: %v", err)
			}
		}
	})
}

// SetUnitBase sets the divisor base for sizes
func (s *Store) SetUnitBase(base model.UnitBase) {
	s.update(func(st *Settings) { st.UnitBase = base })
}

// ToggleUnitBase switches between GB and GiB and returns the new base
func (s *Store) ToggleUnitBase() model.UnitBase {
	return s.update(func(st *Settings) { st.UnitBase = st.UnitBase.Toggle() }).UnitBase
}

// SetIncludeNotReady sets whether not-ready drives are listed
func (s *Store) SetIncludeNotReady(include bool) {
	s.update(func(st *Settings) { st.IncludeNotReady = include })
}

// ToggleIncludeNotReady flips IncludeNotReady and returns the new value
func (s *Store) ToggleIncludeNotReady() bool {
	return s.update(func(st *Settings) { st.IncludeNotReady = !st.IncludeNotReady }).IncludeNotReady
}

// SetShadeAlternateRows sets alternate row shading
func (s *Store) SetShadeAlternateRows(on bool) {
	s.update(func(st *Settings) { st.ShadeAlternateRows = on })
}

// ToggleShading flips alternate row shading and returns the new value
func (s *Store) ToggleShading() bool {
	return s.update(func(st *Settings) { st.ShadeAlternateRows = !st.ShadeAlternateRows }).ShadeAlternateRows
}

// SetKeepOnTop sets whether the window stays above others
func (s *Store) SetKeepOnTop(on bool) {
	s.update(func(st *Settings) { st.KeepOnTop = on })
}

// ToggleKeepOnTop flips KeepOnTop and returns the new value
func (s *Store) ToggleKeepOnTop() bool {
	return s.update(func(st *Settings) { st.KeepOnTop = !st.KeepOnTop }).KeepOnTop
}

// SetGridZoom sets the zoom factor, clamped to [MinGridZoom, MaxGridZoom]
func (s *Store) SetGridZoom(factor float64) {
	s.update(func(st *Settings) { st.GridZoom = factor })
}

// ZoomIn enlarges the grid by one step and returns the new factor
func (s *Store) ZoomIn() float64 {
	return s.update(func(st *Settings) { st.GridZoom += GridZoomStep }).GridZoom
}

// ZoomOut shrinks the grid by one step and returns the new factor
func (s *Store) ZoomOut() float64 {
	return s.update(func(st *Settings) { st.GridZoom -= GridZoomStep }).GridZoom
}

// SetWindowPosition records the window's top-left corner
func (s *Store) SetWindowPosition(left, top float64) {
	s.update(func(st *Settings) {
		st.WindowLeft = left
		st.WindowTop = top
	})
}

// Watch reloads the settings whenever another process rewrites the file
func (s *Store) Watch() error {
	w, err := watcher.New()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	if err := w.AddFile(s.path); err != nil {
		return err
	}

	s.mu.Lock()
	if s.watcher != nil {
		_ = s.watcher.Stop()
	}
	s.watcher = w
	s.stop = make(chan struct{})
	stop := s.stop
	s.mu.Unlock()

	w.Start()
	logging.Settings.Printf("Watching %s for external changes", s.path)

	go s.watchLoop(w, stop)
	return nil
}

func (s *Store) watchLoop(w *watcher.Watcher, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			if ev.Type == watcher.EventModified {
				if err := s.reload(); err != nil {
					logging.Settings.Printf("Reload after external change failed: %v", err)
				}
			}
		}
	}
}

// reload applies an externally edited settings file
func (s *Store) reload() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if bytes.Equal(data, s.lastWritten) {
		s.mu.Unlock()
		return nil
	}
	loaded, err := decode(data)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	changes := Diff(s.settings, loaded)
	s.settings = loaded
	s.lastWritten = data
	s.mu.Unlock()

	s.emit(changes)
	return nil
}

// Close stops watching and ensures any pending save is written
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		close(s.stop)
		_ = s.watcher.Stop()
		s.watcher = nil
	}

	if s.saveTimer != nil {
		s.saveTimer.Stop()
		s.saveTimer = nil
	}

	if s.dirty {
		return s.saveLocked()
	}
	return nil
}
