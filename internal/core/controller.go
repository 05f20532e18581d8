package core

import (
	"context"
	"sync"
	"time"

	"github.com/lumipallolabs/driveinfo/internal/logging"
	"github.com/lumipallolabs/driveinfo/internal/model"
	"github.com/lumipallolabs/driveinfo/internal/settings"
)

// Controller manages builds and settings without UI dependencies
type Controller struct {
	mu sync.RWMutex

	// State
	build   BuildState
	pending bool
	records []model.Record
	lastErr error

	// Internal services
	source   model.Source
	settings *settings.Store

	cancel context.CancelFunc
}

// NewController creates a controller reading drives from src and preferences from store
func NewController(src model.Source, store *settings.Store) *Controller {
	return &Controller{
		source:   src,
		settings: store,
	}
}

// Settings returns the settings store
func (c *Controller) Settings() *settings.Store {
	return c.settings
}

// State returns a read-only snapshot of the current state
func (c *Controller) State() AppState {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return AppState{
		Build:   c.build,
		Pending: c.pending,
		Records: append([]model.Record(nil), c.records...),
		Err:     c.lastErr,
	}
}

// Records returns the records of the last successful build
func (c *Controller) Records() []model.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]model.Record(nil), c.records...)
}

// IsBuilding returns true while a build is in flight
func (c *Controller) IsBuilding() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.build.IsBuilding()
}

// StartBuild starts a rebuild with the current settings and returns its event channel.
// The channel is closed once the build has finished and the controller state is updated.
//
// If a build is already running, the request is queued and StartBuild returns false.
// At most one request is queued; see TakePending.
func (c *Controller) StartBuild(ctx context.Context) (<-chan Event, bool) {
	c.mu.Lock()

	if c.build.IsBuilding() {
		c.pending = true
		c.mu.Unlock()
		logging.Build.Printf("Refresh queued behind running build")
		return nil, false
	}

	snap := c.settings.Snapshot()
	opts := BuildOptions{
		UnitBase:        snap.UnitBase,
		IncludeNotReady: snap.IncludeNotReady,
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.build = BuildState{
		Phase:     PhaseBuilding,
		Options:   opts,
		StartTime: time.Now(),
	}

	c.mu.Unlock()

	// Create event channel for this build
	eventCh := make(chan Event, 100)

	go c.runBuild(ctx, opts, eventCh)

	return eventCh, true
}

// runBuild executes the build in a goroutine
func (c *Controller) runBuild(ctx context.Context, opts BuildOptions, eventCh chan Event) {
	defer close(eventCh)

	emit := func(e Event) {
		c.mu.Lock()
		switch ev := e.(type) {
		case BuildStartedEvent:
			c.build.Total = ev.Count
		case RecordAddedEvent:
			c.build.Rows++
		case DriveFailedEvent:
			c.build.Failed++
		}
		c.mu.Unlock()

		select {
		case eventCh <- e:
		case <-ctx.Done():
		}
	}

	records, err := Build(ctx, c.source, opts, emit)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.build.Phase = PhaseIdle
	c.cancel()
	c.cancel = nil

	if err != nil {
		c.lastErr = err
		return
	}
	c.records = records
	c.lastErr = nil
	logging.Build.Printf("Build finished in %v: %d rows, %d failed",
		c.build.Elapsed(), c.build.Rows, c.build.Failed)
}

// TakePending reports whether a refresh was queued and clears the request
func (c *Controller) TakePending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.pending
	c.pending = false
	return p
}

// WatchSettings forwards settings changes as events until cancel is called
func (c *Controller) WatchSettings() (<-chan Event, func()) {
	changes, cancel := c.settings.Subscribe()

	eventCh := make(chan Event, 32)
	go func() {
		defer close(eventCh)
		for change := range changes {
			eventCh <- SettingsChangedEvent{
				Change:  change,
				Rebuild: NeedsRebuild(change),
			}
		}
	}()

	return eventCh, cancel
}

// NeedsRebuild returns true for changes that alter record contents
func NeedsRebuild(change settings.Change) bool {
	switch change.(type) {
	case settings.UnitBaseChanged, settings.IncludeNotReadyChanged:
		return true
	}
	return false
}

// Stop cancels a running build and flushes settings
func (c *Controller) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}
	if c.settings != nil {
		if err := c.settings.Close(); err != nil {
			logging.Settings.Printf("Failed to save settings: %v", err)
		}
	}
}
