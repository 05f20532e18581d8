package core

import (
	"github.com/lumipallolabs/driveinfo/internal/model"
	"github.com/lumipallolabs/driveinfo/internal/settings"
)

// Event represents a state change from the controller
type Event interface {
	isEvent()
}

// BuildStartedEvent is emitted once drives have been enumerated.
// Consumers clear their displayed list when they receive it.
type BuildStartedEvent struct {
	Count int // drives returned by enumeration
}

func (BuildStartedEvent) isEvent() {}

// RecordAddedEvent is emitted for every row added, in enumeration order
type RecordAddedEvent struct {
	Record model.Record
}

func (RecordAddedEvent) isEvent() {}

// DriveFailedEvent is emitted when a single drive could not be queried
type DriveFailedEvent struct {
	Name string
	Err  error
}

func (DriveFailedEvent) isEvent() {}

// BuildFailedEvent is emitted when enumeration fails; no rows follow
type BuildFailedEvent struct {
	Err *model.EnumerationError
}

func (BuildFailedEvent) isEvent() {}

// BuildCompletedEvent is emitted after the last drive has been processed
type BuildCompletedEvent struct {
	Records []model.Record
	Failed  int
}

func (BuildCompletedEvent) isEvent() {}

// SettingsChangedEvent carries a change from the settings store
type SettingsChangedEvent struct {
	Change  settings.Change
	Rebuild bool // the change affects record contents
}

func (SettingsChangedEvent) isEvent() {}
