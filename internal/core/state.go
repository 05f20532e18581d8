package core

import (
	"time"

	"github.com/lumipallolabs/driveinfo/internal/model"
)

// BuildPhase represents whether a build is running
type BuildPhase int

const (
	PhaseIdle BuildPhase = iota
	PhaseBuilding
)

// String returns a human-readable phase name
func (p BuildPhase) String() string {
	switch p {
	case PhaseBuilding:
		return "Reading drives"
	default:
		return ""
	}
}

// BuildState holds the state of the current or last build
type BuildState struct {
	Phase     BuildPhase
	Options   BuildOptions
	StartTime time.Time
	Total     int // drives returned by enumeration
	Rows      int // records added so far
	Failed    int // drives whose query failed
}

// IsBuilding returns true while a build is in flight
func (s BuildState) IsBuilding() bool {
	return s.Phase == PhaseBuilding
}

// Elapsed returns time since the build started
func (s BuildState) Elapsed() time.Duration {
	if s.StartTime.IsZero() {
		return 0
	}
	return time.Since(s.StartTime).Truncate(time.Millisecond)
}

// AppState holds the complete controller state (read-only view)
type AppState struct {
	Build   BuildState
	Pending bool           // a refresh is queued behind the running build
	Records []model.Record // result of the last successful build
	Err     error          // error of the last build, nil on success
}
