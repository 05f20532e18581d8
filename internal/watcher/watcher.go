// Package watcher reports changes to a single file made by other processes.
package watcher

// EventType represents the type of file change
type EventType int

const (
	EventModified EventType = iota
	EventRemoved
)

// String returns a short name for logging
func (t EventType) String() string {
	if t == EventRemoved {
		return "removed"
	}
	return "modified"
}

// Event represents a change to the watched file
type Event struct {
	Type EventType
	Path string
}

// send delivers an event without blocking the watch loop
func send(ch chan Event, ev Event) {
	select {
	case ch <- ev:
	default:
	}
}
