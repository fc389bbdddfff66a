// Package events carries generation progress from the generator to its
// subscribers, such as the progress TUI.
package events

import (
	"log"
	"sync/atomic"
	"time"
)

// Type represents the type of generation event.
type Type string

const (
	// RunStarted is emitted once the label config has loaded.
	RunStarted Type = "run_started"
	// AgentStarted indicates an agent's documents are being produced.
	AgentStarted Type = "agent_started"
	// DocumentWritten indicates one document was persisted.
	DocumentWritten Type = "document_written"
	// DocumentFailed indicates one document failed to render or write.
	DocumentFailed Type = "document_failed"
	// AgentSkipped indicates an agent is disabled for the label.
	AgentSkipped Type = "agent_skipped"
	// AgentFinished indicates an agent has been fully processed.
	AgentFinished Type = "agent_finished"
	// RunFinished is emitted after the run-level artifacts are written.
	RunFinished Type = "run_finished"
)

// Event is one progress notification.
type Event struct {
	Type    Type
	RunID   string
	AgentID string
	// Kind is the document kind for document events.
	Kind string
	// Path is the destination of a written document.
	Path string
	// Total is the number of agents in the run (RunStarted only).
	Total int
	// Success reports the outcome (AgentFinished and RunFinished).
	Success   bool
	Error     error
	Timestamp time.Time
}

// Emitter delivers events on a buffered channel. A nil *Emitter discards
// everything, so producers never need to check.
type Emitter struct {
	events       chan Event
	droppedCount atomic.Uint64
}

// NewEmitter creates an Emitter with the given buffer size.
func NewEmitter(bufferSize int) *Emitter {
	return &Emitter{
		events: make(chan Event, bufferSize),
	}
}

// Emit sends an event. If the channel is full it waits briefly for the
// receiver to drain before dropping the event.
func (e *Emitter) Emit(event Event) {
	if e == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	select {
	case e.events <- event:
		return
	default:
	}

	select {
	case e.events <- event:
	case <-time.After(100 * time.Millisecond):
		count := e.droppedCount.Add(1)
		if count%10 == 1 {
			log.Printf("[events] WARNING: event channel full, dropped event (total dropped: %d): type=%s", count, event.Type)
		}
	}
}

// DroppedCount returns the total number of events that have been dropped.
func (e *Emitter) DroppedCount() uint64 {
	if e == nil {
		return 0
	}
	return e.droppedCount.Load()
}

// Events returns the receive side of the channel.
func (e *Emitter) Events() <-chan Event {
	return e.events
}

// Close closes the channel. No Emit may follow.
func (e *Emitter) Close() {
	if e == nil {
		return
	}
	close(e.events)
}
