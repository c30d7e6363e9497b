package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names a task lifecycle transition.
type EventType string

// Task lifecycle event types.
const (
	TaskCreated EventType = "task.created"
	TaskUpdated EventType = "task.updated"
	TaskDeleted EventType = "task.deleted"
)

// TaskEvent records a successful mutation of a task.
type TaskEvent struct {
	// ID is a unique identifier for this event
	ID uuid.UUID `json:"id"`

	// Type is the lifecycle transition that happened
	Type EventType `json:"type"`

	// TaskID identifies the affected task
	TaskID uuid.UUID `json:"task_id"`

	// TraceID correlates the event with the request that caused it
	TraceID string `json:"trace_id,omitempty"`

	// OccurredAt is the time the event was created
	OccurredAt time.Time `json:"occurred_at"`
}

// NewTaskEvent creates a TaskEvent of the given type for taskID.
func NewTaskEvent(eventType EventType, taskID uuid.UUID, traceID string) *TaskEvent {
	return &TaskEvent{
		ID:         uuid.New(),
		Type:       eventType,
		TaskID:     taskID,
		TraceID:    traceID,
		OccurredAt: time.Now().UTC(),
	}
}

// EventHandler defines an interface for components that can handle events.
type EventHandler interface {
	// HandleEvent processes the given event within the provided context.
	// Returns an error if the event cannot be handled successfully.
	HandleEvent(ctx context.Context, event *TaskEvent) error
}

// EventHandlerFunc adapts a plain function to the EventHandler interface.
type EventHandlerFunc func(ctx context.Context, event *TaskEvent) error

// HandleEvent calls f(ctx, event).
func (f EventHandlerFunc) HandleEvent(ctx context.Context, event *TaskEvent) error {
	return f(ctx, event)
}

// EventEmitter defines an interface for components that can emit events.
type EventEmitter interface {
	// EmitEvent publishes the given event to all registered handlers.
	// Returns an error if the event cannot be emitted.
	EmitEvent(ctx context.Context, event *TaskEvent) error
}
