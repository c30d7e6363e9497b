package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// TaskStore defines the interface for task persistence.
// Implementations must be safe for concurrent use. Every method returns
// ctx.Err() without touching state when ctx is already done.
type TaskStore interface {
	// Insert adds the task, overwriting any existing task with the same ID.
	// Returns ErrInvalidEntity if the task fails domain validation.
	Insert(ctx context.Context, task *domain.Task) error

	// Get returns a snapshot of the task with the given ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Get(ctx context.Context, id uuid.UUID) (domain.Task, error)

	// Update runs fn against the stored task while holding exclusive access to
	// that entry, so concurrent updates of the same ID are serialized.
	// If fn returns an error the stored task is left unchanged and the error is
	// returned as-is. Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, id uuid.UUID, fn func(task *domain.Task) error) (domain.Task, error)

	// Remove deletes the task and reports whether anything was removed.
	Remove(ctx context.Context, id uuid.UUID) (bool, error)

	// List returns a point-in-time snapshot of every task in unspecified order.
	List(ctx context.Context) ([]domain.Task, error)

	// Count returns the number of stored tasks.
	Count() int
}
