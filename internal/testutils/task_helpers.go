package testutils

import (
	"context"
	"testing"

	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/require"
)

// TaskOption customizes a task built by MustCreateTaskForTest.
type TaskOption func(*domain.Task)

// WithTaskTitle overrides the default title.
func WithTaskTitle(title string) TaskOption {
	return func(t *domain.Task) {
		t.Title = title
	}
}

// WithTaskDescription sets the description.
func WithTaskDescription(description string) TaskOption {
	return func(t *domain.Task) {
		t.Description = &description
	}
}

// WithTaskCompleted marks the task as completed.
func WithTaskCompleted() TaskOption {
	return func(t *domain.Task) {
		t.Completed = true
	}
}

// MustCreateTaskForTest builds a valid task with a fresh ID.
func MustCreateTaskForTest(t *testing.T, opts ...TaskOption) *domain.Task {
	t.Helper()

	task, err := domain.NewTask("Test task", nil)
	require.NoError(t, err, "Failed to create test task")

	for _, opt := range opts {
		opt(task)
	}
	require.NoError(t, task.Validate(), "Test task options produced an invalid task")
	return task
}

// MustInsertTask builds a task and inserts it into s.
func MustInsertTask(t *testing.T, s store.TaskStore, opts ...TaskOption) *domain.Task {
	t.Helper()

	task := MustCreateTaskForTest(t, opts...)
	require.NoError(t, s.Insert(context.Background(), task), "Failed to insert test task")
	return task
}
