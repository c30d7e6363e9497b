package api

import (
	"time"

	"github.com/phrazzld/tasks-api/internal/api/shared"
	"github.com/phrazzld/tasks-api/internal/domain"
)

// CreateTaskRequest is the body of POST /api/v1/tasks.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"notblank"`
	Description *string `json:"description"`
}

// UpdateTaskRequest is the body of PUT /api/v1/tasks/{id}. Every field is optional;
// description may also be null to clear it.
type UpdateTaskRequest struct {
	Title       *string                 `json:"title"`
	Description shared.Nullable[string] `json:"description"`
	Completed   *bool                   `json:"completed"`
}

func (r UpdateTaskRequest) toDomain() domain.TaskUpdate {
	upd := domain.TaskUpdate{
		Title:     r.Title,
		Completed: r.Completed,
	}
	if r.Description.Set {
		upd.Description = domain.Some(r.Description.Ptr())
	}
	return upd
}

// TaskResponse is the JSON representation of a task.
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func tasksToResponse(tasks []domain.Task) []TaskResponse {
	resp := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp = append(resp, taskToResponse(&tasks[i]))
	}
	return resp
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
