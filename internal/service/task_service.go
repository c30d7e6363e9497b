package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/events"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// TaskService provides task-related operations.
type TaskService interface {
	// CreateTask validates and stores a new task.
	CreateTask(ctx context.Context, title string, description *string) (*domain.Task, error)

	// GetTask retrieves a task by its ID.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// ListTasks returns every task in unspecified order.
	ListTasks(ctx context.Context) ([]domain.Task, error)

	// UpdateTask applies a partial update to an existing task.
	UpdateTask(ctx context.Context, id uuid.UUID, upd domain.TaskUpdate) (*domain.Task, error)

	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store   store.TaskStore
	emitter events.EventEmitter
	logger  *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if the store is nil. The emitter is optional.
func NewTaskService(
	taskStore store.TaskStore,
	emitter events.EventEmitter,
	l *slog.Logger,
) (TaskService, error) {
	if taskStore == nil {
		return nil, domain.NewValidationError("taskStore", "cannot be nil", domain.ErrValidation)
	}

	if l == nil {
		l = slog.Default()
	}

	return &taskServiceImpl{
		store:   taskStore,
		emitter: emitter,
		logger:  l.With(slog.String("component", "task_service")),
	}, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	title string,
	description *string,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(title, description)
	if err != nil {
		log.Debug("rejected task creation", slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.store.Insert(ctx, task); err != nil {
		return nil, NewTaskServiceError("create", "failed to store task", err)
	}

	log.Debug("task created", slog.String("task_id", task.ID.String()))
	s.emit(ctx, events.TaskCreated, task.ID)
	return task, nil
}

// GetTask implements TaskService.GetTask
func (s *taskServiceImpl) GetTask(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, NewTaskServiceError("get", "failed to retrieve task", err)
	}
	return &task, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.store.List(ctx)
	if err != nil {
		return nil, NewTaskServiceError("list", "failed to list tasks", err)
	}
	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask
// A missing task is reported before any validation of the update itself.
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id uuid.UUID,
	upd domain.TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.store.Update(ctx, id, func(t *domain.Task) error {
		return t.ApplyUpdate(upd)
	})
	if err != nil {
		return nil, NewTaskServiceError("update", "failed to update task", err)
	}

	log.Debug("task updated", slog.String("task_id", id.String()))
	s.emit(ctx, events.TaskUpdated, id)
	return &task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	removed, err := s.store.Remove(ctx, id)
	if err != nil {
		return NewTaskServiceError("delete", "failed to remove task", err)
	}
	if !removed {
		return NewTaskServiceError("delete", "task does not exist", store.ErrTaskNotFound)
	}

	log.Debug("task deleted", slog.String("task_id", id.String()))
	s.emit(ctx, events.TaskDeleted, id)
	return nil
}

// emit publishes a lifecycle event. Handler failures never fail the request.
func (s *taskServiceImpl) emit(ctx context.Context, eventType events.EventType, taskID uuid.UUID) {
	if s.emitter == nil {
		return
	}
	event := events.NewTaskEvent(eventType, taskID, logger.TraceID(ctx))
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("failed to emit task event",
			slog.String("event_type", string(eventType)),
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()))
	}
}
