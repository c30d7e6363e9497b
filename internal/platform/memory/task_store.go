package memory

import (
	"context"
	"encoding/binary"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/logger"
	"github.com/phrazzld/tasks-api/internal/store"
)

// DefaultShardCount is the number of independently locked partitions used by
// NewTaskStore.
const DefaultShardCount = 32

type taskShard struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]domain.Task
}

// TaskStore implements store.TaskStore with a sharded map. Each shard has its
// own lock, so operations on different IDs rarely contend while operations on
// the same ID are serialized.
type TaskStore struct {
	shards []*taskShard
}

var _ store.TaskStore = (*TaskStore)(nil)

// NewTaskStore creates an empty TaskStore with DefaultShardCount shards.
func NewTaskStore() *TaskStore {
	return NewTaskStoreWithShards(DefaultShardCount)
}

// NewTaskStoreWithShards creates an empty TaskStore with n shards.
// Values below 1 are treated as 1.
func NewTaskStoreWithShards(n int) *TaskStore {
	if n < 1 {
		n = 1
	}
	shards := make([]*taskShard, n)
	for i := range shards {
		shards[i] = &taskShard{tasks: make(map[uuid.UUID]domain.Task)}
	}
	return &TaskStore{shards: shards}
}

func (s *TaskStore) shardFor(id uuid.UUID) *taskShard {
	h := binary.BigEndian.Uint64(id[8:])
	return s.shards[h%uint64(len(s.shards))]
}

// Insert stores a copy of task, replacing any task with the same ID.
func (s *TaskStore) Insert(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if task == nil {
		return store.NewStoreError("task", "insert", "task is nil", store.ErrInvalidEntity)
	}
	if err := task.Validate(); err != nil {
		logger.FromContext(ctx).Warn("rejected invalid task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return store.NewStoreError("task", "insert", "validation failed",
			errors.Join(store.ErrInvalidEntity, err))
	}

	sh := s.shardFor(task.ID)
	sh.mu.Lock()
	sh.tasks[task.ID] = task.Clone()
	sh.mu.Unlock()
	return nil
}

// Get returns a copy of the task with the given ID.
func (s *TaskStore) Get(ctx context.Context, id uuid.UUID) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	sh := s.shardFor(id)
	sh.mu.RLock()
	task, ok := sh.tasks[id]
	sh.mu.RUnlock()
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// Update applies fn to a working copy of the task under the shard's write lock
// and commits the copy only if fn succeeds and the result is still valid.
func (s *TaskStore) Update(
	ctx context.Context,
	id uuid.UUID,
	fn func(task *domain.Task) error,
) (domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return domain.Task{}, err
	}

	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	current, ok := sh.tasks[id]
	if !ok {
		return domain.Task{}, store.ErrTaskNotFound
	}

	working := current.Clone()
	if err := fn(&working); err != nil {
		return domain.Task{}, err
	}

	// ID and CreatedAt are immutable.
	working.ID = current.ID
	working.CreatedAt = current.CreatedAt

	if err := working.Validate(); err != nil {
		return domain.Task{}, store.NewStoreError("task", "update", "validation failed",
			errors.Join(store.ErrInvalidEntity, err))
	}

	sh.tasks[id] = working
	return working.Clone(), nil
}

// Remove deletes the task with the given ID.
func (s *TaskStore) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	sh := s.shardFor(id)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if _, ok := sh.tasks[id]; !ok {
		return false, nil
	}
	delete(sh.tasks, id)
	return true, nil
}

// List read-locks every shard, in index order, before copying anything so the
// result reflects a single point in time.
func (s *TaskStore) List(ctx context.Context) ([]domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, sh := range s.shards {
		sh.mu.RLock()
	}
	defer func() {
		for _, sh := range s.shards {
			sh.mu.RUnlock()
		}
	}()

	total := 0
	for _, sh := range s.shards {
		total += len(sh.tasks)
	}

	tasks := make([]domain.Task, 0, total)
	for _, sh := range s.shards {
		for _, task := range sh.tasks {
			tasks = append(tasks, task.Clone())
		}
	}
	return tasks, nil
}

// Count returns the number of stored tasks.
func (s *TaskStore) Count() int {
	n := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		n += len(sh.tasks)
		sh.mu.RUnlock()
	}
	return n
}
