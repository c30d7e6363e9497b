package memory_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/tasks-api/internal/domain"
	"github.com/phrazzld/tasks-api/internal/platform/memory"
	"github.com/phrazzld/tasks-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTask(t *testing.T, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, nil)
	require.NoError(t, err)
	return task
}

func TestTaskStore_InsertGet(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewTaskStore()
	desc := "with description"
	task, err := domain.NewTask("Buy milk", &desc)
	require.NoError(t, err)

	require.NoError(t, s.Insert(ctx, task))

	got, err := s.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, *task, got)

	// The stored value is a snapshot, not an alias of the caller's task.
	*task.Description = "changed by caller"
	got.Title = "changed by reader"
	again, err := s.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", again.Title)
	assert.Equal(t, "with description", *again.Description)
}

func TestTaskStore_InsertOverwrites(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewTaskStore()
	task := newTask(t, "first")
	require.NoError(t, s.Insert(ctx, task))

	replacement := task.Clone()
	replacement.Title = "second"
	require.NoError(t, s.Insert(ctx, &replacement))

	got, err := s.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "second", got.Title)
	assert.Equal(t, 1, s.Count())
}

func TestTaskStore_InsertInvalid(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewTaskStore()

	err := s.Insert(ctx, nil)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)

	blank := newTask(t, "valid").Clone()
	blank.Title = "   "
	err = s.Insert(ctx, &blank)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.ErrorIs(t, err, domain.ErrEmptyTitle)
	assert.Zero(t, s.Count())
}

func TestTaskStore_GetMissing(t *testing.T) {
	t.Parallel()

	_, err := memory.NewTaskStore().Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.True(t, store.IsNotFoundError(err))
}

func TestTaskStore_Update(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("applies mutation", func(t *testing.T) {
		t.Parallel()

		s := memory.NewTaskStore()
		task := newTask(t, "title")
		require.NoError(t, s.Insert(ctx, task))

		updated, err := s.Update(ctx, task.ID, func(t *domain.Task) error {
			t.Completed = true
			return nil
		})
		require.NoError(t, err)
		assert.True(t, updated.Completed)

		got, err := s.Get(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("failed mutation leaves record unchanged", func(t *testing.T) {
		t.Parallel()

		s := memory.NewTaskStore()
		task := newTask(t, "keep")
		require.NoError(t, s.Insert(ctx, task))
		before, err := s.Get(ctx, task.ID)
		require.NoError(t, err)

		title := ""
		_, err = s.Update(ctx, task.ID, func(t *domain.Task) error {
			t.Completed = true
			return t.ApplyUpdate(domain.TaskUpdate{Title: &title})
		})
		assert.ErrorIs(t, err, domain.ErrEmptyTitle)

		after, err := s.Get(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("invalid result is rejected", func(t *testing.T) {
		t.Parallel()

		s := memory.NewTaskStore()
		task := newTask(t, "keep")
		require.NoError(t, s.Insert(ctx, task))

		_, err := s.Update(ctx, task.ID, func(t *domain.Task) error {
			t.Title = ""
			return nil
		})
		assert.ErrorIs(t, err, store.ErrInvalidEntity)

		got, err := s.Get(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "keep", got.Title)
	})

	t.Run("id and created_at are immutable", func(t *testing.T) {
		t.Parallel()

		s := memory.NewTaskStore()
		task := newTask(t, "title")
		require.NoError(t, s.Insert(ctx, task))

		updated, err := s.Update(ctx, task.ID, func(t *domain.Task) error {
			t.ID = uuid.New()
			t.CreatedAt = t.CreatedAt.Add(-1)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, task.ID, updated.ID)
		assert.Equal(t, task.CreatedAt, updated.CreatedAt)
		assert.Equal(t, 1, s.Count())
	})

	t.Run("missing task", func(t *testing.T) {
		t.Parallel()

		called := false
		_, err := memory.NewTaskStore().Update(ctx, uuid.New(), func(*domain.Task) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.False(t, called)
	})
}

func TestTaskStore_Remove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewTaskStore()
	task := newTask(t, "title")
	require.NoError(t, s.Insert(ctx, task))

	removed, err := s.Remove(ctx, task.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = s.Get(ctx, task.ID)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)

	removed, err = s.Remove(ctx, task.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTaskStore_List(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewTaskStoreWithShards(4)

	empty, err := s.List(ctx)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	want := make(map[uuid.UUID]string)
	for i := 0; i < 50; i++ {
		task := newTask(t, fmt.Sprintf("task %d", i))
		require.NoError(t, s.Insert(ctx, task))
		want[task.ID] = task.Title
	}

	tasks, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 50)
	for _, task := range tasks {
		assert.Equal(t, want[task.ID], task.Title)
	}
	assert.Equal(t, 50, s.Count())
}

func TestTaskStore_CancelledContext(t *testing.T) {
	t.Parallel()

	s := memory.NewTaskStore()
	task := newTask(t, "title")
	require.NoError(t, s.Insert(context.Background(), task))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Insert(ctx, newTask(t, "other")), context.Canceled)
	_, err := s.Get(ctx, task.ID)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Update(ctx, task.ID, func(*domain.Task) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Remove(ctx, task.ID)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	assert.Equal(t, 1, s.Count(), "cancelled operations must not touch state")
}

func TestTaskStore_ShardCountFloor(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewTaskStoreWithShards(0)
	task := newTask(t, "title")
	require.NoError(t, s.Insert(ctx, task))
	_, err := s.Get(ctx, task.ID)
	assert.NoError(t, err)
}

// TestTaskStore_ConcurrentUpdates checks that concurrent read-modify-write
// cycles on the same ID are serialized and none is lost.
func TestTaskStore_ConcurrentUpdates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewTaskStore()
	task := newTask(t, "0")
	require.NoError(t, s.Insert(ctx, task))

	const workers = 64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, task.ID, func(t *domain.Task) error {
				var n int
				if _, err := fmt.Sscanf(t.Title, "%d", &n); err != nil {
					return err
				}
				title := fmt.Sprintf("%d", n+1)
				return t.ApplyUpdate(domain.TaskUpdate{Title: &title})
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("%d", workers), got.Title)
}

// TestTaskStore_ConcurrentMixed exercises every operation from many goroutines
// at once; run with -race to catch unsynchronized access.
func TestTaskStore_ConcurrentMixed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := memory.NewTaskStoreWithShards(8)

	const workers = 16
	const perWorker = 50
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				task, err := domain.NewTask(fmt.Sprintf("w%d-%d", w, i), nil)
				if err != nil {
					t.Error(err)
					return
				}
				if err := s.Insert(ctx, task); err != nil {
					t.Error(err)
					return
				}
				if _, err := s.Update(ctx, task.ID, func(t *domain.Task) error {
					t.Completed = true
					return nil
				}); err != nil {
					t.Error(err)
					return
				}
				tasks, err := s.List(ctx)
				if err != nil {
					t.Error(err)
					return
				}
				for _, listed := range tasks {
					if listed.Title == "" || listed.ID == uuid.Nil {
						t.Error(errors.New("list returned a partially constructed task"))
						return
					}
				}
				if i%2 == 0 {
					if _, err := s.Remove(ctx, task.ID); err != nil {
						t.Error(err)
						return
					}
				}
			}
		}(w)
	}
	wg.Wait()

	assert.Equal(t, workers*perWorker/2, s.Count())
	tasks, err := s.List(ctx)
	require.NoError(t, err)
	for _, task := range tasks {
		assert.True(t, task.Completed)
	}
}

func preloadTasks(b *testing.B, s *memory.TaskStore, n int) []uuid.UUID {
	b.Helper()
	ctx := context.Background()
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		task, err := domain.NewTask(fmt.Sprintf("task %d", i), nil)
		require.NoError(b, err)
		require.NoError(b, s.Insert(ctx, task))
		ids = append(ids, task.ID)
	}
	return ids
}

func BenchmarkTaskStore_Insert(b *testing.B) {
	ctx := context.Background()
	s := memory.NewTaskStore()
	desc := "benchmark description"

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		task, err := domain.NewTask("Benchmark task", &desc)
		if err != nil {
			b.Fatal(err)
		}
		if err := s.Insert(ctx, task); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkTaskStore_Get(b *testing.B) {
	ctx := context.Background()
	s := memory.NewTaskStore()
	ids := preloadTasks(b, s, 1000)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for j := 0; j < 100; j++ {
			if _, err := s.Get(ctx, ids[j]); err != nil {
				b.Fatal(err)
			}
		}
	}
}

func BenchmarkTaskStore_UpdateParallel(b *testing.B) {
	ctx := context.Background()
	s := memory.NewTaskStore()
	ids := preloadTasks(b, s, 1000)
	toggle := func(t *domain.Task) error {
		t.Completed = !t.Completed
		return nil
	}

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		// Each goroutine starts at a different offset so load spreads across shards.
		i := uuid.New().ID()
		for pb.Next() {
			if _, err := s.Update(ctx, ids[i%uint32(len(ids))], toggle); err != nil {
				b.Error(err)
				return
			}
			i++
		}
	})
}
