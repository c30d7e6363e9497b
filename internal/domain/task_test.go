package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNewTask(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		title       string
		description *string
	}{
		{name: "title only", title: "Buy milk"},
		{name: "with description", title: "Write report", description: strPtr("quarterly numbers")},
		{name: "empty description", title: "Call mom", description: strPtr("")},
		{name: "surrounding whitespace kept", title: "  padded  "},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			task, err := NewTask(tc.title, tc.description)
			require.NoError(t, err)

			assert.NotEqual(t, uuid.Nil, task.ID)
			assert.Equal(t, tc.title, task.Title)
			assert.Equal(t, tc.description, task.Description)
			assert.False(t, task.Completed)
			assert.False(t, task.CreatedAt.IsZero())
			assert.Equal(t, task.CreatedAt, task.UpdatedAt)
			assert.Equal(t, time.UTC, task.CreatedAt.Location())
		})
	}
}

func TestNewTaskBlankTitle(t *testing.T) {
	t.Parallel()

	for _, title := range []string{"", "   ", "\t\n"} {
		task, err := NewTask(title, nil)
		assert.Nil(t, task)
		assert.ErrorIs(t, err, ErrEmptyTitle)
		assert.ErrorIs(t, err, ErrValidation)

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "title", vErr.Field)
	}
}

func TestNewTaskUniqueIDs(t *testing.T) {
	t.Parallel()

	const n = 1000
	seen := make(map[uuid.UUID]bool, n)
	for i := 0; i < n; i++ {
		task, err := NewTask("task", nil)
		require.NoError(t, err)
		assert.False(t, seen[task.ID], "duplicate id %s", task.ID)
		seen[task.ID] = true
	}
}

func TestNewTaskCopiesDescription(t *testing.T) {
	t.Parallel()

	desc := "original"
	task, err := NewTask("title", &desc)
	require.NoError(t, err)

	desc = "changed"
	assert.Equal(t, "original", *task.Description)
}

func TestApplyUpdate(t *testing.T) {
	t.Parallel()

	t.Run("completed only", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask("Buy milk", strPtr("2 litres"))
		require.NoError(t, err)
		before := task.UpdatedAt

		require.NoError(t, task.ApplyUpdate(TaskUpdate{Completed: boolPtr(true)}))

		assert.True(t, task.Completed)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, strPtr("2 litres"), task.Description)
		assert.True(t, task.UpdatedAt.After(before), "UpdatedAt must strictly increase")
		assert.Equal(t, task.CreatedAt, before)
	})

	t.Run("title and description", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask("old", nil)
		require.NoError(t, err)

		require.NoError(t, task.ApplyUpdate(TaskUpdate{
			Title:       strPtr("new"),
			Description: Some(strPtr("details")),
		}))

		assert.Equal(t, "new", task.Title)
		assert.Equal(t, strPtr("details"), task.Description)
		assert.False(t, task.Completed)
	})

	t.Run("description cleared with null", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask("title", strPtr("details"))
		require.NoError(t, err)

		require.NoError(t, task.ApplyUpdate(TaskUpdate{Description: Some[*string](nil)}))
		assert.Nil(t, task.Description)
	})

	t.Run("description set to empty string", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask("title", strPtr("details"))
		require.NoError(t, err)

		require.NoError(t, task.ApplyUpdate(TaskUpdate{Description: Some(strPtr(""))}))
		require.NotNil(t, task.Description)
		assert.Equal(t, "", *task.Description)
	})

	t.Run("description not supplied", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask("title", strPtr("details"))
		require.NoError(t, err)

		require.NoError(t, task.ApplyUpdate(TaskUpdate{Title: strPtr("renamed")}))
		assert.Equal(t, strPtr("details"), task.Description)
	})

	t.Run("blank title leaves task unchanged", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask("keep me", strPtr("details"))
		require.NoError(t, err)
		snapshot := task.Clone()

		err = task.ApplyUpdate(TaskUpdate{
			Title:       strPtr(""),
			Description: Some[*string](nil),
			Completed:   boolPtr(true),
		})
		assert.ErrorIs(t, err, ErrEmptyTitle)
		assert.Equal(t, snapshot, *task)
	})

	t.Run("updated_at moves forward when clock lags", func(t *testing.T) {
		t.Parallel()

		task, err := NewTask("title", nil)
		require.NoError(t, err)
		future := time.Now().UTC().Add(time.Hour)
		task.UpdatedAt = future

		require.NoError(t, task.ApplyUpdate(TaskUpdate{Completed: boolPtr(true)}))
		assert.True(t, task.UpdatedAt.After(future))
	})
}

func TestTaskClone(t *testing.T) {
	t.Parallel()

	task, err := NewTask("title", strPtr("details"))
	require.NoError(t, err)

	clone := task.Clone()
	assert.Equal(t, *task, clone)

	*clone.Description = "mutated"
	assert.Equal(t, "details", *task.Description)
}

func TestTaskValidate(t *testing.T) {
	t.Parallel()

	task, err := NewTask("title", nil)
	require.NoError(t, err)
	assert.NoError(t, task.Validate())

	noID := task.Clone()
	noID.ID = uuid.Nil
	assert.ErrorIs(t, noID.Validate(), ErrInvalidID)

	blank := task.Clone()
	blank.Title = " "
	assert.ErrorIs(t, blank.Validate(), ErrEmptyTitle)
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("id", "has invalid format", ErrInvalidID)
	assert.Equal(t, "id has invalid format", err.Error())
	assert.ErrorIs(t, err, ErrInvalidID)
	assert.ErrorIs(t, err, ErrValidation)

	bare := NewValidationError("", "something is wrong", nil)
	assert.Equal(t, "something is wrong", bare.Error())
	assert.ErrorIs(t, bare, ErrValidation)
}
