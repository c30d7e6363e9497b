package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Task is a single todo item.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Optional marks whether a patch field was supplied at all. It lets a nullable
// field distinguish "leave unchanged" from "set to null".
type Optional[T any] struct {
	Set   bool
	Value T
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

// TaskUpdate is a partial update. Nil pointers and unset optionals are left untouched.
type TaskUpdate struct {
	Title       *string
	Description Optional[*string]
	Completed   *bool
}

func now() time.Time {
	return time.Now().UTC()
}

// NewTask creates a Task with a fresh ID and matching creation/update timestamps.
// Returns ErrEmptyTitle if the title is blank after trimming.
func NewTask(title string, description *string) (*Task, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}

	ts := now()
	return &Task{
		ID:          uuid.New(),
		Title:       title,
		Description: cloneString(description),
		Completed:   false,
		CreatedAt:   ts,
		UpdatedAt:   ts,
	}, nil
}

// ApplyUpdate applies the supplied fields of upd and refreshes UpdatedAt.
// If the supplied title is blank the task is left unchanged.
func (t *Task) ApplyUpdate(upd TaskUpdate) error {
	if upd.Title != nil {
		if err := validateTitle(*upd.Title); err != nil {
			return err
		}
		t.Title = *upd.Title
	}
	if upd.Description.Set {
		t.Description = cloneString(upd.Description.Value)
	}
	if upd.Completed != nil {
		t.Completed = *upd.Completed
	}

	// UpdatedAt must move forward even when the clock has not.
	ts := now()
	if !ts.After(t.UpdatedAt) {
		ts = t.UpdatedAt.Add(time.Nanosecond)
	}
	t.UpdatedAt = ts
	return nil
}

// Clone returns a deep copy of the task.
func (t Task) Clone() Task {
	t.Description = cloneString(t.Description)
	return t
}

// Validate checks the invariants a stored task must hold.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	return validateTitle(t.Title)
}

func validateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyTitle)
	}
	return nil
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
