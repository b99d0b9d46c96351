package repository

import (
	"context"
	"errors"
	"time"

	"todo-api/internal/domain/entity"
)

// ErrNotFound is returned when a record does not exist or is not visible to
// the caller. Ownership misses map to it on purpose so non-owners cannot
// distinguish "absent" from "someone else's".
var ErrNotFound = errors.New("not found")

// ErrDuplicateEmail is returned when an insert violates the unique email
// constraint.
var ErrDuplicateEmail = errors.New("email already registered")

// TodoFilter narrows a listing. Both filters are optional.
type TodoFilter struct {
	Completed *bool
	// Overdue selects due_date < OverdueAt AND NOT completed. It overrides
	// Completed when set, matching the query semantics of the HTTP surface.
	Overdue   bool
	OverdueAt time.Time
}

// TodoUpdate carries partial-update fields; nil pointers leave the stored
// value untouched.
type TodoUpdate struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
}

// TodoRepository defines the interface for todo-related database operations.
// Every owner-facing method takes the owning user's id and scopes the query
// by it.
type TodoRepository interface {
	Create(ctx context.Context, t *entity.Todo) error
	ListByUser(ctx context.Context, userID string, f TodoFilter) ([]entity.Todo, error)
	GetByID(ctx context.Context, id, userID string) (*entity.Todo, error)
	Update(ctx context.Context, id, userID string, upd TodoUpdate) (*entity.Todo, error)
	Delete(ctx context.Context, id, userID string) (*entity.Todo, error)
	Toggle(ctx context.Context, id, userID string) (*entity.Todo, error)

	// CompleteOverdue marks every overdue incomplete todo as completed and
	// returns the number of affected rows. It is the only operation that is
	// not scoped to an owner.
	CompleteOverdue(ctx context.Context, now time.Time) (int64, error)
}
