package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/repository"
)

// ValidationError carries field-level input failures to the handler layer.
// Values are either a string or a []string (accumulated rule violations).
type ValidationError struct {
	Fields map[string]any
}

func (e *ValidationError) Error() string { return "validation failed" }

func fieldError(field string, reason any) *ValidationError {
	return &ValidationError{Fields: map[string]any{field: reason}}
}

// msThreshold separates second- from millisecond-precision Unix timestamps:
// values below 10^12 are read as seconds, the rest as milliseconds.
const msThreshold = int64(1e12)

// ParseDueDate converts a raw Unix timestamp into an absolute time and
// rejects values not strictly in the future.
func ParseDueDate(raw int64, now time.Time) (time.Time, error) {
	var due time.Time
	if raw < msThreshold {
		due = time.Unix(raw, 0)
	} else {
		due = time.UnixMilli(raw)
	}
	if !due.After(now) {
		return time.Time{}, fieldError("dueDate", "Due date must be in the future")
	}
	return due, nil
}

// CreateTodoInput holds the create payload after JSON binding. DueDate is
// the wire-level Unix timestamp; nil means no due date.
type CreateTodoInput struct {
	Title       string
	Description string
	DueDate     *int64
}

// UpdateTodoInput holds partial-update fields; nil pointers were absent from
// the request body and leave the stored value untouched.
type UpdateTodoInput struct {
	Title       *string
	Description *string
	DueDate     *int64
	Completed   *bool
}

// ListTodosInput narrows a listing.
type ListTodosInput struct {
	Completed *bool
	Overdue   bool
}

// TodoService implements owner-scoped CRUD over todo records. Every method
// takes the authenticated caller's id and never exposes another user's
// records; misses surface as repository.ErrNotFound.
type TodoService struct {
	Repo   repository.TodoRepository
	Logger *logrus.Logger

	// now is swappable in tests
	now func() time.Time
}

func NewTodoService(repo repository.TodoRepository, logger *logrus.Logger) *TodoService {
	return &TodoService{Repo: repo, Logger: logger, now: time.Now}
}

func (s *TodoService) Create(ctx context.Context, userID string, in CreateTodoInput) (*entity.Todo, error) {
	if in.Title == "" {
		return nil, fieldError("title", "Title is required")
	}

	t := &entity.Todo{
		Title:       in.Title,
		Description: in.Description,
		UserID:      userID,
	}
	if in.DueDate != nil {
		due, err := ParseDueDate(*in.DueDate, s.now())
		if err != nil {
			return nil, err
		}
		t.DueDate = &due
	}

	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TodoService) List(ctx context.Context, userID string, in ListTodosInput) ([]entity.Todo, error) {
	f := repository.TodoFilter{Completed: in.Completed}
	if in.Overdue {
		f.Overdue = true
		f.OverdueAt = s.now()
	}
	return s.Repo.ListByUser(ctx, userID, f)
}

func (s *TodoService) Get(ctx context.Context, id, userID string) (*entity.Todo, error) {
	return s.Repo.GetByID(ctx, id, userID)
}

func (s *TodoService) Update(ctx context.Context, id, userID string, in UpdateTodoInput) (*entity.Todo, error) {
	if in.Title != nil && *in.Title == "" {
		return nil, fieldError("title", "Title is required")
	}

	upd := repository.TodoUpdate{
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
	}
	if in.DueDate != nil {
		due, err := ParseDueDate(*in.DueDate, s.now())
		if err != nil {
			return nil, err
		}
		upd.DueDate = &due
	}

	return s.Repo.Update(ctx, id, userID, upd)
}

func (s *TodoService) Delete(ctx context.Context, id, userID string) (*entity.Todo, error) {
	return s.Repo.Delete(ctx, id, userID)
}

func (s *TodoService) Toggle(ctx context.Context, id, userID string) (*entity.Todo, error) {
	return s.Repo.Toggle(ctx, id, userID)
}
