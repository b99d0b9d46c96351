package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/repository"
)

// mockTodoRepo is a mock implementation of repository.TodoRepository.
type mockTodoRepo struct {
	CreateFunc          func(ctx context.Context, t *entity.Todo) error
	ListByUserFunc      func(ctx context.Context, userID string, f repository.TodoFilter) ([]entity.Todo, error)
	GetByIDFunc         func(ctx context.Context, id, userID string) (*entity.Todo, error)
	UpdateFunc          func(ctx context.Context, id, userID string, upd repository.TodoUpdate) (*entity.Todo, error)
	DeleteFunc          func(ctx context.Context, id, userID string) (*entity.Todo, error)
	ToggleFunc          func(ctx context.Context, id, userID string) (*entity.Todo, error)
	CompleteOverdueFunc func(ctx context.Context, now time.Time) (int64, error)
}

func (m *mockTodoRepo) Create(ctx context.Context, t *entity.Todo) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	t.ID = "todo-1"
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	return nil
}

func (m *mockTodoRepo) ListByUser(ctx context.Context, userID string, f repository.TodoFilter) ([]entity.Todo, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID, f)
	}
	return nil, nil
}

func (m *mockTodoRepo) GetByID(ctx context.Context, id, userID string) (*entity.Todo, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id, userID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTodoRepo) Update(ctx context.Context, id, userID string, upd repository.TodoUpdate) (*entity.Todo, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, userID, upd)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTodoRepo) Delete(ctx context.Context, id, userID string) (*entity.Todo, error) {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id, userID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTodoRepo) Toggle(ctx context.Context, id, userID string) (*entity.Todo, error) {
	if m.ToggleFunc != nil {
		return m.ToggleFunc(ctx, id, userID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockTodoRepo) CompleteOverdue(ctx context.Context, now time.Time) (int64, error) {
	if m.CompleteOverdueFunc != nil {
		return m.CompleteOverdueFunc(ctx, now)
	}
	return 0, nil
}

func newTodoService(repo *mockTodoRepo, now time.Time) *TodoService {
	s := NewTodoService(repo, testLogger())
	s.now = func() time.Time { return now }
	return s
}

func TestParseDueDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		raw     int64
		want    time.Time
		wantErr bool
	}{
		{"seconds precision", future.Unix(), future, false},
		{"milliseconds precision", future.UnixMilli(), future, false},
		{"past seconds", now.Add(-time.Hour).Unix(), time.Time{}, true},
		{"past milliseconds", now.Add(-time.Hour).UnixMilli(), time.Time{}, true},
		{"exactly now is not in the future", now.Unix(), time.Time{}, true},
		{"zero", 0, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDueDate(tt.raw, now)
			if tt.wantErr {
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Contains(t, ve.Fields, "dueDate")
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v want %v", got, tt.want)
		})
	}
}

func TestTodoService_Create(t *testing.T) {
	now := time.Now()

	t.Run("title required", func(t *testing.T) {
		svc := newTodoService(&mockTodoRepo{}, now)
		_, err := svc.Create(context.Background(), "u-1", CreateTodoInput{})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Equal(t, "Title is required", ve.Fields["title"])
	})

	t.Run("due date converted and owner attached", func(t *testing.T) {
		var created *entity.Todo
		repo := &mockTodoRepo{
			CreateFunc: func(ctx context.Context, td *entity.Todo) error {
				created = td
				td.ID = "todo-1"
				return nil
			},
		}
		svc := newTodoService(repo, now)

		due := now.Add(time.Hour).UnixMilli()
		todo, err := svc.Create(context.Background(), "u-1", CreateTodoInput{Title: "x", DueDate: &due})
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, "u-1", created.UserID)
		require.NotNil(t, created.DueDate)
		assert.WithinDuration(t, now.Add(time.Hour), *created.DueDate, time.Second)
		assert.False(t, todo.Completed)
	})

	t.Run("past due date rejected before touching the store", func(t *testing.T) {
		repo := &mockTodoRepo{
			CreateFunc: func(ctx context.Context, td *entity.Todo) error {
				t.Fatal("store must not be called")
				return nil
			},
		}
		svc := newTodoService(repo, now)

		due := now.Add(-time.Hour).Unix()
		_, err := svc.Create(context.Background(), "u-1", CreateTodoInput{Title: "x", DueDate: &due})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "dueDate")
	})
}

func TestTodoService_Update(t *testing.T) {
	now := time.Now()

	t.Run("absent fields stay untouched", func(t *testing.T) {
		var gotUpd repository.TodoUpdate
		repo := &mockTodoRepo{
			UpdateFunc: func(ctx context.Context, id, userID string, upd repository.TodoUpdate) (*entity.Todo, error) {
				gotUpd = upd
				return &entity.Todo{ID: id, UserID: userID, Title: *upd.Title}, nil
			},
		}
		svc := newTodoService(repo, now)

		title := "new title"
		_, err := svc.Update(context.Background(), "todo-1", "u-1", UpdateTodoInput{Title: &title})
		require.NoError(t, err)

		assert.Equal(t, "new title", *gotUpd.Title)
		assert.Nil(t, gotUpd.Description)
		assert.Nil(t, gotUpd.DueDate)
		assert.Nil(t, gotUpd.Completed)
	})

	t.Run("explicit empty title rejected", func(t *testing.T) {
		svc := newTodoService(&mockTodoRepo{}, now)

		empty := ""
		_, err := svc.Update(context.Background(), "todo-1", "u-1", UpdateTodoInput{Title: &empty})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "title")
	})

	t.Run("due date revalidated", func(t *testing.T) {
		svc := newTodoService(&mockTodoRepo{}, now)

		past := now.Add(-time.Minute).Unix()
		_, err := svc.Update(context.Background(), "todo-1", "u-1", UpdateTodoInput{DueDate: &past})
		var ve *ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.Fields, "dueDate")
	})

	t.Run("not owned maps to not found", func(t *testing.T) {
		svc := newTodoService(&mockTodoRepo{}, now)

		title := "x"
		_, err := svc.Update(context.Background(), "todo-1", "someone-else", UpdateTodoInput{Title: &title})
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestTodoService_List(t *testing.T) {
	now := time.Now()

	t.Run("overdue filter pins the comparison time", func(t *testing.T) {
		var gotFilter repository.TodoFilter
		repo := &mockTodoRepo{
			ListByUserFunc: func(ctx context.Context, userID string, f repository.TodoFilter) ([]entity.Todo, error) {
				gotFilter = f
				return []entity.Todo{}, nil
			},
		}
		svc := newTodoService(repo, now)

		_, err := svc.List(context.Background(), "u-1", ListTodosInput{Overdue: true})
		require.NoError(t, err)
		assert.True(t, gotFilter.Overdue)
		assert.True(t, gotFilter.OverdueAt.Equal(now))
	})

	t.Run("completed filter passes through", func(t *testing.T) {
		var gotFilter repository.TodoFilter
		repo := &mockTodoRepo{
			ListByUserFunc: func(ctx context.Context, userID string, f repository.TodoFilter) ([]entity.Todo, error) {
				gotFilter = f
				return []entity.Todo{}, nil
			},
		}
		svc := newTodoService(repo, now)

		v := true
		_, err := svc.List(context.Background(), "u-1", ListTodosInput{Completed: &v})
		require.NoError(t, err)
		require.NotNil(t, gotFilter.Completed)
		assert.True(t, *gotFilter.Completed)
		assert.False(t, gotFilter.Overdue)
	})
}
