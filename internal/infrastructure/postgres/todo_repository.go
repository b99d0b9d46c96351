package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"todo-api/internal/domain/entity"
	"todo-api/internal/domain/repository"
)

const todoColumns = "id, title, COALESCE(description, ''), due_date, completed, user_id, created_at, updated_at"

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

func scanTodo(row pgx.Row) (*entity.Todo, error) {
	t := &entity.Todo{}
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Completed,
		&t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, mapScanErr(err)
	}
	return t, nil
}

func (r *TodoRepository) Create(ctx context.Context, t *entity.Todo) error {
	var desc *string
	if t.Description != "" {
		desc = &t.Description
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (title, description, due_date, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, completed, created_at, updated_at
	`, t.Title, desc, t.DueDate, t.UserID)

	return row.Scan(&t.ID, &t.Completed, &t.CreatedAt, &t.UpdatedAt)
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID string, f repository.TodoFilter) ([]entity.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1`
	args := []any{userID}

	if f.Overdue {
		query += ` AND due_date < $2 AND completed = false`
		args = append(args, f.OverdueAt)
	} else if f.Completed != nil {
		query += ` AND completed = $2`
		args = append(args, *f.Completed)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]entity.Todo, 0)
	for rows.Next() {
		t := entity.Todo{}
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Completed,
			&t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepository) GetByID(ctx context.Context, id, userID string) (*entity.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	return scanTodo(row)
}

func (r *TodoRepository) Update(ctx context.Context, id, userID string, upd repository.TodoUpdate) (*entity.Todo, error) {
	// COALESCE keeps the stored value for every field the caller left out.
	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET title       = COALESCE($3, title),
		    description = COALESCE($4, description),
		    due_date    = COALESCE($5, due_date),
		    completed   = COALESCE($6, completed),
		    updated_at  = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+todoColumns+`
	`, id, userID, upd.Title, upd.Description, upd.DueDate, upd.Completed)
	return scanTodo(row)
}

func (r *TodoRepository) Delete(ctx context.Context, id, userID string) (*entity.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		DELETE FROM todos
		WHERE id = $1 AND user_id = $2
		RETURNING `+todoColumns+`
	`, id, userID)
	return scanTodo(row)
}

func (r *TodoRepository) Toggle(ctx context.Context, id, userID string) (*entity.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET completed = NOT completed, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+todoColumns+`
	`, id, userID)
	return scanTodo(row)
}

func (r *TodoRepository) CompleteOverdue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
		UPDATE todos
		SET completed = true, updated_at = $1
		WHERE due_date < $1 AND completed = false
	`, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ repository.TodoRepository = (*TodoRepository)(nil)
