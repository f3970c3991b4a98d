package store

import (
	"context"
	"fmt"

	"github.com/ayush/todo-api/internal/models"
)

func (s *PostgresStore) CreateTodo(ctx context.Context, ownerID int64, text string) (*models.Todo, error) {
	var t models.Todo
	err := s.pool.QueryRow(ctx,
		`INSERT INTO todos (text, completed, owner_id)
		 VALUES ($1, FALSE, $2)
		 RETURNING id, text, completed, owner_id`,
		text, ownerID,
	).Scan(&t.ID, &t.Text, &t.Completed, &t.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	return &t, nil
}

func (s *PostgresStore) ListByOwner(ctx context.Context, ownerID int64) ([]models.Todo, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, text, completed, owner_id FROM todos WHERE owner_id = $1`, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := []models.Todo{}
	for rows.Next() {
		var t models.Todo
		if err := rows.Scan(&t.ID, &t.Text, &t.Completed, &t.OwnerID); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// DeleteByIDAndOwner deletes at most one row, and only when both the id and
// the owner match. Deleting someone else's todo reports ErrNotFound exactly
// like deleting a todo that never existed.
func (s *PostgresStore) DeleteByIDAndOwner(ctx context.Context, id, ownerID int64) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM todos WHERE id = $1 AND owner_id = $2`, id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("todo %d: %w", id, ErrNotFound)
	}
	return nil
}
