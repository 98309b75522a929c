package storage

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/taskhive/taskhive/internal/apperr"
	taskmodel "github.com/taskhive/taskhive/internal/models/task"
)

func (s *PostgresStore) CreateTask(ctx context.Context, t *taskmodel.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, status, priority, due_date, category, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.Exec(ctx, query,
		t.ID,
		t.UserID,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.DueDate,
		t.Category,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	return nil
}

func (s *PostgresStore) GetTask(ctx context.Context, taskID string) (*taskmodel.Task, error) {
	query := `
		SELECT id, user_id, title, COALESCE(description, ''), status, priority, due_date, COALESCE(category, ''), created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	var t taskmodel.Task
	err := s.db.QueryRow(ctx, query, taskID).Scan(
		&t.ID,
		&t.UserID,
		&t.Title,
		&t.Description,
		&t.Status,
		&t.Priority,
		&t.DueDate,
		&t.Category,
		&t.CreatedAt,
		&t.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	return &t, nil
}

func (s *PostgresStore) ListTasks(ctx context.Context, ownerID string, filter ListFilter) ([]*taskmodel.Task, error) {
	limit := filter.Limit
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	var b strings.Builder
	b.WriteString(`
		SELECT id, user_id, title, COALESCE(description, ''), status, priority, due_date, COALESCE(category, ''), created_at, updated_at
		FROM tasks
		WHERE user_id = $1`)

	args := []interface{}{ownerID}
	if filter.Status != "" {
		args = append(args, strings.ToLower(filter.Status))
		b.WriteString(" AND status = $" + strconv.Itoa(len(args)))
	}
	if filter.Priority != "" {
		args = append(args, strings.ToLower(filter.Priority))
		b.WriteString(" AND priority = $" + strconv.Itoa(len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		n := strconv.Itoa(len(args))
		b.WriteString(" AND (title ILIKE $" + n + " OR description ILIKE $" + n + ")")
	}

	// created_at tracks insertion order
	args = append(args, limit)
	b.WriteString(" ORDER BY created_at LIMIT $" + strconv.Itoa(len(args)))
	args = append(args, filter.Skip)
	b.WriteString(" OFFSET $" + strconv.Itoa(len(args)))

	rows, err := s.db.Query(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*taskmodel.Task, 0)
	for rows.Next() {
		var t taskmodel.Task
		err := rows.Scan(
			&t.ID,
			&t.UserID,
			&t.Title,
			&t.Description,
			&t.Status,
			&t.Priority,
			&t.DueDate,
			&t.Category,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tasks: %w", err)
	}

	return tasks, nil
}

func (s *PostgresStore) UpdateTask(ctx context.Context, t *taskmodel.Task) error {
	query := `
		UPDATE tasks
		SET title = $1, description = $2, status = $3, priority = $4,
			due_date = $5, category = $6, updated_at = $7
		WHERE id = $8
	`

	cmdTag, err := s.db.Exec(ctx, query,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.DueDate,
		t.Category,
		t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: task %s", apperr.ErrNotFound, t.ID)
	}

	return nil
}

func (s *PostgresStore) DeleteTask(ctx context.Context, taskID string) error {
	cmdTag, err := s.db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, taskID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: task %s", apperr.ErrNotFound, taskID)
	}

	return nil
}

func (s *PostgresStore) TaskStats(ctx context.Context, ownerID string) (*Stats, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'completed'),
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'active' AND due_date IS NOT NULL AND due_date < NOW()),
			COUNT(*) FILTER (WHERE priority = 'urgent'),
			COUNT(*) FILTER (WHERE priority = 'high')
		FROM tasks
		WHERE user_id = $1
	`

	var stats Stats
	err := s.db.QueryRow(ctx, query, ownerID).Scan(
		&stats.Total,
		&stats.Completed,
		&stats.Active,
		&stats.Overdue,
		&stats.Urgent,
		&stats.HighPriority,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to compute task stats: %w", err)
	}

	return &stats, nil
}
