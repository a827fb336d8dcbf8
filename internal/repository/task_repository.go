//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"minerals/backend/internal/model"
	"minerals/backend/pkg/snowflake"
)

// TaskRepository stores finished tasks. Every lookup and write is scoped by
// user so records of other users behave as missing.
type TaskRepository interface {
	Create(ctx context.Context, task model.Task) (*model.Task, error)
	List(ctx context.Context, userID string) ([]model.Task, error)
	// ListSince returns tasks with timestamp >= since, oldest first.
	ListSince(ctx context.Context, userID string, since int64) ([]model.Task, error)
	// UpdateValueEarned returns nil when the task does not exist for userID.
	UpdateValueEarned(ctx context.Context, userID string, id int64, value float64) (*model.Task, error)
	// Delete returns sql.ErrNoRows when nothing was removed.
	Delete(ctx context.Context, userID string, id int64) error
}

type taskRepository struct {
	db dbtx
}

func NewTaskRepository(db *sql.DB) TaskRepository {
	return &taskRepository{db: db}
}

const taskColumns = `id, user_id, name, category, cost, timestamp, duration, value_earned, created_at`

func (r *taskRepository) Create(ctx context.Context, task model.Task) (*model.Task, error) {
	task.ID = snowflake.NextID()
	task.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO task_history (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, task.ID, task.UserID, task.Name, task.Category, task.Cost, task.Timestamp, task.Duration,
		task.ValueEarned, formatTime(task.CreatedAt))
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, userID string) ([]model.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM task_history WHERE user_id = ? ORDER BY timestamp DESC, id DESC`, userID)
}

func (r *taskRepository) ListSince(ctx context.Context, userID string, since int64) ([]model.Task, error) {
	return r.query(ctx, `SELECT `+taskColumns+` FROM task_history WHERE user_id = ? AND timestamp >= ? ORDER BY timestamp, id`, userID, since)
}

func (r *taskRepository) UpdateValueEarned(ctx context.Context, userID string, id int64, value float64) (*model.Task, error) {
	result, err := r.db.ExecContext(ctx, `
		UPDATE task_history SET value_earned = ? WHERE id = ? AND user_id = ?
	`, value, id, userID)
	if err != nil {
		return nil, err
	}
	if err := affectedOne(result); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	tasks, err := r.query(ctx, `SELECT `+taskColumns+` FROM task_history WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil || len(tasks) == 0 {
		return nil, err
	}
	return &tasks[0], nil
}

func (r *taskRepository) Delete(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM task_history WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return affectedOne(result)
}

func (r *taskRepository) query(ctx context.Context, query string, args ...interface{}) ([]model.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		var createdAt string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Category, &t.Cost, &t.Timestamp, &t.Duration,
			&t.ValueEarned, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt, _ = parseTime(createdAt)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}
