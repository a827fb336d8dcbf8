//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"time"

	"minerals/backend/internal/model"
	"minerals/backend/pkg/snowflake"
)

type LoopRepository interface {
	Create(ctx context.Context, loop model.OpenLoop) (*model.OpenLoop, error)
	GetByID(ctx context.Context, userID string, id int64) (*model.OpenLoop, error)
	List(ctx context.Context, userID string) ([]model.OpenLoop, error)
	// Update writes the mutable fields of an owned loop. It returns
	// sql.ErrNoRows when the loop does not belong to loop.UserID.
	Update(ctx context.Context, loop model.OpenLoop) error
	Delete(ctx context.Context, userID string, id int64) error
}

type loopRepository struct {
	db dbtx
}

func NewLoopRepository(db *sql.DB) LoopRepository {
	return &loopRepository{db: db}
}

const loopColumns = `id, user_id, name, timer, rate, is_active, timer_start_time, created_at, updated_at`

func (r *loopRepository) Create(ctx context.Context, loop model.OpenLoop) (*model.OpenLoop, error) {
	loop.ID = snowflake.NextID()
	now := time.Now().UTC()
	loop.CreatedAt = now
	loop.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO open_loops (`+loopColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, loop.ID, loop.UserID, loop.Name, loop.Timer, loop.Rate, boolToInt(loop.IsActive),
		nullableInt64(loop.TimerStartTime), formatTime(now), formatTime(now))
	if err != nil {
		return nil, err
	}
	return &loop, nil
}

func (r *loopRepository) GetByID(ctx context.Context, userID string, id int64) (*model.OpenLoop, error) {
	loops, err := r.query(ctx, `SELECT `+loopColumns+` FROM open_loops WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil || len(loops) == 0 {
		return nil, err
	}
	return &loops[0], nil
}

func (r *loopRepository) List(ctx context.Context, userID string) ([]model.OpenLoop, error) {
	return r.query(ctx, `SELECT `+loopColumns+` FROM open_loops WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
}

func (r *loopRepository) Update(ctx context.Context, loop model.OpenLoop) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE open_loops SET name = ?, timer = ?, rate = ?, is_active = ?, timer_start_time = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`, loop.Name, loop.Timer, loop.Rate, boolToInt(loop.IsActive), nullableInt64(loop.TimerStartTime),
		formatTime(time.Now()), loop.ID, loop.UserID)
	if err != nil {
		return err
	}
	return affectedOne(result)
}

func (r *loopRepository) Delete(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM open_loops WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return affectedOne(result)
}

func (r *loopRepository) query(ctx context.Context, query string, args ...interface{}) ([]model.OpenLoop, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	loops := make([]model.OpenLoop, 0)
	for rows.Next() {
		var l model.OpenLoop
		var active int
		var timerStart sql.NullInt64
		var createdAt, updatedAt string
		if err := rows.Scan(&l.ID, &l.UserID, &l.Name, &l.Timer, &l.Rate, &active, &timerStart,
			&createdAt, &updatedAt); err != nil {
			return nil, err
		}
		l.IsActive = active == 1
		l.TimerStartTime = int64Ptr(timerStart)
		l.CreatedAt, _ = parseTime(createdAt)
		l.UpdatedAt, _ = parseTime(updatedAt)
		loops = append(loops, l)
	}
	return loops, rows.Err()
}
