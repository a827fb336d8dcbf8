//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"time"

	"minerals/backend/internal/model"
	"minerals/backend/pkg/snowflake"
)

type IncomeRepository interface {
	Create(ctx context.Context, entry model.IncomeEntry) (*model.IncomeEntry, error)
	List(ctx context.Context, userID string) ([]model.IncomeEntry, error)
	ListSince(ctx context.Context, userID string, since int64) ([]model.IncomeEntry, error)
	Delete(ctx context.Context, userID string, id int64) error
}

type incomeRepository struct {
	db dbtx
}

func NewIncomeRepository(db *sql.DB) IncomeRepository {
	return &incomeRepository{db: db}
}

const incomeColumns = `id, user_id, amount, note, timestamp, created_at`

func (r *incomeRepository) Create(ctx context.Context, entry model.IncomeEntry) (*model.IncomeEntry, error) {
	entry.ID = snowflake.NextID()
	entry.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO income_entries (`+incomeColumns+`) VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.UserID, entry.Amount, nullableString(entry.Note), entry.Timestamp, formatTime(entry.CreatedAt))
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *incomeRepository) List(ctx context.Context, userID string) ([]model.IncomeEntry, error) {
	return r.query(ctx, `SELECT `+incomeColumns+` FROM income_entries WHERE user_id = ? ORDER BY timestamp DESC, id DESC`, userID)
}

func (r *incomeRepository) ListSince(ctx context.Context, userID string, since int64) ([]model.IncomeEntry, error) {
	return r.query(ctx, `SELECT `+incomeColumns+` FROM income_entries WHERE user_id = ? AND timestamp >= ? ORDER BY timestamp, id`, userID, since)
}

func (r *incomeRepository) Delete(ctx context.Context, userID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM income_entries WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return affectedOne(result)
}

func (r *incomeRepository) query(ctx context.Context, query string, args ...interface{}) ([]model.IncomeEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]model.IncomeEntry, 0)
	for rows.Next() {
		var e model.IncomeEntry
		var note sql.NullString
		var createdAt string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &note, &e.Timestamp, &createdAt); err != nil {
			return nil, err
		}
		e.Note = stringPtr(note)
		e.CreatedAt, _ = parseTime(createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
