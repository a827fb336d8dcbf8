//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"minerals/backend/internal/model"
)

// UserRepository stores local accounts keyed by identity subject.
type UserRepository interface {
	// Upsert creates the user or refreshes email and name. created_at is kept.
	Upsert(ctx context.Context, user model.User) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

type userRepository struct {
	db dbtx
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Upsert(ctx context.Context, user model.User) (*model.User, error) {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			name = COALESCE(excluded.name, users.name),
			updated_at = excluded.updated_at
	`, user.ID, user.Email, nullableString(user.Name), now, now)
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, user.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, email, name, created_at, updated_at FROM users WHERE id = ?
	`, id)

	var u model.User
	var name sql.NullString
	var createdAt, updatedAt string
	if err := row.Scan(&u.ID, &u.Email, &name, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	u.Name = stringPtr(name)
	u.CreatedAt, _ = parseTime(createdAt)
	u.UpdatedAt, _ = parseTime(updatedAt)
	return &u, nil
}
