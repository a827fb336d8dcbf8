//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"minerals/backend/internal/model"
)

// UserDataRepository stores the single settings row per user.
type UserDataRepository interface {
	Get(ctx context.Context, userID string) (*model.UserData, error)
	// Create inserts data unless a row already exists, then returns the stored row.
	Create(ctx context.Context, data model.UserData) (*model.UserData, error)
	// Save inserts data when the user has no row yet. Otherwise only the
	// listed columns are overwritten, in one statement, so concurrent saves of
	// different columns and login updates never undo each other.
	Save(ctx context.Context, data model.UserData, columns ...UserDataColumn) (*model.UserData, error)
	UpdateLogin(ctx context.Context, userID string, streak int, date string) error
}

type userDataRepository struct {
	db dbtx
}

func NewUserDataRepository(db *sql.DB) UserDataRepository {
	return &userDataRepository{db: db}
}

// UserDataColumn names a settings column Save may overwrite.
type UserDataColumn string

const (
	ColumnHourlyRate           UserDataColumn = "hourly_rate"
	ColumnCurrentTask          UserDataColumn = "current_task"
	ColumnCategory             UserDataColumn = "category"
	ColumnTimer                UserDataColumn = "timer"
	ColumnTimerStartTime       UserDataColumn = "timer_start_time"
	ColumnShowMinerals         UserDataColumn = "show_minerals"
	ColumnTaskHistoryMinimized UserDataColumn = "task_history_minimized"
	ColumnOpenLoopsMinimized   UserDataColumn = "open_loops_minimized"
	ColumnGoalTarget           UserDataColumn = "goal_target"
	ColumnGoalMotivation       UserDataColumn = "goal_motivation"
	ColumnGoalCreatedAt        UserDataColumn = "goal_created_at"
)

var patchableColumns = map[UserDataColumn]bool{
	ColumnHourlyRate: true, ColumnCurrentTask: true, ColumnCategory: true,
	ColumnTimer: true, ColumnTimerStartTime: true, ColumnShowMinerals: true,
	ColumnTaskHistoryMinimized: true, ColumnOpenLoopsMinimized: true,
	ColumnGoalTarget: true, ColumnGoalMotivation: true, ColumnGoalCreatedAt: true,
}

const userDataColumns = `user_id, hourly_rate, current_task, category, timer, timer_start_time,
	show_minerals, task_history_minimized, open_loops_minimized, login_streak, last_login_date,
	goal_target, goal_motivation, goal_created_at, created_at, updated_at`

func (r *userDataRepository) Get(ctx context.Context, userID string) (*model.UserData, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userDataColumns+` FROM user_data WHERE user_id = ?`, userID)
	d, err := scanUserData(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return d, err
}

func (r *userDataRepository) Create(ctx context.Context, data model.UserData) (*model.UserData, error) {
	if err := r.write(ctx, data, `ON CONFLICT(user_id) DO NOTHING`); err != nil {
		return nil, err
	}
	return r.Get(ctx, data.UserID)
}

func (r *userDataRepository) Save(ctx context.Context, data model.UserData, columns ...UserDataColumn) (*model.UserData, error) {
	if len(columns) == 0 {
		return r.Create(ctx, data)
	}

	sets := make([]string, 0, len(columns)+1)
	seen := make(map[UserDataColumn]bool, len(columns))
	for _, col := range columns {
		if !patchableColumns[col] {
			return nil, fmt.Errorf("user_data: column %q is not patchable", col)
		}
		if seen[col] {
			continue
		}
		seen[col] = true
		sets = append(sets, fmt.Sprintf("%[1]s = excluded.%[1]s", col))
	}
	sets = append(sets, "updated_at = excluded.updated_at")

	if err := r.write(ctx, data, `ON CONFLICT(user_id) DO UPDATE SET `+strings.Join(sets, ", ")); err != nil {
		return nil, err
	}
	return r.Get(ctx, data.UserID)
}

func (r *userDataRepository) write(ctx context.Context, d model.UserData, onConflict string) error {
	now := formatTime(time.Now())
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_data (`+userDataColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`+onConflict,
		d.UserID, d.HourlyRate, d.CurrentTask, d.Category, d.Timer, nullableInt64(d.TimerStartTime),
		boolToInt(d.ShowMinerals), boolToInt(d.TaskHistoryMinimized), boolToInt(d.OpenLoopsMinimized),
		d.LoginStreak, nullableString(d.LastLoginDate),
		nullableFloat64(d.GoalTarget), nullableString(d.GoalMotivation), nullableInt64(d.GoalCreatedAt),
		now, now,
	)
	return err
}

func (r *userDataRepository) UpdateLogin(ctx context.Context, userID string, streak int, date string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE user_data SET login_streak = ?, last_login_date = ?, updated_at = ? WHERE user_id = ?
	`, streak, date, formatTime(time.Now()), userID)
	if err != nil {
		return err
	}
	return affectedOne(result)
}

func scanUserData(row *sql.Row) (*model.UserData, error) {
	var d model.UserData
	var timerStart, goalCreatedAt sql.NullInt64
	var lastLogin, motivation sql.NullString
	var goalTarget sql.NullFloat64
	var showMinerals, historyMin, loopsMin int
	var createdAt, updatedAt string
	if err := row.Scan(
		&d.UserID, &d.HourlyRate, &d.CurrentTask, &d.Category, &d.Timer, &timerStart,
		&showMinerals, &historyMin, &loopsMin, &d.LoginStreak, &lastLogin,
		&goalTarget, &motivation, &goalCreatedAt, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}
	d.TimerStartTime = int64Ptr(timerStart)
	d.ShowMinerals = showMinerals == 1
	d.TaskHistoryMinimized = historyMin == 1
	d.OpenLoopsMinimized = loopsMin == 1
	d.LastLoginDate = stringPtr(lastLogin)
	d.GoalTarget = float64Ptr(goalTarget)
	d.GoalMotivation = stringPtr(motivation)
	d.GoalCreatedAt = int64Ptr(goalCreatedAt)
	d.CreatedAt, _ = parseTime(createdAt)
	d.UpdatedAt, _ = parseTime(updatedAt)
	return &d, nil
}
