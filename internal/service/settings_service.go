//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"time"

	"minerals/backend/internal/model"
	"minerals/backend/internal/repository"
	"minerals/backend/pkg/logger"
)

// Nullable is a patch field that can be left alone, set, or cleared.
// Set=false leaves the stored value; Set=true with a nil Value clears it.
type Nullable[T any] struct {
	Set   bool
	Value *T
}

func SetTo[T any](v T) Nullable[T] { return Nullable[T]{Set: true, Value: &v} }

func Clear[T any]() Nullable[T] { return Nullable[T]{Set: true} }

// SettingsPatch holds already validated values. Nil pointers are left alone.
type SettingsPatch struct {
	HourlyRate           *float64
	CurrentTask          *string
	Category             *string
	Timer                *int64
	TimerStartTime       Nullable[int64]
	ShowMinerals         *bool
	TaskHistoryMinimized *bool
	OpenLoopsMinimized   *bool
	GoalTarget           Nullable[float64]
	GoalMotivation       Nullable[string]
	GoalCreatedAt        Nullable[int64]
}

type SettingsService interface {
	// Load returns the user's settings, creating defaults on first use, and
	// advances the daily login streak.
	Load(ctx context.Context, userID string) (*model.UserData, error)
	Update(ctx context.Context, userID string, patch SettingsPatch) (*model.UserData, error)
}

type settingsService struct {
	data repository.UserDataRepository
	now  Clock
}

func NewSettingsService(data repository.UserDataRepository) SettingsService {
	return &settingsService{data: data, now: systemClock}
}

func (s *settingsService) Load(ctx context.Context, userID string) (*model.UserData, error) {
	now := s.now()
	today := utcDate(now)

	data, err := s.data.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user data: %w", err)
	}
	if data == nil {
		defaults := model.DefaultUserData(userID)
		defaults.LastLoginDate = &today
		data, err = s.data.Create(ctx, defaults)
		if err != nil {
			return nil, fmt.Errorf("create user data: %w", err)
		}
	}

	if data.LastLoginDate != nil && *data.LastLoginDate == today {
		return data, nil
	}

	streak := NextLoginStreak(data.LastLoginDate, data.LoginStreak, now)
	if err := s.data.UpdateLogin(ctx, userID, streak, today); err != nil {
		return nil, fmt.Errorf("update login streak: %w", err)
	}
	logger.Debug("login streak updated", "module", "service", "action", "update", "resource", "user_data", "result", "ok", "user_id", userID, "streak", streak)
	data.LoginStreak = streak
	data.LastLoginDate = &today
	return data, nil
}

// NextLoginStreak compares calendar dates in UTC: the same day keeps the
// streak, the previous day extends it and anything else restarts at 1.
func NextLoginStreak(lastLoginDate *string, current int, now time.Time) int {
	if lastLoginDate == nil {
		return 1
	}
	last, err := time.Parse(time.DateOnly, *lastLoginDate)
	if err != nil {
		return 1
	}
	today := now.UTC().Format(time.DateOnly)
	switch today {
	case last.Format(time.DateOnly):
		if current < 1 {
			return 1
		}
		return current
	case last.AddDate(0, 0, 1).Format(time.DateOnly):
		return current + 1
	default:
		return 1
	}
}

// Update writes only the patched columns. When the user has no row yet the
// defaults with the patch applied are inserted instead.
func (s *settingsService) Update(ctx context.Context, userID string, patch SettingsPatch) (*model.UserData, error) {
	data := model.DefaultUserData(userID)
	today := utcDate(s.now())
	data.LastLoginDate = &today

	columns := applySettingsPatch(&data, patch)

	saved, err := s.data.Save(ctx, data, columns...)
	if err != nil {
		return nil, fmt.Errorf("save user data: %w", err)
	}
	return saved, nil
}

func applySettingsPatch(d *model.UserData, p SettingsPatch) []repository.UserDataColumn {
	var cols []repository.UserDataColumn
	if p.HourlyRate != nil {
		d.HourlyRate = *p.HourlyRate
		cols = append(cols, repository.ColumnHourlyRate)
	}
	if p.CurrentTask != nil {
		d.CurrentTask = *p.CurrentTask
		cols = append(cols, repository.ColumnCurrentTask)
	}
	if p.Category != nil {
		d.Category = *p.Category
		cols = append(cols, repository.ColumnCategory)
	}
	if p.Timer != nil {
		d.Timer = *p.Timer
		cols = append(cols, repository.ColumnTimer)
	}
	if p.TimerStartTime.Set {
		d.TimerStartTime = p.TimerStartTime.Value
		cols = append(cols, repository.ColumnTimerStartTime)
	}
	if p.ShowMinerals != nil {
		d.ShowMinerals = *p.ShowMinerals
		cols = append(cols, repository.ColumnShowMinerals)
	}
	if p.TaskHistoryMinimized != nil {
		d.TaskHistoryMinimized = *p.TaskHistoryMinimized
		cols = append(cols, repository.ColumnTaskHistoryMinimized)
	}
	if p.OpenLoopsMinimized != nil {
		d.OpenLoopsMinimized = *p.OpenLoopsMinimized
		cols = append(cols, repository.ColumnOpenLoopsMinimized)
	}
	if p.GoalTarget.Set {
		d.GoalTarget = p.GoalTarget.Value
		cols = append(cols, repository.ColumnGoalTarget)
	}
	if p.GoalMotivation.Set {
		d.GoalMotivation = p.GoalMotivation.Value
		cols = append(cols, repository.ColumnGoalMotivation)
	}
	if p.GoalCreatedAt.Set {
		d.GoalCreatedAt = p.GoalCreatedAt.Value
		cols = append(cols, repository.ColumnGoalCreatedAt)
	}
	return cols
}
