//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"minerals/backend/internal/model"
	"minerals/backend/internal/repository"
)

// DailyOutcome aggregates one UTC calendar day.
type DailyOutcome struct {
	Date   string
	Earned float64
	Hours  float64
	Tasks  int
}

// Outcomes summarizes earnings since the goal was set. Everything is zero
// when no goal exists.
type Outcomes struct {
	GoalTarget     *float64
	GoalMotivation *string
	GoalCreatedAt  *int64
	TotalEarned    float64
	TaskEarned     float64
	IncomeEarned   float64
	Hours          float64
	EffectiveRate  float64
	TopTask        *model.Task
	DaysSinceGoal  int
	Progress       float64
	Daily          []DailyOutcome
}

type OutcomeService interface {
	// Get is pro-only and fails with ErrProRequired otherwise.
	Get(ctx context.Context, userID string) (*Outcomes, error)
}

type outcomeService struct {
	data          repository.UserDataRepository
	tasks         repository.TaskRepository
	income        repository.IncomeRepository
	subscriptions SubscriptionService
	now           Clock
}

func NewOutcomeService(
	data repository.UserDataRepository,
	tasks repository.TaskRepository,
	income repository.IncomeRepository,
	subscriptions SubscriptionService,
) OutcomeService {
	return &outcomeService{data: data, tasks: tasks, income: income, subscriptions: subscriptions, now: systemClock}
}

func (s *outcomeService) Get(ctx context.Context, userID string) (*Outcomes, error) {
	pro, err := s.subscriptions.IsPro(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !pro {
		return nil, ErrProRequired
	}

	data, err := s.data.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user data: %w", err)
	}
	out := &Outcomes{Daily: []DailyOutcome{}}
	if data == nil || data.GoalCreatedAt == nil {
		return out, nil
	}
	out.GoalTarget = data.GoalTarget
	out.GoalMotivation = data.GoalMotivation
	out.GoalCreatedAt = data.GoalCreatedAt

	since := *data.GoalCreatedAt
	tasks, err := s.tasks.ListSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	entries, err := s.income.ListSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}

	ComputeOutcomes(out, tasks, entries, since, s.now())
	return out, nil
}

// ComputeOutcomes fills the totals of out from records at or after since.
func ComputeOutcomes(out *Outcomes, tasks []model.Task, entries []model.IncomeEntry, since int64, now time.Time) {
	days := make(map[string]*DailyOutcome)
	day := func(ts int64) *DailyOutcome {
		key := utcDate(time.UnixMilli(ts))
		d, ok := days[key]
		if !ok {
			d = &DailyOutcome{Date: key}
			days[key] = d
		}
		return d
	}

	var seconds int64
	for i := range tasks {
		t := tasks[i]
		if t.Timestamp < since {
			continue
		}
		out.TaskEarned += t.ValueEarned
		seconds += t.Duration
		if t.ValueEarned > 0 && (out.TopTask == nil || t.ValueEarned > out.TopTask.ValueEarned) {
			top := t
			out.TopTask = &top
		}
		d := day(t.Timestamp)
		d.Earned += t.ValueEarned
		d.Hours += float64(t.Duration) / 3600
		d.Tasks++
	}
	for _, e := range entries {
		if e.Timestamp < since {
			continue
		}
		out.IncomeEarned += e.Amount
		day(e.Timestamp).Earned += e.Amount
	}

	out.TotalEarned = out.TaskEarned + out.IncomeEarned
	out.Hours = float64(seconds) / 3600
	if out.Hours > 0 {
		out.EffectiveRate = out.TotalEarned / out.Hours
	}
	if elapsed := now.UnixMilli() - since; elapsed > 0 {
		out.DaysSinceGoal = int(elapsed / (24 * time.Hour).Milliseconds())
	}
	if out.GoalTarget != nil && *out.GoalTarget > 0 {
		out.Progress = out.TotalEarned / *out.GoalTarget
	}

	out.Daily = make([]DailyOutcome, 0, len(days))
	for _, d := range days {
		out.Daily = append(out.Daily, *d)
	}
	sort.Slice(out.Daily, func(i, j int) bool { return out.Daily[i].Date < out.Daily[j].Date })
}
