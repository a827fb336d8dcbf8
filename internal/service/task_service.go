//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"minerals/backend/internal/model"
	"minerals/backend/internal/repository"
)

// TaskInput is a validated finished task. A nil Timestamp means now.
type TaskInput struct {
	Name        string
	Category    string
	Cost        float64
	Duration    int64
	ValueEarned float64
	Timestamp   *int64
}

type TaskService interface {
	List(ctx context.Context, userID string) ([]model.Task, error)
	Create(ctx context.Context, userID string, input TaskInput) (*model.Task, error)
	UpdateValueEarned(ctx context.Context, userID string, id int64, value float64) (*model.Task, error)
	Delete(ctx context.Context, userID string, id int64) error
}

type taskService struct {
	tasks repository.TaskRepository
	now   Clock
}

func NewTaskService(tasks repository.TaskRepository) TaskService {
	return &taskService{tasks: tasks, now: systemClock}
}

func (s *taskService) List(ctx context.Context, userID string) ([]model.Task, error) {
	tasks, err := s.tasks.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

func (s *taskService) Create(ctx context.Context, userID string, input TaskInput) (*model.Task, error) {
	ts := s.now().UnixMilli()
	if input.Timestamp != nil {
		ts = *input.Timestamp
	}
	task, err := s.tasks.Create(ctx, model.Task{
		UserID:      userID,
		Name:        input.Name,
		Category:    input.Category,
		Cost:        input.Cost,
		Timestamp:   ts,
		Duration:    input.Duration,
		ValueEarned: input.ValueEarned,
	})
	if err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}
	return task, nil
}

func (s *taskService) UpdateValueEarned(ctx context.Context, userID string, id int64, value float64) (*model.Task, error) {
	task, err := s.tasks.UpdateValueEarned(ctx, userID, id, value)
	if err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	if task == nil {
		return nil, ErrNotFound
	}
	return task, nil
}

func (s *taskService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.tasks.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
