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

const (
	DefaultLoopName = "New Loop"
	DefaultLoopRate = 1000.0
)

// LoopInput carries validated loop fields. On update nil fields keep their
// stored value; on create they take the defaults.
type LoopInput struct {
	Name           *string
	Timer          *int64
	Rate           *float64
	IsActive       *bool
	TimerStartTime Nullable[int64]
}

type LoopService interface {
	List(ctx context.Context, userID string) ([]model.OpenLoop, error)
	// Create always stores an inactive loop.
	Create(ctx context.Context, userID string, input LoopInput) (*model.OpenLoop, error)
	Update(ctx context.Context, userID string, id int64, input LoopInput) (*model.OpenLoop, error)
	Delete(ctx context.Context, userID string, id int64) error
}

type loopService struct {
	loops repository.LoopRepository
}

func NewLoopService(loops repository.LoopRepository) LoopService {
	return &loopService{loops: loops}
}

func (s *loopService) List(ctx context.Context, userID string) ([]model.OpenLoop, error) {
	loops, err := s.loops.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list loops: %w", err)
	}
	return loops, nil
}

func (s *loopService) Create(ctx context.Context, userID string, input LoopInput) (*model.OpenLoop, error) {
	loop := model.OpenLoop{
		UserID: userID,
		Name:   DefaultLoopName,
		Rate:   DefaultLoopRate,
	}
	if input.Name != nil && *input.Name != "" {
		loop.Name = *input.Name
	}
	if input.Timer != nil {
		loop.Timer = *input.Timer
	}
	if input.Rate != nil {
		loop.Rate = *input.Rate
	}
	if input.TimerStartTime.Set {
		loop.TimerStartTime = input.TimerStartTime.Value
	}

	created, err := s.loops.Create(ctx, loop)
	if err != nil {
		return nil, fmt.Errorf("create loop: %w", err)
	}
	return created, nil
}

func (s *loopService) Update(ctx context.Context, userID string, id int64, input LoopInput) (*model.OpenLoop, error) {
	loop, err := s.loops.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("get loop: %w", err)
	}
	if loop == nil {
		return nil, ErrNotFound
	}

	if input.Name != nil {
		loop.Name = *input.Name
	}
	if input.Timer != nil {
		loop.Timer = *input.Timer
	}
	if input.Rate != nil {
		loop.Rate = *input.Rate
	}
	if input.IsActive != nil {
		loop.IsActive = *input.IsActive
	}
	if input.TimerStartTime.Set {
		loop.TimerStartTime = input.TimerStartTime.Value
	}

	if err := s.loops.Update(ctx, *loop); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update loop: %w", err)
	}
	return loop, nil
}

func (s *loopService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.loops.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete loop: %w", err)
	}
	return nil
}
