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

type IncomeService interface {
	List(ctx context.Context, userID string) ([]model.IncomeEntry, error)
	// Create stores a positive amount. A nil timestamp means now.
	Create(ctx context.Context, userID string, amount float64, note *string, timestamp *int64) (*model.IncomeEntry, error)
	Delete(ctx context.Context, userID string, id int64) error
}

type incomeService struct {
	income repository.IncomeRepository
	now    Clock
}

func NewIncomeService(income repository.IncomeRepository) IncomeService {
	return &incomeService{income: income, now: systemClock}
}

func (s *incomeService) List(ctx context.Context, userID string) ([]model.IncomeEntry, error) {
	entries, err := s.income.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	return entries, nil
}

func (s *incomeService) Create(ctx context.Context, userID string, amount float64, note *string, timestamp *int64) (*model.IncomeEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalid
	}
	ts := s.now().UnixMilli()
	if timestamp != nil {
		ts = *timestamp
	}
	entry, err := s.income.Create(ctx, model.IncomeEntry{
		UserID:    userID,
		Amount:    amount,
		Note:      note,
		Timestamp: ts,
	})
	if err != nil {
		return nil, fmt.Errorf("create income: %w", err)
	}
	return entry, nil
}

func (s *incomeService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.income.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("delete income: %w", err)
	}
	return nil
}
