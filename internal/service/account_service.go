//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock
package service

import (
	"context"
	"fmt"
	"strings"

	"minerals/backend/internal/auth"
	"minerals/backend/internal/model"
	"minerals/backend/internal/repository"
)

// Account is the local view of the signed-in identity.
type Account struct {
	User model.User
	Data *model.UserData
}

type AccountService interface {
	// EnsureUser upserts the local user row for a verified identity.
	EnsureUser(ctx context.Context, id auth.Identity) (*model.User, error)
	// Signup creates the user and default settings. Repeating it is harmless.
	Signup(ctx context.Context, id auth.Identity) (*Account, error)
	Get(ctx context.Context, userID string) (*Account, error)
}

type accountService struct {
	users repository.UserRepository
	data  repository.UserDataRepository
	now   Clock
}

func NewAccountService(users repository.UserRepository, data repository.UserDataRepository) AccountService {
	return &accountService{users: users, data: data, now: systemClock}
}

func (s *accountService) EnsureUser(ctx context.Context, id auth.Identity) (*model.User, error) {
	if strings.TrimSpace(id.ID) == "" {
		return nil, ErrUnauthorized
	}
	user := model.User{ID: id.ID, Email: id.Email}
	if name := strings.TrimSpace(id.Name); name != "" {
		user.Name = &name
	}
	stored, err := s.users.Upsert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return stored, nil
}

func (s *accountService) Signup(ctx context.Context, id auth.Identity) (*Account, error) {
	user, err := s.EnsureUser(ctx, id)
	if err != nil {
		return nil, err
	}

	defaults := model.DefaultUserData(user.ID)
	today := utcDate(s.now())
	defaults.LastLoginDate = &today
	data, err := s.data.Create(ctx, defaults)
	if err != nil {
		return nil, fmt.Errorf("create user data: %w", err)
	}
	return &Account{User: *user, Data: data}, nil
}

func (s *accountService) Get(ctx context.Context, userID string) (*Account, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, ErrNotFound
	}
	data, err := s.data.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user data: %w", err)
	}
	return &Account{User: *user, Data: data}, nil
}
