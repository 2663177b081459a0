package services

import (
	"context"
	"fmt"

	"github.com/mrlokans/musiclibrary/internal/entities"
)

// UserService manages user records.
type UserService struct {
	users UserStore
}

// NewUserService creates a new UserService.
func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

// GetUser returns the user or ErrUserNotFound.
func (s *UserService) GetUser(ctx context.Context, id uint) (*entities.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

// GetAll returns every user. The slice is empty, never nil, when there are
// no users.
func (s *UserService) GetAll(ctx context.Context) ([]entities.User, error) {
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []entities.User{}
	}
	return users, nil
}

// CreateUser validates and stores a new user. Any ID on the input is
// ignored; the store assigns one.
func (s *UserService) CreateUser(ctx context.Context, user *entities.User) (*entities.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	user.ID = 0
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// SaveUser replaces name, email and library of an existing user. The ID in
// the path wins over the body. It never creates users.
func (s *UserService) SaveUser(ctx context.Context, id uint, user *entities.User) (*entities.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}
	user.ID = id
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("save user %d: %w", id, err)
	}
	return s.GetUser(ctx, id)
}

// DeleteUser removes the user together with their library, or returns
// ErrUserNotFound.
func (s *UserService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.users.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete user %d: %w", id, err)
	}
	return nil
}

func (s *UserService) DeleteAll(ctx context.Context) error {
	if err := s.users.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete users: %w", err)
	}
	return nil
}
