package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kavr/tasktrack-be/internal/auth"
	"github.com/kavr/tasktrack-be/internal/models"
	"github.com/kavr/tasktrack-be/internal/repository"
)

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	Register(ctx context.Context, payload *models.RegisterPayload) (*models.User, error)
	Authenticate(ctx context.Context, username, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// UserService provides business logic for registration and authentication.
type UserService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register creates a new active user with a hashed password. The upfront
// collision lookup is an optimization; the database UNIQUE constraints are
// the authoritative guard, and a constraint violation from a concurrent
// registration surfaces as the same ErrUserExists.
func (s *UserService) Register(ctx context.Context, payload *models.RegisterPayload) (*models.User, error) {
	existing, err := s.users.GetByUsernameOrEmail(ctx, payload.Username, payload.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUserExists
	}

	hashed, err := auth.HashPassword(payload.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:          payload.Email,
		Username:       payload.Username,
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		HashedPassword: hashed,
		PhoneNumber:    payload.PhoneNumber,
		IsActive:       true,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUser) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

// Authenticate verifies a username/password pair. An unknown username and
// a wrong password both come back as ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.VerifyPassword(password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID retrieves a single user by their ID. Used by the auth
// middleware to resolve the identity a verified token refers to.
func (s *UserService) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}
