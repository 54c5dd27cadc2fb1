package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"delicassy/internal/domain"
	"delicassy/internal/store"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (string, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

type userRepository struct {
	store store.Store
}

// NewUserRepository creates a new instance of UserRepository
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{store: s}
}

// Create persists a user. Emails are stored lower-cased and must be unique.
func (r *userRepository) Create(ctx context.Context, user *domain.User) (string, error) {
	user.Email = strings.ToLower(user.Email)

	existing, err := r.FindByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return "", err
	}
	if existing != nil {
		return "", ErrUserAlreadyExists
	}

	id, err := r.store.Insert(ctx, store.Users, user)
	if err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	q := store.Where("email", strings.ToLower(email))
	q.Limit = 1

	var users []domain.User
	if err := r.store.Find(ctx, store.Users, q, &users); err != nil {
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return &users[0], nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var users []domain.User
	if err := r.store.Find(ctx, store.Users, store.ByID(id), &users); err != nil {
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrUserNotFound
	}
	return &users[0], nil
}
