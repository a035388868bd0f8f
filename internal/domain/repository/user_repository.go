package repository

import (
	"context"

	"agritrace/internal/domain/entity"
	"agritrace/internal/errors"

	"github.com/google/uuid"
)

// Sentinel errors for user storage.
var (
	// ErrUserNotFound is returned when no user matches the lookup key.
	ErrUserNotFound = errors.New("user not found")
	// ErrUsernameTaken is returned when creating a user whose username exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when creating a user whose email exists.
	ErrEmailTaken = errors.New("email already exists")
)

// UserRepository defines the interface for account storage.
type UserRepository interface {
	// Create stores a new user. Returns ErrUsernameTaken or ErrEmailTaken
	// when the respective unique field collides.
	Create(ctx context.Context, user *entity.User) error

	// FindByUsername returns a deep copy of the user, or ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByID returns a deep copy of the user, or ErrUserNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindAll returns deep copies of all users in insertion order.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// Update applies mutate to the stored user while holding the store's
	// write lock, then returns a deep copy of the result. Returns
	// ErrUserNotFound if the username is unknown.
	Update(ctx context.Context, username string, mutate func(*entity.User) error) (*entity.User, error)
}
