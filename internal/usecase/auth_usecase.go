package usecase

import (
	"context"

	"agritrace/internal/domain/entity"
)

// RegisterUserInput is the self-service signup request body.
type RegisterUserInput struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"required"`
}

// LoginInput is the credential pair presented at login.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput carries the signed access token and the authenticated user.
type LoginOutput struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expiresIn"`
	User      *entity.User `json:"user"`
}

// UpdateProfileInput lists the fields a user may change on their own
// account. Username and role are immutable.
type UpdateProfileInput struct {
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone"`
}

// ChangePasswordInput carries the old and replacement passwords.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// AuthUsecase handles account lifecycle and credential checks.
type AuthUsecase interface {
	// Register creates an account for one of the self-registrable supply
	// chain roles. Admin accounts are seeded, never self-registered.
	Register(ctx context.Context, input *RegisterUserInput) (*entity.User, error)

	// Login verifies credentials and issues a signed access token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// GetProfile returns the account behind an authenticated request.
	GetProfile(ctx context.Context, username string) (*entity.User, error)

	// UpdateProfile applies the mutable profile fields.
	UpdateProfile(ctx context.Context, username string, input *UpdateProfileInput) (*entity.User, error)

	// ChangePassword swaps the password after verifying the current one.
	ChangePassword(ctx context.Context, username string, input *ChangePasswordInput) error

	// ListUsers returns every account, admin only at the boundary.
	ListUsers(ctx context.Context) ([]*entity.User, error)
}
