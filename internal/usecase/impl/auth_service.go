package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	deliverycontext "agritrace/internal/delivery/context"
	"agritrace/internal/domain/entity"
	domainerrors "agritrace/internal/domain/errors"
	"agritrace/internal/domain/repository"
	"agritrace/internal/domain/service"
	"agritrace/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates an account for a self-registrable supply chain role.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*entity.User, error) {
	role := entity.Role(strings.ToLower(input.Role))
	if !role.IsValid() || !role.SelfRegistrable() {
		return nil, domainerrors.ErrInvalidRole.WithDetails(
			"role must be one of: farmer, distributor, retailer, consumer")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        strings.ToLower(input.Email),
		PasswordHash: hash,
		Role:         role,
		Phone:        input.Phone,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			return nil, domainerrors.ErrUsernameTaken
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, domainerrors.ErrEmailTaken
		default:
			return nil, domainerrors.ErrInternalError.WrapMessage("failed to create user")
		}
	}

	srv.log(ctx).Info("User registered",
		slog.String("username", user.Username),
		slog.String("role", role.String()))

	return user.Sanitized(), nil
}

// Login verifies the credential pair and issues a signed access token. The
// same error comes back for an unknown username and a wrong password so the
// endpoint cannot be used to probe for accounts.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to look up user")
	}

	if !user.IsActive {
		return nil, domainerrors.ErrAccountDeactivated
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.GenerateToken(user)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to issue token")
	}

	updated, err := srv.userRepo.Update(ctx, user.Username, func(u *entity.User) error {
		now := time.Now()
		u.LastLogin = &now

		return nil
	})
	if err != nil {
		// Login already succeeded; a missing last-login stamp is not
		// worth failing the request over.
		srv.log(ctx).Warn("failed to record last login", slog.String("username", user.Username))
		updated = user
	}

	srv.log(ctx).Info("User logged in",
		slog.String("username", user.Username),
		slog.String("role", user.Role.String()))

	return &usecase.LoginOutput{
		Token:     token,
		ExpiresIn: int64(srv.tokenService.TokenDuration().Seconds()),
		User:      updated.Sanitized(),
	}, nil
}

// GetProfile returns the account behind an authenticated request.
func (srv *authService) GetProfile(ctx context.Context, username string) (*entity.User, error) {
	user, err := srv.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.ErrInternalError.WrapMessage("failed to look up user")
	}

	return user.Sanitized(), nil
}

// UpdateProfile applies the mutable profile fields to the caller's account.
func (srv *authService) UpdateProfile(ctx context.Context, username string, input *usecase.UpdateProfileInput) (*entity.User, error) {
	updated, err := srv.userRepo.Update(ctx, username, func(user *entity.User) error {
		if input.Email != "" {
			user.Email = strings.ToLower(input.Email)
		}
		if input.Phone != "" {
			user.Phone = input.Phone
		}
		user.UpdatedAt = time.Now()

		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, domainerrors.ErrUserNotFound
		case errors.Is(err, repository.ErrEmailTaken):
			return nil, domainerrors.ErrEmailTaken
		default:
			return nil, domainerrors.ErrInternalError.WrapMessage("failed to update profile")
		}
	}

	srv.log(ctx).Info("Profile updated", slog.String("username", username))

	return updated.Sanitized(), nil
}

// ChangePassword swaps the password after verifying the current one.
func (srv *authService) ChangePassword(ctx context.Context, username string, input *usecase.ChangePasswordInput) error {
	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed
	}

	_, err = srv.userRepo.Update(ctx, username, func(user *entity.User) error {
		if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
			return domainerrors.ErrWrongPassword
		}

		user.PasswordHash = hash
		user.UpdatedAt = time.Now()

		return nil
	})
	if err != nil {
		var appErr domainerrors.AppError
		switch {
		case errors.Is(err, repository.ErrUserNotFound):
			return domainerrors.ErrUserNotFound
		case errors.As(err, &appErr):
			return err
		default:
			return domainerrors.ErrInternalError.WrapMessage("failed to change password")
		}
	}

	srv.log(ctx).Info("Password changed", slog.String("username", username))

	return nil
}

// ListUsers returns every account with password hashes stripped.
func (srv *authService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.FindAll(ctx)
	if err != nil {
		return nil, domainerrors.ErrInternalError.WrapMessage("failed to list users")
	}

	sanitized := make([]*entity.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitized())
	}

	return sanitized, nil
}
