package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"agritrace/config"
	"agritrace/internal/domain/entity"
	domainerrors "agritrace/internal/domain/errors"
	infraauth "agritrace/internal/infra/auth"
	"agritrace/internal/infra/memstore"
	"agritrace/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(t *testing.T) usecase.AuthUsecase {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-secret"
	cfg.Auth = &config.AuthConfig{
		BcryptCost: bcrypt.MinCost,
		TokenTTL:   time.Hour,
	}

	tokenService, err := infraauth.NewJWTService(cfg)
	require.NoError(t, err)

	return NewAuthService(AuthServiceParams{
		UserRepo:     memstore.NewUserRepository(),
		Hasher:       infraauth.NewBcryptHasher(cfg),
		TokenService: tokenService,
		Logger:       slog.Default(),
	})
}

func farmerSignup() *usecase.RegisterUserInput {
	return &usecase.RegisterUserInput{
		Username: "farmer42",
		Email:    "farmer42@example.com",
		Password: "harvest-season",
		Phone:    "9876543210",
		Role:     "farmer",
	}
}

func TestAuthService_Register(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, farmerSignup())
	require.NoError(t, err)
	assert.Equal(t, "farmer42", user.Username)
	assert.Equal(t, entity.RoleFarmer, user.Role)
	assert.True(t, user.IsActive)
	assert.Empty(t, user.PasswordHash)
	assert.NotEqual(t, "", user.ID.String())
}

func TestAuthService_Register_AdminRoleRejected(t *testing.T) {
	auth := newTestAuthService(t)

	input := farmerSignup()
	input.Role = "admin"

	_, err := auth.Register(context.Background(), input)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
}

func TestAuthService_Register_UnknownRoleRejected(t *testing.T) {
	auth := newTestAuthService(t)

	input := farmerSignup()
	input.Role = "wholesaler"

	_, err := auth.Register(context.Background(), input)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidRole)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, farmerSignup())
	require.NoError(t, err)

	dup := farmerSignup()
	dup.Email = "other@example.com"
	_, err = auth.Register(ctx, dup)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, farmerSignup())
	require.NoError(t, err)

	dup := farmerSignup()
	dup.Username = "farmer43"
	dup.Email = "Farmer42@Example.com"
	_, err = auth.Register(ctx, dup)
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestAuthService_Login(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, farmerSignup())
	require.NoError(t, err)

	out, err := auth.Login(ctx, &usecase.LoginInput{
		Username: "farmer42",
		Password: "harvest-season",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, int64(3600), out.ExpiresIn)
	assert.Equal(t, "farmer42", out.User.Username)
	assert.Empty(t, out.User.PasswordHash)
	require.NotNil(t, out.User.LastLogin)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, farmerSignup())
	require.NoError(t, err)

	_, err = auth.Login(ctx, &usecase.LoginInput{
		Username: "farmer42",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	auth := newTestAuthService(t)

	_, err := auth.Login(context.Background(), &usecase.LoginInput{
		Username: "nobody",
		Password: "whatever",
	})
	// Unknown usernames and wrong passwords are indistinguishable.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_GetProfile(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, farmerSignup())
	require.NoError(t, err)

	user, err := auth.GetProfile(ctx, "farmer42")
	require.NoError(t, err)
	assert.Equal(t, "farmer42@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	_, err = auth.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, farmerSignup())
	require.NoError(t, err)

	user, err := auth.UpdateProfile(ctx, "farmer42", &usecase.UpdateProfileInput{
		Email: "New.Address@Example.com",
		Phone: "9123456780",
	})
	require.NoError(t, err)
	assert.Equal(t, "new.address@example.com", user.Email)
	assert.Equal(t, "9123456780", user.Phone)
	assert.Equal(t, "farmer42", user.Username)
}

func TestAuthService_ChangePassword(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, farmerSignup())
	require.NoError(t, err)

	err = auth.ChangePassword(ctx, "farmer42", &usecase.ChangePasswordInput{
		CurrentPassword: "harvest-season",
		NewPassword:     "monsoon-2025",
	})
	require.NoError(t, err)

	_, err = auth.Login(ctx, &usecase.LoginInput{Username: "farmer42", Password: "harvest-season"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	out, err := auth.Login(ctx, &usecase.LoginInput{Username: "farmer42", Password: "monsoon-2025"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, farmerSignup())
	require.NoError(t, err)

	err = auth.ChangePassword(ctx, "farmer42", &usecase.ChangePasswordInput{
		CurrentPassword: "not-my-password",
		NewPassword:     "monsoon-2025",
	})
	assert.ErrorIs(t, err, domainerrors.ErrWrongPassword)

	// The old password still works after the rejected change.
	_, err = auth.Login(ctx, &usecase.LoginInput{Username: "farmer42", Password: "harvest-season"})
	assert.NoError(t, err)
}

func TestAuthService_ListUsers(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	_, err := auth.Register(ctx, farmerSignup())
	require.NoError(t, err)

	second := farmerSignup()
	second.Username = "dist1"
	second.Email = "dist1@example.com"
	second.Role = "distributor"
	_, err = auth.Register(ctx, second)
	require.NoError(t, err)

	users, err := auth.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "farmer42", users[0].Username)
	assert.Equal(t, "dist1", users[1].Username)
	for _, user := range users {
		assert.Empty(t, user.PasswordHash)
	}
}
