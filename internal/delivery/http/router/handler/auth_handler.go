package handler

import (
	"log/slog"
	"net/http"

	"agritrace/internal/delivery/http/middleware"
	"agritrace/internal/delivery/http/response"
	"agritrace/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for account and session handlers.
type AuthHandler struct {
	auth   usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(auth usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:   auth,
		logger: logger,
	}
}

// Register handles self-service account creation.
func (h *AuthHandler) Register(c echo.Context) error {
	var input *usecase.RegisterUserInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.auth.Register(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user, "User registered successfully")
}

// Login verifies credentials and returns an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var input *usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.auth.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output, "Login successful")
}

// Profile returns the authenticated caller's account.
func (h *AuthHandler) Profile(c echo.Context) error {
	user, err := h.auth.GetProfile(c.Request().Context(), middleware.CallerUsername(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile retrieved")
}

// UpdateProfile applies the mutable profile fields.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var input *usecase.UpdateProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.auth.UpdateProfile(c.Request().Context(), middleware.CallerUsername(c), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile updated successfully")
}

// ChangePassword swaps the caller's password.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	var input *usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.auth.ChangePassword(c.Request().Context(), middleware.CallerUsername(c), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// Logout acknowledges the logout. Tokens are stateless, so the client simply
// discards its copy.
func (h *AuthHandler) Logout(c echo.Context) error {
	return response.Success(c, http.StatusOK,
		map[string]string{"message": "Please remove the token on the client side"},
		"Logout successful")
}

// ListUsers returns every account. Admin only.
func (h *AuthHandler) ListUsers(c echo.Context) error {
	users, err := h.auth.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"count": len(users),
		"users": users,
	}, "Users retrieved")
}

// DemoCredentials lists the seeded demo accounts so evaluators can try each
// role without registering.
func (h *AuthHandler) DemoCredentials(c echo.Context) error {
	credentials := []map[string]string{
		{"username": "admin", "password": "admin123", "role": "admin"},
		{"username": "farmer1", "password": "demo123", "role": "farmer"},
		{"username": "distributor1", "password": "demo123", "role": "distributor"},
		{"username": "retailer1", "password": "demo123", "role": "retailer"},
		{"username": "consumer1", "password": "demo123", "role": "consumer"},
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"note":        "Demo accounts for evaluation only",
		"credentials": credentials,
	}, "Demo credentials retrieved")
}
