// Package middleware contains the HTTP middleware of the service.
package middleware

import (
	"strings"

	"agritrace/internal/delivery/http/response"
	"agritrace/internal/domain/entity"
	"agritrace/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	ContextKeyUserID   = "userID"
	ContextKeyUsername = "username"
	ContextKeyRole     = "role"
)

// AuthMiddleware provides middleware for JWT authentication and authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and stores the caller's identity
// on the echo context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "MISSING_TOKEN", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "INVALID_TOKEN_FORMAT", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "INVALID_TOKEN", "Invalid or expired token")
		}

		c.Set(ContextKeyUserID, claims.UserID)
		c.Set(ContextKeyUsername, claims.Username)
		c.Set(ContextKeyRole, claims.Role)

		return next(c)
	}
}

// RequireRole checks that the authenticated caller holds one of the allowed
// roles. It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(allowed ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get(ContextKeyRole).(entity.Role)
			if !ok {
				return response.Forbidden(c, "ROLE_MISSING", "Permission denied: role information missing")
			}

			if entity.Roles(allowed).Contains(role) {
				return next(c)
			}

			return response.Forbidden(c, "ROLE_FORBIDDEN",
				"Permission denied: requires one of roles "+strings.Join(entity.Roles(allowed).ToStrings(), ", "))
		}
	}
}

// CallerUsername returns the username Authenticate stored on the context.
func CallerUsername(c echo.Context) string {
	username, _ := c.Get(ContextKeyUsername).(string)

	return username
}

// CallerRole returns the role Authenticate stored on the context.
func CallerRole(c echo.Context) entity.Role {
	role, _ := c.Get(ContextKeyRole).(entity.Role)

	return role
}
