package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"agritrace/config"
	"agritrace/internal/domain/entity"
	infraauth "agritrace/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthMiddleware(t *testing.T) (*AuthMiddleware, string) {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "middleware-test-secret"
	cfg.Auth = &config.AuthConfig{TokenTTL: time.Hour}

	tokenSvc, err := infraauth.NewJWTService(cfg)
	require.NoError(t, err)

	token, err := tokenSvc.GenerateToken(&entity.User{
		ID:       uuid.New(),
		Username: "farmer1",
		Role:     entity.RoleFarmer,
	})
	require.NoError(t, err)

	return NewAuthMiddleware(tokenSvc), token
}

func invoke(m echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}

	err := m(next)(c)

	return rec, err
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	m, token := newTestAuthMiddleware(t)

	rec, err := invoke(m.Authenticate, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_Authenticate_SetsIdentity(t *testing.T) {
	m, token := newTestAuthMiddleware(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUsername string
	var gotRole entity.Role
	next := func(c echo.Context) error {
		gotUsername = CallerUsername(c)
		gotRole = CallerRole(c)

		return c.NoContent(http.StatusOK)
	}

	require.NoError(t, m.Authenticate(next)(c))
	assert.Equal(t, "farmer1", gotUsername)
	assert.Equal(t, entity.RoleFarmer, gotRole)
}

func TestAuthMiddleware_Authenticate_MissingHeader(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)

	rec, err := invoke(m.Authenticate, "")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_TOKEN")
}

func TestAuthMiddleware_Authenticate_NotBearer(t *testing.T) {
	m, token := newTestAuthMiddleware(t)

	rec, err := invoke(m.Authenticate, "Token "+token)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN_FORMAT")
}

func TestAuthMiddleware_Authenticate_GarbageToken(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)

	rec, err := invoke(m.Authenticate, "Bearer not-a-jwt")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_TOKEN")
}

func TestAuthMiddleware_RequireRole(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)

	tests := []struct {
		name       string
		callerRole any
		allowed    []entity.Role
		wantStatus int
	}{
		{"matching role", entity.RoleFarmer, []entity.Role{entity.RoleFarmer}, http.StatusOK},
		{"one of several", entity.RoleRetailer, []entity.Role{entity.RoleFarmer, entity.RoleDistributor, entity.RoleRetailer}, http.StatusOK},
		{"wrong role", entity.RoleConsumer, []entity.Role{entity.RoleAdmin}, http.StatusForbidden},
		{"role missing", nil, []entity.Role{entity.RoleFarmer}, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.callerRole != nil {
				c.Set(ContextKeyRole, tt.callerRole)
			}

			next := func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}

			err := m.RequireRole(tt.allowed...)(next)(c)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
