package handler

import (
	"net/http"
	"time"

	"agritrace/config"
	"agritrace/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// StatusHandler serves the liveness and service summary endpoints.
type StatusHandler struct {
	cfg *config.Config
}

// NewStatusHandler creates a new StatusHandler instance
func NewStatusHandler(cfg *config.Config) *StatusHandler {
	return &StatusHandler{cfg: cfg}
}

// Health is the liveness probe.
func (h *StatusHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// Status summarizes the running service and its API surface.
func (h *StatusHandler) Status(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"service":     h.cfg.Env.ServiceName,
		"environment": h.cfg.Env.Env,
		"version":     "1.0.0",
		"ledger":      "in-memory",
		"endpoints": map[string]string{
			"auth":      "/api/auth",
			"products":  "/api/products",
			"qr":        "/api/qr",
			"qrVerify":  "/api/qr-verify/:id",
			"sms":       "/api/sms/send",
			"external":  "/api/external",
			"analytics": "/api/analytics/dashboard",
		},
	}, "Service status retrieved")
}
