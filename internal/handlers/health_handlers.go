package handlers

import (
	"context"
	"net/http"
	"time"

	"wfxshop/internal/repositories"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// HealthHandlers handles liveness and readiness probes
type HealthHandlers struct {
	db repositories.Database
}

// NewHealthHandlers creates a new health handlers instance
func NewHealthHandlers(db repositories.Database) *HealthHandlers {
	return &HealthHandlers{
		db: db,
	}
}

// HealthCheck handles GET /healthz. It only confirms the process is up.
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

// ReadinessCheck handles GET /readyz. The storefront is ready once its
// database answers a trivial query.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	if h.db == nil {
		return c.String(http.StatusServiceUnavailable, "not ready")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if _, err := h.db.Exec(ctx, "SELECT 1"); err != nil {
		zap.S().Warnw("readiness probe failed", "error", err)
		return c.String(http.StatusServiceUnavailable, "not ready")
	}

	return c.String(http.StatusOK, "ready")
}
