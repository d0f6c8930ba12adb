package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"dashboard-gateway/app/port"
)

// HealthHandler reports gateway and analytics service health.
type HealthHandler struct {
	gateway port.AnalyticsGateway
	logger  *slog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(gateway port.AnalyticsGateway, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		gateway: gateway,
		logger:  logger.With("component", "health_handler"),
	}
}

// HealthCheck handles GET /api/health
func (h *HealthHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "OK",
		"server":    "Running",
		"timestamp": time.Now().UTC(),
	})
}

// MLHealthCheck handles GET /api/ml/health by probing the analytics
// service's own health endpoint.
func (h *HealthHandler) MLHealthCheck(c echo.Context) error {
	result, err := h.gateway.Get(c.Request().Context(), port.CapabilityHealth, "")
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "ML service unreachable")
	}

	return c.Blob(http.StatusOK, result.ContentType, result.Body)
}
