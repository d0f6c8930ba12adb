package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"dashboard-gateway/app/domain"
	"dashboard-gateway/app/port"
	"dashboard-gateway/app/rest/middleware"
)

// maxForwardBody caps how much request body is forwarded upstream.
const maxForwardBody = 1 << 20 // 1 MiB

// AnalyticsHandler relays gated requests to the external analytics
// service. It never inspects payload semantics; thresholds, symbol lists
// and horizons are validated by the analytics service itself.
type AnalyticsHandler struct {
	gateway port.AnalyticsGateway
	logger  *slog.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(gateway port.AnalyticsGateway, logger *slog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		gateway: gateway,
		logger:  logger.With("component", "analytics_handler"),
	}
}

// Dashboard handles GET /api/dashboard
func (h *AnalyticsHandler) Dashboard(c echo.Context) error {
	user, ok := c.Get(middleware.ContextKeyUser).(*domain.User)
	if !ok {
		return mapDomainError(domain.ErrUnauthenticated)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Welcome to the protected dashboard",
		"user":    user.Public(),
	})
}

// IndexOverview handles GET /api/index/overview
func (h *AnalyticsHandler) IndexOverview(c echo.Context) error {
	return h.relayGet(c, port.CapabilityIndexOverview, "")
}

// StockList handles GET /api/stocks/list
func (h *AnalyticsHandler) StockList(c echo.Context) error {
	return h.relayGet(c, port.CapabilityStockList, "")
}

// StockAnalysis handles GET /api/stocks/:symbol
func (h *AnalyticsHandler) StockAnalysis(c echo.Context) error {
	symbol := c.Param("symbol")
	if symbol == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "stock symbol is required")
	}
	return h.relayGet(c, port.CapabilityStockAnalysis, symbol)
}

// SectorOverview handles GET /api/sector/overview
func (h *AnalyticsHandler) SectorOverview(c echo.Context) error {
	return h.relayGet(c, port.CapabilitySectorOverview, "")
}

// CorrelationPlot handles GET /api/correlation/plot
func (h *AnalyticsHandler) CorrelationPlot(c echo.Context) error {
	return h.relayGet(c, port.CapabilityCorrelationPlot, "")
}

// Predict handles POST /api/predict
func (h *AnalyticsHandler) Predict(c echo.Context) error {
	return h.relayPost(c, port.CapabilityPrediction)
}

// PortfolioOptimize handles POST /api/portfolio/optimize
func (h *AnalyticsHandler) PortfolioOptimize(c echo.Context) error {
	return h.relayPost(c, port.CapabilityPortfolioOptimize)
}

// CorrelationNetwork handles POST /api/correlation/network
func (h *AnalyticsHandler) CorrelationNetwork(c echo.Context) error {
	return h.relayPost(c, port.CapabilityCorrelationNet)
}

// relayGet forwards a GET capability call and relays the response body.
func (h *AnalyticsHandler) relayGet(c echo.Context, capability port.Capability, pathSuffix string) error {
	result, err := h.gateway.Get(c.Request().Context(), capability, pathSuffix)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Blob(http.StatusOK, result.ContentType, result.Body)
}

// relayPost forwards the raw client payload to a POST capability and
// relays the response body.
func (h *AnalyticsHandler) relayPost(c echo.Context, capability port.Capability) error {
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxForwardBody))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "failed to read request body")
	}

	result, err := h.gateway.Post(c.Request().Context(), capability, payload)
	if err != nil {
		return mapDomainError(err)
	}

	return c.Blob(http.StatusOK, result.ContentType, result.Body)
}
