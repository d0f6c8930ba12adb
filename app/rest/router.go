package rest

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"dashboard-gateway/app/port"
	"dashboard-gateway/app/rest/handlers"
	custommw "dashboard-gateway/app/rest/middleware"
)

// RouterConfig holds router configuration
type RouterConfig struct {
	Logger            *slog.Logger
	AuthUsecase       port.AuthUsecase
	SessionUsecase    port.SessionUsecase
	AnalyticsGateway  port.AnalyticsGateway
	SessionCookieName string
	CookieSecure      bool
	CORSOrigin        string
	EnableDebug       bool
}

// NewRouter creates and configures the Echo router. Every analytics
// forwarding route is registered on the gated group, so the session check
// is structural rather than per-handler convention.
func NewRouter(config RouterConfig) *echo.Echo {
	e := echo.New()

	e.HideBanner = true
	e.Debug = config.EnableDebug

	// Create handlers
	authHandler := handlers.NewAuthHandler(
		config.AuthUsecase,
		config.SessionUsecase,
		config.SessionCookieName,
		config.CookieSecure,
		config.Logger)
	analyticsHandler := handlers.NewAnalyticsHandler(config.AnalyticsGateway, config.Logger)
	healthHandler := handlers.NewHealthHandler(config.AnalyticsGateway, config.Logger)

	// Create middleware
	authMiddleware := custommw.NewAuthMiddleware(config.SessionUsecase, config.SessionCookieName, config.Logger)
	rateLimiter := custommw.NewRateLimiter()

	// Global middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(custommw.NewCORSMiddleware(custommw.DefaultCORSConfig(config.CORSOrigin)))
	e.Use(custommw.SecurityHeaders())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "method=${method}, uri=${uri}, status=${status}, latency=${latency_human}, error=${error}\n",
	}))

	api := e.Group("/api")

	// Health endpoints (no auth required)
	api.GET("/health", healthHandler.HealthCheck)
	api.GET("/ml/health", healthHandler.MLHealthCheck)

	// Authentication endpoints
	auth := api.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	// Analytics forwarding endpoints (session required)
	protected := api.Group("", authMiddleware.RequireSession())
	protected.GET("/dashboard", analyticsHandler.Dashboard)
	protected.GET("/index/overview", analyticsHandler.IndexOverview)
	protected.GET("/stocks/list", analyticsHandler.StockList)
	protected.GET("/stocks/:symbol", analyticsHandler.StockAnalysis)
	protected.GET("/sector/overview", analyticsHandler.SectorOverview)
	protected.GET("/correlation/plot", analyticsHandler.CorrelationPlot)
	protected.POST("/predict", analyticsHandler.Predict)
	protected.POST("/portfolio/optimize", analyticsHandler.PortfolioOptimize)
	protected.POST("/correlation/network", analyticsHandler.CorrelationNetwork)

	return e
}
