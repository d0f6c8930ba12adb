package di

import (
	"fmt"
	"log/slog"

	"github.com/labstack/echo/v4"

	"dashboard-gateway/app/config"
	"dashboard-gateway/app/driver/memory"
	"dashboard-gateway/app/driver/postgres"
	"dashboard-gateway/app/gateway"
	"dashboard-gateway/app/port"
	"dashboard-gateway/app/rest"
	"dashboard-gateway/app/usecase"
	"dashboard-gateway/app/utils/security"
)

// Container holds all dependencies for the application. Stores are created
// once here and torn down in Close; nothing reaches them except through
// the usecases.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	// Drivers
	DB           *postgres.DB
	SessionStore *memory.SessionStore

	// Gateways
	AnalyticsGateway port.AnalyticsGateway

	// Usecases
	AuthUsecase    port.AuthUsecase
	SessionUsecase port.SessionUsecase
}

// NewContainer creates and initializes a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	container := &Container{
		Config: cfg,
		Logger: logger,
	}

	var err error

	container.DB, err = postgres.NewConnection(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	container.SessionStore = memory.NewSessionStore(logger)

	userRepository := postgres.NewUserRepository(container.DB.Pool(), logger)
	hasher := security.NewBcryptHasher(0)

	container.AnalyticsGateway = gateway.NewAnalyticsGateway(cfg.AnalyticsURL, cfg.AnalyticsTimeout, logger)

	container.AuthUsecase = usecase.NewAuthUsecase(userRepository, hasher, logger)
	container.SessionUsecase = usecase.NewSessionUsecase(container.SessionStore, userRepository, cfg.SessionDuration, logger)

	logger.Info("container initialized")

	return container, nil
}

// CreateRouter creates and returns a fully configured Echo router
func (c *Container) CreateRouter() *echo.Echo {
	routerConfig := rest.RouterConfig{
		Logger:            c.Logger,
		AuthUsecase:       c.AuthUsecase,
		SessionUsecase:    c.SessionUsecase,
		AnalyticsGateway:  c.AnalyticsGateway,
		SessionCookieName: c.Config.SessionCookieName,
		CookieSecure:      c.Config.CookieSecure,
		CORSOrigin:        c.Config.CORSOrigin,
		EnableDebug:       c.Config.LogLevel == "debug",
	}

	return rest.NewRouter(routerConfig)
}

// Close closes all resources
func (c *Container) Close() error {
	if c.SessionStore != nil {
		c.SessionStore.Close()
	}

	if c.DB != nil {
		c.DB.Close()
	}

	c.Logger.Info("container closed")
	return nil
}
