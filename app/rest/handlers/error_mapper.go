package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"dashboard-gateway/app/domain"
)

// mapDomainError converts a domain error into an appropriate echo.HTTPError.
// Messages are deliberately generic; detail stays in the server log.
func mapDomainError(err error) *echo.HTTPError {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, "All fields are required")

	case errors.Is(err, domain.ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, "User already exists")

	case errors.Is(err, domain.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")

	case errors.Is(err, domain.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")

	case errors.Is(err, domain.ErrUpstream):
		return echo.NewHTTPError(http.StatusBadGateway, "Analytics service unavailable")

	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "Internal server error")
	}
}
