package middleware

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"dashboard-gateway/app/port"
)

// Context keys set by the access gate for downstream handlers.
const (
	ContextKeyUser      = "user"
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
)

// AuthMiddleware is the access gate: every protected route group is built
// on top of RequireSession, so no analytics handler can run before a
// session has been resolved.
type AuthMiddleware struct {
	sessions   port.SessionUsecase
	cookieName string
	logger     *slog.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(sessions port.SessionUsecase, cookieName string, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:   sessions,
		cookieName: cookieName,
		logger:     logger.With("component", "auth_middleware"),
	}
}

// RequireSession rejects requests lacking a resolvable session with 401
// and attaches the resolved user to the request context otherwise. The
// rejection message never distinguishes missing, unknown and expired
// tokens.
func (m *AuthMiddleware) RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			token := m.extractSessionToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			user, err := m.sessions.Resolve(ctx, token)
			if err != nil {
				m.logger.Debug("session resolution failed", "path", c.Request().URL.Path)
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			c.Set(ContextKeyUser, user)
			c.Set(ContextKeyUserID, user.ID.String())
			c.Set(ContextKeyUserEmail, user.Email)

			return next(c)
		}
	}
}

// extractSessionToken pulls the opaque token out of the session cookie.
func (m *AuthMiddleware) extractSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(m.cookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
