package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"dashboard-gateway/app/domain"
	"dashboard-gateway/app/port"
	"dashboard-gateway/app/utils/validator"
)

// AuthHandler handles signup, login and logout HTTP requests.
type AuthHandler struct {
	auth       port.AuthUsecase
	sessions   port.SessionUsecase
	validator  *validator.Validator
	cookieName string
	secure     bool
	logger     *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth port.AuthUsecase, sessions port.SessionUsecase, cookieName string, secure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		sessions:   sessions,
		validator:  validator.New(),
		cookieName: cookieName,
		secure:     secure,
		logger:     logger.With("component", "auth_handler"),
	}
}

// SignupRequest is the signup request body.
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse wraps a message and the public user fields.
type UserResponse struct {
	Message string            `json:"message"`
	User    domain.PublicUser `json:"user"`
}

// MessageResponse carries a bare status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Signup handles POST /api/auth/signup
func (h *AuthHandler) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.auth.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		return mapDomainError(err)
	}

	return c.JSON(http.StatusCreated, UserResponse{
		Message: "Signup successful",
		User:    user.Public(),
	})
}

// Login handles POST /api/auth/login. On success a server-side session is
// created and its token set as an HTTP-only cookie.
func (h *AuthHandler) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.validator.Validate(&req); err != nil {
		// Malformed credentials read the same as wrong ones.
		return mapDomainError(domain.ErrInvalidCredentials)
	}

	user, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		return mapDomainError(err)
	}

	session, err := h.sessions.Create(ctx, user.ID)
	if err != nil {
		h.logger.Error("session creation failed after login", "user_id", user.ID, "error", err)
		return mapDomainError(err)
	}

	c.SetCookie(h.sessionCookie(session.Token, session.ExpiresAt))

	return c.JSON(http.StatusOK, UserResponse{
		Message: "Login successful",
		User:    user.Public(),
	})
}

// Logout handles POST /api/auth/logout. Destroying an already-gone session
// still succeeds; the cookie is cleared either way.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	if cookie, err := c.Cookie(h.cookieName); err == nil {
		if err := h.sessions.Destroy(ctx, cookie.Value); err != nil {
			h.logger.Error("session destroy failed", "error", err)
			return mapDomainError(err)
		}
	}

	c.SetCookie(h.expiredCookie())

	return c.JSON(http.StatusOK, MessageResponse{Message: "Logout successful"})
}

// sessionCookie builds the HTTP-only session cookie.
func (h *AuthHandler) sessionCookie(token string, expires time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// expiredCookie builds a cookie that clears the session on the client.
func (h *AuthHandler) expiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     h.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
