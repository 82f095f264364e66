package rest

import (
	"context"
	"net/http"
	"plantnet/pkg/logger"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type AuthService interface {
	IssueToken(ctx context.Context, email string) (string, error)
	RevokeToken(ctx context.Context, token string) error
}

type AuthHandler struct {
	authService AuthService
	validator   *validator.Validate
	timeout     time.Duration
}

func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator.New(),
		timeout:     10 * time.Second,
	}
}

type IssueTokenRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// IssueToken mints a session token for an email. The identity itself comes
// from the social login on the frontend; this endpoint only converts it into
// a bearer token.
func (h *AuthHandler) IssueToken(c echo.Context) error {
	var req IssueTokenRequest

	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid request body", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	if err := h.validator.Struct(&req); err != nil {
		logger.Error("Failed to validate token request", err)
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	token, err := h.authService.IssueToken(ctx, req.Email)
	if err != nil {
		logger.Error("Failed to issue token", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"token":   token,
	})
}

// Logout revokes the presented token. Logging out without a token is a no-op
// success, matching the original behavior.
func (h *AuthHandler) Logout(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), h.timeout)
	defer cancel()

	authHeader := c.Request().Header.Get("Authorization")
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
		if err := h.authService.RevokeToken(ctx, tokenParts[1]); err != nil {
			logger.Error("Failed to revoke token", err)
			return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
		}
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
	})
}
