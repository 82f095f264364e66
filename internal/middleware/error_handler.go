package middleware

import (
	"errors"
	"net/http"
	"plantnet/domain"
	"plantnet/pkg/logger"

	jsonres "plantnet/pkg/response"

	"github.com/labstack/echo/v4"
)

// ErrorHandler is the echo HTTPErrorHandler: errors that escape a handler are
// mapped onto the shared taxonomy instead of echo's default payload.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	label := "INTERNAL"

	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		label = http.StatusText(code)
	case errors.Is(err, domain.ErrUnauthorized):
		code, label = http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		code, label = http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrNotFound):
		code, label = http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrConflict):
		code, label = http.StatusConflict, "CONFLICT"
	}

	if code >= http.StatusInternalServerError {
		logger.Error("Unhandled request error", err)
	}

	if jsonErr := c.JSON(code, jsonres.Error(label, err.Error(), nil)); jsonErr != nil {
		logger.Error("Failed to write error response", jsonErr)
	}
}
