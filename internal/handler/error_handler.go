package handler

import (
	"errors"
	"net/http"

	"bizcard-service/internal/apperror"
	"bizcard-service/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorHandler renders every error returned by a handler or middleware as
// {"error": message}. Causes of internal errors are logged, never returned.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	log := logger.FromContext(c)

	status := http.StatusInternalServerError
	message := "Internal Server Error"

	var appErr *apperror.Error
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &appErr):
		status = appErr.Kind.Status()
		message = appErr.Message
	case errors.As(err, &httpErr):
		status = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(status)
		}
	}
	if httpErr == nil && apperror.KindOf(err) == apperror.KindInternal {
		log.Error("Request failed", zap.Error(err))
	}

	var werr error
	if c.Request().Method == http.MethodHead {
		werr = c.NoContent(status)
	} else {
		werr = c.JSON(status, echo.Map{"error": message})
	}
	if werr != nil {
		log.Error("Failed to write error response", zap.Error(werr))
	}
}
