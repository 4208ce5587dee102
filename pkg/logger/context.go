package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const contextKey = "logger"

// Set stores a request-scoped logger on the echo context
func Set(c echo.Context, log *zap.Logger) {
	c.Set(contextKey, log)
}

// FromContext retrieves the request-scoped logger, falling back to the global one
func FromContext(c echo.Context) *zap.Logger {
	if l, ok := c.Get(contextKey).(*zap.Logger); ok {
		return l
	}
	return zap.L()
}
