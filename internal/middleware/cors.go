package middleware

import (
	"net/http"

	"bizcard-service/internal/apperror"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// CORS rejects browser requests from origins outside allowed and sets the
// CORS headers for the rest. Requests without an Origin header pass.
func CORS(allowed []string) echo.MiddlewareFunc {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}

	headers := echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  allowed,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAuthorization, TokenHeader},
		ExposeHeaders: []string{TokenHeader, echo.HeaderXRequestID},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withHeaders := headers(next)
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			if origin == "" {
				return next(c)
			}
			if _, ok := set[origin]; !ok {
				return apperror.Forbidden("Not allowed by CORS")
			}
			return withHeaders(c)
		}
	}
}
