package middleware

import (
	"context"
	"errors"
	"strings"

	"bizcard-service/internal/apperror"
	"bizcard-service/internal/model"
	"bizcard-service/pkg/jwtutil"
	"bizcard-service/pkg/logger"
	"bizcard-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TokenHeader carries the credential on requests and on the login response.
const TokenHeader = "auth-token"

const principalKey = "principal"

// Principal is the authenticated caller: the verified claims and the user
// record they resolved to.
type Principal struct {
	Claims *jwtutil.UserClaims
	User   *model.User
}

// UserFinder resolves a user id to its stored record.
type UserFinder interface {
	ByID(ctx context.Context, id string) (*model.User, error)
}

// PrincipalFrom returns the caller attached by Auth.
func PrincipalFrom(c echo.Context) (*Principal, bool) {
	p, ok := c.Get(principalKey).(*Principal)
	return p, ok && p != nil
}

// SetPrincipal attaches p to the request.
func SetPrincipal(c echo.Context, p *Principal) {
	c.Set(principalKey, p)
}

func tokenFromRequest(c echo.Context) string {
	if t := strings.TrimSpace(c.Request().Header.Get(TokenHeader)); t != "" {
		return t
	}
	parts := strings.SplitN(c.Request().Header.Get(echo.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// Auth verifies the request credential, resolves it to a live user with a
// single read and attaches the resulting Principal.
func Auth(jwtUtil *jwtutil.JWTUtil, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			log := logger.FromContext(c)

			tokenString := tokenFromRequest(c)
			if tokenString == "" {
				prometheus.RecordAuthError("missing_token")
				return apperror.Unauthenticated("Access denied")
			}

			claims, err := jwtUtil.ValidateToken(tokenString)
			if err != nil {
				log.Warn("Invalid or expired token", zap.Error(err))
				prometheus.RecordAuthError("invalid_token")
				return apperror.Unauthenticated("Access denied. Invalid token")
			}

			user, err := users.ByID(c.Request().Context(), claims.UserID)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn("Token subject no longer exists", zap.String("user_id", claims.UserID))
				prometheus.RecordAuthError("user_not_found")
				return apperror.StaleCredential("User not found")
			}
			if err != nil {
				log.Error("Failed to resolve token subject", zap.Error(err))
				prometheus.RecordAuthError("lookup_failed")
				return &apperror.Error{Kind: apperror.KindBadRequest, Message: "Invalid request", Err: err}
			}

			SetPrincipal(c, &Principal{Claims: claims, User: user})
			log.Debug("Request authenticated", zap.String("user_id", user.ID))

			return next(c)
		}
	}
}
