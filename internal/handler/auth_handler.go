package handler

import (
	"errors"
	"net/http"

	"bizcard-service/internal/apperror"
	"bizcard-service/internal/middleware"
	"bizcard-service/internal/model"
	"bizcard-service/pkg/jwtutil"
	"bizcard-service/pkg/logger"
	"bizcard-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	users UserStore
	jwt   *jwtutil.JWTUtil
}

func NewAuthHandler(users UserStore, jwt *jwtutil.JWTUtil) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

// Login handles POST /login. The token is returned as the body and in the
// auth-token response header.
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req model.LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		prometheus.RecordAuthError("invalid_request")
		return err
	}

	user, err := h.users.ByEmail(c.Request().Context(), req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Info("Login for unknown email", zap.String("email", req.Email))
		prometheus.RecordAuthError("user_not_found")
		return apperror.Validation("Invalid email")
	}
	if err != nil {
		return apperror.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Info("Invalid password", zap.String("user_id", user.ID))
		prometheus.RecordAuthError("invalid_password")
		return apperror.Validation("Invalid password")
	}

	token, err := h.jwt.GenerateToken(user.ID, user.IsBusiness)
	if err != nil {
		prometheus.RecordAuthError("token_generation_failed")
		return apperror.Internal(err)
	}

	log.Info("User logged in", zap.String("user_id", user.ID))
	c.Response().Header().Set(middleware.TokenHeader, token)
	return c.String(http.StatusOK, token)
}
