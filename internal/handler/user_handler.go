package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"bizcard-service/internal/apperror"
	"bizcard-service/internal/model"
	"bizcard-service/internal/policy"
	"bizcard-service/pkg/logger"
	"bizcard-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const msgOnlyIsBusiness = "Only 'isBusiness' can be updated"

type UserHandler struct {
	users      UserStore
	bcryptCost int
}

func NewUserHandler(users UserStore, bcryptCost int) *UserHandler {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserHandler{users: users, bcryptCost: bcryptCost}
}

// Register handles POST /users
func (h *UserHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req model.RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	taken, err := h.users.EmailTaken(ctx, req.Email, "")
	if err != nil {
		return apperror.Internal(err)
	}
	if taken {
		log.Info("Registration with existing email", zap.String("email", req.Email))
		return apperror.Conflict("User already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.bcryptCost)
	if err != nil {
		return apperror.Internal(err)
	}

	user := req.ToUser(string(hash))
	if err := h.users.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperror.Conflict("User already registered")
		}
		return apperror.Internal(err)
	}

	log.Info("User registered", zap.String("user_id", user.ID), zap.Bool("is_business", user.IsBusiness))
	return c.JSON(http.StatusOK, user.Public())
}

// List handles GET /users (admin only)
func (h *UserHandler) List(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := allow(policy.IsAdmin(p.User), "admin", "Access denied. Admin only"); err != nil {
		return err
	}

	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return apperror.Internal(err)
	}
	return c.JSON(http.StatusOK, users)
}

// Get handles GET /users/:id
func (h *UserHandler) Get(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := allow(policy.SelfOrAdmin(p.User, id), "self_or_admin", "Access denied"); err != nil {
		return err
	}

	user, err := h.users.ByID(c.Request().Context(), id)
	if err != nil {
		return storeError(err, "User not found")
	}
	return c.JSON(http.StatusOK, user.Public())
}

// Update handles PUT /users/:id. Only the profile fields are written.
func (h *UserHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	p, err := principal(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := allow(policy.IsSelf(p.User, id), "self", "Access denied. You can only update your own profile"); err != nil {
		return err
	}

	var req model.UserUpdateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	taken, err := h.users.EmailTaken(ctx, req.Email, id)
	if err != nil {
		return apperror.Internal(err)
	}
	if taken {
		return apperror.Conflict("Email already in use")
	}

	user, err := h.users.Update(ctx, id, req.Columns())
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Conflict("Email already in use")
	}
	if err != nil {
		return storeError(err, "User not found")
	}

	prometheus.RecordUserOperation("update")
	log.Info("User updated", zap.String("user_id", id))
	return c.JSON(http.StatusOK, user.Public())
}

// SetBusiness handles PATCH /users/:id. The body must be exactly
// {"isBusiness": <bool>}.
func (h *UserHandler) SetBusiness(c echo.Context) error {
	log := logger.FromContext(c)
	p, err := principal(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := allow(policy.IsSelf(p.User, id), "self", "Access denied. You can only update your own profile"); err != nil {
		return err
	}

	var body map[string]json.RawMessage
	dec := json.NewDecoder(c.Request().Body)
	if err := dec.Decode(&body); err != nil || len(body) != 1 {
		return apperror.Validation(msgOnlyIsBusiness)
	}
	if err := expectEOF(dec); err != nil {
		return err
	}
	raw, ok := body["isBusiness"]
	if !ok {
		return apperror.Validation(msgOnlyIsBusiness)
	}
	var isBusiness bool
	if err := json.Unmarshal(raw, &isBusiness); err != nil || string(raw) == "null" {
		return apperror.Validation(`"isBusiness" must be a boolean`)
	}

	user, err := h.users.SetBusiness(c.Request().Context(), id, isBusiness)
	if err != nil {
		return storeError(err, "User not found")
	}

	prometheus.RecordUserOperation("set_business")
	log.Info("Business status changed", zap.String("user_id", id), zap.Bool("is_business", isBusiness))
	return c.JSON(http.StatusOK, user.Public())
}

// Delete handles DELETE /users/:id
func (h *UserHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	p, err := principal(c)
	if err != nil {
		return err
	}
	id := c.Param("id")
	if err := allow(policy.SelfOrAdmin(p.User, id), "self_or_admin", "Access denied"); err != nil {
		return err
	}

	user, err := h.users.Delete(c.Request().Context(), id)
	if err != nil {
		return storeError(err, "User not found")
	}

	prometheus.RecordUserOperation("delete")
	log.Info("User deleted", zap.String("user_id", id), zap.String("by", p.User.ID))
	return c.JSON(http.StatusOK, user.Public())
}
