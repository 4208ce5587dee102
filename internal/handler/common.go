package handler

import (
	"context"
	"errors"

	"bizcard-service/internal/apperror"
	"bizcard-service/internal/middleware"
	"bizcard-service/internal/model"
	"bizcard-service/internal/policy"
	"bizcard-service/prometheus"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// UserStore is the user persistence the handlers rely on.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	ByID(ctx context.Context, id string) (*model.User, error)
	ByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	Update(ctx context.Context, id string, cols map[string]interface{}) (*model.User, error)
	SetBusiness(ctx context.Context, id string, isBusiness bool) (*model.User, error)
	Delete(ctx context.Context, id string) (*model.User, error)
}

// CardStore is the card persistence the handlers rely on.
type CardStore interface {
	Create(ctx context.Context, c *model.Card) error
	List(ctx context.Context) ([]model.Card, error)
	ByID(ctx context.Context, id string) (*model.Card, error)
	ByUser(ctx context.Context, userID string) ([]model.Card, error)
	Update(ctx context.Context, id string, cols map[string]interface{}) (*model.Card, error)
	Delete(ctx context.Context, id string) (*model.Card, error)
	ToggleLike(ctx context.Context, cardID, userID string) (*model.Card, error)
}

func principal(c echo.Context) (*middleware.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil, apperror.Unauthenticated("Access denied")
	}
	return p, nil
}

// allow records a denial against rule and returns a 403 when ok is false.
func allow(ok bool, rule, msg string) error {
	err := policy.Require(ok, msg)
	if err != nil {
		prometheus.RecordForbidden(rule)
	}
	return err
}

// storeError classifies a persistence failure.
func storeError(err error, notFound string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.NotFound(notFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return &apperror.Error{Kind: apperror.KindConflict, Message: "Duplicate value", Err: err}
	default:
		return apperror.Internal(err)
	}
}
