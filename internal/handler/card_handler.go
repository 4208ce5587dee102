package handler

import (
	"errors"
	"net/http"

	"bizcard-service/internal/apperror"
	"bizcard-service/internal/biznumber"
	"bizcard-service/internal/model"
	"bizcard-service/internal/policy"
	"bizcard-service/pkg/logger"
	"bizcard-service/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type CardHandler struct {
	cards CardStore
}

func NewCardHandler(cards CardStore) *CardHandler {
	return &CardHandler{cards: cards}
}

type cardMessage struct {
	Message string      `json:"message"`
	Card    *model.Card `json:"card"`
}

// Create handles POST /cards (business users only)
func (h *CardHandler) Create(c echo.Context) error {
	log := logger.FromContext(c)
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := allow(policy.IsBusiness(p.User), "business", "Access denied. Only business users can create cards"); err != nil {
		return err
	}

	var req model.CardRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	card := req.ToCard(p.User.ID)
	if err := h.cards.Create(c.Request().Context(), card); err != nil {
		if errors.Is(err, biznumber.ErrExhausted) {
			log.Error("No free bizNumber", zap.Error(err))
		}
		return apperror.Internal(err)
	}

	prometheus.RecordCardOperation("create")
	log.Info("Card created",
		zap.String("card_id", card.ID),
		zap.Int64("biz_number", card.BizNumber),
		zap.String("user_id", p.User.ID))

	return c.JSON(http.StatusOK, echo.Map{
		"card":         card,
		"creatingUser": p.User.Public(),
	})
}

// List handles GET /cards
func (h *CardHandler) List(c echo.Context) error {
	cards, err := h.cards.List(c.Request().Context())
	if err != nil {
		return apperror.Internal(err)
	}
	return c.JSON(http.StatusOK, cards)
}

// MyCards handles GET /cards/my-cards
func (h *CardHandler) MyCards(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}
	cards, err := h.cards.ByUser(c.Request().Context(), p.User.ID)
	if err != nil {
		return apperror.Internal(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Cards found",
		"cards":   cards,
	})
}

// Get handles GET /cards/:id
func (h *CardHandler) Get(c echo.Context) error {
	card, err := h.cards.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return storeError(err, "Card not found")
	}
	return c.JSON(http.StatusOK, card)
}

// Update handles PUT /cards/:id. Only the owning business user may edit;
// bizNumber, owner and likes are never taken from the body.
func (h *CardHandler) Update(c echo.Context) error {
	log := logger.FromContext(c)
	p, err := principal(c)
	if err != nil {
		return err
	}
	if err := allow(policy.IsBusiness(p.User), "business", "Access denied. Only business users can update cards"); err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	existing, err := h.cards.ByID(ctx, id)
	if err != nil {
		return storeError(err, "Card not found")
	}
	if err := allow(policy.CanEditCard(p.User, existing), "card_owner", "Access denied. Only the card owner can update this card"); err != nil {
		return err
	}

	var req model.CardRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	card, err := h.cards.Update(ctx, id, req.Columns())
	if err != nil {
		return storeError(err, "Card not found")
	}

	prometheus.RecordCardOperation("update")
	log.Info("Card updated", zap.String("card_id", id))
	return c.JSON(http.StatusOK, cardMessage{Message: "Card updated", Card: card})
}

// Like handles PATCH /cards/:id by toggling the caller's like.
func (h *CardHandler) Like(c echo.Context) error {
	log := logger.FromContext(c)
	p, err := principal(c)
	if err != nil {
		return err
	}

	id := c.Param("id")
	card, err := h.cards.ToggleLike(c.Request().Context(), id, p.User.ID)
	if err != nil {
		return storeError(err, "Card not found")
	}
	liked := card.LikedByUser(p.User.ID)

	op := "unlike"
	if liked {
		op = "like"
	}
	prometheus.RecordCardOperation(op)
	log.Info("Card like toggled", zap.String("card_id", id), zap.Bool("liked", liked))
	return c.JSON(http.StatusOK, cardMessage{Message: "Card updated", Card: card})
}

// Delete handles DELETE /cards/:id. Business owners and business admins only.
func (h *CardHandler) Delete(c echo.Context) error {
	log := logger.FromContext(c)
	p, err := principal(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	id := c.Param("id")
	existing, err := h.cards.ByID(ctx, id)
	if err != nil {
		return storeError(err, "Card not found")
	}
	if err := allow(policy.CanDeleteCard(p.User, existing), "card_delete", "Access denied. Only the card owner or an admin can delete this card"); err != nil {
		return err
	}

	card, err := h.cards.Delete(ctx, id)
	if err != nil {
		return storeError(err, "Card not found")
	}

	prometheus.RecordCardOperation("delete")
	log.Info("Card deleted", zap.String("card_id", id), zap.String("by", p.User.ID))
	return c.JSON(http.StatusOK, cardMessage{Message: "Card deleted", Card: card})
}
