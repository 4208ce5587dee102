package repository

import (
	"context"
	"time"

	"bizcard-service/internal/biznumber"
	"bizcard-service/internal/model"
	"bizcard-service/prometheus"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CardRepo struct {
	db  *gorm.DB
	gen *biznumber.Generator
}

func NewCardRepo(db *gorm.DB, gen *biznumber.Generator) *CardRepo {
	if gen == nil {
		gen = biznumber.New(biznumber.DefaultMaxAttempts)
	}
	return &CardRepo{db: db, gen: gen}
}

func withLikes(db *gorm.DB) *gorm.DB {
	return db.Preload("Likes", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at, user_id")
	})
}

// Create inserts c with a freshly generated bizNumber. When the generator
// runs out of attempts the error wraps biznumber.ErrExhausted.
func (r *CardRepo) Create(ctx context.Context, c *model.Card) error {
	defer prometheus.TrackDBOperation("card.create")(time.Now())
	return r.db.WithContext(ctx).Set(model.GeneratorKey, r.gen).Create(c).Error
}

func (r *CardRepo) List(ctx context.Context) ([]model.Card, error) {
	defer prometheus.TrackDBOperation("card.list")(time.Now())
	cards := make([]model.Card, 0)
	if err := withLikes(r.db.WithContext(ctx)).Order("created_at").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *CardRepo) ByID(ctx context.Context, id string) (*model.Card, error) {
	defer prometheus.TrackDBOperation("card.by_id")(time.Now())
	var c model.Card
	if err := withLikes(r.db.WithContext(ctx)).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CardRepo) ByUser(ctx context.Context, userID string) ([]model.Card, error) {
	defer prometheus.TrackDBOperation("card.by_user")(time.Now())
	cards := make([]model.Card, 0)
	err := withLikes(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// Update writes cols to the card and returns the stored result.
func (r *CardRepo) Update(ctx context.Context, id string, cols map[string]interface{}) (*model.Card, error) {
	defer prometheus.TrackDBOperation("card.update")(time.Now())
	var c model.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Card{}).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return withLikes(tx).First(&c, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes the card and its likes, returning the card as it was.
func (r *CardRepo) Delete(ctx context.Context, id string) (*model.Card, error) {
	defer prometheus.TrackDBOperation("card.delete")(time.Now())
	var c model.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := withLikes(tx).First(&c, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Where("card_id = ?", id).Delete(&model.CardLike{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Card{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ToggleLike removes userID from the card's likes if present and adds it
// otherwise, in one transaction. The returned card reflects the new likes.
func (r *CardRepo) ToggleLike(ctx context.Context, cardID, userID string) (*model.Card, error) {
	defer prometheus.TrackDBOperation("card.toggle_like")(time.Now())
	var c model.Card
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Card{}).Where("id = ?", cardID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}

		res := tx.Where("card_id = ? AND user_id = ?", cardID, userID).Delete(&model.CardLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			like := model.CardLike{CardID: cardID, UserID: userID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return err
			}
		}

		return withLikes(tx).First(&c, "id = ?", cardID).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
