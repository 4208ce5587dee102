package model

import (
	"context"
	"fmt"
	"time"

	"bizcard-service/internal/biznumber"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GeneratorKey is the gorm setting under which a *biznumber.Generator may be
// passed to Card.BeforeCreate.
const GeneratorKey = "bizcard:biznumber_generator"

// Placeholder image used when a card is saved without one.
const (
	DefaultCardImageURL = "https://chisellabs.com/glossary/wp-content/uploads/2021/07/business-to-business.png"
	DefaultCardImageAlt = "business image"
)

// DefaultCardImage returns the canonical placeholder image.
func DefaultCardImage() Image {
	return Image{URL: DefaultCardImageURL, Alt: DefaultCardImageAlt}
}

// Card is a business listing owned by a user.
type Card struct {
	ID          string    `json:"_id" gorm:"type:varchar(36);primaryKey"`
	Title       string    `json:"title" gorm:"type:varchar(255);not null"`
	Subtitle    string    `json:"subtitle" gorm:"type:varchar(255);not null"`
	Description string    `json:"description" gorm:"type:varchar(1024);not null"`
	Address     Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Web         string    `json:"web" gorm:"type:varchar(255)"`
	Email       string    `json:"email" gorm:"type:varchar(255);not null"`
	Phone       string    `json:"phone" gorm:"type:varchar(10);not null"`
	Image       Image     `json:"image" gorm:"embedded;embeddedPrefix:image_"`
	BizNumber   int64     `json:"bizNumber" gorm:"uniqueIndex;not null"`
	UserID      string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"-"`

	Likes   []CardLike `json:"-" gorm:"foreignKey:CardID"`
	LikedBy []string   `json:"likes" gorm:"-"`
}

// CardLike records that a user likes a card. The composite key makes each
// (card, user) pair appear at most once.
type CardLike struct {
	CardID    string `gorm:"type:varchar(36);primaryKey"`
	UserID    string `gorm:"type:varchar(36);primaryKey;index"`
	CreatedAt time.Time
}

// BeforeCreate assigns the primary key and always overwrites BizNumber with a
// freshly generated unique value.
func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}

	gen, ok := tx.Get(GeneratorKey)
	g, _ := gen.(*biznumber.Generator)
	if !ok || g == nil {
		g = biznumber.New(biznumber.DefaultMaxAttempts)
	}

	ctx := tx.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}

	n, err := g.Generate(ctx, func(ctx context.Context, n int64) (bool, error) {
		var count int64
		err := tx.Session(&gorm.Session{NewDB: true}).WithContext(ctx).
			Model(&Card{}).Where("biz_number = ?", n).Count(&count).Error
		return count > 0, err
	})
	if err != nil {
		return fmt.Errorf("assign bizNumber: %w", err)
	}
	c.BizNumber = n
	return nil
}

// AfterCreate initialises the likes list of a new card.
func (c *Card) AfterCreate(tx *gorm.DB) error {
	c.syncLikes()
	return nil
}

// AfterFind flattens the preloaded likes into LikedBy.
func (c *Card) AfterFind(tx *gorm.DB) error {
	c.syncLikes()
	return nil
}

func (c *Card) syncLikes() {
	c.LikedBy = make([]string, 0, len(c.Likes))
	for _, l := range c.Likes {
		c.LikedBy = append(c.LikedBy, l.UserID)
	}
}

// LikedByUser reports whether userID is in the likes set.
func (c *Card) LikedByUser(userID string) bool {
	for _, id := range c.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Models lists every table the service owns, in migration order.
func Models() []interface{} {
	return []interface{}{&User{}, &Card{}, &CardLike{}}
}

// OwnerID returns the id of the user that owns the card.
func (c *Card) OwnerID() string { return c.UserID }
