package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account.
// Password holds the bcrypt hash and is never serialized.
type User struct {
	ID         string    `json:"_id" gorm:"type:varchar(36);primaryKey"`
	Name       Name      `json:"name" gorm:"embedded;embeddedPrefix:name_"`
	Email      string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone      string    `json:"phone" gorm:"type:varchar(10);not null"`
	Password   string    `json:"-" gorm:"type:varchar(255);not null"`
	Address    Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Image      Image     `json:"image" gorm:"embedded;embeddedPrefix:image_"`
	IsBusiness bool      `json:"isBusiness" gorm:"not null"`
	IsAdmin    bool      `json:"isAdmin" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"-"`
}

// BeforeCreate assigns the primary key.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// PublicUser is the projection of a user safe to return to any caller.
type PublicUser struct {
	ID         string    `json:"_id"`
	Name       Name      `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    Address   `json:"address"`
	Image      Image     `json:"image"`
	IsBusiness bool      `json:"isBusiness"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Public strips everything outside the public allow-list.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Phone:      u.Phone,
		Address:    u.Address,
		Image:      u.Image,
		IsBusiness: u.IsBusiness,
		CreatedAt:  u.CreatedAt,
	}
}
