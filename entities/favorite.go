package entities

import (
	"time"

	"gorm.io/gorm"
)

// Favorite marks a product as liked by a user. A user can like a product once.
type Favorite struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string `gorm:"type:varchar(255);not null;uniqueIndex:idx_favorite_user_product" json:"user_id"`
	ProductID uint   `gorm:"not null;uniqueIndex:idx_favorite_user_product" json:"product_id"`
	AddedAt   string `json:"added_at"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) (err error) {
	if f.AddedAt == "" {
		f.AddedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	return
}
