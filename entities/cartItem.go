package entities

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is one cart line: a product and how many of it the user holds.
type CartItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string  `gorm:"type:varchar(255);not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int     `gorm:"not null;default:1" json:"quantity"`
	Content   *string `json:"content,omitempty"` // free-text note for the line
	AddedAt   string  `json:"added_at"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Product *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *CartItem) BeforeCreate(tx *gorm.DB) (err error) {
	if c.AddedAt == "" {
		c.AddedAt = time.Now().UTC().Format(time.RFC3339Nano)
	}
	if c.Quantity <= 0 {
		c.Quantity = 1
	}
	return
}
