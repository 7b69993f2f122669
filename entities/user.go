package entities

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User is a storefront account. The email address doubles as the primary key.
type User struct {
	ID           string `gorm:"type:varchar(255);primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    string `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	u.ID = strings.TrimSpace(u.ID)
	if u.CreatedAt == "" {
		u.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	return
}
