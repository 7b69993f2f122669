package entities

type Product struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"not null" json:"name"`
	Price       float64 `gorm:"not null" json:"price"`
	ImageURL    *string `json:"image_url,omitempty"`
	Description string  `json:"description"`
	CategoryID  uint    `gorm:"index;not null" json:"category_id"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
}
