package db

import (
	"storefront/entities"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func strPtr(s string) *string { return &s }

// Seed inserts the default catalog when the category and product tables are
// empty. Non-empty tables are left untouched.
func Seed(db *gorm.DB, log *logrus.Logger) error {
	var categoryCount, productCount int64
	if err := db.Model(&entities.Category{}).Count(&categoryCount).Error; err != nil {
		return err
	}
	if err := db.Model(&entities.Product{}).Count(&productCount).Error; err != nil {
		return err
	}

	categories := []entities.Category{
		{Name: "Hot Drinks"},
		{Name: "Cold Drinks"},
		{Name: "Food"},
	}
	if categoryCount == 0 {
		log.Info("Seeding categories...")
		if err := db.Create(&categories).Error; err != nil {
			return err
		}
	} else if err := db.Order("id ASC").Limit(3).Find(&categories).Error; err != nil {
		return err
	}

	if productCount > 0 || len(categories) < 3 {
		return nil
	}

	hot, cold, food := categories[0].ID, categories[1].ID, categories[2].ID
	products := []entities.Product{
		{Name: "Macchiato", Price: 150.0, Description: "Hot drink", CategoryID: hot,
			ImageURL: strPtr("https://static.vecteezy.com/system/resources/thumbnails/025/282/026/small/stock-of-mix-a-cup-coffee-latte-more-motive-top-view-foodgraphy-generative-ai-photo.jpg")},
		{Name: "Espresso", Price: 100.0, Description: "Hot drink", CategoryID: hot,
			ImageURL: strPtr("https://l.icdbcdn.com/oh/53d6fac5-34ae-48dc-9783-79852170b41d.jpg?w=1040")},
		{Name: "Latte", Price: 100.0, Description: "Cold drink", CategoryID: cold,
			ImageURL: strPtr("https://img.freepik.com/premium-photo/glass-iced-latte-coffee-coffee-shop_653449-992.jpg")},
		{Name: "Cookie", Price: 250.0, Description: "Cookie", CategoryID: food,
			ImageURL: strPtr("https://st.depositphotos.com/37930168/61608/i/450/depositphotos_616088430-stock-photo-chocolate-chip-cookies-white-bowl.jpg")},
	}
	log.Info("Seeding products...")
	if err := db.Create(&products).Error; err != nil {
		return err
	}
	log.Info("Seeding complete.")
	return nil
}
