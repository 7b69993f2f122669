package repositories

import (
	"context"

	"storefront/db"
	"storefront/entities"

	"gorm.io/gorm/clause"
)

type favoriteGormRepository struct {
	db db.Database
}

func NewFavoriteGormRepository(database db.Database) FavoriteRepository {
	return &favoriteGormRepository{db: database}
}

func (r *favoriteGormRepository) Add(ctx context.Context, f *entities.Favorite) error {
	return r.db.GetDB().WithContext(ctx).Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).Create(f).Error
}

func (r *favoriteGormRepository) Remove(ctx context.Context, userID string, productID uint) (bool, error) {
	res := r.db.GetDB().WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&entities.Favorite{})
	return res.RowsAffected > 0, res.Error
}

func (r *favoriteGormRepository) GetByUserID(ctx context.Context, userID string) ([]entities.Favorite, error) {
	var favorites []entities.Favorite
	err := r.db.GetDB().WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&favorites).Error
	return favorites, err
}

func (r *favoriteGormRepository) Exists(ctx context.Context, userID string, productID uint) (bool, error) {
	var count int64
	err := r.db.GetDB().WithContext(ctx).Model(&entities.Favorite{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error
	return count > 0, err
}

func (r *favoriteGormRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.GetDB().WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.Favorite{}).Error
}
