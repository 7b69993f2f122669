package repositories

import (
	"context"

	"storefront/db"
	"storefront/entities"

	"gorm.io/gorm/clause"
)

type categoryGormRepository struct {
	db db.Database
}

func NewCategoryGormRepository(database db.Database) CategoryRepository {
	return &categoryGormRepository{db: database}
}

func (r *categoryGormRepository) Upsert(ctx context.Context, c *entities.Category) error {
	return r.db.GetDB().WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(c).Error
}

func (r *categoryGormRepository) GetByID(ctx context.Context, id uint) (*entities.Category, error) {
	var category entities.Category
	err := r.db.GetDB().WithContext(ctx).Where("id = ?", id).First(&category).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &category, nil
}

func (r *categoryGormRepository) GetAll(ctx context.Context) ([]entities.Category, error) {
	var categories []entities.Category
	err := r.db.GetDB().WithContext(ctx).Order("id ASC").Find(&categories).Error
	return categories, err
}

// Update renames an existing category; it never inserts.
func (r *categoryGormRepository) Update(ctx context.Context, c *entities.Category) error {
	res := r.db.GetDB().WithContext(ctx).Model(c).Select("*").Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *categoryGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.Category{}).Error
}
