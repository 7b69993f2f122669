package repositories

import (
	"context"

	"storefront/db"
	"storefront/entities"

	"gorm.io/gorm/clause"
)

type productGormRepository struct {
	db db.Database
}

func NewProductGormRepository(database db.Database) ProductRepository {
	return &productGormRepository{db: database}
}

func (r *productGormRepository) Upsert(ctx context.Context, p *entities.Product) error {
	return r.db.GetDB().WithContext(ctx).Omit(clause.Associations).
		Clauses(clause.OnConflict{UpdateAll: true}).Create(p).Error
}

func (r *productGormRepository) GetByID(ctx context.Context, id uint) (*entities.Product, error) {
	var product entities.Product
	err := r.db.GetDB().WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &product, nil
}

func (r *productGormRepository) GetByIDs(ctx context.Context, ids []uint) ([]entities.Product, error) {
	var products []entities.Product
	if len(ids) == 0 {
		return products, nil
	}
	err := r.db.GetDB().WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productGormRepository) GetAll(ctx context.Context) ([]entities.Product, error) {
	var products []entities.Product
	err := r.db.GetDB().WithContext(ctx).Order("id ASC").Find(&products).Error
	return products, err
}

func (r *productGormRepository) GetByCategoryID(ctx context.Context, categoryID uint) ([]entities.Product, error) {
	var products []entities.Product
	err := r.db.GetDB().WithContext(ctx).Where("category_id = ?", categoryID).Order("id ASC").Find(&products).Error
	return products, err
}

// Update writes every column of an existing product; it never inserts.
func (r *productGormRepository) Update(ctx context.Context, p *entities.Product) error {
	res := r.db.GetDB().WithContext(ctx).Model(p).Select("*").Omit(clause.Associations).Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *productGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.Product{}).Error
}
