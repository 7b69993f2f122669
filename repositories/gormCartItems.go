package repositories

import (
	"context"

	"storefront/db"
	"storefront/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type cartItemGormRepository struct {
	db db.Database
}

func NewCartItemGormRepository(database db.Database) CartItemRepository {
	return &cartItemGormRepository{db: database}
}

var cartLineKey = []clause.Column{{Name: "user_id"}, {Name: "product_id"}}

func (r *cartItemGormRepository) Upsert(ctx context.Context, item *entities.CartItem) error {
	return r.db.GetDB().WithContext(ctx).Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   cartLineKey,
			DoUpdates: clause.AssignmentColumns([]string{"quantity", "content"}),
		}).Create(item).Error
}

func (r *cartItemGormRepository) Increment(ctx context.Context, userID string, productID uint, delta int) error {
	item := &entities.CartItem{UserID: userID, ProductID: productID, Quantity: delta}
	return r.db.GetDB().WithContext(ctx).Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: cartLineKey,
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + ?", delta),
			}),
		}).Create(item).Error
}

func (r *cartItemGormRepository) Decrement(ctx context.Context, userID string, productID uint) (bool, error) {
	res := r.db.GetDB().WithContext(ctx).Model(&entities.CartItem{}).
		Where("user_id = ? AND product_id = ? AND quantity > 1", userID, productID).
		Update("quantity", gorm.Expr("quantity - 1"))
	return res.RowsAffected > 0, res.Error
}

func (r *cartItemGormRepository) Get(ctx context.Context, userID string, productID uint) (*entities.CartItem, error) {
	var item entities.CartItem
	err := r.db.GetDB().WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *cartItemGormRepository) GetByUserID(ctx context.Context, userID string) ([]entities.CartItem, error) {
	var items []entities.CartItem
	err := r.db.GetDB().WithContext(ctx).Where("user_id = ?", userID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *cartItemGormRepository) Update(ctx context.Context, item *entities.CartItem) error {
	return r.db.GetDB().WithContext(ctx).Omit(clause.Associations).Save(item).Error
}

func (r *cartItemGormRepository) Delete(ctx context.Context, userID string, productID uint) error {
	return r.db.GetDB().WithContext(ctx).Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&entities.CartItem{}).Error
}

func (r *cartItemGormRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.GetDB().WithContext(ctx).Where("user_id = ?", userID).Delete(&entities.CartItem{}).Error
}
