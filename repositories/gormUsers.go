package repositories

import (
	"context"

	"storefront/db"
	"storefront/entities"

	"gorm.io/gorm/clause"
)

type userGormRepository struct {
	db db.Database
}

func NewUserGormRepository(database db.Database) UserRepository {
	return &userGormRepository{db: database}
}

func (r *userGormRepository) Create(ctx context.Context, u *entities.User) (bool, error) {
	res := r.db.GetDB().WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(u)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *userGormRepository) Upsert(ctx context.Context, u *entities.User) error {
	return r.db.GetDB().WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(u).Error
}

func (r *userGormRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.GetDB().WithContext(ctx).Where("id = ?", email).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *userGormRepository) Update(ctx context.Context, u *entities.User) error {
	return r.db.GetDB().WithContext(ctx).Save(u).Error
}

func (r *userGormRepository) Delete(ctx context.Context, id string) error {
	return r.db.GetDB().WithContext(ctx).Where("id = ?", id).Delete(&entities.User{}).Error
}
