package repositories

import (
	"context"
	"errors"

	"storefront/entities"
)

// ErrNotFound is returned by single-row lookups that match nothing.
var ErrNotFound = errors.New("record not found")

type UserRepository interface {
	// Create inserts u unless a user with the same id exists; created reports which happened.
	Create(ctx context.Context, u *entities.User) (created bool, err error)
	Upsert(ctx context.Context, u *entities.User) error
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, u *entities.User) error
	Delete(ctx context.Context, id string) error
}

type CategoryRepository interface {
	Upsert(ctx context.Context, c *entities.Category) error
	GetByID(ctx context.Context, id uint) (*entities.Category, error)
	GetAll(ctx context.Context) ([]entities.Category, error)
	Update(ctx context.Context, c *entities.Category) error
	Delete(ctx context.Context, id uint) error
}

type ProductRepository interface {
	Upsert(ctx context.Context, p *entities.Product) error
	GetByID(ctx context.Context, id uint) (*entities.Product, error)
	GetByIDs(ctx context.Context, ids []uint) ([]entities.Product, error)
	GetAll(ctx context.Context) ([]entities.Product, error)
	GetByCategoryID(ctx context.Context, categoryID uint) ([]entities.Product, error)
	Update(ctx context.Context, p *entities.Product) error
	Delete(ctx context.Context, id uint) error
}

type FavoriteRepository interface {
	// Add is a no-op when the user already likes the product.
	Add(ctx context.Context, f *entities.Favorite) error
	Remove(ctx context.Context, userID string, productID uint) (removed bool, err error)
	GetByUserID(ctx context.Context, userID string) ([]entities.Favorite, error)
	Exists(ctx context.Context, userID string, productID uint) (bool, error)
	DeleteByUserID(ctx context.Context, userID string) error
}

type CartItemRepository interface {
	Upsert(ctx context.Context, item *entities.CartItem) error
	// Increment adds delta to the line's quantity, creating the line at delta when missing.
	Increment(ctx context.Context, userID string, productID uint, delta int) error
	// Decrement lowers the quantity by one unless it is already 1.
	Decrement(ctx context.Context, userID string, productID uint) (changed bool, err error)
	Get(ctx context.Context, userID string, productID uint) (*entities.CartItem, error)
	GetByUserID(ctx context.Context, userID string) ([]entities.CartItem, error)
	Update(ctx context.Context, item *entities.CartItem) error
	Delete(ctx context.Context, userID string, productID uint) error
	DeleteByUserID(ctx context.Context, userID string) error
}
