package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront/entities"
	"storefront/repositories"
)

// ErrInvalidInput wraps rejected catalog writes.
var ErrInvalidInput = errors.New("invalid input")

// CatalogUseCase exposes categories and products.
type CatalogUseCase struct {
	CategoryRepo repositories.CategoryRepository
	ProductRepo  repositories.ProductRepository
}

func NewCatalogUseCase(categories repositories.CategoryRepository, products repositories.ProductRepository) *CatalogUseCase {
	return &CatalogUseCase{CategoryRepo: categories, ProductRepo: products}
}

// ============= Category Use Cases =============

func validateCategory(c *entities.Category) error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	return nil
}

func (uc *CatalogUseCase) AddCategory(ctx context.Context, c *entities.Category) error {
	if err := validateCategory(c); err != nil {
		return err
	}
	return uc.CategoryRepo.Upsert(ctx, c)
}

// UpdateCategory changes an existing category. Unknown ids give ErrNotFound.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, c *entities.Category) error {
	if err := validateCategory(c); err != nil {
		return err
	}
	if _, err := uc.CategoryRepo.GetByID(ctx, c.ID); err != nil {
		return err
	}
	return uc.CategoryRepo.Update(ctx, c)
}

func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id uint) error {
	return uc.CategoryRepo.Delete(ctx, id)
}

func (uc *CatalogUseCase) GetCategory(ctx context.Context, id uint) (*entities.Category, error) {
	return uc.CategoryRepo.GetByID(ctx, id)
}

func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]entities.Category, error) {
	return uc.CategoryRepo.GetAll(ctx)
}

// ============= Product Use Cases =============

func validateProduct(p *entities.Product) error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: product name is required", ErrInvalidInput)
	}
	if p.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrInvalidInput)
	}
	return nil
}

func (uc *CatalogUseCase) AddProduct(ctx context.Context, p *entities.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	return uc.ProductRepo.Upsert(ctx, p)
}

// UpdateProduct changes an existing product. Unknown ids give ErrNotFound.
func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, p *entities.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if _, err := uc.ProductRepo.GetByID(ctx, p.ID); err != nil {
		return err
	}
	return uc.ProductRepo.Update(ctx, p)
}

func (uc *CatalogUseCase) DeleteProduct(ctx context.Context, id uint) error {
	return uc.ProductRepo.Delete(ctx, id)
}

func (uc *CatalogUseCase) GetProduct(ctx context.Context, id uint) (*entities.Product, error) {
	return uc.ProductRepo.GetByID(ctx, id)
}

func (uc *CatalogUseCase) GetProducts(ctx context.Context, ids []uint) ([]entities.Product, error) {
	return uc.ProductRepo.GetByIDs(ctx, ids)
}

func (uc *CatalogUseCase) ListProducts(ctx context.Context) ([]entities.Product, error) {
	return uc.ProductRepo.GetAll(ctx)
}

func (uc *CatalogUseCase) ListProductsByCategory(ctx context.Context, categoryID uint) ([]entities.Product, error) {
	return uc.ProductRepo.GetByCategoryID(ctx, categoryID)
}
