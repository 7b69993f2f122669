package usecases

import (
	"context"

	"storefront/entities"
	"storefront/repositories"
)

type FavoriteUseCase struct {
	repo repositories.FavoriteRepository
}

func NewFavoriteUseCase(r repositories.FavoriteRepository) *FavoriteUseCase {
	return &FavoriteUseCase{repo: r}
}

func (uc *FavoriteUseCase) Add(ctx context.Context, userID string, productID uint) error {
	return uc.repo.Add(ctx, &entities.Favorite{UserID: userID, ProductID: productID})
}

// Remove deletes the favorite by its (user, product) key and reports whether it existed.
func (uc *FavoriteUseCase) Remove(ctx context.Context, userID string, productID uint) (bool, error) {
	return uc.repo.Remove(ctx, userID, productID)
}

func (uc *FavoriteUseCase) List(ctx context.Context, userID string) ([]entities.Favorite, error) {
	return uc.repo.GetByUserID(ctx, userID)
}

// ProductIDs returns the set of products the user likes.
func (uc *FavoriteUseCase) ProductIDs(ctx context.Context, userID string) (map[uint]bool, error) {
	favorites, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make(map[uint]bool, len(favorites))
	for _, f := range favorites {
		ids[f.ProductID] = true
	}
	return ids, nil
}

func (uc *FavoriteUseCase) IsFavorite(ctx context.Context, userID string, productID uint) (bool, error) {
	return uc.repo.Exists(ctx, userID, productID)
}

func (uc *FavoriteUseCase) Clear(ctx context.Context, userID string) error {
	return uc.repo.DeleteByUserID(ctx, userID)
}
