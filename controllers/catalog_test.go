package controllers

import (
	"context"
	"errors"
	"testing"

	"storefront/cart"
	"storefront/db"
	"storefront/repositories"
	"storefront/session"
	"storefront/usecases"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestCatalogLoad(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "ada@example.com")
	require.NoError(t, h.favorites.Add(context.Background(), "ada@example.com", 3))

	c := h.catalogController()
	require.NoError(t, c.Load(context.Background()))

	s := c.State().Value()
	assert.Len(t, s.Categories, 3)
	assert.Len(t, s.AllProducts, 4)
	assert.Equal(t, s.AllProducts, s.FilteredProducts)
	assert.Equal(t, AllCategories, s.SelectedCategory)
	assert.Equal(t, []uint{3}, s.FavoriteProductIDs)
	assert.Empty(t, s.Error)
}

func TestCatalogFiltersRecomputeOnEveryInput(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "ada@example.com")
	c := h.catalogController()
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	var published int
	cancel := c.State().Subscribe(func(CatalogState) { published++ })
	defer cancel()

	s := c.SelectCategory(CategoryFilter(1))
	assert.Len(t, s.FilteredProducts, 2)

	s = c.Search("ESP")
	require.Len(t, s.FilteredProducts, 1)
	assert.Equal(t, "Espresso", s.FilteredProducts[0].Name)

	s = c.SelectCategory(FavoritesOnly)
	assert.Empty(t, s.FilteredProducts)

	require.NoError(t, c.ToggleFavorite(ctx, 2))
	s = c.State().Value()
	require.Len(t, s.FilteredProducts, 1)
	assert.Equal(t, "Added to favorites", s.Message)

	require.NoError(t, c.ToggleFavorite(ctx, 2))
	s = c.State().Value()
	assert.Empty(t, s.FilteredProducts)
	assert.Equal(t, "Removed from favorites", s.Message)

	ok, err := h.favorites.IsFavorite(ctx, "ada@example.com", 2)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 5, published)
}

func TestCatalogNeedsSignInForFavoritesAndCart(t *testing.T) {
	h := newHarness(t)
	c := h.catalogController()
	ctx := context.Background()
	require.NoError(t, c.Load(ctx))

	err := c.ToggleFavorite(ctx, 1)
	assert.ErrorIs(t, err, ErrNotSignedIn)
	assert.Contains(t, c.State().Value().Error, "Failed to update favorites")

	err = c.AddToCart(ctx, 1)
	assert.ErrorIs(t, err, ErrNotSignedIn)

	c.ClearMessage()
	assert.Empty(t, c.State().Value().Error)
}

func TestCatalogAddToCart(t *testing.T) {
	h := newHarness(t)
	h.signIn(t, "ada@example.com")
	c := h.catalogController()
	ctx := context.Background()

	require.NoError(t, c.AddToCart(ctx, 4))
	require.NoError(t, c.AddToCart(ctx, 4))
	assert.Equal(t, "Product added to cart", c.State().Value().Message)

	snap, err := h.carts.For("ada@example.com").Snapshot(ctx)
	require.NoError(t, err)
	assert.Equal(t, []uint{4, 4}, snap.ProductIDs())

	p, err := c.Product(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Cookie", p.Name)

	_, err = c.Product(ctx, 404)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestCatalogSurfacesStorageErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()
	mock.MatchExpectationsInOrder(false)

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	database := &db.GormDatabase{DB: gdb}

	mock.ExpectQuery(`FROM "categories"`).WillReturnError(errors.New("disk I/O error"))
	mock.ExpectQuery(`FROM "products"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "price", "image_url", "description", "category_id"}).
			AddRow(1, "Espresso", 100.0, nil, "Hot drink", 1))

	store := session.NewMemoryStore()
	c := NewCatalogController(
		usecases.NewCatalogUseCase(repositories.NewCategoryGormRepository(database), repositories.NewProductGormRepository(database)),
		usecases.NewFavoriteUseCase(repositories.NewFavoriteGormRepository(database)),
		usecases.NewUserUseCase(repositories.NewUserGormRepository(database), store),
		cart.NewManager(repositories.NewCartItemGormRepository(database)),
		quietLogger(),
	)

	err = c.Load(context.Background())
	assert.Error(t, err)

	s := c.State().Value()
	assert.Contains(t, s.Error, "Failed to load categories")
	assert.Contains(t, s.Error, "disk I/O error")
	assert.Empty(t, s.Categories)
	require.Len(t, s.AllProducts, 1)
	assert.Equal(t, "Espresso", s.FilteredProducts[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
