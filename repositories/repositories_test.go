package repositories

import (
	"context"
	"testing"

	"storefront/db"
	"storefront/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	database   db.Database
	users      UserRepository
	categories CategoryRepository
	products   ProductRepository
	favorites  FavoriteRepository
	cart       CartItemRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database, err := db.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	f := &fixture{
		database:   database,
		users:      NewUserGormRepository(database),
		categories: NewCategoryGormRepository(database),
		products:   NewProductGormRepository(database),
		favorites:  NewFavoriteGormRepository(database),
		cart:       NewCartItemGormRepository(database),
	}
	created, err := f.users.Create(context.Background(), &entities.User{ID: "ada@example.com", Name: "Ada", PasswordHash: "hash"})
	require.NoError(t, err)
	require.True(t, created)
	return f
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.database.GetDB().Model(model).Count(&n).Error)
	return n
}

func TestUserCreateIsConditional(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.users.Create(ctx, &entities.User{ID: "ada@example.com", Name: "Impostor", PasswordHash: "other"})
	require.NoError(t, err)
	assert.False(t, created)

	user, err := f.users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)

	_, err = f.users.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFavoriteAddTwiceKeepsOneRow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.favorites.Add(ctx, &entities.Favorite{UserID: "ada@example.com", ProductID: 1}))
	require.NoError(t, f.favorites.Add(ctx, &entities.Favorite{UserID: "ada@example.com", ProductID: 1}))

	favorites, err := f.favorites.GetByUserID(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.EqualValues(t, 1, favorites[0].ProductID)

	ok, err := f.favorites.Exists(ctx, "ada@example.com", 1)
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := f.favorites.Remove(ctx, "ada@example.com", 1)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = f.favorites.Remove(ctx, "ada@example.com", 1)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestFavoriteRejectsUnknownProduct(t *testing.T) {
	f := newFixture(t)
	err := f.favorites.Add(context.Background(), &entities.Favorite{UserID: "ada@example.com", ProductID: 404})
	assert.Error(t, err)
}

func TestDeletingProductCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.favorites.Add(ctx, &entities.Favorite{UserID: "ada@example.com", ProductID: 2}))
	require.NoError(t, f.cart.Increment(ctx, "ada@example.com", 2, 1))
	require.NoError(t, f.cart.Increment(ctx, "ada@example.com", 3, 1))

	require.NoError(t, f.products.Delete(ctx, 2))

	assert.Zero(t, f.count(t, &entities.Favorite{}))
	items, err := f.cart.GetByUserID(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.EqualValues(t, 3, items[0].ProductID)
}

func TestDeletingUserCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.favorites.Add(ctx, &entities.Favorite{UserID: "ada@example.com", ProductID: 1}))
	require.NoError(t, f.cart.Increment(ctx, "ada@example.com", 1, 2))

	require.NoError(t, f.users.Delete(ctx, "ada@example.com"))

	assert.Zero(t, f.count(t, &entities.Favorite{}))
	assert.Zero(t, f.count(t, &entities.CartItem{}))
}

func TestDeletingCategoryCascadesToProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hot, err := f.products.GetByCategoryID(ctx, 1)
	require.NoError(t, err)
	require.Len(t, hot, 2)

	require.NoError(t, f.categories.Delete(ctx, 1))

	all, err := f.products.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProductUpsertReplaces(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	p := &entities.Product{ID: 1, Name: "Macchiato XL", Price: 175, CategoryID: 1}
	require.NoError(t, f.products.Upsert(ctx, p))

	got, err := f.products.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Macchiato XL", got.Name)
	assert.Equal(t, 175.0, got.Price)
	assert.EqualValues(t, 4, f.count(t, &entities.Product{}))

	fresh := &entities.Product{Name: "Mocha", Price: 160, CategoryID: 1}
	require.NoError(t, f.products.Upsert(ctx, fresh))
	assert.NotZero(t, fresh.ID)

	err = f.products.Upsert(ctx, &entities.Product{Name: "Ghost", Price: 1, CategoryID: 99})
	assert.Error(t, err)

	_, err = f.products.GetByID(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := &entities.Category{Name: "Desserts"}
	require.NoError(t, f.categories.Upsert(ctx, c))
	require.NotZero(t, c.ID)

	c.Name = "Sweets"
	require.NoError(t, f.categories.Update(ctx, c))

	got, err := f.categories.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sweets", got.Name)

	all, err := f.categories.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 4)

	err = f.categories.Update(ctx, &entities.Category{ID: 50, Name: "Ghosts"})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.categories.GetByID(ctx, 50)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProductUpdateNeverInserts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.products.Update(ctx, &entities.Product{ID: 99, Name: "Ghost", Price: 1, CategoryID: 1})
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.products.GetByID(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, f.products.Update(ctx, &entities.Product{ID: 2, Name: "Ristretto", Price: 110, Description: "Hot drink", CategoryID: 1}))
	got, err := f.products.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Ristretto", got.Name)
}

func TestCartIncrementAndDecrement(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.cart.Increment(ctx, "ada@example.com", 1, 1))
	require.NoError(t, f.cart.Increment(ctx, "ada@example.com", 1, 1))

	item, err := f.cart.Get(ctx, "ada@example.com", 1)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	changed, err := f.cart.Decrement(ctx, "ada@example.com", 1)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = f.cart.Decrement(ctx, "ada@example.com", 1)
	require.NoError(t, err)
	assert.False(t, changed)

	item, err = f.cart.Get(ctx, "ada@example.com", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)

	require.NoError(t, f.cart.Delete(ctx, "ada@example.com", 1))
	_, err = f.cart.Get(ctx, "ada@example.com", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartUpsertKeepsOneLinePerProduct(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	note := "no sugar"
	require.NoError(t, f.cart.Upsert(ctx, &entities.CartItem{UserID: "ada@example.com", ProductID: 2, Quantity: 3}))
	require.NoError(t, f.cart.Upsert(ctx, &entities.CartItem{UserID: "ada@example.com", ProductID: 2, Quantity: 5, Content: &note}))

	items, err := f.cart.GetByUserID(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	require.NotNil(t, items[0].Content)
	assert.Equal(t, "no sugar", *items[0].Content)

	require.NoError(t, f.cart.DeleteByUserID(ctx, "ada@example.com"))
	assert.Zero(t, f.count(t, &entities.CartItem{}))
}
