//go:build integration

package repositories

import (
	"context"
	"testing"
	"time"

	"storefront/confs"
	"storefront/db"
	"storefront/entities"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// newPostgresFixture starts a PostgreSQL container and opens the store on it.
func newPostgresFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("storefront"),
		postgres.WithUsername("storefront"),
		postgres.WithPassword("storefront"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "start PostgreSQL container")
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	database, err := db.Connect(&confs.Config{DBDriver: "postgres", DBURL: connStr}, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	return &fixture{
		database:   database,
		users:      NewUserGormRepository(database),
		categories: NewCategoryGormRepository(database),
		products:   NewProductGormRepository(database),
		favorites:  NewFavoriteGormRepository(database),
		cart:       NewCartItemGormRepository(database),
	}
}

func TestPostgresStoreRules(t *testing.T) {
	f := newPostgresFixture(t)
	ctx := context.Background()

	version, err := db.StoredVersion(f.database.GetDB())
	require.NoError(t, err)
	assert.Equal(t, db.SchemaVersion, version)

	products, err := f.products.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, 4)

	created, err := f.users.Create(ctx, &entities.User{ID: "ada@example.com", Name: "Ada", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.True(t, created)
	created, err = f.users.Create(ctx, &entities.User{ID: "ada@example.com", Name: "Other", PasswordHash: "other"})
	require.NoError(t, err)
	assert.False(t, created)

	user, err := f.users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)

	// favorites ignore duplicates
	require.NoError(t, f.favorites.Add(ctx, &entities.Favorite{UserID: "ada@example.com", ProductID: products[0].ID}))
	require.NoError(t, f.favorites.Add(ctx, &entities.Favorite{UserID: "ada@example.com", ProductID: products[0].ID}))
	favorites, err := f.favorites.GetByUserID(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Len(t, favorites, 1)

	// cart increments in place
	require.NoError(t, f.cart.Increment(ctx, "ada@example.com", products[0].ID, 1))
	require.NoError(t, f.cart.Increment(ctx, "ada@example.com", products[0].ID, 1))
	require.NoError(t, f.cart.Increment(ctx, "ada@example.com", products[2].ID, 1))
	item, err := f.cart.Get(ctx, "ada@example.com", products[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	// a foreign key violation is rejected
	err = f.cart.Increment(ctx, "ada@example.com", 9999, 1)
	assert.Error(t, err)

	// deleting a category removes its products and their favorites and cart lines
	require.NoError(t, f.categories.Delete(ctx, products[0].CategoryID))
	_, err = f.products.GetByID(ctx, products[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)

	favorites, err = f.favorites.GetByUserID(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Empty(t, favorites)

	items, err := f.cart.GetByUserID(ctx, "ada@example.com")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, products[2].ID, items[0].ProductID)

	// deleting the user empties the rest
	require.NoError(t, f.users.Delete(ctx, "ada@example.com"))
	items, err = f.cart.GetByUserID(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Empty(t, items)
}
