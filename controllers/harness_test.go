package controllers

import (
	"context"
	"testing"

	"storefront/cart"
	"storefront/db"
	"storefront/repositories"
	"storefront/services"
	"storefront/session"
	"storefront/usecases"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type harness struct {
	database  db.Database
	store     *session.MemoryStore
	users     *usecases.UserUseCase
	catalog   *usecases.CatalogUseCase
	favorites *usecases.FavoriteUseCase
	carts     *cart.Manager
	log       *logrus.Logger
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	database, err := db.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	store := session.NewMemoryStore()
	return &harness{
		database:  database,
		store:     store,
		users:     usecases.NewUserUseCase(repositories.NewUserGormRepository(database), store),
		catalog:   usecases.NewCatalogUseCase(repositories.NewCategoryGormRepository(database), repositories.NewProductGormRepository(database)),
		favorites: usecases.NewFavoriteUseCase(repositories.NewFavoriteGormRepository(database)),
		carts:     cart.NewManager(repositories.NewCartItemGormRepository(database)),
		log:       quietLogger(),
	}
}

func (h *harness) signIn(t *testing.T, email string) {
	t.Helper()
	_, err := h.users.Register(context.Background(), "Shopper", email, "pw")
	require.NoError(t, err)
}

func (h *harness) catalogController() *CatalogController {
	return NewCatalogController(h.catalog, h.favorites, h.users, h.carts, h.log)
}

func (h *harness) cartController(notifier *services.CheckoutNotifier) *CartController {
	return NewCartController(h.carts, h.catalog, h.users, notifier, h.log)
}
