package controllers

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"storefront/cart"
	"storefront/entities"
	"storefront/usecases"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var ErrNotSignedIn = errors.New("please sign in first")

type CatalogState struct {
	Categories         []entities.Category `json:"categories"`
	AllProducts        []entities.Product  `json:"all_products"`
	FilteredProducts   []entities.Product  `json:"filtered_products"`
	SelectedCategory   CategoryFilter      `json:"selected_category_id"`
	SearchQuery        string              `json:"search_query"`
	FavoriteProductIDs []uint              `json:"favorite_product_ids"`
	Error              string              `json:"error,omitempty"`
	Message            string              `json:"message,omitempty"`

	favorites map[uint]bool
}

// IsFavorite reports whether productID is in the favorite set.
func (s CatalogState) IsFavorite(productID uint) bool { return s.favorites[productID] }

// derive recomputes every field that depends on the filter inputs.
func (s CatalogState) derive() CatalogState {
	s.FilteredProducts = FilterProducts(s.AllProducts, s.SelectedCategory, s.SearchQuery, s.favorites)
	s.FavoriteProductIDs = make([]uint, 0, len(s.favorites))
	for id := range s.favorites {
		s.FavoriteProductIDs = append(s.FavoriteProductIDs, id)
	}
	sort.Slice(s.FavoriteProductIDs, func(i, j int) bool { return s.FavoriteProductIDs[i] < s.FavoriteProductIDs[j] })
	return s
}

func (s CatalogState) withFavorite(productID uint, on bool) CatalogState {
	next := make(map[uint]bool, len(s.favorites)+1)
	for id := range s.favorites {
		next[id] = true
	}
	if on {
		next[productID] = true
	} else {
		delete(next, productID)
	}
	s.favorites = next
	return s
}

// CatalogController backs the home screen: categories, products, search,
// favorites and add-to-cart.
type CatalogController struct {
	catalog   *usecases.CatalogUseCase
	favorites *usecases.FavoriteUseCase
	users     *usecases.UserUseCase
	carts     *cart.Manager
	log       *logrus.Logger

	state *Observable[CatalogState]
}

func NewCatalogController(catalog *usecases.CatalogUseCase, favorites *usecases.FavoriteUseCase, users *usecases.UserUseCase, carts *cart.Manager, log *logrus.Logger) *CatalogController {
	return &CatalogController{
		catalog:   catalog,
		favorites: favorites,
		users:     users,
		carts:     carts,
		log:       log,
		state:     NewObservable(CatalogState{SelectedCategory: AllCategories}.derive()),
	}
}

func (c *CatalogController) State() *Observable[CatalogState] { return c.state }

// Load fetches categories and products concurrently, then the favorites of
// the signed-in user. Each failure is reported in the state on its own.
func (c *CatalogController) Load(ctx context.Context) error {
	var (
		g          errgroup.Group
		categories []entities.Category
		products   []entities.Product
	)
	g.Go(func() error {
		var err error
		categories, err = c.catalog.ListCategories(ctx)
		if err != nil {
			c.fail("Failed to load categories", err)
			return err
		}
		c.state.Update(func(s CatalogState) CatalogState {
			s.Categories = categories
			return s.derive()
		})
		return nil
	})
	g.Go(func() error {
		var err error
		products, err = c.catalog.ListProducts(ctx)
		if err != nil {
			c.fail("Failed to load products", err)
			return err
		}
		c.state.Update(func(s CatalogState) CatalogState {
			s.AllProducts = products
			return s.derive()
		})
		return nil
	})
	loadErr := g.Wait()

	if err := c.loadFavorites(ctx); err != nil {
		return err
	}
	return loadErr
}

func (c *CatalogController) loadFavorites(ctx context.Context) error {
	userID, err := c.users.CurrentUserID(ctx)
	if err != nil {
		c.fail("Failed to load favorites", err)
		return err
	}

	ids := map[uint]bool{}
	if userID != "" {
		ids, err = c.favorites.ProductIDs(ctx, userID)
		if err != nil {
			c.fail("Failed to load favorites", err)
			return err
		}
	}
	c.state.Update(func(s CatalogState) CatalogState {
		s.favorites = ids
		return s.derive()
	})
	return nil
}

func (c *CatalogController) SelectCategory(filter CategoryFilter) CatalogState {
	return c.state.Update(func(s CatalogState) CatalogState {
		s.SelectedCategory = filter
		return s.derive()
	})
}

func (c *CatalogController) Search(query string) CatalogState {
	return c.state.Update(func(s CatalogState) CatalogState {
		s.SearchQuery = query
		return s.derive()
	})
}

// ToggleFavorite likes or unlikes productID for the signed-in user.
func (c *CatalogController) ToggleFavorite(ctx context.Context, productID uint) error {
	userID, err := c.requireUser(ctx)
	if err != nil {
		c.fail("Failed to update favorites", err)
		return err
	}

	if c.state.Value().IsFavorite(productID) {
		if _, err := c.favorites.Remove(ctx, userID, productID); err != nil {
			c.fail("Failed to update favorites", err)
			return err
		}
		c.state.Update(func(s CatalogState) CatalogState {
			s = s.withFavorite(productID, false)
			s.Message = "Removed from favorites"
			return s.derive()
		})
		return nil
	}

	if err := c.favorites.Add(ctx, userID, productID); err != nil {
		c.fail("Failed to update favorites", err)
		return err
	}
	c.state.Update(func(s CatalogState) CatalogState {
		s = s.withFavorite(productID, true)
		s.Message = "Added to favorites"
		return s.derive()
	})
	return nil
}

// AddToCart puts one unit of productID in the signed-in user's cart.
func (c *CatalogController) AddToCart(ctx context.Context, productID uint) error {
	userID, err := c.requireUser(ctx)
	if err != nil {
		c.fail("Failed to add to cart", err)
		return err
	}
	if _, err := c.carts.For(userID).AddOne(ctx, productID); err != nil {
		c.fail("Failed to add to cart", err)
		return err
	}
	c.state.Update(func(s CatalogState) CatalogState {
		s.Message = "Product added to cart"
		return s
	})
	return nil
}

// Product looks up a single product for the detail view.
func (c *CatalogController) Product(ctx context.Context, id uint) (*entities.Product, error) {
	p, err := c.catalog.GetProduct(ctx, id)
	if err != nil {
		c.fail("Failed to get product details", err)
		return nil, err
	}
	return p, nil
}

func (c *CatalogController) ClearMessage() {
	c.state.Update(func(s CatalogState) CatalogState {
		s.Message = ""
		s.Error = ""
		return s
	})
}

func (c *CatalogController) requireUser(ctx context.Context) (string, error) {
	userID, err := c.users.CurrentUserID(ctx)
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", ErrNotSignedIn
	}
	return userID, nil
}

func (c *CatalogController) fail(what string, err error) {
	c.log.WithError(err).Warn(what)
	c.state.Update(func(s CatalogState) CatalogState {
		s.Error = fmt.Sprintf("%s: %v", what, err)
		return s
	})
}
