package controllers

import (
	"context"
	"fmt"

	"storefront/cart"
	"storefront/metrics"
	"storefront/services"
	"storefront/usecases"

	"github.com/sirupsen/logrus"
)

const CheckoutMessage = "Your purchase was completed successfully."

type CartState struct {
	Items       []cart.PricedLine `json:"items"`
	TotalAmount float64           `json:"total_amount"`
	IsLoading   bool              `json:"is_loading"`
	IsEmpty     bool              `json:"is_empty"`
	Error       string            `json:"error,omitempty"`
	Message     string            `json:"message,omitempty"`
}

// CartController backs the cart screen.
type CartController struct {
	carts    *cart.Manager
	catalog  *usecases.CatalogUseCase
	users    *usecases.UserUseCase
	notifier *services.CheckoutNotifier
	log      *logrus.Logger

	state *Observable[CartState]
}

func NewCartController(carts *cart.Manager, catalog *usecases.CatalogUseCase, users *usecases.UserUseCase, notifier *services.CheckoutNotifier, log *logrus.Logger) *CartController {
	return &CartController{
		carts:    carts,
		catalog:  catalog,
		users:    users,
		notifier: notifier,
		log:      log,
		state:    NewObservable(CartState{IsLoading: true, Items: []cart.PricedLine{}}),
	}
}

func (c *CartController) State() *Observable[CartState] { return c.state }

// Load rereads the signed-in user's cart and prices it.
func (c *CartController) Load(ctx context.Context) error {
	userID, err := c.users.CurrentUserID(ctx)
	if err != nil {
		return c.fail("Error loading cart items", err)
	}
	if userID == "" {
		c.state.Update(func(s CartState) CartState {
			return CartState{Items: []cart.PricedLine{}, IsEmpty: true, Message: s.Message}
		})
		return nil
	}

	snap, err := c.carts.For(userID).Reload(ctx)
	if err != nil {
		return c.fail("Error loading cart items", err)
	}
	return c.render(ctx, snap)
}

func (c *CartController) IncreaseQuantity(ctx context.Context, productID uint) error {
	return c.apply(ctx, func(ct *cart.Cart) (cart.Snapshot, error) { return ct.AddOne(ctx, productID) })
}

// DecreaseQuantity lowers a line by one; a line at 1 stays at 1.
func (c *CartController) DecreaseQuantity(ctx context.Context, productID uint) error {
	return c.apply(ctx, func(ct *cart.Cart) (cart.Snapshot, error) { return ct.RemoveOne(ctx, productID) })
}

func (c *CartController) RemoveFromCart(ctx context.Context, productID uint) error {
	return c.apply(ctx, func(ct *cart.Cart) (cart.Snapshot, error) { return ct.RemoveAll(ctx, productID) })
}

func (c *CartController) SetNote(ctx context.Context, productID uint, note string) error {
	return c.apply(ctx, func(ct *cart.Cart) (cart.Snapshot, error) { return ct.SetNote(ctx, productID, note) })
}

// Checkout empties the cart and posts the order to the webhook in the
// background. The webhook outcome never changes the result.
func (c *CartController) Checkout(ctx context.Context) error {
	userID, err := c.signedIn(ctx)
	if err != nil {
		return c.fail("Checkout failed", err)
	}
	ct := c.carts.For(userID)

	// rows removed by cascades since the last load must not be ordered
	snap, err := ct.Reload(ctx)
	if err != nil {
		return c.fail("Checkout failed", err)
	}
	products, err := c.catalog.GetProducts(ctx, distinctIDs(snap))
	if err != nil {
		return c.fail("Checkout failed", err)
	}
	_, total := cart.Price(snap, products)

	if _, err := ct.Clear(ctx); err != nil {
		return c.fail("Checkout failed", err)
	}

	c.state.Update(func(CartState) CartState {
		return CartState{Items: []cart.PricedLine{}, TotalAmount: 0, IsEmpty: true, Message: CheckoutMessage}
	})
	metrics.Checkouts.Inc()
	c.log.WithFields(logrus.Fields{"user": userID, "total": total}).Info("Checkout completed")

	c.notifier.NotifyAsync(services.Order{Email: userID, ProductIDs: snap.ProductIDs(), TotalAmount: total})
	return nil
}

// Sync renders snap when it belongs to the signed-in user. Subscribed to the
// cart manager, it brings changes made from other screens into this one.
func (c *CartController) Sync(snap cart.Snapshot) {
	ctx := context.Background()
	userID, err := c.users.CurrentUserID(ctx)
	if err != nil || userID == "" || userID != snap.UserID {
		return
	}
	_ = c.render(ctx, snap)
}

func (c *CartController) ClearMessage() {
	c.state.Update(func(s CartState) CartState {
		s.Message = ""
		s.Error = ""
		return s
	})
}

func (c *CartController) apply(ctx context.Context, op func(*cart.Cart) (cart.Snapshot, error)) error {
	userID, err := c.signedIn(ctx)
	if err != nil {
		return c.fail("Cart update failed", err)
	}
	snap, err := op(c.carts.For(userID))
	if err != nil {
		return c.fail("Cart update failed", err)
	}
	return c.render(ctx, snap)
}

func (c *CartController) render(ctx context.Context, snap cart.Snapshot) error {
	products, err := c.catalog.GetProducts(ctx, distinctIDs(snap))
	if err != nil {
		return c.fail("Error loading cart items", err)
	}
	lines, total := cart.Price(snap, products)
	c.state.Update(func(s CartState) CartState {
		return CartState{
			Items:       lines,
			TotalAmount: total,
			IsEmpty:     len(lines) == 0,
			Message:     s.Message,
		}
	})
	return nil
}

func (c *CartController) signedIn(ctx context.Context) (string, error) {
	userID, err := c.users.CurrentUserID(ctx)
	if err != nil {
		return "", err
	}
	if userID == "" {
		return "", ErrNotSignedIn
	}
	return userID, nil
}

func (c *CartController) fail(what string, err error) error {
	c.log.WithError(err).Warn(what)
	c.state.Update(func(s CartState) CartState {
		s.IsLoading = false
		s.Error = fmt.Sprintf("%s: %v", what, err)
		return s
	})
	return err
}

func distinctIDs(snap cart.Snapshot) []uint {
	ids := make([]uint, 0, len(snap.Lines))
	for _, l := range snap.Lines {
		ids = append(ids, l.ProductID)
	}
	return ids
}
