// Package cart owns a user's shopping cart. Cart rows in the store are the
// source of truth; each Cart keeps a read-through copy so screens can read it
// without a query, and tells subscribers about every change.
package cart

import (
	"context"
	"sync"

	"storefront/repositories"
)

// Line is one product in the cart and how many of it.
type Line struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Note      *string `json:"note,omitempty"`
}

// Snapshot is an immutable copy of a cart. Lines keep insertion order.
type Snapshot struct {
	UserID string `json:"user_id"`
	Lines  []Line `json:"lines"`
}

func (s Snapshot) Empty() bool { return len(s.Lines) == 0 }

// Quantity returns how many of productID the cart holds.
func (s Snapshot) Quantity(productID uint) int {
	for _, l := range s.Lines {
		if l.ProductID == productID {
			return l.Quantity
		}
	}
	return 0
}

// ProductIDs lists every unit as its product id, so an id appears once per unit.
func (s Snapshot) ProductIDs() []uint {
	ids := make([]uint, 0, len(s.Lines))
	for _, l := range s.Lines {
		for i := 0; i < l.Quantity; i++ {
			ids = append(ids, l.ProductID)
		}
	}
	return ids
}

// Cart is safe for concurrent use. Every mutation writes the store first and
// only then updates the cached lines, under one lock.
type Cart struct {
	mu     sync.Mutex
	repo   repositories.CartItemRepository
	userID string
	loaded bool
	lines  []Line

	subMu       sync.Mutex
	subscribers map[int]func(Snapshot)
	nextSub     int
}

func New(repo repositories.CartItemRepository, userID string) *Cart {
	return &Cart{
		repo:        repo,
		userID:      userID,
		subscribers: make(map[int]func(Snapshot)),
	}
}

func (c *Cart) UserID() string { return c.userID }

// Snapshot returns the cart, loading it from the store on first use.
func (c *Cart) Snapshot(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.load(ctx); err != nil {
		return Snapshot{}, err
	}
	return c.snapshot(), nil
}

// Reload drops the cached lines and reads them again, picking up rows removed
// by cascades.
func (c *Cart) Reload(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	c.loaded = false
	err := c.load(ctx)
	snap := c.snapshot()
	c.mu.Unlock()
	if err != nil {
		return Snapshot{}, err
	}
	c.publish(snap)
	return snap, nil
}

// AddOne puts one more unit of productID in the cart.
func (c *Cart) AddOne(ctx context.Context, productID uint) (Snapshot, error) {
	return c.mutate(ctx, func() (bool, error) {
		if err := c.repo.Increment(ctx, c.userID, productID, 1); err != nil {
			return false, err
		}
		if i := c.index(productID); i >= 0 {
			c.lines[i].Quantity++
		} else {
			c.lines = append(c.lines, Line{ProductID: productID, Quantity: 1})
		}
		return true, nil
	})
}

// RemoveOne takes one unit of productID out. A line at quantity 1 is left
// as is; use RemoveAll to drop it.
func (c *Cart) RemoveOne(ctx context.Context, productID uint) (Snapshot, error) {
	return c.mutate(ctx, func() (bool, error) {
		i := c.index(productID)
		if i < 0 || c.lines[i].Quantity <= 1 {
			return false, nil
		}
		changed, err := c.repo.Decrement(ctx, c.userID, productID)
		if err != nil || !changed {
			return false, err
		}
		c.lines[i].Quantity--
		return true, nil
	})
}

// RemoveAll drops the line for productID whatever its quantity.
func (c *Cart) RemoveAll(ctx context.Context, productID uint) (Snapshot, error) {
	return c.mutate(ctx, func() (bool, error) {
		i := c.index(productID)
		if i < 0 {
			return false, nil
		}
		if err := c.repo.Delete(ctx, c.userID, productID); err != nil {
			return false, err
		}
		c.lines = append(c.lines[:i], c.lines[i+1:]...)
		return true, nil
	})
}

// SetNote attaches a free-text note to an existing line.
func (c *Cart) SetNote(ctx context.Context, productID uint, note string) (Snapshot, error) {
	return c.mutate(ctx, func() (bool, error) {
		i := c.index(productID)
		if i < 0 {
			return false, repositories.ErrNotFound
		}
		item, err := c.repo.Get(ctx, c.userID, productID)
		if err != nil {
			return false, err
		}
		item.Content = &note
		if err := c.repo.Update(ctx, item); err != nil {
			return false, err
		}
		c.lines[i].Note = &note
		return true, nil
	})
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) (Snapshot, error) {
	return c.mutate(ctx, func() (bool, error) {
		if err := c.repo.DeleteByUserID(ctx, c.userID); err != nil {
			return false, err
		}
		c.lines = nil
		return true, nil
	})
}

// Subscribe registers fn for every change. The returned func unregisters it.
func (c *Cart) Subscribe(fn func(Snapshot)) func() {
	c.subMu.Lock()
	defer c.subMu.Unlock()
	id := c.nextSub
	c.nextSub++
	c.subscribers[id] = fn
	return func() {
		c.subMu.Lock()
		defer c.subMu.Unlock()
		delete(c.subscribers, id)
	}
}

func (c *Cart) mutate(ctx context.Context, apply func() (bool, error)) (Snapshot, error) {
	c.mu.Lock()
	if err := c.load(ctx); err != nil {
		c.mu.Unlock()
		return Snapshot{}, err
	}
	changed, err := apply()
	snap := c.snapshot()
	c.mu.Unlock()

	if err != nil {
		return snap, err
	}
	if changed {
		c.publish(snap)
	}
	return snap, nil
}

func (c *Cart) publish(snap Snapshot) {
	c.subMu.Lock()
	fns := make([]func(Snapshot), 0, len(c.subscribers))
	for _, fn := range c.subscribers {
		fns = append(fns, fn)
	}
	c.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

// load fills the cache from the store. Callers hold c.mu.
func (c *Cart) load(ctx context.Context) error {
	if c.loaded {
		return nil
	}
	items, err := c.repo.GetByUserID(ctx, c.userID)
	if err != nil {
		return err
	}
	c.lines = make([]Line, 0, len(items))
	for _, item := range items {
		c.lines = append(c.lines, Line{ProductID: item.ProductID, Quantity: item.Quantity, Note: item.Content})
	}
	c.loaded = true
	return nil
}

func (c *Cart) index(productID uint) int {
	for i, l := range c.lines {
		if l.ProductID == productID {
			return i
		}
	}
	return -1
}

func (c *Cart) snapshot() Snapshot {
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return Snapshot{UserID: c.userID, Lines: lines}
}
