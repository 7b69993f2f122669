package cart

import (
	"sync"

	"storefront/repositories"
)

// Manager hands out one Cart per user.
type Manager struct {
	mu          sync.Mutex
	repo        repositories.CartItemRepository
	carts       map[string]*Cart
	subscribers []func(Snapshot)
}

func NewManager(repo repositories.CartItemRepository) *Manager {
	return &Manager{repo: repo, carts: make(map[string]*Cart)}
}

// For returns the cart of userID, creating it on first use.
func (m *Manager) For(userID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[userID]; ok {
		return c
	}
	c := New(m.repo, userID)
	for _, fn := range m.subscribers {
		c.Subscribe(fn)
	}
	m.carts[userID] = c
	return c
}

// Subscribe registers fn on every cart, current and future.
func (m *Manager) Subscribe(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
	for _, c := range m.carts {
		c.Subscribe(fn)
	}
}
