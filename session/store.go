// Package session remembers which user is signed in on this device.
package session

import (
	"context"
	"fmt"

	"storefront/confs"

	"github.com/go-redis/redis/v8"
)

// Store holds the current user id. CurrentUserID returns "" when nobody is signed in.
type Store interface {
	SetCurrentUserID(ctx context.Context, userID string) error
	CurrentUserID(ctx context.Context) (string, error)
	Clear(ctx context.Context) error
}

// NewStore builds the backend named by cfg.SessionBackend.
func NewStore(cfg *confs.Config) (Store, error) {
	switch cfg.SessionBackend {
	case "", "file":
		return NewFileStore(cfg.SessionPath), nil
	case "memory":
		return NewMemoryStore(), nil
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return NewRedisStore(client, "storefront:session"), nil
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
	}
}
