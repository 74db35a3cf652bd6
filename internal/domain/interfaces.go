package domain

import (
	"context"
	"time"
)

// SessionStore is the abstract durable expiring key-value store the engine
// persists through. A read of an expired key behaves exactly like a read of a
// key that never existed. The store never sweeps actively; expiry is the
// backend's concern.
type SessionStore interface {
	// Put stores value under key for ttl. A zero ttl means the backend
	// default.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Get returns the stored value, or (nil, false, nil) when the key is
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Delete removes the key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// ConfigManager provides validated application configuration.
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetStoreConfig() *StoreConfig
	Validate() error
	Reload() error
}
