package session

import (
	"context"
	"errors"
	"fmt"
)

// TokenKey is the well-known key under which the session token is stored.
const TokenKey = "auth_token"

// ErrUnknownDriver is returned by NewStore for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown session store driver")

// Store defines durable key/value persistence for the session.
type Store interface {
	// Get returns the value stored under key.
	// Returns the value and true if present, or "" and false if absent.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// StoreFactory is a function that creates a new Store instance.
type StoreFactory func(ctx context.Context) (Store, error)

// StoreConfig selects and configures a session store driver.
type StoreConfig struct {
	// Driver is one of "sqlite", "file", "redis" or "memory"
	Driver string `env:"DRIVER" default:"sqlite"`

	SQLite SQLiteStoreConfig `envPrefix:"SQLITE_"`
	File   FileStoreConfig   `envPrefix:"FILE_"`
	Redis  RedisStoreConfig  `envPrefix:"REDIS_"`
}

// StoreFactoryFromConfig returns a factory for the configured driver.
func StoreFactoryFromConfig(cfg StoreConfig) StoreFactory {
	return func(ctx context.Context) (Store, error) {
		return NewStore(ctx, cfg)
	}
}

// NewStore creates the store selected by cfg.Driver.
func NewStore(ctx context.Context, cfg StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite":
		return NewSQLiteStore(ctx, cfg.SQLite)
	case "file":
		return NewFileStore(ctx, cfg.File)
	case "redis":
		return NewRedisStore(ctx, cfg.Redis)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
