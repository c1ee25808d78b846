// Package db defines the storage contracts of the guide. Redis is the only backend.
package db

import (
	"context"
	"time"
)

// Pinger checks connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// KVStore reads and writes opaque values by key.
type KVStore interface {
	// Get returns ErrKeyNotFound for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetWithTTL stores without expiry when ttl <= 0.
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Store is what the composition root opens and closes.
type Store interface {
	Pinger
	KVStore
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}
