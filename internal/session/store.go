package session

import (
	"context"
	"time"
)

// Store is the minimal TTL key-value capability set session persistence
// needs. Two interchangeable backends satisfy it: an in-process TTL-aware
// map for development and testing, and Redis for production. Callers are
// agnostic to which is active.
//
// Expired keys behave as absent for every read operation: Get reports
// ok=false and Exists reports false, never an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
	RefreshTTL(ctx context.Context, key string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context, pattern string) ([]string, error)
	Ping(ctx context.Context) error
	Close() error
}
