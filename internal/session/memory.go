package session

import (
	"context"
	"strings"
	"sync"
	"time"
)

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore is an in-process TTL-aware map used when no Redis is
// configured. Expired entries are dropped lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return "", false, nil
	}
	if entry.expired(time.Now()) {
		delete(m.entries, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

func (m *MemoryStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value}
	return nil
}

func (m *MemoryStore) SetWithTTL(_ context.Context, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryStore) RefreshTTL(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok || entry.expired(time.Now()) {
		delete(m.entries, key)
		return nil
	}
	entry.expiresAt = time.Now().Add(ttl)
	m.entries[key] = entry
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	_, ok, err := m.Get(ctx, key)
	return ok, err
}

// Keys returns keys matching a glob-style pattern. Only the trailing "*"
// wildcard seen in session key patterns is supported.
func (m *MemoryStore) Keys(_ context.Context, pattern string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	prefix := strings.TrimSuffix(pattern, "*")
	exact := pattern == prefix

	var keys []string
	for key, entry := range m.entries {
		if entry.expired(now) {
			delete(m.entries, key)
			continue
		}
		if exact {
			if key == pattern {
				keys = append(keys, key)
			}
		} else if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

func (m *MemoryStore) Ping(context.Context) error { return nil }

func (m *MemoryStore) Close() error { return nil }
