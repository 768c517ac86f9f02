package session

import (
	"context"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const keyPrefix = "session:"

// lockStripes bounds the number of per-session mutexes.
const lockStripes = 64

// Manager owns session lifecycle on top of a Store: id allocation,
// get-or-create, TTL-scoped saves, and serialized read-modify-write so two
// concurrent requests against one session cannot lose an update. With the
// Redis backend the serialization is per process; concurrent writers in
// separate processes fall back to last-write-wins.
type Manager struct {
	store Store
	ttl   time.Duration
	locks [lockStripes]sync.Mutex
	log   zerolog.Logger
}

// NewManager creates a session manager writing records with the given TTL.
func NewManager(store Store, ttl time.Duration, log zerolog.Logger) *Manager {
	return &Manager{
		store: store,
		ttl:   ttl,
		log:   log.With().Str("component", "session").Logger(),
	}
}

func key(id string) string { return keyPrefix + id }

func (m *Manager) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &m.locks[h.Sum32()%lockStripes]
}

// GetOrCreate returns the unexpired record for the client-supplied id, or
// allocates a fresh id and empty record when the id is empty, unknown, or
// expired.
func (m *Manager) GetOrCreate(ctx context.Context, id string) (*Record, error) {
	if id != "" {
		record, ok, err := m.load(ctx, id)
		if err != nil {
			return nil, err
		}
		if ok {
			return record, nil
		}
	}

	record := NewRecord(uuid.NewString())
	if err := m.Save(ctx, record); err != nil {
		return nil, err
	}
	m.log.Info().Str("session_id", record.SessionID).Msg("created session")
	return record, nil
}

// Save fully replaces the stored record and resets its TTL window.
func (m *Manager) Save(ctx context.Context, record *Record) error {
	data, err := sonic.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal session record: %w", err)
	}
	if err := m.store.SetWithTTL(ctx, key(record.SessionID), string(data), m.ttl); err != nil {
		return fmt.Errorf("failed to save session %s: %w", record.SessionID, err)
	}
	return nil
}

// Update serializes the fetch-mutate-save sequence for one session id. The
// mutate function receives the latest stored record (or a fresh one if the
// session expired mid-request) so concurrent updates compose instead of
// overwriting each other.
func (m *Manager) Update(ctx context.Context, id string, mutate func(*Record)) (*Record, error) {
	lock := m.lockFor(id)
	lock.Lock()
	defer lock.Unlock()

	record, ok, err := m.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		record = NewRecord(id)
	}

	mutate(record)
	record.LastActive = time.Now().UTC()

	if err := m.Save(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Delete removes a session record.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.store.Delete(ctx, key(id))
}

// Exists reports whether an unexpired record exists for the id.
func (m *Manager) Exists(ctx context.Context, id string) (bool, error) {
	return m.store.Exists(ctx, key(id))
}

// ActiveSessions lists the ids of all unexpired sessions.
func (m *Manager) ActiveSessions(ctx context.Context) ([]string, error) {
	keys, err := m.store.Keys(ctx, keyPrefix+"*")
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(keys))
	for _, k := range keys {
		ids = append(ids, k[len(keyPrefix):])
	}
	return ids, nil
}

func (m *Manager) load(ctx context.Context, id string) (*Record, bool, error) {
	data, ok, err := m.store.Get(ctx, key(id))
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session %s: %w", id, err)
	}
	if !ok {
		return nil, false, nil
	}

	var record Record
	if err := sonic.Unmarshal([]byte(data), &record); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return &record, true, nil
}
