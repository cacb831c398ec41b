package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when a wizard id is unknown or has expired.
var ErrNotFound = errors.New("wizard not found")

// Store keeps wizard state between requests.
type Store interface {
	Get(ctx context.Context, id string) (*Wizard, error)
	Put(ctx context.Context, w *Wizard) error
	Delete(ctx context.Context, id string) error
}

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryStore keeps wizards in process memory.  Entries are stored as
// JSON so callers never share a *Wizard between requests.
type MemoryStore struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]memoryEntry
	Now func() time.Time
}

// NewMemoryStore returns a MemoryStore whose entries live for ttl after
// their last Put.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, m: map[string]memoryEntry{}, Now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Wizard, error) {
	s.mu.Lock()
	e, ok := s.m[id]
	if ok && s.Now().After(e.expires) {
		delete(s.m, id)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	var w Wizard
	if err := json.Unmarshal(e.data, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *MemoryStore) Put(_ context.Context, w *Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.Now()
	for id, e := range s.m {
		if now.After(e.expires) {
			delete(s.m, id)
		}
	}
	s.m[w.ID] = memoryEntry{data: data, expires: now.Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
	return nil
}

// RedisStore keeps wizards in Redis under "<prefix><id>" with a TTL that
// is refreshed on every Put.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore returns a Redis-backed Store.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, prefix: "wizard:"}
}

func (s *RedisStore) key(id string) string { return s.prefix + id }

func (s *RedisStore) Get(ctx context.Context, id string) (*Wizard, error) {
	raw, err := s.rdb.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var w Wizard
	if err := json.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *RedisStore) Put(ctx context.Context, w *Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key(w.ID), data, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, s.key(id)).Err()
}
