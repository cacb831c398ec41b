// Package notify holds transient, auto-dismissing notifications (toasts)
// per browser session until the next page or API call picks them up.
package notify

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Type is the visual kind of a toast.
type Type string

const (
	Success Type = "success"
	Error   Type = "error"
	Warning Type = "warning"
)

// DefaultDuration is how long a toast stays visible unless configured
// otherwise.
const DefaultDuration = 3000 * time.Millisecond

// Toast is one notification.  DurationMS is the visible time in
// milliseconds, counted from CreatedAt.
type Toast struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	Type       Type      `json:"type"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// New builds a toast with a fresh id.  A non-positive duration falls back
// to DefaultDuration.
func New(typ Type, msg string, d time.Duration, now time.Time) Toast {
	if d <= 0 {
		d = DefaultDuration
	}
	return Toast{ID: uuid.NewString(), Message: msg, Type: typ, DurationMS: d.Milliseconds(), CreatedAt: now}
}

// ExpiresAt is the moment the toast dismisses itself.
func (t Toast) ExpiresAt() time.Time {
	return t.CreatedAt.Add(time.Duration(t.DurationMS) * time.Millisecond)
}

// Remaining is the visible time left at now, never negative.
func (t Toast) Remaining(now time.Time) time.Duration {
	if d := t.ExpiresAt().Sub(now); d > 0 {
		return d
	}
	return 0
}

// Store queues toasts per session.
type Store interface {
	Push(ctx context.Context, sid string, t Toast) error
	// Drain returns the session's toasts that have not yet expired and
	// removes every queued toast for the session.
	Drain(ctx context.Context, sid string) ([]Toast, error)
}

func live(ts []Toast, now time.Time) []Toast {
	out := make([]Toast, 0, len(ts))
	for _, t := range ts {
		if now.Before(t.ExpiresAt()) {
			out = append(out, t)
		}
	}
	return out
}

// MemoryStore keeps toasts in process memory.
type MemoryStore struct {
	mu  sync.Mutex
	m   map[string][]Toast
	Now func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: map[string][]Toast{}, Now: time.Now}
}

// Push queues t for sid.  Sessions whose toasts have all expired are
// dropped on the way.
func (s *MemoryStore) Push(_ context.Context, sid string, t Toast) error {
	now := s.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, ts := range s.m {
		if len(live(ts, now)) == 0 {
			delete(s.m, k)
		}
	}
	s.m[sid] = append(s.m[sid], t)
	return nil
}

// Sessions returns the number of sessions holding toasts.
func (s *MemoryStore) Sessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

func (s *MemoryStore) Drain(_ context.Context, sid string) ([]Toast, error) {
	s.mu.Lock()
	ts := s.m[sid]
	delete(s.m, sid)
	s.mu.Unlock()
	return live(ts, s.Now()), nil
}

// RedisStore keeps each session's toasts in a Redis list.  The key
// expires together with the newest toast.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
	Now    func() time.Time
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "toast:", Now: time.Now}
}

func (s *RedisStore) Push(ctx context.Context, sid string, t Toast) error {
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	key := s.prefix + sid
	ttl := t.Remaining(s.Now())
	if ttl <= 0 {
		return nil
	}
	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, data)
		p.PExpire(ctx, key, ttl)
		return nil
	})
	return err
}

func (s *RedisStore) Drain(ctx context.Context, sid string) ([]Toast, error) {
	key := s.prefix + sid
	var rng *redis.StringSliceCmd
	_, err := s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		rng = p.LRange(ctx, key, 0, -1)
		p.Del(ctx, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	ts := make([]Toast, 0, len(rng.Val()))
	for _, raw := range rng.Val() {
		var t Toast
		if err := json.Unmarshal([]byte(raw), &t); err != nil {
			continue
		}
		ts = append(ts, t)
	}
	return live(ts, s.Now()), nil
}
