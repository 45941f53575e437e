// Package cache stores rendered method documentation.
package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Cache is a string cache with prefix invalidation.
type Cache interface {
	// Get returns the value and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	// DeletePrefix removes every key starting with prefix.
	DeletePrefix(ctx context.Context, prefix string) error
	Close() error
}

// Config selects and tunes a cache backend.
type Config struct {
	// Driver is one of memory (default), redis or none.
	Driver   string
	Addr     string
	Password string
	DB       int
	// InMemory starts an embedded redis server instead of dialing Addr.
	InMemory bool
	TTL      time.Duration
	Prefix   string
}

// New builds the configured backend.
func New(cfg Config) (Cache, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Driver)) {
	case "", "memory":
		return NewMemory(cfg.TTL), nil
	case "redis":
		return NewRedis(cfg)
	case "none", "off":
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

// RenderKey is the key of a method's rendered HTML. Keys of one model share
// the RenderPrefix of that model.
func RenderKey(modelUUID, methodUUID string) string {
	return RenderPrefix(modelUUID) + methodUUID
}

// RenderPrefix is the common prefix of all render keys of a model.
func RenderPrefix(modelUUID string) string { return "render:" + modelUUID + ":" }

type entry struct {
	value   string
	expires time.Time
}

// Memory is a process-local cache.
type Memory struct {
	mu    sync.Mutex
	ttl   time.Duration
	items map[string]entry
	now   func() time.Time
}

// NewMemory returns a Memory cache; ttl <= 0 never expires.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{ttl: ttl, items: make(map[string]entry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.items[key]
	if !ok {
		return "", false, nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		delete(m.items, key)
		return "", false, nil
	}
	return e.value, true, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := entry{value: value}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	m.items[key] = e
	return nil
}

func (m *Memory) DeletePrefix(_ context.Context, prefix string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.items {
		if strings.HasPrefix(k, prefix) {
			delete(m.items, k)
		}
	}
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

func (m *Memory) Close() error { return nil }

// Nop never stores anything.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (Nop) Set(context.Context, string, string) error          { return nil }
func (Nop) DeletePrefix(context.Context, string) error         { return nil }
func (Nop) Close() error                                       { return nil }
