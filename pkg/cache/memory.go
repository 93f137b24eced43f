package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type memoryEntry[V any] struct {
	key       string
	value     V
	expiresAt time.Time // zero means never
}

func (e *memoryEntry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Memory is a process-local cache. Expired entries are dropped on access;
// with a capacity set, the least recently used entry makes room for a new one.
type Memory[V any] struct {
	mu         sync.Mutex
	items      map[string]*list.Element
	order      *list.List // front is most recently used
	defaultTTL time.Duration
	capacity   int
	closed     bool
}

// MemoryOption configures a Memory cache.
type MemoryOption func(*memoryConfig)

type memoryConfig struct {
	defaultTTL time.Duration
	capacity   int
}

// WithDefaultTTL sets the lifetime used when Set gets a zero TTL.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(c *memoryConfig) { c.defaultTTL = d }
}

// WithMaxEntries caps the number of entries. Zero means unlimited.
func WithMaxEntries(n int) MemoryOption {
	return func(c *memoryConfig) { c.capacity = n }
}

// NewMemory creates an empty in-memory cache.
//
//	c := cache.NewMemory[map[string]locale.Tree](cache.WithDefaultTTL(5 * time.Minute))
func NewMemory[V any](opts ...MemoryOption) *Memory[V] {
	cfg := memoryConfig{defaultTTL: time.Hour}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Memory[V]{
		items:      make(map[string]*list.Element),
		order:      list.New(),
		defaultTTL: cfg.defaultTTL,
		capacity:   cfg.capacity,
	}
}

func (m *Memory[V]) Get(_ context.Context, key string) (V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	elem, ok := m.items[key]
	if !ok {
		return zero, ErrNotFound
	}
	e := elem.Value.(*memoryEntry[V])
	if e.expired(time.Now()) {
		m.remove(elem)
		return zero, ErrNotFound
	}
	m.order.MoveToFront(elem)
	return e.value, nil
}

func (m *Memory[V]) Set(_ context.Context, key string, value V, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*memoryEntry[V])
		e.value, e.expiresAt = value, expiresAt
		m.order.MoveToFront(elem)
		return nil
	}

	if m.capacity > 0 && len(m.items) >= m.capacity {
		m.evict()
	}
	m.items[key] = m.order.PushFront(&memoryEntry[V]{key: key, value: value, expiresAt: expiresAt})
	return nil
}

func (m *Memory[V]) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	if elem, ok := m.items[key]; ok {
		m.remove(elem)
	}
	return nil
}

func (m *Memory[V]) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	clear(m.items)
	m.order.Init()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (m *Memory[V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close makes later writes fail with ErrClosed. It is idempotent.
func (m *Memory[V]) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// evict drops expired entries, or the least recently used one when none has
// expired. Caller holds the mutex.
func (m *Memory[V]) evict() {
	now := time.Now()
	dropped := false
	for elem := m.order.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*memoryEntry[V]).expired(now) {
			m.remove(elem)
			dropped = true
		}
		elem = prev
	}
	if !dropped {
		if back := m.order.Back(); back != nil {
			m.remove(back)
		}
	}
}

func (m *Memory[V]) remove(elem *list.Element) {
	m.order.Remove(elem)
	delete(m.items, elem.Value.(*memoryEntry[V]).key)
}

var _ Cache[any] = (*Memory[any])(nil)
