package rendercache

import (
	"context"
	"fmt"
	"time"

	rc "github.com/dgraph-io/ristretto"
)

type memEntry[V any] struct {
	value     V
	expiresAt time.Time
}

// MemoryOptions tune the in-memory backend.
// All fields have defaults; the zero value is usable as-is.
type MemoryOptions[K, V any] struct {
	// MaxCost is the cache capacity. With the default Cost of 1 per entry it
	// is a max entry count; supply Cost (e.g. decoded image size in bytes)
	// to make it a byte budget. 0 => 10_000.
	MaxCost int64
	// NumCounters sizes ristretto's admission frequency sketch.
	// 0 => 10 * MaxCost.
	NumCounters int64
	// BufferItems is ristretto's Get buffer size. 0 => 64.
	BufferItems int64
	// KeyString maps a key to the string stored in ristretto. Equal keys must
	// map to equal strings, distinct keys to distinct strings. Defaults to
	// the key itself for string keys, fmt.Sprint otherwise.
	KeyString func(K) string
	// Cost weighs an entry against MaxCost. nil => every entry costs 1.
	Cost func(V) int64
	// Metrics enables ristretto's hit/miss counters.
	Metrics bool
	Hooks   Hooks
}

// MemoryCache is the volatile backend: a capacity-bounded concurrent store
// (dgraph-io/ristretto) that may evict entries under pressure at any time,
// independent of expiration. Values are stored as-is, no serialization.
//
// Expiration is wrapped into each entry at write time and checked on read;
// expired entries are purged on access.
type MemoryCache[K comparable, V any] struct {
	c     *rc.Cache
	keyfn func(K) string
	cost  func(V) int64
	hooks Hooks
}

var _ Cache[string, int] = (*MemoryCache[string, int])(nil)

func NewMemory[K comparable, V any](opts MemoryOptions[K, V]) (*MemoryCache[K, V], error) {
	maxCost := coalesce[int64](opts.MaxCost, 10_000)
	counters := coalesce[int64](opts.NumCounters, 10*maxCost)
	buffers := coalesce[int64](opts.BufferItems, 64)

	c, err := rc.NewCache(&rc.Config{
		NumCounters: counters,
		MaxCost:     maxCost,
		BufferItems: buffers,
		Metrics:     opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("rendercache: memory backend: %w", err)
	}

	m := &MemoryCache[K, V]{
		c:     c,
		keyfn: opts.KeyString,
		cost:  opts.Cost,
		hooks: coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
	if m.keyfn == nil {
		m.keyfn = stringKey[K]
	}
	if m.cost == nil {
		m.cost = func(V) int64 { return 1 }
	}
	return m, nil
}

// Get returns the stored value if present and not expired. Expired entries
// are treated as absent and purged on the spot.
func (m *MemoryCache[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V
	k := m.keyfn(key)
	raw, ok := m.c.Get(k)
	if !ok {
		m.hooks.Miss(k, MissNotFound)
		return zero, false
	}
	e, ok := raw.(memEntry[V])
	if !ok {
		// unexpected entry shape; drop it
		m.c.Del(k)
		m.hooks.Miss(k, MissCorrupt)
		return zero, false
	}
	if expiredAt(e.expiresAt, time.Now()) {
		m.c.Del(k)
		m.hooks.Miss(k, MissExpired)
		return zero, false
	}
	m.hooks.Hit(k)
	return e.value, true
}

// Set inserts or overwrites the entry with exp resolved now. Rejection under
// memory pressure is not an error; it is reported through Hooks and the
// entry is simply absent on the next Get.
func (m *MemoryCache[K, V]) Set(_ context.Context, key K, value V, exp Expiration) error {
	at := exp.resolve()
	k := m.keyfn(key)

	// Mirror the resolved instant into ristretto's own TTL so expired
	// entries eventually free capacity even if never read again. Entries
	// already expired at write time keep ttl=0 (no ristretto TTL); the read
	// path treats them as absent either way.
	var ttl time.Duration
	if !at.Equal(maxInstant) {
		if d := time.Until(at); d > 0 {
			ttl = d
		}
	}
	if ok := m.c.SetWithTTL(k, memEntry[V]{value: value, expiresAt: at}, m.cost(value), ttl); !ok {
		m.hooks.StoreRejected(k)
	}
	return nil
}

// Remove deletes the entry if present.
func (m *MemoryCache[K, V]) Remove(_ context.Context, key K) error {
	m.c.Del(m.keyfn(key))
	return nil
}

// Wait blocks until ristretto's internal set buffers have drained, making
// prior Sets visible to Get. Intended for tests and benchmarks.
func (m *MemoryCache[K, V]) Wait() { m.c.Wait() }

func (m *MemoryCache[K, V]) Close() {
	m.c.Wait()
	m.c.Close()
}

// Metrics exposes ristretto metrics when enabled (not part of the Cache
// contract).
func (m *MemoryCache[K, V]) Metrics() *rc.Metrics { return m.c.Metrics }
