package rendercache

import (
	"context"
	"errors"
	"fmt"
	"time"

	bc "github.com/allegro/bigcache/v3"

	"github.com/unkn0wn-root/rendercache/codec"
	"github.com/unkn0wn-root/rendercache/internal/wire"
)

// CompactOptions tune the compact memory backend. Codec is required.
type CompactOptions[K, V any] struct {
	// LifeWindow is bigcache's global retention; entries may be dropped once
	// it elapses regardless of their own expiration. 0 => 24h.
	LifeWindow time.Duration
	// MaxSizeMB caps the backing byte store. 0 => unlimited.
	MaxSizeMB int
	// KeyString maps a key to the stored string key, same contract as
	// MemoryOptions.KeyString.
	KeyString func(K) string
	// Codec converts values to the stored bytes.
	Codec  codec.Codec[V]
	Logger Logger
	Hooks  Hooks
}

// CompactCache is a second memory-bounded backend, meant for large artifacts
// such as encoded image bytes: values are codec-encoded and kept in a
// bigcache byte arena off the GC heap. Per-entry expiration rides in the
// same wire framing the disk backend uses, since bigcache itself only has a
// global life window.
//
// Same contract as MemoryCache: misses are silent, eviction can happen at
// any time.
type CompactCache[K comparable, V any] struct {
	c     *bc.BigCache
	keyfn func(K) string
	codec codec.Codec[V]
	log   Logger
	hooks Hooks
}

var _ Cache[string, []byte] = (*CompactCache[string, []byte])(nil)

func NewCompact[K comparable, V any](ctx context.Context, opts CompactOptions[K, V]) (*CompactCache[K, V], error) {
	if opts.Codec == nil {
		return nil, fmt.Errorf("rendercache: codec is required")
	}
	conf := bc.DefaultConfig(coalesce(opts.LifeWindow, 24*time.Hour))
	if opts.MaxSizeMB > 0 {
		conf.HardMaxCacheSize = opts.MaxSizeMB
	}
	c, err := bc.New(ctx, conf)
	if err != nil {
		return nil, fmt.Errorf("rendercache: compact backend: %w", err)
	}
	m := &CompactCache[K, V]{
		c:     c,
		keyfn: opts.KeyString,
		codec: opts.Codec,
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
		hooks: coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
	if m.keyfn == nil {
		m.keyfn = stringKey[K]
	}
	return m, nil
}

func (m *CompactCache[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V
	k := m.keyfn(key)
	raw, err := m.c.Get(k)
	if err != nil {
		if !errors.Is(err, bc.ErrEntryNotFound) {
			m.log.Warn("compact cache read failed", Fields{"key": k, "err": err})
		}
		m.hooks.Miss(k, MissNotFound)
		return zero, false
	}
	expiresAt, payload, err := wire.DecodeEntry(raw)
	if err != nil {
		_ = m.c.Delete(k) // drop corrupt entry
		m.hooks.Miss(k, MissCorrupt)
		return zero, false
	}
	if expiredAt(time.Unix(0, expiresAt), time.Now()) {
		_ = m.c.Delete(k)
		m.hooks.Miss(k, MissExpired)
		return zero, false
	}
	v, err := m.codec.Decode(payload)
	if err != nil {
		_ = m.c.Delete(k)
		m.hooks.Miss(k, MissValueDecode)
		return zero, false
	}
	m.hooks.Hit(k)
	return v, true
}

func (m *CompactCache[K, V]) Set(_ context.Context, key K, value V, exp Expiration) error {
	k := m.keyfn(key)
	payload, err := m.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("rendercache: encode value for %q: %w", k, err)
	}
	entry := wire.EncodeEntry(exp.resolve().UnixNano(), payload)
	if err := m.c.Set(k, entry); err != nil {
		m.hooks.StoreError(k, err)
		return fmt.Errorf("rendercache: compact store: %w", err)
	}
	return nil
}

func (m *CompactCache[K, V]) Remove(_ context.Context, key K) error {
	k := m.keyfn(key)
	if err := m.c.Delete(k); err != nil && !errors.Is(err, bc.ErrEntryNotFound) {
		m.hooks.RemoveError(k, err)
		return fmt.Errorf("rendercache: compact remove: %w", err)
	}
	return nil
}

func (m *CompactCache[K, V]) Close() error { return m.c.Close() }
