package rendercache

import (
	"context"
)

// CachingOptions tune the caching decorator.
type CachingOptions struct {
	// Expiration applies to every artifact the decorator stores.
	// The zero value is Never.
	Expiration Expiration
	Logger     Logger
}

// CachingRenderer decorates a Renderer with a Cache: check the cache first,
// fall back to the wrapped renderer on a miss, store the fresh artifact,
// report hit or miss in the result.
//
// The generic construction pins the contract the pipeline needs: the cache
// key type is the renderer's description type and the cache value type is
// the artifact type.
//
// Cache problems never surface on the renderer's error channel - a failing
// lookup is a miss and a failing store is logged and dropped, so a degraded
// cache costs latency, not correctness. Concurrent misses for the same
// description are not coalesced: each one renders and the last store wins.
type CachingRenderer[D, A any] struct {
	inner Renderer[D, A]
	cache Cache[D, A]
	exp   Expiration
	log   Logger
}

var _ Renderer[string, []byte] = (*CachingRenderer[string, []byte])(nil)

// NewCaching wraps inner so its artifacts are served from and stored into
// cache.
func NewCaching[D, A any](inner Renderer[D, A], cache Cache[D, A], opts CachingOptions) *CachingRenderer[D, A] {
	return &CachingRenderer[D, A]{
		inner: inner,
		cache: cache,
		exp:   opts.Expiration,
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
	}
}

// Render checks the cache, delegates on a miss, and stores the fresh
// artifact before completing. The lookup runs on its own goroutine so a
// caller blocked on a slow disk cache can still be released by ctx; a call
// cancelled at any point before the store step writes nothing.
func (r *CachingRenderer[D, A]) Render(ctx context.Context, desc D) (RenderResult[A], error) {
	type lookup struct {
		v  A
		ok bool
	}
	found := make(chan lookup, 1)
	go func() {
		v, ok := r.cache.Get(ctx, desc)
		found <- lookup{v: v, ok: ok}
	}()

	select {
	case <-ctx.Done():
		return RenderResult[A]{}, ctx.Err()
	case got := <-found:
		if got.ok {
			return RenderResult[A]{Artifact: got.v, CacheHit: true}, nil
		}
	}

	res, err := r.inner.Render(ctx, desc)
	if err != nil {
		return RenderResult[A]{}, err
	}
	if err := ctx.Err(); err != nil {
		// cancelled between delegation and store: emit nothing, write nothing
		return RenderResult[A]{}, err
	}
	if err := r.cache.Set(ctx, desc, res.Artifact, r.exp); err != nil {
		r.log.Warn("cache store failed after render", Fields{"err": err})
	}
	return RenderResult[A]{Artifact: res.Artifact, CacheHit: false}, nil
}
