package rendercache

import (
	"context"
)

// RenderResult pairs a produced artifact with whether it came out of a cache.
// A fresh result is produced per call; the caller owns it once returned.
type RenderResult[A any] struct {
	Artifact A
	CacheHit bool
}

// Renderer produces one artifact for a description, or fails with its own
// error. Render must honor ctx: on cancellation it returns ctx.Err() and no
// result. Implementations must be safe for concurrent use.
//
// D identifies what to render; two descriptions that compare equal must
// produce the same artifact and the same cache key.
type Renderer[D, A any] interface {
	Render(ctx context.Context, desc D) (RenderResult[A], error)
}

// RendererFunc adapts an ordinary function to the Renderer interface.
type RendererFunc[D, A any] func(ctx context.Context, desc D) (RenderResult[A], error)

func (f RendererFunc[D, A]) Render(ctx context.Context, desc D) (RenderResult[A], error) {
	return f(ctx, desc)
}

// SyncRenderer is a blocking renderer with no error or cancellation channel.
// Bridge it into the Renderer contract with FromSync or EraseSync.
type SyncRenderer[D, A any] interface {
	RenderSync(desc D) A
}

// Cache is the backend contract shared by the memory, compact and disk
// backends. A miss is a normal outcome, never an error: Get collapses
// "not found", "expired" and "failed to decode" into (zero, false).
//
// Set resolves exp to an absolute instant at write time; the zero Expiration
// means the entry never expires. Backends may still drop entries under
// pressure at any time, so presence is never guaranteed between calls.
type Cache[K, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, exp Expiration) error
	Remove(ctx context.Context, key K) error
}
