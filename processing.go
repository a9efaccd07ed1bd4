package rendercache

import (
	"context"
)

// ProcessingRenderer decorates a Renderer with a pure artifact transform
// (resize, recompress, watermark...). The transform runs on its own
// goroutine so its cost stays off latency-sensitive callers; ctx is honored
// while it runs.
//
// The hit flag passes through untouched. Composition order is the caller's
// tradeoff: wrap a CachingRenderer to cache raw artifacts and re-process on
// every hit, or sit inside one so the processed artifact is what gets cached.
type ProcessingRenderer[D, A any] struct {
	inner     Renderer[D, A]
	transform func(A) A
}

var _ Renderer[string, []byte] = (*ProcessingRenderer[string, []byte])(nil)

func NewProcessing[D, A any](inner Renderer[D, A], transform func(A) A) *ProcessingRenderer[D, A] {
	return &ProcessingRenderer[D, A]{inner: inner, transform: transform}
}

func (r *ProcessingRenderer[D, A]) Render(ctx context.Context, desc D) (RenderResult[A], error) {
	res, err := r.inner.Render(ctx, desc)
	if err != nil {
		return RenderResult[A]{}, err
	}

	done := make(chan A, 1)
	go func() {
		done <- r.transform(res.Artifact)
	}()

	select {
	case <-ctx.Done():
		return RenderResult[A]{}, ctx.Err()
	case out := <-done:
		return RenderResult[A]{Artifact: out, CacheHit: res.CacheHit}, nil
	}
}
