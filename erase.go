package rendercache

import (
	"context"
	"reflect"
)

// AnyRenderer is the type-erased renderer shape: heterogeneous renderers can
// be held in one slice or passed through one composition boundary without
// the pipeline knowing their concrete description and artifact types.
type AnyRenderer = Renderer[any, any]

// Erase adapts a concrete renderer to AnyRenderer. Calls are forwarded
// verbatim - no caching, no processing - after asserting the description's
// dynamic type; a mismatch fails with *DescriptionTypeError.
func Erase[D, A any](r Renderer[D, A]) AnyRenderer {
	return RendererFunc[any, any](func(ctx context.Context, desc any) (RenderResult[any], error) {
		d, ok := desc.(D)
		if !ok {
			return RenderResult[any]{}, &DescriptionTypeError{
				Want: reflect.TypeOf((*D)(nil)).Elem(),
				Got:  reflect.TypeOf(desc),
			}
		}
		res, err := r.Render(ctx, d)
		if err != nil {
			return RenderResult[any]{}, err
		}
		return RenderResult[any]{Artifact: res.Artifact, CacheHit: res.CacheHit}, nil
	})
}

// FromSync bridges a blocking SyncRenderer into the Renderer contract: the
// render runs on its own goroutine and ctx cancellation releases the caller.
// A synchronous renderer has no cache of its own, so CacheHit is always
// false.
func FromSync[D, A any](r SyncRenderer[D, A]) Renderer[D, A] {
	return RendererFunc[D, A](func(ctx context.Context, desc D) (RenderResult[A], error) {
		done := make(chan A, 1)
		go func() {
			done <- r.RenderSync(desc)
		}()
		select {
		case <-ctx.Done():
			return RenderResult[A]{}, ctx.Err()
		case a := <-done:
			return RenderResult[A]{Artifact: a}, nil
		}
	})
}

// EraseSync erases a blocking renderer in one step.
func EraseSync[D, A any](r SyncRenderer[D, A]) AnyRenderer {
	return Erase(FromSync(r))
}
