// Package asynchook moves hook work onto a bounded worker queue so the cache
// hot paths never block on slow hook implementations. Events that would
// overflow the queue are dropped.
package asynchook

import (
	"sync"

	"github.com/unkn0wn-root/rendercache"
)

type Hooks struct {
	inner rendercache.Hooks
	q     chan func()
	wg    sync.WaitGroup
	once  sync.Once
}

var _ rendercache.Hooks = (*Hooks)(nil)

func New(inner rendercache.Hooks, workers, qlen int) *Hooks {
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

func (h *Hooks) Close() {
	h.once.Do(func() {
		close(h.q)
		h.wg.Wait()
	})
}

func (h *Hooks) try(f func()) {
	select {
	case h.q <- f:
	default: // drop
	}
}

func (h *Hooks) Hit(k string)           { h.try(func() { h.inner.Hit(k) }) }
func (h *Hooks) Miss(k, reason string)  { h.try(func() { h.inner.Miss(k, reason) }) }
func (h *Hooks) StoreRejected(k string) { h.try(func() { h.inner.StoreRejected(k) }) }
func (h *Hooks) StoreError(k string, err error) {
	h.try(func() { h.inner.StoreError(k, err) })
}
func (h *Hooks) RemoveError(k string, err error) {
	h.try(func() { h.inner.RemoveError(k, err) })
}
