// Package sloghooks logs cache events through log/slog with sampling, so a
// cold cache (all misses) cannot flood the logs. Keys are redacted by
// default since render descriptions can carry URLs or user input.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"

	"github.com/unkn0wn-root/rendercache"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	HitEvery  uint64
	MissEvery uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	hitCtr  atomic.Uint64
	missCtr atomic.Uint64
}

var _ rendercache.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	if opts.Redact == nil {
		opts.Redact = hashPrefix
	}
	return &Hooks{l: l, opts: opts}
}

func hashPrefix(k string) string {
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:])[:12]
}

func sampled(ctr *atomic.Uint64, every uint64) bool {
	if every <= 1 {
		return true
	}
	return ctr.Add(1)%every == 1
}

func (h *Hooks) Hit(key string) {
	if sampled(&h.hitCtr, h.opts.HitEvery) {
		h.l.Debug("cache hit", "key", h.opts.Redact(key))
	}
}

func (h *Hooks) Miss(key, reason string) {
	if sampled(&h.missCtr, h.opts.MissEvery) {
		h.l.Debug("cache miss", "key", h.opts.Redact(key), "reason", reason)
	}
}

func (h *Hooks) StoreRejected(key string) {
	h.l.Warn("cache write rejected under pressure", "key", h.opts.Redact(key))
}

func (h *Hooks) StoreError(key string, err error) {
	h.l.Error("cache write failed", "key", h.opts.Redact(key), "err", err)
}

func (h *Hooks) RemoveError(key string, err error) {
	h.l.Error("cache remove failed", "key", h.opts.Redact(key), "err", err)
}
