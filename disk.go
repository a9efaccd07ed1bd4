package rendercache

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	gap "github.com/muesli/go-app-paths"

	"github.com/unkn0wn-root/rendercache/codec"
	"github.com/unkn0wn-root/rendercache/internal/wire"
)

// productDir is the fixed folder under the platform cache directory that
// namespaces every disk cache this library creates.
const productDir = "rendercache"

// DefaultRoot resolves the per-user platform cache directory for this
// product (e.g. ~/.cache/rendercache on Linux), namespaced by dir. Falls
// back to the system temp directory when no user cache directory exists.
func DefaultRoot(dir string) string {
	base, err := gap.NewScope(gap.User, productDir).CacheDir()
	if err != nil || base == "" {
		base = filepath.Join(os.TempDir(), productDir)
	}
	return filepath.Join(base, dir)
}

// DiskOptions tune the disk backend. Codec plus either Root or Dir are
// required.
type DiskOptions[V any] struct {
	// Root is an explicit cache root directory. Empty => resolve the
	// platform default via DefaultRoot(Dir).
	Root string
	// Dir is the caller-chosen namespace under the default root.
	Dir string
	// Codec converts values to the bytes stored inside entry files.
	Codec  codec.Codec[V]
	Logger Logger
	Hooks  Hooks
}

// DiskCache persists one file per key under a root directory. A single mutex
// per instance serializes every filesystem touch: coarse, but disk cache
// operations are not the throughput bottleneck and the lock makes the
// read-check-write sequences trivially race-free.
//
// File contents are wire-framed (version, resolved expiration instant, codec
// payload). Anything unreadable - missing file, corrupt framing, failed
// decode - is a miss, never an error. Expired files stay in place until the
// next Set or Remove for their key.
type DiskCache[K PathKey, V any] struct {
	mu    sync.Mutex
	root  string
	codec codec.Codec[V]
	log   Logger
	hooks Hooks
}

var _ Cache[FileKey, []byte] = (*DiskCache[FileKey, []byte])(nil)

func NewDisk[K PathKey, V any](opts DiskOptions[V]) (*DiskCache[K, V], error) {
	if opts.Codec == nil {
		return nil, fmt.Errorf("rendercache: codec is required")
	}
	root := opts.Root
	if root == "" {
		if opts.Dir == "" {
			return nil, fmt.Errorf("rendercache: root or dir is required")
		}
		root = DefaultRoot(opts.Dir)
	}
	return &DiskCache[K, V]{
		root:  root,
		codec: opts.Codec,
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
		hooks: coalesce[Hooks](opts.Hooks, NopHooks{}),
	}, nil
}

// Root returns the resolved cache root directory.
func (d *DiskCache[K, V]) Root() string { return d.root }

func (d *DiskCache[K, V]) path(key K) string {
	if sub := key.Subdirectory(); sub != "" {
		return filepath.Join(d.root, sub, key.UniqueFilename())
	}
	return filepath.Join(d.root, key.UniqueFilename())
}

// Get returns the stored value if the entry file exists, frames correctly,
// decodes, and has not expired.
func (d *DiskCache[K, V]) Get(_ context.Context, key K) (V, bool) {
	var zero V
	p := d.path(key)
	name := key.UniqueFilename()

	d.mu.Lock()
	defer d.mu.Unlock()

	raw, err := os.ReadFile(p)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			d.log.Warn("disk cache read failed", Fields{"path": p, "err": err})
		}
		d.hooks.Miss(name, MissNotFound)
		return zero, false
	}
	expiresAt, payload, err := wire.DecodeEntry(raw)
	if err != nil {
		d.log.Debug("disk cache entry corrupt", Fields{"path": p})
		d.hooks.Miss(name, MissCorrupt)
		return zero, false
	}
	if expiredAt(time.Unix(0, expiresAt), time.Now()) {
		// stale file left in place; the next Set for this key overwrites it
		d.hooks.Miss(name, MissExpired)
		return zero, false
	}
	v, err := d.codec.Decode(payload)
	if err != nil {
		d.log.Debug("disk cache value decode failed", Fields{"path": p, "err": err})
		d.hooks.Miss(name, MissValueDecode)
		return zero, false
	}
	d.hooks.Hit(name)
	return v, true
}

// Set writes or overwrites the entry file, creating the directory chain as
// needed. Directory creation is idempotent; the instance lock covers the
// whole sequence, so concurrent callers cannot race on it.
func (d *DiskCache[K, V]) Set(_ context.Context, key K, value V, exp Expiration) error {
	expiresAt := exp.resolve()
	payload, err := d.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("rendercache: encode value for %q: %w", key.UniqueFilename(), err)
	}
	p := d.path(key)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		d.hooks.StoreError(key.UniqueFilename(), err)
		return fmt.Errorf("rendercache: create cache directory: %w", err)
	}
	if err := os.WriteFile(p, wire.EncodeEntry(expiresAt.UnixNano(), payload), 0o600); err != nil {
		d.hooks.StoreError(key.UniqueFilename(), err)
		return fmt.Errorf("rendercache: write cache entry: %w", err)
	}
	return nil
}

// Remove deletes the entry file. A file that does not exist is not an error.
func (d *DiskCache[K, V]) Remove(_ context.Context, key K) error {
	p := d.path(key)

	d.mu.Lock()
	defer d.mu.Unlock()

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		d.hooks.RemoveError(key.UniqueFilename(), err)
		return fmt.Errorf("rendercache: remove cache entry: %w", err)
	}
	return nil
}
