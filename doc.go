// Package rendercache renders artifacts (typically images) from descriptions
// and caches the results, so equal descriptions never pay for the same render
// twice.
//
// Components:
//   - Cache[K, V]: backend contract. MemoryCache (ristretto, value-typed,
//     capacity-bounded), CompactCache (bigcache byte arena for large
//     artifacts) and DiskCache (one file per key, coarse per-instance lock).
//   - Expiration: write-time-resolved expiry policy shared by all backends.
//   - Codec[V]: pluggable byte conversion for the byte-oriented backends
//     (JSON, CBOR, msgpack, protobuf, raw).
//   - Renderer[D, A] and its decorators: CachingRenderer (cache-aside),
//     ProcessingRenderer (artifact transform off the caller), Erase/FromSync
//     (type erasure and sync bridging).
//
// Pipeline:
//
//	disk, _ := rendercache.NewDisk[ThumbKey, []byte](rendercache.DiskOptions[[]byte]{
//	    Dir:   "thumbs",
//	    Codec: codec.Bytes{},
//	})
//	r := rendercache.NewCaching[ThumbKey, []byte](base, disk, rendercache.CachingOptions{
//	    Expiration: rendercache.Days(7),
//	})
//	res, err := r.Render(ctx, key) // res.CacheHit tells hit from miss
//
// A degraded cache only degrades performance: every lookup failure collapses
// to a miss and the wrapped renderer's error channel carries renderer errors
// only.
package rendercache
