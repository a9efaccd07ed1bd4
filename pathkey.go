package rendercache

import (
	"crypto/sha256"
	"encoding/hex"
)

// PathKey maps a cache key to a location under the disk cache root.
// Distinct logical keys must not map to the same (subdirectory, filename)
// pair; a collision silently overwrites the other key's entry.
type PathKey interface {
	// Subdirectory is an optional segment under the cache root.
	// Empty means the root itself.
	Subdirectory() string
	// UniqueFilename names the entry's file within the subdirectory.
	UniqueFilename() string
}

// FileKey is the trivial PathKey: an explicit (directory, filename) pair.
type FileKey struct {
	Dir  string
	Name string
}

func (k FileKey) Subdirectory() string   { return k.Dir }
func (k FileKey) UniqueFilename() string { return k.Name }

// filenameVersion prefixes hashed names so a scheme change invalidates every
// derived filename at once.
const filenameVersion = "v1"

// HashedFilename derives a stable, filesystem-safe filename from the parts
// that identify a render (source URL, target size, options...). Parts are
// NUL-separated before hashing so ("ab","c") and ("a","bc") differ.
func HashedFilename(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return filenameVersion + "_" + hex.EncodeToString(h.Sum(nil))
}
