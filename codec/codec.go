// Package codec defines the byte-conversion contract used by the
// byte-oriented cache backends (disk, compact memory). A Codec must be
// reversible: Decode(Encode(v)) yields an equivalent value. Decode failures
// are surfaced by the backends as cache misses, not errors, so a codec change
// degrades old entries to misses instead of breaking reads.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}
